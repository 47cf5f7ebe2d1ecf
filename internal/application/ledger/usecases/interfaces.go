package usecases

import (
	"context"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/ledger/dto"
)

type ListOperationsExecutor interface {
	Execute(ctx context.Context, q ListOperationsQuery) (*ListOperationsResult, error)
}

type GetOperationExecutor interface {
	Execute(ctx context.Context, id uint) (*dto.OperationDTO, error)
}

type EquipmentHistoryExecutor interface {
	Execute(ctx context.Context, equipmentID uint) ([]*dto.OperationDTO, error)
}

var (
	_ ListOperationsExecutor   = (*ListOperationsUseCase)(nil)
	_ GetOperationExecutor     = (*GetOperationUseCase)(nil)
	_ EquipmentHistoryExecutor = (*EquipmentHistoryUseCase)(nil)
)
