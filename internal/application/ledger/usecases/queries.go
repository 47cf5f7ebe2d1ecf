package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/ledger/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/query"
)

// ListOperationsQuery filters the ledger. From and To are inclusive business
// dates in YYYY-MM-DD form.
type ListOperationsQuery struct {
	Type        string
	ClientID    *uint
	EquipmentID *uint
	From        string
	To          string
	Page        int
	PageSize    int
}

type ListOperationsResult struct {
	Items    []*dto.OperationDTO `json:"items"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

type ListOperationsUseCase struct {
	ledgerRepo ledger.Repository
	logger     logger.Interface
}

func NewListOperationsUseCase(ledgerRepo ledger.Repository, logger logger.Interface) *ListOperationsUseCase {
	return &ListOperationsUseCase{ledgerRepo: ledgerRepo, logger: logger}
}

func (uc *ListOperationsUseCase) Execute(ctx context.Context, q ListOperationsQuery) (*ListOperationsResult, error) {
	filter := ledger.ListFilter{
		PageFilter:  query.PageFilter{Page: q.Page, PageSize: q.PageSize},
		ClientID:    q.ClientID,
		EquipmentID: q.EquipmentID,
	}

	if strings.TrimSpace(q.Type) != "" {
		opType, err := vo.NewOperationType(q.Type)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		filter.Type = &opType
	}
	if strings.TrimSpace(q.From) != "" {
		from, err := biztime.ParseDate(q.From)
		if err != nil {
			return nil, errors.NewValidationError(err.Error(), "from")
		}
		filter.From = &from
	}
	if strings.TrimSpace(q.To) != "" {
		to, err := biztime.ParseDate(q.To)
		if err != nil {
			return nil, errors.NewValidationError(err.Error(), "to")
		}
		end := biztime.EndOfDayUTC(to)
		filter.To = &end
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, errors.NewValidationError("from must not be after to")
	}

	ops, total, err := uc.ledgerRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list operations", "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to list operations")
	}

	return &ListOperationsResult{
		Items:    dto.ToOperationDTOList(ops),
		Total:    total,
		Page:     max(q.Page, 1),
		PageSize: filter.Limit(),
	}, nil
}

type GetOperationUseCase struct {
	ledgerRepo ledger.Repository
	logger     logger.Interface
}

func NewGetOperationUseCase(ledgerRepo ledger.Repository, logger logger.Interface) *GetOperationUseCase {
	return &GetOperationUseCase{ledgerRepo: ledgerRepo, logger: logger}
}

func (uc *GetOperationUseCase) Execute(ctx context.Context, id uint) (*dto.OperationDTO, error) {
	op, err := uc.ledgerRepo.FindByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get operation", "operation_id", id, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to get operation")
	}
	if op == nil {
		return nil, errors.NewNotFoundError("operation not found", fmt.Sprintf("%d", id))
	}
	return dto.ToOperationDTO(op), nil
}

// EquipmentHistoryUseCase lists the operations a unit took part in.
type EquipmentHistoryUseCase struct {
	equipmentRepo equipment.Repository
	ledgerRepo    ledger.Repository
	logger        logger.Interface
}

func NewEquipmentHistoryUseCase(equipmentRepo equipment.Repository, ledgerRepo ledger.Repository, logger logger.Interface) *EquipmentHistoryUseCase {
	return &EquipmentHistoryUseCase{equipmentRepo: equipmentRepo, ledgerRepo: ledgerRepo, logger: logger}
}

func (uc *EquipmentHistoryUseCase) Execute(ctx context.Context, equipmentID uint) ([]*dto.OperationDTO, error) {
	unit, err := uc.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		uc.logger.Errorw("failed to get equipment", "equipment_id", equipmentID, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to get equipment")
	}
	if unit == nil {
		return nil, errors.NewNotFoundError("equipment not found", fmt.Sprintf("%d", equipmentID))
	}

	ops, err := uc.ledgerRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		uc.logger.Errorw("failed to list equipment history", "equipment_id", equipmentID, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to list equipment history")
	}
	return dto.ToOperationDTOList(ops), nil
}
