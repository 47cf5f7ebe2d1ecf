package usecases

import "context"

type ReconcileClientsExecutor interface {
	Execute(ctx context.Context, cmd ReconcileClientsCommand) (*BatchReport, error)
}

type ImportEquipmentExecutor interface {
	Execute(ctx context.Context, cmd ImportEquipmentCommand) (*ImportReport, error)
}

var (
	_ ReconcileClientsExecutor = (*ReconcileClientsUseCase)(nil)
	_ ImportEquipmentExecutor  = (*ImportEquipmentUseCase)(nil)
)
