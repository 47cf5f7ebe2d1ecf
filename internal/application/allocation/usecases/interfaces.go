package usecases

import "context"

// IntakeExecutor registers a new unit with its ENTRADA operation.
type IntakeExecutor interface {
	Execute(ctx context.Context, cmd IntakeCommand) (*IntakeResult, error)
}

type DispatchExecutor interface {
	Execute(ctx context.Context, cmd DispatchCommand) (*OperationResult, error)
}

type ReturnExecutor interface {
	Execute(ctx context.Context, cmd ReturnCommand) (*OperationResult, error)
}

var (
	_ IntakeExecutor   = (*IntakeUseCase)(nil)
	_ DispatchExecutor = (*DispatchUseCase)(nil)
	_ ReturnExecutor   = (*ReturnUseCase)(nil)
)
