package usecases

import (
	"context"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/devicemodel/dto"
)

type FindOrCreateModelExecutor interface {
	Execute(ctx context.Context, cmd FindOrCreateModelCommand) (*FindOrCreateModelResult, error)
}

type ListModelsExecutor interface {
	Execute(ctx context.Context, activeOnly bool) ([]*dto.DeviceModelDTO, error)
}

type SeedModelsExecutor interface {
	Execute(ctx context.Context, catalog *Catalog) (*SeedModelsResult, error)
}

var (
	_ FindOrCreateModelExecutor = (*FindOrCreateModelUseCase)(nil)
	_ ListModelsExecutor        = (*ListModelsUseCase)(nil)
	_ SeedModelsExecutor        = (*SeedModelsUseCase)(nil)
)
