package usecases

import (
	"context"
	"strings"
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/devicemodel/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

type FindOrCreateModelCommand struct {
	Category    string
	Brand       string
	ModelName   string
	MonitorSize *int
}

type FindOrCreateModelResult struct {
	Model   *dto.DeviceModelDTO `json:"model"`
	Created bool                `json:"created"`
}

// FindOrCreateModelUseCase resolves a catalog entry by brand and model name,
// creating an active entry when none exists. It joins the transaction in ctx.
type FindOrCreateModelUseCase struct {
	modelRepo devicemodel.Repository
	logger    logger.Interface
	now       func() time.Time
}

func NewFindOrCreateModelUseCase(modelRepo devicemodel.Repository, logger logger.Interface) *FindOrCreateModelUseCase {
	return &FindOrCreateModelUseCase{
		modelRepo: modelRepo,
		logger:    logger,
		now:       biztime.NowUTC,
	}
}

func (uc *FindOrCreateModelUseCase) WithClock(now func() time.Time) *FindOrCreateModelUseCase {
	uc.now = now
	return uc
}

func (uc *FindOrCreateModelUseCase) Execute(ctx context.Context, cmd FindOrCreateModelCommand) (*FindOrCreateModelResult, error) {
	category, err := devicemodel.NewCategory(cmd.Category)
	if err != nil {
		return nil, errors.NewValidationError(err.Error(), "category")
	}

	brand := strings.TrimSpace(cmd.Brand)
	modelName := strings.TrimSpace(cmd.ModelName)

	existing, err := uc.modelRepo.FindByName(ctx, brand, modelName)
	if err != nil {
		uc.logger.Errorw("failed to find device model", "brand", brand, "model", modelName, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to find device model")
	}
	if existing != nil {
		return &FindOrCreateModelResult{Model: dto.ToDeviceModelDTO(existing)}, nil
	}

	model, err := devicemodel.NewDeviceModel(category, brand, modelName, cmd.MonitorSize, uc.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.modelRepo.Create(ctx, model); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to create device model", "model", model.DisplayName(), "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to create device model")
	}

	uc.logger.Infow("device model created", "model_id", model.ID(), "model", model.DisplayName())
	return &FindOrCreateModelResult{Model: dto.ToDeviceModelDTO(model), Created: true}, nil
}

// ListModelsUseCase returns the catalog ordered by category, brand and model name.
type ListModelsUseCase struct {
	modelRepo devicemodel.Repository
	logger    logger.Interface
}

func NewListModelsUseCase(modelRepo devicemodel.Repository, logger logger.Interface) *ListModelsUseCase {
	return &ListModelsUseCase{modelRepo: modelRepo, logger: logger}
}

func (uc *ListModelsUseCase) Execute(ctx context.Context, activeOnly bool) ([]*dto.DeviceModelDTO, error) {
	models, err := uc.modelRepo.List(ctx, activeOnly)
	if err != nil {
		uc.logger.Errorw("failed to list device models", "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to list device models")
	}
	return dto.ToDeviceModelDTOList(models), nil
}
