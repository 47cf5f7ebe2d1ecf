package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/mappers"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

type DeviceModelRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.DeviceModelMapper
	logger logger.Interface
}

func NewDeviceModelRepository(db *gorm.DB, logger logger.Interface) devicemodel.Repository {
	return &DeviceModelRepositoryImpl{
		db:     db,
		mapper: mappers.NewDeviceModelMapper(),
		logger: logger,
	}
}

func (r *DeviceModelRepositoryImpl) Create(ctx context.Context, m *devicemodel.DeviceModel) error {
	model := r.mapper.ToModel(m)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return apperrors.NewConflictError("model already registered", m.DisplayName())
		}
		r.logger.Errorw("failed to create device model", "brand", model.Brand, "model", model.ModelName, "error", err)
		return fmt.Errorf("failed to create device model: %w", err)
	}
	m.SetID(model.ID)
	return nil
}

func (r *DeviceModelRepositoryImpl) FindByID(ctx context.Context, id uint) (*devicemodel.DeviceModel, error) {
	var model models.DeviceModelModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get device model", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get device model: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

func (r *DeviceModelRepositoryImpl) FindByName(ctx context.Context, brand, modelName string) (*devicemodel.DeviceModel, error) {
	var model models.DeviceModelModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("brand = ? AND model_name = ?", brand, modelName).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get device model by name", "brand", brand, "model", modelName, "error", err)
		return nil, fmt.Errorf("failed to get device model: %w", err)
	}
	return r.mapper.ToDomain(&model), nil
}

// List orders by category, brand and model name.
func (r *DeviceModelRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]*devicemodel.DeviceModel, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.DeviceModelModel{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []*models.DeviceModelModel
	if err := query.Order("category ASC, brand ASC, model_name ASC").Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list device models", "error", err)
		return nil, fmt.Errorf("failed to list device models: %w", err)
	}
	return r.mapper.ToDomainList(rows), nil
}
