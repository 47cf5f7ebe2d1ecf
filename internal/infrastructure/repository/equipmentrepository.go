package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/mappers"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// EquipmentRepositoryImpl implements the equipment.Repository interface.
type EquipmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EquipmentMapper
	logger logger.Interface
}

// NewEquipmentRepository creates a new equipment repository instance.
func NewEquipmentRepository(db *gorm.DB, logger logger.Interface) equipment.Repository {
	return &EquipmentRepositoryImpl{
		db:     db,
		mapper: mappers.NewEquipmentMapper(),
		logger: logger,
	}
}

func (r *EquipmentRepositoryImpl) Create(ctx context.Context, e *equipment.Equipment) error {
	model := r.mapper.ToModel(e)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		if apperrors.IsDuplicateError(err) {
			return duplicateEquipmentError(err, model)
		}
		r.logger.Errorw("failed to create equipment", "asset_tag", model.AssetTag, "error", err)
		return fmt.Errorf("failed to create equipment: %w", err)
	}

	if err := e.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set equipment ID: %w", err)
	}

	r.logger.Infow("equipment created", "id", model.ID, "asset_tag", model.AssetTag)
	return nil
}

func duplicateEquipmentError(err error, model *models.EquipmentModel) error {
	if strings.Contains(err.Error(), "serial") && model.SerialNumber != nil {
		return apperrors.NewConflictError("serial number already registered", *model.SerialNumber)
	}
	return apperrors.NewConflictError("asset tag already registered", model.AssetTag)
}

// Update writes every mutable column. A map is used so nil custodian and
// optional fields are written as NULL.
func (r *EquipmentRepositoryImpl) Update(ctx context.Context, e *equipment.Equipment) error {
	model := r.mapper.ToModel(e)

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.EquipmentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"serial_number":     model.SerialNumber,
			"model_id":          model.ModelID,
			"mac_address":       model.MACAddress,
			"condition_status":  model.ConditionStatus,
			"status":            model.Status,
			"current_client_id": model.CurrentClientID,
			"batch":             model.Batch,
			"notes":             model.Notes,
			"updated_by":        model.UpdatedBy,
			"updated_at":        model.UpdatedAt,
		})
	if result.Error != nil {
		if apperrors.IsDuplicateError(result.Error) {
			return duplicateEquipmentError(result.Error, model)
		}
		r.logger.Errorw("failed to update equipment", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update equipment: %w", result.Error)
	}
	return nil
}

func (r *EquipmentRepositoryImpl) findOne(ctx context.Context, where string, args ...any) (*equipment.Equipment, error) {
	var model models.EquipmentModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where(where, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get equipment", "where", where, "error", err)
		return nil, fmt.Errorf("failed to get equipment: %w", err)
	}

	entity, err := r.mapper.ToDomain(&model)
	if err != nil {
		r.logger.Errorw("failed to map equipment model", "id", model.ID, "error", err)
		return nil, fmt.Errorf("failed to map equipment: %w", err)
	}
	return entity, nil
}

func (r *EquipmentRepositoryImpl) FindByID(ctx context.Context, id uint) (*equipment.Equipment, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *EquipmentRepositoryImpl) FindByAssetTag(ctx context.Context, assetTag string) (*equipment.Equipment, error) {
	return r.findOne(ctx, "asset_tag = ?", assetTag)
}

func (r *EquipmentRepositoryImpl) FindBySerial(ctx context.Context, serial string) (*equipment.Equipment, error) {
	return r.findOne(ctx, "serial_number = ?", serial)
}

func (r *EquipmentRepositoryImpl) FindByIDs(ctx context.Context, ids []uint) ([]*equipment.Equipment, error) {
	if len(ids) == 0 {
		return []*equipment.Equipment{}, nil
	}

	var rows []*models.EquipmentModel
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("id IN ?", ids).Scopes(db.OldestFirst()).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to get equipment by IDs", "count", len(ids), "error", err)
		return nil, fmt.Errorf("failed to get equipment by IDs: %w", err)
	}

	entities, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to map equipment: %w", err)
	}
	return entities, nil
}

func (r *EquipmentRepositoryImpl) List(ctx context.Context, filter equipment.ListFilter) ([]*equipment.Equipment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.EquipmentModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ClientID != nil {
		query = query.Where("current_client_id = ?", *filter.ClientID)
	}
	if filter.ModelID != nil {
		query = query.Where("model_id = ?", *filter.ModelID)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		like := "%" + s + "%"
		query = query.Where("asset_tag LIKE ? OR serial_number LIKE ? OR mac_address LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count equipment", "error", err)
		return nil, 0, fmt.Errorf("failed to count equipment: %w", err)
	}

	var rows []*models.EquipmentModel
	if err := query.Scopes(db.NewestFirst()).Offset(filter.Offset()).Limit(filter.Limit()).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list equipment", "error", err)
		return nil, 0, fmt.Errorf("failed to list equipment: %w", err)
	}

	entities, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map equipment: %w", err)
	}
	return entities, total, nil
}

func (r *EquipmentRepositoryImpl) CountByStatus(ctx context.Context) (map[vo.EquipmentStatus]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.EquipmentModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count equipment by status", "error", err)
		return nil, fmt.Errorf("failed to count equipment by status: %w", err)
	}

	counts := make(map[vo.EquipmentStatus]int64, len(vo.ValidStatuses))
	for _, s := range vo.AllStatuses() {
		counts[s] = 0
	}
	for _, row := range rows {
		counts[vo.EquipmentStatus(row.Status)] = row.Total
	}
	return counts, nil
}

// AllocateIfInStock is a guarded write: rows that are no longer em_estoque are
// left untouched and simply not counted.
func (r *EquipmentRepositoryImpl) AllocateIfInStock(ctx context.Context, ids []uint, clientID, actorID uint, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.EquipmentModel{}).
		Where("id IN ? AND status = ?", ids, vo.StatusInStock.String()).
		Updates(map[string]any{
			"status":            vo.StatusAllocated.String(),
			"current_client_id": clientID,
			"updated_by":        actorID,
			"updated_at":        at,
		})
	if result.Error != nil {
		r.logger.Errorw("failed to allocate equipment", "client_id", clientID, "count", len(ids), "error", result.Error)
		return 0, fmt.Errorf("failed to allocate equipment: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ReleaseIfAllocated writes e's post-return columns only while the stored row
// is still alocado under fromClientID.
func (r *EquipmentRepositoryImpl) ReleaseIfAllocated(ctx context.Context, e *equipment.Equipment, fromClientID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.EquipmentModel{}).
		Where("id = ? AND status = ? AND current_client_id = ?", e.ID(), vo.StatusAllocated.String(), fromClientID).
		Updates(map[string]any{
			"status":            e.Status().String(),
			"condition_status":  e.Condition().String(),
			"current_client_id": nil,
			"updated_by":        e.UpdatedBy(),
			"updated_at":        e.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to release equipment", "id", e.ID(), "client_id", fromClientID, "error", result.Error)
		return 0, fmt.Errorf("failed to release equipment: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *EquipmentRepositoryImpl) SelectUnallocatedInStock(ctx context.Context, limit int) ([]uint, error) {
	ids := []uint{}
	if limit <= 0 {
		return ids, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.EquipmentModel{}).
		Where("current_client_id IS NULL AND status = ?", vo.StatusInStock.String()).
		Scopes(db.OldestFirst()).
		Limit(limit).
		Pluck("id", &ids).Error; err != nil {
		r.logger.Errorw("failed to select stock for allocation", "limit", limit, "error", err)
		return nil, fmt.Errorf("failed to select stock: %w", err)
	}
	return ids, nil
}

func (r *EquipmentRepositoryImpl) Delete(ctx context.Context, id uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.EquipmentModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete equipment", "id", id, "error", result.Error)
		return 0, fmt.Errorf("failed to delete equipment: %w", result.Error)
	}
	return result.RowsAffected, nil
}
