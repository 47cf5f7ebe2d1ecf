package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/mappers"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// OperationRepositoryImpl implements the ledger.Repository interface.
type OperationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.OperationMapper
	logger logger.Interface
}

func NewOperationRepository(db *gorm.DB, logger logger.Interface) ledger.Repository {
	return &OperationRepositoryImpl{
		db:     db,
		mapper: mappers.NewOperationMapper(),
		logger: logger,
	}
}

// Record inserts the operation row, then its items, inside the caller's transaction.
func (r *OperationRepositoryImpl) Record(ctx context.Context, op *ledger.Operation) error {
	if len(op.Items()) == 0 {
		return ledger.ErrNoItems
	}
	model := r.mapper.ToModel(op)
	items := model.Items

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Omit("Items").Create(model).Error; err != nil {
		r.logger.Errorw("failed to insert operation", "type", model.OperationType, "error", err)
		return fmt.Errorf("failed to insert operation: %w", err)
	}

	for i := range items {
		items[i].OperationID = model.ID
	}
	if err := tx.Create(&items).Error; err != nil {
		r.logger.Errorw("failed to insert operation items", "operation_id", model.ID, "count", len(items), "error", err)
		return fmt.Errorf("failed to insert operation items: %w", err)
	}

	if err := op.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set operation ID: %w", err)
	}
	for i, item := range op.Items() {
		item.SetID(items[i].ID)
	}

	r.logger.Debugw("operation recorded", "id", model.ID, "type", model.OperationType, "items", len(items))
	return nil
}

func preloadItems(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Items", func(q *gorm.DB) *gorm.DB {
		return q.Order("id ASC")
	})
}

func (r *OperationRepositoryImpl) FindByID(ctx context.Context, id uint) (*ledger.Operation, error) {
	var model models.OperationModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := preloadItems(tx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Errorw("failed to get operation", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}
	return r.mapper.ToDomain(&model)
}

func (r *OperationRepositoryImpl) List(ctx context.Context, filter ledger.ListFilter) ([]*ledger.Operation, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.OperationModel{})

	if filter.Type != nil {
		query = query.Where("operation_type = ?", filter.Type.String())
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.EquipmentID != nil {
		query = query.Where(
			"id IN (?)",
			tx.Model(&models.OperationItemModel{}).Select("operation_id").Where("equipment_id = ?", *filter.EquipmentID),
		)
	}
	if filter.From != nil {
		query = query.Where("operation_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("operation_date <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count operations", "error", err)
		return nil, 0, fmt.Errorf("failed to count operations: %w", err)
	}

	var rows []*models.OperationModel
	if err := preloadItems(query).
		Order("operation_date DESC, id DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list operations", "error", err)
		return nil, 0, fmt.Errorf("failed to list operations: %w", err)
	}

	ops, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to map operations: %w", err)
	}
	return ops, total, nil
}

func (r *OperationRepositoryImpl) ListByEquipment(ctx context.Context, equipmentID uint) ([]*ledger.Operation, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []*models.OperationModel
	if err := preloadItems(tx).
		Where("id IN (?)", tx.Model(&models.OperationItemModel{}).Select("operation_id").Where("equipment_id = ?", equipmentID)).
		Order("operation_date DESC, id DESC").
		Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list operations by equipment", "equipment_id", equipmentID, "error", err)
		return nil, fmt.Errorf("failed to list operations by equipment: %w", err)
	}
	return r.mapper.ToDomainList(rows)
}

func (r *OperationRepositoryImpl) DeleteItemsByEquipment(ctx context.Context, equipmentID uint) ([]uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	operationIDs := []uint{}
	if err := tx.Model(&models.OperationItemModel{}).
		Where("equipment_id = ?", equipmentID).
		Distinct().
		Pluck("operation_id", &operationIDs).Error; err != nil {
		r.logger.Errorw("failed to collect operations of equipment", "equipment_id", equipmentID, "error", err)
		return nil, fmt.Errorf("failed to collect operations: %w", err)
	}

	if err := tx.Where("equipment_id = ?", equipmentID).Delete(&models.OperationItemModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete operation items", "equipment_id", equipmentID, "error", err)
		return nil, fmt.Errorf("failed to delete operation items: %w", err)
	}
	return operationIDs, nil
}

// DeleteEmptyOperations drops operations that no longer have any item so the
// ledger never holds an entry without items.
func (r *OperationRepositoryImpl) DeleteEmptyOperations(ctx context.Context, operationIDs []uint) (int64, error) {
	if len(operationIDs) == 0 {
		return 0, nil
	}

	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.
		Where("id IN ?", operationIDs).
		Where(fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s i WHERE i.operation_id = %s.id)",
			constants.TableOperationItems, constants.TableOperations)).
		Delete(&models.OperationModel{})
	if result.Error != nil {
		r.logger.Errorw("failed to delete empty operations", "count", len(operationIDs), "error", result.Error)
		return 0, fmt.Errorf("failed to delete empty operations: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *OperationRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var total int64
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.OperationModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count operations: %w", err)
	}
	return total, nil
}
