package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/mappers"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

type EquipmentNoteRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.EquipmentMapper
	logger logger.Interface
}

func NewEquipmentNoteRepository(db *gorm.DB, logger logger.Interface) equipment.NoteRepository {
	return &EquipmentNoteRepositoryImpl{
		db:     db,
		mapper: mappers.NewEquipmentMapper(),
		logger: logger,
	}
}

func (r *EquipmentNoteRepositoryImpl) Create(ctx context.Context, n *equipment.Note) error {
	model := r.mapper.NoteToModel(n)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create equipment note", "equipment_id", model.EquipmentID, "error", err)
		return fmt.Errorf("failed to create equipment note: %w", err)
	}
	n.SetID(model.ID)
	return nil
}

// ListByEquipment returns notes newest first.
func (r *EquipmentNoteRepositoryImpl) ListByEquipment(ctx context.Context, equipmentID uint) ([]*equipment.Note, error) {
	var rows []*models.EquipmentNoteModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("equipment_id = ?", equipmentID).Scopes(db.NewestFirst()).Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list equipment notes", "equipment_id", equipmentID, "error", err)
		return nil, fmt.Errorf("failed to list equipment notes: %w", err)
	}
	return mapper.MapSlice(rows, r.mapper.NoteToDomain), nil
}

func (r *EquipmentNoteRepositoryImpl) DeleteByEquipment(ctx context.Context, equipmentID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Where("equipment_id = ?", equipmentID).Delete(&models.EquipmentNoteModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete equipment notes", "equipment_id", equipmentID, "error", err)
		return fmt.Errorf("failed to delete equipment notes: %w", err)
	}
	return nil
}
