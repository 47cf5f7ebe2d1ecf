package mappers

import (
	"fmt"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

// EquipmentMapper handles the conversion between equipment entities and persistence models.
type EquipmentMapper interface {
	ToModel(e *equipment.Equipment) *models.EquipmentModel
	ToDomain(model *models.EquipmentModel) (*equipment.Equipment, error)
	ToDomainList(models []*models.EquipmentModel) ([]*equipment.Equipment, error)
	NoteToModel(n *equipment.Note) *models.EquipmentNoteModel
	NoteToDomain(model *models.EquipmentNoteModel) *equipment.Note
}

// EquipmentMapperImpl is the concrete implementation of EquipmentMapper.
type EquipmentMapperImpl struct{}

func NewEquipmentMapper() EquipmentMapper {
	return &EquipmentMapperImpl{}
}

func (m *EquipmentMapperImpl) ToModel(e *equipment.Equipment) *models.EquipmentModel {
	if e == nil {
		return nil
	}
	return &models.EquipmentModel{
		ID:              e.ID(),
		AssetTag:        e.AssetTag(),
		SerialNumber:    e.SerialNumber(),
		ModelID:         e.ModelID(),
		MACAddress:      e.MACAddress(),
		ConditionStatus: e.Condition().String(),
		Status:          e.Status().String(),
		EntryDate:       e.EntryDate(),
		CurrentClientID: e.CurrentClientID(),
		Batch:           e.Batch(),
		Notes:           e.Notes(),
		CreatedBy:       e.CreatedBy(),
		UpdatedBy:       e.UpdatedBy(),
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
}

func (m *EquipmentMapperImpl) ToDomain(model *models.EquipmentModel) (*equipment.Equipment, error) {
	if model == nil {
		return nil, nil
	}

	status, err := vo.NewEquipmentStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("failed to map equipment status (id=%d): %w", model.ID, err)
	}
	condition, err := vo.NewCondition(model.ConditionStatus)
	if err != nil {
		return nil, fmt.Errorf("failed to map equipment condition (id=%d): %w", model.ID, err)
	}

	return equipment.ReconstructEquipment(
		model.ID,
		model.AssetTag,
		model.SerialNumber,
		model.ModelID,
		model.MACAddress,
		condition,
		status,
		model.EntryDate,
		model.CurrentClientID,
		model.Notes,
		model.Batch,
		model.CreatedBy,
		model.UpdatedBy,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

func (m *EquipmentMapperImpl) ToDomainList(rows []*models.EquipmentModel) ([]*equipment.Equipment, error) {
	return mapper.MapSliceErr(rows, m.ToDomain)
}

func (m *EquipmentMapperImpl) NoteToModel(n *equipment.Note) *models.EquipmentNoteModel {
	return &models.EquipmentNoteModel{
		ID:          n.ID(),
		EquipmentID: n.EquipmentID(),
		UserID:      n.UserID(),
		Note:        n.Text(),
		Details:     n.Details(),
		CreatedAt:   n.CreatedAt(),
	}
}

func (m *EquipmentMapperImpl) NoteToDomain(model *models.EquipmentNoteModel) *equipment.Note {
	var details map[string]any
	if len(model.Details) > 0 {
		details = model.Details
	}
	return equipment.ReconstructNote(model.ID, model.EquipmentID, model.UserID, model.Note, details, model.CreatedAt)
}
