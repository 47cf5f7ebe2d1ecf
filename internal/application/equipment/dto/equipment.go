package dto

import (
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

type EquipmentDTO struct {
	ID              uint      `json:"id"`
	AssetTag        string    `json:"asset_tag"`
	SerialNumber    *string   `json:"serial_number"`
	ModelID         uint      `json:"model_id"`
	MACAddress      *string   `json:"mac_address"`
	Condition       string    `json:"condition"`
	Status          string    `json:"status"`
	EntryDate       string    `json:"entry_date"`
	CurrentClientID *uint     `json:"current_client_id"`
	Batch           *string   `json:"batch"`
	Notes           *string   `json:"notes"`
	CreatedBy       *uint     `json:"created_by"`
	UpdatedBy       *uint     `json:"updated_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type NoteDTO struct {
	ID          uint           `json:"id"`
	EquipmentID uint           `json:"equipment_id"`
	UserID      uint           `json:"user_id"`
	Note        string         `json:"note"`
	Details     map[string]any `json:"details,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

func ToEquipmentDTO(e *equipment.Equipment) *EquipmentDTO {
	if e == nil {
		return nil
	}
	return &EquipmentDTO{
		ID:              e.ID(),
		AssetTag:        e.AssetTag(),
		SerialNumber:    e.SerialNumber(),
		ModelID:         e.ModelID(),
		MACAddress:      e.MACAddress(),
		Condition:       e.Condition().String(),
		Status:          e.Status().String(),
		EntryDate:       biztime.FormatCalendarDate(e.EntryDate()),
		CurrentClientID: e.CurrentClientID(),
		Batch:           e.Batch(),
		Notes:           e.Notes(),
		CreatedBy:       e.CreatedBy(),
		UpdatedBy:       e.UpdatedBy(),
		CreatedAt:       e.CreatedAt(),
		UpdatedAt:       e.UpdatedAt(),
	}
}

func ToEquipmentDTOList(items []*equipment.Equipment) []*EquipmentDTO {
	return mapper.MapSlice(items, ToEquipmentDTO)
}

func ToNoteDTO(n *equipment.Note) *NoteDTO {
	return &NoteDTO{
		ID:          n.ID(),
		EquipmentID: n.EquipmentID(),
		UserID:      n.UserID(),
		Note:        n.Text(),
		Details:     n.Details(),
		CreatedAt:   n.CreatedAt(),
	}
}

func ToNoteDTOList(notes []*equipment.Note) []*NoteDTO {
	return mapper.MapSlice(notes, ToNoteDTO)
}
