package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
)

// EquipmentModel represents one unit row. status and current_client_id are
// the contended columns.
type EquipmentModel struct {
	ID              uint      `gorm:"primarykey"`
	AssetTag        string    `gorm:"not null;size:100;uniqueIndex:idx_equipment_asset_tag"`
	SerialNumber    *string   `gorm:"size:100;uniqueIndex:idx_equipment_serial_number"`
	ModelID         uint      `gorm:"not null;index:idx_equipment_model_id"`
	MACAddress      *string   `gorm:"column:mac_address;size:17"`
	ConditionStatus string    `gorm:"not null;size:20;default:novo"`
	Status          string    `gorm:"not null;size:20;default:em_estoque;index:idx_equipment_status_client,priority:1"`
	EntryDate       time.Time `gorm:"type:date;not null"`
	CurrentClientID *uint     `gorm:"index:idx_equipment_status_client,priority:2"`
	Batch           *string   `gorm:"size:100"`
	Notes           *string   `gorm:"type:text"`
	CreatedBy       *uint
	UpdatedBy       *uint
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM.
func (EquipmentModel) TableName() string {
	return constants.TableEquipment
}

// BeforeCreate fills defaults the entity leaves blank.
func (m *EquipmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.Status == "" {
		m.Status = "em_estoque"
	}
	if m.ConditionStatus == "" {
		m.ConditionStatus = "novo"
	}
	return nil
}

// EquipmentNoteModel is a free-text note with optional structured details.
type EquipmentNoteModel struct {
	ID          uint              `gorm:"primarykey"`
	EquipmentID uint              `gorm:"not null;index:idx_equipment_notes_equipment"`
	UserID      uint              `gorm:"not null"`
	Note        string            `gorm:"type:text;not null"`
	Details     datatypes.JSONMap `gorm:"type:json"`
	CreatedAt   time.Time
}

func (EquipmentNoteModel) TableName() string {
	return constants.TableEquipmentNotes
}
