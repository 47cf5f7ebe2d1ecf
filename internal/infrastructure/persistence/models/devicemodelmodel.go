package models

import (
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
)

type DeviceModelModel struct {
	ID          uint   `gorm:"primarykey"`
	Category    string `gorm:"not null;size:20;default:android_box"`
	Brand       string `gorm:"not null;size:100;uniqueIndex:idx_equipment_models_brand_model,priority:1"`
	ModelName   string `gorm:"not null;size:150;uniqueIndex:idx_equipment_models_brand_model,priority:2"`
	MonitorSize *int
	IsActive    bool `gorm:"not null"`
	CreatedAt   time.Time
}

func (DeviceModelModel) TableName() string {
	return constants.TableEquipmentModels
}

// AllModels lists every persistence model in dependency order, for AutoMigrate.
func AllModels() []any {
	return []any{
		&DeviceModelModel{},
		&ClientModel{},
		&EquipmentModel{},
		&EquipmentNoteModel{},
		&OperationModel{},
		&OperationItemModel{},
	}
}
