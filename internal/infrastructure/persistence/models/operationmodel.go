package models

import (
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
)

// OperationModel is an append-only ledger row.
type OperationModel struct {
	ID            uint      `gorm:"primarykey"`
	OperationType string    `gorm:"not null;size:10;index:idx_operations_type"`
	OperationDate time.Time `gorm:"not null;index:idx_operations_date"`
	ClientID      *uint     `gorm:"index:idx_operations_client"`
	Notes         *string   `gorm:"type:text"`
	PerformedBy   uint      `gorm:"not null"`
	CreatedAt     time.Time

	Items []OperationItemModel `gorm:"foreignKey:OperationID"`
}

func (OperationModel) TableName() string {
	return constants.TableOperations
}

// OperationItemModel links one unit to one operation. Accessory flags and
// condition are only filled for RETORNO.
type OperationItemModel struct {
	ID                   uint    `gorm:"primarykey"`
	OperationID          uint    `gorm:"not null;index:idx_operation_items_operation"`
	EquipmentID          uint    `gorm:"not null;index:idx_operation_items_equipment"`
	AccessoriesPower     *bool   `gorm:"column:accessories_power"`
	AccessoriesHDMI      *bool   `gorm:"column:accessories_hdmi"`
	AccessoriesRemote    *bool   `gorm:"column:accessories_remote"`
	ConditionAfterReturn *string `gorm:"column:condition_after_return;size:20"`
	Remarks              *string `gorm:"type:text"`
}

func (OperationItemModel) TableName() string {
	return constants.TableOperationItems
}
