package models

import (
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
)

// ClientModel represents a custodian row keyed by client_code.
type ClientModel struct {
	ID          uint    `gorm:"primarykey"`
	ClientCode  string  `gorm:"column:client_code;not null;size:50;uniqueIndex:idx_clients_client_code"`
	Name        string  `gorm:"not null;size:200;index:idx_clients_name"`
	CNPJ        *string `gorm:"column:cnpj;size:20"`
	ContactName *string `gorm:"size:150"`
	Phone       *string `gorm:"size:30"`
	Email       *string `gorm:"size:150"`
	Address     *string `gorm:"size:255"`
	City        *string `gorm:"size:100"`
	State       *string `gorm:"size:2"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ClientModel) TableName() string {
	return constants.TableClients
}
