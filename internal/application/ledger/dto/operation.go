package dto

import (
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

type OperationItemDTO struct {
	ID                   uint    `json:"id"`
	EquipmentID          uint    `json:"equipment_id"`
	AccessoriesPower     *bool   `json:"accessories_power,omitempty"`
	AccessoriesHDMI      *bool   `json:"accessories_hdmi,omitempty"`
	AccessoriesRemote    *bool   `json:"accessories_remote,omitempty"`
	ConditionAfterReturn *string `json:"condition_after_return,omitempty"`
	Remarks              *string `json:"remarks,omitempty"`
}

type OperationDTO struct {
	ID            uint                `json:"id"`
	Type          string              `json:"operation_type"`
	OperationDate time.Time           `json:"operation_date"`
	ClientID      *uint               `json:"client_id"`
	PerformedBy   uint                `json:"performed_by"`
	Notes         *string             `json:"notes"`
	Items         []*OperationItemDTO `json:"items"`
}

func ToOperationItemDTO(item *ledger.Item) *OperationItemDTO {
	out := &OperationItemDTO{
		ID:          item.ID(),
		EquipmentID: item.EquipmentID(),
	}
	if d := item.ReturnDetails(); d != nil {
		power, hdmi, remote := d.Power, d.HDMI, d.Remote
		condition := d.Condition.String()
		out.AccessoriesPower = &power
		out.AccessoriesHDMI = &hdmi
		out.AccessoriesRemote = &remote
		out.ConditionAfterReturn = &condition
		out.Remarks = d.Remarks
	}
	return out
}

func ToOperationDTO(op *ledger.Operation) *OperationDTO {
	if op == nil {
		return nil
	}
	return &OperationDTO{
		ID:            op.ID(),
		Type:          op.Type().String(),
		OperationDate: op.OperationDate(),
		ClientID:      op.ClientID(),
		PerformedBy:   op.PerformedBy(),
		Notes:         op.Notes(),
		Items:         mapper.MapSlice(op.Items(), ToOperationItemDTO),
	}
}

func ToOperationDTOList(ops []*ledger.Operation) []*OperationDTO {
	return mapper.MapSlice(ops, ToOperationDTO)
}
