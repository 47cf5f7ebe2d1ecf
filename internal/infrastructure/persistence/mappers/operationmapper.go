package mappers

import (
	"fmt"

	eqvo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/mapper"
)

// OperationMapper converts ledger entries. Items travel with their operation.
type OperationMapper interface {
	ToModel(op *ledger.Operation) *models.OperationModel
	ToDomain(model *models.OperationModel) (*ledger.Operation, error)
	ToDomainList(models []*models.OperationModel) ([]*ledger.Operation, error)
}

type OperationMapperImpl struct{}

func NewOperationMapper() OperationMapper {
	return &OperationMapperImpl{}
}

func (m *OperationMapperImpl) ToModel(op *ledger.Operation) *models.OperationModel {
	items := make([]models.OperationItemModel, 0, len(op.Items()))
	for _, item := range op.Items() {
		row := models.OperationItemModel{
			ID:          item.ID(),
			OperationID: item.OperationID(),
			EquipmentID: item.EquipmentID(),
		}
		if d := item.ReturnDetails(); d != nil {
			power, hdmi, remote := d.Power, d.HDMI, d.Remote
			condition := d.Condition.String()
			row.AccessoriesPower = &power
			row.AccessoriesHDMI = &hdmi
			row.AccessoriesRemote = &remote
			row.ConditionAfterReturn = &condition
			row.Remarks = d.Remarks
		}
		items = append(items, row)
	}

	return &models.OperationModel{
		ID:            op.ID(),
		OperationType: op.Type().String(),
		OperationDate: op.OperationDate(),
		ClientID:      op.ClientID(),
		Notes:         op.Notes(),
		PerformedBy:   op.PerformedBy(),
		Items:         items,
	}
}

func (m *OperationMapperImpl) ToDomain(model *models.OperationModel) (*ledger.Operation, error) {
	if model == nil {
		return nil, nil
	}

	opType, err := vo.NewOperationType(model.OperationType)
	if err != nil {
		return nil, fmt.Errorf("failed to map operation type (id=%d): %w", model.ID, err)
	}

	items := make([]*ledger.Item, 0, len(model.Items))
	for i := range model.Items {
		row := &model.Items[i]
		var details *ledger.ReturnDetails
		if row.ConditionAfterReturn != nil {
			condition, err := eqvo.NewReturnCondition(*row.ConditionAfterReturn)
			if err != nil {
				return nil, fmt.Errorf("failed to map return condition (item=%d): %w", row.ID, err)
			}
			details = &ledger.ReturnDetails{
				Power:     boolValue(row.AccessoriesPower),
				HDMI:      boolValue(row.AccessoriesHDMI),
				Remote:    boolValue(row.AccessoriesRemote),
				Condition: condition,
				Remarks:   row.Remarks,
			}
		}
		items = append(items, ledger.ReconstructItem(row.ID, row.OperationID, row.EquipmentID, details))
	}

	return ledger.ReconstructOperation(
		model.ID,
		opType,
		model.OperationDate,
		model.ClientID,
		model.PerformedBy,
		model.Notes,
		items,
	), nil
}

func (m *OperationMapperImpl) ToDomainList(rows []*models.OperationModel) ([]*ledger.Operation, error) {
	return mapper.MapSliceErr(rows, m.ToDomain)
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
