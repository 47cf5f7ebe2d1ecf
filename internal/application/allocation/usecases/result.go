package usecases

import (
	"fmt"
	"strings"

	ledgerdto "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/ledger/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
)

// OperationResult is returned by every committed engine transition.
type OperationResult struct {
	OperationID  uint                    `json:"operation_id"`
	Type         string                  `json:"operation_type"`
	ClientID     *uint                   `json:"client_id"`
	EquipmentIDs []uint                  `json:"equipment_ids"`
	Operation    *ledgerdto.OperationDTO `json:"operation"`
}

func newOperationResult(op *ledger.Operation) *OperationResult {
	return &OperationResult{
		OperationID:  op.ID(),
		Type:         op.Type().String(),
		ClientID:     op.ClientID(),
		EquipmentIDs: op.EquipmentIDs(),
		Operation:    ledgerdto.ToOperationDTO(op),
	}
}

// checkSelection rejects empty selections, zero ids and repeated ids.
func checkSelection(ids []uint) error {
	if len(ids) == 0 {
		return errors.NewInvalidSelectionError("no equipment selected")
	}
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if id == 0 {
			return errors.NewInvalidSelectionError("equipment id cannot be zero")
		}
		if _, dup := seen[id]; dup {
			return errors.NewInvalidSelectionError("equipment selected more than once", fmt.Sprintf("%d", id))
		}
		seen[id] = struct{}{}
	}
	return nil
}

// missingIDs lists the requested ids absent from units.
func missingIDs(ids []uint, units []*equipment.Equipment) []string {
	found := make(map[uint]struct{}, len(units))
	for _, u := range units {
		found[u.ID()] = struct{}{}
	}
	var missing []string
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			missing = append(missing, fmt.Sprintf("%d", id))
		}
	}
	return missing
}

func staleSelection(reason string, tags []string) error {
	return errors.NewStaleSelectionError(reason, strings.Join(tags, ", "))
}
