package valueobjects

import (
	"fmt"
	"strings"
)

// ReturnCondition classifies a unit coming back from a client.
type ReturnCondition string

const (
	ReturnOK          ReturnCondition = "ok"
	ReturnMaintenance ReturnCondition = "manutencao"
	ReturnDiscard     ReturnCondition = "descartar"
)

var returnStatusMapping = map[ReturnCondition]EquipmentStatus{
	ReturnOK:          StatusInStock,
	ReturnMaintenance: StatusMaintenance,
	ReturnDiscard:     StatusDiscarded,
}

// NewReturnCondition parses a return classification. Blank input means ok.
func NewReturnCondition(value string) (ReturnCondition, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return ReturnOK, nil
	}
	rc := ReturnCondition(v)
	if _, ok := returnStatusMapping[rc]; !ok {
		return "", fmt.Errorf("invalid return condition: %s (expected ok, manutencao or descartar)", value)
	}
	return rc, nil
}

func (r ReturnCondition) String() string {
	return string(r)
}

func (r ReturnCondition) IsValid() bool {
	_, ok := returnStatusMapping[r]
	return ok
}

// ResultingStatus is the equipment status after a return with this condition.
func (r ReturnCondition) ResultingStatus() EquipmentStatus {
	return returnStatusMapping[r]
}
