package valueobjects

import (
	"fmt"
	"strings"
)

// OperationType classifies a ledger entry.
type OperationType string

const (
	OperationIntake   OperationType = "ENTRADA"
	OperationDispatch OperationType = "SAIDA"
	OperationReturn   OperationType = "RETORNO"
)

var validOperationTypes = map[OperationType]bool{
	OperationIntake:   true,
	OperationDispatch: true,
	OperationReturn:   true,
}

func NewOperationType(value string) (OperationType, error) {
	t := OperationType(strings.ToUpper(strings.TrimSpace(value)))
	if !validOperationTypes[t] {
		return "", fmt.Errorf("invalid operation type: %s", value)
	}
	return t, nil
}

func (t OperationType) String() string {
	return string(t)
}

func (t OperationType) IsValid() bool {
	return validOperationTypes[t]
}

// RequiresClient reports whether entries of this type must name a client.
// Intake never does.
func (t OperationType) RequiresClient() bool {
	return t == OperationDispatch || t == OperationReturn
}

// CarriesReturnDetails reports whether items record accessories and condition.
func (t OperationType) CarriesReturnDetails() bool {
	return t == OperationReturn
}
