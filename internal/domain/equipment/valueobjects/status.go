package valueobjects

import (
	"fmt"
	"strings"
)

// EquipmentStatus is the custody state of a unit.
type EquipmentStatus string

const (
	StatusInStock     EquipmentStatus = "em_estoque"
	StatusAllocated   EquipmentStatus = "alocado"
	StatusMaintenance EquipmentStatus = "manutencao"
	StatusDiscarded   EquipmentStatus = "baixado"
)

var ValidStatuses = map[EquipmentStatus]bool{
	StatusInStock:     true,
	StatusAllocated:   true,
	StatusMaintenance: true,
	StatusDiscarded:   true,
}

// engineTransitions lists the moves performed by dispatch and return.
// Everything else goes through the administrative override.
var engineTransitions = map[EquipmentStatus][]EquipmentStatus{
	StatusInStock:     {StatusAllocated},
	StatusAllocated:   {StatusInStock, StatusMaintenance, StatusDiscarded},
	StatusMaintenance: {},
	StatusDiscarded:   {},
}

func NewEquipmentStatus(value string) (EquipmentStatus, error) {
	status := EquipmentStatus(strings.ToLower(strings.TrimSpace(value)))
	if !ValidStatuses[status] {
		return "", fmt.Errorf("invalid equipment status: %s", value)
	}
	return status, nil
}

func (s EquipmentStatus) String() string {
	return string(s)
}

func (s EquipmentStatus) IsValid() bool {
	return ValidStatuses[s]
}

// HoldsCustodian reports whether a unit in this status must reference a client.
func (s EquipmentStatus) HoldsCustodian() bool {
	return s == StatusAllocated
}

// CanTransitionTo reports whether the allocation engine may move s to target.
func (s EquipmentStatus) CanTransitionTo(target EquipmentStatus) bool {
	for _, allowed := range engineTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// AllStatuses returns the statuses in lifecycle order.
func AllStatuses() []EquipmentStatus {
	return []EquipmentStatus{StatusInStock, StatusAllocated, StatusMaintenance, StatusDiscarded}
}
