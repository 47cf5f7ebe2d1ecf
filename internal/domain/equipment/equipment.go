package equipment

import (
	"fmt"
	"time"

	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
)

// Equipment is one physical unit (set-top box or monitor) in the stock.
type Equipment struct {
	id              uint
	assetTag        string
	serialNumber    *string
	modelID         uint
	macAddress      *string
	condition       vo.Condition
	status          vo.EquipmentStatus
	entryDate       time.Time
	currentClientID *uint
	notes           *string
	batch           *string
	createdBy       *uint
	updatedBy       *uint
	createdAt       time.Time
	updatedAt       time.Time
}

// RegistrationParams carries already-normalized intake data.
type RegistrationParams struct {
	AssetTag     string
	SerialNumber *string
	ModelID      uint
	MACAddress   *string
	Condition    vo.Condition
	EntryDate    time.Time
	Batch        *string
	Notes        *string
	Discarded    bool
	ActorID      uint
}

// NewEquipment registers a unit in stock, or directly as baixado when
// Discarded is set.
func NewEquipment(p RegistrationParams, now time.Time) (*Equipment, error) {
	if p.AssetTag == "" {
		return nil, fmt.Errorf("asset tag is required")
	}
	if p.ModelID == 0 {
		return nil, fmt.Errorf("model is required")
	}
	if !p.Condition.IsValid() {
		return nil, fmt.Errorf("invalid condition: %s", p.Condition)
	}
	if p.EntryDate.IsZero() {
		return nil, fmt.Errorf("entry date is required")
	}
	if p.ActorID == 0 {
		return nil, fmt.Errorf("actor is required")
	}

	status := vo.StatusInStock
	if p.Discarded {
		status = vo.StatusDiscarded
	}

	actor := p.ActorID
	return &Equipment{
		assetTag:     p.AssetTag,
		serialNumber: p.SerialNumber,
		modelID:      p.ModelID,
		macAddress:   p.MACAddress,
		condition:    p.Condition,
		status:       status,
		entryDate:    p.EntryDate,
		notes:        p.Notes,
		batch:        p.Batch,
		createdBy:    &actor,
		updatedBy:    &actor,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructEquipment rebuilds a unit from persistence.
func ReconstructEquipment(
	id uint,
	assetTag string,
	serialNumber *string,
	modelID uint,
	macAddress *string,
	condition vo.Condition,
	status vo.EquipmentStatus,
	entryDate time.Time,
	currentClientID *uint,
	notes, batch *string,
	createdBy, updatedBy *uint,
	createdAt, updatedAt time.Time,
) (*Equipment, error) {
	if id == 0 {
		return nil, fmt.Errorf("equipment ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid equipment status: %s", status)
	}
	return &Equipment{
		id:              id,
		assetTag:        assetTag,
		serialNumber:    serialNumber,
		modelID:         modelID,
		macAddress:      macAddress,
		condition:       condition,
		status:          status,
		entryDate:       entryDate,
		currentClientID: currentClientID,
		notes:           notes,
		batch:           batch,
		createdBy:       createdBy,
		updatedBy:       updatedBy,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}, nil
}

func (e *Equipment) ID() uint                   { return e.id }
func (e *Equipment) AssetTag() string           { return e.assetTag }
func (e *Equipment) SerialNumber() *string      { return e.serialNumber }
func (e *Equipment) ModelID() uint              { return e.modelID }
func (e *Equipment) MACAddress() *string        { return e.macAddress }
func (e *Equipment) Condition() vo.Condition    { return e.condition }
func (e *Equipment) Status() vo.EquipmentStatus { return e.status }
func (e *Equipment) EntryDate() time.Time       { return e.entryDate }
func (e *Equipment) CurrentClientID() *uint     { return e.currentClientID }
func (e *Equipment) Notes() *string             { return e.notes }
func (e *Equipment) Batch() *string             { return e.batch }
func (e *Equipment) CreatedBy() *uint           { return e.createdBy }
func (e *Equipment) UpdatedBy() *uint           { return e.updatedBy }
func (e *Equipment) CreatedAt() time.Time       { return e.createdAt }
func (e *Equipment) UpdatedAt() time.Time       { return e.updatedAt }

// SetID is called once by the repository after insert.
func (e *Equipment) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("equipment ID already set")
	}
	if id == 0 {
		return fmt.Errorf("equipment ID cannot be zero")
	}
	e.id = id
	return nil
}

// HeldBy reports whether clientID is the current custodian.
func (e *Equipment) HeldBy(clientID uint) bool {
	return e.currentClientID != nil && *e.currentClientID == clientID
}

// Allocate hands the unit to a client. Only stock units can be allocated.
func (e *Equipment) Allocate(clientID, actorID uint, at time.Time) error {
	if clientID == 0 {
		return fmt.Errorf("client is required")
	}
	if !e.status.CanTransitionTo(vo.StatusAllocated) {
		return fmt.Errorf("equipment %s is %s, not %s", e.assetTag, e.status, vo.StatusInStock)
	}
	e.status = vo.StatusAllocated
	e.currentClientID = &clientID
	e.touch(actorID, at)
	return nil
}

// Release takes the unit back from its custodian. The resulting status follows
// the return condition and the unit is always marked as used.
func (e *Equipment) Release(condition vo.ReturnCondition, actorID uint, at time.Time) error {
	if !condition.IsValid() {
		return fmt.Errorf("invalid return condition: %s", condition)
	}
	target := condition.ResultingStatus()
	if !e.status.CanTransitionTo(target) {
		return fmt.Errorf("equipment %s is %s, not %s", e.assetTag, e.status, vo.StatusAllocated)
	}
	e.status = target
	e.condition = vo.ConditionUsed
	e.currentClientID = nil
	e.touch(actorID, at)
	return nil
}

// OverrideStatus is the manual correction path. It ignores the engine's
// transition table but keeps the custodian consistent: the custodian is
// dropped for every status except alocado, and alocado cannot be set here
// because only a dispatch names the client.
func (e *Equipment) OverrideStatus(target vo.EquipmentStatus, actorID uint, at time.Time) error {
	if !target.IsValid() {
		return fmt.Errorf("invalid equipment status: %s", target)
	}
	if target.HoldsCustodian() && !e.status.HoldsCustodian() {
		return fmt.Errorf("status %s can only be reached through a dispatch", target)
	}
	e.status = target
	if !target.HoldsCustodian() {
		e.currentClientID = nil
	}
	e.touch(actorID, at)
	return nil
}

// DetailsUpdate holds the fields a batch import may refresh on an existing unit.
type DetailsUpdate struct {
	SerialNumber *string
	ModelID      uint
	MACAddress   *string
	Batch        *string
	Notes        *string
}

// UpdateDetails refreshes descriptive fields. Status and custodian are untouched.
func (e *Equipment) UpdateDetails(u DetailsUpdate, actorID uint, at time.Time) {
	if u.SerialNumber != nil && e.serialNumber == nil {
		e.serialNumber = u.SerialNumber
	}
	if u.ModelID != 0 {
		e.modelID = u.ModelID
	}
	if u.MACAddress != nil {
		e.macAddress = u.MACAddress
	}
	if u.Batch != nil {
		e.batch = u.Batch
	}
	if u.Notes != nil {
		e.notes = u.Notes
	}
	e.touch(actorID, at)
}

// CheckCustodyInvariant verifies that a custodian is set exactly when the unit is allocated.
func (e *Equipment) CheckCustodyInvariant() error {
	hasClient := e.currentClientID != nil
	if e.status.HoldsCustodian() != hasClient {
		return fmt.Errorf("equipment %s: status %s with custodian set=%t", e.assetTag, e.status, hasClient)
	}
	return nil
}

func (e *Equipment) touch(actorID uint, at time.Time) {
	if actorID != 0 {
		e.updatedBy = &actorID
	}
	e.updatedAt = at
}
