package ledger

import (
	"fmt"
	"time"

	eqvo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
)

// ReturnDetails is what the operator checked when a unit came back.
type ReturnDetails struct {
	Power     bool
	HDMI      bool
	Remote    bool
	Condition eqvo.ReturnCondition
	Remarks   *string
}

// Item is one unit's participation in an operation. Immutable.
type Item struct {
	id            uint
	operationID   uint
	equipmentID   uint
	returnDetails *ReturnDetails
}

// ItemSpec describes an item to be recorded.
type ItemSpec struct {
	EquipmentID uint
	Return      *ReturnDetails
}

func ReconstructItem(id, operationID, equipmentID uint, details *ReturnDetails) *Item {
	return &Item{id: id, operationID: operationID, equipmentID: equipmentID, returnDetails: details}
}

func (i *Item) ID() uint                      { return i.id }
func (i *Item) OperationID() uint             { return i.operationID }
func (i *Item) EquipmentID() uint             { return i.equipmentID }
func (i *Item) ReturnDetails() *ReturnDetails { return i.returnDetails }

func (i *Item) SetID(id uint) {
	i.id = id
}

// Operation is an append-only ledger entry with at least one item.
type Operation struct {
	id            uint
	opType        vo.OperationType
	operationDate time.Time
	clientID      *uint
	performedBy   uint
	notes         *string
	items         []*Item
}

// NewOperation validates the entry shape. Nothing is persisted here.
func NewOperation(
	opType vo.OperationType,
	clientID *uint,
	performedBy uint,
	notes *string,
	at time.Time,
	specs []ItemSpec,
) (*Operation, error) {
	if !opType.IsValid() {
		return nil, fmt.Errorf("invalid operation type: %s", opType)
	}
	if len(specs) == 0 {
		return nil, ErrNoItems
	}
	if performedBy == 0 {
		return nil, fmt.Errorf("actor is required")
	}
	if opType.RequiresClient() && (clientID == nil || *clientID == 0) {
		return nil, fmt.Errorf("%w: %s", ErrClientRequired, opType)
	}
	if !opType.RequiresClient() && clientID != nil {
		return nil, fmt.Errorf("%w: %s", ErrClientNotAllowed, opType)
	}

	seen := make(map[uint]struct{}, len(specs))
	items := make([]*Item, 0, len(specs))
	for _, spec := range specs {
		if spec.EquipmentID == 0 {
			return nil, fmt.Errorf("item equipment is required")
		}
		if _, dup := seen[spec.EquipmentID]; dup {
			return nil, fmt.Errorf("equipment %d listed twice", spec.EquipmentID)
		}
		seen[spec.EquipmentID] = struct{}{}

		if opType.CarriesReturnDetails() {
			if spec.Return == nil {
				return nil, fmt.Errorf("return details missing for equipment %d", spec.EquipmentID)
			}
			if !spec.Return.Condition.IsValid() {
				return nil, fmt.Errorf("invalid return condition for equipment %d: %s", spec.EquipmentID, spec.Return.Condition)
			}
		} else if spec.Return != nil {
			return nil, fmt.Errorf("return details only apply to %s", vo.OperationReturn)
		}

		items = append(items, &Item{equipmentID: spec.EquipmentID, returnDetails: spec.Return})
	}

	return &Operation{
		opType:        opType,
		operationDate: at,
		clientID:      clientID,
		performedBy:   performedBy,
		notes:         notes,
		items:         items,
	}, nil
}

func ReconstructOperation(
	id uint,
	opType vo.OperationType,
	operationDate time.Time,
	clientID *uint,
	performedBy uint,
	notes *string,
	items []*Item,
) *Operation {
	return &Operation{
		id:            id,
		opType:        opType,
		operationDate: operationDate,
		clientID:      clientID,
		performedBy:   performedBy,
		notes:         notes,
		items:         items,
	}
}

func (o *Operation) ID() uint                 { return o.id }
func (o *Operation) Type() vo.OperationType   { return o.opType }
func (o *Operation) OperationDate() time.Time { return o.operationDate }
func (o *Operation) ClientID() *uint          { return o.clientID }
func (o *Operation) PerformedBy() uint        { return o.performedBy }
func (o *Operation) Notes() *string           { return o.notes }
func (o *Operation) Items() []*Item           { return o.items }

// EquipmentIDs lists the units in item order.
func (o *Operation) EquipmentIDs() []uint {
	ids := make([]uint, len(o.items))
	for i, item := range o.items {
		ids[i] = item.equipmentID
	}
	return ids
}

// SetID assigns the persisted id and propagates it to the items.
func (o *Operation) SetID(id uint) error {
	if o.id != 0 {
		return fmt.Errorf("operation ID already set")
	}
	o.id = id
	for _, item := range o.items {
		item.operationID = id
	}
	return nil
}
