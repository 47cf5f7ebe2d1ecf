package equipment

import (
	"fmt"
	"strings"
	"time"
)

// Note is a free-text annotation attached to a unit. Details holds optional
// structured technical metadata captured at intake or import.
type Note struct {
	id          uint
	equipmentID uint
	userID      uint
	text        string
	details     map[string]any
	createdAt   time.Time
}

func NewNote(equipmentID, userID uint, text string, details map[string]any, now time.Time) (*Note, error) {
	if equipmentID == 0 {
		return nil, fmt.Errorf("equipment is required")
	}
	if userID == 0 {
		return nil, fmt.Errorf("actor is required")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("note text is required")
	}
	return &Note{
		equipmentID: equipmentID,
		userID:      userID,
		text:        text,
		details:     details,
		createdAt:   now,
	}, nil
}

func ReconstructNote(id, equipmentID, userID uint, text string, details map[string]any, createdAt time.Time) *Note {
	return &Note{
		id:          id,
		equipmentID: equipmentID,
		userID:      userID,
		text:        text,
		details:     details,
		createdAt:   createdAt,
	}
}

func (n *Note) ID() uint                { return n.id }
func (n *Note) EquipmentID() uint       { return n.equipmentID }
func (n *Note) UserID() uint            { return n.userID }
func (n *Note) Text() string            { return n.text }
func (n *Note) Details() map[string]any { return n.details }
func (n *Note) CreatedAt() time.Time    { return n.createdAt }

func (n *Note) SetID(id uint) {
	n.id = id
}
