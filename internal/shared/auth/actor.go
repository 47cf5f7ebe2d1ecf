// Package auth models the caller identity handed in by the external auth
// collaborator. Nothing here authenticates; it only answers role questions.
package auth

import (
	"strings"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
)

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID   uint
	Role string
}

func NewActor(id uint, role string) Actor {
	return Actor{ID: id, Role: strings.ToLower(strings.TrimSpace(role))}
}

// IsKnown reports whether an identity was supplied at all.
func (a Actor) IsKnown() bool {
	return a.ID != 0
}

func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

// CanOverrideStatus covers the manual status correction flow.
func (a Actor) CanOverrideStatus() bool {
	return a.IsKnown() && (a.Role == constants.RoleAdmin || a.Role == constants.RoleGestor)
}

// CanDeleteEquipment is restricted to administrators.
func (a Actor) CanDeleteEquipment() bool {
	return a.IsKnown() && a.IsAdmin()
}

// HasRole checks the actor's role against any of roles.
func (a Actor) HasRole(roles ...string) bool {
	for _, role := range roles {
		if a.Role == role {
			return true
		}
	}
	return false
}
