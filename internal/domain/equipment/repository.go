package equipment

import (
	"context"
	"time"

	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/query"
)

// Repository persists equipment rows. Find methods return (nil, nil) when
// nothing matches.
type Repository interface {
	Create(ctx context.Context, e *Equipment) error

	// Update writes every mutable column, including a cleared custodian.
	Update(ctx context.Context, e *Equipment) error

	FindByID(ctx context.Context, id uint) (*Equipment, error)
	FindByAssetTag(ctx context.Context, assetTag string) (*Equipment, error)
	FindBySerial(ctx context.Context, serial string) (*Equipment, error)

	// FindByIDs returns the rows that exist among ids, ordered by id.
	FindByIDs(ctx context.Context, ids []uint) ([]*Equipment, error)

	List(ctx context.Context, filter ListFilter) ([]*Equipment, int64, error)
	CountByStatus(ctx context.Context) (map[vo.EquipmentStatus]int64, error)

	// AllocateIfInStock moves every listed unit that is still em_estoque to
	// alocado under clientID and returns how many rows changed.
	AllocateIfInStock(ctx context.Context, ids []uint, clientID, actorID uint, at time.Time) (int64, error)

	// ReleaseIfAllocated writes e's post-return state only if the stored row is
	// still alocado under fromClientID. It returns the number of rows changed.
	ReleaseIfAllocated(ctx context.Context, e *Equipment, fromClientID uint) (int64, error)

	// SelectUnallocatedInStock returns up to limit ids of em_estoque units with
	// no custodian, ascending.
	SelectUnallocatedInStock(ctx context.Context, limit int) ([]uint, error)

	Delete(ctx context.Context, id uint) (int64, error)
}

// NoteRepository persists free-text notes.
type NoteRepository interface {
	Create(ctx context.Context, n *Note) error
	ListByEquipment(ctx context.Context, equipmentID uint) ([]*Note, error)
	DeleteByEquipment(ctx context.Context, equipmentID uint) error
}

// ListFilter narrows equipment listings. Search matches asset tag, serial or MAC.
type ListFilter struct {
	query.PageFilter
	Status   *vo.EquipmentStatus
	ClientID *uint
	ModelID  *uint
	Search   string
}
