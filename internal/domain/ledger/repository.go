package ledger

import (
	"context"
	"time"

	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/query"
)

// Repository appends operations. There is no update path; removal only
// happens through the equipment cascade.
type Repository interface {
	// Record inserts the operation row followed by its items and assigns ids.
	// It joins the transaction carried by ctx.
	Record(ctx context.Context, op *Operation) error

	FindByID(ctx context.Context, id uint) (*Operation, error)
	List(ctx context.Context, filter ListFilter) ([]*Operation, int64, error)

	// ListByEquipment returns the operations a unit took part in, newest first.
	ListByEquipment(ctx context.Context, equipmentID uint) ([]*Operation, error)

	// DeleteItemsByEquipment removes a unit's items and returns the ids of the
	// operations they belonged to.
	DeleteItemsByEquipment(ctx context.Context, equipmentID uint) ([]uint, error)

	// DeleteEmptyOperations removes those of operationIDs left with no items.
	DeleteEmptyOperations(ctx context.Context, operationIDs []uint) (int64, error)

	Count(ctx context.Context) (int64, error)
}

type ListFilter struct {
	query.PageFilter
	Type        *vo.OperationType
	ClientID    *uint
	EquipmentID *uint
	From        *time.Time
	To          *time.Time
}
