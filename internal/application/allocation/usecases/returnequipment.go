package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/common"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	ledgervo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
)

// ReturnItem is the checklist filled for one unit coming back. A blank
// Condition means ok.
type ReturnItem struct {
	EquipmentID uint
	Power       bool
	HDMI        bool
	Remote      bool
	Condition   string
	Remarks     string
}

type ReturnCommand struct {
	Actor         auth.Actor
	Items         []ReturnItem
	OperationDate *time.Time
	Notes         string
}

type ReturnUseCase struct {
	equipmentRepo equipment.Repository
	ledgerRepo    ledger.Repository
	txMgr         *db.TransactionManager
	stockCache    cache.StockSummaryCache
	now           func() time.Time
	logger        logger.Interface
}

func NewReturnUseCase(
	equipmentRepo equipment.Repository,
	ledgerRepo ledger.Repository,
	txMgr *db.TransactionManager,
	stockCache cache.StockSummaryCache,
	logger logger.Interface,
) *ReturnUseCase {
	return &ReturnUseCase{
		equipmentRepo: equipmentRepo,
		ledgerRepo:    ledgerRepo,
		txMgr:         txMgr,
		stockCache:    stockCache,
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

func (uc *ReturnUseCase) WithClock(now func() time.Time) *ReturnUseCase {
	uc.now = now
	return uc
}

// Execute records a RETORNO operation for units held by a single client and
// releases each of them according to its return condition.
func (uc *ReturnUseCase) Execute(ctx context.Context, cmd ReturnCommand) (*OperationResult, error) {
	uc.logger.Infow("executing return use case",
		"actor_id", cmd.Actor.ID,
		"equipment_count", len(cmd.Items),
	)

	if !cmd.Actor.IsKnown() {
		return nil, errors.NewForbiddenError("an authenticated actor is required")
	}

	ids := make([]uint, 0, len(cmd.Items))
	details := make(map[uint]*ledger.ReturnDetails, len(cmd.Items))
	for _, item := range cmd.Items {
		ids = append(ids, item.EquipmentID)
		condition, err := vo.NewReturnCondition(item.Condition)
		if err != nil {
			return nil, errors.NewValidationError(err.Error(), fmt.Sprintf("equipment %d", item.EquipmentID))
		}
		details[item.EquipmentID] = &ledger.ReturnDetails{
			Power:     item.Power,
			HDMI:      item.HDMI,
			Remote:    item.Remote,
			Condition: condition,
			Remarks:   sanitize.Optional(item.Remarks),
		}
	}
	if err := checkSelection(ids); err != nil {
		return nil, err
	}

	at := uc.now()
	if cmd.OperationDate != nil {
		at = cmd.OperationDate.UTC()
	}

	var op *ledger.Operation
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		units, err := uc.equipmentRepo.FindByIDs(txCtx, ids)
		if err != nil {
			return err
		}
		if missing := missingIDs(ids, units); len(missing) > 0 {
			return staleSelection("selected equipment no longer exists", missing)
		}

		clientID, err := sharedCustodian(units)
		if err != nil {
			return err
		}

		specs := make([]ledger.ItemSpec, 0, len(ids))
		for _, id := range ids {
			specs = append(specs, ledger.ItemSpec{EquipmentID: id, Return: details[id]})
		}
		entry, err := ledger.NewOperation(ledgervo.OperationReturn, &clientID, cmd.Actor.ID, sanitize.Optional(cmd.Notes), at, specs)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.ledgerRepo.Record(txCtx, entry); err != nil {
			return err
		}

		for _, unit := range units {
			if err := unit.Release(details[unit.ID()].Condition, cmd.Actor.ID, at); err != nil {
				return staleSelection(err.Error(), []string{unit.AssetTag()})
			}
			affected, err := uc.equipmentRepo.ReleaseIfAllocated(txCtx, unit, clientID)
			if err != nil {
				return err
			}
			if affected != 1 {
				return staleSelection("selected equipment was changed by another operation", []string{unit.AssetTag()})
			}
		}

		op = entry
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("return rejected", "equipment_ids", ids, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to return equipment", "equipment_ids", ids, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to return equipment")
	}

	common.InvalidateStockSummary(ctx, uc.stockCache, uc.logger)

	uc.logger.Infow("equipment returned successfully",
		"operation_id", op.ID(),
		"client_id", *op.ClientID(),
		"equipment_count", len(op.Items()),
	)
	return newOperationResult(op), nil
}

// sharedCustodian requires every unit to be allocated to the same client.
// Units out of alocado make the selection stale; allocated units under
// different clients are a mixed custodian selection.
func sharedCustodian(units []*equipment.Equipment) (uint, error) {
	var notAllocated []string
	custodians := make(map[uint]struct{})
	var clientID uint
	for _, u := range units {
		if u.Status() != vo.StatusAllocated || u.CurrentClientID() == nil {
			notAllocated = append(notAllocated, u.AssetTag())
			continue
		}
		clientID = *u.CurrentClientID()
		custodians[clientID] = struct{}{}
	}
	if len(notAllocated) > 0 {
		return 0, staleSelection("selected equipment is no longer allocated", notAllocated)
	}
	if len(custodians) > 1 {
		return 0, errors.NewMixedCustodianError(
			"selected equipment belongs to more than one client",
			fmt.Sprintf("%d clients", len(custodians)),
		)
	}
	return clientID, nil
}
