package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/common"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
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

// NewClientInput describes a client created as part of a dispatch.
type NewClientInput struct {
	Code        string
	Name        string
	CNPJ        string
	ContactName string
	Phone       string
	Email       string
	Address     string
	City        string
	State       string
}

func (in NewClientInput) profile() client.Profile {
	return client.Profile{
		Name:        in.Name,
		CNPJ:        sanitize.Optional(in.CNPJ),
		ContactName: sanitize.Optional(in.ContactName),
		Phone:       sanitize.Optional(in.Phone),
		Email:       sanitize.Optional(in.Email),
		Address:     sanitize.Optional(in.Address),
		City:        sanitize.Optional(in.City),
		State:       optionalIdentifier(in.State),
	}
}

// DispatchCommand hands stock units to a client. Exactly one of ClientID and
// NewClient must be set.
type DispatchCommand struct {
	Actor         auth.Actor
	EquipmentIDs  []uint
	ClientID      uint
	NewClient     *NewClientInput
	OperationDate *time.Time
	Notes         string
}

type DispatchUseCase struct {
	equipmentRepo equipment.Repository
	clientRepo    client.Repository
	ledgerRepo    ledger.Repository
	txMgr         *db.TransactionManager
	stockCache    cache.StockSummaryCache
	now           func() time.Time
	logger        logger.Interface
}

func NewDispatchUseCase(
	equipmentRepo equipment.Repository,
	clientRepo client.Repository,
	ledgerRepo ledger.Repository,
	txMgr *db.TransactionManager,
	stockCache cache.StockSummaryCache,
	logger logger.Interface,
) *DispatchUseCase {
	return &DispatchUseCase{
		equipmentRepo: equipmentRepo,
		clientRepo:    clientRepo,
		ledgerRepo:    ledgerRepo,
		txMgr:         txMgr,
		stockCache:    stockCache,
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

func (uc *DispatchUseCase) WithClock(now func() time.Time) *DispatchUseCase {
	uc.now = now
	return uc
}

// Execute records a SAIDA operation and allocates every selected unit in one
// transaction. If any unit stopped being em_estoque since it was selected the
// whole dispatch is rejected as stale.
func (uc *DispatchUseCase) Execute(ctx context.Context, cmd DispatchCommand) (*OperationResult, error) {
	uc.logger.Infow("executing dispatch use case",
		"actor_id", cmd.Actor.ID,
		"equipment_count", len(cmd.EquipmentIDs),
		"client_id", cmd.ClientID,
	)

	if !cmd.Actor.IsKnown() {
		return nil, errors.NewForbiddenError("an authenticated actor is required")
	}
	if err := checkSelection(cmd.EquipmentIDs); err != nil {
		return nil, err
	}
	if (cmd.ClientID == 0) == (cmd.NewClient == nil) {
		return nil, errors.NewValidationError("provide either an existing client or a new client")
	}

	at := uc.now()
	if cmd.OperationDate != nil {
		at = cmd.OperationDate.UTC()
	}

	var op *ledger.Operation
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		target, err := uc.resolveClient(txCtx, cmd, at)
		if err != nil {
			return err
		}
		clientID := target.ID()

		units, err := uc.equipmentRepo.FindByIDs(txCtx, cmd.EquipmentIDs)
		if err != nil {
			return err
		}
		if missing := missingIDs(cmd.EquipmentIDs, units); len(missing) > 0 {
			return staleSelection("selected equipment no longer exists", missing)
		}
		var ineligible []string
		for _, u := range units {
			if err := u.Allocate(clientID, cmd.Actor.ID, at); err != nil {
				ineligible = append(ineligible, u.AssetTag())
			}
		}
		if len(ineligible) > 0 {
			return staleSelection("selected equipment is no longer in stock", ineligible)
		}

		specs := make([]ledger.ItemSpec, 0, len(cmd.EquipmentIDs))
		for _, id := range cmd.EquipmentIDs {
			specs = append(specs, ledger.ItemSpec{EquipmentID: id})
		}
		entry, err := ledger.NewOperation(ledgervo.OperationDispatch, &clientID, cmd.Actor.ID, sanitize.Optional(cmd.Notes), at, specs)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.ledgerRepo.Record(txCtx, entry); err != nil {
			return err
		}

		affected, err := uc.equipmentRepo.AllocateIfInStock(txCtx, cmd.EquipmentIDs, clientID, cmd.Actor.ID, at)
		if err != nil {
			return err
		}
		if affected != int64(len(cmd.EquipmentIDs)) {
			return errors.NewStaleSelectionError(
				"selected equipment was changed by another operation",
				fmt.Sprintf("%d of %d units still in stock", affected, len(cmd.EquipmentIDs)),
			)
		}

		op = entry
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("dispatch rejected", "equipment_ids", cmd.EquipmentIDs, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to dispatch equipment", "equipment_ids", cmd.EquipmentIDs, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to dispatch equipment")
	}

	common.InvalidateStockSummary(ctx, uc.stockCache, uc.logger)

	uc.logger.Infow("equipment dispatched successfully",
		"operation_id", op.ID(),
		"client_id", *op.ClientID(),
		"equipment_count", len(op.Items()),
	)
	return newOperationResult(op), nil
}

func (uc *DispatchUseCase) resolveClient(ctx context.Context, cmd DispatchCommand, at time.Time) (*client.Client, error) {
	if cmd.NewClient == nil {
		existing, err := uc.clientRepo.FindByID(ctx, cmd.ClientID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, errors.NewNotFoundError("client not found", fmt.Sprintf("%d", cmd.ClientID))
		}
		return existing, nil
	}

	created, err := client.NewClient(sanitize.Identifier(cmd.NewClient.Code), cmd.NewClient.profile(), at)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.clientRepo.Create(ctx, created); err != nil {
		return nil, err
	}
	return created, nil
}

func optionalIdentifier(s string) *string {
	v := sanitize.Identifier(s)
	if v == "" {
		return nil
	}
	return &v
}
