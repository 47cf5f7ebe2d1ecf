package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	clientusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/client/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/common"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// errDryRun unwinds the batch transaction after a dry run.
var errDryRun = stderrors.New("dry run")

type ReconcileClientsCommand struct {
	Actor  auth.Actor
	Rows   []ClientRow
	DryRun bool
}

// ClientRowResult is the outcome of one row. Error is set when the row was
// skipped; Shortfall counts requested units that were not in stock.
type ClientRowResult struct {
	Line       int    `json:"line"`
	ClientCode string `json:"client_code"`
	ClientID   uint   `json:"client_id,omitempty"`
	Created    bool   `json:"created"`
	Requested  int    `json:"requested"`
	Allocated  int    `json:"allocated"`
	Shortfall  int    `json:"shortfall"`
	Error      string `json:"error,omitempty"`
}

// BatchReport aggregates a reconcile run. When DryRun is set nothing was
// committed.
type BatchReport struct {
	Total          int               `json:"total"`
	ClientsCreated int               `json:"clients_created"`
	ClientsUpdated int               `json:"clients_updated"`
	Allocated      int               `json:"allocated"`
	Shortfall      int               `json:"shortfall"`
	Skipped        int               `json:"skipped"`
	DryRun         bool              `json:"dry_run"`
	Rows           []ClientRowResult `json:"rows"`
	Errors         []string          `json:"errors"`
}

// ReconcileClientsUseCase upserts clients by code and links in-stock units to
// them by count. The whole batch runs in one transaction: row validation
// problems and shortfalls are reported, while a storage failure rolls every
// row back. No ledger operation is recorded for these allocations.
type ReconcileClientsUseCase struct {
	upsertClient  *clientusecases.UpsertClientUseCase
	equipmentRepo equipment.Repository
	txMgr         *db.TransactionManager
	stockCache    cache.StockSummaryCache
	now           func() time.Time
	logger        logger.Interface
}

func NewReconcileClientsUseCase(
	upsertClient *clientusecases.UpsertClientUseCase,
	equipmentRepo equipment.Repository,
	txMgr *db.TransactionManager,
	stockCache cache.StockSummaryCache,
	logger logger.Interface,
) *ReconcileClientsUseCase {
	return &ReconcileClientsUseCase{
		upsertClient:  upsertClient,
		equipmentRepo: equipmentRepo,
		txMgr:         txMgr,
		stockCache:    stockCache,
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

func (uc *ReconcileClientsUseCase) WithClock(now func() time.Time) *ReconcileClientsUseCase {
	uc.now = now
	return uc
}

func (uc *ReconcileClientsUseCase) Execute(ctx context.Context, cmd ReconcileClientsCommand) (*BatchReport, error) {
	uc.logger.Infow("executing reconcile clients use case",
		"actor_id", cmd.Actor.ID,
		"rows", len(cmd.Rows),
		"dry_run", cmd.DryRun,
	)

	if !cmd.Actor.IsKnown() {
		return nil, errors.NewForbiddenError("an authenticated actor is required")
	}
	if len(cmd.Rows) == 0 {
		return nil, errors.NewValidationError("batch has no rows")
	}

	var report *BatchReport
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		report = &BatchReport{Total: len(cmd.Rows), DryRun: cmd.DryRun}
		for _, row := range cmd.Rows {
			result, err := uc.reconcileRow(txCtx, cmd.Actor, row)
			if err != nil {
				return fmt.Errorf("line %d: %w", row.Line, err)
			}
			report.add(result)
		}
		if cmd.DryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !stderrors.Is(err, errDryRun) {
		uc.logger.Errorw("reconcile batch rolled back", "error", err)
		if appErr := errors.GetAppError(err); appErr != nil {
			return nil, appErr
		}
		return nil, errors.AsPersistenceFailure(err, "failed to reconcile batch")
	}

	if !cmd.DryRun {
		common.InvalidateStockSummary(ctx, uc.stockCache, uc.logger)
	}

	uc.logger.Infow("reconcile batch finished",
		"total", report.Total,
		"clients_created", report.ClientsCreated,
		"clients_updated", report.ClientsUpdated,
		"allocated", report.Allocated,
		"shortfall", report.Shortfall,
		"skipped", report.Skipped,
		"dry_run", report.DryRun,
	)
	return report, nil
}

// reconcileRow returns an error only for failures that must abort the batch.
// Each row runs under a savepoint so a rejected row leaves no partial writes.
func (uc *ReconcileClientsUseCase) reconcileRow(ctx context.Context, actor auth.Actor, row ClientRow) (ClientRowResult, error) {
	result := ClientRowResult{Line: row.Line, ClientCode: row.Code, Requested: row.AllocationCount}

	if err := row.validate(); err != nil {
		result.Error = describe(err)
		return result, nil
	}

	err := uc.txMgr.RunInSavepoint(ctx, func(spCtx context.Context) error {
		upserted, err := uc.upsertClient.Execute(spCtx, clientusecases.UpsertClientCommand{
			Actor:   actor,
			Code:    row.Code,
			Name:    row.Name,
			CNPJ:    row.CNPJ,
			Address: row.Address,
			City:    row.City,
			State:   row.State,
		})
		if err != nil {
			return err
		}
		result.ClientID = upserted.Client.ID
		result.ClientCode = upserted.Client.Code
		result.Created = upserted.Created

		if row.AllocationCount == 0 {
			return nil
		}
		allocated, err := uc.allocate(spCtx, actor, upserted.Client.ID, row.AllocationCount)
		if err != nil {
			return err
		}
		result.Allocated = allocated
		result.Shortfall = row.AllocationCount - allocated
		return nil
	})
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Type != errors.ErrorTypeInternal {
			result.ClientID = 0
			result.Created = false
			result.Allocated = 0
			result.Shortfall = 0
			result.Error = describe(appErr)
			return result, nil
		}
		return result, err
	}
	return result, nil
}

// allocate links up to n unallocated in-stock units, lowest id first, and
// returns how many were linked.
func (uc *ReconcileClientsUseCase) allocate(ctx context.Context, actor auth.Actor, clientID uint, n int) (int, error) {
	ids, err := uc.equipmentRepo.SelectUnallocatedInStock(ctx, n)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	at := uc.now()
	units, err := uc.equipmentRepo.FindByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	eligible := make([]uint, 0, len(units))
	for _, u := range units {
		if err := u.Allocate(clientID, actor.ID, at); err != nil {
			uc.logger.Warnw("skipping unit that cannot be allocated", "equipment_id", u.ID(), "error", err)
			continue
		}
		eligible = append(eligible, u.ID())
	}
	if len(eligible) == 0 {
		return 0, nil
	}

	affected, err := uc.equipmentRepo.AllocateIfInStock(ctx, eligible, clientID, actor.ID, at)
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *BatchReport) add(row ClientRowResult) {
	r.Rows = append(r.Rows, row)
	if row.Error != "" {
		r.Skipped++
		r.Errors = append(r.Errors, fmt.Sprintf("line %d: %s", row.Line, row.Error))
		return
	}
	if row.Created {
		r.ClientsCreated++
	} else {
		r.ClientsUpdated++
	}
	r.Allocated += row.Allocated
	r.Shortfall += row.Shortfall
	if row.Shortfall > 0 {
		r.Errors = append(r.Errors, fmt.Sprintf("line %d: only %d of %d units available in stock",
			row.Line, row.Allocated, row.Requested))
	}
}

func describe(err error) string {
	if appErr := errors.GetAppError(err); appErr != nil {
		if appErr.Details != "" {
			return appErr.Message + ": " + appErr.Details
		}
		return appErr.Message
	}
	return err.Error()
}
