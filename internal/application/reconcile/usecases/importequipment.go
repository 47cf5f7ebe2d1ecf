package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	allocationusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/allocation/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/common"
	modelusecases "github.com/TVDoutor/controle-de-estoque-sub000/internal/application/devicemodel/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
)

type ImportEquipmentCommand struct {
	Actor  auth.Actor
	Rows   []EquipmentRow
	DryRun bool
}

type EquipmentRowResult struct {
	Line        int    `json:"line"`
	AssetTag    string `json:"asset_tag,omitempty"`
	EquipmentID uint   `json:"equipment_id,omitempty"`
	Action      string `json:"action"`
	Error       string `json:"error,omitempty"`
}

const (
	ImportActionCreated = "created"
	ImportActionUpdated = "updated"
	ImportActionSkipped = "skipped"
)

type ImportReport struct {
	Total   int                  `json:"total"`
	Created int                  `json:"created"`
	Updated int                  `json:"updated"`
	Skipped int                  `json:"skipped"`
	DryRun  bool                 `json:"dry_run"`
	Rows    []EquipmentRowResult `json:"rows"`
	Errors  []string             `json:"errors"`
}

// ImportEquipmentUseCase loads an equipment batch. Each row runs in its own
// transaction, so a failing row is skipped without touching the others. New
// units go through intake with an ENTRADA operation; known units (matched by
// asset tag or serial) get model, MAC and notes refreshed and keep their
// status and custodian.
type ImportEquipmentUseCase struct {
	intake        *allocationusecases.IntakeUseCase
	findOrCreate  *modelusecases.FindOrCreateModelUseCase
	equipmentRepo equipment.Repository
	noteRepo      equipment.NoteRepository
	txMgr         *db.TransactionManager
	stockCache    cache.StockSummaryCache
	now           func() time.Time
	logger        logger.Interface
}

func NewImportEquipmentUseCase(
	intake *allocationusecases.IntakeUseCase,
	findOrCreate *modelusecases.FindOrCreateModelUseCase,
	equipmentRepo equipment.Repository,
	noteRepo equipment.NoteRepository,
	txMgr *db.TransactionManager,
	stockCache cache.StockSummaryCache,
	logger logger.Interface,
) *ImportEquipmentUseCase {
	return &ImportEquipmentUseCase{
		intake:        intake,
		findOrCreate:  findOrCreate,
		equipmentRepo: equipmentRepo,
		noteRepo:      noteRepo,
		txMgr:         txMgr,
		stockCache:    stockCache,
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

func (uc *ImportEquipmentUseCase) WithClock(now func() time.Time) *ImportEquipmentUseCase {
	uc.now = now
	return uc
}

func (uc *ImportEquipmentUseCase) Execute(ctx context.Context, cmd ImportEquipmentCommand) (*ImportReport, error) {
	uc.logger.Infow("executing import equipment use case",
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

	report := &ImportReport{Total: len(cmd.Rows), DryRun: cmd.DryRun}
	for _, row := range cmd.Rows {
		result := uc.importRow(ctx, cmd.Actor, row, cmd.DryRun)
		report.add(result)
	}

	if !cmd.DryRun && report.Created+report.Updated > 0 {
		common.InvalidateStockSummary(ctx, uc.stockCache, uc.logger)
	}

	uc.logger.Infow("equipment import finished",
		"total", report.Total,
		"created", report.Created,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"dry_run", report.DryRun,
	)
	return report, nil
}

func (uc *ImportEquipmentUseCase) importRow(ctx context.Context, actor auth.Actor, row EquipmentRow, dryRun bool) EquipmentRowResult {
	result := EquipmentRowResult{Line: row.Line, Action: ImportActionSkipped}

	if err := row.validate(); err != nil {
		result.Error = describe(err)
		return result
	}

	var outcome EquipmentRowResult
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		outcome, err = uc.applyRow(txCtx, actor, row)
		if err != nil {
			return err
		}
		if dryRun {
			return errDryRun
		}
		return nil
	})
	if err != nil && !stderrors.Is(err, errDryRun) {
		if !errors.IsAppError(err) {
			uc.logger.Errorw("equipment import row failed", "line", row.Line, "error", err)
			err = errors.AsPersistenceFailure(err, "failed to import row")
		}
		result.Error = describe(err)
		return result
	}
	return outcome
}

func (uc *ImportEquipmentUseCase) applyRow(ctx context.Context, actor auth.Actor, row EquipmentRow) (EquipmentRowResult, error) {
	serial := sanitize.Identifier(row.SerialNumber)

	modelID, err := uc.resolveModel(ctx, row.Model)
	if err != nil {
		return EquipmentRowResult{}, err
	}

	technical := allocationusecases.TechnicalDetails{
		PlayerID:       row.PlayerID,
		PlayerLegacyID: row.PlayerLegacyID,
		OSVersion:      row.OSVersion,
		AppVersion:     row.AppVersion,
		Location:       row.Location,
		Unlinked:       row.Unlinked,
	}

	existing, err := uc.findExisting(ctx, serial)
	if err != nil {
		return EquipmentRowResult{}, err
	}
	if existing != nil {
		return uc.updateExisting(ctx, actor, existing, serial, modelID, row, technical)
	}

	operationNotes := constants.BatchImportOperationNote
	out, err := uc.intake.Execute(ctx, allocationusecases.IntakeCommand{
		Actor:          actor,
		SerialNumber:   serial,
		ModelID:        modelID,
		MACAddress:     row.MACAddress,
		Condition:      string(vo.ConditionUsed),
		Notes:          uc.importNote(),
		OperationNotes: &operationNotes,
		Discarded:      row.Unlinked,
		Technical:      technical,
	})
	if err != nil {
		return EquipmentRowResult{}, err
	}
	return EquipmentRowResult{
		Line:        row.Line,
		AssetTag:    out.Equipment.AssetTag,
		EquipmentID: out.Equipment.ID,
		Action:      ImportActionCreated,
	}, nil
}

// resolveModel reads "<brand> <model name>"; the category is monitor when the
// text mentions one.
func (uc *ImportEquipmentUseCase) resolveModel(ctx context.Context, raw string) (uint, error) {
	brand, name, err := devicemodel.SplitName(sanitize.Text(raw))
	if err != nil {
		return 0, errors.NewValidationError(err.Error(), "model")
	}
	out, err := uc.findOrCreate.Execute(ctx, modelusecases.FindOrCreateModelCommand{
		Category:  string(devicemodel.GuessCategory(raw)),
		Brand:     brand,
		ModelName: name,
	})
	if err != nil {
		return 0, err
	}
	return out.Model.ID, nil
}

func (uc *ImportEquipmentUseCase) findExisting(ctx context.Context, serial string) (*equipment.Equipment, error) {
	unit, err := uc.equipmentRepo.FindByAssetTag(ctx, serial)
	if err != nil || unit != nil {
		return unit, err
	}
	return uc.equipmentRepo.FindBySerial(ctx, serial)
}

func (uc *ImportEquipmentUseCase) updateExisting(
	ctx context.Context,
	actor auth.Actor,
	unit *equipment.Equipment,
	serial string,
	modelID uint,
	row EquipmentRow,
	technical allocationusecases.TechnicalDetails,
) (EquipmentRowResult, error) {
	mac, err := vo.NormalizeOptionalMAC(row.MACAddress)
	if err != nil {
		return EquipmentRowResult{}, errors.NewValidationError(err.Error(), "mac_address")
	}

	now := uc.now()
	unit.UpdateDetails(equipment.DetailsUpdate{
		SerialNumber: &serial,
		ModelID:      modelID,
		MACAddress:   mac,
		Notes:        sanitize.Optional(uc.importNote()),
	}, actor.ID, now)
	if err := uc.equipmentRepo.Update(ctx, unit); err != nil {
		return EquipmentRowResult{}, err
	}

	if text, details := allocationusecases.RenderTechnicalNote(technical, false); text != "" {
		note, err := equipment.NewNote(unit.ID(), actor.ID, text, details, now)
		if err != nil {
			return EquipmentRowResult{}, errors.NewValidationError(err.Error())
		}
		if err := uc.noteRepo.Create(ctx, note); err != nil {
			return EquipmentRowResult{}, err
		}
	}

	return EquipmentRowResult{
		Line:        row.Line,
		AssetTag:    unit.AssetTag(),
		EquipmentID: unit.ID(),
		Action:      ImportActionUpdated,
	}, nil
}

func (uc *ImportEquipmentUseCase) importNote() string {
	return fmt.Sprintf("Importado em %s via importação em lote.", uc.now().In(biztime.Location()).Format("02/01/2006 15:04"))
}

func (r *ImportReport) add(row EquipmentRowResult) {
	r.Rows = append(r.Rows, row)
	switch row.Action {
	case ImportActionCreated:
		r.Created++
	case ImportActionUpdated:
		r.Updated++
	default:
		r.Skipped++
		r.Errors = append(r.Errors, fmt.Sprintf("line %d: %s", row.Line, row.Error))
	}
}
