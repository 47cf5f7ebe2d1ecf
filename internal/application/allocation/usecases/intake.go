package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/common"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/equipment/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
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

// TechnicalDetails is advisory metadata captured at intake. It is stored as a
// note and never blocks the registration.
type TechnicalDetails struct {
	PlayerID       string `json:"player_id"`
	PlayerLegacyID string `json:"player_legacy_id"`
	OSVersion      string `json:"os_version"`
	AppVersion     string `json:"app_version"`
	Location       string `json:"location"`
	Unlinked       bool   `json:"unlinked"`
}

// IntakeCommand registers one new unit. Condition defaults to novo and
// EntryDate (YYYY-MM-DD) to today's business date.
type IntakeCommand struct {
	Actor          auth.Actor
	AssetTag       string
	SerialNumber   string
	ModelID        uint
	MACAddress     string
	Condition      string
	EntryDate      string
	Batch          string
	Notes          string
	OperationNotes *string
	Discarded      bool
	Technical      TechnicalDetails
}

type IntakeResult struct {
	Equipment   *dto.EquipmentDTO `json:"equipment"`
	OperationID uint              `json:"operation_id"`
	NoteID      *uint             `json:"note_id,omitempty"`
}

type IntakeUseCase struct {
	equipmentRepo equipment.Repository
	noteRepo      equipment.NoteRepository
	ledgerRepo    ledger.Repository
	modelRepo     devicemodel.Repository
	txMgr         *db.TransactionManager
	stockCache    cache.StockSummaryCache
	generateTag   vo.TagGenerator
	now           func() time.Time
	logger        logger.Interface
}

func NewIntakeUseCase(
	equipmentRepo equipment.Repository,
	noteRepo equipment.NoteRepository,
	ledgerRepo ledger.Repository,
	modelRepo devicemodel.Repository,
	txMgr *db.TransactionManager,
	stockCache cache.StockSummaryCache,
	logger logger.Interface,
) *IntakeUseCase {
	return &IntakeUseCase{
		equipmentRepo: equipmentRepo,
		noteRepo:      noteRepo,
		ledgerRepo:    ledgerRepo,
		modelRepo:     modelRepo,
		txMgr:         txMgr,
		stockCache:    stockCache,
		generateTag:   vo.RandomTagGenerator(""),
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

// WithTagGenerator replaces the random asset tag source.
func (uc *IntakeUseCase) WithTagGenerator(gen vo.TagGenerator) *IntakeUseCase {
	uc.generateTag = gen
	return uc
}

// WithClock replaces the wall clock, used by tests.
func (uc *IntakeUseCase) WithClock(now func() time.Time) *IntakeUseCase {
	uc.now = now
	return uc
}

// Execute creates the unit and its ENTRADA operation in one transaction. The
// technical note is written afterwards and its failure is only logged. When
// ctx already carries a transaction both steps join it, the note under a
// savepoint.
func (uc *IntakeUseCase) Execute(ctx context.Context, cmd IntakeCommand) (*IntakeResult, error) {
	uc.logger.Infow("executing intake use case",
		"actor_id", cmd.Actor.ID,
		"serial_number", cmd.SerialNumber,
		"model_id", cmd.ModelID,
	)

	if !cmd.Actor.IsKnown() {
		return nil, errors.NewForbiddenError("an authenticated actor is required")
	}

	params, err := uc.buildParams(ctx, cmd)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	unit, err := equipment.NewEquipment(params, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var op *ledger.Operation
	err = uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.equipmentRepo.Create(txCtx, unit); err != nil {
			return err
		}

		entry, err := ledger.NewOperation(
			ledgervo.OperationIntake,
			nil,
			cmd.Actor.ID,
			uc.operationNotes(cmd, params.Notes),
			now,
			[]ledger.ItemSpec{{EquipmentID: unit.ID()}},
		)
		if err != nil {
			return errors.NewValidationError(err.Error())
		}
		if err := uc.ledgerRepo.Record(txCtx, entry); err != nil {
			return err
		}
		op = entry
		return nil
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("intake rejected", "asset_tag", params.AssetTag, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to register equipment", "asset_tag", params.AssetTag, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to register equipment")
	}

	common.InvalidateStockSummary(ctx, uc.stockCache, uc.logger)

	result := &IntakeResult{
		Equipment:   dto.ToEquipmentDTO(unit),
		OperationID: op.ID(),
	}
	if noteID := uc.appendTechnicalNote(ctx, unit, cmd, now); noteID != 0 {
		result.NoteID = &noteID
	}

	uc.logger.Infow("equipment registered successfully",
		"equipment_id", unit.ID(),
		"asset_tag", unit.AssetTag(),
		"status", unit.Status(),
		"operation_id", op.ID(),
	)
	return result, nil
}

func (uc *IntakeUseCase) buildParams(ctx context.Context, cmd IntakeCommand) (equipment.RegistrationParams, error) {
	var params equipment.RegistrationParams

	if cmd.ModelID == 0 {
		return params, errors.NewValidationError("model_id is required")
	}
	model, err := uc.modelRepo.FindByID(ctx, cmd.ModelID)
	if err != nil {
		uc.logger.Errorw("failed to load equipment model", "model_id", cmd.ModelID, "error", err)
		return params, errors.AsPersistenceFailure(err, "failed to load equipment model")
	}
	if model == nil {
		return params, errors.NewNotFoundError("equipment model not found", fmt.Sprintf("%d", cmd.ModelID))
	}
	if !model.IsActive() {
		return params, errors.NewValidationError("equipment model is inactive", model.DisplayName())
	}

	serial := sanitize.Identifier(cmd.SerialNumber)
	tag, err := vo.ResolveAssetTag(cmd.AssetTag, serial, uc.generateTag)
	if err != nil {
		return params, errors.NewValidationError(err.Error())
	}

	mac, err := vo.NormalizeOptionalMAC(cmd.MACAddress)
	if err != nil {
		return params, errors.NewValidationError(err.Error())
	}

	condition := vo.ConditionNew
	if strings.TrimSpace(cmd.Condition) != "" {
		condition, err = vo.NewCondition(cmd.Condition)
		if err != nil {
			return params, errors.NewValidationError(err.Error())
		}
	}

	entryDate := biztime.CalendarDate(uc.now())
	if strings.TrimSpace(cmd.EntryDate) != "" {
		entryDate, err = biztime.ParseCalendarDate(cmd.EntryDate)
		if err != nil {
			return params, errors.NewValidationError(err.Error())
		}
	}

	var serialPtr *string
	if serial != "" {
		serialPtr = &serial
	}

	return equipment.RegistrationParams{
		AssetTag:     tag,
		SerialNumber: serialPtr,
		ModelID:      model.ID(),
		MACAddress:   mac,
		Condition:    condition,
		EntryDate:    entryDate,
		Batch:        sanitize.Optional(cmd.Batch),
		Notes:        sanitize.Optional(cmd.Notes),
		Discarded:    cmd.Discarded,
		ActorID:      cmd.Actor.ID,
	}, nil
}

func (uc *IntakeUseCase) operationNotes(cmd IntakeCommand, unitNotes *string) *string {
	if cmd.OperationNotes != nil {
		return sanitize.Optional(*cmd.OperationNotes)
	}
	return unitNotes
}

// appendTechnicalNote returns the new note id, or zero when nothing was
// written.
func (uc *IntakeUseCase) appendTechnicalNote(ctx context.Context, unit *equipment.Equipment, cmd IntakeCommand, now time.Time) uint {
	text, details := RenderTechnicalNote(cmd.Technical, cmd.Discarded)
	if text == "" {
		return 0
	}

	note, err := equipment.NewNote(unit.ID(), cmd.Actor.ID, text, details, now)
	if err != nil {
		uc.logger.Warnw("skipping technical note", "equipment_id", unit.ID(), "error", err)
		return 0
	}

	err = uc.txMgr.RunInSavepoint(ctx, func(txCtx context.Context) error {
		return uc.noteRepo.Create(txCtx, note)
	})
	if err != nil {
		uc.logger.Warnw("failed to write technical note", "equipment_id", unit.ID(), "error", err)
		return 0
	}
	return note.ID()
}

// RenderTechnicalNote builds the human readable note and its structured form.
// Both are empty when nothing advisory was supplied.
func RenderTechnicalNote(t TechnicalDetails, discarded bool) (string, map[string]any) {
	labelled := []struct {
		key, label, value string
	}{
		{"player_id", "ID do Player", t.PlayerID},
		{"player_legacy_id", "ID legado do Player", t.PlayerLegacyID},
		{"os_version", "Versão do OS", t.OSVersion},
		{"app_version", "Versão do App", t.AppVersion},
		{"location", "Localização", t.Location},
	}

	details := make(map[string]any)
	var lines []string
	for _, f := range labelled {
		v := sanitize.Text(f.value)
		if v == "" {
			continue
		}
		details[f.key] = v
		lines = append(lines, f.label+": "+v)
	}

	var flags []string
	if discarded {
		details["discarded"] = true
		flags = append(flags, "Equipamento marcado como descartado no cadastro inicial.")
	}
	if t.Unlinked {
		details["unlinked"] = true
		flags = append(flags, "Equipamento marcado como desvinculado no cadastro inicial.")
	}

	var sections []string
	if len(lines) > 0 {
		sections = append(sections, "Detalhes técnicos registrados no cadastro:\n"+strings.Join(lines, "\n"))
	}
	if len(flags) > 0 {
		sections = append(sections, strings.Join(flags, "\n"))
	}
	if len(sections) == 0 {
		return "", nil
	}
	return strings.Join(sections, "\n\n"), details
}
