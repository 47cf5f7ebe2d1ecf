package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/equipment/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/services/sanitize"
)

type AddNoteCommand struct {
	Actor       auth.Actor
	EquipmentID uint
	Text        string
}

type AddNoteUseCase struct {
	equipmentRepo equipment.Repository
	noteRepo      equipment.NoteRepository
	now           func() time.Time
	logger        logger.Interface
}

func NewAddNoteUseCase(equipmentRepo equipment.Repository, noteRepo equipment.NoteRepository, logger logger.Interface) *AddNoteUseCase {
	return &AddNoteUseCase{
		equipmentRepo: equipmentRepo,
		noteRepo:      noteRepo,
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

func (uc *AddNoteUseCase) WithClock(now func() time.Time) *AddNoteUseCase {
	uc.now = now
	return uc
}

func (uc *AddNoteUseCase) Execute(ctx context.Context, cmd AddNoteCommand) (*dto.NoteDTO, error) {
	if !cmd.Actor.IsKnown() {
		return nil, errors.NewForbiddenError("an authenticated actor is required")
	}

	text := sanitize.Text(cmd.Text)
	if text == "" {
		return nil, errors.NewValidationError("note text is required")
	}

	unit, err := uc.equipmentRepo.FindByID(ctx, cmd.EquipmentID)
	if err != nil {
		uc.logger.Errorw("failed to get equipment", "equipment_id", cmd.EquipmentID, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to get equipment")
	}
	if unit == nil {
		return nil, errors.NewNotFoundError("equipment not found", fmt.Sprintf("%d", cmd.EquipmentID))
	}

	note, err := equipment.NewNote(unit.ID(), cmd.Actor.ID, text, nil, uc.now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.noteRepo.Create(ctx, note); err != nil {
		uc.logger.Errorw("failed to add note", "equipment_id", unit.ID(), "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to add note")
	}

	uc.logger.Infow("note added", "equipment_id", unit.ID(), "note_id", note.ID())
	return dto.ToNoteDTO(note), nil
}

type ListNotesUseCase struct {
	equipmentRepo equipment.Repository
	noteRepo      equipment.NoteRepository
	logger        logger.Interface
}

func NewListNotesUseCase(equipmentRepo equipment.Repository, noteRepo equipment.NoteRepository, logger logger.Interface) *ListNotesUseCase {
	return &ListNotesUseCase{equipmentRepo: equipmentRepo, noteRepo: noteRepo, logger: logger}
}

// Execute returns the unit's notes, newest first.
func (uc *ListNotesUseCase) Execute(ctx context.Context, equipmentID uint) ([]*dto.NoteDTO, error) {
	unit, err := uc.equipmentRepo.FindByID(ctx, equipmentID)
	if err != nil {
		uc.logger.Errorw("failed to get equipment", "equipment_id", equipmentID, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to get equipment")
	}
	if unit == nil {
		return nil, errors.NewNotFoundError("equipment not found", fmt.Sprintf("%d", equipmentID))
	}

	notes, err := uc.noteRepo.ListByEquipment(ctx, equipmentID)
	if err != nil {
		uc.logger.Errorw("failed to list notes", "equipment_id", equipmentID, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to list notes")
	}
	return dto.ToNoteDTOList(notes), nil
}
