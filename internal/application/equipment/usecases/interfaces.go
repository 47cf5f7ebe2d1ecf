package usecases

import (
	"context"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/equipment/dto"
)

type AdministrativeOverrideExecutor interface {
	Execute(ctx context.Context, cmd AdministrativeOverrideCommand) (*dto.EquipmentDTO, error)
}

type DeleteEquipmentExecutor interface {
	Execute(ctx context.Context, cmd DeleteEquipmentCommand) (*DeleteEquipmentResult, error)
}

type GetEquipmentExecutor interface {
	Execute(ctx context.Context, id uint) (*dto.EquipmentDTO, error)
}

type ListEquipmentExecutor interface {
	Execute(ctx context.Context, q ListEquipmentQuery) (*ListEquipmentResult, error)
}

type AddNoteExecutor interface {
	Execute(ctx context.Context, cmd AddNoteCommand) (*dto.NoteDTO, error)
}

type ListNotesExecutor interface {
	Execute(ctx context.Context, equipmentID uint) ([]*dto.NoteDTO, error)
}

var (
	_ AdministrativeOverrideExecutor = (*AdministrativeOverrideUseCase)(nil)
	_ DeleteEquipmentExecutor        = (*DeleteEquipmentUseCase)(nil)
	_ GetEquipmentExecutor           = (*GetEquipmentUseCase)(nil)
	_ ListEquipmentExecutor          = (*ListEquipmentUseCase)(nil)
	_ AddNoteExecutor                = (*AddNoteUseCase)(nil)
	_ ListNotesExecutor              = (*ListNotesUseCase)(nil)
)
