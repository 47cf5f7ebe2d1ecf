package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/common"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/equipment/dto"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// AdministrativeOverrideCommand is the manual status correction. It writes no
// ledger operation.
type AdministrativeOverrideCommand struct {
	Actor       auth.Actor
	EquipmentID uint
	Status      string
}

type AdministrativeOverrideUseCase struct {
	equipmentRepo equipment.Repository
	stockCache    cache.StockSummaryCache
	now           func() time.Time
	logger        logger.Interface
}

func NewAdministrativeOverrideUseCase(
	equipmentRepo equipment.Repository,
	stockCache cache.StockSummaryCache,
	logger logger.Interface,
) *AdministrativeOverrideUseCase {
	return &AdministrativeOverrideUseCase{
		equipmentRepo: equipmentRepo,
		stockCache:    stockCache,
		now:           biztime.NowUTC,
		logger:        logger,
	}
}

func (uc *AdministrativeOverrideUseCase) WithClock(now func() time.Time) *AdministrativeOverrideUseCase {
	uc.now = now
	return uc
}

func (uc *AdministrativeOverrideUseCase) Execute(ctx context.Context, cmd AdministrativeOverrideCommand) (*dto.EquipmentDTO, error) {
	uc.logger.Infow("executing administrative override use case",
		"actor_id", cmd.Actor.ID,
		"equipment_id", cmd.EquipmentID,
		"status", cmd.Status,
	)

	if !cmd.Actor.CanOverrideStatus() {
		uc.logger.Warnw("status override denied", "actor_id", cmd.Actor.ID, "role", cmd.Actor.Role)
		return nil, errors.NewForbiddenError("only administrators and managers can override equipment status")
	}

	target, err := vo.NewEquipmentStatus(cmd.Status)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	unit, err := uc.equipmentRepo.FindByID(ctx, cmd.EquipmentID)
	if err != nil {
		uc.logger.Errorw("failed to get equipment", "equipment_id", cmd.EquipmentID, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to get equipment")
	}
	if unit == nil {
		return nil, errors.NewNotFoundError("equipment not found", fmt.Sprintf("%d", cmd.EquipmentID))
	}

	previous := unit.Status()
	if err := unit.OverrideStatus(target, cmd.Actor.ID, uc.now()); err != nil {
		uc.logger.Warnw("status override rejected", "equipment_id", unit.ID(), "from", previous, "to", target, "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.equipmentRepo.Update(ctx, unit); err != nil {
		uc.logger.Errorw("failed to update equipment status", "equipment_id", unit.ID(), "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to update equipment status")
	}

	common.InvalidateStockSummary(ctx, uc.stockCache, uc.logger)

	uc.logger.Infow("equipment status overridden",
		"equipment_id", unit.ID(),
		"from", previous,
		"to", unit.Status(),
	)
	return dto.ToEquipmentDTO(unit), nil
}
