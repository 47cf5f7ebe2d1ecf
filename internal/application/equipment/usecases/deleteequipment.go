package usecases

import (
	"context"
	"fmt"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/common"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

type DeleteEquipmentCommand struct {
	Actor       auth.Actor
	EquipmentID uint
}

type DeleteEquipmentResult struct {
	EquipmentID       uint  `json:"equipment_id"`
	RemovedOperations int64 `json:"removed_operations"`
}

type DeleteEquipmentUseCase struct {
	equipmentRepo equipment.Repository
	noteRepo      equipment.NoteRepository
	ledgerRepo    ledger.Repository
	txMgr         *db.TransactionManager
	stockCache    cache.StockSummaryCache
	logger        logger.Interface
}

func NewDeleteEquipmentUseCase(
	equipmentRepo equipment.Repository,
	noteRepo equipment.NoteRepository,
	ledgerRepo ledger.Repository,
	txMgr *db.TransactionManager,
	stockCache cache.StockSummaryCache,
	logger logger.Interface,
) *DeleteEquipmentUseCase {
	return &DeleteEquipmentUseCase{
		equipmentRepo: equipmentRepo,
		noteRepo:      noteRepo,
		ledgerRepo:    ledgerRepo,
		txMgr:         txMgr,
		stockCache:    stockCache,
		logger:        logger,
	}
}

// Execute removes the unit's operation items and notes, then the unit.
// Operations left without any item are removed as well so no ledger entry
// ends up empty.
func (uc *DeleteEquipmentUseCase) Execute(ctx context.Context, cmd DeleteEquipmentCommand) (*DeleteEquipmentResult, error) {
	uc.logger.Infow("executing delete equipment use case", "actor_id", cmd.Actor.ID, "equipment_id", cmd.EquipmentID)

	if !cmd.Actor.CanDeleteEquipment() {
		uc.logger.Warnw("equipment deletion denied", "actor_id", cmd.Actor.ID, "role", cmd.Actor.Role)
		return nil, errors.NewForbiddenError("only administrators can delete equipment")
	}
	if cmd.EquipmentID == 0 {
		return nil, errors.NewValidationError("equipment id is required")
	}

	var removedOps int64
	err := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		opIDs, err := uc.ledgerRepo.DeleteItemsByEquipment(txCtx, cmd.EquipmentID)
		if err != nil {
			return err
		}
		if err := uc.noteRepo.DeleteByEquipment(txCtx, cmd.EquipmentID); err != nil {
			return err
		}
		deleted, err := uc.equipmentRepo.Delete(txCtx, cmd.EquipmentID)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return errors.NewNotFoundError("equipment not found", fmt.Sprintf("%d", cmd.EquipmentID))
		}
		removedOps, err = uc.ledgerRepo.DeleteEmptyOperations(txCtx, opIDs)
		return err
	})
	if err != nil {
		if errors.IsAppError(err) {
			uc.logger.Warnw("equipment deletion rejected", "equipment_id", cmd.EquipmentID, "error", err)
			return nil, err
		}
		uc.logger.Errorw("failed to delete equipment", "equipment_id", cmd.EquipmentID, "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to delete equipment")
	}

	common.InvalidateStockSummary(ctx, uc.stockCache, uc.logger)

	uc.logger.Infow("equipment deleted successfully",
		"equipment_id", cmd.EquipmentID,
		"removed_operations", removedOps,
	)
	return &DeleteEquipmentResult{EquipmentID: cmd.EquipmentID, RemovedOperations: removedOps}, nil
}
