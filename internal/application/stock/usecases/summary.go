package usecases

import (
	"context"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// StockSummaryResult counts units per status. Every status is present.
type StockSummaryResult struct {
	Counts map[string]int64 `json:"counts"`
	Total  int64            `json:"total"`
	Cached bool             `json:"cached"`
}

type StockSummaryExecutor interface {
	Execute(ctx context.Context) (*StockSummaryResult, error)
}

// StockSummaryUseCase reads through the summary cache. Cache errors degrade
// to a database read.
type StockSummaryUseCase struct {
	equipmentRepo equipment.Repository
	stockCache    cache.StockSummaryCache
	logger        logger.Interface
}

var _ StockSummaryExecutor = (*StockSummaryUseCase)(nil)

func NewStockSummaryUseCase(equipmentRepo equipment.Repository, stockCache cache.StockSummaryCache, logger logger.Interface) *StockSummaryUseCase {
	return &StockSummaryUseCase{
		equipmentRepo: equipmentRepo,
		stockCache:    stockCache,
		logger:        logger,
	}
}

func (uc *StockSummaryUseCase) Execute(ctx context.Context) (*StockSummaryResult, error) {
	if uc.stockCache != nil {
		counts, err := uc.stockCache.Get(ctx)
		if err != nil {
			uc.logger.Warnw("stock summary cache read failed, falling back to database", "error", err)
		} else if counts != nil {
			return newStockSummaryResult(counts, true), nil
		}
	}

	byStatus, err := uc.equipmentRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count equipment by status", "error", err)
		return nil, errors.AsPersistenceFailure(err, "failed to load stock summary")
	}

	counts := make(map[string]int64, len(vo.ValidStatuses))
	for status := range vo.ValidStatuses {
		counts[status.String()] = byStatus[status]
	}

	if uc.stockCache != nil {
		if err := uc.stockCache.Set(ctx, counts); err != nil {
			uc.logger.Warnw("failed to populate stock summary cache", "error", err)
		}
	}

	return newStockSummaryResult(counts, false), nil
}

func newStockSummaryResult(counts map[string]int64, cached bool) *StockSummaryResult {
	result := &StockSummaryResult{Counts: make(map[string]int64, len(vo.ValidStatuses)), Cached: cached}
	for status := range vo.ValidStatuses {
		n := counts[status.String()]
		result.Counts[status.String()] = n
		result.Total += n
	}
	return result
}
