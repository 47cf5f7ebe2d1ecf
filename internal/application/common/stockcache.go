// Package common holds helpers shared by several use case packages.
package common

import (
	"context"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/cache"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// InvalidateStockSummary drops the cached per-status counts after a committed
// mutation. A cache failure is logged and never surfaces to the caller.
func InvalidateStockSummary(ctx context.Context, c cache.StockSummaryCache, log logger.Interface) {
	if c == nil {
		return
	}
	if err := c.Invalidate(ctx); err != nil {
		log.Warnw("failed to invalidate stock summary cache", "error", err)
	}
}
