package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/testutil"
)

func TestStockSummary_ReadThrough(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "S-1", "S-2", "S-3")
	acme := s.SeedClient(t, "ACME", "Acme")
	n, err := s.Equipment.AllocateIfInStock(context.Background(), ids[:1], acme.ID(), testutil.Operator.ID, testutil.FixedNow)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	stockCache := testutil.NewMockStockCache()
	uc := NewStockSummaryUseCase(s.Equipment, stockCache, testutil.NewMockLogger())
	ctx := context.Background()

	first, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, int64(2), first.Counts["em_estoque"])
	assert.Equal(t, int64(1), first.Counts["alocado"])
	assert.Equal(t, int64(0), first.Counts["manutencao"])
	assert.Equal(t, int64(0), first.Counts["baixado"])
	assert.Equal(t, int64(3), first.Total)
	assert.Equal(t, 1, stockCache.Sets())

	second, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Counts, second.Counts)
	assert.Equal(t, 1, stockCache.Sets())

	require.NoError(t, stockCache.Invalidate(ctx))
	third, err := uc.Execute(ctx)
	require.NoError(t, err)
	assert.False(t, third.Cached)
}

func TestStockSummary_CacheFailureFallsBack(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	s.SeedUnits(t, model.ID(), "S-1")

	stockCache := testutil.NewMockStockCache()
	stockCache.SetGetError(errors.New("redis: connection refused"))
	log := testutil.NewMockLogger()

	out, err := NewStockSummaryUseCase(s.Equipment, stockCache, log).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Counts["em_estoque"])
	assert.True(t, log.HasEntry("WARN", "stock summary cache read failed"))
}

func TestStockSummary_WithoutCache(t *testing.T) {
	s := testutil.NewStore(t)

	out, err := NewStockSummaryUseCase(s.Equipment, nil, testutil.NewMockLogger()).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Counts, 4)
	assert.Zero(t, out.Total)
}
