package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/testutil"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
)

const sampleCatalog = `
models:
  - category: android_box
    brand: Aquario
    model: STV-2000
  - category: monitor
    brand: LG
    model: 43UT
    monitor_size: 43
`

func TestParseCatalog(t *testing.T) {
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, catalog.Models, 2)
	require.NotNil(t, catalog.Models[1].MonitorSize)
	assert.Equal(t, 43, *catalog.Models[1].MonitorSize)

	_, err = ParseCatalog([]byte("models:\n  - brand: X\n    modelo: Y\n"))
	assert.True(t, apperrors.IsValidationError(err), "unknown keys are rejected")

	_, err = ParseCatalog([]byte("models: []\n"))
	assert.True(t, apperrors.IsValidationError(err))
}

func TestSeedModels_Idempotent(t *testing.T) {
	s := testutil.NewStore(t)
	findOrCreate := NewFindOrCreateModelUseCase(s.Models, testutil.NewMockLogger()).WithClock(testutil.FixedClock)
	uc := NewSeedModelsUseCase(findOrCreate, s.TxMgr, testutil.NewMockLogger())
	catalog, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	ctx := context.Background()

	first, err := uc.Execute(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, &SeedModelsResult{Created: 2}, first)

	second, err := uc.Execute(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, &SeedModelsResult{Existing: 2}, second)

	list, err := NewListModelsUseCase(s.Models, testutil.NewMockLogger()).Execute(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "android_box", list[0].Category)
	assert.Equal(t, "monitor", list[1].Category)
}

func TestSeedModels_InvalidEntryRollsBack(t *testing.T) {
	s := testutil.NewStore(t)
	findOrCreate := NewFindOrCreateModelUseCase(s.Models, testutil.NewMockLogger())
	uc := NewSeedModelsUseCase(findOrCreate, s.TxMgr, testutil.NewMockLogger())

	_, err := uc.Execute(context.Background(), &Catalog{Models: []CatalogEntry{
		{Category: "android_box", Brand: "Aquario", Model: "STV-2000"},
		{Category: "projetor", Brand: "Epson", Model: "X1"},
	}})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "catalog entry 2")

	list, err := NewListModelsUseCase(s.Models, testutil.NewMockLogger()).Execute(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFindOrCreateModel(t *testing.T) {
	s := testutil.NewStore(t)
	existing := s.SeedModel(t, "Aquario", "STV-2000")
	uc := NewFindOrCreateModelUseCase(s.Models, testutil.NewMockLogger())
	ctx := context.Background()

	found, err := uc.Execute(ctx, FindOrCreateModelCommand{Brand: " Aquario ", ModelName: "STV-2000"})
	require.NoError(t, err)
	assert.False(t, found.Created)
	assert.Equal(t, existing.ID(), found.Model.ID)

	created, err := uc.Execute(ctx, FindOrCreateModelCommand{Category: "monitor", Brand: "LG", ModelName: "43UT"})
	require.NoError(t, err)
	assert.True(t, created.Created)
	assert.Equal(t, "monitor", created.Model.Category)
	assert.True(t, created.Model.IsActive)

	_, err = uc.Execute(ctx, FindOrCreateModelCommand{Brand: "", ModelName: "X"})
	assert.True(t, apperrors.IsValidationError(err))
}
