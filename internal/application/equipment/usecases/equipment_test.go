package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/testutil"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	ledgervo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
)

func recordOperation(t *testing.T, s *testutil.Store, opType ledgervo.OperationType, clientID *uint, ids ...uint) *ledger.Operation {
	t.Helper()
	specs := make([]ledger.ItemSpec, 0, len(ids))
	for _, id := range ids {
		specs = append(specs, ledger.ItemSpec{EquipmentID: id})
	}
	op, err := ledger.NewOperation(opType, clientID, testutil.Operator.ID, nil, testutil.FixedNow, specs)
	require.NoError(t, err)
	require.NoError(t, s.Ledger.Record(context.Background(), op))
	return op
}

func allocate(t *testing.T, s *testutil.Store, clientID uint, ids ...uint) {
	t.Helper()
	n, err := s.Equipment.AllocateIfInStock(context.Background(), ids, clientID, testutil.Operator.ID, testutil.FixedNow)
	require.NoError(t, err)
	require.Equal(t, int64(len(ids)), n)
}

func TestAdministrativeOverride(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "O-1", "O-2")
	acme := s.SeedClient(t, "ACME", "Acme")
	allocate(t, s, acme.ID(), ids[0])
	stockCache := testutil.NewMockStockCache()
	uc := NewAdministrativeOverrideUseCase(s.Equipment, stockCache, testutil.NewMockLogger()).WithClock(testutil.FixedClock)
	ctx := context.Background()

	t.Run("clears custodian when leaving alocado", func(t *testing.T) {
		out, err := uc.Execute(ctx, AdministrativeOverrideCommand{Actor: testutil.Manager, EquipmentID: ids[0], Status: "manutencao"})
		require.NoError(t, err)
		assert.Equal(t, "manutencao", out.Status)
		assert.Nil(t, out.CurrentClientID)

		stored := s.MustFind(t, ids[0])
		assert.Equal(t, vo.StatusMaintenance, stored.Status())
		assert.Nil(t, stored.CurrentClientID())
		require.NotNil(t, stored.UpdatedBy())
		assert.Equal(t, testutil.Manager.ID, *stored.UpdatedBy())
		assert.Equal(t, 1, stockCache.Invalidations())
	})

	t.Run("baixado can be revised", func(t *testing.T) {
		_, err := uc.Execute(ctx, AdministrativeOverrideCommand{Actor: testutil.Admin, EquipmentID: ids[1], Status: "baixado"})
		require.NoError(t, err)
		_, err = uc.Execute(ctx, AdministrativeOverrideCommand{Actor: testutil.Admin, EquipmentID: ids[1], Status: "em_estoque"})
		require.NoError(t, err)
		assert.Equal(t, vo.StatusInStock, s.MustFind(t, ids[1]).Status())
	})

	t.Run("cannot set alocado without a dispatch", func(t *testing.T) {
		_, err := uc.Execute(ctx, AdministrativeOverrideCommand{Actor: testutil.Admin, EquipmentID: ids[1], Status: "alocado"})
		require.Error(t, err)
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("operators are denied", func(t *testing.T) {
		_, err := uc.Execute(ctx, AdministrativeOverrideCommand{Actor: testutil.Operator, EquipmentID: ids[1], Status: "baixado"})
		assert.True(t, apperrors.IsForbiddenError(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := uc.Execute(ctx, AdministrativeOverrideCommand{Actor: testutil.Admin, EquipmentID: ids[1], Status: "perdido"})
		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("unknown equipment", func(t *testing.T) {
		_, err := uc.Execute(ctx, AdministrativeOverrideCommand{Actor: testutil.Admin, EquipmentID: 404, Status: "baixado"})
		assert.True(t, apperrors.IsNotFoundError(err))
	})

	s.AssertCustodyInvariant(t)
}

func TestDeleteEquipment_CascadesToItemsAndNotes(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "X-1", "X-2")
	target, other := ids[0], ids[1]
	acme := s.SeedClient(t, "ACME", "Acme")
	clientID := acme.ID()
	ctx := context.Background()

	intake := recordOperation(t, s, ledgervo.OperationIntake, nil, target, other)
	dispatch := recordOperation(t, s, ledgervo.OperationDispatch, &clientID, target)
	allocate(t, s, clientID, target)

	for _, id := range ids {
		n, err := equipment.NewNote(id, testutil.Operator.ID, "conferido", nil, testutil.FixedNow)
		require.NoError(t, err)
		require.NoError(t, s.Notes.Create(ctx, n))
	}

	stockCache := testutil.NewMockStockCache()
	uc := NewDeleteEquipmentUseCase(s.Equipment, s.Notes, s.Ledger, s.TxMgr, stockCache, testutil.NewMockLogger())

	result, err := uc.Execute(ctx, DeleteEquipmentCommand{Actor: testutil.Admin, EquipmentID: target})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.RemovedOperations)
	assert.Equal(t, 1, stockCache.Invalidations())

	gone, err := s.Equipment.FindByID(ctx, target)
	require.NoError(t, err)
	assert.Nil(t, gone)

	notes, err := s.Notes.ListByEquipment(ctx, target)
	require.NoError(t, err)
	assert.Empty(t, notes)
	otherNotes, err := s.Notes.ListByEquipment(ctx, other)
	require.NoError(t, err)
	assert.Len(t, otherNotes, 1)

	history, err := s.Ledger.ListByEquipment(ctx, target)
	require.NoError(t, err)
	assert.Empty(t, history)

	kept, err := s.Ledger.FindByID(ctx, intake.ID())
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, []uint{other}, kept.EquipmentIDs())

	emptied, err := s.Ledger.FindByID(ctx, dispatch.ID())
	require.NoError(t, err)
	assert.Nil(t, emptied)

	assert.NotNil(t, s.MustFind(t, other))
}

func TestDeleteEquipment_Rejections(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "Y-1")
	uc := NewDeleteEquipmentUseCase(s.Equipment, s.Notes, s.Ledger, s.TxMgr, testutil.NewMockStockCache(), testutil.NewMockLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, DeleteEquipmentCommand{Actor: testutil.Manager, EquipmentID: ids[0]})
	assert.True(t, apperrors.IsForbiddenError(err))

	_, err = uc.Execute(ctx, DeleteEquipmentCommand{Actor: testutil.Admin, EquipmentID: 404})
	assert.True(t, apperrors.IsNotFoundError(err))

	assert.NotNil(t, s.MustFind(t, ids[0]))
}

func TestNotes_AddAndList(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "N-1")
	ctx := context.Background()

	add := NewAddNoteUseCase(s.Equipment, s.Notes, testutil.NewMockLogger())
	add.WithClock(testutil.FixedClock)
	first, err := add.Execute(ctx, AddNoteCommand{Actor: testutil.Operator, EquipmentID: ids[0], Text: "primeira"})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	add.WithClock(func() time.Time { return testutil.FixedNow.Add(time.Hour) })
	_, err = add.Execute(ctx, AddNoteCommand{Actor: testutil.Operator, EquipmentID: ids[0], Text: "<i>segunda</i>"})
	require.NoError(t, err)

	_, err = add.Execute(ctx, AddNoteCommand{Actor: testutil.Operator, EquipmentID: ids[0], Text: "   "})
	assert.True(t, apperrors.IsValidationError(err))
	_, err = add.Execute(ctx, AddNoteCommand{Actor: testutil.Operator, EquipmentID: 404, Text: "x"})
	assert.True(t, apperrors.IsNotFoundError(err))

	notes, err := NewListNotesUseCase(s.Equipment, s.Notes, testutil.NewMockLogger()).Execute(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "segunda", notes[0].Note)
	assert.Equal(t, "primeira", notes[1].Note)
	assert.Equal(t, testutil.Operator.ID, notes[0].UserID)
}

func TestListEquipment(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "L-1", "L-2", "Z-3")
	acme := s.SeedClient(t, "ACME", "Acme")
	allocate(t, s, acme.ID(), ids[0])
	uc := NewListEquipmentUseCase(s.Equipment, testutil.NewMockLogger())
	ctx := context.Background()

	all, err := uc.Execute(ctx, ListEquipmentQuery{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), all.Total)
	assert.Equal(t, 1, all.Page)

	inStock, err := uc.Execute(ctx, ListEquipmentQuery{Status: "em_estoque"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), inStock.Total)

	held, err := uc.Execute(ctx, ListEquipmentQuery{ClientID: ptr(acme.ID())})
	require.NoError(t, err)
	require.Len(t, held.Items, 1)
	assert.Equal(t, "L-1", held.Items[0].AssetTag)

	search, err := uc.Execute(ctx, ListEquipmentQuery{Search: "Z-"})
	require.NoError(t, err)
	require.Len(t, search.Items, 1)
	assert.Equal(t, ids[2], search.Items[0].ID)

	_, err = uc.Execute(ctx, ListEquipmentQuery{Status: "sumido"})
	assert.True(t, apperrors.IsValidationError(err))

	got, err := NewGetEquipmentUseCase(s.Equipment, testutil.NewMockLogger()).Execute(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "L-2", got.AssetTag)

	_, err = NewGetEquipmentUseCase(s.Equipment, testutil.NewMockLogger()).Execute(ctx, 404)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func ptr[T any](v T) *T { return &v }
