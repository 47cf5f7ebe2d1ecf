package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/testutil"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	ledgervo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
)

func newReturn(s *testutil.Store, c *testutil.MockStockCache) *ReturnUseCase {
	return NewReturnUseCase(s.Equipment, s.Ledger, s.TxMgr, c, testutil.NewMockLogger()).
		WithClock(testutil.FixedClock)
}

// dispatchTo allocates ids to a fresh client through the engine.
func dispatchTo(t *testing.T, s *testutil.Store, code string, ids ...uint) uint {
	t.Helper()
	c := s.SeedClient(t, code, "Cliente "+code)
	_, err := newDispatch(s, testutil.NewMockStockCache()).Execute(context.Background(), DispatchCommand{
		Actor:        testutil.Operator,
		EquipmentIDs: ids,
		ClientID:     c.ID(),
	})
	require.NoError(t, err)
	return c.ID()
}

func TestReturn_StatusMapping(t *testing.T) {
	tests := []struct {
		condition string
		want      vo.EquipmentStatus
	}{
		{"ok", vo.StatusInStock},
		{"", vo.StatusInStock},
		{"manutencao", vo.StatusMaintenance},
		{"descartar", vo.StatusDiscarded},
		{"DESCARTAR", vo.StatusDiscarded},
	}
	for _, tt := range tests {
		t.Run("condition="+tt.condition, func(t *testing.T) {
			s := testutil.NewStore(t)
			model := s.SeedModel(t, "Aquario", "STV-2000")
			ids := s.SeedUnits(t, model.ID(), "R-1")
			clientID := dispatchTo(t, s, "ACME", ids...)

			result, err := newReturn(s, testutil.NewMockStockCache()).Execute(context.Background(), ReturnCommand{
				Actor: testutil.Operator,
				Items: []ReturnItem{{EquipmentID: ids[0], Power: true, Condition: tt.condition}},
			})
			require.NoError(t, err)
			assert.Equal(t, ledgervo.OperationReturn.String(), result.Type)
			assert.Equal(t, clientID, *result.ClientID)

			unit := s.MustFind(t, ids[0])
			assert.Equal(t, tt.want, unit.Status())
			assert.Nil(t, unit.CurrentClientID())
			assert.Equal(t, vo.ConditionUsed, unit.Condition())
			s.AssertCustodyInvariant(t)
		})
	}
}

func TestReturn_RecordsChecklist(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "R-1", "R-2")
	dispatchTo(t, s, "ACME", ids...)

	result, err := newReturn(s, testutil.NewMockStockCache()).Execute(context.Background(), ReturnCommand{
		Actor: testutil.Operator,
		Items: []ReturnItem{
			{EquipmentID: ids[0], Power: true, HDMI: true, Remote: false, Condition: "ok"},
			{EquipmentID: ids[1], Power: false, HDMI: true, Remote: true, Condition: "manutencao", Remarks: "tela piscando"},
		},
		Notes: "retirada técnica",
	})
	require.NoError(t, err)

	op, err := s.Ledger.FindByID(context.Background(), result.OperationID)
	require.NoError(t, err)
	require.Len(t, op.Items(), 2)
	byUnit := map[uint]int{}
	for i, item := range op.Items() {
		byUnit[item.EquipmentID()] = i
	}

	first := op.Items()[byUnit[ids[0]]].ReturnDetails()
	require.NotNil(t, first)
	assert.True(t, first.Power)
	assert.True(t, first.HDMI)
	assert.False(t, first.Remote)
	assert.Equal(t, vo.ReturnOK, first.Condition)
	assert.Nil(t, first.Remarks)

	second := op.Items()[byUnit[ids[1]]].ReturnDetails()
	require.NotNil(t, second)
	assert.Equal(t, vo.ReturnMaintenance, second.Condition)
	require.NotNil(t, second.Remarks)
	assert.Equal(t, "tela piscando", *second.Remarks)
}

func TestReturn_MixedCustodianChangesNothing(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "M-1", "M-2")
	first := dispatchTo(t, s, "C1", ids[0])
	second := dispatchTo(t, s, "C2", ids[1])
	opsBefore := s.OperationCount(t)

	_, err := newReturn(s, testutil.NewMockStockCache()).Execute(context.Background(), ReturnCommand{
		Actor: testutil.Operator,
		Items: []ReturnItem{{EquipmentID: ids[0]}, {EquipmentID: ids[1]}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsMixedCustodianError(err))
	assert.True(t, apperrors.IsSelectionError(err))

	assert.Equal(t, opsBefore, s.OperationCount(t))
	assert.True(t, s.MustFind(t, ids[0]).HeldBy(first))
	assert.True(t, s.MustFind(t, ids[1]).HeldBy(second))
}

func TestReturn_StaleWhenUnitNotAllocated(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ids := s.SeedUnits(t, model.ID(), "S-1", "S-2")
	dispatchTo(t, s, "ACME", ids[0])
	opsBefore := s.OperationCount(t)

	_, err := newReturn(s, testutil.NewMockStockCache()).Execute(context.Background(), ReturnCommand{
		Actor: testutil.Operator,
		Items: []ReturnItem{{EquipmentID: ids[0]}, {EquipmentID: ids[1]}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsStaleSelectionError(err))
	assert.Equal(t, opsBefore, s.OperationCount(t))
	assert.Equal(t, vo.StatusAllocated, s.MustFind(t, ids[0]).Status())
}

func TestReturn_Rejections(t *testing.T) {
	s := testutil.NewStore(t)
	uc := newReturn(s, testutil.NewMockStockCache())

	_, err := uc.Execute(context.Background(), ReturnCommand{Actor: testutil.Operator})
	assert.True(t, apperrors.IsInvalidSelectionError(err))

	_, err = uc.Execute(context.Background(), ReturnCommand{
		Actor: testutil.Operator,
		Items: []ReturnItem{{EquipmentID: 1, Condition: "perdido"}},
	})
	assert.True(t, apperrors.IsValidationError(err))

	_, err = uc.Execute(context.Background(), ReturnCommand{Items: []ReturnItem{{EquipmentID: 1}}})
	assert.True(t, apperrors.IsForbiddenError(err))
}

func TestRoundTrip_IntakeDispatchReturn(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	ctx := context.Background()

	registered, err := newIntake(s, testutil.NewMockStockCache(), testutil.NewMockLogger()).Execute(ctx, IntakeCommand{
		Actor:        testutil.Operator,
		SerialNumber: "RT-1",
		ModelID:      model.ID(),
	})
	require.NoError(t, err)
	id := registered.Equipment.ID
	before := s.MustFind(t, id)
	assert.Equal(t, vo.ConditionNew, before.Condition())

	clientID := dispatchTo(t, s, "C", id)
	allocated := s.MustFind(t, id)
	assert.Equal(t, vo.StatusAllocated, allocated.Status())
	assert.True(t, allocated.HeldBy(clientID))

	_, err = newReturn(s, testutil.NewMockStockCache()).Execute(ctx, ReturnCommand{
		Actor: testutil.Operator,
		Items: []ReturnItem{{EquipmentID: id, Condition: "ok"}},
	})
	require.NoError(t, err)

	after := s.MustFind(t, id)
	assert.Equal(t, before.Status(), after.Status())
	assert.Equal(t, before.CurrentClientID(), after.CurrentClientID())
	assert.Equal(t, before.AssetTag(), after.AssetTag())
	assert.Equal(t, before.SerialNumber(), after.SerialNumber())
	assert.Equal(t, before.ModelID(), after.ModelID())
	assert.Equal(t, vo.ConditionUsed, after.Condition())

	history, err := s.Ledger.ListByEquipment(ctx, id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	for _, op := range history {
		assert.NotEmpty(t, op.Items())
	}
}
