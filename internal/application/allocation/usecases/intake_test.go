package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/testutil"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	ledgervo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
)

type failingNoteRepo struct {
	equipment.NoteRepository
}

func (failingNoteRepo) Create(ctx context.Context, n *equipment.Note) error {
	return errors.New("disk full")
}

func newIntake(s *testutil.Store, c *testutil.MockStockCache, log *testutil.MockLogger) *IntakeUseCase {
	return NewIntakeUseCase(s.Equipment, s.Notes, s.Ledger, s.Models, s.TxMgr, c, log).
		WithClock(testutil.FixedClock).
		WithTagGenerator(func() (string, error) { return "TAG-00AA11", nil })
}

func TestIntake_RegistersUnitWithEntrada(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Proeletronic", "PROSB-5000")
	stockCache := testutil.NewMockStockCache()
	uc := newIntake(s, stockCache, testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), IntakeCommand{
		Actor:        testutil.Operator,
		SerialNumber: " abc123 ",
		ModelID:      model.ID(),
		MACAddress:   "aa-bb-cc-dd-ee-ff",
		EntryDate:    "2024-05-31",
		Notes:        "<b>lote novo</b>",
	})
	require.NoError(t, err)

	assert.Equal(t, "ABC123", result.Equipment.AssetTag)
	require.NotNil(t, result.Equipment.SerialNumber)
	assert.Equal(t, "ABC123", *result.Equipment.SerialNumber)
	require.NotNil(t, result.Equipment.MACAddress)
	assert.Equal(t, "AA:BB:CC:DD:EE:FF", *result.Equipment.MACAddress)
	assert.Equal(t, "em_estoque", result.Equipment.Status)
	assert.Equal(t, "novo", result.Equipment.Condition)
	assert.Equal(t, "2024-05-31", result.Equipment.EntryDate)
	assert.Nil(t, result.Equipment.CurrentClientID)
	assert.Nil(t, result.NoteID)

	op, err := s.Ledger.FindByID(context.Background(), result.OperationID)
	require.NoError(t, err)
	require.NotNil(t, op)
	assert.Equal(t, ledgervo.OperationIntake, op.Type())
	assert.Nil(t, op.ClientID())
	assert.Equal(t, []uint{result.Equipment.ID}, op.EquipmentIDs())
	require.NotNil(t, op.Notes())
	assert.Equal(t, "lote novo", *op.Notes())

	assert.Equal(t, 1, stockCache.Invalidations())
}

func TestIntake_AssetTagFallbacks(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	uc := newIntake(s, testutil.NewMockStockCache(), testutil.NewMockLogger())
	ctx := context.Background()

	supplied, err := uc.Execute(ctx, IntakeCommand{Actor: testutil.Operator, AssetTag: "pat-01", SerialNumber: "SN1", ModelID: model.ID()})
	require.NoError(t, err)
	assert.Equal(t, "PAT-01", supplied.Equipment.AssetTag)

	generated, err := uc.Execute(ctx, IntakeCommand{Actor: testutil.Operator, ModelID: model.ID()})
	require.NoError(t, err)
	assert.Equal(t, "TAG-00AA11", generated.Equipment.AssetTag)
	assert.Nil(t, generated.Equipment.SerialNumber)
	assert.Equal(t, "2024-06-03", generated.Equipment.EntryDate)
}

func TestIntake_Validation(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	inactive, err := devicemodel.NewDeviceModel(devicemodel.CategoryMonitor, "LG", "32LQ", nil, testutil.FixedNow)
	require.NoError(t, err)
	inactive.Deactivate()
	require.NoError(t, s.Models.Create(context.Background(), inactive))

	uc := newIntake(s, testutil.NewMockStockCache(), testutil.NewMockLogger())

	tests := []struct {
		name  string
		cmd   IntakeCommand
		check func(error) bool
	}{
		{"missing actor", IntakeCommand{ModelID: model.ID()}, apperrors.IsForbiddenError},
		{"missing model", IntakeCommand{Actor: testutil.Operator}, apperrors.IsValidationError},
		{"unknown model", IntakeCommand{Actor: testutil.Operator, ModelID: 999}, apperrors.IsNotFoundError},
		{"inactive model", IntakeCommand{Actor: testutil.Operator, ModelID: inactive.ID()}, apperrors.IsValidationError},
		{"short mac", IntakeCommand{Actor: testutil.Operator, ModelID: model.ID(), MACAddress: "AA:BB:CC"}, apperrors.IsValidationError},
		{"bad condition", IntakeCommand{Actor: testutil.Operator, ModelID: model.ID(), Condition: "quebrado"}, apperrors.IsValidationError},
		{"impossible date", IntakeCommand{Actor: testutil.Operator, ModelID: model.ID(), EntryDate: "2024-02-30"}, apperrors.IsValidationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}
	assert.Zero(t, s.OperationCount(t))
}

func TestIntake_DuplicateAssetTagRollsBack(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	uc := newIntake(s, testutil.NewMockStockCache(), testutil.NewMockLogger())
	ctx := context.Background()

	_, err := uc.Execute(ctx, IntakeCommand{Actor: testutil.Operator, SerialNumber: "DUP-1", ModelID: model.ID()})
	require.NoError(t, err)

	_, err = uc.Execute(ctx, IntakeCommand{Actor: testutil.Operator, AssetTag: "DUP-1", ModelID: model.ID()})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflictError(err))
	assert.Equal(t, int64(1), s.OperationCount(t))
}

func TestIntake_DiscardedWithTechnicalNote(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	uc := newIntake(s, testutil.NewMockStockCache(), testutil.NewMockLogger())

	result, err := uc.Execute(context.Background(), IntakeCommand{
		Actor:        testutil.Operator,
		SerialNumber: "SN-77",
		ModelID:      model.ID(),
		Discarded:    true,
		Technical: TechnicalDetails{
			PlayerID:   "P-100",
			OSVersion:  "Android 9",
			AppVersion: "",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusDiscarded.String(), result.Equipment.Status)
	require.NotNil(t, result.NoteID)

	notes, err := s.Notes.ListByEquipment(context.Background(), result.Equipment.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Text(), "ID do Player: P-100")
	assert.Contains(t, notes[0].Text(), "Versão do OS: Android 9")
	assert.NotContains(t, notes[0].Text(), "Versão do App")
	assert.Contains(t, notes[0].Text(), "descartado")
	assert.Equal(t, "P-100", notes[0].Details()["player_id"])
	assert.Equal(t, true, notes[0].Details()["discarded"])

	op, err := s.Ledger.FindByID(context.Background(), result.OperationID)
	require.NoError(t, err)
	assert.Equal(t, ledgervo.OperationIntake, op.Type())
}

func TestIntake_NoteFailureDoesNotUndoRegistration(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	log := testutil.NewMockLogger()
	uc := NewIntakeUseCase(s.Equipment, failingNoteRepo{s.Notes}, s.Ledger, s.Models, s.TxMgr, testutil.NewMockStockCache(), log).
		WithClock(testutil.FixedClock)

	result, err := uc.Execute(context.Background(), IntakeCommand{
		Actor:        testutil.Operator,
		SerialNumber: "SN-NOTE",
		ModelID:      model.ID(),
		Technical:    TechnicalDetails{PlayerID: "P-1"},
	})
	require.NoError(t, err)
	assert.Nil(t, result.NoteID)
	assert.True(t, log.HasEntry("WARN", "failed to write technical note"))

	stored := s.MustFind(t, result.Equipment.ID)
	assert.Equal(t, vo.StatusInStock, stored.Status())
	assert.Equal(t, int64(1), s.OperationCount(t))
}

func TestIntake_CacheFailureIsOnlyLogged(t *testing.T) {
	s := testutil.NewStore(t)
	model := s.SeedModel(t, "Aquario", "STV-2000")
	stockCache := testutil.NewMockStockCache()
	stockCache.SetInvalidateError(errors.New("connection refused"))
	log := testutil.NewMockLogger()

	_, err := newIntake(s, stockCache, log).Execute(context.Background(), IntakeCommand{
		Actor:        testutil.Operator,
		SerialNumber: "SN-CACHE",
		ModelID:      model.ID(),
	})
	require.NoError(t, err)
	assert.True(t, log.HasEntry("WARN", "failed to invalidate stock summary cache"))
}
