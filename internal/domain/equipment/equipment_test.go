package equipment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
)

var testNow = time.Date(2024, 3, 10, 14, 0, 0, 0, time.UTC)

func newTestEquipment(t *testing.T) *Equipment {
	t.Helper()
	e, err := NewEquipment(RegistrationParams{
		AssetTag:  "SN-001",
		ModelID:   1,
		Condition: vo.ConditionNew,
		EntryDate: testNow,
		ActorID:   7,
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, e.SetID(10))
	return e
}

func TestNewEquipment(t *testing.T) {
	t.Run("registers in stock", func(t *testing.T) {
		e := newTestEquipment(t)
		assert.Equal(t, vo.StatusInStock, e.Status())
		assert.Nil(t, e.CurrentClientID())
		require.NotNil(t, e.CreatedBy())
		assert.Equal(t, uint(7), *e.CreatedBy())
		assert.NoError(t, e.CheckCustodyInvariant())
	})

	t.Run("discarded registers as baixado", func(t *testing.T) {
		e, err := NewEquipment(RegistrationParams{
			AssetTag: "X", ModelID: 1, Condition: vo.ConditionUsed,
			EntryDate: testNow, ActorID: 1, Discarded: true,
		}, testNow)
		require.NoError(t, err)
		assert.Equal(t, vo.StatusDiscarded, e.Status())
	})

	tests := []struct {
		name   string
		params RegistrationParams
	}{
		{"missing tag", RegistrationParams{ModelID: 1, Condition: vo.ConditionNew, EntryDate: testNow, ActorID: 1}},
		{"missing model", RegistrationParams{AssetTag: "A", Condition: vo.ConditionNew, EntryDate: testNow, ActorID: 1}},
		{"bad condition", RegistrationParams{AssetTag: "A", ModelID: 1, Condition: "quebrado", EntryDate: testNow, ActorID: 1}},
		{"missing date", RegistrationParams{AssetTag: "A", ModelID: 1, Condition: vo.ConditionNew, ActorID: 1}},
		{"missing actor", RegistrationParams{AssetTag: "A", ModelID: 1, Condition: vo.ConditionNew, EntryDate: testNow}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEquipment(tt.params, testNow)
			assert.Error(t, err)
		})
	}
}

func TestEquipment_SetID(t *testing.T) {
	e := newTestEquipment(t)
	assert.Error(t, e.SetID(11))
}

func TestEquipment_Allocate(t *testing.T) {
	e := newTestEquipment(t)
	later := testNow.Add(time.Hour)

	require.NoError(t, e.Allocate(3, 9, later))
	assert.Equal(t, vo.StatusAllocated, e.Status())
	assert.True(t, e.HeldBy(3))
	assert.False(t, e.HeldBy(4))
	assert.Equal(t, uint(9), *e.UpdatedBy())
	assert.Equal(t, later, e.UpdatedAt())
	assert.NoError(t, e.CheckCustodyInvariant())

	assert.Error(t, e.Allocate(4, 9, later), "already allocated")
}

func TestEquipment_Release(t *testing.T) {
	tests := []struct {
		condition vo.ReturnCondition
		want      vo.EquipmentStatus
	}{
		{vo.ReturnOK, vo.StatusInStock},
		{vo.ReturnMaintenance, vo.StatusMaintenance},
		{vo.ReturnDiscard, vo.StatusDiscarded},
	}
	for _, tt := range tests {
		t.Run(string(tt.condition), func(t *testing.T) {
			e := newTestEquipment(t)
			require.Equal(t, vo.ConditionNew, e.Condition())
			require.NoError(t, e.Allocate(3, 7, testNow))

			require.NoError(t, e.Release(tt.condition, 8, testNow))
			assert.Equal(t, tt.want, e.Status())
			assert.Equal(t, vo.ConditionUsed, e.Condition())
			assert.Nil(t, e.CurrentClientID())
			assert.NoError(t, e.CheckCustodyInvariant())
		})
	}

	t.Run("not allocated", func(t *testing.T) {
		e := newTestEquipment(t)
		assert.Error(t, e.Release(vo.ReturnOK, 8, testNow))
	})
}

func TestEquipment_OverrideStatus(t *testing.T) {
	t.Run("clears custodian", func(t *testing.T) {
		e := newTestEquipment(t)
		require.NoError(t, e.Allocate(3, 7, testNow))

		require.NoError(t, e.OverrideStatus(vo.StatusMaintenance, 1, testNow))
		assert.Equal(t, vo.StatusMaintenance, e.Status())
		assert.Nil(t, e.CurrentClientID())
		assert.NoError(t, e.CheckCustodyInvariant())
	})

	t.Run("revives baixado", func(t *testing.T) {
		e := newTestEquipment(t)
		require.NoError(t, e.OverrideStatus(vo.StatusDiscarded, 1, testNow))
		require.NoError(t, e.OverrideStatus(vo.StatusInStock, 1, testNow))
		assert.Equal(t, vo.StatusInStock, e.Status())
	})

	t.Run("cannot set alocado", func(t *testing.T) {
		e := newTestEquipment(t)
		assert.Error(t, e.OverrideStatus(vo.StatusAllocated, 1, testNow))
		assert.Equal(t, vo.StatusInStock, e.Status())
	})

	t.Run("alocado to alocado keeps custodian", func(t *testing.T) {
		e := newTestEquipment(t)
		require.NoError(t, e.Allocate(3, 7, testNow))
		require.NoError(t, e.OverrideStatus(vo.StatusAllocated, 1, testNow))
		assert.True(t, e.HeldBy(3))
	})

	t.Run("unknown status", func(t *testing.T) {
		e := newTestEquipment(t)
		assert.Error(t, e.OverrideStatus("perdido", 1, testNow))
	})
}

func TestEquipment_UpdateDetails(t *testing.T) {
	e := newTestEquipment(t)
	serial := "ABC"
	mac := "AA:BB:CC:DD:EE:FF"
	batch := "L2"

	e.UpdateDetails(DetailsUpdate{SerialNumber: &serial, ModelID: 4, MACAddress: &mac, Batch: &batch}, 2, testNow)
	assert.Equal(t, "ABC", *e.SerialNumber())
	assert.Equal(t, uint(4), e.ModelID())
	assert.Equal(t, mac, *e.MACAddress())
	assert.Equal(t, "L2", *e.Batch())
	assert.Equal(t, vo.StatusInStock, e.Status())

	other := "XYZ"
	e.UpdateDetails(DetailsUpdate{SerialNumber: &other}, 2, testNow)
	assert.Equal(t, "ABC", *e.SerialNumber(), "serial is immutable once set")
}

func TestReconstructEquipment_InvariantViolationIsDetectable(t *testing.T) {
	client := uint(5)
	e, err := ReconstructEquipment(1, "A", nil, 1, nil, vo.ConditionUsed, vo.StatusMaintenance,
		testNow, &client, nil, nil, nil, nil, testNow, testNow)
	require.NoError(t, err)
	assert.Error(t, e.CheckCustodyInvariant())

	_, err = ReconstructEquipment(0, "A", nil, 1, nil, vo.ConditionUsed, vo.StatusInStock,
		testNow, nil, nil, nil, nil, nil, testNow, testNow)
	assert.Error(t, err)
}

func TestNewNote(t *testing.T) {
	n, err := NewNote(1, 2, "troca de fonte", map[string]any{"os_version": "9"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "troca de fonte", n.Text())
	assert.Equal(t, "9", n.Details()["os_version"])

	_, err = NewNote(1, 2, "   ", nil, testNow)
	assert.Error(t, err)
	_, err = NewNote(0, 2, "x", nil, testNow)
	assert.Error(t, err)
}
