package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	eqvo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
)

func uintPtr(v uint) *uint { return &v }

func TestNewOperation(t *testing.T) {
	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)
	ret := &ReturnDetails{Power: true, Condition: eqvo.ReturnOK}

	tests := []struct {
		name     string
		opType   vo.OperationType
		clientID *uint
		specs    []ItemSpec
		wantErr  error
		fails    bool
	}{
		{name: "intake", opType: vo.OperationIntake, specs: []ItemSpec{{EquipmentID: 1}}},
		{name: "dispatch", opType: vo.OperationDispatch, clientID: uintPtr(3), specs: []ItemSpec{{EquipmentID: 1}, {EquipmentID: 2}}},
		{name: "return", opType: vo.OperationReturn, clientID: uintPtr(3), specs: []ItemSpec{{EquipmentID: 1, Return: ret}}},
		{name: "unknown type", opType: "TRANSFERENCIA", specs: []ItemSpec{{EquipmentID: 1}}, fails: true},
		{name: "no items", opType: vo.OperationIntake, wantErr: ErrNoItems, fails: true},
		{name: "dispatch without client", opType: vo.OperationDispatch, specs: []ItemSpec{{EquipmentID: 1}}, wantErr: ErrClientRequired, fails: true},
		{name: "return with zero client", opType: vo.OperationReturn, clientID: uintPtr(0), specs: []ItemSpec{{EquipmentID: 1, Return: ret}}, wantErr: ErrClientRequired, fails: true},
		{name: "intake with client", opType: vo.OperationIntake, clientID: uintPtr(3), specs: []ItemSpec{{EquipmentID: 1}}, wantErr: ErrClientNotAllowed, fails: true},
		{name: "duplicate equipment", opType: vo.OperationDispatch, clientID: uintPtr(3), specs: []ItemSpec{{EquipmentID: 1}, {EquipmentID: 1}}, fails: true},
		{name: "return without details", opType: vo.OperationReturn, clientID: uintPtr(3), specs: []ItemSpec{{EquipmentID: 1}}, fails: true},
		{name: "dispatch with details", opType: vo.OperationDispatch, clientID: uintPtr(3), specs: []ItemSpec{{EquipmentID: 1, Return: ret}}, fails: true},
		{name: "bad return condition", opType: vo.OperationReturn, clientID: uintPtr(3), specs: []ItemSpec{{EquipmentID: 1, Return: &ReturnDetails{Condition: "perdido"}}}, fails: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := NewOperation(tt.opType, tt.clientID, 9, nil, at, tt.specs)
			if !tt.fails {
				require.NoError(t, err)
				assert.Len(t, op.Items(), len(tt.specs))
				assert.Equal(t, at, op.OperationDate())
				return
			}
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestOperation_SetIDPropagatesToItems(t *testing.T) {
	op, err := NewOperation(vo.OperationDispatch, uintPtr(3), 9, nil, time.Now(),
		[]ItemSpec{{EquipmentID: 4}, {EquipmentID: 5}})
	require.NoError(t, err)

	require.NoError(t, op.SetID(42))
	for _, item := range op.Items() {
		assert.Equal(t, uint(42), item.OperationID())
	}
	assert.Equal(t, []uint{4, 5}, op.EquipmentIDs())
	assert.Error(t, op.SetID(43))
}

func TestNewOperationType(t *testing.T) {
	got, err := vo.NewOperationType(" saida ")
	require.NoError(t, err)
	assert.Equal(t, vo.OperationDispatch, got)
	assert.True(t, got.RequiresClient())
	assert.False(t, vo.OperationIntake.RequiresClient())
	assert.True(t, vo.OperationReturn.CarriesReturnDetails())

	_, err = vo.NewOperationType("ajuste")
	assert.Error(t, err)
}
