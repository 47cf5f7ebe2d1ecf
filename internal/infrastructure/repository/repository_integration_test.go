package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	ledgervo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	apperrors "github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/errors"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/query"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, gdb.AutoMigrate(models.AllModels()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func newUnit(t *testing.T, tag string) *equipment.Equipment {
	t.Helper()
	e, err := equipment.NewEquipment(equipment.RegistrationParams{
		AssetTag:  tag,
		ModelID:   1,
		Condition: vo.ConditionNew,
		EntryDate: fixedNow,
		ActorID:   1,
	}, fixedNow)
	require.NoError(t, err)
	return e
}

func createUnits(t *testing.T, repo equipment.Repository, tags ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		e := newUnit(t, tag)
		require.NoError(t, repo.Create(context.Background(), e))
		ids = append(ids, e.ID())
	}
	return ids
}

func TestEquipmentRepository_CreateAndFind(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEquipmentRepository(gdb, logger.NewDiscard())
	ctx := context.Background()

	serial := "SN123"
	e := newUnit(t, "SN123")
	e.UpdateDetails(equipment.DetailsUpdate{SerialNumber: &serial}, 1, fixedNow)
	require.NoError(t, repo.Create(ctx, e))
	assert.NotZero(t, e.ID())

	found, err := repo.FindByAssetTag(ctx, "SN123")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, vo.StatusInStock, found.Status())
	assert.Equal(t, vo.ConditionNew, found.Condition())

	bySerial, err := repo.FindBySerial(ctx, "SN123")
	require.NoError(t, err)
	require.NotNil(t, bySerial)
	assert.Equal(t, e.ID(), bySerial.ID())

	missing, err := repo.FindByID(ctx, 999)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	t.Run("duplicate asset tag is a conflict", func(t *testing.T) {
		err := repo.Create(ctx, newUnit(t, "SN123"))
		require.Error(t, err)
		assert.True(t, apperrors.IsConflictError(err))
	})
}

func TestEquipmentRepository_AllocateIfInStock(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEquipmentRepository(gdb, logger.NewDiscard())
	ctx := context.Background()
	ids := createUnits(t, repo, "A", "B", "C")

	n, err := repo.AllocateIfInStock(ctx, ids[:2], 7, 1, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.AllocateIfInStock(ctx, ids, 8, 1, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "only the unit still in stock is touched")

	units, err := repo.FindByIDs(ctx, ids)
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.True(t, units[0].HeldBy(7))
	assert.True(t, units[1].HeldBy(7))
	assert.True(t, units[2].HeldBy(8))
}

func TestEquipmentRepository_ReleaseIfAllocated(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEquipmentRepository(gdb, logger.NewDiscard())
	ctx := context.Background()
	ids := createUnits(t, repo, "A")

	_, err := repo.AllocateIfInStock(ctx, ids, 7, 1, fixedNow)
	require.NoError(t, err)

	unit, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)
	require.NoError(t, unit.Release(vo.ReturnMaintenance, 2, fixedNow))

	n, err := repo.ReleaseIfAllocated(ctx, unit, 99)
	require.NoError(t, err)
	assert.Zero(t, n, "wrong custodian")

	n, err = repo.ReleaseIfAllocated(ctx, unit, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, vo.StatusMaintenance, stored.Status())
	assert.Equal(t, vo.ConditionUsed, stored.Condition())
	assert.Nil(t, stored.CurrentClientID())

	n, err = repo.ReleaseIfAllocated(ctx, unit, 7)
	require.NoError(t, err)
	assert.Zero(t, n, "already released")
}

func TestEquipmentRepository_SelectUnallocatedInStock(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEquipmentRepository(gdb, logger.NewDiscard())
	ctx := context.Background()
	ids := createUnits(t, repo, "A", "B", "C", "D")

	_, err := repo.AllocateIfInStock(ctx, []uint{ids[1]}, 5, 1, fixedNow)
	require.NoError(t, err)

	got, err := repo.SelectUnallocatedInStock(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[0], ids[2]}, got)

	got, err = repo.SelectUnallocatedInStock(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[0], ids[2], ids[3]}, got)
}

func TestEquipmentRepository_UpdateClearsCustodian(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEquipmentRepository(gdb, logger.NewDiscard())
	ctx := context.Background()
	ids := createUnits(t, repo, "A")

	_, err := repo.AllocateIfInStock(ctx, ids, 5, 1, fixedNow)
	require.NoError(t, err)
	unit, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)

	require.NoError(t, unit.OverrideStatus(vo.StatusMaintenance, 1, fixedNow))
	require.NoError(t, repo.Update(ctx, unit))

	stored, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, vo.StatusMaintenance, stored.Status())
	assert.Nil(t, stored.CurrentClientID())
}

func TestEquipmentRepository_ListAndCount(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEquipmentRepository(gdb, logger.NewDiscard())
	ctx := context.Background()
	ids := createUnits(t, repo, "BOX-1", "BOX-2", "MON-1")

	_, err := repo.AllocateIfInStock(ctx, ids[:1], 3, 1, fixedNow)
	require.NoError(t, err)

	inStock := vo.StatusInStock
	list, total, err := repo.List(ctx, equipment.ListFilter{Status: &inStock})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	list, total, err = repo.List(ctx, equipment.ListFilter{Search: "BOX", PageFilter: query.PageFilter{Page: 1, PageSize: 1}})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 1)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[vo.StatusInStock])
	assert.Equal(t, int64(1), counts[vo.StatusAllocated])
	assert.Equal(t, int64(0), counts[vo.StatusDiscarded])
}

func TestOperationRepository_RecordAndCascade(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	eqRepo := NewEquipmentRepository(gdb, logger.NewDiscard())
	opRepo := NewOperationRepository(gdb, logger.NewDiscard())
	ids := createUnits(t, eqRepo, "A", "B")

	clientID := uint(4)
	solo, err := ledger.NewOperation(ledgervo.OperationDispatch, &clientID, 1, nil, fixedNow,
		[]ledger.ItemSpec{{EquipmentID: ids[0]}})
	require.NoError(t, err)
	require.NoError(t, opRepo.Record(ctx, solo))
	assert.NotZero(t, solo.ID())

	remarks := "sem controle"
	shared, err := ledger.NewOperation(ledgervo.OperationReturn, &clientID, 1, nil, fixedNow.Add(time.Hour),
		[]ledger.ItemSpec{
			{EquipmentID: ids[0], Return: &ledger.ReturnDetails{Power: true, HDMI: true, Condition: vo.ReturnOK, Remarks: &remarks}},
			{EquipmentID: ids[1], Return: &ledger.ReturnDetails{Condition: vo.ReturnDiscard}},
		})
	require.NoError(t, err)
	require.NoError(t, opRepo.Record(ctx, shared))

	found, err := opRepo.FindByID(ctx, shared.ID())
	require.NoError(t, err)
	require.Len(t, found.Items(), 2)
	details := found.Items()[0].ReturnDetails()
	require.NotNil(t, details)
	assert.True(t, details.Power)
	assert.False(t, details.Remote)
	assert.Equal(t, "sem controle", *details.Remarks)
	assert.Equal(t, vo.ReturnDiscard, found.Items()[1].ReturnDetails().Condition)

	history, err := opRepo.ListByEquipment(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, shared.ID(), history[0].ID(), "newest first")

	opIDs, err := opRepo.DeleteItemsByEquipment(ctx, ids[0])
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{solo.ID(), shared.ID()}, opIDs)

	removed, err := opRepo.DeleteEmptyOperations(ctx, opIDs)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	gone, err := opRepo.FindByID(ctx, solo.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := opRepo.FindByID(ctx, shared.ID())
	require.NoError(t, err)
	require.Len(t, kept.Items(), 1)
	assert.Equal(t, ids[1], kept.Items()[0].EquipmentID())
}

func TestOperationRepository_ListFilters(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	eqRepo := NewEquipmentRepository(gdb, logger.NewDiscard())
	opRepo := NewOperationRepository(gdb, logger.NewDiscard())
	ids := createUnits(t, eqRepo, "A", "B")

	for i, id := range ids {
		op, err := ledger.NewOperation(ledgervo.OperationIntake, nil, 1, nil, fixedNow.Add(time.Duration(i)*time.Hour),
			[]ledger.ItemSpec{{EquipmentID: id}})
		require.NoError(t, err)
		require.NoError(t, opRepo.Record(ctx, op))
	}

	intake := ledgervo.OperationIntake
	ops, total, err := opRepo.List(ctx, ledger.ListFilter{Type: &intake})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, ops, 2)

	ops, total, err = opRepo.List(ctx, ledger.ListFilter{EquipmentID: &ids[1]})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, []uint{ids[1]}, ops[0].EquipmentIDs())

	from := fixedNow.Add(30 * time.Minute)
	_, total, err = opRepo.List(ctx, ledger.ListFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestClientRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewClientRepository(gdb, logger.NewDiscard())
	ctx := context.Background()

	city := "Campinas"
	c, err := client.NewClient("C001", client.Profile{Name: "ACME", City: &city}, fixedNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	dup, err := client.NewClient("C001", client.Profile{Name: "Other"}, fixedNow)
	require.NoError(t, err)
	err = repo.Create(ctx, dup)
	assert.True(t, apperrors.IsConflictError(err))

	require.NoError(t, c.UpdateProfile(client.Profile{Name: "ACME Ltda"}, fixedNow))
	require.NoError(t, repo.Update(ctx, c))

	found, err := repo.FindByCode(ctx, "C001")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "ACME Ltda", found.Name())
	assert.Equal(t, "Campinas", *found.City())

	list, total, err := repo.List(ctx, client.ListFilter{Search: "acme"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

func TestDeviceModelRepository(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewDeviceModelRepository(gdb, logger.NewDiscard())
	ctx := context.Background()

	m, err := devicemodel.NewDeviceModel(devicemodel.CategoryAndroidBox, "Xiaomi", "Mi Box S", nil, fixedNow)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, m))

	again, err := devicemodel.NewDeviceModel(devicemodel.CategoryAndroidBox, "Xiaomi", "Mi Box S", nil, fixedNow)
	require.NoError(t, err)
	assert.True(t, apperrors.IsConflictError(repo.Create(ctx, again)))

	found, err := repo.FindByName(ctx, "Xiaomi", "Mi Box S")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.IsActive())

	all, err := repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTransactionRollbackUndoesGuardedWrite(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewEquipmentRepository(gdb, logger.NewDiscard())
	txMgr := db.NewTransactionManager(gdb)
	ctx := context.Background()
	ids := createUnits(t, repo, "A")

	err := txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		n, err := repo.AllocateIfInStock(txCtx, ids, 3, 1, fixedNow)
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
		return apperrors.NewStaleSelectionError("forced")
	})
	require.Error(t, err)

	unit, err := repo.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, vo.StatusInStock, unit.Status())
	assert.Nil(t, unit.CurrentClientID())
}
