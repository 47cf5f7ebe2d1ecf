// Package testutil provides shared fixtures for use case tests: an in-memory
// SQLite store wired with the real repositories, a recording logger and
// in-memory doubles for collaborators without transactional behaviour.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/client"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/devicemodel"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment"
	vo "github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/equipment/valueobjects"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/domain/ledger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/persistence/models"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/repository"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/db"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// FixedNow is the clock used by every fixture.
var FixedNow = time.Date(2024, 6, 3, 14, 30, 0, 0, time.UTC)

func FixedClock() time.Time { return FixedNow }

var (
	Operator = auth.NewActor(7, constants.RoleOperador)
	Manager  = auth.NewActor(8, constants.RoleGestor)
	Admin    = auth.NewActor(9, constants.RoleAdmin)
)

// Store bundles the repositories over one SQLite database.
type Store struct {
	DB        *gorm.DB
	TxMgr     *db.TransactionManager
	Equipment equipment.Repository
	Notes     equipment.NoteRepository
	Ledger    ledger.Repository
	Clients   client.Repository
	Models    devicemodel.Repository
}

// NewStore opens a private in-memory database. A single connection makes
// concurrent transactions queue instead of failing with SQLITE_BUSY.
func NewStore(t *testing.T) *Store {
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

	log := logger.NewDiscard()
	return &Store{
		DB:        gdb,
		TxMgr:     db.NewTransactionManager(gdb),
		Equipment: repository.NewEquipmentRepository(gdb, log),
		Notes:     repository.NewEquipmentNoteRepository(gdb, log),
		Ledger:    repository.NewOperationRepository(gdb, log),
		Clients:   repository.NewClientRepository(gdb, log),
		Models:    repository.NewDeviceModelRepository(gdb, log),
	}
}

func (s *Store) SeedModel(t *testing.T, brand, name string) *devicemodel.DeviceModel {
	t.Helper()
	m, err := devicemodel.NewDeviceModel(devicemodel.CategoryAndroidBox, brand, name, nil, FixedNow)
	require.NoError(t, err)
	require.NoError(t, s.Models.Create(context.Background(), m))
	return m
}

// SeedUnits inserts em_estoque rows without ledger entries.
func (s *Store) SeedUnits(t *testing.T, modelID uint, tags ...string) []uint {
	t.Helper()
	ids := make([]uint, 0, len(tags))
	for _, tag := range tags {
		e, err := equipment.NewEquipment(equipment.RegistrationParams{
			AssetTag:  tag,
			ModelID:   modelID,
			Condition: vo.ConditionNew,
			EntryDate: FixedNow.Truncate(24 * time.Hour),
			ActorID:   Operator.ID,
		}, FixedNow)
		require.NoError(t, err)
		require.NoError(t, s.Equipment.Create(context.Background(), e))
		ids = append(ids, e.ID())
	}
	return ids
}

func (s *Store) SeedClient(t *testing.T, code, name string) *client.Client {
	t.Helper()
	c, err := client.NewClient(code, client.Profile{Name: name}, FixedNow)
	require.NoError(t, err)
	require.NoError(t, s.Clients.Create(context.Background(), c))
	return c
}

func (s *Store) MustFind(t *testing.T, id uint) *equipment.Equipment {
	t.Helper()
	e, err := s.Equipment.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, e, "equipment %d", id)
	return e
}

func (s *Store) OperationCount(t *testing.T) int64 {
	t.Helper()
	n, err := s.Ledger.Count(context.Background())
	require.NoError(t, err)
	return n
}

// AssertCustodyInvariant checks every stored unit.
func (s *Store) AssertCustodyInvariant(t *testing.T) {
	t.Helper()
	units, _, err := s.Equipment.List(context.Background(), equipment.ListFilter{})
	require.NoError(t, err)
	for _, u := range units {
		require.NoError(t, u.CheckCustodyInvariant())
	}
}
