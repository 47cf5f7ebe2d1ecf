package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
)

var schemaTables = []string{
	constants.TableEquipmentModels,
	constants.TableClients,
	constants.TableEquipment,
	constants.TableEquipmentNotes,
	constants.TableOperations,
	constants.TableOperationItems,
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return gdb
}

func TestGooseStrategy_UpAndDownOnSQLite(t *testing.T) {
	gdb := openSQLite(t)
	strategy, err := NewGooseStrategy("sqlite", "")
	require.NoError(t, err)

	require.NoError(t, NewManagerWithStrategy(strategy).Migrate(gdb))
	for _, table := range schemaTables {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}

	version, err := strategy.GetVersion(gdb)
	require.NoError(t, err)
	assert.Equal(t, int64(1), version)

	// Running again is a no-op.
	require.NoError(t, strategy.Migrate(gdb))

	require.NoError(t, strategy.MigrateDown(gdb, 1))
	for _, table := range schemaTables {
		assert.False(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestGormAutoMigrateStrategy(t *testing.T) {
	gdb := openSQLite(t)
	require.NoError(t, NewGormAutoMigrateStrategy().Migrate(gdb))
	for _, table := range schemaTables {
		assert.True(t, gdb.Migrator().HasTable(table), table)
	}
}

func TestNewManager_PicksStrategy(t *testing.T) {
	m, err := NewManager(constants.EnvDevelopment, "sqlite")
	require.NoError(t, err)
	assert.Equal(t, "gorm_auto_migrate", m.GetStrategy().GetName())

	m, err = NewManager(constants.EnvProduction, "postgres")
	require.NoError(t, err)
	assert.Equal(t, "goose", m.GetStrategy().GetName())

	_, err = NewManager(constants.EnvProduction, "oracle")
	assert.ErrorContains(t, err, "unsupported database driver")
}
