package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/config"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// DefaultScriptsRoot is where migration create writes new scripts.
const DefaultScriptsRoot = "./internal/infrastructure/migration/scripts"

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks auto-migration for sqlite in development and the goose
// scripts everywhere else.
func NewManager(environment, driver string) (*Manager, error) {
	var strategy Strategy
	if strings.EqualFold(environment, constants.EnvDevelopment) && strings.EqualFold(driver, config.DriverSQLite) {
		strategy = NewGormAutoMigrateStrategy()
	} else {
		gooseStrategy, err := NewGooseStrategy(driver, DefaultScriptsRoot)
		if err != nil {
			return nil, err
		}
		strategy = gooseStrategy
	}
	return NewManagerWithStrategy(strategy), nil
}

func NewManagerWithStrategy(strategy Strategy) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   logger.NewComponentLogger("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
