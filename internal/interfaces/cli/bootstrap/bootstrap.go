// Package bootstrap loads configuration and opens the database for the CLI
// commands.
package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/config"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/database"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/wire"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/auth"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/biztime"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/utils"
)

// Flags are the persistent flags every command reads.
type Flags struct {
	Env        string
	ConfigPath string
}

func (f *Flags) Register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&f.Env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
}

// ActorFlags identify who runs a batch command.
type ActorFlags struct {
	ID   uint
	Role string
}

func (f *ActorFlags) Register(cmd *cobra.Command) {
	cmd.Flags().UintVar(&f.ID, "actor-id", 0, "User id recorded as the operation author (required)")
	cmd.Flags().StringVar(&f.Role, "actor-role", constants.RoleAdmin, "Role of the acting user")
	_ = cmd.MarkFlagRequired("actor-id")
}

func (f *ActorFlags) Actor() auth.Actor {
	return auth.NewActor(f.ID, f.Role)
}

// Init loads configuration, then sets up logging, the business timezone and
// the database. Callers close the database with database.Close.
func Init(flags *Flags) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(flags.Env, flags.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	utils.SetDefaultPageSize(cfg.Inventory.DefaultPageSize)

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, logger.NewLogger(), nil
}

// UseCases wires the use cases over the open database, with the stock
// summary cache when redis is enabled. The returned func releases redis.
func UseCases(cfg *config.Config, log logger.Interface) (*wire.UseCases, func(), error) {
	client, err := wire.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	release := func() {}
	if client != nil {
		release = func() { _ = client.Close() }
	}

	stockCache := wire.NewStockCache(client, cfg.Inventory, log)
	return wire.NewUseCases(database.Get(), stockCache, cfg.Inventory, log), release, nil
}
