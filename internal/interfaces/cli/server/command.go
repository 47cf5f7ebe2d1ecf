package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/database"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/migration"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/cli/bootstrap"
	httpRouter "github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/handlers"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/http/middleware"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/wire"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/constants"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/goroutine"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

var (
	flags              = &bootstrap.Flags{}
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the inventory HTTP API with the specified configuration.`,
		RunE:  run,
	}

	flags.Register(cmd)
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Apply pending migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		flags.Env = envVar
	}

	cfg, log, err := bootstrap.Init(flags)
	if err != nil {
		return err
	}
	defer database.Close()

	log.Infow("starting server",
		"environment", flags.Env,
		"database_driver", cfg.Database.Driver,
		"auto_migrate", autoMigrate)

	gin.SetMode(mapEnvToGinMode(cfg.Server.Mode))
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := handleMigrations(cfg.Database.Driver, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	redisClient, err := wire.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	stockCache := wire.NewStockCache(redisClient, cfg.Inventory, log)
	useCases := wire.NewUseCases(database.Get(), stockCache, cfg.Inventory, log)

	router := httpRouter.NewRouter(useCases, mustSQLDB(), log.Named("http")).
		WithAllowedOrigins(cfg.Server.AllowedOrigins)
	if redisClient != nil && cfg.Server.UploadRateLimit > 0 {
		window := time.Duration(cfg.Server.UploadRateWindowSeconds) * time.Second
		router.WithUploadRateLimit(middleware.NewRateLimiter(redisClient, "upload", cfg.Server.UploadRateLimit, window, log.Named("ratelimit")))
	}
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	goroutine.SafeGo(log, "http-server", func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr(), "mode", gin.Mode())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		log.Errorw("failed to start server", "error", err)
		return err
	case <-quit:
	}

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func handleMigrations(driver string, log logger.Interface) error {
	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	if autoMigrate {
		if flags.Env == constants.EnvProduction {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}

		manager, err := migration.NewManager(flags.Env, driver)
		if err != nil {
			return err
		}
		log.Infow("running auto-migration", "strategy", manager.GetStrategy().GetName())
		if err := manager.Migrate(database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	strategy, err := migration.NewGooseStrategy(driver, migration.DefaultScriptsRoot)
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	version, err := strategy.GetVersion(database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}

func mustSQLDB() handlers.Pinger {
	sqlDB, err := database.Get().DB()
	if err != nil {
		logger.Fatal("failed to get sql.DB from gorm", "error", err)
	}
	return sqlDB
}

func mapEnvToGinMode(mode string) string {
	switch mode {
	case "production", "prod", "release":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
