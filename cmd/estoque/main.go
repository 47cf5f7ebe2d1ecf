package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/cli/migrate"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/cli/reconcile"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/cli/seed"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/cli/server"
)

// @title Estoque API
// @version 1.0
// @description Equipment inventory, client allocation and operation ledger.
// @BasePath /api/v1
// @securityDefinitions.apikey ActorHeader
// @in header
// @name X-Actor-ID
func main() {
	rootCmd := &cobra.Command{
		Use:          "estoque",
		Short:        "Equipment inventory and client allocation service",
		Long:         `estoque tracks display equipment from intake through client allocation and return, with an append-only operation ledger.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		reconcile.NewCommand(),
		seed.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
