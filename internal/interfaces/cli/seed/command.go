package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/devicemodel/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/database"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/cli/bootstrap"
)

const defaultCatalogPath = "./configs/models.yaml"

var flags = &bootstrap.Flags{}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed reference data",
	}

	flags.Register(cmd)
	cmd.AddCommand(newModelsCommand())
	return cmd
}

func newModelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "models [catalog.yaml]",
		Short: "Register the device model catalog",
		Long:  `Find or create every model listed in the YAML catalog. Existing models are left untouched.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runModels,
	}
}

func runModels(cmd *cobra.Command, args []string) error {
	path := defaultCatalogPath
	if len(args) == 1 {
		path = args[0]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog: %w", err)
	}
	catalog, err := usecases.ParseCatalog(data)
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Init(flags)
	if err != nil {
		return err
	}
	defer database.Close()

	ucs, release, err := bootstrap.UseCases(cfg, log)
	if err != nil {
		return err
	}
	defer release()

	result, err := ucs.SeedModels.Execute(cmd.Context(), catalog)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Models seeded: %d created, %d already registered\n", result.Created, result.Existing)
	return nil
}
