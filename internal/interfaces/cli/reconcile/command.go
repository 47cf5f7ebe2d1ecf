// Package reconcile runs the spreadsheet batch jobs from the command line.
package reconcile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/application/reconcile/usecases"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/batchsource"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/infrastructure/database"
	"github.com/TVDoutor/controle-de-estoque-sub000/internal/interfaces/cli/bootstrap"
)

var (
	flags  = &bootstrap.Flags{}
	actor  = &bootstrap.ActorFlags{}
	dryRun bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Import client and equipment spreadsheets",
		Long: `Reconcile clients and their allocations, or import equipment, from CSV or XLSX files.
Each file runs in a single transaction; --dry-run rolls it back and only prints the report.`,
	}

	flags.Register(cmd)

	cmd.AddCommand(
		newClientsCommand(),
		newEquipmentCommand(),
	)
	return cmd
}

func newClientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients <file>",
		Short: "Upsert clients and allocate in-stock units to them",
		Args:  cobra.ExactArgs(1),
		RunE:  runClients,
	}
	actor.Register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report without committing")
	return cmd
}

func newEquipmentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment <file>",
		Short: "Create or update equipment from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE:  runEquipment,
	}
	actor.Register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report without committing")
	return cmd
}

func runClients(cmd *cobra.Command, args []string) error {
	records, err := batchsource.ReadFile(args[0])
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

	log.Infow("reconciling clients", "file", args[0], "rows", len(records), "dry_run", dryRun)

	report, err := ucs.ReconcileClients.Execute(cmd.Context(), usecases.ReconcileClientsCommand{
		Actor:  actor.Actor(),
		Rows:   usecases.ClientRowsFromRecords(records),
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), report)
}

func runEquipment(cmd *cobra.Command, args []string) error {
	records, err := batchsource.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := usecases.RequireEquipmentColumns(records); err != nil {
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

	log.Infow("importing equipment", "file", args[0], "rows", len(records), "dry_run", dryRun)

	report, err := ucs.ImportEquipment.Execute(cmd.Context(), usecases.ImportEquipmentCommand{
		Actor:  actor.Actor(),
		Rows:   usecases.EquipmentRowsFromRecords(records),
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}
	return printReport(cmd.OutOrStdout(), report)
}

func printReport(w io.Writer, report any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
