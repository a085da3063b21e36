package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"inventory-ledger/internal/config"
	"inventory-ledger/internal/console"
	"inventory-ledger/internal/models"
)

var (
	cfg          *config.Config
	printMetrics bool

	rootCmd = &cobra.Command{
		Use:   "ledger",
		Short: "In-memory warehouse inventory ledger",
		Long: `ledger keeps a product catalog across warehouses, raises low-stock
alerts and records recent stock activity. Commands are read line by line.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.LoadConfig()
		},
	}

	runCmd = &cobra.Command{
		Use:   "run [script]",
		Short: "Execute console commands from a file, or from stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScript,
	}

	statsCmd = &cobra.Command{
		Use:   "stats [warehouse]",
		Short: "Print dashboard and warehouse stats",
		Args:  cobra.MaximumNArgs(1),
		RunE:  showStats,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&printMetrics, "metrics", false, "print gathered metrics before exiting")
	rootCmd.AddCommand(runCmd, statsCmd)
}

func runScript(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	a, err := newApp(ctx, cfg, out)
	if err != nil {
		return err
	}
	defer shutdown(a)

	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()
		in = f
	}

	failed, err := a.console.Run(ctx, in)
	if err != nil {
		return err
	}

	if printMetrics {
		if err := a.writeMetrics(out); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d command(s) failed", failed)
	}
	return nil
}

func showStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	a, err := newApp(cmd.Context(), cfg, out)
	if err != nil {
		return err
	}
	defer shutdown(a)

	warehouse := models.AllWarehouses
	if len(args) == 1 {
		warehouse = args[0]
		if !a.hasWarehouse(warehouse) {
			return fmt.Errorf("warehouse %q: %w", warehouse, console.ErrNotFound)
		}
	}
	if err := a.console.PrintDashboard(warehouse); err != nil {
		return err
	}

	if printMetrics {
		return a.writeMetrics(out)
	}
	return nil
}

func shutdown(a *app) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.close(ctx); err != nil {
		slog.Error("Failed to shut down telemetry", "error", err)
	}
}
