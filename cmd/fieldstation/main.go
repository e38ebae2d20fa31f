// Command fieldstation runs the Field Station farming simulator: the
// interactive game, headless simulations and the QA suites.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldstation/fieldstation/internal/config"
	"github.com/fieldstation/fieldstation/internal/persistence"
)

var cfg config.Config

// exitError carries a process exit code out of a command.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var rootCmd = &cobra.Command{
	Use:   "fieldstation",
	Short: "Field Station - a scientific farming simulator",
	Long: `Field Station is a farming game built on real agricultural science:
soil, weather, crop growth and market prices.

Run without arguments to play in the terminal.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		// The TUI owns stdout while playing.
		out := os.Stdout
		if name := cmd.Name(); name == "fieldstation" || name == "play" {
			out = os.Stderr
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
			Level: cfg.LogLevel,
		})))
		return nil
	},
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(qaCmd)
	rootCmd.AddCommand(precommitCmd)
}

// openLedger opens the run ledger. Commands that only record to it carry on
// without one.
func openLedger() *persistence.DB {
	db, err := ledger()
	if err != nil {
		slog.Warn("ledger unavailable", "path", cfg.DBPath, "error", err)
		return nil
	}
	return db
}

func ledger() (*persistence.DB, error) {
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	return db, nil
}

func main() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	var ee exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "fieldstation:", err)
	os.Exit(1)
}
