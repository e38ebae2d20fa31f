package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/fieldstation/fieldstation/internal/app"
	"github.com/fieldstation/fieldstation/internal/engine"
	"github.com/fieldstation/fieldstation/internal/glyph"
	"github.com/fieldstation/fieldstation/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

var (
	errHeadlessPlay = errors.New("play is interactive; use sim or qa in headless mode")
	errNoTerminal   = errors.New("no terminal attached; set FIELDSTATION_HEADLESS=1 and use sim or qa")
)

func runPlay(cmd *cobra.Command, args []string) error {
	if cfg.Headless {
		return errHeadlessPlay
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errNoTerminal
	}

	opts := app.Options{
		SavePath: cfg.SavePath(),
		Seed:     cfg.Seed,
		DayTicks: cfg.DayTicks,
		Glyphs:   glyph.DetectSupport(os.Getenv),
	}
	if db := openLedger(); db != nil {
		defer db.Close()
		opts.OnDay = func(saveID string, r engine.DayReport) {
			if err := db.RecordDay(saveID, r); err != nil {
				slog.Warn("record day failed", "day", r.Day, "error", err)
			}
		}
	}

	slog.Info("starting game", "save", opts.SavePath, "seed", opts.Seed)
	return tui.Run(app.New(opts))
}
