package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fieldstation/fieldstation/internal/engine"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/savefile"
)

var (
	simDays   int
	simName   string
	simSeason string
	simSave   bool
	simPace   time.Duration
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a farm headlessly and print a report",
	Long: `Runs a farm for a number of days without any display. Every empty
tile is planted with the season's default crop and mature crops are
harvested automatically. With --pace the days are spread out in real time
and ctrl+c stops early with a report of what ran.`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&simDays, "days", 365, "days to simulate")
	simCmd.Flags().StringVar(&simName, "name", "Simulation Farm", "farm name")
	simCmd.Flags().StringVar(&simSeason, "season", "Spring", "starting season")
	simCmd.Flags().BoolVar(&simSave, "save", false, "write the final farm to the save slot")
	simCmd.Flags().DurationVar(&simPace, "pace", 0, "wall-clock time per day; 0 runs as fast as possible")
}

func runSim(cmd *cobra.Command, args []string) error {
	if simDays < 1 {
		return fmt.Errorf("--days must be positive, got %d", simDays)
	}
	season, err := farm.ParseSeason(simSeason)
	if err != nil {
		return err
	}

	sim := engine.NewSimulation(farm.FarmConfig{
		Name:     simName,
		Location: farm.LocationChampaign,
		Season:   season,
	}, cfg.Seed)
	sim.AutoHarvest = true

	if db := openLedger(); db != nil {
		defer db.Close()
		sim.OnDayReport = func(r engine.DayReport) {
			if err := db.RecordDay(sim.ID, r); err != nil {
				slog.Warn("record day failed", "day", r.Day, "error", err)
			}
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// One tick per day; each day plants what it can, then advances.
	eng := engine.NewEngine(1)
	days, extremes := 0, 0
	eng.OnDay = func(uint64) {
		sim.Grid.Each(func(t *farm.Tile) {
			if !t.Occupied() {
				// Out of season or out of money; try again tomorrow.
				_, _ = sim.PlantDefault(t.X, t.Y)
			}
		})
		if r := sim.TickDay(); r.Extreme {
			extremes++
		}
		days++
		if days >= simDays {
			cancel()
		}
	}

	if simPace > 0 {
		eng.Interval = simPace
		if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	} else {
		for days < simDays && ctx.Err() == nil {
			eng.Frame()
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (seed %d, save id %s)\n", sim.Config.Name, sim.Seed, sim.ID)
	if days < simDays {
		fmt.Fprintf(out, "  Interrupted after %d of %d days\n", days, simDays)
	}
	fmt.Fprintf(out, "  %d days, ending %s in %s\n", days, sim.Date.Format("Jan 2, 2006"), sim.Season)
	fmt.Fprintf(out, "  Money:     $%s (started $%s)\n",
		humanize.Comma(int64(sim.Money)), humanize.Comma(farm.StartingMoney))
	fmt.Fprintf(out, "  Planted:   %s\n", humanize.Comma(int64(sim.Stats.Planted)))
	fmt.Fprintf(out, "  Harvested: %s (earned $%s)\n",
		humanize.Comma(int64(sim.Stats.Harvested)), humanize.Comma(int64(sim.Stats.Earned)))
	fmt.Fprintf(out, "  Soil:      %.0f%% average quality\n", sim.Grid.AvgSoil()*100)
	fmt.Fprintf(out, "  Extreme weather days: %d\n", extremes)
	for _, a := range sim.Achievements() {
		if a.Unlocked {
			fmt.Fprintf(out, "  Achievement: %s\n", a.Name)
		}
	}

	if simSave {
		path := cfg.SavePath()
		if err := savefile.Write(path, savefile.Snapshot(sim)); err != nil {
			return err
		}
		fmt.Fprintf(out, "  Saved to %s\n", path)
	}
	return nil
}
