package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fieldstation/fieldstation/internal/persistence"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [save-id]",
	Short: "Show the recorded days of a farm",
	Long: `Prints the day-by-day ledger of a farm. Without a save id it shows the
farm that most recently recorded a day, from play or sim.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFarmHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 30, "show only the last N days; 0 shows all")
}

func runFarmHistory(cmd *cobra.Command, args []string) error {
	db, err := ledger()
	if err != nil {
		return err
	}
	defer db.Close()

	out := cmd.OutOrStdout()
	saveID := ""
	if len(args) == 1 {
		saveID = args[0]
	} else {
		saveID, err = db.GetMeta(persistence.MetaLastFarm)
		if errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintln(out, "No farm days recorded.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read last farm: %w", err)
		}
	}

	days, err := db.DayHistory(saveID)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	if len(days) == 0 {
		fmt.Fprintf(out, "No days recorded for %s.\n", saveID)
		return nil
	}

	first, last := days[0], days[len(days)-1]
	fmt.Fprintf(out, "Farm %s: days %d-%d, money $%s to $%s\n",
		saveID, first.Day, last.Day, humanize.Comma(int64(first.Money)), humanize.Comma(int64(last.Money)))

	if historyLimit > 0 && len(days) > historyLimit {
		days = days[len(days)-historyLimit:]
	}
	harvested := 0
	for _, d := range days {
		mark := " "
		if d.Extreme {
			mark = "!"
		}
		fmt.Fprintf(out, "%5d  %s  %-6s %s%-8s $%-8s soil %3.0f%%  growing %d  harvested %d\n",
			d.Day, d.Date, d.Season, mark, d.Weather, humanize.Comma(int64(d.Money)),
			d.AvgSoil*100, d.Growing, d.Harvested)
		harvested += d.Harvested
	}
	fmt.Fprintf(out, "%s auto-harvested over the days shown\n", humanize.Comma(int64(harvested)))
	return nil
}
