package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/fieldstation/fieldstation/internal/persistence"
	"github.com/fieldstation/fieldstation/internal/qa"
)

var (
	qaScreenshots string
	qaHistory     int
)

var qaCmd = &cobra.Command{
	Use:   "qa",
	Short: "Run the QA suites",
	Long: `Runs the game headlessly through scripted checks.

Exit status is 0 when everything passes, 1 when any case fails and 2 when
the harness itself could not run. "qa all" exits with the worst of the
suites' codes.`,
}

var qaTechnicalCmd = &cobra.Command{
	Use:   "technical",
	Short: "Initialization, rendering, navigation, validation and error handling",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return finish(runSuite(cmd, func(ctx context.Context, r *qa.Runner) *qa.Report {
			return r.RunTechnical(ctx)
		}))
	},
}

var qaFlowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Play a farm from new game through save and load",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return finish(runSuite(cmd, func(ctx context.Context, r *qa.Runner) *qa.Report {
			return r.RunFlow(ctx)
		}))
	},
}

var qaStoriesCmd = &cobra.Command{
	Use:   "stories [id...]",
	Short: "Validate the user stories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return finish(runStories(cmd, args))
	},
}

var qaAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Run technical, flow and story suites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tech := runSuite(cmd, func(ctx context.Context, r *qa.Runner) *qa.Report { return r.RunTechnical(ctx) })
		flow := runSuite(cmd, func(ctx context.Context, r *qa.Runner) *qa.Report { return r.RunFlow(ctx) })
		stories := runStories(cmd, nil)
		code := qa.Combine(tech, flow, stories)
		fmt.Fprintf(cmd.OutOrStdout(), "\nOverall: %s\n", verdict(code))
		return finish(code)
	},
}

var qaHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent QA runs from the ledger",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var precommitCmd = &cobra.Command{
	Use:   "precommit",
	Short: "Run the technical suite as a git pre-commit hook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Running pre-commit QA checks...")
		code := runSuite(cmd, func(ctx context.Context, r *qa.Runner) *qa.Report {
			return r.RunTechnical(ctx)
		})
		if code != qa.ExitPass {
			fmt.Fprintln(out, "QA checks failed. Commit aborted; fix the failures or commit with --no-verify.")
			return finish(qa.ExitFail)
		}
		fmt.Fprintln(out, "QA checks passed.")
		return nil
	},
}

func init() {
	qaCmd.PersistentFlags().StringVar(&qaScreenshots, "screenshots", "", "directory for rendered screens from screenshot steps")
	qaHistoryCmd.Flags().IntVar(&qaHistory, "limit", 10, "runs to show")
	qaCmd.AddCommand(qaTechnicalCmd, qaFlowCmd, qaStoriesCmd, qaAllCmd, qaHistoryCmd)
}

func newRunner() *qa.Runner {
	r := qa.NewRunner(filepath.Join(cfg.SaveDir, "qa"))
	if cfg.Seed != 0 {
		r.Seed = cfg.Seed
	}
	r.ScreenshotDir = qaScreenshots
	return r
}

// runSuite runs one suite, prints and records its report, and returns its
// exit code.
func runSuite(cmd *cobra.Command, suite func(context.Context, *qa.Runner) *qa.Report) int {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	rep := suite(ctx, newRunner())
	rep.WriteText(cmd.OutOrStdout())
	record(rep)
	return rep.ExitCode()
}

func runStories(cmd *cobra.Command, ids []string) int {
	stories, err := qa.LoadStories()
	if err == nil {
		stories, err = qa.Select(stories, ids...)
	}
	if err != nil {
		slog.Error("cannot load stories", "error", err)
		fmt.Fprintf(cmd.OutOrStdout(), "FRAMEWORK ERROR: %v\n", err)
		return qa.ExitFramework
	}
	return runSuite(cmd, func(ctx context.Context, r *qa.Runner) *qa.Report {
		return r.RunStories(ctx, stories)
	})
}

func record(rep *qa.Report) {
	db := openLedger()
	if db == nil {
		return
	}
	defer db.Close()
	if err := db.SaveRun(rep); err != nil {
		slog.Warn("record qa run failed", "run", rep.ID, "error", err)
	}
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := ledger()
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := db.RecentRuns(qaHistory)
	if err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No QA runs recorded.")
		return nil
	}
	if last, err := db.GetMeta(persistence.MetaLastQARun); err == nil {
		fmt.Fprintf(out, "Last run: %s\n", last)
	}
	for _, r := range runs {
		fmt.Fprintf(out, "%s  %-10s %3d passed %3d failed  exit %d  %s\n",
			r.ID[:8], r.Suite, r.Passed, r.Failed, r.ExitCode, humanize.Time(r.StartedAt()))
		if r.Failed == 0 {
			continue
		}
		cases, err := db.RunCases(r.ID)
		if err != nil {
			return fmt.Errorf("read cases: %w", err)
		}
		for _, c := range cases {
			if !c.Passed {
				fmt.Fprintf(out, "          %s %s: %s\n", c.CaseID, c.Name, c.Failure)
			}
		}
	}
	return nil
}

func verdict(code int) string {
	switch code {
	case qa.ExitPass:
		return "PASS"
	case qa.ExitFail:
		return "FAIL"
	default:
		return "ERROR"
	}
}

// finish turns a suite exit code into the command's result.
func finish(code int) error {
	if code == qa.ExitPass {
		return nil
	}
	return exitError{code: code}
}
