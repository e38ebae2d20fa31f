package qa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fieldstation/fieldstation/internal/app"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/screen"
	"github.com/fieldstation/fieldstation/internal/setup"
	"github.com/fieldstation/fieldstation/internal/state"
)

// check is one technical test case. It gets a fresh app, and spawn builds
// further apps with the same seed in the suite's save directory.
type check struct {
	id   string
	name string
	run  func(a *app.App, spawn func(name string) *app.App) error
}

var technicalChecks = []check{
	{"T001", "Game initialization", checkInitialization},
	{"T002", "UI rendering", checkRendering},
	{"T003", "Menu navigation", checkMenuNavigation},
	{"T004", "Farm setup flow", checkSetupValidation},
	{"T005", "Input handling", checkInputHandling},
	{"T006", "Button interactions", checkButtons},
	{"T007", "Error handling", checkErrorHandling},
}

// RunTechnical runs the technical suite.
func (r *Runner) RunTechnical(ctx context.Context) *Report {
	return r.runChecks(ctx, "technical", technicalChecks)
}

func (r *Runner) runChecks(ctx context.Context, suite string, checks []check) *Report {
	rep := newReport(suite)
	defer rep.finish()

	dir, cleanup, err := r.saveDir()
	if err != nil {
		rep.FrameworkErr = err
		return rep
	}
	defer cleanup()

	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			rep.FrameworkErr = err
			return rep
		}
		start := time.Now()
		a := r.newApp(dir, c.id)
		spawn := func(name string) *app.App { return r.newApp(dir, c.id+"_"+name) }
		err := guard(func() error { return c.run(a, spawn) })
		res := CaseResult{ID: c.id, Name: c.name, Passed: err == nil, Duration: time.Since(start)}
		if err != nil {
			res.Failure = err.Error()
		}
		slog.Info("check finished", "suite", suite, "id", c.id, "passed", res.Passed)
		rep.add(res)
	}
	return rep
}

func expectState(a *app.App, want state.GameState) error {
	if got := a.State(); got != want {
		return fmt.Errorf("expected %s, got %s", want, got)
	}
	return nil
}

func checkInitialization(a *app.App, _ func(string) *app.App) error {
	if err := expectState(a, state.MainMenu); err != nil {
		return err
	}
	if a.InProgress() || a.Sim() != nil {
		return errors.New("fresh app has a farm")
	}
	if err := Check(a, "selected:"+state.TargetNewGame); err != nil {
		return err
	}
	if _, ok := a.Element(state.TargetContinue); ok {
		return errors.New("continue offered without a game")
	}
	return nil
}

func checkRendering(a *app.App, spawn func(string) *app.App) error {
	for _, s := range state.All {
		fresh := spawn(s.String())
		if err := Navigate(fresh, s); err != nil {
			return err
		}
		if out := fresh.Render(); strings.TrimSpace(out) == "" {
			return fmt.Errorf("%s rendered nothing", s)
		}
		if _, ok := fresh.Element(screen.ElemTitle); !ok {
			return fmt.Errorf("%s has no page title", s)
		}
	}
	// The playing screen must survive time passing too.
	if err := Navigate(a, state.Playing); err != nil {
		return err
	}
	for range 3 * QADayTicks {
		a.Frame()
	}
	if a.Sim().Day != 4 {
		return fmt.Errorf("expected day 4 after %d frames, got %d", 3*QADayTicks, a.Sim().Day)
	}
	a.Render()
	return nil
}

func checkMenuNavigation(a *app.App, _ func(string) *app.App) error {
	opts := state.MainMenuOptions(false)
	steps := []struct {
		key  string
		want string
	}{
		{"down", opts[1]},
		{"down", opts[2]},
		{"up", opts[1]},
		{"up", opts[0]},
		{"up", opts[len(opts)-1]},
		{"down", opts[0]},
	}
	for _, s := range steps {
		a.Dispatch(screen.Key(s.key))
		if err := Check(a, "selected:"+s.want); err != nil {
			return fmt.Errorf("after %s: %w", s.key, err)
		}
	}
	for target, want := range map[string]state.GameState{
		state.TargetNewGame:      state.FarmSetup,
		state.TargetAchievements: state.Achievements,
		state.TargetHelp:         state.Help,
		state.TargetSettings:     state.Settings,
		state.TargetAbout:        state.About,
	} {
		a.Dispatch(screen.Click(target))
		if err := expectState(a, want); err != nil {
			return fmt.Errorf("click %s: %w", target, err)
		}
		a.Dispatch(screen.Key("esc"))
		if err := expectState(a, state.MainMenu); err != nil {
			return fmt.Errorf("esc from %s: %w", want, err)
		}
	}
	return nil
}

func checkSetupValidation(a *app.App, _ func(string) *app.App) error {
	for _, tc := range []struct {
		cfg  farm.FarmConfig
		want bool
	}{
		{farm.FarmConfig{}, false},
		{farm.FarmConfig{Name: "Farm"}, false},
		{farm.FarmConfig{Season: farm.SeasonFall}, false},
		{farm.FarmConfig{Name: "   ", Season: farm.SeasonFall}, false},
		{farm.FarmConfig{Name: "Farm", Season: farm.SeasonFall}, true},
	} {
		if got := setup.CanStart(tc.cfg); got != tc.want {
			return fmt.Errorf("CanStart(%q, %s) = %v", tc.cfg.Name, tc.cfg.Season, got)
		}
	}

	if err := Navigate(a, state.FarmSetup); err != nil {
		return err
	}
	if err := Check(a, "disabled:"+screen.ElemStart); err != nil {
		return err
	}
	a.Dispatch(screen.Click(screen.ElemStart))
	if err := expectState(a, state.FarmSetup); err != nil {
		return fmt.Errorf("disabled start: %w", err)
	}
	a.Dispatch(screen.Type(screen.ElemFarmName, "Validation Farm"))
	if err := Check(a, "disabled:"+screen.ElemStart); err != nil {
		return err
	}
	a.Dispatch(screen.Click(screen.SeasonElement(farm.SeasonSummer)))
	if err := Check(a, "enabled:"+screen.ElemStart); err != nil {
		return err
	}
	a.Dispatch(screen.Click(screen.ElemStart))
	if err := expectState(a, state.Playing); err != nil {
		return err
	}
	if got := a.Sim().Config; got.Name != "Validation Farm" || got.Season != farm.SeasonSummer {
		return fmt.Errorf("farm started with %+v", got)
	}
	return nil
}

// checkInputHandling sends unmapped input to every screen; none may change
// state.
func checkInputHandling(_ *app.App, spawn func(string) *app.App) error {
	unmapped := []screen.Input{
		screen.Key("f12"),
		screen.Key("ctrl+q"),
		screen.Click("no_such_element"),
		screen.Hover("no_such_element"),
		screen.Type("no_such_element", "text"),
	}
	for _, s := range state.All {
		a := spawn(s.String())
		if err := Navigate(a, s); err != nil {
			return err
		}
		for _, in := range unmapped {
			if got := a.Dispatch(in); got != s {
				return fmt.Errorf("%+v moved %s to %s", in, s, got)
			}
		}
		if s == state.MainMenu {
			continue
		}
		if got := a.Dispatch(screen.Key("esc")); got != state.MainMenu {
			return fmt.Errorf("esc from %s went to %s", s, got)
		}
	}
	return nil
}

func checkButtons(a *app.App, _ func(string) *app.App) error {
	for _, s := range []state.GameState{state.FarmSetup, state.Achievements, state.Help, state.Settings, state.About} {
		if err := Navigate(a, s); err != nil {
			return err
		}
		a.Dispatch(screen.Click(screen.ElemBack))
		if err := expectState(a, state.MainMenu); err != nil {
			return fmt.Errorf("back from %s: %w", s, err)
		}
	}

	if err := Navigate(a, state.Paused); err != nil {
		return err
	}
	a.Dispatch(screen.Click(state.TargetSettings))
	if err := expectState(a, state.Settings); err != nil {
		return err
	}
	if err := Check(a, "label:"+screen.ElemBack+"="+state.TargetBackToGame); err != nil {
		return err
	}
	a.Dispatch(screen.Click(screen.ElemBack))
	if err := expectState(a, state.Paused); err != nil {
		return fmt.Errorf("settings back: %w", err)
	}
	a.Dispatch(screen.Click(state.TargetResume))
	return expectState(a, state.Playing)
}

func checkErrorHandling(a *app.App, spawn func(string) *app.App) error {
	a.Dispatch(screen.Click(state.TargetLoadGame))
	if err := expectState(a, state.MainMenu); err != nil {
		return err
	}
	if err := Check(a, "notice:No saved game found"); err != nil {
		return err
	}

	b := spawn("malformed")
	if err := os.WriteFile(b.SavePath(), []byte("{not json"), 0o644); err != nil {
		return fmt.Errorf("write malformed save: %w", err)
	}
	b.Dispatch(screen.Click(state.TargetLoadGame))
	if err := expectState(b, state.MainMenu); err != nil {
		return err
	}
	if b.InProgress() {
		return errors.New("malformed save started a game")
	}
	return Check(b, "notice:damaged")
}
