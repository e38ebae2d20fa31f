package qa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fieldstation/fieldstation/internal/app"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/glyph"
	"github.com/fieldstation/fieldstation/internal/screen"
	"github.com/fieldstation/fieldstation/internal/state"
)

// QADayTicks keeps simulated days short so waits stay cheap.
const QADayTicks = 10

// Runner executes suites against fresh headless apps, one per case.
type Runner struct {
	// SaveDir holds the save files cases write. Empty uses a temporary
	// directory per suite.
	SaveDir string
	Seed    int64
	// ScreenshotDir receives rendered screens from screenshot steps. Empty
	// skips writing them.
	ScreenshotDir string
}

// NewRunner returns a runner with a fixed seed.
func NewRunner(saveDir string) *Runner {
	return &Runner{SaveDir: saveDir, Seed: 1}
}

func (r *Runner) newApp(saveDir, name string) *app.App {
	return app.New(app.Options{
		SavePath: filepath.Join(saveDir, "qa_"+name+".json"),
		Seed:     r.Seed,
		DayTicks: QADayTicks,
		Glyphs:   glyph.ASCIIOnly,
	})
}

// saveDir returns the directory for this suite and a cleanup func.
func (r *Runner) saveDir() (string, func(), error) {
	if r.SaveDir != "" {
		if err := os.MkdirAll(r.SaveDir, 0o755); err != nil {
			return "", nil, fmt.Errorf("create save dir: %w", err)
		}
		return r.SaveDir, func() {}, nil
	}
	dir, err := os.MkdirTemp("", "fieldstation-qa-")
	if err != nil {
		return "", nil, fmt.Errorf("create save dir: %w", err)
	}
	return dir, func() { os.RemoveAll(dir) }, nil
}

// RunStories runs each story once, in order. A failing step fails its story
// and the run moves on.
func (r *Runner) RunStories(ctx context.Context, stories []Story) *Report {
	rep := newReport("stories")
	defer rep.finish()

	dir, cleanup, err := r.saveDir()
	if err != nil {
		rep.FrameworkErr = err
		return rep
	}
	defer cleanup()

	for _, st := range stories {
		if err := ctx.Err(); err != nil {
			rep.FrameworkErr = err
			return rep
		}
		res := r.runStory(dir, st)
		slog.Info("story finished", "id", st.ID, "passed", res.Passed, "duration", res.Duration)
		rep.add(res)
	}
	return rep
}

func (r *Runner) runStory(dir string, st Story) CaseResult {
	start := time.Now()
	res := CaseResult{ID: st.ID, Name: st.Title, Passed: true}
	defer func() { res.Duration = time.Since(start) }()

	a := r.newApp(dir, st.ID)
	if st.Start != "" {
		to, _ := state.Parse(st.Start)
		if err := guard(func() error { return Navigate(a, to) }); err != nil {
			res.Passed = false
			res.Failure = "setup: " + err.Error()
			return res
		}
	}

	for i, step := range st.Steps {
		stepStart := time.Now()
		err := guard(func() error { return r.runStep(a, st.ID, step) })
		sr := StepResult{Index: i + 1, Step: step, Passed: err == nil, Duration: time.Since(stepStart)}
		if err != nil {
			sr.Failure = err.Error()
			if res.Passed {
				res.Passed = false
				res.Failure = fmt.Sprintf("step %d (%s): %v", i+1, step, err)
			}
		}
		res.Steps = append(res.Steps, sr)
	}
	return res
}

// guard turns a panic inside fn into an error.
func guard(fn func() error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn()
}

func (r *Runner) runStep(a *app.App, storyID string, step Step) error {
	needsElement := func() error {
		if _, ok := a.Element(step.Target); !ok {
			return fmt.Errorf("element %q not found on %s", step.Target, a.State())
		}
		return nil
	}

	switch step.Action {
	case ActionClick:
		if err := needsElement(); err != nil {
			return err
		}
		a.Dispatch(screen.Click(step.Target))
	case ActionHover:
		if err := needsElement(); err != nil {
			return err
		}
		a.Dispatch(screen.Hover(step.Target))
	case ActionType:
		if err := needsElement(); err != nil {
			return err
		}
		a.Dispatch(screen.Type(step.Target, step.Value))
	case ActionPressKey:
		a.Dispatch(screen.Key(step.Target))
	case ActionWait:
		frames := 1
		if step.Value != "" {
			n, err := strconv.Atoi(step.Value)
			if err != nil || n < 0 {
				return fmt.Errorf("bad frame count %q", step.Value)
			}
			frames = n
		}
		for range frames {
			a.Frame()
		}
	case ActionVerify:
		if step.Target != "" {
			if err := needsElement(); err != nil {
				return err
			}
		}
	case ActionScreenshot:
		if err := r.screenshot(a, storyID, step.Target); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return Check(a, step.Expect)
}

func (r *Runner) screenshot(a *app.App, storyID, name string) error {
	if r.ScreenshotDir == "" {
		return nil
	}
	if err := os.MkdirAll(r.ScreenshotDir, 0o755); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	path := filepath.Join(r.ScreenshotDir, storyID+"_"+name+".txt")
	if err := os.WriteFile(path, []byte(a.Render()), 0o644); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}
	return nil
}

var menuTargets = map[state.GameState]string{
	state.FarmSetup:    state.TargetNewGame,
	state.Achievements: state.TargetAchievements,
	state.Help:         state.TargetHelp,
	state.Settings:     state.TargetSettings,
	state.About:        state.TargetAbout,
}

// Navigate drives a fresh app from the main menu to the given state.
// Reaching Playing or Paused starts a spring farm.
func Navigate(a *app.App, to state.GameState) error {
	switch to {
	case state.MainMenu:
	case state.Playing, state.Paused:
		if a.State() != state.FarmSetup {
			a.Dispatch(screen.Click(state.TargetNewGame))
		}
		a.Dispatch(screen.Type(screen.ElemFarmName, "QA Farm"))
		a.Dispatch(screen.Click(screen.SeasonElement(farm.SeasonSpring)))
		a.Dispatch(screen.Click(screen.ElemStart))
		if to == state.Paused {
			a.Dispatch(screen.Key(" "))
		}
	default:
		target, ok := menuTargets[to]
		if !ok {
			return fmt.Errorf("no route to %s", to)
		}
		a.Dispatch(screen.Click(target))
	}
	if got := a.State(); got != to {
		return fmt.Errorf("navigate to %s: ended on %s", to, got)
	}
	return nil
}

var errNoExpect = errors.New("empty expectation")

// Check evaluates a ";"-separated expectation against the app. An empty
// expectation always holds.
//
//	state:PLAYING          active game state
//	enabled:start_button   element exists and is enabled
//	disabled:start_button  element exists and is disabled
//	visible:farm_grid      element exists
//	selected:New Game      element exists and is selected
//	title:* ACHIEVEMENTS   page title label
//	label:Sound=Sound: On  element label
//	notice:Game saved      a current notice contains the text
//	text:First Seed        the rendered screen contains the text
func Check(a *app.App, expect string) error {
	if strings.TrimSpace(expect) == "" {
		return nil
	}
	for _, part := range strings.Split(expect, ";") {
		if err := checkOne(a, strings.TrimSpace(part)); err != nil {
			return err
		}
	}
	return nil
}

func checkOne(a *app.App, expect string) error {
	if expect == "" {
		return errNoExpect
	}
	kind, arg, ok := strings.Cut(expect, ":")
	if !ok {
		return fmt.Errorf("malformed expectation %q", expect)
	}

	element := func(name string) (screen.Element, error) {
		e, ok := a.Element(name)
		if !ok {
			return e, fmt.Errorf("expected %s to be visible on %s", name, a.State())
		}
		return e, nil
	}

	switch kind {
	case "state":
		want, err := state.Parse(arg)
		if err != nil {
			return err
		}
		if got := a.State(); got != want {
			return fmt.Errorf("expected state %s, got %s", want, got)
		}
	case "visible":
		_, err := element(arg)
		return err
	case "enabled", "disabled":
		e, err := element(arg)
		if err != nil {
			return err
		}
		if e.Enabled != (kind == "enabled") {
			return fmt.Errorf("expected %s to be %s", arg, kind)
		}
	case "selected":
		e, err := element(arg)
		if err != nil {
			return err
		}
		if !e.Selected {
			return fmt.Errorf("expected %s to be selected", arg)
		}
	case "title":
		e, err := element(screen.ElemTitle)
		if err != nil {
			return err
		}
		if e.Label != arg {
			return fmt.Errorf("expected title %q, got %q", arg, e.Label)
		}
	case "label":
		name, want, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("malformed label expectation %q", arg)
		}
		e, err := element(name)
		if err != nil {
			return err
		}
		if e.Label != want {
			return fmt.Errorf("expected %s label %q, got %q", name, want, e.Label)
		}
	case "notice":
		for _, n := range a.Notices() {
			if strings.Contains(n, arg) {
				return nil
			}
		}
		return fmt.Errorf("expected a notice containing %q, got %q", arg, a.Notices())
	case "text":
		if !strings.Contains(a.Render(), arg) {
			return fmt.Errorf("expected %s to show %q", a.State(), arg)
		}
	default:
		return fmt.Errorf("unknown expectation %q", kind)
	}
	return nil
}
