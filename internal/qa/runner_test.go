package qa

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/fieldstation/internal/app"
	"github.com/fieldstation/fieldstation/internal/screen"
	"github.com/fieldstation/fieldstation/internal/state"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	r := NewRunner(t.TempDir())
	r.ScreenshotDir = t.TempDir()
	return r
}

func TestBuiltInStoriesPass(t *testing.T) {
	stories, err := LoadStories()
	require.NoError(t, err)

	r := newTestRunner(t)
	rep := r.RunStories(context.Background(), stories)

	for _, c := range rep.Failures() {
		t.Errorf("%s %s: %s", c.ID, c.Name, c.Failure)
	}
	assert.Equal(t, ExitPass, rep.ExitCode())
	assert.Equal(t, 100.0, rep.SuccessRate())
	assert.FileExists(t, filepath.Join(r.ScreenshotDir, "US001_menu_initial.txt"))
}

func TestFailingStoryContinues(t *testing.T) {
	stories, err := ParseStories([]byte(`
- id: BAD
  title: Wrong expectations
  start: MAIN_MENU
  steps:
    - {action: click, target: Help, expect: "state:ABOUT"}
    - {action: click, target: missing_button}
    - {action: press_key, target: esc, expect: "state:MAIN_MENU"}
- id: GOOD
  title: Still runs
  start: MAIN_MENU
  steps:
    - {action: click, target: About, expect: "state:ABOUT"}
`))
	require.NoError(t, err)

	rep := newTestRunner(t).RunStories(context.Background(), stories)
	require.Len(t, rep.Cases, 2)

	bad := rep.Cases[0]
	assert.False(t, bad.Passed)
	assert.Contains(t, bad.Failure, "step 1")
	assert.Contains(t, bad.Failure, "expected state ABOUT, got HELP")
	require.Len(t, bad.Steps, 3)
	assert.False(t, bad.Steps[0].Passed)
	assert.Contains(t, bad.Steps[1].Failure, `element "missing_button" not found`)
	assert.True(t, bad.Steps[2].Passed)

	assert.True(t, rep.Cases[1].Passed)
	assert.Equal(t, 1, rep.Failed())
	assert.Equal(t, 50.0, rep.SuccessRate())
	assert.Equal(t, ExitFail, rep.ExitCode())
}

func TestCancelledRunIsFrameworkError(t *testing.T) {
	stories, err := LoadStories()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep := newTestRunner(t).RunStories(ctx, stories)
	assert.Empty(t, rep.Cases)
	assert.Equal(t, ExitFramework, rep.ExitCode())
}

func TestTechnicalSuitePasses(t *testing.T) {
	rep := newTestRunner(t).RunTechnical(context.Background())
	require.Len(t, rep.Cases, len(technicalChecks))
	for _, c := range rep.Failures() {
		t.Errorf("%s %s: %s", c.ID, c.Name, c.Failure)
	}
	assert.Equal(t, ExitPass, rep.ExitCode())
}

func TestTechnicalAppsShareSeedAndSaveDir(t *testing.T) {
	r := newTestRunner(t)
	r.Seed = 42
	var spawned []*app.App
	record := check{"T900", "record", func(a *app.App, spawn func(string) *app.App) error {
		spawned = append(spawned, a, spawn("extra"))
		for _, s := range spawned {
			if err := Navigate(s, state.Playing); err != nil {
				return err
			}
		}
		return nil
	}}

	rep := r.runChecks(context.Background(), "technical", []check{record})
	require.Equal(t, ExitPass, rep.ExitCode())
	require.Len(t, spawned, 2)
	for _, a := range spawned {
		assert.Equal(t, int64(42), a.Sim().Seed)
		assert.Equal(t, r.SaveDir, filepath.Dir(a.SavePath()))
	}
	assert.Equal(t, filepath.Join(r.SaveDir, "qa_T900_extra.json"), spawned[1].SavePath())
}

func TestMalformedSaveWrittenToSuiteDir(t *testing.T) {
	r := newTestRunner(t)
	rep := r.runChecks(context.Background(), "technical", []check{technicalChecks[len(technicalChecks)-1]})
	require.Equal(t, ExitPass, rep.ExitCode())
	assert.FileExists(t, filepath.Join(r.SaveDir, "qa_T007_malformed.json"))
}

func TestFlowPasses(t *testing.T) {
	rep := newTestRunner(t).RunFlow(context.Background())
	require.Len(t, rep.Cases, len(flowStages))
	for _, c := range rep.Failures() {
		t.Errorf("%s %s: %s", c.ID, c.Name, c.Failure)
	}
	assert.Equal(t, ExitPass, rep.ExitCode())
}

func TestNavigate(t *testing.T) {
	for _, s := range state.All {
		t.Run(s.String(), func(t *testing.T) {
			a := app.New(app.Options{SavePath: filepath.Join(t.TempDir(), "s.json"), DayTicks: QADayTicks})
			require.NoError(t, Navigate(a, s))
			assert.Equal(t, s, a.State())
		})
	}
}

func TestCheck(t *testing.T) {
	a := app.New(app.Options{SavePath: filepath.Join(t.TempDir(), "s.json")})
	require.NoError(t, Navigate(a, state.FarmSetup))
	a.Dispatch(screen.Type(screen.ElemFarmName, "Check Farm"))

	pass := []string{
		"",
		"state:FARM_SETUP",
		"visible:back_button; enabled:back_button",
		"disabled:start_button",
		"selected:farm_name_input",
		"title:+ NEW FARM SETUP",
		"label:farm_name_input=Check Farm",
		"text:NEW FARM SETUP",
	}
	for _, exp := range pass {
		assert.NoError(t, Check(a, exp), exp)
	}

	fail := []string{
		"state:PLAYING",
		"enabled:start_button",
		"visible:nothing",
		"title:Wrong",
		"label:farm_name_input=Other",
		"label:farm_name_input",
		"notice:anything",
		"text:not on screen",
		"bogus:thing",
		"no colon",
		"state:PLAYING_ISH",
	}
	for _, exp := range fail {
		assert.Error(t, Check(a, exp), exp)
	}
}

func TestScreenshotSkippedWithoutDir(t *testing.T) {
	r := NewRunner(t.TempDir())
	a := r.newApp(r.SaveDir, "shot")
	require.NoError(t, r.runStep(a, "US000", Step{Action: ActionScreenshot, Target: "menu"}))

	entries, err := os.ReadDir(r.SaveDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWaitAdvancesFrames(t *testing.T) {
	r := NewRunner(t.TempDir())
	a := r.newApp(r.SaveDir, "wait")
	require.NoError(t, Navigate(a, state.Playing))

	require.NoError(t, r.runStep(a, "W", Step{Action: ActionWait, Value: "25"}))
	assert.Equal(t, 3, a.Sim().Day)
	assert.Error(t, r.runStep(a, "W", Step{Action: ActionWait, Value: "soon"}))
}

func TestReport(t *testing.T) {
	rep := newReport("unit")
	rep.add(CaseResult{ID: "A", Name: "passes", Passed: true})
	rep.add(CaseResult{ID: "B", Name: "fails", Failure: "boom"})
	rep.finish()

	assert.Equal(t, 1, rep.Passed())
	assert.Equal(t, 1, rep.Failed())
	assert.Equal(t, []string{"B"}, []string{rep.Failures()[0].ID})

	var buf bytes.Buffer
	rep.WriteText(&buf)
	out := buf.String()
	assert.Contains(t, out, "FIELD STATION QA REPORT: UNIT")
	assert.Contains(t, out, "[FAIL] B")
	assert.Contains(t, out, "boom")
	assert.Contains(t, out, "Success rate: 50.0%")

	assert.Zero(t, newReport("empty").SuccessRate())
}

func TestCombine(t *testing.T) {
	assert.Equal(t, ExitPass, Combine())
	assert.Equal(t, ExitPass, Combine(ExitPass, ExitPass))
	assert.Equal(t, ExitFail, Combine(ExitPass, ExitFail, ExitFail))
	assert.Equal(t, ExitFramework, Combine(ExitFail, ExitFramework))
	assert.Equal(t, ExitFramework, Combine(ExitFramework, ExitPass, ExitFail))
}
