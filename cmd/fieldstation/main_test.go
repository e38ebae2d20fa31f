package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/fieldstation/internal/qa"
	"github.com/fieldstation/fieldstation/internal/savefile"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeIn(t, t.TempDir(), args...)
}

// executeIn runs the CLI against the saves and ledger under dir.
func executeIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FIELDSTATION_SAVE_DIR", filepath.Join(dir, "saves"))
	t.Setenv("FIELDSTATION_DB", filepath.Join(dir, "ledger.db"))
	t.Setenv("FIELDSTATION_SEED", "11")
	t.Setenv("FIELDSTATION_LOG_LEVEL", "error")
	t.Setenv("FIELDSTATION_HEADLESS", "1")

	// Flag variables outlive a single Execute.
	simDays, simName, simSeason, simSave, simPace = 365, "Simulation Farm", "Spring", false, 0
	historyLimit, qaHistory, qaScreenshots = 30, 10, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSimCommand(t *testing.T) {
	out, err := execute(t, "sim", "--days", "40", "--name", "Cli Farm", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "Cli Farm (seed 11")
	assert.Contains(t, out, "40 days")
	assert.Contains(t, out, "Achievement: First Seed")

	st, err := savefile.Read(cfg.SavePath())
	require.NoError(t, err)
	assert.Equal(t, 41, st.Day)
	assert.Equal(t, "Cli Farm", st.Farm.Name)
}

func TestPacedSimAndFarmHistory(t *testing.T) {
	dir := t.TempDir()
	out, err := executeIn(t, dir, "sim", "--days", "3", "--pace", "1ms", "--name", "Paced Farm")
	require.NoError(t, err)
	assert.Contains(t, out, "3 days")
	assert.NotContains(t, out, "Interrupted")

	out, err = executeIn(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "days 2-4")
	assert.Contains(t, out, "harvested")

	out, err = executeIn(t, dir, "history", "no-such-farm")
	require.NoError(t, err)
	assert.Contains(t, out, "No days recorded for no-such-farm.")
}

func TestFarmHistoryEmptyLedger(t *testing.T) {
	out, err := execute(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No farm days recorded.")
}

func TestSimRejectsBadInput(t *testing.T) {
	_, err := execute(t, "sim", "--days", "0")
	assert.Error(t, err)
	_, err = execute(t, "sim", "--days", "5", "--season", "Monsoon")
	assert.Error(t, err)
}

func TestPlayNeedsADisplay(t *testing.T) {
	_, err := execute(t, "play")
	assert.ErrorIs(t, err, errHeadlessPlay)
}

func TestPrecommitPasses(t *testing.T) {
	out, err := execute(t, "precommit")
	require.NoError(t, err)
	assert.Contains(t, out, "QA checks passed.")
}

func TestQAStoriesAndHistory(t *testing.T) {
	out, err := execute(t, "qa", "stories", "US002", "US005")
	require.NoError(t, err)
	assert.Contains(t, out, "[PASS] US002")
	assert.Contains(t, out, "[PASS] US005")

	dir := t.TempDir()
	_, err = executeIn(t, dir, "qa", "stories", "US009")
	require.NoError(t, err)
	out, err = executeIn(t, dir, "qa", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Last run: ")
	assert.Contains(t, out, "stories")

	db, err := ledger()
	require.NoError(t, err)
	runs, err := db.RecentRuns(5)
	require.NoError(t, err)
	require.NoError(t, db.Close())
	require.Len(t, runs, 1)
	assert.Equal(t, "stories", runs[0].Suite)
	assert.Equal(t, 2, runs[0].Passed)
}

func TestQAUnknownStoryIsFrameworkError(t *testing.T) {
	_, err := execute(t, "qa", "stories", "US404")
	var ee exitError
	require.ErrorAs(t, err, &ee)
	assert.Equal(t, qa.ExitFramework, ee.code)
}

func TestFinish(t *testing.T) {
	assert.NoError(t, finish(qa.ExitPass))
	assert.Equal(t, exitError{code: 1}, finish(qa.ExitFail))
	assert.Equal(t, "PASS", verdict(qa.ExitPass))
	assert.Equal(t, "FAIL", verdict(qa.ExitFail))
	assert.Equal(t, "ERROR", verdict(qa.ExitFramework))
	assert.Equal(t, exitError{code: 2}, finish(qa.Combine(qa.ExitFail, qa.ExitFramework)))
}
