package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from GameState
		ev   Event
		want GameState
	}{
		{MainMenu, Click(TargetNewGame), FarmSetup},
		{MainMenu, Click(TargetAchievements), Achievements},
		{MainMenu, Click(TargetHelp), Help},
		{MainMenu, Click(TargetSettings), Settings},
		{MainMenu, Click(TargetAbout), About},
		{MainMenu, Resume, Playing},
		{FarmSetup, Start, Playing},
		{Playing, Pause, Paused},
		{Paused, Resume, Playing},
		{Paused, Click(TargetResume), Playing},
		{Paused, Click(TargetMainMenu), MainMenu},
		{Paused, Click(TargetSettings), Settings},
		{Settings, Click(TargetBackToGame), Paused},
		{Help, Back, MainMenu},
	}
	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.ev.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Transition(tt.from, tt.ev))
		})
	}
}

func TestEscapeReturnsToMainMenu(t *testing.T) {
	for _, s := range All {
		assert.Equal(t, MainMenu, Transition(s, Escape), s.String())
	}
}

func TestUndefinedEventsAreNoOps(t *testing.T) {
	undefined := []Event{
		Click("Nonexistent"),
		Click(TargetExit),
		Click(TargetLoadGame),
		Start,
		Pause,
		Resume,
		Click(TargetNewGame),
		Click(TargetBackToGame),
		{Kind: Kind(200)},
	}
	for _, s := range All {
		for _, ev := range undefined {
			want := s
			if next, ok := transitions[edge{s, ev}]; ok {
				want = next
			}
			assert.Equal(t, want, Transition(s, ev), "%s + %s", s, ev)
		}
	}
	// Spot checks of pairs that must never move.
	assert.Equal(t, Playing, Transition(Playing, Start))
	assert.Equal(t, FarmSetup, Transition(FarmSetup, Click(TargetNewGame)))
	assert.Equal(t, About, Transition(About, Pause))
	assert.Equal(t, Settings, Transition(Settings, Click(TargetBackToGame+"x")))
}

func TestMachineEntryHooks(t *testing.T) {
	m := NewMachine()
	entered := 0
	m.OnEnter(FarmSetup, func(from GameState) {
		assert.Equal(t, MainMenu, from)
		entered++
	})

	assert.Equal(t, FarmSetup, m.Dispatch(Click(TargetNewGame)))
	assert.Equal(t, 1, entered)

	// No-op events do not re-run the hook.
	m.Dispatch(Click(TargetNewGame))
	assert.Equal(t, 1, entered)

	m.Dispatch(Escape)
	assert.Equal(t, MainMenu, m.Current())
	assert.Equal(t, FarmSetup, m.Previous())
	m.Dispatch(Click(TargetNewGame))
	assert.Equal(t, 2, entered)
}

func TestParse(t *testing.T) {
	for _, s := range All {
		got, err := Parse(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := Parse("LOBBY")
	assert.Error(t, err)
}

func TestMenuWraps(t *testing.T) {
	m := NewMenu(MainMenuOptions(false)...)
	assert.Equal(t, TargetNewGame, m.Current())
	m.Up()
	assert.Equal(t, TargetExit, m.Current())
	m.Down()
	m.Down()
	assert.Equal(t, TargetLoadGame, m.Current())

	m.SetOptions(MainMenuOptions(true)...)
	assert.Equal(t, TargetLoadGame, m.Current())
	assert.True(t, m.Select(TargetContinue))
	assert.Equal(t, 0, m.Selected)
	assert.False(t, m.Select("Multiplayer"))

	var empty Menu
	empty.Up()
	empty.Down()
	assert.Empty(t, empty.Current())
}
