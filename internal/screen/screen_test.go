package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/fieldstation/internal/engine"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/glyph"
	"github.com/fieldstation/fieldstation/internal/setup"
	"github.com/fieldstation/fieldstation/internal/state"
)

func newView() *View {
	return &View{
		Form:         setup.NewForm(),
		MainMenu:     state.NewMenu(state.MainMenuOptions(false)...),
		PauseMenu:    state.NewMenu(state.PauseMenuOptions()...),
		SettingsMenu: state.NewMenu(SettingsOptions()...),
		Icons:        glyph.LoadMenuIcons(glyph.ASCIIOnly),
		WeatherIcons: glyph.LoadWeatherIcons(glyph.ASCIIOnly),
		Engine:       engine.NewEngine(0),
	}
}

func TestEveryStateHasAScreen(t *testing.T) {
	v := newView()
	v.Sim = engine.NewSimulation(farm.FarmConfig{Name: "Screens", Season: farm.SeasonSpring}, 5)
	for _, s := range state.All {
		scr := For(s)
		assert.Equal(t, s, scr.State())
		assert.NotEmpty(t, scr.Render(v), s.String())
		_, ok := Find(scr, v, ElemTitle)
		assert.True(t, ok, s.String())
	}
}

func TestElementNames(t *testing.T) {
	assert.Equal(t, "season_spring", SeasonElement(farm.SeasonSpring))
	assert.Equal(t, "tile_2_0", TileElement(2, 0))
}

func TestDisabledStartDoesNothing(t *testing.T) {
	v := newView()
	scr := For(state.FarmSetup)

	out := scr.HandleInput(v, Click(ElemStart))
	assert.Empty(t, out.Events)
	assert.Empty(t, out.Actions)

	scr.HandleInput(v, Type(ElemFarmName, "Ready Farm"))
	scr.HandleInput(v, Click(SeasonElement(farm.SeasonWinter)))
	out = scr.HandleInput(v, Click(ElemStart))
	assert.Equal(t, []state.Event{state.Start}, out.Events)
	assert.Equal(t, []Action{ActionStartFarm}, out.Actions)
}

func TestMainMenuActions(t *testing.T) {
	v := newView()
	scr := For(state.MainMenu)

	assert.Equal(t, []Action{ActionLoad}, scr.HandleInput(v, Click(state.TargetLoadGame)).Actions)
	assert.Equal(t, []Action{ActionQuit}, scr.HandleInput(v, Click(state.TargetExit)).Actions)
	assert.Equal(t, []state.Event{state.Click(state.TargetHelp)}, scr.HandleInput(v, Click(state.TargetHelp)).Events)
	assert.Equal(t, []state.Event{state.Escape}, scr.HandleInput(v, Key("esc")).Events)

	scr.HandleInput(v, Hover(state.TargetAbout))
	e, ok := Find(scr, v, state.TargetAbout)
	require.True(t, ok)
	assert.True(t, e.Selected)
	assert.Equal(t, "i About", e.Label)
}

func TestPlayingKeys(t *testing.T) {
	v := newView()
	v.Sim = engine.NewSimulation(farm.FarmConfig{Name: "Keys", Season: farm.SeasonSpring}, 5)
	scr := For(state.Playing)

	scr.HandleInput(v, Key("right"))
	scr.HandleInput(v, Key("down"))
	scr.HandleInput(v, Key("down"))
	scr.HandleInput(v, Key("down"))
	assert.Equal(t, Cursor{X: 1, Y: 2}, v.Cursor)

	scr.HandleInput(v, Click(TileElement(0, 1)))
	assert.Equal(t, Cursor{X: 0, Y: 1}, v.Cursor)

	assert.Equal(t, []Action{ActionPlant}, scr.HandleInput(v, Key("p")).Actions)
	assert.Equal(t, []Action{ActionSave}, scr.HandleInput(v, Key("ctrl+s")).Actions)
	assert.Equal(t, []state.Event{state.Pause}, scr.HandleInput(v, Key(" ")).Events)
}

func TestSettingsBackDependsOnOrigin(t *testing.T) {
	v := newView()
	scr := For(state.Settings)

	v.SettingsFrom = state.MainMenu
	assert.Equal(t, []state.Event{state.Back}, scr.HandleInput(v, Click(ElemBack)).Events)

	v.SettingsFrom = state.Paused
	assert.Equal(t, []state.Event{state.Click(state.TargetBackToGame)}, scr.HandleInput(v, Click(ElemBack)).Events)
	e, ok := Find(scr, v, ElemBack)
	require.True(t, ok)
	assert.Equal(t, state.TargetBackToGame, e.Label)
}

func TestTileDetailCountsHarvests(t *testing.T) {
	v := newView()
	v.Sim = engine.NewSimulation(farm.FarmConfig{Name: "Harvests", Season: farm.SeasonSummer}, 3)
	v.Cursor = Cursor{1, 2}
	tile, err := v.Sim.Grid.At(1, 2)
	require.NoError(t, err)

	assert.NotContains(t, renderTileDetail(v), "Harvested")
	tile.HarvestedTimes = 1
	assert.Contains(t, renderTileDetail(v), "Harvested 1 time")
	tile.HarvestedTimes = 2
	assert.Contains(t, For(state.Playing).Render(v), "Harvested 2 times")
}
