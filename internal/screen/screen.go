// Package screen renders each game state and turns raw input into
// state-machine events and app actions. Every state has exactly one Screen.
// Rendering produces text, so screens work the same with or without a
// terminal attached.
package screen

import (
	"fmt"
	"strings"

	"github.com/fieldstation/fieldstation/internal/engine"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/glyph"
	"github.com/fieldstation/fieldstation/internal/setup"
	"github.com/fieldstation/fieldstation/internal/state"
)

// InputKind classifies an Input.
type InputKind uint8

const (
	InputKey   InputKind = iota // Key press; Key uses bubbletea key names
	InputText                   // Replace the Target field's text
	InputClick                  // Mouse click on a named element
	InputHover                  // Mouse hover over a named element
)

// Input is one user interaction.
type Input struct {
	Kind   InputKind
	Key    string
	Target string
	Text   string
}

// Key builds a key press ("up", "enter", "esc", "ctrl+s", "a").
func Key(k string) Input { return Input{Kind: InputKey, Key: k} }

// Click builds a click on target.
func Click(target string) Input { return Input{Kind: InputClick, Target: target} }

// Hover builds a hover over target.
func Hover(target string) Input { return Input{Kind: InputHover, Target: target} }

// Type builds a text entry that replaces the contents of target.
func Type(target, text string) Input { return Input{Kind: InputText, Target: target, Text: text} }

// Action is a side effect the app performs on a screen's behalf.
type Action uint8

const (
	ActionNone Action = iota
	ActionStartFarm
	ActionSave
	ActionLoad
	ActionPlant
	ActionHarvest
	ActionCycleCrop
	ActionNextDay
	ActionSpeedUp
	ActionSlowDown
	ActionToggleAutoHarvest
	ActionToggleSound
	ActionToggleFullscreen
	ActionQuit
)

// Outcome is what handling one input produced.
type Outcome struct {
	Events  []state.Event
	Actions []Action
}

func emit(evs ...state.Event) Outcome { return Outcome{Events: evs} }
func do(acts ...Action) Outcome       { return Outcome{Actions: acts} }

// Element is a named, inspectable piece of a rendered screen.
type Element struct {
	Name     string
	Label    string
	Enabled  bool
	Selected bool
}

// Element names shared across screens.
const (
	ElemTitle      = "page_title"
	ElemBack       = "back_button"
	ElemStart      = "start_button"
	ElemFarmName   = "farm_name_input"
	ElemLocation   = "location_dropdown"
	ElemFarmGrid   = "farm_grid"
	ElemHUD        = "hud"
	ElemMarket     = "market_panel"
	ElemNotices    = "notices"
	seasonElemBase = "season_"
)

// SeasonElement names the setup button for s ("season_spring").
func SeasonElement(s farm.Season) string {
	return seasonElemBase + strings.ToLower(s.String())
}

// TileElement names the grid cell at (x, y) ("tile_1_2").
func TileElement(x, y int) string {
	return fmt.Sprintf("tile_%d_%d", x, y)
}

// Settings are the player preferences.
type Settings struct {
	Fullscreen bool
	Sound      bool
}

// Cursor is the selected grid cell.
type Cursor struct{ X, Y int }

// View is everything a screen reads or edits. The app owns it and passes it
// to the active screen on every input and render.
type View struct {
	Form         *setup.Form
	MainMenu     *state.Menu
	PauseMenu    *state.Menu
	SettingsMenu *state.Menu

	Icons        glyph.Set
	WeatherIcons glyph.Set

	Sim      *engine.Simulation // nil until a farm is started or loaded
	Engine   *engine.Engine
	Cursor   Cursor
	Crop     farm.CropKey // Preferred crop for planting; "" picks the default
	Settings Settings

	// SettingsFrom is the state Settings was opened from.
	SettingsFrom state.GameState

	Notices []string
	Width   int
}

// Screen is one game state's presentation and input handling.
type Screen interface {
	State() state.GameState
	Render(v *View) string
	HandleInput(v *View, in Input) Outcome
	Elements(v *View) []Element
}

var registry = map[state.GameState]Screen{
	state.MainMenu:     mainMenu{},
	state.FarmSetup:    farmSetup{},
	state.Achievements: achievementsPage(),
	state.Help:         helpPage(),
	state.Settings:     settingsScreen{},
	state.About:        aboutPage(),
	state.Playing:      playing{},
	state.Paused:       pauseMenu{},
}

// For returns the screen for s.
func For(s state.GameState) Screen {
	if scr, ok := registry[s]; ok {
		return scr
	}
	return mainMenu{}
}

// Find returns the element called name on scr, if present.
func Find(scr Screen, v *View, name string) (Element, bool) {
	for _, e := range scr.Elements(v) {
		if e.Name == name {
			return e, true
		}
	}
	return Element{}, false
}
