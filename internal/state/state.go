// Package state holds the menu/game flow state machine: the active screen and
// the deterministic transitions between screens.
package state

import "fmt"

// GameState is the active screen. Exactly one is active at a time.
type GameState uint8

const (
	MainMenu GameState = iota
	FarmSetup
	Achievements
	Help
	Settings
	About
	Playing
	Paused
)

// All lists every state in declaration order.
var All = []GameState{MainMenu, FarmSetup, Achievements, Help, Settings, About, Playing, Paused}

var stateNames = [...]string{
	MainMenu:     "MAIN_MENU",
	FarmSetup:    "FARM_SETUP",
	Achievements: "ACHIEVEMENTS",
	Help:         "HELP",
	Settings:     "SETTINGS",
	About:        "ABOUT",
	Playing:      "PLAYING",
	Paused:       "PAUSED",
}

func (s GameState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("GameState(%d)", s)
}

// Parse accepts the upper-case name produced by String.
func Parse(name string) (GameState, error) {
	for i, n := range stateNames {
		if n == name {
			return GameState(i), nil
		}
	}
	return MainMenu, fmt.Errorf("unknown game state %q", name)
}

// Kind classifies an input event.
type Kind uint8

const (
	KindClick  Kind = iota // Menu or button activation; Target names the item
	KindEscape             // ESC
	KindStart              // START FARM with a valid setup
	KindBack               // BACK button
	KindPause              // In-game pause
	KindResume             // Leave the pause screen
)

// Event is one state-machine input.
type Event struct {
	Kind   Kind
	Target string
}

// Menu targets.
const (
	TargetNewGame      = "New Game"
	TargetContinue     = "Continue Game"
	TargetLoadGame     = "Load Game"
	TargetSaveGame     = "Save Game"
	TargetAchievements = "Achievements"
	TargetHelp         = "Help"
	TargetSettings     = "Settings"
	TargetAbout        = "About"
	TargetExit         = "Exit"
	TargetResume       = "Resume Game"
	TargetMainMenu     = "Main Menu"
	TargetExitGame     = "Exit Game"
	TargetBackToGame   = "Back to Game"
)

// Click builds a click event on target.
func Click(target string) Event { return Event{Kind: KindClick, Target: target} }

// Escape, Start, Back, Pause and Resume are the target-less events.
var (
	Escape = Event{Kind: KindEscape}
	Start  = Event{Kind: KindStart}
	Back   = Event{Kind: KindBack}
	Pause  = Event{Kind: KindPause}
	Resume = Event{Kind: KindResume}
)

func (e Event) String() string {
	switch e.Kind {
	case KindClick:
		return "click(" + e.Target + ")"
	case KindEscape:
		return "escape"
	case KindStart:
		return "start"
	case KindBack:
		return "back"
	case KindPause:
		return "pause"
	case KindResume:
		return "resume"
	}
	return "unknown"
}

type edge struct {
	from GameState
	ev   Event
}

// transitions is the complete table. Pairs absent from it are no-ops.
// Resume from the main menu is sent only when a game is in progress or a
// load has just succeeded.
var transitions = map[edge]GameState{
	{MainMenu, Click(TargetNewGame)}:      FarmSetup,
	{MainMenu, Click(TargetAchievements)}: Achievements,
	{MainMenu, Click(TargetHelp)}:         Help,
	{MainMenu, Click(TargetSettings)}:     Settings,
	{MainMenu, Click(TargetAbout)}:        About,
	{MainMenu, Resume}:                    Playing,

	{FarmSetup, Start}: Playing,

	{Playing, Pause}:                Paused,
	{Paused, Resume}:                Playing,
	{Paused, Click(TargetResume)}:   Playing,
	{Paused, Click(TargetMainMenu)}: MainMenu,
	{Paused, Click(TargetSettings)}: Settings,

	{Settings, Click(TargetBackToGame)}: Paused,
}

// Transition maps (current, event) to the next state. ESC and BACK from any
// screen but the main menu lead to the main menu; undefined pairs leave the
// state unchanged.
func Transition(current GameState, ev Event) GameState {
	switch ev.Kind {
	case KindEscape, KindBack:
		return MainMenu
	}
	if next, ok := transitions[edge{current, ev}]; ok {
		return next
	}
	return current
}
