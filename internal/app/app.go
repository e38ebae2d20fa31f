// Package app is the explicit application state threaded through the game
// loop: the state machine, the setup form, menus, the running simulation and
// everything the screens need. All mutation happens in Dispatch and Frame,
// on the caller's goroutine.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fieldstation/fieldstation/internal/engine"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/glyph"
	"github.com/fieldstation/fieldstation/internal/savefile"
	"github.com/fieldstation/fieldstation/internal/screen"
	"github.com/fieldstation/fieldstation/internal/setup"
	"github.com/fieldstation/fieldstation/internal/state"
)

// MaxNotices is how many user-visible notices are kept.
const MaxNotices = 5

// Options configures a new App.
type Options struct {
	SavePath string
	Seed     int64 // 0 picks a random seed per farm
	DayTicks uint64
	Glyphs   glyph.Support

	// OnDay, when set, receives every simulated day's report.
	OnDay func(saveID string, r engine.DayReport)
}

// App is the whole running game.
type App struct {
	opts    Options
	machine *state.Machine
	view    *screen.View
	engine  *engine.Engine
	quit    bool
}

// New builds an app sitting at the main menu with no farm.
func New(opts Options) *App {
	if opts.SavePath == "" {
		opts.SavePath = savefile.DefaultName
	}
	if opts.Glyphs == nil {
		opts.Glyphs = glyph.ASCIIOnly
	}

	a := &App{
		opts:    opts,
		machine: state.NewMachine(),
		engine:  engine.NewEngine(opts.DayTicks),
	}
	a.view = &screen.View{
		Form:         setup.NewForm(),
		MainMenu:     state.NewMenu(state.MainMenuOptions(false)...),
		PauseMenu:    state.NewMenu(state.PauseMenuOptions()...),
		SettingsMenu: state.NewMenu(screen.SettingsOptions()...),
		Icons:        glyph.LoadMenuIcons(opts.Glyphs),
		WeatherIcons: glyph.LoadWeatherIcons(opts.Glyphs),
		Engine:       a.engine,
		Settings:     screen.Settings{Sound: true},
	}
	a.engine.OnDay = func(uint64) { a.advanceDay() }
	// Time passes only on the playing screen.
	a.engine.Paused = true
	for _, s := range state.All {
		a.machine.OnEnter(s, func(state.GameState) {
			a.engine.Paused = s != state.Playing
		})
	}

	a.machine.OnEnter(state.FarmSetup, func(state.GameState) {
		a.view.Form.Reset()
	})
	a.machine.OnEnter(state.MainMenu, func(state.GameState) {
		a.view.MainMenu.SetOptions(state.MainMenuOptions(a.InProgress())...)
	})
	a.machine.OnEnter(state.Paused, func(state.GameState) {
		a.view.PauseMenu.Selected = 0
	})
	a.machine.OnEnter(state.Settings, func(from state.GameState) {
		a.view.SettingsFrom = from
		a.view.SettingsMenu.Selected = 0
	})
	return a
}

// State returns the active game state.
func (a *App) State() state.GameState { return a.machine.Current() }

// Screen returns the active screen.
func (a *App) Screen() screen.Screen { return screen.For(a.State()) }

// View exposes the shared view state.
func (a *App) View() *screen.View { return a.view }

// Sim returns the running simulation, nil when no farm exists.
func (a *App) Sim() *engine.Simulation { return a.view.Sim }

// Engine returns the frame engine.
func (a *App) Engine() *engine.Engine { return a.engine }

// InProgress reports whether a farm is running.
func (a *App) InProgress() bool { return a.view.Sim != nil }

// SavePath is the save slot this app reads and writes.
func (a *App) SavePath() string { return a.opts.SavePath }

// Quit reports whether the player asked to exit.
func (a *App) Quit() bool { return a.quit }

// Notices returns the current user-visible notices, oldest first.
func (a *App) Notices() []string { return a.view.Notices }

// Render draws the active screen.
func (a *App) Render() string {
	return a.Screen().Render(a.view)
}

// Elements lists the named elements on the active screen.
func (a *App) Elements() []screen.Element {
	return a.Screen().Elements(a.view)
}

// Element finds a named element on the active screen.
func (a *App) Element(name string) (screen.Element, bool) {
	return screen.Find(a.Screen(), a.view, name)
}

// Dispatch routes one input through the active screen, performs the
// resulting actions and then applies the state events.
func (a *App) Dispatch(in screen.Input) state.GameState {
	out := a.Screen().HandleInput(a.view, in)
	for _, act := range out.Actions {
		a.perform(act)
	}
	for _, ev := range out.Events {
		a.machine.Dispatch(ev)
	}
	return a.State()
}

// Frame advances the engine by one frame. The engine is paused everywhere
// but the playing screen.
func (a *App) Frame() {
	if a.view.Sim == nil {
		return
	}
	a.engine.Frame()
}

// Notify posts a user-visible notice.
func (a *App) Notify(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.view.Notices = append(a.view.Notices, msg)
	if len(a.view.Notices) > MaxNotices {
		a.view.Notices = a.view.Notices[len(a.view.Notices)-MaxNotices:]
	}
}

func (a *App) perform(act screen.Action) {
	sim := a.view.Sim
	if sim == nil {
		switch act {
		case screen.ActionStartFarm, screen.ActionLoad, screen.ActionQuit,
			screen.ActionToggleSound, screen.ActionToggleFullscreen:
		default:
			a.Notify("No game in progress")
			return
		}
	}

	switch act {
	case screen.ActionStartFarm:
		a.startFarm()
	case screen.ActionSave:
		a.save()
	case screen.ActionLoad:
		a.load()
	case screen.ActionPlant:
		a.plant()
	case screen.ActionHarvest:
		a.harvest()
	case screen.ActionCycleCrop:
		a.cycleCrop()
	case screen.ActionNextDay:
		a.advanceDay()
	case screen.ActionSpeedUp:
		a.Notify("Speed %dx", a.engine.SpeedUp())
	case screen.ActionSlowDown:
		a.Notify("Speed %dx", a.engine.SlowDown())
	case screen.ActionToggleAutoHarvest:
		sim.AutoHarvest = !sim.AutoHarvest
		a.Notify("Auto-harvest %s", onOff(sim.AutoHarvest))
	case screen.ActionToggleSound:
		a.view.Settings.Sound = !a.view.Settings.Sound
		a.Notify("Sound: %s", onOff(a.view.Settings.Sound))
	case screen.ActionToggleFullscreen:
		a.view.Settings.Fullscreen = !a.view.Settings.Fullscreen
		a.Notify("Fullscreen: %s", onOff(a.view.Settings.Fullscreen))
	case screen.ActionQuit:
		slog.Info("exit requested")
		a.quit = true
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (a *App) startFarm() {
	cfg := a.view.Form.Config()
	if !setup.CanStart(cfg) {
		return
	}
	a.attach(engine.NewSimulation(cfg, a.opts.Seed))
	a.Notify("Welcome to %s!", cfg.Name)
}

// attach makes sim the running farm.
func (a *App) attach(sim *engine.Simulation) {
	sim.OnDayReport = func(r engine.DayReport) {
		if a.opts.OnDay != nil {
			a.opts.OnDay(sim.ID, r)
		}
	}
	a.view.Sim = sim
	a.view.Cursor = screen.Cursor{}
	a.view.Crop = ""
	// A new farm starts at the beginning of its day.
	a.engine.Tick = 0
}

func (a *App) save() {
	if err := savefile.Write(a.opts.SavePath, savefile.Snapshot(a.view.Sim)); err != nil {
		slog.Error("save failed", "path", a.opts.SavePath, "error", err)
		a.Notify("Save failed: %v", err)
		return
	}
	a.Notify("Game saved")
}

// load replaces the running farm from the save slot. On failure nothing
// changes except a notice.
func (a *App) load() {
	st, err := savefile.Read(a.opts.SavePath)
	if err != nil {
		slog.Warn("load failed", "path", a.opts.SavePath, "error", err)
		switch {
		case errors.Is(err, savefile.ErrNotFound):
			a.Notify("No saved game found")
		case errors.Is(err, savefile.ErrVersion):
			a.Notify("Save file is from an incompatible version")
		default:
			a.Notify("Save file is damaged and could not be loaded")
		}
		return
	}
	a.attach(st.Restore())
	a.Notify("Loaded %s (day %d)", st.Farm.Name, st.Day)
	a.machine.Dispatch(state.Resume)
}

func (a *App) plant() {
	sim := a.view.Sim
	c := a.view.Cursor
	key, ok := sim.PlantingChoice(a.view.Crop)
	if !ok {
		a.Notify("Nothing can be planted in %s", sim.Season)
		return
	}
	if err := sim.Plant(c.X, c.Y, key); err != nil {
		a.Notify("Cannot plant: %v", err)
		return
	}
	ct, _ := farm.Crop(key)
	a.Notify("Planted %s for $%d", ct.ShortName(), farm.SeedCost)
}

func (a *App) harvest() {
	c := a.view.Cursor
	value, err := a.view.Sim.Harvest(c.X, c.Y)
	if err != nil {
		a.Notify("Cannot harvest: %v", err)
		return
	}
	a.Notify("Harvested for $%d", value)
}

// cycleCrop steps the preferred crop through those valid this season.
func (a *App) cycleCrop() {
	sim := a.view.Sim
	valid := sim.ValidCrops()
	if len(valid) == 0 {
		a.Notify("Nothing can be planted in %s", sim.Season)
		return
	}
	cur, _ := sim.PlantingChoice(a.view.Crop)
	next := valid[0]
	for i, k := range valid {
		if k == cur {
			next = valid[(i+1)%len(valid)]
		}
	}
	a.view.Crop = next
	ct, _ := farm.Crop(next)
	a.Notify("Selected crop: %s", ct.ShortName())
}

func (a *App) advanceDay() {
	if a.view.Sim == nil {
		return
	}
	r := a.view.Sim.TickDay()
	if r.Extreme {
		a.Notify("EXTREME WEATHER: %s", r.Weather)
	}
	if r.Harvested > 0 {
		a.Notify("Auto-harvested %d crops", r.Harvested)
	}
}
