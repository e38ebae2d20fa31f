package qa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fieldstation/fieldstation/internal/app"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/screen"
	"github.com/fieldstation/fieldstation/internal/state"
)

// MaxFlowDays bounds how long the flow waits for a crop to mature.
const MaxFlowDays = 1000

// flow is the shared state of one scripted play-through. Stages run in
// order against the same app; a failed stage does not stop later ones.
type flow struct {
	a        *app.App
	savePath string
	savedDay int
	savedMon int
}

type stage struct {
	id   string
	name string
	run  func(f *flow) error
}

var flowStages = []stage{
	{"F001", "Start a new game", (*flow).newGame},
	{"F002", "Plant a crop", (*flow).plant},
	{"F003", "Grow the crop to maturity", (*flow).grow},
	{"F004", "Harvest and sell", (*flow).harvest},
	{"F005", "Save the game", (*flow).save},
	{"F006", "Load the saved game", (*flow).load},
}

// RunFlow plays one farm from the main menu through a save/load round trip.
func (r *Runner) RunFlow(ctx context.Context) *Report {
	rep := newReport("flow")
	defer rep.finish()

	dir, cleanup, err := r.saveDir()
	if err != nil {
		rep.FrameworkErr = err
		return rep
	}
	defer cleanup()

	a := r.newApp(dir, "flow")
	f := &flow{a: a, savePath: a.SavePath()}
	for _, s := range flowStages {
		if err := ctx.Err(); err != nil {
			rep.FrameworkErr = err
			return rep
		}
		start := time.Now()
		err := guard(func() error { return s.run(f) })
		res := CaseResult{ID: s.id, Name: s.name, Passed: err == nil, Duration: time.Since(start)}
		if err != nil {
			res.Failure = err.Error()
		}
		slog.Info("flow stage finished", "id", s.id, "passed", res.Passed)
		rep.add(res)
	}
	return rep
}

func (f *flow) tile() *farm.Tile {
	t, _ := f.a.Sim().Grid.At(0, 0)
	return t
}

func (f *flow) needFarm() error {
	if f.a.Sim() == nil {
		return errors.New("no farm running")
	}
	return nil
}

func (f *flow) newGame() error {
	f.a.Dispatch(screen.Click(state.TargetNewGame))
	f.a.Dispatch(screen.Type(screen.ElemFarmName, "Flow Farm"))
	f.a.Dispatch(screen.Click(screen.SeasonElement(farm.SeasonSpring)))
	f.a.Dispatch(screen.Click(screen.ElemStart))
	if err := expectState(f.a, state.Playing); err != nil {
		return err
	}
	if err := f.needFarm(); err != nil {
		return err
	}
	if m := f.a.Sim().Money; m != farm.StartingMoney {
		return fmt.Errorf("starting money %d, want %d", m, farm.StartingMoney)
	}
	return Check(f.a, "visible:"+screen.ElemFarmGrid+"; title:Flow Farm")
}

func (f *flow) plant() error {
	if err := f.needFarm(); err != nil {
		return err
	}
	before := f.a.Sim().Money
	f.a.Dispatch(screen.Key("p"))
	if !f.tile().Occupied() {
		return fmt.Errorf("tile still empty: %v", f.a.Notices())
	}
	if got := f.a.Sim().Money; got != before-farm.SeedCost {
		return fmt.Errorf("money %d after planting, want %d", got, before-farm.SeedCost)
	}
	return nil
}

// grow advances days until the crop at the cursor is mature, replanting
// whenever weather destroys it.
func (f *flow) grow() error {
	if err := f.needFarm(); err != nil {
		return err
	}
	for range MaxFlowDays {
		t := f.tile()
		if t.Crop.Mature() {
			return nil
		}
		if !t.Occupied() {
			f.a.Dispatch(screen.Key("p"))
		}
		f.a.Dispatch(screen.Key("n"))
	}
	return fmt.Errorf("no mature crop after %d days", MaxFlowDays)
}

func (f *flow) harvest() error {
	if err := f.needFarm(); err != nil {
		return err
	}
	sim := f.a.Sim()
	before, harvested := sim.Money, sim.Stats.Harvested
	f.a.Dispatch(screen.Key("h"))
	if sim.Stats.Harvested != harvested+1 {
		return fmt.Errorf("harvest not counted: %v", f.a.Notices())
	}
	if sim.Money <= before {
		return fmt.Errorf("money %d did not rise from %d", sim.Money, before)
	}
	if f.tile().Occupied() {
		return errors.New("tile still occupied after harvest")
	}
	return nil
}

func (f *flow) save() error {
	if err := f.needFarm(); err != nil {
		return err
	}
	f.savedDay, f.savedMon = f.a.Sim().Day, f.a.Sim().Money
	f.a.Dispatch(screen.Key("ctrl+s"))
	if err := Check(f.a, "notice:Game saved"); err != nil {
		return err
	}
	if _, err := os.Stat(f.savePath); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

func (f *flow) load() error {
	if err := f.needFarm(); err != nil {
		return err
	}
	f.a.Dispatch(screen.Key("n"))
	f.a.Dispatch(screen.Key(" "))
	if err := expectState(f.a, state.Paused); err != nil {
		return err
	}
	f.a.Dispatch(screen.Click(state.TargetLoadGame))
	if err := expectState(f.a, state.Playing); err != nil {
		return fmt.Errorf("after load: %w", err)
	}
	sim := f.a.Sim()
	if sim.Day != f.savedDay || sim.Money != f.savedMon {
		return fmt.Errorf("loaded day %d money %d, saved day %d money %d",
			sim.Day, sim.Money, f.savedDay, f.savedMon)
	}
	return nil
}
