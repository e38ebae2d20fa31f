// Package savefile reads and writes the single JSON save slot. Saves are
// whole-file snapshots; there are no partial updates.
package savefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fieldstation/fieldstation/internal/engine"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/market"
)

// Version is written into every save. Saves with a different major version
// are rejected.
const Version = "0.1"

// DefaultName is the save slot file name.
const DefaultName = "savegame.json"

var (
	ErrNotFound  = errors.New("save file not found")
	ErrMalformed = errors.New("save file is malformed")
	ErrVersion   = errors.New("unsupported save version")
)

// State is the on-disk snapshot of a farm.
type State struct {
	Version        string          `json:"version"`
	ID             string          `json:"id"`
	SavedAt        time.Time       `json:"saved_at"`
	Farm           farm.FarmConfig `json:"farm"`
	Seed           int64           `json:"seed"`
	Day            int             `json:"day"`
	Date           time.Time       `json:"date"`
	Season         farm.Season     `json:"season"`
	Money          int             `json:"money"`
	Weather        farm.Weather    `json:"weather"`
	LastExtremeDay int             `json:"last_extreme_day"`
	AutoHarvest    bool            `json:"auto_harvest"`
	Stats          engine.Stats    `json:"stats"`
	Grid           farm.Grid       `json:"grid"`
}

// Snapshot captures sim for saving.
func Snapshot(sim *engine.Simulation) State {
	return State{
		Version:        Version,
		ID:             sim.ID,
		SavedAt:        time.Now().UTC(),
		Farm:           sim.Config,
		Seed:           sim.Seed,
		Day:            sim.Day,
		Date:           sim.Date,
		Season:         sim.Season,
		Money:          sim.Money,
		Weather:        sim.Weather,
		LastExtremeDay: sim.LastExtremeDay,
		AutoHarvest:    sim.AutoHarvest,
		Stats:          sim.Stats,
		Grid:           sim.Grid.Clone(),
	}
}

// Restore rebuilds a simulation from the snapshot. The market is derived from
// the seed, so prices continue exactly where they left off.
func (st State) Restore() *engine.Simulation {
	return &engine.Simulation{
		ID:             st.ID,
		Config:         st.Farm,
		Seed:           st.Seed,
		Grid:           st.Grid.Clone(),
		Money:          st.Money,
		Day:            st.Day,
		Date:           st.Date,
		Season:         st.Season,
		Weather:        st.Weather,
		AutoHarvest:    st.AutoHarvest,
		LastExtremeDay: st.LastExtremeDay,
		Stats:          st.Stats,
		Market:         market.New(st.Seed),
	}
}

// Write replaces the save at path with st. The file is written to a
// temporary sibling and renamed, so a crash never leaves half a save.
func Write(path string, st State) error {
	if st.Version == "" {
		st.Version = Version
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace save: %w", err)
	}

	slog.Info("game saved", "path", path, "farm", st.Farm.Name, "day", st.Day)
	return nil
}

// Read loads the save at path.
func Read(path string) (State, error) {
	var st State
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return st, fmt.Errorf("read save: %w", err)
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := checkVersion(st.Version); err != nil {
		return st, err
	}
	if err := st.validate(); err != nil {
		return st, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return st, nil
}

func checkVersion(v string) error {
	if v == "" {
		return fmt.Errorf("%w: missing version", ErrMalformed)
	}
	want, _, _ := strings.Cut(Version, ".")
	got, _, _ := strings.Cut(v, ".")
	if got != want {
		return fmt.Errorf("%w: %s (want %s.x)", ErrVersion, v, want)
	}
	return nil
}

func (st State) validate() error {
	if !st.Farm.Season.Valid() {
		return errors.New("farm has no season")
	}
	if !slices.Contains(farm.Locations, st.Farm.Location) {
		return fmt.Errorf("unknown location %d", st.Farm.Location)
	}
	if st.Day < 1 {
		return fmt.Errorf("day %d", st.Day)
	}
	for y := range st.Grid.Tiles {
		for x := range st.Grid.Tiles[y] {
			t := &st.Grid.Tiles[y][x]
			if t.X != x || t.Y != y {
				return fmt.Errorf("tile at (%d, %d) claims (%d, %d)", x, y, t.X, t.Y)
			}
			for _, v := range []float64{t.SoilQuality, t.Moisture, t.Nitrogen} {
				if v < 0 || v > 1 {
					return fmt.Errorf("tile (%d, %d) value %.3f out of range", x, y, v)
				}
			}
			if t.Crop != nil {
				if _, ok := farm.Crop(t.Crop.Type); !ok {
					return fmt.Errorf("tile (%d, %d): %w: %s", x, y, farm.ErrUnknownCrop, t.Crop.Type)
				}
			}
		}
	}
	return nil
}
