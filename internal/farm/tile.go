package farm

import (
	"errors"
	"fmt"
)

// Grid dimensions.
const (
	GridWidth  = 3
	GridHeight = 3
)

// Economy constants.
const (
	SeedCost          = 10
	HarvestSoilDamage = 0.05
	StartingMoney     = 500
)

var (
	ErrOccupied     = errors.New("tile already has a crop")
	ErrEmptyTile    = errors.New("no crop to harvest")
	ErrNotReady     = errors.New("crop is not fully grown")
	ErrOutOfSeason  = errors.New("crop cannot be planted this season")
	ErrUnknownCrop  = errors.New("unknown crop")
	ErrOutOfBounds  = errors.New("tile out of bounds")
	ErrInsufficient = errors.New("not enough money for seeds")
)

// CropInstance is a crop in the ground.
type CropInstance struct {
	Type           CropKey `json:"type"`
	PlantedDay     int     `json:"planted_day"`
	GrowthProgress float64 `json:"growth_progress"` // 0-1; 1 = ready to harvest
	DaysPlanted    float64 `json:"days_planted"`
}

// Mature reports whether the crop can be harvested.
func (c *CropInstance) Mature() bool {
	return c != nil && c.GrowthProgress >= 1.0
}

// Tile is one cell of the farm grid.
type Tile struct {
	X              int           `json:"x"`
	Y              int           `json:"y"`
	SoilQuality    float64       `json:"soil_quality"` // 0-1
	Moisture       float64       `json:"moisture"`     // 0-1
	Nitrogen       float64       `json:"nitrogen"`     // 0-1
	Crop           *CropInstance `json:"crop,omitempty"`
	HarvestedTimes int           `json:"harvested_times"`
}

// Occupied reports whether a crop is growing on the tile.
func (t *Tile) Occupied() bool {
	return t.Crop != nil
}

// Clone returns a deep copy of the tile.
func (t Tile) Clone() Tile {
	if t.Crop != nil {
		c := *t.Crop
		t.Crop = &c
	}
	return t
}

// Plant sows crop on the tile. Money is the caller's concern.
func (t *Tile) Plant(key CropKey, season Season, day int) error {
	if t.Crop != nil {
		return ErrOccupied
	}
	ct, ok := Crop(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCrop, key)
	}
	if !ct.PlantableIn(season) {
		return fmt.Errorf("%w: %s in %s", ErrOutOfSeason, ct.ShortName(), season)
	}
	t.Crop = &CropInstance{Type: key, PlantedDay: day}
	return nil
}

// Harvest removes a mature crop and returns its type together with the yield
// multiplier (soil quality before the harvest damage is applied).
func (t *Tile) Harvest() (CropKey, float64, error) {
	if t.Crop == nil {
		return "", 0, ErrEmptyTile
	}
	if !t.Crop.Mature() {
		return "", 0, fmt.Errorf("%w: %d%% grown", ErrNotReady, int(t.Crop.GrowthProgress*100))
	}
	key := t.Crop.Type
	yield := t.SoilQuality

	t.SoilQuality = Clamp01(t.SoilQuality - HarvestSoilDamage)
	t.HarvestedTimes++
	t.Crop = nil
	return key, yield, nil
}

// Clamp01 bounds v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Grid holds the field tiles in row-major order.
type Grid struct {
	Tiles [GridHeight][GridWidth]Tile `json:"tiles"`
}

// At returns the tile at (x, y).
func (g *Grid) At(x, y int) (*Tile, error) {
	if x < 0 || x >= GridWidth || y < 0 || y >= GridHeight {
		return nil, fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, x, y)
	}
	return &g.Tiles[y][x], nil
}

// Each calls fn for every tile in row-major order.
func (g *Grid) Each(fn func(t *Tile)) {
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			fn(&g.Tiles[y][x])
		}
	}
}

// AvgSoil returns mean soil quality across the grid.
func (g *Grid) AvgSoil() float64 {
	total := 0.0
	g.Each(func(t *Tile) { total += t.SoilQuality })
	return total / float64(GridWidth*GridHeight)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	for y := range g.Tiles {
		for x := range g.Tiles[y] {
			g.Tiles[y][x] = g.Tiles[y][x].Clone()
		}
	}
	return g
}
