// Per-tile growth, moisture, and nitrogen updates.
package engine

import (
	"math/rand/v2"

	"github.com/fieldstation/fieldstation/internal/farm"
)

// Growth tuning.
const (
	NitrogenRecovery    = 0.001 // Per day on an empty tile
	NitrogenConsumption = 0.001 // Per day, scaled by the crop's need
	WinterGrowthMod     = 0.1
)

// WaterFactor scales growth by moisture sufficiency.
func WaterFactor(moisture, need float64) float64 {
	switch {
	case moisture < need*0.5:
		return 0.8
	case moisture > need*1.5:
		return 0.9
	default:
		return 1.0
	}
}

// NitrogenFactor scales growth by nitrogen sufficiency. Nitrogen-fixing
// crops (negative need) are never limited.
func NitrogenFactor(nitrogen, need float64) float64 {
	if nitrogen < need*0.5 {
		return 0.7
	}
	return 1.0
}

// Advance returns the tile after dt days of weather w. The input is not
// modified.
func Advance(t farm.Tile, w farm.Weather, dt float64) farm.Tile {
	return advance(t, w, dt, 1.0)
}

// AdvanceInSeason is Advance with the seasonal growth penalty applied.
func AdvanceInSeason(t farm.Tile, w farm.Weather, s farm.Season, dt float64) farm.Tile {
	mod := 1.0
	if s == farm.SeasonWinter {
		mod = WinterGrowthMod
	}
	return advance(t, w, dt, mod)
}

func advance(t farm.Tile, w farm.Weather, dt, growthMod float64) farm.Tile {
	t = t.Clone()
	t.Moisture = farm.Clamp01(t.Moisture + w.MoistureDelta()*dt)

	if t.Crop == nil {
		t.Nitrogen = farm.Clamp01(t.Nitrogen + NitrogenRecovery*dt)
		return t
	}

	ct, ok := farm.Crop(t.Crop.Type)
	if !ok {
		return t
	}

	rate := ct.BaseRate() *
		WaterFactor(t.Moisture, ct.WaterNeed) *
		NitrogenFactor(t.Nitrogen, ct.NitrogenNeed) *
		growthMod
	t.Crop.GrowthProgress = min(1.0, t.Crop.GrowthProgress+rate*dt)
	t.Crop.DaysPlanted += dt

	// Consumption, or fixation for legumes.
	t.Nitrogen = farm.Clamp01(t.Nitrogen - ct.NitrogenNeed*NitrogenConsumption*dt)
	return t
}

// applyExtreme applies the crop damage of an extreme weather day to t and
// returns a description when something happened.
func applyExtreme(t *farm.Tile, w farm.Weather, rng *rand.Rand) string {
	if t.Crop == nil {
		return ""
	}
	switch w {
	case farm.WeatherHail:
		if rng.Float64() < 0.3 {
			damage := 0.1 + rng.Float64()*0.2
			t.Crop.GrowthProgress = max(0, t.Crop.GrowthProgress-damage)
			return "hail damaged crop"
		}
	case farm.WeatherFlood:
		if t.Moisture > 0.9 && rng.Float64() < 0.15 {
			t.Crop = nil
			return "flood destroyed crop"
		}
	case farm.WeatherDrought:
		if t.Moisture < 0.2 {
			t.Crop.GrowthProgress = max(0, t.Crop.GrowthProgress-0.05)
			return "drought stunted crop"
		}
	}
	return ""
}
