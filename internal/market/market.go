// Package market provides crop pricing: seasonal base prices with a
// reproducible daily variance.
package market

import (
	"github.com/fieldstation/fieldstation/internal/entropy"
	"github.com/fieldstation/fieldstation/internal/farm"
)

// DailyVariance is the maximum daily swing either side of the seasonal price.
const DailyVariance = 0.15

// seasonalMods holds demand modifiers per season and crop.
var seasonalMods = map[farm.Season]map[farm.CropKey]float64{
	farm.SeasonSpring: {
		farm.CropWheat:     1.2, // Higher demand in spring
		farm.CropSweetCorn: 0.9,
		farm.CropPotato:    1.1,
		farm.CropCarrot:    1.0,
		farm.CropSoybean:   1.0,
		farm.CropFieldCorn: 0.8,
		farm.CropPumpkin:   0.7, // Off season
		farm.CropTomato:    0.9,
	},
	farm.SeasonSummer: {
		farm.CropWheat:     0.8,
		farm.CropSweetCorn: 1.3, // Peak season
		farm.CropPotato:    0.9,
		farm.CropCarrot:    1.1,
		farm.CropSoybean:   1.0,
		farm.CropFieldCorn: 1.0,
		farm.CropPumpkin:   0.8,
		farm.CropTomato:    1.4, // Peak season
	},
	farm.SeasonFall: {
		farm.CropWheat:     1.0,
		farm.CropSweetCorn: 0.7,
		farm.CropPotato:    1.2,
		farm.CropCarrot:    1.3,
		farm.CropSoybean:   1.2,
		farm.CropFieldCorn: 1.3,
		farm.CropPumpkin:   1.5,
		farm.CropTomato:    0.8,
	},
	farm.SeasonWinter: {
		farm.CropWheat:     1.1,
		farm.CropSweetCorn: 1.0,
		farm.CropPotato:    1.0,
		farm.CropCarrot:    0.9,
		farm.CropSoybean:   1.1,
		farm.CropFieldCorn: 1.0,
		farm.CropPumpkin:   0.6,
		farm.CropTomato:    1.1, // Greenhouse premium
	},
}

// SeasonalModifier returns the demand modifier for crop in season.
// Unlisted combinations are neutral.
func SeasonalModifier(crop farm.CropKey, season farm.Season) float64 {
	if mod, ok := seasonalMods[season][crop]; ok {
		return mod
	}
	return 1.0
}

// ModifierRange returns the smallest and largest seasonal modifier for crop.
func ModifierRange(crop farm.CropKey) (lo, hi float64) {
	lo, hi = SeasonalModifier(crop, farm.SeasonSpring), SeasonalModifier(crop, farm.SeasonSpring)
	for _, s := range farm.Seasons[1:] {
		m := SeasonalModifier(crop, s)
		lo = min(lo, m)
		hi = max(hi, m)
	}
	return lo, hi
}

// Variance returns the daily multiplier in [1-DailyVariance, 1+DailyVariance)
// for the crop on the given day seed.
func Variance(crop farm.CropKey, daySeed int64) float64 {
	return 1 + entropy.Uniform(-DailyVariance, DailyVariance, daySeed, entropy.HashString(string(crop)))
}

// Price is base price × seasonal modifier × daily variance. Unknown crops
// have no price.
func Price(crop farm.CropKey, season farm.Season, daySeed int64) float64 {
	ct, ok := farm.Crop(crop)
	if !ok {
		return 0
	}
	return float64(ct.Value) * SeasonalModifier(crop, season) * Variance(crop, daySeed)
}

// Trend summarises the seasonal modifier for display.
func Trend(crop farm.CropKey, season farm.Season) string {
	mod := SeasonalModifier(crop, season)
	switch {
	case mod >= 1.2:
		return "HIGH"
	case mod >= 1.1:
		return "Good"
	case mod <= 0.8:
		return "Low"
	case mod <= 0.9:
		return "Poor"
	default:
		return "Fair"
	}
}
