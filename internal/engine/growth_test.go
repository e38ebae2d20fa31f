package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldstation/fieldstation/internal/farm"
)

func planted(key farm.CropKey, moisture, nitrogen float64) farm.Tile {
	return farm.Tile{
		SoilQuality: 0.7,
		Moisture:    moisture,
		Nitrogen:    nitrogen,
		Crop:        &farm.CropInstance{Type: key},
	}
}

func TestWaterFactor(t *testing.T) {
	tests := []struct {
		name     string
		moisture float64
		need     float64
		want     float64
	}{
		{"dry", 0.1, 0.4, 0.8},
		{"ideal", 0.4, 0.4, 1.0},
		{"upper edge", 0.6, 0.4, 1.0},
		{"waterlogged", 0.7, 0.4, 0.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WaterFactor(tt.moisture, tt.need))
		})
	}
}

func TestNitrogenFactor(t *testing.T) {
	assert.Equal(t, 0.7, NitrogenFactor(0.1, 0.6))
	assert.Equal(t, 1.0, NitrogenFactor(0.3, 0.6))
	assert.Equal(t, 1.0, NitrogenFactor(0.0, -0.3), "nitrogen fixers are never limited")
}

func TestAdvanceGrowthRate(t *testing.T) {
	corn, _ := farm.Crop(farm.CropSweetCorn) // water 0.5, nitrogen 0.6

	ideal := Advance(planted(farm.CropSweetCorn, 0.5, 0.6), farm.WeatherCloudy, 1)
	assert.InDelta(t, corn.BaseRate(), ideal.Crop.GrowthProgress, 1e-12)

	dry := Advance(planted(farm.CropSweetCorn, 0.1, 0.6), farm.WeatherCloudy, 1)
	assert.InDelta(t, corn.BaseRate()*0.8, dry.Crop.GrowthProgress, 1e-12)

	starved := Advance(planted(farm.CropSweetCorn, 0.5, 0.1), farm.WeatherCloudy, 1)
	assert.InDelta(t, corn.BaseRate()*0.7, starved.Crop.GrowthProgress, 1e-12)

	both := Advance(planted(farm.CropSweetCorn, 0.9, 0.1), farm.WeatherCloudy, 2)
	assert.InDelta(t, corn.BaseRate()*0.9*0.7*2, both.Crop.GrowthProgress, 1e-12)
	assert.Equal(t, 2.0, both.Crop.DaysPlanted)
}

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	in := planted(farm.CropPotato, 0.5, 0.5)
	out := Advance(in, farm.WeatherRainy, 1)
	assert.Zero(t, in.Crop.GrowthProgress)
	assert.Equal(t, 0.5, in.Moisture)
	assert.NotSame(t, in.Crop, out.Crop)
}

func TestAdvanceMoistureDeltas(t *testing.T) {
	tests := []struct {
		weather farm.Weather
		delta   float64
	}{
		{farm.WeatherSunny, -0.01},
		{farm.WeatherCloudy, 0},
		{farm.WeatherRainy, 0.02},
		{farm.WeatherSnowy, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.weather.String(), func(t *testing.T) {
			out := Advance(farm.Tile{Moisture: 0.5}, tt.weather, 1)
			assert.InDelta(t, 0.5+tt.delta, out.Moisture, 1e-12)
		})
	}
}

func TestEmptyTileRecoversNitrogen(t *testing.T) {
	out := Advance(farm.Tile{Nitrogen: 0.3}, farm.WeatherCloudy, 1)
	assert.InDelta(t, 0.301, out.Nitrogen, 1e-12)

	full := Advance(farm.Tile{Nitrogen: 1}, farm.WeatherCloudy, 5)
	assert.Equal(t, 1.0, full.Nitrogen)
}

func TestSoybeanFixesNitrogen(t *testing.T) {
	out := Advance(planted(farm.CropSoybean, 0.4, 0.5), farm.WeatherCloudy, 1)
	assert.Greater(t, out.Nitrogen, 0.5)
}

func TestGrowthCapsAtOne(t *testing.T) {
	tile := planted(farm.CropCarrot, 0.3, 0.5)
	tile.Crop.GrowthProgress = 0.999
	out := Advance(tile, farm.WeatherCloudy, 10)
	assert.Equal(t, 1.0, out.Crop.GrowthProgress)
}

func TestWinterSlowsGrowth(t *testing.T) {
	spring := AdvanceInSeason(planted(farm.CropCarrot, 0.3, 0.5), farm.WeatherCloudy, farm.SeasonSpring, 1)
	winter := AdvanceInSeason(planted(farm.CropCarrot, 0.3, 0.5), farm.WeatherCloudy, farm.SeasonWinter, 1)
	assert.InDelta(t, spring.Crop.GrowthProgress*WinterGrowthMod, winter.Crop.GrowthProgress, 1e-12)
}

func TestClampingInvariant(t *testing.T) {
	weathers := []farm.Weather{
		farm.WeatherSunny, farm.WeatherCloudy, farm.WeatherRainy, farm.WeatherSnowy,
		farm.WeatherDrought, farm.WeatherFlood, farm.WeatherStorm, farm.WeatherHail,
	}
	for _, key := range farm.CropOrder {
		tile := planted(key, 0.5, 0.5)
		for i := 0; i < 400; i++ {
			tile = Advance(tile, weathers[(i*7)%len(weathers)], 1.5)
			require.GreaterOrEqual(t, tile.Moisture, 0.0)
			require.LessOrEqual(t, tile.Moisture, 1.0)
			require.GreaterOrEqual(t, tile.Nitrogen, 0.0)
			require.LessOrEqual(t, tile.Nitrogen, 1.0)
		}
		for i := 0; i < 200; i++ {
			tile = Advance(tile, farm.WeatherFlood, 1)
		}
		assert.Equal(t, 1.0, tile.Moisture)
		for i := 0; i < 200; i++ {
			tile = Advance(tile, farm.WeatherDrought, 1)
		}
		assert.Equal(t, 0.0, tile.Moisture)
	}
}
