package farm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHarvestSoilNeverNegative(t *testing.T) {
	tile := Tile{SoilQuality: 0.17}
	prev := tile.SoilQuality
	for i := 0; i < 10; i++ {
		require.NoError(t, tile.Plant(CropCarrot, SeasonSpring, i))
		tile.Crop.GrowthProgress = 1
		_, _, err := tile.Harvest()
		require.NoError(t, err)

		assert.LessOrEqual(t, tile.SoilQuality, prev)
		assert.GreaterOrEqual(t, tile.SoilQuality, 0.0)
		prev = tile.SoilQuality
	}
	assert.Equal(t, 0.0, tile.SoilQuality)
	assert.Equal(t, 10, tile.HarvestedTimes)
}

func TestHarvestReturnsYieldBeforeDamage(t *testing.T) {
	tile := Tile{SoilQuality: 0.8, Crop: &CropInstance{Type: CropTomato, GrowthProgress: 1}}
	key, yield, err := tile.Harvest()
	require.NoError(t, err)
	assert.Equal(t, CropTomato, key)
	assert.InDelta(t, 0.8, yield, 1e-9)
	assert.InDelta(t, 0.75, tile.SoilQuality, 1e-9)
	assert.False(t, tile.Occupied())
}

func TestHarvestErrors(t *testing.T) {
	var empty Tile
	_, _, err := empty.Harvest()
	assert.ErrorIs(t, err, ErrEmptyTile)

	growing := Tile{Crop: &CropInstance{Type: CropWheat, GrowthProgress: 0.4}}
	_, _, err = growing.Harvest()
	assert.ErrorIs(t, err, ErrNotReady)
	assert.True(t, growing.Occupied())
}

func TestPlant(t *testing.T) {
	var tile Tile
	assert.ErrorIs(t, tile.Plant(CropWheat, SeasonSpring, 1), ErrOutOfSeason)
	assert.ErrorIs(t, tile.Plant("turnip", SeasonSpring, 1), ErrUnknownCrop)
	require.NoError(t, tile.Plant(CropWheat, SeasonFall, 3))
	assert.Equal(t, 3, tile.Crop.PlantedDay)
	assert.ErrorIs(t, tile.Plant(CropWheat, SeasonFall, 4), ErrOccupied)
}

func TestGridAt(t *testing.T) {
	g := GenerateGrid(7, LocationChampaign)
	tile, err := g.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, tile.X)
	assert.Equal(t, 1, tile.Y)

	_, err = g.At(3, 0)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = g.At(0, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestGenerateGridDeterministicAndInProfile(t *testing.T) {
	a := GenerateGrid(42, LocationChampaign)
	b := GenerateGrid(42, LocationChampaign)
	assert.Equal(t, a, b)

	p := LocationChampaign.Profile()
	a.Each(func(tile *Tile) {
		assert.GreaterOrEqual(t, tile.SoilQuality, p.QualityMin)
		assert.LessOrEqual(t, tile.SoilQuality, p.QualityMax)
		assert.GreaterOrEqual(t, tile.Moisture, p.MoistureMin)
		assert.LessOrEqual(t, tile.Moisture, p.MoistureMax)
		assert.GreaterOrEqual(t, tile.Nitrogen, p.NitrogenMin)
		assert.LessOrEqual(t, tile.Nitrogen, p.NitrogenMax)
		assert.Nil(t, tile.Crop)
	})
}

func TestGridCloneIsDeep(t *testing.T) {
	g := GenerateGrid(1, LocationChampaign)
	g.Tiles[0][0].Crop = &CropInstance{Type: CropPotato, GrowthProgress: 0.5}
	c := g.Clone()
	c.Tiles[0][0].Crop.GrowthProgress = 0.9
	assert.Equal(t, 0.5, g.Tiles[0][0].Crop.GrowthProgress)
}

func TestSeasonForMonth(t *testing.T) {
	tests := []struct {
		month time.Month
		want  Season
	}{
		{time.March, SeasonSpring},
		{time.May, SeasonSpring},
		{time.June, SeasonSummer},
		{time.August, SeasonSummer},
		{time.September, SeasonFall},
		{time.November, SeasonFall},
		{time.December, SeasonWinter},
		{time.February, SeasonWinter},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SeasonForMonth(tt.month), tt.month.String())
	}
	for _, s := range Seasons {
		assert.Equal(t, s, SeasonForMonth(s.StartMonth()))
	}
}

func TestParseSeasonAndWeather(t *testing.T) {
	s, err := ParseSeason("fall")
	require.NoError(t, err)
	assert.Equal(t, SeasonFall, s)
	_, err = ParseSeason("monsoon")
	assert.Error(t, err)
	assert.False(t, SeasonNone.Valid())

	w, err := ParseWeather("HAIL")
	require.NoError(t, err)
	assert.Equal(t, WeatherHail, w)
	assert.True(t, w.Extreme())
	assert.False(t, WeatherRainy.Extreme())
}

func TestCropsFor(t *testing.T) {
	assert.Equal(t, []CropKey{CropWheat}, CropsFor(SeasonFall))
	assert.Empty(t, CropsFor(SeasonWinter))
	assert.Contains(t, CropsFor(SeasonSummer), CropTomato)

	corn, ok := Crop(CropSweetCorn)
	require.True(t, ok)
	assert.Equal(t, "Corn", corn.ShortName())
	assert.InDelta(t, 1.0/120, corn.BaseRate(), 1e-12)
}
