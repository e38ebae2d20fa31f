// Simulation ties the farm grid, weather, and market together and advances
// them one in-game day at a time.
package engine

import (
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/fieldstation/fieldstation/internal/entropy"
	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/market"
)

// StartYear is the calendar year every new farm begins in.
const StartYear = 2025

const (
	maxEvents   = 200
	saltExtreme = 0x45787472656d65 // "Extreme"
)

// Simulation holds the complete farm state.
type Simulation struct {
	ID          string // Save identity, kept across save/load
	Config      farm.FarmConfig
	Seed        int64
	Grid        farm.Grid
	Money       int
	Day         int
	Date        time.Time
	Season      farm.Season
	Weather     farm.Weather
	AutoHarvest bool

	// Day of the most recent extreme weather event.
	LastExtremeDay int

	Stats Stats

	Market *market.Market
	Events []Event // Recent events, oldest first

	// OnDayReport, when set, receives every day's report.
	OnDayReport func(DayReport)
}

// Stats are lifetime totals for the farm.
type Stats struct {
	Planted   int `json:"planted"`
	Harvested int `json:"harvested"`
	Earned    int `json:"earned"`
}

// Event is a notable occurrence on the farm.
type Event struct {
	Day         int    `json:"day"`
	Description string `json:"description"`
	Category    string `json:"category"` // "planting", "harvest", "weather", "damage"
}

// DayReport summarises one simulated day.
type DayReport struct {
	Day       int          `json:"day"`
	Date      time.Time    `json:"date"`
	Season    farm.Season  `json:"season"`
	Weather   farm.Weather `json:"weather"`
	Extreme   bool         `json:"extreme"`
	Money     int          `json:"money"`
	AvgSoil   float64      `json:"avg_soil"`
	Growing   int          `json:"growing"`
	Harvested int          `json:"harvested"`
}

// StartDate returns the first day of a farm started in season s.
func StartDate(s farm.Season) time.Time {
	return time.Date(StartYear, s.StartMonth(), 1, 0, 0, 0, 0, time.UTC)
}

// NewSimulation starts a fresh farm from a setup choice. A zero seed picks a
// random one.
func NewSimulation(cfg farm.FarmConfig, seed int64) *Simulation {
	if seed == 0 {
		seed = entropy.CryptoSeed()
	}
	season := cfg.Season
	if !season.Valid() {
		season = farm.SeasonSpring
	}
	cfg.Season = season

	sim := &Simulation{
		ID:      uuid.NewString(),
		Config:  cfg,
		Seed:    seed,
		Grid:    farm.GenerateGrid(seed, cfg.Location),
		Money:   farm.StartingMoney,
		Day:     1,
		Date:    StartDate(season),
		Season:  season,
		Weather: farm.WeatherSunny,
		Market:  market.New(seed),
	}
	slog.Info("farm started",
		"name", cfg.Name,
		"location", cfg.Location.String(),
		"season", season.String(),
		"seed", seed,
	)
	return sim
}

// EmitEvent records an event, keeping only the most recent ones.
func (s *Simulation) EmitEvent(category, format string, args ...any) {
	s.Events = append(s.Events, Event{
		Day:         s.Day,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	})
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
}

// TickDay advances the farm by one day.
func (s *Simulation) TickDay() DayReport {
	s.Day++
	s.Date = s.Date.AddDate(0, 0, 1)
	if season := farm.SeasonForMonth(s.Date.Month()); season != s.Season {
		slog.Info("season change", "day", s.Day, "from", s.Season.String(), "to", season.String())
		s.Season = season
	}

	harvested := 0
	if s.AutoHarvest {
		harvested = s.autoHarvest()
	}

	roll := RollWeather(s.Seed, s.Day, s.Date, s.Weather, s.LastExtremeDay)
	s.Weather = roll.Weather
	if roll.Extreme {
		s.LastExtremeDay = s.Day
		s.EmitEvent("weather", "EXTREME WEATHER: %s", roll.Weather)
		slog.Warn("extreme weather", "day", s.Day, "weather", roll.Weather.String())
	}

	rng := entropy.Stream(s.Seed, saltExtreme, uint64(s.Day))
	growing := 0
	s.Grid.Each(func(t *farm.Tile) {
		// Moisture responds to the weather before damage is assessed.
		if s.Weather.Extreme() {
			trial := *t
			trial.Moisture = farm.Clamp01(t.Moisture + s.Weather.MoistureDelta())
			if desc := applyExtreme(&trial, s.Weather, rng); desc != "" {
				t.Crop = trial.Crop
				s.EmitEvent("damage", "%s at (%d, %d)", desc, t.X, t.Y)
			}
		}
		*t = AdvanceInSeason(*t, s.Weather, s.Season, 1)
		if t.Occupied() {
			growing++
		}
	})

	report := DayReport{
		Day:       s.Day,
		Date:      s.Date,
		Season:    s.Season,
		Weather:   s.Weather,
		Extreme:   roll.Extreme,
		Money:     s.Money,
		AvgSoil:   s.Grid.AvgSoil(),
		Growing:   growing,
		Harvested: harvested,
	}
	slog.Debug("day advanced",
		"day", s.Day,
		"date", s.Date.Format(time.DateOnly),
		"weather", s.Weather.String(),
		"money", s.Money,
		"growing", growing,
	)
	if s.OnDayReport != nil {
		s.OnDayReport(report)
	}
	return report
}

// autoHarvest harvests every mature crop and returns how many were taken.
func (s *Simulation) autoHarvest() int {
	n := 0
	for y := 0; y < farm.GridHeight; y++ {
		for x := 0; x < farm.GridWidth; x++ {
			t, _ := s.Grid.At(x, y)
			if t.Crop.Mature() {
				if _, err := s.Harvest(x, y); err == nil {
					n++
				}
			}
		}
	}
	return n
}

// ValidCrops lists crops plantable in the current season.
func (s *Simulation) ValidCrops() []farm.CropKey {
	return farm.CropsFor(s.Season)
}

// Plant sows crop at (x, y), charging the seed cost.
func (s *Simulation) Plant(x, y int, crop farm.CropKey) error {
	t, err := s.Grid.At(x, y)
	if err != nil {
		return err
	}
	if t.Occupied() {
		return farm.ErrOccupied
	}
	if s.Money < farm.SeedCost {
		return fmt.Errorf("%w: need $%d", farm.ErrInsufficient, farm.SeedCost)
	}
	if err := t.Plant(crop, s.Season, s.Day); err != nil {
		return err
	}
	s.Money -= farm.SeedCost
	s.Stats.Planted++
	ct, _ := farm.Crop(crop)
	s.EmitEvent("planting", "Planted %s for $%d", ct.ShortName(), farm.SeedCost)
	return nil
}

// PlantingChoice resolves which crop to sow: pref when it is in season,
// otherwise wheat when in season, otherwise the first valid crop. It reports
// false when nothing can be planted this season.
func (s *Simulation) PlantingChoice(pref farm.CropKey) (farm.CropKey, bool) {
	valid := s.ValidCrops()
	if len(valid) == 0 {
		return "", false
	}
	if pref != "" && slices.Contains(valid, pref) {
		return pref, true
	}
	if slices.Contains(valid, farm.CropWheat) {
		return farm.CropWheat, true
	}
	return valid[0], true
}

// PlantDefault sows the best crop for the season at (x, y): wheat when it is
// in season, otherwise the first valid crop.
func (s *Simulation) PlantDefault(x, y int) (farm.CropKey, error) {
	choice, ok := s.PlantingChoice("")
	if !ok {
		return "", fmt.Errorf("%w: nothing grows in %s", farm.ErrOutOfSeason, s.Season)
	}
	return choice, s.Plant(x, y, choice)
}

// Harvest collects the crop at (x, y) and credits its sale value: the day's
// market quote scaled by soil quality.
func (s *Simulation) Harvest(x, y int) (int, error) {
	t, err := s.Grid.At(x, y)
	if err != nil {
		return 0, err
	}
	key, yield, err := t.Harvest()
	if err != nil {
		return 0, err
	}
	price := s.Market.Quote(key, s.Season, s.Day)
	value := int(float64(price) * yield)
	s.Money += value
	s.Stats.Harvested++
	s.Stats.Earned += value

	ct, _ := farm.Crop(key)
	s.EmitEvent("harvest", "Harvested %s for $%d", ct.ShortName(), value)
	return value, nil
}
