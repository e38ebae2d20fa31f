// Daily weather for Central Illinois: month-weighted options, a change every
// few days, and rare extreme events.
package engine

import (
	"time"

	"github.com/fieldstation/fieldstation/internal/entropy"
	"github.com/fieldstation/fieldstation/internal/farm"
)

const (
	ExtremeChance   = 0.05 // Per day
	ExtremeCooldown = 7    // Minimum days between extreme events

	saltWeather = 0x57656174686572 // "Weather"
)

// monthlyOptions lists equally likely weather for each month; repeats weight
// the draw.
var monthlyOptions = map[time.Month][]farm.Weather{
	time.December:  {farm.WeatherCloudy, farm.WeatherCloudy, farm.WeatherSnowy, farm.WeatherSunny},
	time.January:   {farm.WeatherSnowy, farm.WeatherCloudy, farm.WeatherCloudy, farm.WeatherSunny},
	time.February:  {farm.WeatherCloudy, farm.WeatherCloudy, farm.WeatherSnowy, farm.WeatherSunny},
	time.March:     {farm.WeatherCloudy, farm.WeatherRainy, farm.WeatherRainy, farm.WeatherSunny},
	time.April:     {farm.WeatherRainy, farm.WeatherCloudy, farm.WeatherSunny, farm.WeatherRainy},
	time.May:       {farm.WeatherSunny, farm.WeatherRainy, farm.WeatherCloudy, farm.WeatherSunny},
	time.June:      {farm.WeatherSunny, farm.WeatherRainy, farm.WeatherCloudy, farm.WeatherSunny},
	time.July:      {farm.WeatherSunny, farm.WeatherSunny, farm.WeatherCloudy, farm.WeatherRainy},
	time.August:    {farm.WeatherSunny, farm.WeatherSunny, farm.WeatherSunny, farm.WeatherCloudy},
	time.September: {farm.WeatherSunny, farm.WeatherSunny, farm.WeatherCloudy, farm.WeatherRainy},
	time.October:   {farm.WeatherSunny, farm.WeatherCloudy, farm.WeatherSunny, farm.WeatherRainy},
	time.November:  {farm.WeatherCloudy, farm.WeatherSunny, farm.WeatherRainy, farm.WeatherCloudy},
}

// extremeOptions returns the extreme events possible in a season.
func extremeOptions(s farm.Season) []farm.Weather {
	var opts []farm.Weather
	if s == farm.SeasonSummer || s == farm.SeasonFall {
		opts = append(opts, farm.WeatherDrought, farm.WeatherStorm)
	}
	if s == farm.SeasonSpring || s == farm.SeasonSummer {
		opts = append(opts, farm.WeatherFlood, farm.WeatherHail)
	}
	return opts
}

// WeatherRoll is the outcome of one day's weather draw.
type WeatherRoll struct {
	Weather farm.Weather
	Changed bool
	Extreme bool
}

// RollWeather decides the weather for day. The draw depends only on the
// inputs, so replaying a day reproduces its weather.
func RollWeather(seed int64, day int, date time.Time, current farm.Weather, lastExtreme int) WeatherRoll {
	rng := entropy.Stream(seed, saltWeather, uint64(day))
	season := farm.SeasonForMonth(date.Month())

	if day-lastExtreme > ExtremeCooldown && rng.Float64() < ExtremeChance {
		if opts := extremeOptions(season); len(opts) > 0 {
			return WeatherRoll{Weather: opts[rng.IntN(len(opts))], Changed: true, Extreme: true}
		}
	}

	// Weather shifts every 3-5 days; otherwise it holds.
	if day%(3+rng.IntN(3)) == 0 {
		opts := monthlyOptions[date.Month()]
		next := opts[rng.IntN(len(opts))]
		return WeatherRoll{Weather: next, Changed: next != current}
	}
	return WeatherRoll{Weather: current}
}
