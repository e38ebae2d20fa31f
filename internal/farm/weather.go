package farm

import (
	"fmt"
	"strings"
)

// Weather is the condition for one in-game day.
type Weather uint8

const (
	WeatherSunny Weather = iota
	WeatherCloudy
	WeatherRainy
	WeatherSnowy

	// Extreme events.
	WeatherDrought
	WeatherFlood
	WeatherStorm
	WeatherHail
)

var weatherNames = [...]string{
	WeatherSunny:   "Sunny",
	WeatherCloudy:  "Cloudy",
	WeatherRainy:   "Rainy",
	WeatherSnowy:   "Snowy",
	WeatherDrought: "Drought",
	WeatherFlood:   "Flood",
	WeatherStorm:   "Storm",
	WeatherHail:    "Hail",
}

func (w Weather) String() string {
	if int(w) < len(weatherNames) {
		return weatherNames[w]
	}
	return "Unknown"
}

// Extreme reports whether w is one of the rare severe events.
func (w Weather) Extreme() bool {
	return w >= WeatherDrought && w <= WeatherHail
}

// MoistureDelta is the per-day soil moisture change caused by w.
func (w Weather) MoistureDelta() float64 {
	switch w {
	case WeatherSunny:
		return -0.01
	case WeatherCloudy:
		return 0
	case WeatherRainy:
		return 0.02
	case WeatherSnowy:
		return 0.01
	case WeatherDrought:
		return -0.08
	case WeatherFlood:
		return 0.15
	case WeatherStorm:
		return 0.08
	case WeatherHail:
		return 0.03
	}
	return 0
}

// ParseWeather accepts a weather name in any case.
func ParseWeather(name string) (Weather, error) {
	for i, n := range weatherNames {
		if strings.EqualFold(n, name) {
			return Weather(i), nil
		}
	}
	return WeatherSunny, fmt.Errorf("unknown weather %q", name)
}

// MarshalText encodes the weather by name.
func (w Weather) MarshalText() ([]byte, error) {
	if int(w) >= len(weatherNames) {
		return nil, fmt.Errorf("invalid weather %d", w)
	}
	return []byte(weatherNames[w]), nil
}

// UnmarshalText decodes a weather name.
func (w *Weather) UnmarshalText(b []byte) error {
	v, err := ParseWeather(string(b))
	if err != nil {
		return err
	}
	*w = v
	return nil
}
