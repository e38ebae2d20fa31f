// Package farm provides the farm domain types: seasons, weather, crops,
// tiles, and the 3x3 field grid.
package farm

import (
	"fmt"
	"strings"
	"time"
)

// Season gates which crops can be planted and drives market modifiers.
// The zero value is SeasonNone, meaning no season has been chosen.
type Season uint8

const (
	SeasonNone Season = iota
	SeasonSpring
	SeasonSummer
	SeasonFall
	SeasonWinter
)

// Seasons lists the four selectable seasons in calendar order.
var Seasons = [4]Season{SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter}

// Valid reports whether s is one of the four seasons.
func (s Season) Valid() bool {
	return s >= SeasonSpring && s <= SeasonWinter
}

// String returns a human-readable season name.
func (s Season) String() string {
	switch s {
	case SeasonSpring:
		return "Spring"
	case SeasonSummer:
		return "Summer"
	case SeasonFall:
		return "Fall"
	case SeasonWinter:
		return "Winter"
	default:
		return "None"
	}
}

// ParseSeason accepts a season name in any case ("spring", "FALL").
func ParseSeason(name string) (Season, error) {
	for _, s := range Seasons {
		if strings.EqualFold(s.String(), name) {
			return s, nil
		}
	}
	return SeasonNone, fmt.Errorf("unknown season %q", name)
}

// SeasonForMonth maps a calendar month to its northern-hemisphere season.
func SeasonForMonth(m time.Month) Season {
	switch m {
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	case time.September, time.October, time.November:
		return SeasonFall
	default:
		return SeasonWinter
	}
}

// StartMonth returns the first month of the season, used when a farm is
// started in a season other than the calendar default.
func (s Season) StartMonth() time.Month {
	switch s {
	case SeasonSummer:
		return time.June
	case SeasonFall:
		return time.September
	case SeasonWinter:
		return time.December
	default:
		return time.March
	}
}

// MarshalText encodes the season by name.
func (s Season) MarshalText() ([]byte, error) {
	if s == SeasonNone {
		return []byte(""), nil
	}
	if !s.Valid() {
		return nil, fmt.Errorf("invalid season %d", s)
	}
	return []byte(s.String()), nil
}

// UnmarshalText decodes a season name; the empty string is SeasonNone.
func (s *Season) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*s = SeasonNone
		return nil
	}
	v, err := ParseSeason(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
