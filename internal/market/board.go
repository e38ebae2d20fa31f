package market

import (
	"log/slog"

	"github.com/fieldstation/fieldstation/internal/farm"
)

// Board is the set of prices for one in-game day.
type Board struct {
	Day    int                      `json:"day"`
	Season farm.Season              `json:"season"`
	Prices map[farm.CropKey]float64 `json:"prices"`
}

// Market caches the day's board and recomputes it only when the day (or
// season) changes.
type Market struct {
	seed    int64
	current *Board
}

// New creates a market whose daily variance is keyed by the farm seed.
func New(seed int64) *Market {
	return &Market{seed: seed}
}

// DaySeed combines the farm seed with the day number.
func (m *Market) DaySeed(day int) int64 {
	return m.seed*1_000_003 + int64(day)
}

// Board returns the prices for day, reusing the cached board when possible.
func (m *Market) Board(day int, season farm.Season) *Board {
	if m.current != nil && m.current.Day == day && m.current.Season == season {
		return m.current
	}

	b := &Board{
		Day:    day,
		Season: season,
		Prices: make(map[farm.CropKey]float64, len(farm.CropOrder)),
	}
	seed := m.DaySeed(day)
	for _, k := range farm.CropOrder {
		b.Prices[k] = Price(k, season, seed)
	}
	m.current = b
	slog.Debug("market board recomputed", "day", day, "season", season)
	return b
}

// Quote is the whole-dollar sale price for one unit of crop, at least 1.
func (m *Market) Quote(crop farm.CropKey, season farm.Season, day int) int {
	p, ok := m.Board(day, season).Prices[crop]
	if !ok {
		return 0
	}
	return max(1, int(p))
}
