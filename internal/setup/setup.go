// Package setup holds the farm setup form and the rule that gates START.
package setup

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fieldstation/fieldstation/internal/farm"
)

// MaxNameLength is the longest farm name the form accepts, in runes.
const MaxNameLength = 32

// CanStart reports whether cfg may start a farm: a name that is not blank
// and one of the four seasons.
func CanStart(cfg farm.FarmConfig) bool {
	return strings.TrimSpace(cfg.Name) != "" && cfg.Season.Valid()
}

// Field is a focusable control on the setup screen.
type Field uint8

const (
	FieldName Field = iota
	FieldLocation
	FieldSeason
	FieldStart
	FieldBack
)

const fieldCount = 5

// Form is the editable state of the setup screen. It never errors; invalid
// input is ignored and CanStart reflects the result.
type Form struct {
	name     []rune
	location int
	season   farm.Season
	focus    Field
	editing  bool
}

// NewForm returns an empty form.
func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Reset empties the form. Called whenever the setup screen is entered.
func (f *Form) Reset() {
	f.name = f.name[:0]
	f.location = 0
	f.season = farm.SeasonNone
	f.SetFocus(FieldName)
}

// Config returns the current selections.
func (f *Form) Config() farm.FarmConfig {
	return farm.FarmConfig{
		Name:     strings.TrimSpace(string(f.name)),
		Location: farm.Locations[f.location],
		Season:   f.season,
	}
}

// CanStart evaluates the form as it stands.
func (f *Form) CanStart() bool {
	return CanStart(f.Config())
}

// Name returns the raw name buffer.
func (f *Form) Name() string { return string(f.name) }

// Season returns the selected season, SeasonNone when unset.
func (f *Form) Season() farm.Season { return f.season }

// Location returns the selected location.
func (f *Form) Location() farm.Location { return farm.Locations[f.location] }

// Focus returns the focused control.
func (f *Form) Focus() Field { return f.focus }

// Editing reports whether the name field is accepting keystrokes.
func (f *Form) Editing() bool { return f.editing }

// SetFocus moves focus to field; focusing the name starts editing.
func (f *Form) SetFocus(field Field) {
	f.focus = field % fieldCount
	f.editing = f.focus == FieldName
}

// NextField and PrevField cycle focus.
func (f *Form) NextField() { f.SetFocus((f.focus + 1) % fieldCount) }
func (f *Form) PrevField() { f.SetFocus((f.focus + fieldCount - 1) % fieldCount) }

// StopEditing leaves the name field without moving focus.
func (f *Form) StopEditing() { f.editing = false }

// SetName replaces the name, dropping control characters and anything past
// MaxNameLength.
func (f *Form) SetName(name string) {
	f.name = f.name[:0]
	f.Type(name)
}

// Type appends printable runes to the name.
func (f *Form) Type(s string) {
	for _, r := range s {
		if len(f.name) >= MaxNameLength {
			return
		}
		if r == utf8.RuneError || !unicode.IsPrint(r) {
			continue
		}
		f.name = append(f.name, r)
	}
}

// Backspace removes the last rune of the name.
func (f *Form) Backspace() {
	if len(f.name) > 0 {
		f.name = f.name[:len(f.name)-1]
	}
}

// SelectSeason picks a season; anything else clears the selection.
func (f *Form) SelectSeason(s farm.Season) {
	if !s.Valid() {
		s = farm.SeasonNone
	}
	f.season = s
}

// CycleSeason steps through the seasons; from unset it starts at Spring.
func (f *Form) CycleSeason(delta int) {
	idx := 0
	if f.season.Valid() {
		idx = int(f.season-farm.SeasonSpring) + delta
	}
	n := len(farm.Seasons)
	f.season = farm.Seasons[((idx%n)+n)%n]
}

// CycleLocation steps through the available locations.
func (f *Form) CycleLocation(delta int) {
	n := len(farm.Locations)
	f.location = ((f.location+delta)%n + n) % n
}
