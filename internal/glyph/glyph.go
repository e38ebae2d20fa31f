// Package glyph resolves icons once, when assets load. A glyph the terminal
// cannot show is replaced by its ASCII fallback up front, so drawing code
// never has to care.
package glyph

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Glyph is a resolved icon.
type Glyph struct {
	Text     string
	Fallback bool // Text is the ASCII stand-in
}

func (g Glyph) String() string { return g.Text }

// Support reports whether an emoji can be displayed.
type Support func(emoji string) bool

// ASCIIOnly never displays emoji.
func ASCIIOnly(string) bool { return false }

// Emoji displays every emoji that occupies a normal double-width cell.
func Emoji(s string) bool {
	return s != "" && lipgloss.Width(s) == 2
}

// DetectSupport inspects the locale the way a terminal does: emoji are shown
// only under a UTF-8 locale and when not explicitly disabled.
func DetectSupport(getenv func(string) string) Support {
	if getenv("FIELDSTATION_ASCII") == "1" {
		return ASCIIOnly
	}
	for _, k := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		if v := getenv(k); v != "" {
			v = strings.ToUpper(v)
			if strings.Contains(v, "UTF-8") || strings.Contains(v, "UTF8") {
				return Emoji
			}
			return ASCIIOnly
		}
	}
	return ASCIIOnly
}

// Resolve picks emoji when supported and ascii otherwise. Fallbacks are
// logged but never fail.
func Resolve(emoji, ascii string, supported Support) Glyph {
	if supported != nil && supported(emoji) {
		return Glyph{Text: emoji}
	}
	slog.Debug("glyph fallback", "emoji", emoji, "ascii", ascii)
	return Glyph{Text: ascii, Fallback: true}
}

// Set is a group of resolved icons keyed by name.
type Set map[string]Glyph

// DefaultIcon is shown for names with no icon.
const DefaultIcon = "-"

// Icon returns the text for name, or DefaultIcon.
func (s Set) Icon(name string) string {
	if g, ok := s[name]; ok {
		return g.Text
	}
	return DefaultIcon
}

// Fallbacks counts icons that resolved to ASCII.
func (s Set) Fallbacks() int {
	n := 0
	for _, g := range s {
		if g.Fallback {
			n++
		}
	}
	return n
}

type pair struct{ emoji, ascii string }

var menuIcons = map[string]pair{
	"Continue Game": {"▶️", ">"},
	"New Game":      {"🌱", "+"},
	"Load Game":     {"📂", "[=]"},
	"Save Game":     {"💾", "[S]"},
	"Achievements":  {"🏆", "*"},
	"Help":          {"❓", "?"},
	"Settings":      {"⚙️", "@"},
	"About":         {"📖", "i"},
	"Exit":          {"🚪", "X"},
	"Resume Game":   {"▶️", ">"},
	"Main Menu":     {"🏠", "^"},
	"Exit Game":     {"🚪", "X"},
}

var weatherIcons = map[string]pair{
	"Sunny":   {"☀️", "(o)"},
	"Cloudy":  {"☁️", "(~)"},
	"Rainy":   {"🌧", "(/)"},
	"Snowy":   {"❄️", "(*)"},
	"Drought": {"🔥", "(!)"},
	"Flood":   {"🌊", "(=)"},
	"Storm":   {"⛈", "(#)"},
	"Hail":    {"🧊", "(.)"},
}

// LoadMenuIcons resolves the menu and pause-menu icons.
func LoadMenuIcons(supported Support) Set {
	return load(menuIcons, supported)
}

// LoadWeatherIcons resolves the weather badges shown in game.
func LoadWeatherIcons(supported Support) Set {
	return load(weatherIcons, supported)
}

func load(src map[string]pair, supported Support) Set {
	set := make(Set, len(src))
	for name, p := range src {
		set[name] = Resolve(p.emoji, p.ascii, supported)
	}
	if n := set.Fallbacks(); n > 0 {
		slog.Warn("emoji unavailable, using ASCII icons", "fallbacks", n)
	}
	return set
}
