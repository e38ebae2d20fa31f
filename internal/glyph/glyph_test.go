package glyph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestResolve(t *testing.T) {
	g := Resolve("🌱", "+", func(string) bool { return true })
	assert.Equal(t, Glyph{Text: "🌱"}, g)

	g = Resolve("🌱", "+", ASCIIOnly)
	assert.Equal(t, Glyph{Text: "+", Fallback: true}, g)

	g = Resolve("🌱", "+", nil)
	assert.True(t, g.Fallback)
}

func TestLoadMenuIconsASCII(t *testing.T) {
	set := LoadMenuIcons(ASCIIOnly)
	assert.Equal(t, "+", set.Icon("New Game"))
	assert.Equal(t, "*", set.Icon("Achievements"))
	assert.Equal(t, "?", set.Icon("Help"))
	assert.Equal(t, "@", set.Icon("Settings"))
	assert.Equal(t, "i", set.Icon("About"))
	assert.Equal(t, "[=]", set.Icon("Load Game"))
	assert.Equal(t, "^", set.Icon("Main Menu"))
	assert.Equal(t, DefaultIcon, set.Icon("Multiplayer"))
	assert.Equal(t, len(set), set.Fallbacks())
}

func TestDetectSupport(t *testing.T) {
	tests := []struct {
		name  string
		env   map[string]string
		emoji bool
	}{
		{"utf8 lang", map[string]string{"LANG": "en_US.UTF-8"}, true},
		{"lc_all wins", map[string]string{"LC_ALL": "C", "LANG": "en_US.UTF-8"}, false},
		{"utf8 lowercase", map[string]string{"LC_CTYPE": "en_GB.utf8"}, true},
		{"no locale", map[string]string{}, false},
		{"forced ascii", map[string]string{"LANG": "en_US.UTF-8", "FIELDSTATION_ASCII": "1"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Resolve("🌾", "#", DetectSupport(env(tt.env)))
			assert.Equal(t, !tt.emoji, g.Fallback)
		})
	}
}
