package setup

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldstation/fieldstation/internal/farm"
)

func TestCanStart(t *testing.T) {
	names := []string{"", " ", "\t \n", "Test Farm", "A", "  padded  "}
	seasons := append([]farm.Season{farm.SeasonNone, farm.Season(9)}, farm.Seasons[:]...)

	for _, name := range names {
		for _, s := range seasons {
			for _, loc := range farm.Locations {
				cfg := farm.FarmConfig{Name: name, Season: s, Location: loc}
				want := strings.TrimSpace(name) != "" && s.Valid()
				assert.Equal(t, want, CanStart(cfg), "name=%q season=%d", name, s)
			}
		}
	}
}

func TestFormValidationSequence(t *testing.T) {
	f := NewForm()
	assert.False(t, f.CanStart(), "disabled initially")

	f.SetName("")
	assert.False(t, f.CanStart())

	f.SetName("A")
	assert.False(t, f.CanStart(), "no season yet")

	f.SelectSeason(farm.SeasonSpring)
	assert.True(t, f.CanStart())

	f.SetName("")
	assert.False(t, f.CanStart(), "disabled again once the name is cleared")
}

func TestFormTyping(t *testing.T) {
	f := NewForm()
	f.Type("Test Farm")
	assert.Equal(t, "Test Farm", f.Name())
	f.Backspace()
	f.Backspace()
	assert.Equal(t, "Test Fa", f.Name())

	f.SetName("bad\x00\x1bname")
	assert.Equal(t, "badname", f.Name())

	f.SetName(strings.Repeat("x", 50))
	assert.Len(t, f.Name(), MaxNameLength)

	f.SetName("")
	f.Backspace()
	assert.Empty(t, f.Name())
}

func TestFormConfigTrimsName(t *testing.T) {
	f := NewForm()
	f.SetName("  Green Acres ")
	f.SelectSeason(farm.SeasonFall)
	assert.Equal(t, farm.FarmConfig{
		Name:     "Green Acres",
		Location: farm.LocationChampaign,
		Season:   farm.SeasonFall,
	}, f.Config())
}

func TestFormReset(t *testing.T) {
	f := NewForm()
	f.SetName("Old Farm")
	f.SelectSeason(farm.SeasonWinter)
	f.SetFocus(FieldStart)

	f.Reset()
	assert.Empty(t, f.Name())
	assert.Equal(t, farm.SeasonNone, f.Season())
	assert.Equal(t, FieldName, f.Focus())
	assert.True(t, f.Editing())
	assert.False(t, f.CanStart())
}

func TestFormCycling(t *testing.T) {
	f := NewForm()
	f.CycleSeason(1)
	assert.Equal(t, farm.SeasonSpring, f.Season())
	f.CycleSeason(-1)
	assert.Equal(t, farm.SeasonWinter, f.Season())
	f.CycleSeason(1)
	assert.Equal(t, farm.SeasonSpring, f.Season())

	f.SelectSeason(farm.Season(42))
	assert.Equal(t, farm.SeasonNone, f.Season())

	f.CycleLocation(1)
	assert.Equal(t, farm.LocationChampaign, f.Location())

	f.PrevField()
	assert.Equal(t, FieldBack, f.Focus())
	assert.False(t, f.Editing())
	f.NextField()
	assert.Equal(t, FieldName, f.Focus())
	assert.True(t, f.Editing())
}
