package screen

import (
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/setup"
	"github.com/fieldstation/fieldstation/internal/state"
)

type farmSetup struct{}

func (farmSetup) State() state.GameState { return state.FarmSetup }

func setupTitle(v *View) string {
	return v.Icons.Icon(state.TargetNewGame) + " NEW FARM SETUP"
}

func (farmSetup) Render(v *View) string {
	f := v.Form

	label := func(s string, field setup.Field) string {
		if f.Focus() == field {
			return headerStyle.Render("> " + s)
		}
		return headerStyle.Render("  " + s)
	}

	name := f.Name()
	if f.Editing() {
		name += "_"
	}
	if name == "" {
		name = mutedStyle.Render("(enter a farm name)")
	}

	var seasons []string
	for _, s := range farm.Seasons {
		st := itemStyle
		if f.Season() == s {
			st = selectedItemStyle.Background(seasonColor(s)).Foreground(soilDark)
		}
		seasons = append(seasons, st.Render(s.String()))
	}

	start := button("START FARM", f.CanStart(), f.Focus() == setup.FieldStart)
	back := button("BACK", true, f.Focus() == setup.FieldBack)

	hint := "Enter a name and choose a season to start."
	if f.CanStart() {
		hint = "Ready! Press START FARM."
	}

	body := []string{
		label("Farm name", setup.FieldName),
		"    " + textStyle.Render(name),
		"",
		label("Location", setup.FieldLocation),
		"    " + textStyle.Render(f.Location().String()),
		"",
		label("Starting season", setup.FieldSeason),
		"  " + lipgloss.JoinHorizontal(lipgloss.Top, seasons...),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, start, "  ", back),
		"",
		mutedStyle.Render(hint),
		mutedStyle.Render("tab next field · ←/→ change · enter confirm · esc back"),
	}
	return page(setupTitle(v), "Establish your research station", body...)
}

func (farmSetup) Elements(v *View) []Element {
	f := v.Form
	els := []Element{
		{Name: ElemTitle, Label: setupTitle(v), Enabled: true},
		{Name: ElemFarmName, Label: f.Name(), Enabled: true, Selected: f.Editing()},
		{Name: ElemLocation, Label: f.Location().String(), Enabled: true, Selected: f.Focus() == setup.FieldLocation},
	}
	for _, s := range farm.Seasons {
		els = append(els, Element{Name: SeasonElement(s), Label: s.String(), Enabled: true, Selected: f.Season() == s})
	}
	return append(els,
		Element{Name: ElemStart, Label: "START FARM", Enabled: f.CanStart(), Selected: f.Focus() == setup.FieldStart},
		Element{Name: ElemBack, Label: "BACK", Enabled: true, Selected: f.Focus() == setup.FieldBack},
	)
}

// start emits the transition only for a valid form; otherwise the click on a
// disabled button does nothing.
func start(f *setup.Form) Outcome {
	if !f.CanStart() {
		return Outcome{}
	}
	return Outcome{Events: []state.Event{state.Start}, Actions: []Action{ActionStartFarm}}
}

func (farmSetup) HandleInput(v *View, in Input) Outcome {
	f := v.Form
	switch in.Kind {
	case InputText:
		if in.Target == ElemFarmName {
			f.SetFocus(setup.FieldName)
			f.SetName(in.Text)
		}
		return Outcome{}

	case InputClick:
		switch in.Target {
		case ElemFarmName:
			f.SetFocus(setup.FieldName)
		case ElemLocation:
			f.SetFocus(setup.FieldLocation)
			f.StopEditing()
			f.CycleLocation(1)
		case ElemStart:
			return start(f)
		case ElemBack:
			return emit(state.Back)
		default:
			for _, s := range farm.Seasons {
				if in.Target == SeasonElement(s) {
					f.StopEditing()
					f.SelectSeason(s)
				}
			}
		}
		return Outcome{}

	case InputKey:
		return setupKey(f, in.Key)
	}
	return Outcome{}
}

func setupKey(f *setup.Form, key string) Outcome {
	switch key {
	case "esc":
		return emit(state.Escape)
	case "tab", "down":
		f.NextField()
		return Outcome{}
	case "shift+tab", "up":
		f.PrevField()
		return Outcome{}
	}

	if f.Editing() {
		switch {
		case key == "backspace":
			f.Backspace()
		case key == "enter":
			f.StopEditing()
		case utf8.RuneCountInString(key) == 1:
			f.Type(key)
		}
		return Outcome{}
	}

	switch f.Focus() {
	case setup.FieldName:
		if key == "enter" {
			f.SetFocus(setup.FieldName)
		}
	case setup.FieldLocation:
		switch key {
		case "left":
			f.CycleLocation(-1)
		case "right", "enter":
			f.CycleLocation(1)
		}
	case setup.FieldSeason:
		switch key {
		case "left":
			f.CycleSeason(-1)
		case "right", "enter", " ":
			f.CycleSeason(1)
		}
	case setup.FieldStart:
		if key == "enter" {
			return start(f)
		}
	case setup.FieldBack:
		if key == "enter" {
			return emit(state.Back)
		}
	}
	return Outcome{}
}
