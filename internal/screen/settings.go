package screen

import (
	"github.com/fieldstation/fieldstation/internal/state"
)

// Settings menu options.
const (
	OptionFullscreen = "Fullscreen"
	OptionSound      = "Sound"
	OptionBack       = "Back"
)

const settingsTitle = "SETTINGS"

// SettingsOptions is the settings menu.
func SettingsOptions() []string {
	return []string{OptionFullscreen, OptionSound, OptionBack}
}

type settingsScreen struct{}

func (settingsScreen) State() state.GameState { return state.Settings }

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

func (settingsScreen) title(v *View) string {
	return v.Icons.Icon(state.TargetSettings) + " " + settingsTitle
}

func (settingsScreen) label(v *View, opt string) string {
	switch opt {
	case OptionFullscreen:
		return "Fullscreen: " + onOff(v.Settings.Fullscreen)
	case OptionSound:
		return "Sound: " + onOff(v.Settings.Sound)
	case OptionBack:
		if v.SettingsFrom == state.Paused {
			return state.TargetBackToGame
		}
		return "Back to Menu"
	}
	return opt
}

func (s settingsScreen) Render(v *View) string {
	m := v.SettingsMenu
	var lines []string
	for i, opt := range m.Options {
		if i == m.Selected {
			lines = append(lines, selectedItemStyle.Render(s.label(v, opt)))
		} else {
			lines = append(lines, itemStyle.Render(s.label(v, opt)))
		}
	}
	lines = append(lines, "",
		headerStyle.Render("Interface Help:"),
		mutedStyle.Render("↑/↓ select · enter toggle · esc main menu"),
	)
	if n := renderNotices(v); n != "" {
		lines = append(lines, "", n)
	}
	return page(s.title(v), "Customize your experience", lines...)
}

func (s settingsScreen) Elements(v *View) []Element {
	els := []Element{
		{Name: ElemTitle, Label: s.title(v), Enabled: true},
		{Name: "settings_content", Label: "options", Enabled: true},
	}
	for i, opt := range v.SettingsMenu.Options {
		els = append(els, Element{Name: opt, Label: s.label(v, opt), Enabled: true, Selected: i == v.SettingsMenu.Selected})
	}
	return append(els, Element{Name: ElemBack, Label: s.label(v, OptionBack), Enabled: true})
}

// back returns to wherever Settings was opened from.
func (settingsScreen) back(v *View) Outcome {
	if v.SettingsFrom == state.Paused {
		return emit(state.Click(state.TargetBackToGame))
	}
	return emit(state.Back)
}

func (s settingsScreen) HandleInput(v *View, in Input) Outcome {
	if in.Kind == InputKey && in.Key == "esc" {
		return emit(state.Escape)
	}
	if in.Kind == InputClick && in.Target == ElemBack {
		return s.back(v)
	}
	opt, ok := menuNav(v.SettingsMenu, in)
	if !ok {
		return Outcome{}
	}
	switch opt {
	case OptionFullscreen:
		return do(ActionToggleFullscreen)
	case OptionSound:
		return do(ActionToggleSound)
	case OptionBack:
		return s.back(v)
	}
	return Outcome{}
}
