package screen

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/fieldstation/internal/state"
)

// infoPage is a read-only page with a title, some content and a BACK button.
type infoPage struct {
	state    state.GameState
	icon     string // Menu option whose icon prefixes the title
	title    string
	subtitle string
	content  string // Element name of the content block
	body     func(v *View) []string
}

func (p infoPage) State() state.GameState { return p.state }

func (p infoPage) Title(v *View) string {
	return v.Icons.Icon(p.icon) + " " + p.title
}

func (p infoPage) Render(v *View) string {
	body := p.body(v)
	body = append(body, "", button("BACK", true, true))
	return page(p.Title(v), p.subtitle, body...)
}

func (p infoPage) Elements(v *View) []Element {
	return []Element{
		{Name: ElemTitle, Label: p.Title(v), Enabled: true},
		{Name: p.content, Label: fmt.Sprintf("%d lines", len(p.body(v))), Enabled: true},
		{Name: ElemBack, Label: "BACK", Enabled: true},
	}
}

func (p infoPage) HandleInput(_ *View, in Input) Outcome {
	switch in.Kind {
	case InputKey:
		switch in.Key {
		case "esc":
			return emit(state.Escape)
		case "enter", "backspace":
			return emit(state.Back)
		}
	case InputClick:
		if in.Target == ElemBack {
			return emit(state.Back)
		}
	}
	return Outcome{}
}

func achievementsPage() infoPage {
	return infoPage{
		state:    state.Achievements,
		icon:     state.TargetAchievements,
		title:    "ACHIEVEMENTS",
		subtitle: "Track your farming accomplishments",
		content:  "achievements_content",
		body: func(v *View) []string {
			var unlocked, locked []string
			for _, a := range v.Sim.Achievements() {
				line := a.Name + " - " + a.Description
				if a.Unlocked {
					unlocked = append(unlocked, textStyle.Render("✓ "+line))
				} else {
					locked = append(locked, mutedStyle.Render("· "+line))
				}
			}
			if len(unlocked) == 0 {
				unlocked = []string{mutedStyle.Render("None yet - start a farm!")}
			}
			out := []string{headerStyle.Render("Unlocked Achievements:")}
			out = append(out, unlocked...)
			out = append(out, "", headerStyle.Render("Locked Achievements:"))
			return append(out, locked...)
		},
	}
}

func helpPage() infoPage {
	return infoPage{
		state:    state.Help,
		icon:     state.TargetHelp,
		title:    "HELP & TUTORIALS",
		subtitle: "Learn how to run your field station",
		content:  "help_content",
		body: func(*View) []string {
			return []string{
				headerStyle.Render("Getting Started:"),
				textStyle.Render("1. Choose New Game, name your farm and pick a season"),
				textStyle.Render("2. Plant crops that suit the season"),
				textStyle.Render("3. Watch moisture and nitrogen as crops grow"),
				textStyle.Render("4. Harvest mature crops and sell at market prices"),
				"",
				headerStyle.Render("Controls:"),
				textStyle.Render("Arrows: move between tiles"),
				textStyle.Render("P: plant · H: harvest · C: choose crop"),
				textStyle.Render("Space: pause · +/-: game speed · N: next day"),
				textStyle.Render("A: toggle auto-harvest"),
				textStyle.Render("Ctrl+S: save game · Ctrl+L: load game"),
				textStyle.Render("Esc: return to main menu"),
			}
		},
	}
}

func aboutPage() infoPage {
	return infoPage{
		state:    state.About,
		icon:     state.TargetAbout,
		title:    "ABOUT",
		subtitle: "Field Station - A Scientific Farming Simulator",
		content:  "about_content",
		body: func(*View) []string {
			center := lipgloss.NewStyle().Foreground(textPrimary)
			return []string{
				center.Render("Version 0.1"),
				"",
				center.Render("Field Station is an educational farming game that combines"),
				center.Render("real agricultural science with engaging gameplay."),
				"",
				headerStyle.Render("Features:"),
				textStyle.Render("• Realistic crop growth simulation"),
				textStyle.Render("• Scientific data tracking"),
				textStyle.Render("• Weather and seasonal effects"),
				textStyle.Render("• Soil quality management"),
			}
		},
	}
}
