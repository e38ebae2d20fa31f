package screen

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/fieldstation/internal/state"
)

const (
	gameTitle    = "FIELD STATION"
	gameSubtitle = "Grow, Learn, Discover - A Playful Plant Growing Experience"
)

// menuNav applies the keys and pointer inputs every menu shares. It returns
// the option to activate, if any.
func menuNav(m *state.Menu, in Input) (string, bool) {
	switch in.Kind {
	case InputKey:
		switch in.Key {
		case "up", "k":
			m.Up()
		case "down", "j":
			m.Down()
		case "enter", " ":
			return m.Current(), m.Current() != ""
		}
	case InputHover:
		m.Select(in.Target)
	case InputClick:
		if m.Select(in.Target) {
			return in.Target, true
		}
	}
	return "", false
}

// renderMenu draws options, showing the icon only beside the selection.
func renderMenu(v *View, m *state.Menu) string {
	lines := make([]string, len(m.Options))
	for i, opt := range m.Options {
		if i == m.Selected {
			lines[i] = selectedItemStyle.Render(v.Icons.Icon(opt) + "  " + opt)
		} else {
			lines[i] = itemStyle.Render("   " + opt)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func menuElements(v *View, m *state.Menu, title string) []Element {
	els := []Element{{Name: ElemTitle, Label: title, Enabled: true}}
	for i, opt := range m.Options {
		els = append(els, Element{
			Name:     opt,
			Label:    v.Icons.Icon(opt) + " " + opt,
			Enabled:  true,
			Selected: i == m.Selected,
		})
	}
	return els
}

type mainMenu struct{}

func (mainMenu) State() state.GameState { return state.MainMenu }

func (mainMenu) Render(v *View) string {
	body := []string{renderMenu(v, v.MainMenu)}
	if n := renderNotices(v); n != "" {
		body = append(body, "", n)
	}
	body = append(body, "", mutedStyle.Render("↑/↓ select · enter activate · ctrl+c quit"))
	return page(gameTitle, gameSubtitle, body...)
}

func (mainMenu) Elements(v *View) []Element {
	return menuElements(v, v.MainMenu, gameTitle)
}

func (mainMenu) HandleInput(v *View, in Input) Outcome {
	if in.Kind == InputKey && in.Key == "esc" {
		return emit(state.Escape)
	}
	opt, ok := menuNav(v.MainMenu, in)
	if !ok {
		return Outcome{}
	}
	switch opt {
	case state.TargetContinue:
		return emit(state.Resume)
	case state.TargetLoadGame:
		return do(ActionLoad)
	case state.TargetSaveGame:
		return do(ActionSave)
	case state.TargetExit:
		return do(ActionQuit)
	default:
		return emit(state.Click(opt))
	}
}

type pauseMenu struct{}

const pauseTitle = "GAME PAUSED"

func (pauseMenu) State() state.GameState { return state.Paused }

func (pauseMenu) Render(v *View) string {
	subtitle := ""
	if v.Sim != nil {
		subtitle = fmt.Sprintf("%s · day %d", v.Sim.Config.Name, v.Sim.Day)
	}
	body := []string{renderMenu(v, v.PauseMenu)}
	if n := renderNotices(v); n != "" {
		body = append(body, "", n)
	}
	body = append(body, "", mutedStyle.Render("space resume · esc main menu"))
	return page(pauseTitle, subtitle, body...)
}

func (pauseMenu) Elements(v *View) []Element {
	return menuElements(v, v.PauseMenu, pauseTitle)
}

func (pauseMenu) HandleInput(v *View, in Input) Outcome {
	if in.Kind == InputKey {
		switch in.Key {
		case "esc":
			return emit(state.Escape)
		case " ", "p":
			return emit(state.Resume)
		}
	}
	opt, ok := menuNav(v.PauseMenu, in)
	if !ok {
		return Outcome{}
	}
	switch opt {
	case state.TargetSaveGame:
		return do(ActionSave)
	case state.TargetLoadGame:
		return do(ActionLoad)
	case state.TargetExitGame:
		return do(ActionQuit)
	default:
		return emit(state.Click(opt))
	}
}
