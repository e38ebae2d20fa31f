package screen

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fieldstation/fieldstation/internal/farm"
)

// Palette: earth tones with seasonal accents.
var (
	soilDark     = lipgloss.Color("#2C1810")
	soilMedium   = lipgloss.Color("#4A3426")
	grassMedium  = lipgloss.Color("#4B7C2F")
	waterMedium  = lipgloss.Color("#2E5F7C")
	springGreen  = lipgloss.Color("#8FD14F")
	summerGold   = lipgloss.Color("#FFB833")
	fallOrange   = lipgloss.Color("#E67E22")
	winterBlue   = lipgloss.Color("#85C1E9")
	successGreen = lipgloss.Color("#27AE60")
	warningColor = lipgloss.Color("#F39C12")
	errorRed     = lipgloss.Color("#E74C3C")
	textPrimary  = lipgloss.Color("#FFFFFF")
	textMuted    = lipgloss.Color("#B8B8B8")
	textDisabled = lipgloss.Color("#666666")
	goldenrod    = lipgloss.Color("#DAA520")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(summerGold)

	subtitleStyle = lipgloss.NewStyle().Italic(true).Foreground(textMuted)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(goldenrod)

	textStyle = lipgloss.NewStyle().Foreground(textPrimary)

	mutedStyle = lipgloss.NewStyle().Foreground(textDisabled)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(soilMedium).
			Padding(1, 3)

	itemStyle = lipgloss.NewStyle().Foreground(textMuted).PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textPrimary).
				Background(grassMedium).
				PaddingLeft(2).
				PaddingRight(2)

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textPrimary).
			Background(successGreen).
			Padding(0, 2)

	disabledButtonStyle = lipgloss.NewStyle().
				Foreground(textDisabled).
				Background(soilDark).
				Padding(0, 2)

	focusStyle = lipgloss.NewStyle().Underline(true)

	noticeStyle = lipgloss.NewStyle().Foreground(warningColor)

	errorStyle = lipgloss.NewStyle().Foreground(errorRed)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(soilMedium).
			Width(14).
			Align(lipgloss.Center)

	cursorTileStyle = tileStyle.BorderForeground(summerGold)
)

// seasonColor is the accent for s.
func seasonColor(s farm.Season) lipgloss.Color {
	switch s {
	case farm.SeasonSpring:
		return springGreen
	case farm.SeasonSummer:
		return summerGold
	case farm.SeasonFall:
		return fallOrange
	case farm.SeasonWinter:
		return winterBlue
	}
	return textMuted
}

// button renders a labelled button, greyed out when disabled.
func button(label string, enabled, focused bool) string {
	st := buttonStyle
	if !enabled {
		st = disabledButtonStyle
	}
	if focused {
		st = st.Inherit(focusStyle)
	}
	return st.Render(label)
}

// page lays out a titled panel.
func page(title, subtitle string, body ...string) string {
	parts := []string{titleStyle.Render(title)}
	if subtitle != "" {
		parts = append(parts, subtitleStyle.Render(subtitle))
	}
	parts = append(parts, "")
	parts = append(parts, body...)
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// bar draws a 10-cell gauge for v in [0, 1].
func bar(v float64) string {
	n := int(farm.Clamp01(v)*10 + 0.5)
	return strings.Repeat("█", n) + strings.Repeat("░", 10-n)
}

func renderNotices(v *View) string {
	if len(v.Notices) == 0 {
		return ""
	}
	lines := make([]string, len(v.Notices))
	for i, n := range v.Notices {
		lines[i] = noticeStyle.Render("• " + n)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
