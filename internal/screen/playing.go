package screen

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/fieldstation/fieldstation/internal/farm"
	"github.com/fieldstation/fieldstation/internal/market"
	"github.com/fieldstation/fieldstation/internal/state"
)

const recentEvents = 5

type playing struct{}

func (playing) State() state.GameState { return state.Playing }

func (playing) Elements(v *View) []Element {
	if v.Sim == nil {
		return []Element{{Name: ElemTitle, Label: "No farm", Enabled: false}}
	}
	els := []Element{
		{Name: ElemTitle, Label: v.Sim.Config.Name, Enabled: true},
		{Name: ElemHUD, Label: hudLine(v), Enabled: true},
		{Name: ElemFarmGrid, Label: fmt.Sprintf("%dx%d", farm.GridWidth, farm.GridHeight), Enabled: true},
		{Name: ElemMarket, Label: v.Sim.Season.String(), Enabled: true},
	}
	for y := 0; y < farm.GridHeight; y++ {
		for x := 0; x < farm.GridWidth; x++ {
			t, _ := v.Sim.Grid.At(x, y)
			label := "empty"
			if t.Crop != nil {
				label = fmt.Sprintf("%s %d%%", t.Crop.Type, int(t.Crop.GrowthProgress*100))
			}
			els = append(els, Element{
				Name:     TileElement(x, y),
				Label:    label,
				Enabled:  true,
				Selected: v.Cursor == (Cursor{x, y}),
			})
		}
	}
	if len(v.Notices) > 0 {
		els = append(els, Element{Name: ElemNotices, Label: v.Notices[len(v.Notices)-1], Enabled: true})
	}
	return els
}

func (playing) HandleInput(v *View, in Input) Outcome {
	switch in.Kind {
	case InputClick, InputHover:
		for y := 0; y < farm.GridHeight; y++ {
			for x := 0; x < farm.GridWidth; x++ {
				if in.Target == TileElement(x, y) {
					v.Cursor = Cursor{x, y}
				}
			}
		}
		return Outcome{}
	case InputKey:
	default:
		return Outcome{}
	}

	switch in.Key {
	case "esc":
		return emit(state.Escape)
	case " ":
		return emit(state.Pause)
	case "up":
		v.Cursor.Y = max(0, v.Cursor.Y-1)
	case "down":
		v.Cursor.Y = min(farm.GridHeight-1, v.Cursor.Y+1)
	case "left":
		v.Cursor.X = max(0, v.Cursor.X-1)
	case "right":
		v.Cursor.X = min(farm.GridWidth-1, v.Cursor.X+1)
	case "p":
		return do(ActionPlant)
	case "h":
		return do(ActionHarvest)
	case "c":
		return do(ActionCycleCrop)
	case "n":
		return do(ActionNextDay)
	case "+", "=":
		return do(ActionSpeedUp)
	case "-":
		return do(ActionSlowDown)
	case "a":
		return do(ActionToggleAutoHarvest)
	case "ctrl+s":
		return do(ActionSave)
	case "ctrl+l":
		return do(ActionLoad)
	}
	return Outcome{}
}

func hudLine(v *View) string {
	s := v.Sim
	speed := 1
	if v.Engine != nil {
		speed = v.Engine.Speed
	}
	auto := "off"
	if s.AutoHarvest {
		auto = "on"
	}
	return fmt.Sprintf("Day %d · %s · %s %s · $%s · speed %dx · auto-harvest %s",
		s.Day, s.Date.Format("Jan 2, 2006"), v.WeatherIcons.Icon(s.Weather.String()), s.Weather,
		humanize.Comma(int64(s.Money)), speed, auto)
}

func (p playing) Render(v *View) string {
	if v.Sim == nil {
		return page("NO FARM", "Start a new game from the main menu")
	}
	s := v.Sim
	season := lipgloss.NewStyle().Bold(true).Foreground(seasonColor(s.Season)).Render(s.Season.String())
	title := titleStyle.Render(strings.ToUpper(s.Config.Name)) + "  " + season

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderGrid(v),
		"",
		renderTileDetail(v),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		renderMarket(v),
		"",
		renderEvents(v),
	)

	parts := []string{
		title,
		subtitleStyle.Render(s.Config.Location.String()),
		textStyle.Render(hudLine(v)),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, left, "   ", right),
	}
	if n := renderNotices(v); n != "" {
		parts = append(parts, "", n)
	}
	parts = append(parts, "", mutedStyle.Render(
		"←↑↓→ move · p plant · h harvest · c crop · n next day · space pause · +/- speed · a auto · esc menu"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderGrid(v *View) string {
	rows := make([]string, farm.GridHeight)
	for y := 0; y < farm.GridHeight; y++ {
		cells := make([]string, farm.GridWidth)
		for x := 0; x < farm.GridWidth; x++ {
			t, _ := v.Sim.Grid.At(x, y)
			st := tileStyle
			if v.Cursor == (Cursor{x, y}) {
				st = cursorTileStyle
			}
			content := mutedStyle.Render("empty")
			if t.Crop != nil {
				ct, _ := farm.Crop(t.Crop.Type)
				content = ct.ShortName() + "\n" + fmt.Sprintf("%3d%%", int(t.Crop.GrowthProgress*100))
				if t.Crop.Mature() {
					content = lipgloss.NewStyle().Foreground(successGreen).Render(ct.ShortName() + "\nREADY")
				}
			} else {
				content += "\n"
			}
			cells[x] = st.Render(content)
		}
		rows[y] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTileDetail(v *View) string {
	t, err := v.Sim.Grid.At(v.Cursor.X, v.Cursor.Y)
	if err != nil {
		return ""
	}
	lines := []string{
		headerStyle.Render(fmt.Sprintf("Tile (%d, %d)", t.X, t.Y)),
		fmt.Sprintf("Soil     %s %.2f", bar(t.SoilQuality), t.SoilQuality),
		fmt.Sprintf("Moisture %s %.2f", lipgloss.NewStyle().Foreground(waterMedium).Render(bar(t.Moisture)), t.Moisture),
		fmt.Sprintf("Nitrogen %s %.2f", bar(t.Nitrogen), t.Nitrogen),
	}
	if t.Crop != nil {
		ct, _ := farm.Crop(t.Crop.Type)
		lines = append(lines, fmt.Sprintf("%s, planted day %d, %.0f days in the ground",
			ct.ShortName(), t.Crop.PlantedDay, t.Crop.DaysPlanted))
	} else {
		lines = append(lines, "Next planting: "+plantingChoice(v))
	}
	if t.HarvestedTimes > 0 {
		lines = append(lines, fmt.Sprintf("Harvested %s", english.Plural(t.HarvestedTimes, "time", "times")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func plantingChoice(v *View) string {
	key, ok := v.Sim.PlantingChoice(v.Crop)
	if !ok {
		return errorStyle.Render("nothing grows in " + v.Sim.Season.String())
	}
	ct, _ := farm.Crop(key)
	return ct.ShortName()
}

func renderMarket(v *View) string {
	s := v.Sim
	board := s.Market.Board(s.Day, s.Season)
	lines := []string{headerStyle.Render("Market prices")}
	for _, k := range farm.CropOrder {
		ct, _ := farm.Crop(k)
		lines = append(lines, fmt.Sprintf("%-11s $%6.2f  %s", ct.ShortName(), board.Prices[k], market.Trend(k, s.Season)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEvents(v *View) string {
	events := v.Sim.Events
	if len(events) > recentEvents {
		events = events[len(events)-recentEvents:]
	}
	lines := []string{headerStyle.Render("Recent events")}
	if len(events) == 0 {
		lines = append(lines, mutedStyle.Render("Nothing yet"))
	}
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("Day %d: %s", e.Day, e.Description))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
