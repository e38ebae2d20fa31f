package state

// Menu is a vertical list of options with a wrapping selection.
type Menu struct {
	Options  []string
	Selected int
}

// NewMenu creates a menu with the first option selected.
func NewMenu(options ...string) *Menu {
	return &Menu{Options: options}
}

// Up moves the selection up, wrapping to the bottom.
func (m *Menu) Up() {
	if len(m.Options) == 0 {
		return
	}
	m.Selected = (m.Selected - 1 + len(m.Options)) % len(m.Options)
}

// Down moves the selection down, wrapping to the top.
func (m *Menu) Down() {
	if len(m.Options) == 0 {
		return
	}
	m.Selected = (m.Selected + 1) % len(m.Options)
}

// Current returns the selected option, or "" for an empty menu.
func (m *Menu) Current() string {
	if m.Selected < 0 || m.Selected >= len(m.Options) {
		return ""
	}
	return m.Options[m.Selected]
}

// Select moves the selection to option and reports whether it exists.
func (m *Menu) Select(option string) bool {
	for i, o := range m.Options {
		if o == option {
			m.Selected = i
			return true
		}
	}
	return false
}

// SetOptions replaces the options, keeping the selection on the same option
// when it survives.
func (m *Menu) SetOptions(options ...string) {
	cur := m.Current()
	m.Options = options
	m.Selected = 0
	m.Select(cur)
}

// MainMenuOptions returns the main menu for the current session.
func MainMenuOptions(gameInProgress bool) []string {
	if gameInProgress {
		return []string{
			TargetContinue, TargetNewGame, TargetLoadGame, TargetSaveGame,
			TargetAchievements, TargetHelp, TargetSettings, TargetAbout, TargetExit,
		}
	}
	return []string{
		TargetNewGame, TargetLoadGame, TargetAchievements,
		TargetHelp, TargetSettings, TargetAbout, TargetExit,
	}
}

// PauseMenuOptions is the in-game pause menu.
func PauseMenuOptions() []string {
	return []string{TargetResume, TargetSaveGame, TargetLoadGame, TargetSettings, TargetMainMenu, TargetExitGame}
}
