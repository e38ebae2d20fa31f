package state

import "log/slog"

// Machine owns the single current-state variable. It is mutated only by
// Dispatch from the input-handling path.
type Machine struct {
	current  GameState
	previous GameState
	onEnter  map[GameState][]func(from GameState)
}

// NewMachine starts at the main menu.
func NewMachine() *Machine {
	return &Machine{
		current:  MainMenu,
		previous: MainMenu,
		onEnter:  make(map[GameState][]func(GameState)),
	}
}

// Current returns the active state.
func (m *Machine) Current() GameState { return m.current }

// Previous returns the state active before the last transition.
func (m *Machine) Previous() GameState { return m.previous }

// OnEnter registers fn to run whenever s is entered from a different state.
func (m *Machine) OnEnter(s GameState, fn func(from GameState)) {
	m.onEnter[s] = append(m.onEnter[s], fn)
}

// Dispatch applies ev and returns the resulting state. Entry hooks run only
// when the state actually changes.
func (m *Machine) Dispatch(ev Event) GameState {
	next := Transition(m.current, ev)
	if next == m.current {
		return next
	}
	from := m.current
	m.previous = from
	m.current = next
	slog.Debug("state transition", "from", from.String(), "to", next.String(), "event", ev.String())

	for _, fn := range m.onEnter[next] {
		fn(from)
	}
	return next
}
