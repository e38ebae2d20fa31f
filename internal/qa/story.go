// Package qa drives the game headlessly through scripted user stories, a
// technical suite and a full play-through, and reports the results.
package qa

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/fieldstation/fieldstation/internal/state"
)

// Action is what a step does.
type Action string

const (
	ActionClick      Action = "click"
	ActionType       Action = "type"
	ActionPressKey   Action = "press_key"
	ActionHover      Action = "hover"
	ActionWait       Action = "wait"
	ActionVerify     Action = "verify"
	ActionScreenshot Action = "screenshot"
)

var actions = []Action{
	ActionClick, ActionType, ActionPressKey, ActionHover,
	ActionWait, ActionVerify, ActionScreenshot,
}

// Step is one scripted interaction and its expected outcome.
type Step struct {
	Action Action `yaml:"action"`
	Target string `yaml:"target"`
	Value  string `yaml:"value,omitempty"`
	Expect string `yaml:"expect,omitempty"`
}

func (s Step) String() string {
	if s.Value != "" {
		return fmt.Sprintf("%s %s %q", s.Action, s.Target, s.Value)
	}
	return fmt.Sprintf("%s %s", s.Action, s.Target)
}

// Story is a named acceptance test.
type Story struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	UserType    string   `yaml:"user_type"`
	Page        string   `yaml:"page"`
	Start       string   `yaml:"start"`
	Criteria    []string `yaml:"criteria"`
	Steps       []Step   `yaml:"steps"`
}

//go:embed stories.yaml
var storiesYAML []byte

// LoadStories returns the built-in stories.
func LoadStories() ([]Story, error) {
	return ParseStories(storiesYAML)
}

// ParseStories decodes and validates a YAML story list.
func ParseStories(data []byte) ([]Story, error) {
	var stories []Story
	if err := yaml.Unmarshal(data, &stories); err != nil {
		return nil, fmt.Errorf("parse stories: %w", err)
	}
	seen := make(map[string]bool, len(stories))
	for _, st := range stories {
		if st.ID == "" {
			return nil, errors.New("story without id")
		}
		if seen[st.ID] {
			return nil, fmt.Errorf("duplicate story %s", st.ID)
		}
		seen[st.ID] = true
		if st.Start != "" {
			if _, err := state.Parse(st.Start); err != nil {
				return nil, fmt.Errorf("story %s: %w", st.ID, err)
			}
		}
		for i, step := range st.Steps {
			if !slices.Contains(actions, step.Action) {
				return nil, fmt.Errorf("story %s step %d: unknown action %q", st.ID, i+1, step.Action)
			}
		}
	}
	return stories, nil
}

// Select returns the stories with the given ids, in the order requested.
// No ids selects every story.
func Select(stories []Story, ids ...string) ([]Story, error) {
	if len(ids) == 0 {
		return stories, nil
	}
	out := make([]Story, 0, len(ids))
	for _, id := range ids {
		i := slices.IndexFunc(stories, func(s Story) bool { return s.ID == id })
		if i < 0 {
			return nil, fmt.Errorf("story %s not found", id)
		}
		out = append(out, stories[i])
	}
	return out, nil
}
