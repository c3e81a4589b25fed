package scenario

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LineKind says how a scripted line is presented.
type LineKind string

const (
	LineNarration LineKind = "narration"
	LineDialogue  LineKind = "dialogue" // spoken by the guide
	LineThought   LineKind = "thought"  // the player's inner voice
	LineTalk      LineKind = "talk"     // placeholder for one random talk variant of the beat
)

// Line is one scripted line. In YAML it is either a plain string
// (narration) or a mapping with exactly one of guide, thought or talk.
type Line struct {
	Kind LineKind
	Text string
}

// UnmarshalYAML implements custom decoding to support both string and mapping forms.
func (l *Line) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		l.Kind = LineNarration
		return value.Decode(&l.Text)
	}

	var aux struct {
		Guide   string `yaml:"guide"`
		Thought string `yaml:"thought"`
		Talk    bool   `yaml:"talk"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}

	set := 0
	if aux.Guide != "" {
		l.Kind, l.Text = LineDialogue, aux.Guide
		set++
	}
	if aux.Thought != "" {
		l.Kind, l.Text = LineThought, aux.Thought
		set++
	}
	if aux.Talk {
		l.Kind, l.Text = LineTalk, ""
		set++
	}
	if set != 1 {
		return fmt.Errorf("line at %d:%d must have exactly one of guide, thought or talk", value.Line, value.Column)
	}
	return nil
}

// Beat is the scripted text attached to one narrative state.
type Beat struct {
	Enter       []Line   `yaml:"enter,omitempty"`        // shown when the story enters the state
	Talk        []string `yaml:"talk,omitempty"`         // guide lines for "talk to guide"; one is picked at random
	TalkThought string   `yaml:"talk_thought,omitempty"` // player thought shown after talking
}

// Script holds the prose of a world: beats keyed by narrative state name,
// one-off events, and help text.
type Script struct {
	Beats      map[string]Beat   `yaml:"beats"`
	Events     map[string][]Line `yaml:"events"`
	Help       map[string]string `yaml:"help"`
	ChoiceHelp string            `yaml:"choice_help"`
	Silence    string            `yaml:"silence"` // guide response when a beat has no talk lines
	Farewell   string            `yaml:"farewell"`
}

// Beat returns the beat for a state name.
func (s *Script) Beat(state string) (Beat, bool) {
	b, ok := s.Beats[state]
	return b, ok
}

// Event returns the lines of a named event.
func (s *Script) Event(name string) []Line {
	return s.Events[name]
}

// HelpTopic returns help for topic, falling back to the general entry.
func (s *Script) HelpTopic(topic string) string {
	if text, ok := s.Help[topic]; ok && topic != "" {
		return text
	}
	return s.Help["general"]
}
