package narrative

import (
	"math/rand/v2"

	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
)

const defaultSilence = "He just stares at you, a look of profound sorrow on his face."

// Picker returns an index in [0, n). It decides which talk variant is
// spoken and never affects state.
type Picker func(n int) int

// Narrator turns scripted beats into output messages.
type Narrator struct {
	script *scenario.Script
	guide  string
	pick   Picker
}

// NewNarrator creates a narrator for a script. A nil picker uses math/rand.
func NewNarrator(script *scenario.Script, guideName string, pick Picker) *Narrator {
	if script == nil {
		script = &scenario.Script{}
	}
	if pick == nil {
		pick = rand.IntN
	}
	return &Narrator{script: script, guide: guideName, pick: pick}
}

// GuideName is the speaker shown on guide dialogue.
func (n *Narrator) GuideName() string {
	return n.guide
}

// Enter returns the messages shown when the story enters s.
func (n *Narrator) Enter(s State) []chat.Message {
	beat, ok := n.script.Beat(s.String())
	if !ok {
		return nil
	}
	return n.render(beat.Enter, beat)
}

// Event returns the messages of a named one-off event.
func (n *Narrator) Event(name string) []chat.Message {
	if name == "" {
		return nil
	}
	return n.render(n.script.Event(name), scenario.Beat{})
}

// Talk returns the guide's reply in state s: one talk variant followed by
// the beat's player thought. Beats without talk lines get the silence line.
func (n *Narrator) Talk(s State) []chat.Message {
	beat, _ := n.script.Beat(s.String())
	line, ok := n.talkLine(beat)
	if !ok {
		silence := n.script.Silence
		if silence == "" {
			silence = defaultSilence
		}
		return []chat.Message{chat.Narration(silence)}
	}
	msgs := []chat.Message{chat.Dialogue(n.guide, line)}
	if beat.TalkThought != "" {
		msgs = append(msgs, chat.Thought(beat.TalkThought))
	}
	return msgs
}

func (n *Narrator) talkLine(beat scenario.Beat) (string, bool) {
	if len(beat.Talk) == 0 {
		return "", false
	}
	idx := n.pick(len(beat.Talk))
	if idx < 0 || idx >= len(beat.Talk) {
		idx = 0
	}
	return beat.Talk[idx], true
}

func (n *Narrator) render(lines []scenario.Line, beat scenario.Beat) []chat.Message {
	msgs := make([]chat.Message, 0, len(lines))
	for _, l := range lines {
		switch l.Kind {
		case scenario.LineDialogue:
			msgs = append(msgs, chat.Dialogue(n.guide, l.Text))
		case scenario.LineThought:
			msgs = append(msgs, chat.Thought(l.Text))
		case scenario.LineTalk:
			if text, ok := n.talkLine(beat); ok {
				msgs = append(msgs, chat.Dialogue(n.guide, text))
			}
		default:
			msgs = append(msgs, chat.Narration(l.Text))
		}
	}
	return msgs
}
