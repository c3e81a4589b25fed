package chat

import "strings"

const (
	RoleNarrator = "narrator" // story narration
	RoleGuide    = "guide"    // spoken by the guide
	RoleThought  = "thought"  // the player's inner voice
	RoleHeading  = "heading"  // location titles, section headers
	RoleSystem   = "system"   // direct command feedback
	RoleDebug    = "debug"    // debug command output
)

// Message is a single piece of output produced by a turn.
type Message struct {
	Role    string `json:"role"`
	Speaker string `json:"speaker,omitempty"` // set for guide dialogue
	Content string `json:"content"`
}

// IsCutscene reports whether the message is story text that is typed out
// while the turn loop is narrating.
func (m Message) IsCutscene() bool {
	switch m.Role {
	case RoleNarrator, RoleGuide, RoleThought:
		return true
	}
	return false
}

func Narration(text string) Message {
	return Message{Role: RoleNarrator, Content: text}
}

func Dialogue(speaker, text string) Message {
	return Message{Role: RoleGuide, Speaker: speaker, Content: text}
}

func Thought(text string) Message {
	return Message{Role: RoleThought, Content: text}
}

func Heading(text string) Message {
	return Message{Role: RoleHeading, Content: text}
}

func System(text string) Message {
	return Message{Role: RoleSystem, Content: text}
}

func Debug(text string) Message {
	return Message{Role: RoleDebug, Content: "[Debug] " + text}
}

// PlainText joins message contents without styling, one message per line.
// Dialogue is quoted and prefixed with its speaker.
func PlainText(msgs []Message) string {
	var sb strings.Builder
	for i, m := range msgs {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(FormatPlain(m))
	}
	return sb.String()
}

// FormatPlain renders one message without styling.
func FormatPlain(m Message) string {
	switch m.Role {
	case RoleGuide:
		if m.Speaker != "" {
			return m.Speaker + ": \"" + m.Content + "\""
		}
		return "\"" + m.Content + "\""
	case RoleHeading:
		return "--- " + m.Content + " ---"
	default:
		return m.Content
	}
}

// HasCutscene reports whether any message is story text.
func HasCutscene(msgs []Message) bool {
	for _, m := range msgs {
		if m.IsCutscene() {
			return true
		}
	}
	return false
}
