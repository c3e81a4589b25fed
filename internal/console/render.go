package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	SpeakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	NarratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	DialogueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	ThoughtStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Italic(true)

	HeadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // yellow
			Bold(true)

	SystemStyle = lipgloss.NewStyle()

	DebugStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

var roleStyles = map[string]lipgloss.Style{
	chat.RoleNarrator: NarratorStyle,
	chat.RoleGuide:    DialogueStyle,
	chat.RoleThought:  ThoughtStyle,
	chat.RoleHeading:  HeadingStyle,
	chat.RoleSystem:   SystemStyle,
	chat.RoleDebug:    DebugStyle,
}

// Renderer styles and wraps output messages and types out narration.
type Renderer struct {
	Width int           // wrap width; 0 disables wrapping
	Delay time.Duration // per-rune delay for narration; 0 disables the effect

	sleep func(time.Duration)
}

func NewRenderer(width int, delay time.Duration) *Renderer {
	return &Renderer{Width: width, Delay: delay, sleep: time.Sleep}
}

// Banner renders the game title.
func (r *Renderer) Banner(title string) string {
	upper := cases.Upper(language.English).String(title)
	return TitleStyle.Render(upper)
}

// Format styles one message, wrapped to the renderer width.
func (r *Renderer) Format(m chat.Message) string {
	return FormatWidth(m, r.Width)
}

// FormatWidth styles one message wrapped to width. The TUI uses it with
// the current viewport width.
func FormatWidth(m chat.Message, width int) string {
	text := chat.FormatPlain(m)
	if width > 0 {
		text = wordwrap.String(text, width)
	}

	style, ok := roleStyles[m.Role]
	if !ok {
		style = SystemStyle
	}

	if m.Role == chat.RoleGuide && m.Speaker != "" && strings.HasPrefix(text, m.Speaker+":") {
		rest := text[len(m.Speaker)+1:]
		return SpeakerStyle.Render(m.Speaker+":") + paint(style, rest)
	}
	return paint(style, text)
}

// paint styles each line separately so lipgloss does not pad short lines
// to the width of the longest one.
func paint(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Prompt renders the input prompt for a location.
func (r *Renderer) Prompt(location string) string {
	return PromptStyle.Render(fmt.Sprintf("[%s] >", location)) + " "
}

// Write prints messages in order, one per line. Story text is typed out
// rune by rune when a delay is set; everything else appears at once.
func (r *Renderer) Write(w io.Writer, msgs []chat.Message) error {
	for _, m := range msgs {
		text := r.Format(m)
		var err error
		if m.IsCutscene() && r.Delay > 0 {
			err = r.typeOut(w, text)
		} else {
			_, err = io.WriteString(w, text)
		}
		if err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// typeOut writes text one rune at a time. ANSI escape sequences are
// written whole without a delay.
func (r *Renderer) typeOut(w io.Writer, text string) error {
	inEscape := false
	for _, c := range text {
		if _, err := io.WriteString(w, string(c)); err != nil {
			return err
		}
		switch {
		case c == '\x1b':
			inEscape = true
		case inEscape:
			if c >= 0x40 && c <= 0x7e && c != '[' {
				inEscape = false
			}
		default:
			r.sleep(r.Delay)
		}
	}
	return nil
}
