package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jwebster45206/visitor-center/internal/config"
	"github.com/jwebster45206/visitor-center/internal/console"
	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/state"
	"github.com/muesli/reflow/wordwrap"
)

const PlaceHolderText = "What do you do?"

// ConsoleUI is the BubbleTea model that runs the full-screen UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *config.Config
	game         *state.GameState
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int

	// Transcript shown so far, and story text still being revealed.
	entries []entry
	pending []chat.Message

	showQuitModal bool
	ended         bool
}

// entry is one transcript line: either the player's input or a message.
type entry struct {
	input string
	msg   chat.Message
}

type revealTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *config.Config, game *state.GameState) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = console.PromptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		config:       cfg,
		game:         game,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
	m.pending = append(m.pending, game.Intro()...)
	return m
}

func (m ConsoleUI) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.revealTick())
}

// revealing reports whether story text is still being shown. Input is
// ignored until it has all appeared.
func (m ConsoleUI) revealing() bool {
	return len(m.pending) > 0
}

// revealTick paces story text, one message per tick. Plain feedback is
// shown without waiting.
func (m ConsoleUI) revealTick() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}
	delay := time.Duration(len(m.pending[0].Content)) * m.config.TypeDelay
	if !m.pending[0].IsCutscene() || delay <= 0 {
		return func() tea.Msg { return revealTickMsg{} }
	}
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return revealTickMsg{}
	})
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		return m, vpCmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chatWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - chatWidth - 6

		m.chatViewport.Width = chatWidth - 2
		m.chatViewport.Height = m.height - 6
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(chatWidth - 4)

		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.game))

	case revealTickMsg:
		if len(m.pending) == 0 {
			return m, nil
		}
		m.entries = append(m.entries, entry{msg: m.pending[0]})
		m.pending = m.pending[1:]
		m.writeChatContent()
		return m, m.revealTick()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.revealing() {
				return m, nil
			}
			if m.ended {
				return m, tea.Quit
			}

			input := strings.TrimSpace(m.textarea.Value())
			m.textarea.Reset()
			if input == "" {
				return m, nil
			}

			m.entries = append(m.entries, entry{input: input})
			res := m.game.HandleInput(input)
			m.pending = append(m.pending, res.Messages...)
			if res.Ended {
				m.ended = true
				m.pending = append(m.pending,
					chat.System(m.game.Farewell()),
					chat.System("Press Enter to exit."))
			}
			m.writeChatContent()
			m.metaViewport.SetContent(writeMetadata(m.game))
			return m, m.revealTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

// writeChatContent rebuilds the transcript for the current viewport width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding
	if chatWidth < 10 {
		chatWidth = 10
	}

	var content strings.Builder
	content.WriteString(console.NewRenderer(0, 0).Banner(m.game.Title()) + "\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	for _, e := range m.entries {
		if e.input != "" {
			content.WriteString("\n" + userStyle.Render("> "+wordwrap.String(e.input, chatWidth-2)) + "\n\n")
			continue
		}
		content.WriteString(console.FormatWidth(e.msg, chatWidth) + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func writeMetadata(gs *state.GameState) string {
	var content strings.Builder
	content.WriteString(console.TitleStyle.Render("GAME STATE") + "\n\n")

	content.WriteString("Session:\n")
	content.WriteString(gs.ID.String()[:8] + "...\n\n")

	content.WriteString("Location:\n")
	content.WriteString(gs.Location() + "\n\n")

	if gs.Debug {
		content.WriteString("Story beat:\n")
		content.WriteString(gs.Story().String() + "\n\n")
	}

	content.WriteString("Turns:\n")
	content.WriteString(fmt.Sprintf("%d\n\n", gs.TurnCounter))

	p := gs.Player()
	if p.Vitals != nil {
		content.WriteString("Health:\n")
		content.WriteString(fmt.Sprintf("%d / %d\n\n", p.Vitals.HP(), p.Vitals.MaxHP()))
	}

	content.WriteString("Inventory:\n")
	items := p.Inventory()
	if len(items) == 0 {
		content.WriteString("Empty\n")
	}
	for _, it := range items {
		content.WriteString(fmt.Sprintf("• %s\n", it.Name))
	}

	content.WriteString("\n")
	content.WriteString("Keys:\n")
	content.WriteString("• Enter: Act\n")
	content.WriteString("• Esc: Quit\n")

	return content.String()
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}

	case revealTickMsg:
		// Keep revealing behind the modal.
		if len(m.pending) > 0 {
			m.entries = append(m.entries, entry{msg: m.pending[0]})
			m.pending = m.pending[1:]
			m.writeChatContent()
			return m, m.revealTick()
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the Visitor Center?")
	content.WriteString("\n\n")
	content.WriteString(console.PromptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	prompt := console.PromptStyle.Render(fmt.Sprintf("[%s]", m.game.Location()))
	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 0))),
			prompt,
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
