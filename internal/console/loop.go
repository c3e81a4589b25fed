package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/state"
)

// MaxLineBytes is the longest input line the loop accepts. Longer lines
// are discarded and the player is asked to type less.
const MaxLineBytes = 4096

const lineTooLong = "That's too much to take in at once. Try a shorter command."

var errLineTooLong = errors.New("input line too long")

// Mode is what the turn loop is doing. Input is read and the prompt is
// shown only in ModeInteractive.
type Mode int

const (
	ModeInteractive Mode = iota
	ModeNarrating
)

func (m Mode) String() string {
	if m == ModeNarrating {
		return "narrating"
	}
	return "interactive"
}

// Game is the session the loop drives.
type Game interface {
	Title() string
	Intro() []chat.Message
	HandleInput(line string) *state.TurnResult
	Location() string
	Farewell() string
}

// Loop is the read-eval-print loop over a line-oriented input stream.
type Loop struct {
	game     Game
	in       *bufio.Reader
	out      io.Writer
	renderer *Renderer
	logger   *slog.Logger

	mode   Mode
	onMode func(Mode) // observes mode changes in tests
	closed bool
}

func NewLoop(game Game, in io.Reader, out io.Writer, renderer *Renderer, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		game:     game,
		in:       bufio.NewReaderSize(in, MaxLineBytes),
		out:      out,
		renderer: renderer,
		logger:   logger,
		mode:     ModeInteractive,
	}
}

// Mode is the loop's current mode.
func (l *Loop) Mode() Mode {
	return l.mode
}

// Run plays the session until the story ends, the player quits, or the
// input is exhausted. End of input is a normal exit; a read error is
// returned after the closing message is printed.
func (l *Loop) Run() error {
	if err := l.writeLine(l.renderer.Banner(l.game.Title()) + "\n"); err != nil {
		return err
	}
	if err := l.show(l.game.Intro()); err != nil {
		return err
	}

	for {
		if err := l.prompt(); err != nil {
			return err
		}

		line, err := l.readLine()
		switch {
		case errors.Is(err, errLineTooLong):
			l.logger.Warn("Discarded long input line", "limit", MaxLineBytes)
			if err := l.show([]chat.Message{chat.System(lineTooLong)}); err != nil {
				return err
			}
			continue
		case errors.Is(err, io.EOF):
			l.logger.Debug("Input closed")
			return l.farewell()
		case err != nil:
			l.logger.Error("Failed to read input", "error", err)
			_ = l.farewell()
			return fmt.Errorf("failed to read input: %w", err)
		}

		res := l.game.HandleInput(line)
		if len(res.Messages) > 0 {
			if err := l.show(res.Messages); err != nil {
				return err
			}
		}
		if res.Ended {
			return l.farewell()
		}
	}
}

// readLine returns the next input line without its line ending. A final
// line without a newline still counts. Lines over MaxLineBytes are read to
// their end and dropped with errLineTooLong.
func (l *Loop) readLine() (string, error) {
	line, err := l.in.ReadSlice('\n')
	if errors.Is(err, bufio.ErrBufferFull) {
		for errors.Is(err, bufio.ErrBufferFull) {
			_, err = l.in.ReadSlice('\n')
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		return "", errLineTooLong
	}
	if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(string(line), "\r\n"), nil
}

func (l *Loop) setMode(m Mode) {
	l.mode = m
	if l.onMode != nil {
		l.onMode(m)
	}
}

func (l *Loop) prompt() error {
	if l.mode != ModeInteractive {
		return nil
	}
	_, err := io.WriteString(l.out, "\n"+l.renderer.Prompt(l.game.Location()))
	return err
}

// show writes a turn's output. Turns that carry story text switch the
// loop to ModeNarrating until the text has been typed out.
func (l *Loop) show(msgs []chat.Message) error {
	if chat.HasCutscene(msgs) {
		l.setMode(ModeNarrating)
		defer l.setMode(ModeInteractive)
	}
	if err := l.writeLine(""); err != nil {
		return err
	}
	return l.renderer.Write(l.out, msgs)
}

func (l *Loop) farewell() error {
	if l.closed {
		return nil
	}
	l.closed = true
	return l.writeLine("\n" + l.game.Farewell())
}

func (l *Loop) writeLine(s string) error {
	if _, err := io.WriteString(l.out, s+"\n"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
