package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/visitor-center/internal/config"
	"github.com/jwebster45206/visitor-center/internal/console"
	"github.com/jwebster45206/visitor-center/internal/logger"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
	"github.com/jwebster45206/visitor-center/pkg/state"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.LoadWithOutput("console", args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Invalid arguments: %v\n", err)
		return 2
	}

	log := logger.Setup(cfg, stderr)

	def, err := loadWorld(cfg.WorldFile)
	if err != nil {
		log.Error("Failed to load world", "error", err, "file", cfg.WorldFile)
		fmt.Fprintf(stderr, "Failed to load world: %v\n", err)
		return 1
	}

	gs, err := state.New(def, state.WithDebug(cfg.Debug), state.WithLogger(log))
	if err != nil {
		log.Error("Failed to create game", "error", err)
		fmt.Fprintf(stderr, "Failed to create game: %v\n", err)
		return 1
	}
	log = logger.WithSession(log, gs.ID)

	if cfg.TUI {
		p := tea.NewProgram(NewConsoleUI(cfg, gs),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(stderr, "Error running program: %v\n", err)
			return 1
		}
		return 0
	}

	loop := console.NewLoop(gs, stdin, stdout, console.NewRenderer(cfg.Width, cfg.TypeDelay), log)
	if err := loop.Run(); err != nil {
		logger.WithError(log, err).Error("Game loop stopped")
		return 1
	}
	log.Info("Game finished", "turns", gs.TurnCounter, "state", gs.Story().String())
	return 0
}

func loadWorld(path string) (*scenario.Definition, error) {
	if path == "" {
		return scenario.Default()
	}
	slog.Debug("Loading world file", "path", path)
	return scenario.LoadFile(path)
}
