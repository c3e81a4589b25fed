package state

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jwebster45206/visitor-center/pkg/actor"
	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/narrative"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
)

// GameState is one play session. It owns the world, the player and the
// narrative machine; nothing outside it holds game state.
type GameState struct {
	ID          uuid.UUID // Unique ID per session, used to correlate logs
	Debug       bool      // enables the dbg_ commands
	TurnCounter int
	IsEnded     bool

	def     *scenario.Definition
	world   *scenario.World
	player  *actor.Player
	machine *narrative.Machine
	logger  *slog.Logger
}

type options struct {
	debug  bool
	logger *slog.Logger
	pick   narrative.Picker
	player actor.PlayerSpec
}

// Option configures a new GameState.
type Option func(*options)

// WithDebug enables the debug commands.
func WithDebug(on bool) Option {
	return func(o *options) { o.debug = on }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithPicker fixes how dialogue variants are chosen. Tests use it to make
// talk output deterministic.
func WithPicker(p narrative.Picker) Option {
	return func(o *options) { o.pick = p }
}

// WithPlayer overrides the player's vitals.
func WithPlayer(spec actor.PlayerSpec) Option {
	return func(o *options) { o.player = spec }
}

// New builds a fresh session from a world definition.
func New(def *scenario.Definition, opts ...Option) (*GameState, error) {
	if def == nil {
		return nil, fmt.Errorf("world definition cannot be nil")
	}

	o := options{
		logger: slog.Default(),
		player: actor.DefaultPlayerSpec(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	id := uuid.New()
	logger := o.logger.With("session_id", id.String())

	world, err := def.Build(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	player, err := actor.NewPlayer(o.player, world.Start())
	if err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	narr := narrative.NewNarrator(&def.Script, def.Guide, o.pick)
	machine, err := narrative.NewMachine(narrative.Transitions(), narr, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create narrative machine: %w", err)
	}

	logger.Info("Game session created", "start", player.UserLocation(), "debug", o.debug)

	return &GameState{
		ID:      id,
		Debug:   o.debug,
		def:     def,
		world:   world,
		player:  player,
		machine: machine,
		logger:  logger,
	}, nil
}

// Player implements narrative.Context.
func (gs *GameState) Player() *actor.Player {
	return gs.player
}

// World implements narrative.Context.
func (gs *GameState) World() *scenario.World {
	return gs.world
}

// Story is the current narrative state.
func (gs *GameState) Story() narrative.State {
	return gs.machine.Current()
}

// Title is the world's display title.
func (gs *GameState) Title() string {
	return gs.def.Title
}

// Farewell is the closing line printed when the session ends.
func (gs *GameState) Farewell() string {
	if gs.def.Script.Farewell == "" {
		return fmt.Sprintf("--- Thank you for playing %s! ---", gs.def.Title)
	}
	return gs.def.Script.Farewell
}

// Intro returns the opening narration followed by a look at the start.
func (gs *GameState) Intro() []chat.Message {
	msgs := make([]chat.Message, 0, len(gs.def.Intro)+4)
	for _, line := range gs.def.Intro {
		msgs = append(msgs, chat.Narration(line))
	}
	return append(msgs, gs.describeLocation()...)
}

// Location is the name of the room the player stands in, for the prompt.
func (gs *GameState) Location() string {
	if loc := gs.player.Location(); loc != nil {
		return loc.Name
	}
	return "Unknown location"
}
