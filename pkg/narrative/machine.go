package narrative

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/conditionals"
)

var (
	ErrCascadeLimit  = errors.New("automatic transition cascade exceeded limit")
	ErrUnknownState  = errors.New("unknown narrative state")
	ErrTerminalState = errors.New("story has already ended")
)

// Transition is one entry of the transition table. When several entries
// share a (From, On) key the first whose guard passes fires.
type Transition struct {
	From    State
	On      Trigger
	When    *conditionals.When // nil always passes
	Reject  string             // shown when the guard fails; empty is silent
	To      State              // Stay keeps the current state
	Route   func(Context) State
	Effects []Effect
	Event   string // script event shown after the effects
}

// Result describes what an attempt did.
type Result struct {
	Handled   bool // a transition is registered for the trigger in this state
	Accepted  bool // a guard passed and the transition fired
	From      State
	To        State
	Messages  []chat.Message
	Rejection string
}

// Changed reports whether the story moved to another state.
func (r Result) Changed() bool {
	return r.Accepted && r.From != r.To
}

type tableKey struct {
	state   State
	trigger Trigger
}

// Machine owns the current story state. All state changes go through it.
type Machine struct {
	current    State
	table      map[tableKey][]Transition
	narrator   *Narrator
	logger     *slog.Logger
	maxCascade int
}

// NewMachine validates transitions and creates a machine in StateIntro.
// Automatic transitions must move strictly forward so every cascade ends.
func NewMachine(transitions []Transition, narrator *Narrator, logger *slog.Logger) (*Machine, error) {
	if narrator == nil {
		return nil, fmt.Errorf("narrator cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	table := make(map[tableKey][]Transition)
	for i, t := range transitions {
		if err := validateTransition(t); err != nil {
			return nil, fmt.Errorf("invalid transition %d (%s on %s): %w", i, t.From, t.On, err)
		}
		k := tableKey{state: t.From, trigger: t.On}
		table[k] = append(table[k], t)
	}

	return &Machine{
		current:    StateIntro,
		table:      table,
		narrator:   narrator,
		logger:     logger,
		maxCascade: stateCount,
	}, nil
}

func validateTransition(t Transition) error {
	if !t.From.Valid() && t.From != AnyState {
		return ErrUnknownState
	}
	if t.From.IsTerminal() {
		return ErrTerminalState
	}
	if t.Route == nil && !t.To.Valid() && t.To != Stay {
		return fmt.Errorf("target: %w", ErrUnknownState)
	}
	if t.On.Kind == TriggerAuto {
		if t.From == AnyState {
			return fmt.Errorf("automatic transitions need a concrete source state")
		}
		if t.Route != nil {
			return fmt.Errorf("automatic transitions cannot route")
		}
		if t.To <= t.From {
			return fmt.Errorf("automatic transition must move forward, %s -> %s", t.From, t.To)
		}
	}
	return nil
}

// Current is the current story state.
func (m *Machine) Current() State {
	return m.current
}

// Narrator exposes the narrator used for beat text.
func (m *Machine) Narrator() *Narrator {
	return m.narrator
}

// Handles reports whether a transition is registered for t in the current
// state, regardless of guards.
func (m *Machine) Handles(t Trigger) bool {
	return len(m.candidates(m.current, t)) > 0
}

func (m *Machine) candidates(s State, t Trigger) []Transition {
	if s.IsTerminal() {
		return nil
	}
	out := m.table[tableKey{state: s, trigger: t}]
	if t.Kind != TriggerAuto {
		out = append(out[:len(out):len(out)], m.table[tableKey{state: AnyState, trigger: t}]...)
	}
	return out
}

// Attempt tries to fire t from the current state. Accepted transitions
// apply their effects, show their text, update the current state, and
// then run any automatic follow-ups.
func (m *Machine) Attempt(t Trigger, ctx Context) Result {
	res := Result{From: m.current, To: m.current}

	cands := m.candidates(m.current, t)
	if len(cands) == 0 {
		return res
	}
	res.Handled = true

	chosen, rejection := m.choose(cands, ctx)
	if chosen == nil {
		res.Rejection = rejection
		if rejection != "" {
			res.Messages = append(res.Messages, chat.System(rejection))
		}
		m.logger.Debug("Narrative transition rejected", "state", m.current.String(), "trigger", t.String())
		return res
	}

	res.Accepted = true
	if m.fire(*chosen, t, ctx, &res) {
		if err := m.cascade(ctx, &res); err != nil {
			m.logger.Error("Narrative cascade stopped", "error", err, "state", m.current.String())
		}
	}
	res.To = m.current
	return res
}

// Force enters state s directly, showing its text and running its
// follow-ups. Used by debug commands.
func (m *Machine) Force(s State, ctx Context) (Result, error) {
	res := Result{From: m.current, To: m.current}
	if !s.Valid() {
		return res, fmt.Errorf("failed to force state %d: %w", s, ErrUnknownState)
	}
	if m.current.IsTerminal() {
		return res, fmt.Errorf("failed to force state %s: %w", s, ErrTerminalState)
	}

	res.Handled, res.Accepted = true, true
	m.enter(s, Trigger{Kind: TriggerAuto, Target: "debug"}, &res)
	err := m.cascade(ctx, &res)
	res.To = m.current
	return res, err
}

// Quit ends the story without an ending.
func (m *Machine) Quit() {
	if m.current.IsTerminal() {
		return
	}
	m.logger.Info("Narrative transition", "from", m.current.String(), "to", StateGameOver.String(), "trigger", "quit")
	m.current = StateGameOver
}

func (m *Machine) choose(cands []Transition, ctx Context) (*Transition, string) {
	rejection := ""
	for i := range cands {
		c := &cands[i]
		if c.When == nil || conditionals.EvaluateWhen(*c.When, ctx.Player()) {
			return c, ""
		}
		if rejection == "" {
			rejection = c.Reject
		}
	}
	return nil, rejection
}

// fire applies a chosen transition and reports whether the state changed.
func (m *Machine) fire(tr Transition, t Trigger, ctx Context, res *Result) bool {
	for _, e := range tr.Effects {
		if err := e.apply(ctx, m.logger); err != nil {
			m.logger.Warn("Failed to apply narrative effect", "error", err, "state", m.current.String())
		}
	}
	res.Messages = append(res.Messages, m.narrator.Event(tr.Event)...)

	next := tr.To
	if tr.Route != nil {
		next = tr.Route(ctx)
	}
	if next == Stay || !next.Valid() {
		return false
	}
	m.enter(next, t, res)
	return true
}

func (m *Machine) enter(next State, t Trigger, res *Result) {
	m.logger.Info("Narrative transition", "from", m.current.String(), "to", next.String(), "trigger", t.String())
	m.current = next
	res.Messages = append(res.Messages, m.narrator.Enter(next)...)
}

// cascade drains automatic follow-ups from a queue of newly entered
// states. Each step must move forward, and the number of steps is capped.
func (m *Machine) cascade(ctx Context, res *Result) error {
	pending := []State{m.current}
	steps := 0
	for len(pending) > 0 {
		s := pending[0]
		pending = pending[1:]

		cands := m.candidates(s, Auto())
		if len(cands) == 0 {
			continue
		}
		if steps >= m.maxCascade {
			return fmt.Errorf("failed to continue from %s: %w", s, ErrCascadeLimit)
		}
		steps++

		chosen, _ := m.choose(cands, ctx)
		if chosen == nil {
			continue
		}
		if m.fire(*chosen, Auto(), ctx, res) {
			pending = append(pending, m.current)
		}
	}
	return nil
}
