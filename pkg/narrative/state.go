package narrative

// State is one beat of the story. Declaration order is story order, and
// the numeric value is the id accepted by dbg_setstate.
type State int

const (
	StateIntro State = iota
	StateFirstEncounter
	StateAwaitingTask1
	StateTask1Complete
	StateAwaitingTask2
	StateTask2Complete
	StateAwaitingTask3
	StateTask3Complete
	StateMenacingTableau
	StateAwaitingTask4
	StateVigilMistake
	StateAttackPrelude
	StateAttackSounds
	StateGuideFeigningInjury
	StateChoicePoint
	StateChoosesLeave
	StateSearchMedkit
	StateFoundMedkit
	StateGuideReveal
	StateFiguresRevealed
	StateFinalConfrontation
	StateUsesSurgicalItem
	StateFailsDefense
	StateEndingNotWorthy
	StateEndingEscaped
	StateEndingVictim
	StateGameOver

	stateCount int = iota
)

// Pseudo states used only inside transition definitions.
const (
	AnyState State = -1 // matches every non-terminal state
	Stay     State = -2 // side effects only, the current state is kept
)

var stateNames = [...]string{
	StateIntro:               "intro",
	StateFirstEncounter:      "first_encounter",
	StateAwaitingTask1:       "awaiting_task_1",
	StateTask1Complete:       "task_1_complete",
	StateAwaitingTask2:       "awaiting_task_2",
	StateTask2Complete:       "task_2_complete",
	StateAwaitingTask3:       "awaiting_task_3",
	StateTask3Complete:       "task_3_complete",
	StateMenacingTableau:     "menacing_tableau",
	StateAwaitingTask4:       "awaiting_task_4",
	StateVigilMistake:        "vigil_mistake",
	StateAttackPrelude:       "attack_prelude",
	StateAttackSounds:        "attack_sounds",
	StateGuideFeigningInjury: "guide_feigning_injury",
	StateChoicePoint:         "choice_point",
	StateChoosesLeave:        "chooses_leave",
	StateSearchMedkit:        "search_medkit",
	StateFoundMedkit:         "found_medkit",
	StateGuideReveal:         "guide_reveal",
	StateFiguresRevealed:     "figures_revealed",
	StateFinalConfrontation:  "final_confrontation",
	StateUsesSurgicalItem:    "uses_surgical_item",
	StateFailsDefense:        "fails_defense",
	StateEndingNotWorthy:     "ending_not_worthy",
	StateEndingEscaped:       "ending_escaped",
	StateEndingVictim:        "ending_victim",
	StateGameOver:            "game_over",
}

func (s State) String() string {
	switch s {
	case AnyState:
		return "any"
	case Stay:
		return "stay"
	}
	if !s.Valid() {
		return "unknown"
	}
	return stateNames[s]
}

// Valid reports whether s is a real story state.
func (s State) Valid() bool {
	return s >= 0 && int(s) < stateCount
}

// IsEnding reports whether s is one of the three story endings.
func (s State) IsEnding() bool {
	switch s {
	case StateEndingNotWorthy, StateEndingEscaped, StateEndingVictim:
		return true
	}
	return false
}

// IsTerminal reports whether s absorbs every further trigger.
func (s State) IsTerminal() bool {
	return s.IsEnding() || s == StateGameOver
}

// ParseState looks up a state by its snake_case name.
func ParseState(name string) (State, bool) {
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// States returns every story state in order.
func States() []State {
	out := make([]State, stateCount)
	for i := range out {
		out[i] = State(i)
	}
	return out
}
