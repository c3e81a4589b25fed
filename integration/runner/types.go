package runner

import (
	"time"

	"github.com/google/uuid"
)

// Special user prompt values that trigger non-chat actions
const (
	ResetGameStatePrompt = "RESET_GAMESTATE"
)

// TestSuite defines a complete playthrough scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name  string     `json:"name"`
	World string     `json:"world,omitempty"` // world file; empty uses the embedded world
	Debug bool       `json:"debug,omitempty"` // enables dbg_ commands for seeding
	Steps []TestStep `json:"steps,omitempty"` // Used for regular tests
	Cases []string   `json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single line of input and its expected outcomes
// Use user_prompt: "RESET_GAMESTATE" to start over with a fresh session
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	UserPrompt   string       `json:"user_prompt"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	// Session properties - aligned with pkg/state/gamestate.go
	State       *string  `json:"state,omitempty"`        // narrative state name
	Location    *string  `json:"location,omitempty"`     // player location id
	Inventory   []string `json:"inventory,omitempty"`    // Full inventory contents (order independent)
	TurnCounter *int     `json:"turn_counter,omitempty"` // Total turn count
	IsEnded     *bool    `json:"is_ended,omitempty"`     // Game ended state
	Flags       []string `json:"flags,omitempty"`        // player flags that must be set

	// Response Analysis
	ResponseContains    []string `json:"response_contains,omitempty"`
	ResponseNotContains []string `json:"response_not_contains,omitempty"`
	ResponseRegex       string   `json:"response_regex,omitempty"`
	ResponseMinLength   *int     `json:"response_min_length,omitempty"`
	ResponseMaxLength   *int     `json:"response_max_length,omitempty"`
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	TestName     string
	StepName     string
	Success      bool
	Error        error
	Duration     time.Duration
	ResponseText string
	IsReset      bool // True if this was a RESET_GAMESTATE step (should not count toward pass/fail metrics)
}

// TestJob represents a test suite to be executed
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult contains the results of running an entire test suite
type TestRunResult struct {
	Job       TestJob
	Results   []TestResult
	Error     error
	Duration  time.Duration
	GameState uuid.UUID // ID of the last session used for this test
}
