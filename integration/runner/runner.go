package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jwebster45206/visitor-center/pkg/chat"
	"github.com/jwebster45206/visitor-center/pkg/narrative"
	"github.com/jwebster45206/visitor-center/pkg/scenario"
	"github.com/jwebster45206/visitor-center/pkg/state"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner plays test suites against in-process game sessions
type Runner struct {
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
	WorldOverride     string           // If set, overrides the world file for all test cases
	Picker            narrative.Picker // fixes talk variants; nil picks at random
	SessionLogger     *slog.Logger     // logger handed to each session
}

// NewRunner creates a new test runner
func NewRunner() *Runner {
	return &Runner{
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
		Picker:            func(int) int { return 0 },
		SessionLogger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
// Returns a list of actual test suites (expanded from the sequence if needed)
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		// Recursively load (in case a sequence references another sequence)
		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite
func (r *Runner) RunSuite(suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job: TestJob{
			Name:  suite.Name,
			Suite: suite,
		},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	gs, err := r.newSession(suite)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.GameState = gs.ID

	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)

		var stepResult TestResult
		if step.UserPrompt == ResetGameStatePrompt {
			gs, stepResult = r.resetStep(suite, step)
			if gs != nil {
				result.GameState = gs.ID
			}
		} else {
			stepResult = r.executeStep(gs, step)
		}
		result.Results = append(result.Results, stepResult)

		if stepResult.Error != nil {
			r.Logger("    [%d/%d] ✗ %s: %v", i+1, len(suite.Steps), step.Name, stepResult.Error)
			if result.Error == nil {
				result.Error = fmt.Errorf("step %d (%s) failed: %w", i, step.Name, stepResult.Error)
			}
			// A failed reset leaves nothing to play against
			if r.ErrorHandlingMode == ErrorHandlingExit || gs == nil {
				break
			}
			continue
		}

		r.Logger("    [%d/%d] ✓ %s (%v)", i+1, len(suite.Steps), step.Name, stepResult.Duration)
	}

	result.Duration = time.Since(start)
	return result, result.Error
}

func (r *Runner) newSession(suite TestSuite) (*state.GameState, error) {
	world := suite.World
	if r.WorldOverride != "" {
		world = r.WorldOverride
	}

	var (
		def *scenario.Definition
		err error
	)
	if world == "" {
		def, err = scenario.Default()
	} else {
		def, err = scenario.LoadFile(world)
	}
	if err != nil {
		return nil, err
	}

	return state.New(def,
		state.WithDebug(suite.Debug),
		state.WithPicker(r.Picker),
		state.WithLogger(r.SessionLogger))
}

// resetStep replaces the session with a fresh one and checks the step's
// expectations against it.
func (r *Runner) resetStep(suite TestSuite, step TestStep) (*state.GameState, TestResult) {
	start := time.Now()
	result := TestResult{StepName: step.Name, IsReset: true, ResponseText: "[GAMESTATE RESET]"}

	gs, err := r.newSession(suite)
	if err != nil {
		result.Error = fmt.Errorf("failed to reset gamestate: %w", err)
		result.Duration = time.Since(start)
		return nil, result
	}

	if err := r.checkExpectations(step.Expectations, gs, ""); err != nil {
		result.Error = fmt.Errorf("reset expectation failed: %w", err)
		result.Duration = time.Since(start)
		return gs, result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return gs, result
}

// executeStep plays one line of input and checks the outcome
func (r *Runner) executeStep(gs *state.GameState, step TestStep) TestResult {
	start := time.Now()
	result := TestResult{
		StepName: step.Name,
	}

	turn := gs.HandleInput(step.UserPrompt)
	result.ResponseText = chat.PlainText(turn.Messages)

	if err := checkUniqueItems(gs); err != nil {
		result.Error = err
		result.Duration = time.Since(start)
		return result
	}

	if err := r.checkExpectations(step.Expectations, gs, result.ResponseText); err != nil {
		result.Error = fmt.Errorf("expectation failed: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	result.Success = true
	result.Duration = time.Since(start)
	return result
}

// checkUniqueItems fails if any item is held by more than one container.
func checkUniqueItems(gs *state.GameState) error {
	seen := make(map[string]string)
	add := func(id, holder string) error {
		if prev, ok := seen[id]; ok {
			return fmt.Errorf("item %s is in both %s and %s", id, prev, holder)
		}
		seen[id] = holder
		return nil
	}

	for _, id := range gs.Player().InventoryIDs() {
		if err := add(id, "inventory"); err != nil {
			return err
		}
	}
	for _, loc := range gs.World().Locations() {
		for _, it := range loc.Items() {
			if err := add(it.ID, loc.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkExpectations validates the test expectations against the session
func (r *Runner) checkExpectations(exp Expectations, gs *state.GameState, responseText string) error {
	if exp.State != nil {
		if got := gs.Story().String(); got != *exp.State {
			return fmt.Errorf("expected state %s, got %s", *exp.State, got)
		}
	}

	if exp.Location != nil {
		if got := gs.Player().UserLocation(); got != *exp.Location {
			return fmt.Errorf("expected location %s, got %s", *exp.Location, got)
		}
	}

	// Full inventory check (order independent). An empty list expects an
	// empty inventory.
	if exp.Inventory != nil {
		actual := gs.Player().InventoryIDs()
		for _, item := range exp.Inventory {
			if !slices.Contains(actual, item) {
				return fmt.Errorf("expected inventory to contain '%s', but it's missing. Actual inventory: %v", item, actual)
			}
		}
		for _, item := range actual {
			if !slices.Contains(exp.Inventory, item) {
				return fmt.Errorf("inventory contains unexpected item '%s'. Expected inventory: %v, Actual: %v", item, exp.Inventory, actual)
			}
		}
	}

	for _, flag := range exp.Flags {
		if !gs.Player().Flag(flag) {
			return fmt.Errorf("expected flag %s to be set", flag)
		}
	}

	if len(exp.ResponseContains) > 0 {
		lowerResponse := strings.ToLower(responseText)
		for _, expectedText := range exp.ResponseContains {
			if !strings.Contains(lowerResponse, strings.ToLower(expectedText)) {
				return fmt.Errorf("expected response to contain '%s', but it didn't", expectedText)
			}
		}
	}

	if len(exp.ResponseNotContains) > 0 {
		lowerResponse := strings.ToLower(responseText)
		for _, unexpectedText := range exp.ResponseNotContains {
			if strings.Contains(lowerResponse, strings.ToLower(unexpectedText)) {
				return fmt.Errorf("expected response to NOT contain '%s', but it did", unexpectedText)
			}
		}
	}

	if exp.ResponseRegex != "" {
		matched, err := regexp.MatchString(exp.ResponseRegex, responseText)
		if err != nil {
			return fmt.Errorf("invalid regex pattern: %w", err)
		}
		if !matched {
			return fmt.Errorf("response didn't match regex pattern: %s", exp.ResponseRegex)
		}
	}

	if exp.ResponseMinLength != nil && len(responseText) < *exp.ResponseMinLength {
		return fmt.Errorf("expected response length >= %d, got %d", *exp.ResponseMinLength, len(responseText))
	}
	if exp.ResponseMaxLength != nil && len(responseText) > *exp.ResponseMaxLength {
		return fmt.Errorf("expected response length <= %d, got %d", *exp.ResponseMaxLength, len(responseText))
	}

	if exp.TurnCounter != nil && gs.TurnCounter != *exp.TurnCounter {
		return fmt.Errorf("expected turn_counter to be %d, got %d", *exp.TurnCounter, gs.TurnCounter)
	}

	if exp.IsEnded != nil && gs.IsEnded != *exp.IsEnded {
		return fmt.Errorf("expected is_ended to be %t, got %t", *exp.IsEnded, gs.IsEnded)
	}

	return nil
}
