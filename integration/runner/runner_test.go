package runner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRunSuite_ReportsFailedExpectation(t *testing.T) {
	r := NewRunner()
	suite := TestSuite{
		Name: "wrong location",
		Steps: []TestStep{
			{Name: "enter", UserPrompt: "go enter-center", Expectations: Expectations{Location: strPtr("main_hall")}},
			{Name: "look", UserPrompt: "look", Expectations: Expectations{ResponseContains: []string{"Visitor Center Entrance"}}},
		},
	}

	result, err := r.RunSuite(suite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected location main_hall, got vc_entrance")
	require.Len(t, result.Results, 2, "continue mode runs every step")
	assert.False(t, result.Results[0].Success)
	assert.True(t, result.Results[1].Success)
}

func TestRunSuite_ExitModeStops(t *testing.T) {
	r := NewRunner()
	r.ErrorHandlingMode = ErrorHandlingExit
	suite := TestSuite{
		Steps: []TestStep{
			{Name: "bad", UserPrompt: "look", Expectations: Expectations{State: strPtr("game_over")}},
			{Name: "never", UserPrompt: "look"},
		},
	}

	result, err := r.RunSuite(suite)
	require.Error(t, err)
	assert.Len(t, result.Results, 1)
}

func TestRunSuite_Reset(t *testing.T) {
	r := NewRunner()
	suite := TestSuite{
		Steps: []TestStep{
			{UserPrompt: "go enter-center"},
			{UserPrompt: ResetGameStatePrompt, Expectations: Expectations{Location: strPtr("car_breakdown"), Inventory: []string{}}},
		},
	}

	result, err := r.RunSuite(suite)
	require.NoError(t, err)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Results[1].IsReset)
}

func TestCheckExpectations_Inventory(t *testing.T) {
	r := NewRunner()
	suite := TestSuite{
		Debug: true,
		Steps: []TestStep{
			{UserPrompt: "dbg_items", Expectations: Expectations{Inventory: []string{"gas_can"}}},
		},
	}

	_, err := r.RunSuite(suite)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inventory contains unexpected item")
}

func TestLoadTestSuiteWithExpansion(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	write("a.json", `{"name": "a", "steps": [{"user_prompt": "look"}]}`)
	write("b.json", `{"name": "b", "steps": [{"user_prompt": "inventory"}]}`)
	write("all.json", `{"name": "all", "cases": ["a.json", "b.json"]}`)
	write("broken.json", `{"name": "broken", "cases": ["missing.json"]}`)

	jobs, err := LoadTestSuiteWithExpansion(filepath.Join(dir, "all.json"), dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].Name)
	assert.Equal(t, "b", jobs[1].Name)

	_, err = LoadTestSuiteWithExpansion(filepath.Join(dir, "broken.json"), dir)
	assert.ErrorContains(t, err, "referenced by sequence 'broken'")
}
