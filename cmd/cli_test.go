package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// execute runs the root command with args and captures stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeAnswers(t *testing.T, answers map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(answers)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestScoreCommandJSON(t *testing.T) {
	path := writeAnswers(t, map[string]any{"1": "yes", "2": 5000, "3": 3000})

	out, err := execute(t, "", "score", "--input", path, "--json")
	require.NoError(t, err)

	var result model.TotalScoreResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 23, result.TotalScore)
	assert.Equal(t, 95, result.MaxScore)
}

func TestScoreCommandTable(t *testing.T) {
	path := writeAnswers(t, map[string]any{"1": "yes", "2": 5000, "3": 3000})

	out, err := execute(t, "", "score", "--input", path, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Income & Budgeting")
}

func TestScoreCommandMissingFile(t *testing.T) {
	_, err := execute(t, "", "score", "--input", filepath.Join(t.TempDir(), "nope.json"), "--json")
	require.Error(t, err)
}

func TestRecommendCommandJSON(t *testing.T) {
	path := writeAnswers(t, map[string]any{"4": "no", "10": "no"})

	out, err := execute(t, "", "recommend", "--input", path, "--json")
	require.NoError(t, err)

	var cats []model.RecommendationCategory
	require.NoError(t, json.Unmarshal([]byte(out), &cats))
	require.Len(t, cats, 2)
	for _, c := range cats {
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.Products)
	}
}

func TestQuizCommandAllNoPath(t *testing.T) {
	// One line per prompt on the all-no path: income, age, three account
	// questions, five debt questions, card count, credit tier, brokerage,
	// Roth IRA, 401(k).
	stdin := strings.Join([]string{
		"2",           // has income: no
		"25",          // age
		"2", "2", "2", // checking, savings, HYSA: no
		"2", "2", "2", "2", "2", // student loan, car, mortgage, card debt, other: no
		"1", // zero cards
		"6", // credit score unknown
		"2", // brokerage: no
		"2", // Roth IRA: no
		"2", // 401(k): no
	}, "\n") + "\n"

	out, err := execute(t, stdin, "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Total")
	assert.Contains(t, out, "Recommendations")
}

func TestQuizCommandBackNavigation(t *testing.T) {
	// Back from the very first question is refused; back from the age
	// prompt returns to the income question with its answer displayed.
	stdin := strings.Join([]string{
		"b",  // nothing earlier to return to
		"2",  // has income: no
		"b",  // revisit the income question
		"2",  // keep the same answer
		"25", // age
		"2", "2", "2",
		"2", "2", "2", "2", "2",
		"1", "6", "2", "2", "2",
	}, "\n") + "\n"

	out, err := execute(t, stdin, "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Already at the first question.")
	assert.Contains(t, out, "Current answer: No")
	assert.Contains(t, out, "Total")
}

func TestQuizCommandRejectsInvalidThenAccepts(t *testing.T) {
	stdin := strings.Join([]string{
		"9",   // out of range, re-prompted
		"2",   // has income: no
		"abc", // not a number, re-prompted
		"25",  // age
		"2", "2", "2",
		"2", "2", "2", "2", "2",
		"1", "6", "2", "2", "2",
	}, "\n") + "\n"

	out, err := execute(t, stdin, "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter a number between 1 and 2.")
	assert.Contains(t, out, "Enter your age as a number.")
}
