// Package model holds the shared domain types: questions, answers, score
// results, and persisted assessments.
package model

import "strconv"

// QuestionID identifies a questionnaire entry. IDs are opaque strings so
// inserted questions can carry fractional identifiers without renumbering.
type QuestionID string

// AnswerMap holds the collected answers keyed by question. Values are the
// raw submitted forms: strings for selects and free text, float64 for
// amounts, and string slices for multi-selects. Accessors below perform
// the loose coercion the scoring rules expect, so a missing or mistyped
// answer reads as the zero value rather than failing.
type AnswerMap map[QuestionID]any

// String returns the answer as a string, or "" when absent or not textual.
func (m AnswerMap) String(id QuestionID) string {
	s, _ := m[id].(string)
	return s
}

// Number returns the answer as a float64. String forms are parsed since
// JSON clients sometimes submit amounts quoted; anything else reads as 0.
func (m AnswerMap) Number(id QuestionID) float64 {
	switch v := m[id].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// List returns a multi-select answer as a string slice. JSON decoding
// yields []any, so both representations are accepted.
func (m AnswerMap) List(id QuestionID) []string {
	switch v := m[id].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
