package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerMapAccessors(t *testing.T) {
	m := AnswerMap{
		"1": "yes",
		"2": 5000.0,
		"3": "1250.50",
		"4": 42,
		"5": []string{"stocks", "bonds"},
		"6": []any{"index_funds", 7, "other"},
	}

	assert.Equal(t, "yes", m.String("1"))
	assert.Equal(t, "", m.String("2"), "numeric answers read as empty strings")
	assert.Equal(t, "", m.String("missing"))

	assert.Equal(t, 5000.0, m.Number("2"))
	assert.Equal(t, 1250.50, m.Number("3"), "quoted amounts are parsed")
	assert.Equal(t, 42.0, m.Number("4"))
	assert.Equal(t, 0.0, m.Number("1"), "non-numeric strings read as zero")
	assert.Equal(t, 0.0, m.Number("missing"))

	assert.Equal(t, []string{"stocks", "bonds"}, m.List("5"))
	assert.Equal(t, []string{"index_funds", "other"}, m.List("6"), "non-string items are dropped")
	assert.Nil(t, m.List("1"))
	assert.Nil(t, m.List("missing"))
}

func TestAnswerMapSurvivesJSONRoundTrip(t *testing.T) {
	src := AnswerMap{
		"1":  "yes",
		"2":  5000.0,
		"29": []string{"stocks"},
	}
	raw, err := json.Marshal(src)
	require.NoError(t, err)

	var decoded AnswerMap
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "yes", decoded.String("1"))
	assert.Equal(t, 5000.0, decoded.Number("2"))
	assert.Equal(t, []string{"stocks"}, decoded.List("29"), "multi-selects decode as []any and coerce back")
}

func TestHashIsOrderIndependent(t *testing.T) {
	a := AnswerMap{"1": "yes", "2": 5000.0, "29": []string{"stocks", "bonds"}}
	b := AnswerMap{"29": []string{"stocks", "bonds"}, "2": 5000.0, "1": "yes"}

	require.Equal(t, a.Hash(), b.Hash())
	assert.Len(t, a.Hash(), 64)
}

func TestHashDistinguishesValues(t *testing.T) {
	a := AnswerMap{"1": "yes"}
	b := AnswerMap{"1": "no"}
	c := AnswerMap{"1": "yes", "2": 0.0}

	assert.NotEqual(t, a.Hash(), b.Hash())
	assert.NotEqual(t, a.Hash(), c.Hash(), "an extra zero answer still changes the key")
}

func TestHashStableAcrossJSONForms(t *testing.T) {
	// A map decoded from JSON must hash identically to the in-memory
	// original, or idempotent saves would duplicate.
	src := AnswerMap{"1": "yes", "2": 5000.0}
	raw, err := json.Marshal(src)
	require.NoError(t, err)
	var decoded AnswerMap
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, src.Hash(), decoded.Hash())
}

func TestQuestionEligible(t *testing.T) {
	unconditional := Question{ID: "1"}
	assert.True(t, unconditional.Eligible(AnswerMap{}))

	gated := Question{ID: "2", Condition: &Condition{DependsOn: "1", Equals: "yes"}}
	assert.False(t, gated.Eligible(AnswerMap{}))
	assert.False(t, gated.Eligible(AnswerMap{"1": "no"}))
	assert.True(t, gated.Eligible(AnswerMap{"1": "yes"}))
	assert.False(t, gated.Eligible(AnswerMap{"1": []string{"yes"}}), "multi-select answers never satisfy a condition")
}
