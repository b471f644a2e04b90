package questionnaire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse/finpulse-cli/internal/model"
)

func TestNextQuestionSkipsGatedFollowUps(t *testing.T) {
	answers := model.AnswerMap{QHasIncome: AnswerNo}

	next := NextQuestion(Questions, answers, 0)
	require.NotEqual(t, End, next)
	assert.Equal(t, QAge, Questions[next].ID, "income amount and spending should be skipped after a no")
}

func TestNextQuestionFollowsYesBranch(t *testing.T) {
	answers := model.AnswerMap{QHasIncome: AnswerYes}

	next := NextQuestion(Questions, answers, 0)
	require.NotEqual(t, End, next)
	assert.Equal(t, QMonthlyIncome, Questions[next].ID)
}

func TestNextQuestionFromStart(t *testing.T) {
	next := NextQuestion(Questions, model.AnswerMap{}, -1)
	require.NotEqual(t, End, next)
	assert.Equal(t, QHasIncome, Questions[next].ID)
}

func TestNextQuestionEndOfList(t *testing.T) {
	assert.Equal(t, End, NextQuestion(Questions, model.AnswerMap{}, len(Questions)-1))
}

func TestUnknownDoesNotSatisfyYesCondition(t *testing.T) {
	answers := model.AnswerMap{QHasChecking: AnswerUnknown}
	idx := indexOf(t, QHasChecking)

	next := NextQuestion(Questions, answers, idx)
	require.NotEqual(t, End, next)
	assert.Equal(t, QHasSavings, Questions[next].ID, "bank and balance follow-ups require an explicit yes")
}

func TestSessionFullNoPath(t *testing.T) {
	s := NewSession(Questions)

	answered := 0
	for !s.Done() {
		q := s.Current()
		require.NotNil(t, q)
		switch q.Kind {
		case model.InputSingleSelect:
			s.Answer(AnswerNo)
		case model.InputText:
			s.Answer(float64(25))
		default:
			t.Fatalf("unexpected follow-up %s on the all-no path", q.ID)
		}
		answered++
	}

	assert.Nil(t, s.Current())
	// Every top-level question minus the conditional follow-ups.
	assert.Equal(t, 15, answered)
	assert.Equal(t, AnswerNo, s.Answers.String(QHasIncome))
}

func TestSessionBackRepositionsWithoutErasing(t *testing.T) {
	s := NewSession(Questions)
	s.Answer(AnswerYes)     // has income
	s.Answer(float64(5000)) // monthly income
	require.Equal(t, QMonthlySpending, s.Current().ID)

	require.True(t, s.Back())
	assert.Equal(t, QMonthlyIncome, s.Current().ID)
	assert.Equal(t, float64(5000), s.Answers.Number(QMonthlyIncome), "going back keeps the prior answer")

	s.Answer(float64(6000))
	assert.Equal(t, QMonthlySpending, s.Current().ID)
	assert.Equal(t, float64(6000), s.Answers.Number(QMonthlyIncome))
}

func TestSessionBackFromFirstQuestion(t *testing.T) {
	s := NewSession(Questions)
	assert.False(t, s.Back())
	assert.Equal(t, QHasIncome, s.Current().ID)
}

func TestSessionBackAfterCompletion(t *testing.T) {
	s := NewSession(Questions)
	for !s.Done() {
		q := s.Current()
		if q.Kind == model.InputText {
			s.Answer(float64(30))
			continue
		}
		s.Answer(AnswerNo)
	}
	require.True(t, s.Done())

	require.True(t, s.Back())
	assert.Equal(t, QHas401k, s.Current().ID, "back from the end lands on the last eligible question")
}

func TestSessionBackSkipsIneligible(t *testing.T) {
	s := NewSession(Questions)
	s.Answer(AnswerNo) // has income: follow-ups ineligible
	require.Equal(t, QAge, s.Current().ID)

	require.True(t, s.Back())
	assert.Equal(t, QHasIncome, s.Current().ID, "back skips the unasked income follow-ups")
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name    string
		in      float64
		want    int
		wantErr bool
	}{
		{name: "lower bound", in: 18, want: 18},
		{name: "upper bound", in: 100, want: 100},
		{name: "typical", in: 34, want: 34},
		{name: "underage", in: 17, wantErr: true},
		{name: "over max", in: 101, wantErr: true},
		{name: "fractional", in: 25.5, wantErr: true},
		{name: "zero", in: 0, wantErr: true},
		{name: "negative", in: -3, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateAge(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFinalizeOther(t *testing.T) {
	assert.Equal(t, "other:crypto", FinalizeOther("crypto"))
	assert.Equal(t, "other:", FinalizeOther(""))
}

func TestQuestionIDsAreUnique(t *testing.T) {
	seen := map[model.QuestionID]bool{}
	for _, q := range Questions {
		assert.Falsef(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
	}
}

func TestConditionsReferenceEarlierQuestions(t *testing.T) {
	position := map[model.QuestionID]int{}
	for i, q := range Questions {
		position[q.ID] = i
	}
	for i, q := range Questions {
		if q.Condition == nil {
			continue
		}
		dep, ok := position[q.Condition.DependsOn]
		require.Truef(t, ok, "question %s depends on unknown id %s", q.ID, q.Condition.DependsOn)
		assert.Lessf(t, dep, i, "question %s depends on a later question", q.ID)
	}
}

func indexOf(t *testing.T, id model.QuestionID) int {
	t.Helper()
	for i, q := range Questions {
		if q.ID == id {
			return i
		}
	}
	t.Fatalf("question %s not found", id)
	return -1
}
