package questionnaire

import (
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// End signals that no eligible question remains.
const End = -1

// NextQuestion scans forward from currentIndex+1 and returns the index of
// the next eligible question, or End when the questionnaire is complete.
// A question with a condition is eligible only when the governing answer
// equals the expected value exactly. Passing currentIndex < 0 finds the
// first question.
func NextQuestion(questions []model.Question, answers model.AnswerMap, currentIndex int) int {
	for i := currentIndex + 1; i < len(questions); i++ {
		if questions[i].Eligible(answers) {
			return i
		}
	}
	return End
}

// PrevQuestion scans backward from currentIndex-1 and returns the index of
// the closest earlier eligible question, or End if there is none. Skipped
// questions keep their (absent) entries untouched; going back never mutates
// the answer map.
func PrevQuestion(questions []model.Question, answers model.AnswerMap, currentIndex int) int {
	for i := currentIndex - 1; i >= 0; i-- {
		if questions[i].Eligible(answers) {
			return i
		}
	}
	return End
}

// OtherSentinel is the in-progress value of an "other" selection awaiting
// its free-text elaboration.
const OtherSentinel = "other"

// FinalizeOther collapses the two-step "other" commit (select the sentinel,
// then supply text) into the single logical answer stored under the question
// id.
func FinalizeOther(text string) string {
	return OtherSentinel + ":" + text
}

// ValidateAge checks the age answer. Ages outside 18-100 are a validation
// failure surfaced to the caller, never silently coerced.
func ValidateAge(v float64) (int, error) {
	age := int(v)
	if float64(age) != v || age < MinAge || age > MaxAge {
		return 0, eris.Errorf("questionnaire: age must be a whole number between %d and %d (got %s)",
			MinAge, MaxAge, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return age, nil
}

// Session is the externally owned traversal state for one respondent. The
// engine holds no module-level mutable state; hosts create one Session per
// in-progress questionnaire and persist it however they like.
type Session struct {
	Questions []model.Question
	Answers   model.AnswerMap
	Index     int
}

// NewSession starts a session positioned on the first question.
func NewSession(questions []model.Question) *Session {
	return &Session{
		Questions: questions,
		Answers:   model.AnswerMap{},
		Index:     NextQuestion(questions, model.AnswerMap{}, -1),
	}
}

// Current returns the question the session is positioned on, or nil when
// the questionnaire is complete.
func (s *Session) Current() *model.Question {
	if s.Index == End || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// Answer records a value for the current question and advances. Recording
// over an earlier answer (after going back) overwrites only that key.
func (s *Session) Answer(value any) {
	q := s.Current()
	if q == nil {
		return
	}
	s.Answers[q.ID] = value
	s.Index = NextQuestion(s.Questions, s.Answers, s.Index)
}

// Back moves to the previous eligible question. The prior answer stays in
// the map so the host can re-render it; answers for questions that were
// skipped on the way forward are untouched.
func (s *Session) Back() bool {
	from := s.Index
	if from == End {
		from = len(s.Questions)
	}
	prev := PrevQuestion(s.Questions, s.Answers, from)
	if prev == End {
		return false
	}
	s.Index = prev
	return true
}

// Done reports whether every eligible question has been answered.
func (s *Session) Done() bool {
	return s.Index == End
}
