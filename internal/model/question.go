package model

// InputKind describes how a question is answered.
type InputKind string

const (
	InputSingleSelect InputKind = "single_select"
	InputAmount       InputKind = "amount"
	InputText         InputKind = "text"
	InputMultiSelect  InputKind = "multi_select"
)

// Option is one selectable choice for a single- or multi-select question.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Condition gates a question on a previous answer. The question is shown
// only when the governing answer equals Equals exactly; multi-select answers
// never satisfy a condition.
type Condition struct {
	DependsOn QuestionID `json:"depends_on"`
	Equals    string     `json:"equals"`
}

// Question is an immutable questionnaire entry, defined once at process
// start.
type Question struct {
	ID        QuestionID `json:"id"`
	Section   string     `json:"section"`
	Text      string     `json:"text"`
	Kind      InputKind  `json:"kind"`
	Options   []Option   `json:"options,omitempty"`
	Min       float64    `json:"min,omitempty"`
	Max       float64    `json:"max,omitempty"`
	Step      float64    `json:"step,omitempty"`
	Prefix    string     `json:"prefix,omitempty"`
	Condition *Condition `json:"condition,omitempty"`
}

// Eligible reports whether the question should be asked given the answers
// collected so far. Unconditional questions are always eligible.
func (q *Question) Eligible(answers AnswerMap) bool {
	if q.Condition == nil {
		return true
	}
	return answers.String(q.Condition.DependsOn) == q.Condition.Equals
}
