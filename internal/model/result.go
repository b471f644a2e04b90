package model

import "time"

// ScoreBreakdown is the point breakdown for one scoring category. Details
// holds one human-readable line per sub-rule evaluated, including the
// zero-point ones, so a result is auditable after the fact.
type ScoreBreakdown struct {
	Section  string   `json:"section"`
	Score    int      `json:"score"`
	MaxScore int      `json:"max_score"`
	Details  []string `json:"details"`
}

// TotalScoreResult aggregates all category breakdowns. Percentage is always
// recomputable as round(100*TotalScore/MaxScore); it is carried for
// convenience, never as the source of truth.
type TotalScoreResult struct {
	TotalScore int              `json:"total_score"`
	MaxScore   int              `json:"max_score"`
	Percentage int              `json:"percentage"`
	Breakdowns []ScoreBreakdown `json:"breakdowns"`
}

// Breakdown returns the breakdown for a section, or nil.
func (r *TotalScoreResult) Breakdown(section string) *ScoreBreakdown {
	for i := range r.Breakdowns {
		if r.Breakdowns[i].Section == section {
			return &r.Breakdowns[i]
		}
	}
	return nil
}

// PeerRecord is one previously computed result restricted to the same age
// bucket, supplied by the persistence layer for percentile ranking. Category
// scores may be missing for peers saved under an older rule set; such peers
// are excluded from that category's denominator.
type PeerRecord struct {
	TotalScore int              `json:"total_score"`
	Breakdowns []ScoreBreakdown `json:"breakdowns,omitempty"`
}

// CategoryScore returns the peer's score for a section and whether the peer
// has a value for it.
func (p *PeerRecord) CategoryScore(section string) (int, bool) {
	for i := range p.Breakdowns {
		if p.Breakdowns[i].Section == section {
			return p.Breakdowns[i].Score, true
		}
	}
	return 0, false
}

// PercentileResult is the peer comparison for one user. When GroupSize is
// below the minimum sample size, TotalPercentile and CategoryPercentiles are
// nil: too little data is a defined response state, not an error.
type PercentileResult struct {
	AgeBucket           string         `json:"age_bucket"`
	GroupSize           int            `json:"group_size"`
	TotalPercentile     *int           `json:"total_percentile,omitempty"`
	CategoryPercentiles map[string]int `json:"category_percentiles,omitempty"`
}

// Product is one recommended financial product.
type Product struct {
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description" yaml:"description"`
	ApplicationLink string `json:"application_link" yaml:"application_link"`
	IsAffiliate     bool   `json:"is_affiliate" yaml:"is_affiliate"`
}

// RecommendationCategory groups the products emitted by one recommendation
// rule. Computed fresh on every request; never cached.
type RecommendationCategory struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Products    []Product `json:"products" yaml:"products"`
}

// SavedResult is a persisted assessment: the raw answers plus the computed
// score, keyed by a caller-supplied idempotency key (a hash of the answer
// map, opaque to this core).
type SavedResult struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id,omitempty"`
	Key       string           `json:"key"`
	Age       int              `json:"age"`
	AgeBucket string           `json:"age_bucket"`
	Answers   AnswerMap        `json:"answers"`
	Result    TotalScoreResult `json:"result"`
	CreatedAt time.Time        `json:"created_at"`
}
