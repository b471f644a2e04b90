package store

import (
	"context"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// ResultFilter specifies criteria for listing saved results.
type ResultFilter struct {
	UserID    string `json:"user_id,omitempty"`
	AgeBucket string `json:"age_bucket,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// Store defines the persistence interface for assessment results.
type Store interface {
	// SaveResult persists a scored assessment. Saves are idempotent on
	// the result key: resubmitting the same answers returns the original
	// row instead of inserting a duplicate.
	SaveResult(ctx context.Context, result *model.SavedResult) (*model.SavedResult, error)
	GetResult(ctx context.Context, id string) (*model.SavedResult, error)
	ListResults(ctx context.Context, filter ResultFilter) ([]model.SavedResult, error)

	// FindPeerSample returns every stored result in an age bucket,
	// reduced to what percentile ranking needs.
	FindPeerSample(ctx context.Context, ageBucket string) ([]model.PeerRecord, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// BulkWriter is implemented by backends that can load many results in
// one operation. Callers must supply unique result keys; bulk loads skip
// the idempotency check.
type BulkWriter interface {
	BulkInsertResults(ctx context.Context, results []model.SavedResult) (int64, error)
}
