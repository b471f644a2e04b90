package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewPostgresWithPool(mock), mock
}

func TestPostgresStore_GetResult_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetResult(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "get result")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetResult(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	answers, _ := json.Marshal(model.AnswerMap{"1": "yes"})
	result, _ := json.Marshal(model.TotalScoreResult{TotalScore: 60, MaxScore: 95})
	userID := "user-1"

	mock.ExpectQuery(`SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE id = \$1`).
		WithArgs("id-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "result_key", "age", "age_bucket", "answers", "result", "created_at",
		}).AddRow("id-1", &userID, "key-1", 27, "25-30", answers, result, time.Now().UTC()))

	got, err := s.GetResult(context.Background(), "id-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, 60, got.Result.TotalScore)
	assert.Equal(t, "yes", got.Answers.String("1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveResult_ConflictReturnsExisting(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	answers, _ := json.Marshal(model.AnswerMap{"1": "yes"})
	result, _ := json.Marshal(model.TotalScoreResult{TotalScore: 60, MaxScore: 95})

	mock.ExpectExec(`INSERT INTO results .* ON CONFLICT \(result_key\) DO NOTHING`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectQuery(`SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE result_key = \$1`).
		WithArgs("key-1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "user_id", "result_key", "age", "age_bucket", "answers", "result", "created_at",
		}).AddRow("existing-id", (*string)(nil), "key-1", 27, "25-30", answers, result, time.Now().UTC()))

	saved, err := s.SaveResult(context.Background(), &model.SavedResult{
		Key:       "key-1",
		Age:       27,
		AgeBucket: "25-30",
		Answers:   model.AnswerMap{"1": "yes"},
		Result:    model.TotalScoreResult{TotalScore: 60, MaxScore: 95},
	})
	require.NoError(t, err)
	assert.Equal(t, "existing-id", saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_FindPeerSample(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	result, _ := json.Marshal(model.TotalScoreResult{
		TotalScore: 40,
		Breakdowns: []model.ScoreBreakdown{{Section: "Banking & Savings", Score: 15, MaxScore: 25}},
	})

	mock.ExpectQuery(`SELECT total_score, result FROM results WHERE age_bucket = \$1`).
		WithArgs("31-40").
		WillReturnRows(pgxmock.NewRows([]string{"total_score", "result"}).
			AddRow(40, result).
			AddRow(55, []byte(`{}`)))

	peers, err := s.FindPeerSample(context.Background(), "31-40")
	require.NoError(t, err)
	require.Len(t, peers, 2)

	score, ok := peers[0].CategoryScore("Banking & Savings")
	assert.True(t, ok)
	assert.Equal(t, 15, score)

	_, ok = peers[1].CategoryScore("Banking & Savings")
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS results`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_BulkInsertResults(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectCopyFrom(pgx.Identifier{"results"}, []string{
		"id", "user_id", "result_key", "age", "age_bucket", "answers", "result", "total_score", "created_at",
	}).WillReturnResult(2)

	results := []model.SavedResult{
		{Key: "k-1", Age: 27, AgeBucket: "25-30", Answers: model.AnswerMap{"1": "yes"},
			Result: model.TotalScoreResult{TotalScore: 60, MaxScore: 95}},
		{Key: "k-2", Age: 22, AgeBucket: "22", Answers: model.AnswerMap{"1": "no"},
			Result: model.TotalScoreResult{TotalScore: 5, MaxScore: 95}},
	}

	n, err := s.BulkInsertResults(context.Background(), results)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_BulkInsertResults_Empty(t *testing.T) {
	s, _ := newMockPostgresStore(t)

	n, err := s.BulkInsertResults(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}
