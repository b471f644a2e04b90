package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/finpulse/finpulse-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS results (
	id          TEXT PRIMARY KEY,
	user_id     TEXT,
	result_key  TEXT NOT NULL UNIQUE,
	age         INTEGER NOT NULL,
	age_bucket  TEXT NOT NULL,
	answers     TEXT NOT NULL,
	result      TEXT NOT NULL,
	total_score INTEGER NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_results_age_bucket ON results(age_bucket);
CREATE INDEX IF NOT EXISTS idx_results_user_id ON results(user_id);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON results(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveResult(ctx context.Context, result *model.SavedResult) (*model.SavedResult, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal answers")
	}
	resultJSON, err := json.Marshal(result.Result)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal result")
	}

	// INSERT OR IGNORE keeps resubmissions of identical answers from
	// inflating the peer sample; the read-back returns whichever row won.
	_, err = s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO results (id, user_id, result_key, age, age_bucket, answers, result, total_score, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, result.UserID, result.Key, result.Age, result.AgeBucket,
		string(answersJSON), string(resultJSON), result.Result.TotalScore, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert result")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at
		 FROM results WHERE result_key = ?`,
		result.Key,
	)
	return scanResult(row)
}

func (s *SQLiteStore) GetResult(ctx context.Context, id string) (*model.SavedResult, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at
		 FROM results WHERE id = ?`,
		id,
	)
	r, err := scanResult(row)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get result %s", id)
	}
	return r, nil
}

func (s *SQLiteStore) ListResults(ctx context.Context, filter ResultFilter) ([]model.SavedResult, error) {
	query := `SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at
		 FROM results WHERE 1=1`
	var args []any

	if filter.UserID != "" {
		query += ` AND user_id = ?`
		args = append(args, filter.UserID)
	}
	if filter.AgeBucket != "" {
		query += ` AND age_bucket = ?`
		args = append(args, filter.AgeBucket)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list results")
	}
	defer rows.Close()

	var results []model.SavedResult
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, eris.Wrap(rows.Err(), "sqlite: list results iterate")
}

func (s *SQLiteStore) FindPeerSample(ctx context.Context, ageBucket string) ([]model.PeerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT total_score, result FROM results WHERE age_bucket = ?`,
		ageBucket,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: peer sample %s", ageBucket)
	}
	defer rows.Close()

	var peers []model.PeerRecord
	for rows.Next() {
		var p model.PeerRecord
		var resultJSON string
		if err := rows.Scan(&p.TotalScore, &resultJSON); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan peer")
		}
		var full model.TotalScoreResult
		// Breakdowns are best-effort; a peer saved under an older rule
		// set without them still counts toward the total percentile.
		if err := json.Unmarshal([]byte(resultJSON), &full); err == nil {
			p.Breakdowns = full.Breakdowns
		}
		peers = append(peers, p)
	}
	return peers, eris.Wrap(rows.Err(), "sqlite: peer sample iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanResult(row scannable) (*model.SavedResult, error) {
	var r model.SavedResult
	var userID sql.NullString
	var answersJSON, resultJSON string

	err := row.Scan(&r.ID, &userID, &r.Key, &r.Age, &r.AgeBucket, &answersJSON, &resultJSON, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("result not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "scan result")
	}
	r.UserID = userID.String

	if err := json.Unmarshal([]byte(answersJSON), &r.Answers); err != nil {
		return nil, eris.Wrap(err, "unmarshal answers")
	}
	if err := json.Unmarshal([]byte(resultJSON), &r.Result); err != nil {
		return nil, eris.Wrap(err, "unmarshal result")
	}
	return &r, nil
}
