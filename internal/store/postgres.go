package store

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/finpulse/finpulse-cli/internal/db"
	"github.com/finpulse/finpulse-cli/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the hot store operations.
var preparedStatements = map[string]string{
	"insert_result": `INSERT INTO results (id, user_id, result_key, age, age_bucket, answers, result, total_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (result_key) DO NOTHING`,
	"get_result_by_key": `SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE result_key = $1`,
	"get_result":        `SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE id = $1`,
	"peer_sample":       `SELECT total_score, result FROM results WHERE age_bucket = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Pool returns the underlying database pool for subsystems that need
// direct query access (e.g., bulk peer seeding).
func (s *PostgresStore) Pool() db.Pool {
	return s.pool
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS results (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	user_id     TEXT,
	result_key  TEXT NOT NULL UNIQUE,
	age         INTEGER NOT NULL,
	age_bucket  TEXT NOT NULL,
	answers     JSONB NOT NULL,
	result      JSONB NOT NULL,
	total_score INTEGER NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_results_age_bucket ON results(age_bucket);
CREATE INDEX IF NOT EXISTS idx_results_user_id ON results(user_id);
CREATE INDEX IF NOT EXISTS idx_results_created_at ON results(created_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveResult(ctx context.Context, result *model.SavedResult) (*model.SavedResult, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	answersJSON, err := json.Marshal(result.Answers)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal answers")
	}
	resultJSON, err := json.Marshal(result.Result)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal result")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO results (id, user_id, result_key, age, age_bucket, answers, result, total_score, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (result_key) DO NOTHING`,
		id, result.UserID, result.Key, result.Age, result.AgeBucket,
		answersJSON, resultJSON, result.Result.TotalScore, now,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert result")
	}

	return s.getByKey(ctx, result.Key)
}

// BulkInsertResults loads results through the COPY protocol. Used by the
// seeder, where every key is freshly generated and conflicts cannot occur.
func (s *PostgresStore) BulkInsertResults(ctx context.Context, results []model.SavedResult) (int64, error) {
	now := time.Now().UTC()
	rows := make([][]any, 0, len(results))
	for i := range results {
		r := &results[i]
		answersJSON, err := json.Marshal(r.Answers)
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal answers")
		}
		resultJSON, err := json.Marshal(r.Result)
		if err != nil {
			return 0, eris.Wrap(err, "postgres: marshal result")
		}
		rows = append(rows, []any{
			uuid.New().String(), r.UserID, r.Key, r.Age, r.AgeBucket,
			answersJSON, resultJSON, r.Result.TotalScore, now,
		})
	}
	return db.CopyFrom(ctx, s.pool, "results",
		[]string{"id", "user_id", "result_key", "age", "age_bucket", "answers", "result", "total_score", "created_at"},
		rows)
}

func (s *PostgresStore) getByKey(ctx context.Context, key string) (*model.SavedResult, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE result_key = $1`,
		key,
	)
	r, err := scanResultPg(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get result by key %s", key)
	}
	return r, nil
}

func (s *PostgresStore) GetResult(ctx context.Context, id string) (*model.SavedResult, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE id = $1`,
		id,
	)
	r, err := scanResultPg(row)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get result %s", id)
	}
	return r, nil
}

func (s *PostgresStore) ListResults(ctx context.Context, filter ResultFilter) ([]model.SavedResult, error) {
	query := `SELECT id, user_id, result_key, age, age_bucket, answers, result, created_at FROM results WHERE true`
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return placeholder(len(args))
	}

	if filter.UserID != "" {
		query += ` AND user_id = ` + arg(filter.UserID)
	}
	if filter.AgeBucket != "" {
		query += ` AND age_bucket = ` + arg(filter.AgeBucket)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ` + arg(limit)

	if filter.Offset > 0 {
		query += ` OFFSET ` + arg(filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list results")
	}
	defer rows.Close()

	var results []model.SavedResult
	for rows.Next() {
		r, err := scanResultPg(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, eris.Wrap(rows.Err(), "postgres: list results iterate")
}

func (s *PostgresStore) FindPeerSample(ctx context.Context, ageBucket string) ([]model.PeerRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT total_score, result FROM results WHERE age_bucket = $1`,
		ageBucket,
	)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: peer sample %s", ageBucket)
	}
	defer rows.Close()

	var peers []model.PeerRecord
	for rows.Next() {
		var p model.PeerRecord
		var resultJSON []byte
		if err := rows.Scan(&p.TotalScore, &resultJSON); err != nil {
			return nil, eris.Wrap(err, "postgres: scan peer")
		}
		var full model.TotalScoreResult
		if err := json.Unmarshal(resultJSON, &full); err == nil {
			p.Breakdowns = full.Breakdowns
		}
		peers = append(peers, p)
	}
	return peers, eris.Wrap(rows.Err(), "postgres: peer sample iterate")
}

func scanResultPg(row pgx.Row) (*model.SavedResult, error) {
	var r model.SavedResult
	var userID *string
	var answersJSON, resultJSON []byte

	err := row.Scan(&r.ID, &userID, &r.Key, &r.Age, &r.AgeBucket, &answersJSON, &resultJSON, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.New("result not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "scan result")
	}
	if userID != nil {
		r.UserID = *userID
	}

	if err := json.Unmarshal(answersJSON, &r.Answers); err != nil {
		return nil, eris.Wrap(err, "unmarshal answers")
	}
	if err := json.Unmarshal(resultJSON, &r.Result); err != nil {
		return nil, eris.Wrap(err, "unmarshal result")
	}
	return &r, nil
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}
