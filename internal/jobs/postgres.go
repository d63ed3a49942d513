package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists jobs in a panel_jobs table so results survive
// restarts and can be shared across replicas. Schema:
//
//	CREATE TABLE panel_jobs (
//	    id         TEXT PRIMARY KEY,
//	    status     TEXT NOT NULL,
//	    result     JSONB,
//	    error      TEXT,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//	    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresStore) Create(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO panel_jobs (id, status) VALUES ($1, $2)`,
		id, StatusProcessing,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Job, error) {
	var (
		job    Job
		result []byte
		errMsg *string
	)
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, result, error, created_at, updated_at
		 FROM panel_jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Status, &result, &errMsg, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return Job{}, ErrNotFound
		}
		return Job{}, fmt.Errorf("failed to get job: %w", err)
	}
	if len(result) > 0 {
		job.Result = json.RawMessage(result)
	}
	if errMsg != nil {
		job.Error = *errMsg
	}
	return job, nil
}

func (s *PostgresStore) Complete(ctx context.Context, id string, result any) error {
	data, err := marshalResult(result)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE panel_jobs
		 SET status = $1, result = $2, error = NULL, updated_at = NOW()
		 WHERE id = $3`,
		StatusCompleted, []byte(data), id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Fail(ctx context.Context, id string, message string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE panel_jobs
		 SET status = $1, result = NULL, error = $2, updated_at = NOW()
		 WHERE id = $3`,
		StatusFailed, message, id,
	)
	if err != nil {
		return fmt.Errorf("failed to fail job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Sweep(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM panel_jobs WHERE created_at < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep jobs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
