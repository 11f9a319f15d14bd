// Package postgres provides PostgreSQL-backed run-history persistence.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	_ "github.com/lib/pq" // postgres driver
	"github.com/veildoc/veilflow/pkg/persistence"
)

type RunStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRunStore connects to PostgreSQL and runs pending migrations.
func NewRunStore(ctx context.Context, logger *slog.Logger, databaseURL string) (*RunStore, error) {
	database, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	err = database.PingContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &RunStore{
		db:     database,
		logger: logger.With("module", "postgres_run_store"),
	}

	err = store.runMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func (s *RunStore) SaveRun(ctx context.Context, run *persistence.StoredRun) error {
	result, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("failed to encode run %s: %w", run.ID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, workflow_id, workflow_name, status, result, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING
	`, run.ID, run.WorkflowID, run.WorkflowName, string(run.Result.Status), result, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	return nil
}

func (s *RunStore) RunByID(ctx context.Context, id string) (*persistence.StoredRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, workflow_id, workflow_name, result, created_at
		FROM runs WHERE id = $1
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, persistence.ErrRunNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read run %s: %w", id, err)
	}

	return run, nil
}

func (s *RunStore) ListRuns(ctx context.Context, workflowID string) ([]*persistence.StoredRun, error) {
	query := `
		SELECT id, workflow_id, workflow_name, result, created_at
		FROM runs
	`

	args := []any{}
	if workflowID != "" {
		query += " WHERE workflow_id = $1"

		args = append(args, workflowID)
	}

	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	defer func() {
		_ = rows.Close()
	}()

	var runs []*persistence.StoredRun

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (s *RunStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *RunStore) Close(_ context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}

	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (*persistence.StoredRun, error) {
	var (
		run    persistence.StoredRun
		result []byte
	)

	err := row.Scan(&run.ID, &run.WorkflowID, &run.WorkflowName, &result, &run.CreatedAt)
	if err != nil {
		return nil, err
	}

	err = json.Unmarshal(result, &run.Result)
	if err != nil {
		return nil, err
	}

	return &run, nil
}
