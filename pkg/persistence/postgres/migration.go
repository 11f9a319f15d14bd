package postgres

import (
	"context"
	"fmt"
	"sort"
)

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE runs (
				id VARCHAR(64) PRIMARY KEY,
				workflow_id VARCHAR(255),
				workflow_name VARCHAR(255),
				status VARCHAR(16) NOT NULL CHECK (status IN ('done', 'error')),
				result JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_runs_workflow_id ON runs(workflow_id);
			CREATE INDEX idx_runs_created_at ON runs(created_at);
		`,
	}
}

// runMigrations applies pending schema migrations in version order.
func (s *RunStore) runMigrations(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	var currentVersion int

	err = s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to query current schema version: %w", err)
	}

	all := migrations()

	versions := make([]int, 0, len(all))
	for version := range all {
		versions = append(versions, version)
	}

	sort.Ints(versions)

	for _, version := range versions {
		if version <= currentVersion {
			continue
		}

		s.logger.InfoContext(ctx, "Applying migration", "version", version)

		transaction, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", version, err)
		}

		_, err = transaction.ExecContext(ctx, all[version])
		if err != nil {
			_ = transaction.Rollback()

			return fmt.Errorf("failed to apply migration %d: %w", version, err)
		}

		_, err = transaction.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES ($1)", version)
		if err != nil {
			_ = transaction.Rollback()

			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}

		err = transaction.Commit()
		if err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", version, err)
		}
	}

	return nil
}
