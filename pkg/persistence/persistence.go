// Package persistence provides the run-history storage abstraction.
// The engine itself never touches a durable store; persisting run
// results is the caller's concern, served by these implementations.
package persistence

import (
	"context"
	"time"

	"github.com/veildoc/veilflow/pkg/models"
)

// StoredRun wraps a RunResult with its run-history identity. Runs are
// create-once, read-only thereafter.
type StoredRun struct {
	ID           string            `json:"id"`
	WorkflowID   string            `json:"workflow_id,omitempty"`
	WorkflowName string            `json:"workflow_name,omitempty"`
	Result       *models.RunResult `json:"result"`
	CreatedAt    time.Time         `json:"created_at"`
}

// RunStore persists and retrieves run records.
type RunStore interface {
	SaveRun(ctx context.Context, run *StoredRun) error
	RunByID(ctx context.Context, id string) (*StoredRun, error)

	// ListRuns returns runs newest-first, filtered by workflow id when
	// one is given.
	ListRuns(ctx context.Context, workflowID string) ([]*StoredRun, error)

	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
