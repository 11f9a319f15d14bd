// Package file provides file-based run-history persistence: one JSON
// document per run under a root directory.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/veildoc/veilflow/pkg/persistence"
)

type RunStore struct {
	root string
}

// NewRunStore creates a file-backed run store rooted at the given
// directory. Accepts plain paths and file:// URLs.
func NewRunStore(root string) *RunStore {
	return &RunStore{
		root: strings.Replace(root, "file://", "", 1),
	}
}

func (s *RunStore) SaveRun(_ context.Context, run *persistence.StoredRun) error {
	err := os.MkdirAll(s.root, 0o755)
	if err != nil {
		return fmt.Errorf("failed to create run store directory: %w", err)
	}

	encoded, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode run %s: %w", run.ID, err)
	}

	err = os.WriteFile(s.runPath(run.ID), encoded, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write run %s: %w", run.ID, err)
	}

	return nil
}

func (s *RunStore) RunByID(_ context.Context, id string) (*persistence.StoredRun, error) {
	content, err := os.ReadFile(s.runPath(id))
	if os.IsNotExist(err) {
		return nil, persistence.ErrRunNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read run %s: %w", id, err)
	}

	var run persistence.StoredRun

	err = json.Unmarshal(content, &run)
	if err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", id, err)
	}

	return &run, nil
}

func (s *RunStore) ListRuns(ctx context.Context, workflowID string) ([]*persistence.StoredRun, error) {
	entries, err := os.ReadDir(s.root)
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list run store directory: %w", err)
	}

	runs := make([]*persistence.StoredRun, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		run, err := s.RunByID(ctx, strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			return nil, err
		}

		if workflowID != "" && run.WorkflowID != workflowID {
			continue
		}

		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	return runs, nil
}

func (s *RunStore) HealthCheck(_ context.Context) error {
	_, err := os.Stat(s.root)
	if os.IsNotExist(err) {
		// The directory is created on first save.
		return nil
	}

	return err
}

func (s *RunStore) Close(_ context.Context) error {
	return nil
}

func (s *RunStore) runPath(id string) string {
	return filepath.Join(s.root, id+".json")
}
