// Package redis provides Redis-backed run-history persistence.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"
	"github.com/veildoc/veilflow/pkg/persistence"
)

const (
	runKeyPrefix   = "veilflow:run:"
	runIndexKey    = "veilflow:runs"
	workflowPrefix = "veilflow:runs:workflow:"
)

type RunStore struct {
	client redis.UniversalClient
}

// NewRunStore connects to Redis using a redis:// URL.
func NewRunStore(url string) (*RunStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return &RunStore{client: redis.NewClient(opts)}, nil
}

func (s *RunStore) SaveRun(ctx context.Context, run *persistence.StoredRun) error {
	encoded, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run %s: %w", run.ID, err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, runKeyPrefix+run.ID, encoded, 0)
	pipe.ZAdd(ctx, runIndexKey, redis.Z{
		Score:  float64(run.CreatedAt.UnixMilli()),
		Member: run.ID,
	})

	if run.WorkflowID != "" {
		pipe.ZAdd(ctx, workflowPrefix+run.WorkflowID, redis.Z{
			Score:  float64(run.CreatedAt.UnixMilli()),
			Member: run.ID,
		})
	}

	_, err = pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}

	return nil
}

func (s *RunStore) RunByID(ctx context.Context, id string) (*persistence.StoredRun, error) {
	content, err := s.client.Get(ctx, runKeyPrefix+id).Bytes()
	if err == redis.Nil {
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
	index := runIndexKey
	if workflowID != "" {
		index = workflowPrefix + workflowID
	}

	ids, err := s.client.ZRevRange(ctx, index, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*persistence.StoredRun, 0, len(ids))

	for _, id := range ids {
		run, err := s.RunByID(ctx, id)
		if persistence.IsRunNotFound(err) {
			// Index entry outlived its record; skip it.
			continue
		}

		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	return runs, nil
}

func (s *RunStore) HealthCheck(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RunStore) Close(_ context.Context) error {
	return s.client.Close()
}
