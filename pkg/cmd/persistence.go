package cmd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/veildoc/veilflow/pkg/persistence"
	"github.com/veildoc/veilflow/pkg/persistence/file"
	"github.com/veildoc/veilflow/pkg/persistence/postgres"
	"github.com/veildoc/veilflow/pkg/persistence/redis"
)

// NewRunStore selects a run store by the database URL scheme. Anything
// without a recognized scheme is treated as a file path.
func NewRunStore(ctx context.Context, logger *slog.Logger, databaseURL string) (persistence.RunStore, error) {
	switch parseStoreProvider(databaseURL) {
	case "postgres":
		return postgres.NewRunStore(ctx, logger, databaseURL)
	case "redis":
		return redis.NewRunStore(databaseURL)
	default:
		return file.NewRunStore(databaseURL), nil
	}
}

func parseStoreProvider(databaseURL string) string {
	scheme, _, found := strings.Cut(databaseURL, "://")
	if !found {
		return "file"
	}

	switch scheme {
	case "postgres", "postgresql":
		return "postgres"
	case "redis", "rediss":
		return "redis"
	case "file":
		return "file"
	default:
		return "file"
	}
}
