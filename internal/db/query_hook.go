package db

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-pg/pg/v10"
)

var _ pg.QueryHook = (*QueryHook)(nil)

// QueryHook logs every executed statement at debug level.
type QueryHook struct {
	logger *slog.Logger
}

func NewQueryHook(logger *slog.Logger) *QueryHook {
	return &QueryHook{
		logger: logger,
	}
}

func (h *QueryHook) BeforeQuery(ctx context.Context, _ *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (h *QueryHook) AfterQuery(ctx context.Context, event *pg.QueryEvent) error {
	query, err := event.FormattedQuery()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to format query", "error", err)
		return nil
	}

	args := []any{"query", string(query), "duration", time.Since(event.StartTime)}
	if event.Err != nil {
		h.logger.WarnContext(ctx, "sql query failed", append(args, "error", event.Err)...)
		return nil
	}

	h.logger.DebugContext(ctx, "sql query executed", args...)
	return nil
}
