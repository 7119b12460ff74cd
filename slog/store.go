package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmerge"
)

// Ensure LoggingIndexStore implements docmerge.IndexStore.
var _ docmerge.IndexStore = (*LoggingIndexStore)(nil)

// LoggingIndexStore wraps an IndexStore with logging.
type LoggingIndexStore struct {
	next   docmerge.IndexStore
	logger *slog.Logger
}

// NewLoggingIndexStore creates a new LoggingIndexStore.
func NewLoggingIndexStore(next docmerge.IndexStore, logger *slog.Logger) *LoggingIndexStore {
	return &LoggingIndexStore{next: next, logger: logger}
}

// ReadIndex delegates to the wrapped store and logs the units found.
func (s *LoggingIndexStore) ReadIndex(ctx context.Context, root string) (idx *docmerge.SearchIndex, err error) {
	defer func(begin time.Time) {
		attrs := []any{"root", root}
		if idx != nil {
			attrs = append(attrs, "units", len(idx.Entries), "dialect", idx.Wrapper.Dialect.String())
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		s.logger.Info("read index", attrs...)
	}(time.Now())
	return s.next.ReadIndex(ctx, root)
}

// ReadCrateList delegates to the wrapped store and logs the count.
func (s *LoggingIndexStore) ReadCrateList(ctx context.Context, root string) (names []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("read crate list",
			"root", root,
			"count", len(names),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ReadCrateList(ctx, root)
}

// WriteIndex delegates to the wrapped store and logs the write.
func (s *LoggingIndexStore) WriteIndex(ctx context.Context, root string, idx *docmerge.SearchIndex) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("write index",
			"root", root,
			"units", len(idx.Entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.WriteIndex(ctx, root, idx)
}
