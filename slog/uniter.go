// Package slog provides logging decorators for docmerge services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmerge"
)

// Ensure LoggingUniter implements docmerge.Uniter.
var _ docmerge.Uniter = (*LoggingUniter)(nil)

// LoggingUniter wraps a Uniter with logging.
type LoggingUniter struct {
	next   docmerge.Uniter
	logger *slog.Logger
}

// NewLoggingUniter creates a new LoggingUniter.
func NewLoggingUniter(next docmerge.Uniter, logger *slog.Logger) *LoggingUniter {
	return &LoggingUniter{next: next, logger: logger}
}

// Unite delegates to the wrapped uniter and logs what was copied.
func (u *LoggingUniter) Unite(ctx context.Context, src, dest string) (stats docmerge.UniteStats, err error) {
	defer func(begin time.Time) {
		u.logger.Info("unite",
			"src", src,
			"dest", dest,
			"dirs", stats.Dirs,
			"files", stats.Files,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return u.next.Unite(ctx, src, dest)
}
