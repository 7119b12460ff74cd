package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmerge"
)

// Compile-time interface verification.
var (
	_ docmerge.Linker    = (*LoggingLinker)(nil)
	_ docmerge.Describer = (*LoggingDescriber)(nil)
)

// LoggingLinker wraps a Linker with logging.
type LoggingLinker struct {
	next   docmerge.Linker
	logger *slog.Logger
}

// NewLoggingLinker creates a new LoggingLinker.
func NewLoggingLinker(next docmerge.Linker, logger *slog.Logger) *LoggingLinker {
	return &LoggingLinker{next: next, logger: logger}
}

// Link delegates to the wrapped linker and logs the entry point.
func (l *LoggingLinker) Link(ctx context.Context, root, unit string) (err error) {
	defer func(begin time.Time) {
		l.logger.Info("link entry point",
			"root", root,
			"unit", unit,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Link(ctx, root, unit)
}

// LoggingDescriber wraps a Describer with debug logging.
type LoggingDescriber struct {
	next   docmerge.Describer
	logger *slog.Logger
}

// NewLoggingDescriber creates a new LoggingDescriber.
func NewLoggingDescriber(next docmerge.Describer, logger *slog.Logger) *LoggingDescriber {
	return &LoggingDescriber{next: next, logger: logger}
}

// Describe delegates to the wrapped describer.
func (d *LoggingDescriber) Describe(ctx context.Context, root, unit string) (desc string, err error) {
	defer func(begin time.Time) {
		d.logger.Debug("describe unit",
			"unit", unit,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return d.next.Describe(ctx, root, unit)
}
