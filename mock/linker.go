package mock

import (
	"context"

	"github.com/fwojciec/docmerge"
)

// Compile-time interface verification.
var (
	_ docmerge.Linker    = (*Linker)(nil)
	_ docmerge.Describer = (*Describer)(nil)
)

// Linker is a mock implementation of docmerge.Linker.
type Linker struct {
	LinkFn func(ctx context.Context, root, unit string) error
}

func (l *Linker) Link(ctx context.Context, root, unit string) error {
	return l.LinkFn(ctx, root, unit)
}

// Describer is a mock implementation of docmerge.Describer.
type Describer struct {
	DescribeFn func(ctx context.Context, root, unit string) (string, error)
}

func (d *Describer) Describe(ctx context.Context, root, unit string) (string, error) {
	return d.DescribeFn(ctx, root, unit)
}
