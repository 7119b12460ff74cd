package mock

import (
	"context"

	"github.com/fwojciec/docmerge"
)

var _ docmerge.Uniter = (*Uniter)(nil)

// Uniter is a mock implementation of docmerge.Uniter.
type Uniter struct {
	UniteFn func(ctx context.Context, src, dest string) (docmerge.UniteStats, error)
}

func (u *Uniter) Unite(ctx context.Context, src, dest string) (docmerge.UniteStats, error) {
	return u.UniteFn(ctx, src, dest)
}
