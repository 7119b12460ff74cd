package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docmerge"
)

// Ensure Linker implements docmerge.Linker at compile time.
var _ docmerge.Linker = (*Linker)(nil)

// Linker makes a site's index.html a symlink to one unit's landing page.
// The link is relative so the site can be moved or served from any path.
type Linker struct{}

// NewLinker creates a new Linker.
func NewLinker() *Linker {
	return &Linker{}
}

func (l *Linker) Link(ctx context.Context, root, unit string) error {
	if err := docmerge.ValidateUnitName(unit); err != nil {
		return err
	}

	path := filepath.Join(root, docmerge.EntryPointFile)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", path, err)
	}

	target := filepath.Join(unit, docmerge.EntryPointFile)
	if err := os.Symlink(target, path); err != nil {
		return fmt.Errorf("link %s to %s: %w", path, target, err)
	}
	return nil
}
