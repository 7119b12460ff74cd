// Package afs copies documentation page trees using github.com/viant/afs.
package afs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docmerge"
	"github.com/viant/afs"
)

// Ensure Uniter implements docmerge.Uniter at compile time.
var _ docmerge.Uniter = (*Uniter)(nil)

// PageExt is the extension of rendered pages copied from a site root.
const PageExt = ".html"

// Uniter copies the directories and rendered pages at the root of one site
// into another. Generated data files at the root, such as the search index,
// are left alone; they must be merged, not overwritten.
type Uniter struct {
	fs afs.Service
}

// NewUniter creates a new Uniter.
func NewUniter() *Uniter {
	return &Uniter{fs: afs.New()}
}

func (u *Uniter) Unite(ctx context.Context, src, dest string) (docmerge.UniteStats, error) {
	var stats docmerge.UniteStats

	if err := u.requireDir(ctx, src, "source"); err != nil {
		return stats, err
	}
	if err := u.requireDir(ctx, dest, "destination"); err != nil {
		return stats, err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return stats, fmt.Errorf("list %s: %w", src, err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		name := entry.Name()
		from, to := filepath.Join(src, name), filepath.Join(dest, name)
		isDir := entry.IsDir()
		if entry.Type()&os.ModeSymlink != 0 {
			// Links are copied as the tree they point to; dangling ones are skipped.
			resolved, err := filepath.EvalSymlinks(from)
			if err != nil {
				continue
			}
			info, err := os.Stat(resolved)
			if err != nil {
				continue
			}
			from, isDir = resolved, info.IsDir()
		}
		switch {
		case isDir:
			stats.Dirs++
		case isPage(name):
			stats.Files++
		default:
			continue
		}
		if err := u.fs.Copy(ctx, from, to); err != nil {
			return stats, fmt.Errorf("copy %s to %s: %w", from, to, err)
		}
	}
	return stats, nil
}

func (u *Uniter) requireDir(ctx context.Context, path, role string) error {
	ok, err := u.fs.Exists(ctx, path)
	if err != nil {
		return fmt.Errorf("check %s %s: %w", role, path, err)
	}
	if !ok {
		return docmerge.Errorf(docmerge.ENOTFOUND, "%s %s not found", role, path)
	}
	obj, err := u.fs.Object(ctx, path)
	if err != nil {
		return fmt.Errorf("check %s %s: %w", role, path, err)
	}
	if !obj.IsDir() {
		return docmerge.Errorf(docmerge.ENOTFOUND, "%s %s is not a directory", role, path)
	}
	return nil
}

// isPage reports whether a file at the site root is a rendered page that
// belongs to the copied tree. The root index.html is the entry point and is
// managed separately.
func isPage(name string) bool {
	return strings.HasSuffix(name, PageExt) && name != docmerge.EntryPointFile
}
