// Package merge combines rustdoc sites into a destination site.
// It coordinates reading every search index, merging them, copying page
// trees, writing the generated files and linking the entry point.
package merge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/docmerge"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of source indexes read at once.
const DefaultConcurrency = 4

// Merger merges documentation sites into a destination site.
type Merger struct {
	Indexes docmerge.IndexStore
	Uniter  docmerge.Uniter
	Linker  docmerge.Linker

	// Concurrency limits parallel index reads. Defaults to DefaultConcurrency.
	Concurrency int
}

// Request describes one merge.
type Request struct {
	// Sources are the sites to merge, in increasing order of precedence.
	// Defaults to docmerge.DefaultSource when empty.
	Sources []string

	// Dest is the root of the merged site.
	Dest string

	// IndexUnit names the unit whose landing page becomes the site's entry
	// point. Linking is skipped when empty.
	IndexUnit string

	// CreateDest creates Dest when it does not exist.
	CreateDest bool

	// DryRun computes the result without writing anything.
	DryRun bool
}

// Result holds the outcome of a merge.
type Result struct {
	// Previous is the destination's index before the merge, nil if it had none.
	Previous *docmerge.SearchIndex

	// Merged is the index written to the destination.
	Merged *docmerge.SearchIndex

	// Changes lists every merged unit with what happened to it.
	Changes []Change

	// Linked is the unit the entry point links to, "" if not linked.
	Linked string
}

// Merge runs the merge described by req. Every source index is read and
// checked before anything is written, so configuration and format errors
// leave the destination untouched.
func (m *Merger) Merge(ctx context.Context, req Request) (*Result, error) {
	sources := req.Sources
	if len(sources) == 0 {
		sources = []string{docmerge.DefaultSource}
	}
	if req.Dest == "" {
		return nil, docmerge.Errorf(docmerge.EINVALID, "destination required")
	}
	if req.IndexUnit != "" {
		if err := docmerge.ValidateUnitName(req.IndexUnit); err != nil {
			return nil, err
		}
	}

	for _, src := range sources {
		if err := requireDir(src); err != nil {
			return nil, docmerge.Errorf(docmerge.ENOTFOUND, "source documentation not found at %s. Did you run `cargo doc`?", src)
		}
	}
	destExists := requireDir(req.Dest) == nil
	if !destExists && !req.CreateDest {
		return nil, docmerge.Errorf(docmerge.ENOTFOUND, "destination directory %s not found. If this is intentional, use --create-dest", req.Dest)
	}

	indexes, err := m.readSources(ctx, sources)
	if err != nil {
		return nil, err
	}

	var previous *docmerge.SearchIndex
	if destExists {
		idx, err := m.Indexes.ReadIndex(ctx, req.Dest)
		if err != nil && docmerge.ErrorCode(err) != docmerge.ENOTFOUND {
			return nil, err
		}
		previous = idx
	}

	merged, err := docmerge.Merge(previous, indexes...)
	if err != nil {
		return nil, err
	}
	if req.IndexUnit != "" && !slices.Contains(merged.Names(), req.IndexUnit) {
		return nil, docmerge.Errorf(docmerge.EINVALID, "index unit %q is not among the merged units", req.IndexUnit)
	}

	result := &Result{
		Previous: previous,
		Merged:   merged,
		Changes:  Plan(previous, sources, indexes, merged),
	}
	if req.DryRun {
		return result, nil
	}

	if !destExists {
		if err := os.MkdirAll(req.Dest, 0o755); err != nil {
			return nil, fmt.Errorf("create destination %s: %w", req.Dest, err)
		}
	}
	for _, src := range sources {
		if _, err := m.Uniter.Unite(ctx, src, req.Dest); err != nil {
			return nil, err
		}
	}
	if err := m.Indexes.WriteIndex(ctx, req.Dest, merged); err != nil {
		return nil, err
	}
	if req.IndexUnit != "" {
		if err := m.Linker.Link(ctx, req.Dest, req.IndexUnit); err != nil {
			return nil, err
		}
		result.Linked = req.IndexUnit
	}
	return result, nil
}

// readSources reads and checks every source index. Reads run in parallel;
// when several fail, the error of the earliest source is returned.
func (m *Merger) readSources(ctx context.Context, sources []string) ([]*docmerge.SearchIndex, error) {
	concurrency := m.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	indexes := make([]*docmerge.SearchIndex, len(sources))
	errs := make([]error, len(sources))

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			idx, err := m.Indexes.ReadIndex(ctx, src)
			if err == nil {
				err = checkPageDirs(src, idx)
			}
			indexes[i], errs[i] = idx, err
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return indexes, nil
}

// checkPageDirs returns an error unless every unit in a source index has
// its page directory next to the index.
func checkPageDirs(src string, idx *docmerge.SearchIndex) error {
	for _, name := range idx.Names() {
		if err := requireDir(filepath.Join(src, name)); err != nil {
			return docmerge.Errorf(docmerge.EFORMAT, "search index in %s lists unit %q but %s has no %s directory", src, name, src, name)
		}
	}
	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("not a directory")
	}
	return nil
}
