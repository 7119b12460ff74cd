package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fwojciec/docmerge"
)

// Problem is an inconsistency found in a merged site.
type Problem struct {
	Path    string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// Verify checks that a merged site is consistent: the crate list matches
// the search index, every indexed unit has its pages, and the entry point,
// if any, resolves. A missing or unreadable search index is returned as an
// error rather than a problem.
func Verify(ctx context.Context, store docmerge.IndexStore, root string) ([]Problem, error) {
	idx, err := store.ReadIndex(ctx, root)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	add := func(path, format string, args ...any) {
		problems = append(problems, Problem{Path: path, Message: fmt.Sprintf(format, args...)})
	}

	names := idx.Names()
	unique := slices.Clone(names)
	slices.Sort(unique)
	unique = slices.Compact(unique)
	if len(unique) != len(names) {
		add(filepath.Join(root, docmerge.SearchIndexFile), "search index lists some units more than once")
	}

	listPath := filepath.Join(root, docmerge.CrateListFile)
	switch listed, err := store.ReadCrateList(ctx, root); {
	case docmerge.ErrorCode(err) == docmerge.ENOTFOUND:
		add(listPath, "crate list is missing")
	case err != nil:
		add(listPath, "%s", docmerge.ErrorMessage(err))
	case !slices.Equal(listed, unique):
		add(listPath, "crate list %v does not match search index units %v", listed, unique)
	}

	for _, name := range unique {
		dir := filepath.Join(root, name)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			add(dir, "unit %q has no page directory", name)
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, docmerge.EntryPointFile)); err != nil {
			add(filepath.Join(dir, docmerge.EntryPointFile), "unit %q has no landing page", name)
		}
	}

	entry := filepath.Join(root, docmerge.EntryPointFile)
	if _, err := os.Lstat(entry); err == nil {
		if _, err := os.Stat(entry); err != nil {
			add(entry, "entry point does not resolve")
		}
	}
	return problems, nil
}
