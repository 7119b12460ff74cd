package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/rustdoc"
)

// Ensure IndexStore implements docmerge.IndexStore at compile time.
var _ docmerge.IndexStore = (*IndexStore)(nil)

// IndexStore reads and writes the search index and crate list at the root
// of a site on the local filesystem.
type IndexStore struct{}

// NewIndexStore creates a new IndexStore.
func NewIndexStore() *IndexStore {
	return &IndexStore{}
}

func (s *IndexStore) ReadIndex(ctx context.Context, root string) (*docmerge.SearchIndex, error) {
	path := filepath.Join(root, docmerge.SearchIndexFile)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	idx, err := rustdoc.DecodeSearchIndex(data)
	if err != nil {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "%s: %s", path, docmerge.ErrorMessage(err))
	}
	return idx, nil
}

func (s *IndexStore) ReadCrateList(ctx context.Context, root string) ([]string, error) {
	path := filepath.Join(root, docmerge.CrateListFile)
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	names, err := rustdoc.DecodeCrateList(data)
	if err != nil {
		return nil, docmerge.Errorf(docmerge.EFORMAT, "%s: %s", path, docmerge.ErrorMessage(err))
	}
	return names, nil
}

// WriteIndex writes the search index first and the crate list derived from
// it second. Both files are encoded before either is written.
func (s *IndexStore) WriteIndex(ctx context.Context, root string, idx *docmerge.SearchIndex) error {
	index, err := rustdoc.EncodeSearchIndex(idx)
	if err != nil {
		return err
	}
	crates, err := rustdoc.EncodeCrateList(idx.Names())
	if err != nil {
		return err
	}

	if err := WriteFileAtomic(filepath.Join(root, docmerge.SearchIndexFile), index, 0o644); err != nil {
		return err
	}
	return WriteFileAtomic(filepath.Join(root, docmerge.CrateListFile), crates, 0o644)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, docmerge.Errorf(docmerge.ENOTFOUND, "%s not found", path)
	} else if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
