package mock

import (
	"context"

	"github.com/fwojciec/docmerge"
)

var _ docmerge.IndexStore = (*IndexStore)(nil)

// IndexStore is a mock implementation of docmerge.IndexStore.
type IndexStore struct {
	ReadIndexFn     func(ctx context.Context, root string) (*docmerge.SearchIndex, error)
	ReadCrateListFn func(ctx context.Context, root string) ([]string, error)
	WriteIndexFn    func(ctx context.Context, root string, idx *docmerge.SearchIndex) error
}

func (s *IndexStore) ReadIndex(ctx context.Context, root string) (*docmerge.SearchIndex, error) {
	return s.ReadIndexFn(ctx, root)
}

func (s *IndexStore) ReadCrateList(ctx context.Context, root string) ([]string, error) {
	return s.ReadCrateListFn(ctx, root)
}

func (s *IndexStore) WriteIndex(ctx context.Context, root string, idx *docmerge.SearchIndex) error {
	return s.WriteIndexFn(ctx, root, idx)
}
