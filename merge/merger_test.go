package merge_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/merge"
	"github.com/fwojciec/docmerge/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// site creates a directory holding a page directory for each unit.
func site(t *testing.T, units ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, u := range units {
		require.NoError(t, os.MkdirAll(filepath.Join(root, u), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, u, "index.html"), []byte(u), 0o644))
	}
	return root
}

func searchIndex(pairs ...string) *docmerge.SearchIndex {
	idx := &docmerge.SearchIndex{}
	for i := 0; i+1 < len(pairs); i += 2 {
		idx.Entries = append(idx.Entries, docmerge.Entry{Name: pairs[i], Record: json.RawMessage(pairs[i+1])})
	}
	return idx
}

// recordingMerger returns a Merger whose services record every call.
// Reads are answered from indexes, keyed by root.
func recordingMerger(indexes map[string]*docmerge.SearchIndex, calls *[]string) *merge.Merger {
	return &merge.Merger{
		Indexes: &mock.IndexStore{
			ReadIndexFn: func(_ context.Context, root string) (*docmerge.SearchIndex, error) {
				if idx, ok := indexes[root]; ok {
					return idx, nil
				}
				return nil, docmerge.Errorf(docmerge.ENOTFOUND, "%s not found", root)
			},
			WriteIndexFn: func(_ context.Context, root string, _ *docmerge.SearchIndex) error {
				*calls = append(*calls, "write "+root)
				return nil
			},
		},
		Uniter: &mock.Uniter{
			UniteFn: func(_ context.Context, src, dest string) (docmerge.UniteStats, error) {
				*calls = append(*calls, "unite "+src)
				return docmerge.UniteStats{}, nil
			},
		},
		Linker: &mock.Linker{
			LinkFn: func(_ context.Context, root, unit string) error {
				*calls = append(*calls, "link "+unit)
				return nil
			},
		},
	}
}

// Story: Running a merge
// Everything is read and checked first; writes happen only once the merge is known to succeed.

func TestMerger_RunsStepsInOrder(t *testing.T) {
	t.Parallel()

	// Given two sources and an existing destination
	a := site(t, "alpha")
	b := site(t, "beta", "alpha")
	dest := t.TempDir()
	var calls []string
	m := recordingMerger(map[string]*docmerge.SearchIndex{
		a: searchIndex("alpha", `1`),
		b: searchIndex("beta", `2`, "alpha", `3`),
	}, &calls)

	// When I merge them with an index unit
	result, err := m.Merge(context.Background(), merge.Request{
		Sources:   []string{a, b},
		Dest:      dest,
		IndexUnit: "alpha",
	})

	// Then sources are united in order, then the index is written, then linked
	require.NoError(t, err)
	assert.Equal(t, []string{"unite " + a, "unite " + b, "write " + dest, "link alpha"}, calls)
	assert.Equal(t, []string{"alpha", "beta"}, result.Merged.Names())
	assert.Equal(t, "alpha", result.Linked)
	assert.Nil(t, result.Previous)
}

func TestMerger_FailsBeforeWriting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setup    func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex)
		wantCode string
	}{
		{
			name: "index unit not merged",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a, b := site(t, "beta"), site(t, "gamma")
				return merge.Request{Sources: []string{a, b}, Dest: t.TempDir(), IndexUnit: "alpha"},
					map[string]*docmerge.SearchIndex{a: searchIndex("beta", `1`), b: searchIndex("gamma", `2`)}
			},
			wantCode: docmerge.EINVALID,
		},
		{
			name: "invalid index unit name",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a, b := site(t, "beta"), site(t, "gamma")
				return merge.Request{Sources: []string{a, b}, Dest: t.TempDir(), IndexUnit: "../beta"},
					map[string]*docmerge.SearchIndex{a: searchIndex("beta", `1`), b: searchIndex("gamma", `2`)}
			},
			wantCode: docmerge.EINVALID,
		},
		{
			name: "single source without destination index",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a := site(t, "alpha")
				return merge.Request{Sources: []string{a}, Dest: t.TempDir()},
					map[string]*docmerge.SearchIndex{a: searchIndex("alpha", `1`)}
			},
			wantCode: docmerge.EINVALID,
		},
		{
			name: "source without search index",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a, b := site(t, "alpha"), site(t, "beta")
				return merge.Request{Sources: []string{a, b}, Dest: t.TempDir()},
					map[string]*docmerge.SearchIndex{a: searchIndex("alpha", `1`)}
			},
			wantCode: docmerge.ENOTFOUND,
		},
		{
			name: "missing source directory",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a := site(t, "alpha")
				missing := filepath.Join(t.TempDir(), "missing")
				return merge.Request{Sources: []string{a, missing}, Dest: t.TempDir()},
					map[string]*docmerge.SearchIndex{a: searchIndex("alpha", `1`)}
			},
			wantCode: docmerge.ENOTFOUND,
		},
		{
			name: "missing destination",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a, b := site(t, "alpha"), site(t, "beta")
				dest := filepath.Join(t.TempDir(), "missing")
				return merge.Request{Sources: []string{a, b}, Dest: dest},
					map[string]*docmerge.SearchIndex{a: searchIndex("alpha", `1`), b: searchIndex("beta", `2`)}
			},
			wantCode: docmerge.ENOTFOUND,
		},
		{
			name: "empty destination",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a, b := site(t, "alpha"), site(t, "beta")
				return merge.Request{Sources: []string{a, b}},
					map[string]*docmerge.SearchIndex{a: searchIndex("alpha", `1`), b: searchIndex("beta", `2`)}
			},
			wantCode: docmerge.EINVALID,
		},
		{
			name: "unit without page directory",
			setup: func(t *testing.T) (merge.Request, map[string]*docmerge.SearchIndex) {
				a, b := site(t, "alpha"), site(t)
				return merge.Request{Sources: []string{a, b}, Dest: t.TempDir()},
					map[string]*docmerge.SearchIndex{a: searchIndex("alpha", `1`), b: searchIndex("beta", `2`)}
			},
			wantCode: docmerge.EFORMAT,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, indexes := tt.setup(t)
			var calls []string
			m := recordingMerger(indexes, &calls)

			_, err := m.Merge(context.Background(), req)

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, docmerge.ErrorCode(err))
			assert.Empty(t, calls, "nothing should be written")
		})
	}
}

func TestMerger_CorruptDestinationIndexAborts(t *testing.T) {
	t.Parallel()

	a, b, dest := site(t, "alpha"), site(t, "beta"), t.TempDir()
	var calls []string
	sources := map[string]*docmerge.SearchIndex{
		a: searchIndex("alpha", `1`),
		b: searchIndex("beta", `2`),
	}
	m := recordingMerger(sources, &calls)
	m.Indexes.(*mock.IndexStore).ReadIndexFn = func(_ context.Context, root string) (*docmerge.SearchIndex, error) {
		if root == dest {
			return nil, docmerge.Errorf(docmerge.EFORMAT, "garbage")
		}
		return sources[root], nil
	}

	_, err := m.Merge(context.Background(), merge.Request{Sources: []string{a, b}, Dest: dest})

	assert.Equal(t, docmerge.EFORMAT, docmerge.ErrorCode(err))
	assert.Equal(t, "garbage", docmerge.ErrorMessage(err))
	assert.Empty(t, calls)
}

func TestMerger_SingleSourceUpdatesExistingDestination(t *testing.T) {
	t.Parallel()

	// Given a destination that was merged before
	a, dest := site(t, "alpha"), t.TempDir()
	var calls []string
	m := recordingMerger(map[string]*docmerge.SearchIndex{
		a:    searchIndex("alpha", `"new"`),
		dest: searchIndex("alpha", `"old"`, "beta", `"b"`),
	}, &calls)

	// When I merge one updated source into it
	result, err := m.Merge(context.Background(), merge.Request{Sources: []string{a}, Dest: dest})

	// Then the destination counts as the second source
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, result.Merged.Names())
	rec, _ := result.Merged.Lookup("alpha")
	assert.Equal(t, `"new"`, string(rec))
	assert.Equal(t, []merge.Change{
		{Unit: "alpha", Status: merge.StatusUpdated, Source: a, Digest: merge.Digest([]byte(`"new"`))},
		{Unit: "beta", Status: merge.StatusUnchanged, Digest: merge.Digest([]byte(`"b"`))},
	}, result.Changes)
	assert.Equal(t, []string{"unite " + a, "write " + dest}, calls)
}

func TestMerger_DryRunWritesNothing(t *testing.T) {
	t.Parallel()

	a, b := site(t, "alpha"), site(t, "beta")
	dest := filepath.Join(t.TempDir(), "new-site")
	var calls []string
	m := recordingMerger(map[string]*docmerge.SearchIndex{
		a: searchIndex("alpha", `1`),
		b: searchIndex("beta", `2`),
	}, &calls)

	result, err := m.Merge(context.Background(), merge.Request{
		Sources:    []string{a, b},
		Dest:       dest,
		IndexUnit:  "beta",
		CreateDest: true,
		DryRun:     true,
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, result.Merged.Names())
	assert.Empty(t, result.Linked)
	assert.Empty(t, calls)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "dry run must not create the destination")
}

func TestMerger_CreatesDestination(t *testing.T) {
	t.Parallel()

	a, b := site(t, "alpha"), site(t, "beta")
	dest := filepath.Join(t.TempDir(), "new-site")
	var calls []string
	m := recordingMerger(map[string]*docmerge.SearchIndex{
		a: searchIndex("alpha", `1`),
		b: searchIndex("beta", `2`),
	}, &calls)

	_, err := m.Merge(context.Background(), merge.Request{Sources: []string{a, b}, Dest: dest, CreateDest: true})

	require.NoError(t, err)
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, []string{"unite " + a, "unite " + b, "write " + dest}, calls)
}

func TestMerger_PropagatesWriteErrors(t *testing.T) {
	t.Parallel()

	a, b, dest := site(t, "alpha"), site(t, "beta"), t.TempDir()
	var calls []string
	m := recordingMerger(map[string]*docmerge.SearchIndex{
		a: searchIndex("alpha", `1`),
		b: searchIndex("beta", `2`),
	}, &calls)
	m.Indexes.(*mock.IndexStore).WriteIndexFn = func(context.Context, string, *docmerge.SearchIndex) error {
		return os.ErrPermission
	}

	_, err := m.Merge(context.Background(), merge.Request{Sources: []string{a, b}, Dest: dest, IndexUnit: "alpha"})

	assert.ErrorIs(t, err, os.ErrPermission)
	assert.NotContains(t, calls, "link alpha")
}

func TestMerger_ReportsEarliestSourceError(t *testing.T) {
	t.Parallel()

	// Given several sources whose indexes all fail to read
	sources := []string{site(t), site(t), site(t), site(t), site(t)}
	var calls []string
	m := recordingMerger(map[string]*docmerge.SearchIndex{}, &calls)
	m.Concurrency = 2

	// When I merge them
	_, err := m.Merge(context.Background(), merge.Request{Sources: sources, Dest: t.TempDir()})

	// Then the error names the first source regardless of read order
	require.Error(t, err)
	assert.Equal(t, sources[0]+" not found", docmerge.ErrorMessage(err))
}
