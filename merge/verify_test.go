package merge_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/docmerge"
	"github.com/fwojciec/docmerge/fs"
	"github.com/fwojciec/docmerge/merge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Checking a merged site
// Problems are reported one per path so they can be fixed independently.

func TestVerify_ConsistentSite(t *testing.T) {
	t.Parallel()

	root := rustdocSite(t, searchIndex("alpha", `{}`, "beta", `{}`))

	problems, err := merge.Verify(context.Background(), fs.NewIndexStore(), root)

	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestVerify_ReportsProblems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		breakIt  func(t *testing.T, root string)
		wantPath string
	}{
		{
			name: "missing crate list",
			breakIt: func(t *testing.T, root string) {
				require.NoError(t, os.Remove(filepath.Join(root, docmerge.CrateListFile)))
			},
			wantPath: docmerge.CrateListFile,
		},
		{
			name: "stale crate list",
			breakIt: func(t *testing.T, root string) {
				data := []byte(`window.ALL_CRATES = ["alpha"];`)
				require.NoError(t, os.WriteFile(filepath.Join(root, docmerge.CrateListFile), data, 0o644))
			},
			wantPath: docmerge.CrateListFile,
		},
		{
			name: "malformed crate list",
			breakIt: func(t *testing.T, root string) {
				require.NoError(t, os.WriteFile(filepath.Join(root, docmerge.CrateListFile), []byte("nope"), 0o644))
			},
			wantPath: docmerge.CrateListFile,
		},
		{
			name: "missing page directory",
			breakIt: func(t *testing.T, root string) {
				require.NoError(t, os.RemoveAll(filepath.Join(root, "beta")))
			},
			wantPath: "beta",
		},
		{
			name: "missing landing page",
			breakIt: func(t *testing.T, root string) {
				require.NoError(t, os.Remove(filepath.Join(root, "beta", "index.html")))
			},
			wantPath: filepath.Join("beta", "index.html"),
		},
		{
			name: "dangling entry point",
			breakIt: func(t *testing.T, root string) {
				require.NoError(t, os.Symlink(filepath.Join("gone", "index.html"), filepath.Join(root, docmerge.EntryPointFile)))
			},
			wantPath: docmerge.EntryPointFile,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root := rustdocSite(t, searchIndex("alpha", `{}`, "beta", `{}`))
			tt.breakIt(t, root)

			problems, err := merge.Verify(context.Background(), fs.NewIndexStore(), root)

			require.NoError(t, err)
			require.Len(t, problems, 1)
			assert.Equal(t, filepath.Join(root, tt.wantPath), problems[0].Path)
			assert.Contains(t, problems[0].String(), problems[0].Message)
		})
	}
}

func TestVerify_DuplicateUnits(t *testing.T) {
	t.Parallel()

	root := rustdocSite(t, searchIndex("alpha", `{}`))
	data := []byte("var searchIndex = new Map(JSON.parse('[\\\n[\"alpha\",{}],\\\n[\"alpha\",{}]\\\n]'));\n")
	require.NoError(t, os.WriteFile(filepath.Join(root, docmerge.SearchIndexFile), data, 0o644))

	problems, err := merge.Verify(context.Background(), fs.NewIndexStore(), root)

	require.NoError(t, err)
	require.Len(t, problems, 1)
	assert.Equal(t, filepath.Join(root, docmerge.SearchIndexFile), problems[0].Path)
}

func TestVerify_MissingIndexIsAnError(t *testing.T) {
	t.Parallel()

	_, err := merge.Verify(context.Background(), fs.NewIndexStore(), t.TempDir())

	assert.Equal(t, docmerge.ENOTFOUND, docmerge.ErrorCode(err))
}
