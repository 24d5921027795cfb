package vfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/kvfs/pkg/vfs/kv"
	"github.com/marmos91/kvfs/pkg/vfs/kv/memory"
)

// newTestFS builds a filesystem over a fresh memory store seeded with the
// given paths, each file's payload being its own path.
func newTestFS(t *testing.T, paths ...string) *Filesystem {
	t.Helper()

	fs, err := New("test", memory.New())
	require.NoError(t, err)
	t.Cleanup(func() { _ = fs.Close() })

	for _, path := range paths {
		_, err := fs.Write(context.Background(), path, FromBytes([]byte(path)))
		require.NoError(t, err)
	}
	return fs
}

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func TestListRecursiveSortsByName(t *testing.T) {
	fs := newTestFS(t, "z.txt", "a/m.txt", "a/b/x.txt", "b.txt")

	entries, err := fs.List(context.Background(), "", true, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a/b/x.txt", "a/m.txt", "b.txt", "z.txt"}, entryNames(entries))
	for _, entry := range entries {
		assert.Equal(t, kv.KindFile, entry.Kind)
		assert.NotNil(t, entry.Record)
	}
}

func TestListNonRecursiveSynthesizesDirectories(t *testing.T) {
	fs := newTestFS(t, "a/x.txt", "a/y.txt", "a/sub/deep.txt", "b.txt")

	entries, err := fs.List(context.Background(), "", false, nil)
	require.NoError(t, err)

	// Everything under a/ collapses into the one directory entry.
	assert.Equal(t, []string{"a/", "b.txt"}, entryNames(entries))
	assert.True(t, entries[0].IsDir())
	assert.Nil(t, entries[0].Record)
	assert.False(t, entries[1].IsDir())
}

func TestListPrefixFiltersRawPrefix(t *testing.T) {
	fs := newTestFS(t, "a/x.txt", "a/sub/deep.txt", "ab.txt", "b.txt")

	// A bare prefix matches any name that starts with it, sibling files
	// included; synthesis still happens past the separator boundary.
	plain, err := fs.List(context.Background(), "a", false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/sub/", "a/x.txt", "ab.txt"}, entryNames(plain))

	// A separator-terminated prefix confines the listing to the subtree.
	withSep, err := fs.List(context.Background(), "a/", false, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/sub/", "a/x.txt"}, entryNames(withSep))
}

func TestListExactMatchShortCircuits(t *testing.T) {
	fs := newTestFS(t, "a", "a/x.txt", "a/y.txt")

	entries, err := fs.List(context.Background(), "a", false, nil)
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, kv.KindFile, entries[0].Kind)
}

func TestListExactMatchRecursiveDoesNotShortCircuit(t *testing.T) {
	fs := newTestFS(t, "a", "a/x.txt", "a/y.txt")

	entries, err := fs.List(context.Background(), "a", true, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "a/x.txt", "a/y.txt"}, entryNames(entries))
}

func TestListNoMatches(t *testing.T) {
	fs := newTestFS(t, "a/x.txt")

	entries, err := fs.List(context.Background(), "nothing", false, nil)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestListVisitorSeesOnlyFiles(t *testing.T) {
	fs := newTestFS(t, "a/x.txt", "a/y.txt", "b.txt")

	var visited []string
	_, err := fs.List(context.Background(), "", false, func(rec *kv.Record) error {
		visited = append(visited, rec.Name)
		return nil
	})
	require.NoError(t, err)

	// The a/ directory entry is not visited.
	assert.Equal(t, []string{"b.txt"}, visited)
}

func TestListVisitorExactMatch(t *testing.T) {
	fs := newTestFS(t, "a", "a/x.txt")

	var visited []string
	entries, err := fs.List(context.Background(), "a", false, func(rec *kv.Record) error {
		visited = append(visited, rec.Name)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, entries, 1)
	assert.Equal(t, []string{"a"}, visited)
}

func TestListVisitorErrorAborts(t *testing.T) {
	fs := newTestFS(t, "a.txt", "b.txt")

	boom := assert.AnError
	_, err := fs.List(context.Background(), "", true, func(rec *kv.Record) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
}
