package vfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
)

func TestRemoveSingleFile(t *testing.T) {
	fs := newTestFS(t, "a.txt", "b.txt")

	deleted, err := fs.Remove(context.Background(), "a.txt", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.txt"}, deleted)

	entries, err := fs.List(context.Background(), "", true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, entryNames(entries))
}

func TestRemoveRecursiveDeletesSubtree(t *testing.T) {
	fs := newTestFS(t, "a/x.txt", "a/sub/deep.txt", "a/y.txt", "b.txt")

	deleted, err := fs.Remove(context.Background(), "a", true, false)
	require.NoError(t, err)

	// Deletions follow listing order.
	assert.Equal(t, []string{"a/sub/deep.txt", "a/x.txt", "a/y.txt"}, deleted)

	entries, err := fs.List(context.Background(), "", true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, entryNames(entries))
}

func TestRemoveMissingPath(t *testing.T) {
	fs := newTestFS(t, "a.txt")

	_, err := fs.Remove(context.Background(), "ghost", false, false)
	assert.True(t, vfserrors.IsNotFound(err))
}

func TestRemoveMissingPathQuiet(t *testing.T) {
	fs := newTestFS(t, "a.txt")

	deleted, err := fs.Remove(context.Background(), "ghost", false, true)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestRemoveNonRecursiveSkipsDirectories(t *testing.T) {
	fs := newTestFS(t, "a/x.txt", "a/y.txt", "b.txt")

	// Non-recursive listing of the root collapses a/ into a directory entry;
	// directory entries are never visited, so only the plain file is deleted.
	deleted, err := fs.Remove(context.Background(), "", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt"}, deleted)

	entries, err := fs.List(context.Background(), "", true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x.txt", "a/y.txt"}, entryNames(entries))
}

func TestRemoveExactMatchShortCircuits(t *testing.T) {
	fs := newTestFS(t, "a", "a/x.txt")

	deleted, err := fs.Remove(context.Background(), "a", false, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, deleted)

	// The children survive the exact-match removal.
	entries, err := fs.List(context.Background(), "", true, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/x.txt"}, entryNames(entries))
}
