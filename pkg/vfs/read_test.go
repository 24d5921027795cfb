package vfs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
	"github.com/marmos91/kvfs/pkg/vfs/kv/memory"
)

func TestReadDeliversSingleChunk(t *testing.T) {
	fs := newTestFS(t, "a/b.txt")

	calls := 0
	var got []byte
	n, err := fs.Read(context.Background(), "a/b.txt", func(chunk []byte) error {
		calls++
		got = append(got, chunk...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []byte("a/b.txt"), got)
	assert.Equal(t, int64(len("a/b.txt")), n)
}

func TestReadMissingIsNotFound(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Read(context.Background(), "nope", func([]byte) error { return nil })
	require.Error(t, err)
	assert.True(t, vfserrors.IsNotFound(err))

	var storeErr *vfserrors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "nope", storeErr.Path)
}

func TestReadEmptyPayloadStillCallsBack(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Write(context.Background(), "zero", FromChunks(nil))
	require.NoError(t, err)

	calls := 0
	n, err := fs.Read(context.Background(), "zero", func(chunk []byte) error {
		calls++
		assert.Empty(t, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, int64(0), n)
}

func TestReadNilCallback(t *testing.T) {
	fs := newTestFS(t, "x.txt")

	n, err := fs.Read(context.Background(), "x.txt", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len("x.txt")), n)
}

func TestReadCallbackErrorPropagates(t *testing.T) {
	fs := newTestFS(t, "x.txt")

	_, err := fs.Read(context.Background(), "x.txt", func([]byte) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestReadLegacyPayloads(t *testing.T) {
	// Records planted with legacy payload encodings decode to the same
	// bytes as natively written ones.
	store := memory.New()
	store.Seed("legacy-string.txt",
		[]byte(`{"name":"legacy-string.txt","kind":"file","payload":"old data","size":8}`))
	store.Seed("legacy-array.bin",
		[]byte(`{"name":"legacy-array.bin","kind":"file","payload":[1,2,3],"size":3}`))

	fs, err := New("legacy", store)
	require.NoError(t, err)

	var got []byte
	n, err := fs.Read(context.Background(), "legacy-string.txt", func(chunk []byte) error {
		got = chunk
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("old data"), got)
	assert.Equal(t, int64(8), n)

	n, err = fs.Read(context.Background(), "legacy-array.bin", func(chunk []byte) error {
		got = chunk
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, got)
	assert.Equal(t, int64(3), n)
}

func TestMetadataNeverExposesPayload(t *testing.T) {
	fs := newTestFS(t, "doc.txt")

	rec, err := fs.Metadata(context.Background(), "doc.txt")
	require.NoError(t, err)
	assert.Nil(t, rec.Payload)
	assert.Equal(t, kv.KindFile, rec.Kind)
	assert.Equal(t, int64(len("doc.txt")), rec.Size)
}

func TestMetadataMissingIsNotFound(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Metadata(context.Background(), "ghost")
	assert.True(t, vfserrors.IsNotFound(err))
}
