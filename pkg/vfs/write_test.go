package vfs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv/memory"
)

func TestWriteAggregatesChunks(t *testing.T) {
	fs := newTestFS(t)

	n, err := fs.Write(context.Background(), "f.txt", FromChunks([][]byte{
		[]byte("one "),
		[]byte("two "),
		[]byte("three"),
	}))
	require.NoError(t, err)
	assert.Equal(t, int64(13), n)

	var got []byte
	_, err = fs.Read(context.Background(), "f.txt", func(chunk []byte) error {
		got = append(got, chunk...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("one two three"), got)
}

func TestWriteFromReader(t *testing.T) {
	fs := newTestFS(t)

	content := strings.Repeat("payload ", 10000)
	n, err := fs.Write(context.Background(), "big.txt", FromReader(strings.NewReader(content)))
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)

	rec, err := fs.Metadata(context.Background(), "big.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), rec.Size)
	assert.False(t, rec.ModifiedAt.IsZero())
}

func TestWriteToleratesEmptyYields(t *testing.T) {
	fs := newTestFS(t)

	// Four empty yields between chunks stay under the tolerance.
	chunks := [][]byte{
		[]byte("head"),
		nil, nil, nil, nil,
		[]byte("tail"),
	}
	n, err := fs.Write(context.Background(), "sparse.txt", FromChunks(chunks))
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
}

func TestWriteStopsAfterEmptyYieldLimit(t *testing.T) {
	fs := newTestFS(t)

	// Five consecutive empty yields exhaust the source; the trailing chunk
	// is never pulled.
	chunks := [][]byte{
		[]byte("head"),
		nil, nil, nil, nil, nil,
		[]byte("never"),
	}
	n, err := fs.Write(context.Background(), "truncated.txt", FromChunks(chunks))
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestWriteSourceErrorPropagates(t *testing.T) {
	fs := newTestFS(t)

	boom := errors.New("producer failed")
	data := make(chan []byte, 1)
	errc := make(chan error, 1)
	data <- []byte("partial")
	errc <- boom

	src := FromChannels(data, errc)
	// Drain the buffered chunk first so the error arrives next.
	chunk, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("partial"), chunk)

	_, err = fs.Write(context.Background(), "failed.txt", src)
	assert.ErrorIs(t, err, boom)

	// Nothing was persisted.
	_, err = fs.Metadata(context.Background(), "failed.txt")
	assert.True(t, vfserrors.IsNotFound(err))
}

func TestWriteFromChannels(t *testing.T) {
	fs := newTestFS(t)

	data := make(chan []byte, 3)
	data <- []byte("push ")
	data <- []byte("style")
	close(data)

	n, err := fs.Write(context.Background(), "pushed.txt", FromChannels(data, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
}

func TestWriteFromChannelsIgnoresEmptyPushes(t *testing.T) {
	fs := newTestFS(t)

	// A pushed producer may emit any number of empty chunks; the write still
	// collects everything through the close.
	data := make(chan []byte, 8)
	data <- []byte("head")
	for i := 0; i < 5; i++ {
		data <- []byte{}
	}
	data <- []byte("tail")
	close(data)

	n, err := fs.Write(context.Background(), "pushed-sparse.txt", FromChannels(data, nil))
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)

	var got []byte
	_, err = fs.Read(context.Background(), "pushed-sparse.txt", func(chunk []byte) error {
		got = append(got, chunk...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("headtail"), got)
}

func TestWriteValidatesArguments(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Write(context.Background(), "", FromBytes([]byte("x")))
	var storeErr *vfserrors.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, vfserrors.ErrInvalidArgument, storeErr.Code)

	_, err = fs.Write(context.Background(), "x", nil)
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, vfserrors.ErrInvalidArgument, storeErr.Code)
}

func TestWriteEmptySource(t *testing.T) {
	fs := newTestFS(t)

	n, err := fs.Write(context.Background(), "empty.txt", FromReader(bytes.NewReader(nil)))
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	rec, err := fs.Metadata(context.Background(), "empty.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Size)
}

func TestNewValidatesParameters(t *testing.T) {
	_, err := New("", memory.New())
	assert.True(t, vfserrors.IsConfig(err))

	_, err = New("fs", nil)
	assert.True(t, vfserrors.IsConfig(err))
}
