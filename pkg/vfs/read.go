package vfs

import (
	"context"
	"errors"
	"time"

	"github.com/marmos91/kvfs/internal/logger"
	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// Read fetches the record at path in one read-only transaction and delivers
// its payload to onChunk in a single call, returning the byte count.
//
// Absence is detected by the store's explicit not-found signal, never by an
// empty payload: a zero-length file is a valid record and still delivers one
// empty chunk. onChunk may be nil when only the byte count is wanted.
func (fs *Filesystem) Read(ctx context.Context, path string, onChunk func(chunk []byte) error) (n int64, err error) {
	start := time.Now()
	defer func() { fs.observe("read", start, err) }()

	rec, err := fs.fetch(ctx, path)
	if err != nil {
		return 0, err
	}

	if onChunk != nil {
		if err := onChunk(rec.Payload); err != nil {
			return 0, err
		}
	}

	n = int64(len(rec.Payload))
	if fs.metrics != nil {
		fs.metrics.AddBytesRead(n)
	}
	logger.Debug("read file",
		"fs", fs.name,
		"path", path,
		"bytes", n,
		"duration_ms", logger.Duration(start))

	return n, nil
}

// Metadata returns the record at path with its payload stripped. Same fetch
// as Read, but the payload never leaves this function.
func (fs *Filesystem) Metadata(ctx context.Context, path string) (rec *kv.Record, err error) {
	start := time.Now()
	defer func() { fs.observe("metadata", start, err) }()

	full, err := fs.fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	return full.StripPayload(), nil
}

// fetch reads one record by exact key inside a read-only transaction.
func (fs *Filesystem) fetch(ctx context.Context, path string) (*kv.Record, error) {
	sess, err := fs.session(ctx)
	if err != nil {
		return nil, err
	}

	var rec *kv.Record
	err = sess.View(ctx, func(tx kv.Txn) error {
		r, txErr := tx.Get(path)
		if errors.Is(txErr, kv.ErrKeyNotFound) {
			return vfserrors.NewNotFoundError(path)
		}
		if txErr != nil {
			return txErr
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, asStoreError("failed to fetch record", err)
	}

	return rec, nil
}
