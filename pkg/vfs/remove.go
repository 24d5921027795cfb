package vfs

import (
	"context"
	"errors"
	"time"

	"github.com/marmos91/kvfs/internal/logger"
	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// Remove deletes the files matching path and returns the deleted paths in
// listing order.
//
// Enumeration and deletion are fused: every file the resolver visits is
// deleted as it is visited, each inside its own read-write transaction.
// Deletions are therefore not atomic as a batch, and a failure partway
// through leaves earlier deletions in place; when errors occurred the first
// one wins and the rest are discarded.
//
// With quiet set, failures (a missing path included) become successful
// no-ops and the error result is always nil.
func (fs *Filesystem) Remove(ctx context.Context, path string, recursive, quiet bool) (deleted []string, err error) {
	start := time.Now()
	defer func() { fs.observe("remove", start, err) }()

	sess, err := fs.session(ctx)
	if err != nil {
		return nil, err
	}

	deleted = []string{}
	var failures []error

	// The resolver visits file records only, so every rec here is deletable;
	// synthesized directory entries survive a non-recursive removal.
	deleteOne := func(rec *kv.Record) error {
		txErr := sess.Update(ctx, func(tx kv.Txn) error {
			// Re-fetch under the write transaction: the record may have been
			// deleted since enumeration.
			if _, getErr := tx.Get(rec.Name); errors.Is(getErr, kv.ErrKeyNotFound) {
				return vfserrors.NewNotFoundError(rec.Name)
			} else if getErr != nil {
				return getErr
			}
			return tx.Delete(rec.Name)
		})
		if txErr != nil {
			if !quiet {
				failures = append(failures, asStoreError("failed to delete record", txErr))
			}
			return nil
		}

		deleted = append(deleted, rec.Name)
		return nil
	}

	entries, err := fs.List(ctx, path, recursive, deleteOne)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		if quiet {
			return []string{}, nil
		}
		return nil, vfserrors.NewNotFoundError(path)
	}

	if len(failures) > 0 {
		return deleted, failures[0]
	}

	logger.Debug("removed files",
		"fs", fs.name,
		"path", path,
		"recursive", recursive,
		"deleted", len(deleted),
		"duration_ms", logger.Duration(start))

	return deleted, nil
}
