// Package vfs implements a hierarchical filesystem view on top of a flat,
// transactional key-value store. Only file records are ever persisted;
// directories are synthesized at query time from common path prefixes.
//
// Every public operation obtains the memoized store session, runs exactly
// one transaction per store interaction, and settles exactly once. Remove is
// the exception to single-transaction scoping: it enumerates in one
// read-only transaction and deletes each matched file in its own read-write
// transaction, so a failure partway through leaves earlier deletions in
// place.
package vfs

import (
	"context"
	"errors"
	"sync"
	"time"

	vfserrors "github.com/marmos91/kvfs/pkg/vfs/errors"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// Separator is the virtual path separator.
const Separator = "/"

// Metrics receives operation observations. Implementations live in
// pkg/metrics; a nil Metrics disables observation with zero overhead.
type Metrics interface {
	// ObserveOp records one completed operation with its duration and outcome.
	ObserveOp(op string, d time.Duration, err error)

	// AddBytesRead records payload bytes delivered by Read.
	AddBytesRead(n int64)

	// AddBytesWritten records payload bytes persisted by Write.
	AddBytesWritten(n int64)
}

// Filesystem is the virtual filesystem over one key-value store.
type Filesystem struct {
	name    string
	store   kv.Store
	metrics Metrics

	openOnce sync.Once
	sess     kv.Session
	openErr  error
}

// Option configures a Filesystem.
type Option func(*Filesystem)

// WithMetrics attaches a metrics sink to the filesystem.
func WithMetrics(m Metrics) Option {
	return func(fs *Filesystem) {
		fs.metrics = m
	}
}

// New creates a filesystem over the given store. The name identifies the
// filesystem in logs and metrics. Both parameters are required; a missing
// one fails fast with a Config error.
func New(name string, store kv.Store, opts ...Option) (*Filesystem, error) {
	if name == "" {
		return nil, vfserrors.NewConfigError("filesystem name is required")
	}
	if store == nil {
		return nil, vfserrors.NewConfigError("key-value store is required")
	}

	fs := &Filesystem{
		name:  name,
		store: store,
	}
	for _, opt := range opts {
		opt(fs)
	}
	return fs, nil
}

// Name returns the filesystem name.
func (fs *Filesystem) Name() string {
	return fs.name
}

// session returns the store session, establishing it on first use. The
// session is memoized: every later call returns the same session or the
// same open error.
func (fs *Filesystem) session(ctx context.Context) (kv.Session, error) {
	fs.openOnce.Do(func() {
		sess, err := fs.store.Open(ctx)
		if err != nil {
			fs.openErr = vfserrors.NewConnectionError("failed to open store", err)
			return
		}
		if sess == nil {
			// Open returned no error but also no session.
			fs.openErr = vfserrors.NewConnectionError("store opened without a session", nil)
			return
		}
		fs.sess = sess
	})
	return fs.sess, fs.openErr
}

// Close releases the underlying store.
func (fs *Filesystem) Close() error {
	return fs.store.Close()
}

// observe reports one completed operation to the metrics sink, if any.
func (fs *Filesystem) observe(op string, start time.Time, err error) {
	if fs.metrics != nil {
		fs.metrics.ObserveOp(op, time.Since(start), err)
	}
}

// asStoreError passes vfs errors through unchanged and wraps anything else
// as a Transaction error, so callers only ever see the vfs taxonomy.
func asStoreError(message string, err error) error {
	var storeErr *vfserrors.StoreError
	if errors.As(err, &storeErr) {
		return err
	}
	return vfserrors.NewTransactionError(message, err)
}
