// Package kv defines the boundary to the flat, transactional key-value
// engine the virtual filesystem is built on. The engine has no notion of
// directories or prefix scans: it supports get, get-all, put and delete on
// string keys, scoped to declared read-only or read-write transactions.
//
// Backends live in the sub-packages badger, sqlite and memory. All of them
// must pass the conformance suite in pkg/vfs/vfstest.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Txn.Get when no record exists at the exact
// key. Callers must check for this sentinel explicitly: an empty payload is
// a valid stored value and must not be confused with absence.
var ErrKeyNotFound = errors.New("kv: key not found")

// ErrReadOnlyTxn is returned when Put or Delete is attempted inside a
// transaction opened with View.
var ErrReadOnlyTxn = errors.New("kv: put or delete inside read-only transaction")

// Store is a handle to a key-value engine. Opening is expected to be
// expensive (schema initialization, file locks) and is performed once; the
// vfs layer memoizes the returned Session.
type Store interface {
	// Open establishes the session, running the backend's one-time schema
	// initialization if the underlying database is new.
	Open(ctx context.Context) (Session, error)

	// Close releases the engine. Sessions obtained from Open become invalid.
	Close() error
}

// Session is an established connection to the engine. Each call scopes one
// transaction to the lifetime of the supplied function: the transaction
// commits when fn returns nil and is discarded when fn returns an error.
type Session interface {
	// View runs fn in a read-only transaction.
	View(ctx context.Context, fn func(tx Txn) error) error

	// Update runs fn in a read-write transaction.
	Update(ctx context.Context, fn func(tx Txn) error) error

	// Close releases the session.
	Close() error
}

// Txn exposes the engine's primitives inside one transaction. The engine is
// flat: keys carry no hierarchy, and there is no prefix scan, so listing is
// always GetAll followed by filtering in the caller.
type Txn interface {
	// Get returns the record stored at the exact key, or ErrKeyNotFound.
	Get(name string) (*Record, error)

	// GetAll returns every stored record, in unspecified order.
	GetAll() ([]*Record, error)

	// Put stores the record under its Name, replacing any previous record.
	Put(rec *Record) error

	// Delete removes the record at the exact key, or returns ErrKeyNotFound.
	Delete(name string) error
}
