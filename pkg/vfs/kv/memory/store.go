// Package memory provides a mutex-guarded in-memory kv.Store, used by tests
// and as the default backend for ephemeral filesystems.
package memory

import (
	"context"
	"sync"

	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// Store is an in-memory key-value store.
//
// The store holds encoded record bytes rather than *kv.Record so that the
// codec path (including legacy payload decoding) is exercised exactly as it
// is by the durable backends.
type Store struct {
	mu      sync.RWMutex
	records map[string][]byte
	closed  bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		records: make(map[string][]byte),
	}
}

// Open implements kv.Store. The memory backend has no schema to initialize,
// so Open only hands out the session.
func (s *Store) Open(ctx context.Context) (kv.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &session{store: s}, nil
}

// Close implements kv.Store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Seed stores pre-encoded record bytes directly, bypassing the codec. Tests
// use it to plant legacy payload representations.
func (s *Store) Seed(name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[name] = data
}

// ============================================================================
// Session and Transactions
// ============================================================================

// session implements kv.Session over the shared maps.
//
// The global mutex is the transaction mechanism: a read-write transaction
// holds the write lock for its whole duration. There is no rollback buffer;
// if fn fails midway its earlier mutations persist, matching the no-rollback
// contract of the vfs layer.
type session struct {
	store *Store
}

func (se *session) View(ctx context.Context, fn func(tx kv.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	se.store.mu.RLock()
	defer se.store.mu.RUnlock()

	return fn(&txn{store: se.store})
}

func (se *session) Update(ctx context.Context, fn func(tx kv.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	se.store.mu.Lock()
	defer se.store.mu.Unlock()

	return fn(&txn{store: se.store, writable: true})
}

func (se *session) Close() error {
	return nil
}

// txn operates on the store maps while the session holds the lock.
type txn struct {
	store    *Store
	writable bool
}

func (tx *txn) Get(name string) (*kv.Record, error) {
	data, ok := tx.store.records[name]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	return kv.DecodeRecord(data)
}

func (tx *txn) GetAll() ([]*kv.Record, error) {
	records := make([]*kv.Record, 0, len(tx.store.records))
	for _, data := range tx.store.records {
		rec, err := kv.DecodeRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func (tx *txn) Put(rec *kv.Record) error {
	if !tx.writable {
		return kv.ErrReadOnlyTxn
	}
	data, err := kv.EncodeRecord(rec)
	if err != nil {
		return err
	}
	tx.store.records[rec.Name] = data
	return nil
}

func (tx *txn) Delete(name string) error {
	if !tx.writable {
		return kv.ErrReadOnlyTxn
	}
	if _, ok := tx.store.records[name]; !ok {
		return kv.ErrKeyNotFound
	}
	delete(tx.store.records, name)
	return nil
}
