// Package badger provides a BadgerDB-backed kv.Store. It is the durable
// backend of choice for single-node deployments: an embedded LSM key-value
// database with serializable transactions.
package badger

import (
	"context"
	"encoding/binary"
	"fmt"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/marmos91/kvfs/internal/logger"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// schemaVersion is written under keySchemaVersion the first time a database
// is opened. Opening a database written by a newer version fails rather than
// risking silent misreads.
const schemaVersion uint32 = 1

// ============================================================================
// Database Key Namespace Design
// ============================================================================
//
// BadgerDB is a flat key-value store, so prefixed keys separate record data
// from store bookkeeping:
//
// Data Type        Prefix     Key Format         Value Type
// =============================================================
// File Records     "r:"       r:<path>           Record (JSON)
// Schema Version   "schema:"  schema:version     uint32 (binary)

const (
	prefixRecord     = "r:"
	keySchemaVersion = "schema:version"
)

// keyRecord generates the key for a file record: "r:<path>"
func keyRecord(name string) []byte {
	return []byte(prefixRecord + name)
}

// Config holds BadgerDB-specific store configuration.
type Config struct {
	// Path is the directory holding the database files.
	Path string `mapstructure:"path"`

	// InMemory runs BadgerDB without disk persistence. Path is ignored.
	InMemory bool `mapstructure:"in_memory"`
}

// Store is a BadgerDB-backed kv.Store.
type Store struct {
	cfg Config
	db  *badgerdb.DB
}

// New creates a BadgerDB store for the given configuration. The database is
// not opened until Open is called.
func New(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("badger store requires a path")
	}
	return &Store{cfg: cfg}, nil
}

// Open opens the database and runs the one-time schema initialization.
// Subsequent calls return a session over the already-open database.
func (s *Store) Open(ctx context.Context) (kv.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.db == nil {
		opts := badgerdb.DefaultOptions(s.cfg.Path).
			WithInMemory(s.cfg.InMemory).
			WithLogger(nil)

		db, err := badgerdb.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open badger database: %w", err)
		}

		if err := ensureSchema(db); err != nil {
			_ = db.Close()
			return nil, err
		}

		logger.Debug("badger database opened", "path", s.cfg.Path, "in_memory", s.cfg.InMemory)
		s.db = db
	}

	return &session{db: s.db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// ensureSchema writes the schema version on first open and rejects databases
// written by a newer schema.
func ensureSchema(db *badgerdb.DB) error {
	return db.Update(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(keySchemaVersion))
		if err == badgerdb.ErrKeyNotFound {
			return txn.Set([]byte(keySchemaVersion), encodeUint32(schemaVersion))
		}
		if err != nil {
			return err
		}

		var stored uint32
		err = item.Value(func(val []byte) error {
			stored, err = decodeUint32(val)
			return err
		})
		if err != nil {
			return err
		}

		if stored > schemaVersion {
			return fmt.Errorf("database schema version %d is newer than supported version %d", stored, schemaVersion)
		}
		return nil
	})
}

func encodeUint32(v uint32) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, v)
	return buf
}

func decodeUint32(val []byte) (uint32, error) {
	if len(val) != 4 {
		return 0, fmt.Errorf("invalid uint32 encoding: %d bytes", len(val))
	}
	return binary.BigEndian.Uint32(val), nil
}

// ============================================================================
// Session and Transactions
// ============================================================================

// session implements kv.Session over an open BadgerDB handle.
type session struct {
	db *badgerdb.DB
}

func (se *session) View(ctx context.Context, fn func(tx kv.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return se.db.View(func(btx *badgerdb.Txn) error {
		return fn(&txn{txn: btx})
	})
}

func (se *session) Update(ctx context.Context, fn func(tx kv.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return se.db.Update(func(btx *badgerdb.Txn) error {
		return fn(&txn{txn: btx, writable: true})
	})
}

// Close is a no-op: the database handle is owned by the Store.
func (se *session) Close() error {
	return nil
}

// txn wraps a BadgerDB transaction for the kv.Txn interface.
type txn struct {
	txn      *badgerdb.Txn
	writable bool
}

func (tx *txn) Get(name string) (*kv.Record, error) {
	item, err := tx.txn.Get(keyRecord(name))
	if err == badgerdb.ErrKeyNotFound {
		return nil, kv.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec *kv.Record
	err = item.Value(func(val []byte) error {
		r, decErr := kv.DecodeRecord(val)
		if decErr != nil {
			return decErr
		}
		rec = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return rec, nil
}

func (tx *txn) GetAll() ([]*kv.Record, error) {
	prefix := []byte(prefixRecord)
	opts := badgerdb.DefaultIteratorOptions
	opts.Prefix = prefix

	it := tx.txn.NewIterator(opts)
	defer it.Close()

	var records []*kv.Record
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		err := it.Item().Value(func(val []byte) error {
			rec, decErr := kv.DecodeRecord(val)
			if decErr != nil {
				return decErr
			}
			records = append(records, rec)
			return nil
		})
		if err != nil {
			return nil, err
		}
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
	return tx.txn.Set(keyRecord(rec.Name), data)
}

func (tx *txn) Delete(name string) error {
	if !tx.writable {
		return kv.ErrReadOnlyTxn
	}
	if _, err := tx.txn.Get(keyRecord(name)); err == badgerdb.ErrKeyNotFound {
		return kv.ErrKeyNotFound
	} else if err != nil {
		return err
	}
	return tx.txn.Delete(keyRecord(name))
}
