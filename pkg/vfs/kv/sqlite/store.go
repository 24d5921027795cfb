// Package sqlite provides a SQLite-backed kv.Store using GORM with the pure
// Go glebarez driver. Records map to a single table with the virtual path as
// primary key; SQLite's transactions provide the read-only/read-write
// isolation the kv contract requires.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/marmos91/kvfs/internal/logger"
	"github.com/marmos91/kvfs/pkg/vfs/kv"
)

// Config holds SQLite-specific store configuration.
type Config struct {
	// Path is the database file. ":memory:" runs fully in memory.
	Path string `mapstructure:"path"`
}

// recordRow is the GORM model for stored records.
type recordRow struct {
	Name       string    `gorm:"primaryKey;column:name"`
	Payload    []byte    `gorm:"column:payload"`
	Size       int64     `gorm:"column:size"`
	ModifiedAt time.Time `gorm:"column:modified_at"`
}

// TableName overrides the GORM default pluralization.
func (recordRow) TableName() string {
	return "records"
}

func (r *recordRow) toRecord() *kv.Record {
	return &kv.Record{
		Name:       r.Name,
		Kind:       kv.KindFile,
		Payload:    r.Payload,
		Size:       r.Size,
		ModifiedAt: r.ModifiedAt,
	}
}

// Store is a SQLite-backed kv.Store.
type Store struct {
	cfg Config
	db  *gorm.DB
}

// New creates a SQLite store for the given configuration. The database is
// not opened until Open is called.
func New(cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite store requires a path")
	}
	return &Store{cfg: cfg}, nil
}

// Open opens the database and migrates the records table. Subsequent calls
// return a session over the already-open database.
func (s *Store) Open(ctx context.Context) (kv.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.db == nil {
		db, err := gorm.Open(sqlite.Open(s.cfg.Path), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}

		if err := db.AutoMigrate(&recordRow{}); err != nil {
			return nil, fmt.Errorf("failed to migrate records table: %w", err)
		}

		logger.Debug("sqlite database opened", "path", s.cfg.Path)
		s.db = db
	}

	return &session{db: s.db}, nil
}

// Close closes the underlying database connection pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	s.db = nil
	return sqlDB.Close()
}

// ============================================================================
// Session and Transactions
// ============================================================================

// session implements kv.Session over an open GORM handle.
type session struct {
	db *gorm.DB
}

func (se *session) View(ctx context.Context, fn func(tx kv.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return se.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&txn{db: gtx})
	})
}

func (se *session) Update(ctx context.Context, fn func(tx kv.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return se.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&txn{db: gtx, writable: true})
	})
}

// Close is a no-op: the connection pool is owned by the Store.
func (se *session) Close() error {
	return nil
}

// txn wraps a GORM transaction for the kv.Txn interface.
type txn struct {
	db       *gorm.DB
	writable bool
}

func (tx *txn) Get(name string) (*kv.Record, error) {
	var row recordRow
	err := tx.db.First(&row, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, kv.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.toRecord(), nil
}

func (tx *txn) GetAll() ([]*kv.Record, error) {
	var rows []recordRow
	if err := tx.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*kv.Record, 0, len(rows))
	for i := range rows {
		records = append(records, rows[i].toRecord())
	}
	return records, nil
}

func (tx *txn) Put(rec *kv.Record) error {
	if !tx.writable {
		return kv.ErrReadOnlyTxn
	}
	row := recordRow{
		Name:       rec.Name,
		Payload:    rec.Payload,
		Size:       rec.Size,
		ModifiedAt: rec.ModifiedAt,
	}
	return tx.db.Save(&row).Error
}

func (tx *txn) Delete(name string) error {
	if !tx.writable {
		return kv.ErrReadOnlyTxn
	}
	res := tx.db.Delete(&recordRow{}, "name = ?", name)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return kv.ErrKeyNotFound
	}
	return nil
}
