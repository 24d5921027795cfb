package config

import (
	"fmt"

	"github.com/marmos91/kvfs/pkg/vfs/kv"
	"github.com/marmos91/kvfs/pkg/vfs/kv/badger"
	"github.com/marmos91/kvfs/pkg/vfs/kv/memory"
	"github.com/marmos91/kvfs/pkg/vfs/kv/sqlite"
)

// CreateStore creates a key-value store instance from configuration.
func CreateStore(cfg StoreConfig) (kv.Store, error) {
	switch cfg.Type {
	case "memory", "":
		return memory.New(), nil
	case "badger":
		store, err := badger.New(cfg.Badger)
		if err != nil {
			return nil, fmt.Errorf("invalid badger config: %w", err)
		}
		return store, nil
	case "sqlite":
		store, err := sqlite.New(cfg.Sqlite)
		if err != nil {
			return nil, fmt.Errorf("invalid sqlite config: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store type: %q", cfg.Type)
	}
}
