//go:build integration

package badger_test

import (
	"path/filepath"
	"testing"

	"github.com/marmos91/kvfs/pkg/vfs/kv"
	"github.com/marmos91/kvfs/pkg/vfs/kv/badger"
	"github.com/marmos91/kvfs/pkg/vfs/vfstest"
)

func TestConformance(t *testing.T) {
	vfstest.RunConformanceSuite(t, func(t *testing.T) kv.Store {
		store, err := badger.New(badger.Config{
			Path: filepath.Join(t.TempDir(), "records.db"),
		})
		if err != nil {
			t.Fatalf("badger.New() failed: %v", err)
		}
		return store
	})
}

func TestConformanceInMemory(t *testing.T) {
	vfstest.RunConformanceSuite(t, func(t *testing.T) kv.Store {
		store, err := badger.New(badger.Config{InMemory: true})
		if err != nil {
			t.Fatalf("badger.New() failed: %v", err)
		}
		return store
	})
}
