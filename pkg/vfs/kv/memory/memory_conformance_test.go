package memory_test

import (
	"testing"

	"github.com/marmos91/kvfs/pkg/vfs/kv"
	"github.com/marmos91/kvfs/pkg/vfs/kv/memory"
	"github.com/marmos91/kvfs/pkg/vfs/vfstest"
)

func TestConformance(t *testing.T) {
	vfstest.RunConformanceSuite(t, func(t *testing.T) kv.Store {
		return memory.New()
	})
}
