package commands

import (
	"github.com/marmos91/kvfs/pkg/config"
	"github.com/marmos91/kvfs/pkg/metrics"
	"github.com/marmos91/kvfs/pkg/metrics/prometheus"
	"github.com/marmos91/kvfs/pkg/vfs"
)

// openFilesystem builds the filesystem from configuration. The caller owns
// the returned filesystem and must Close it.
func openFilesystem(cfg *config.Config) (*vfs.Filesystem, error) {
	store, err := config.CreateStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	opts := []vfs.Option{}
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		if m := prometheus.NewVFSMetrics(); m != nil {
			opts = append(opts, vfs.WithMetrics(m))
		}
	}

	return vfs.New(cfg.Name, store, opts...)
}
