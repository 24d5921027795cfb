package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/kvfs/internal/bytesize"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, Validate(cfg))

	assert.Equal(t, "kvfs", cfg.Name)
	assert.Equal(t, "memory", cfg.Store.Type)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, 32*bytesize.MiB, cfg.Server.MaxBodySize)
}

func TestApplyDefaultsPreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Name: "custom",
		Logging: LoggingConfig{
			Level: "debug",
		},
		Server: ServerConfig{
			Listen:      "0.0.0.0:9999",
			MaxBodySize: bytesize.GiB,
		},
	}
	ApplyDefaults(cfg)

	assert.Equal(t, "custom", cfg.Name)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "0.0.0.0:9999", cfg.Server.Listen)
	assert.Equal(t, bytesize.GiB, cfg.Server.MaxBodySize)
	// Untouched fields still get defaults.
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
name: staging
logging:
  level: debug
  format: json
store:
  type: sqlite
  sqlite:
    path: /tmp/records.db
server:
  listen: 127.0.0.1:9090
  request_timeout: 5s
  max_body_size: 8Mi
metrics:
  enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Name)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "/tmp/records.db", cfg.Store.Sqlite.Path)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Listen)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 8*bytesize.MiB, cfg.Server.MaxBodySize)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsUnknownStoreType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  type: etcd\n"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Name = "saved"
	cfg.Server.MaxBodySize = 8 * bytesize.MiB
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.Name)
	assert.Equal(t, 8*bytesize.MiB, loaded.Server.MaxBodySize)
	assert.Equal(t, cfg.Server.RequestTimeout, loaded.Server.RequestTimeout)
}

func TestCreateStoreUnknownType(t *testing.T) {
	_, err := CreateStore(StoreConfig{Type: "etcd"})
	assert.Error(t, err)
}

func TestCreateStoreMemory(t *testing.T) {
	store, err := CreateStore(StoreConfig{Type: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, store)
}
