package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadex/godexd/internal/storage/keyValueDb"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Node.DataDir)
	assert.Equal(t, keyValueDb.BackendPebble, cfg.Node.DbBackend)
	assert.Equal(t, "127.0.0.1:7180", cfg.Server.Listen)
	assert.True(t, cfg.Server.WsEnabled)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Genesis.Balances)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dexd.toml")
	content := `
[node]
data_dir = "/var/lib/dexd"
db_backend = "leveldb"

[server]
listen = "0.0.0.0:9000"
ws_enabled = false

[log]
level = "debug"

[[genesis.balances]]
account = "dxalice"
token = 1
amount = 500000

[[genesis.balances]]
account = "dxbob"
token = 0
amount = 100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/dexd", cfg.Node.DataDir)
	assert.Equal(t, keyValueDb.BackendLevelDB, cfg.Node.DbBackend)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Listen)
	assert.False(t, cfg.Server.WsEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	require.Len(t, cfg.Genesis.Balances, 2)
	assert.Equal(t, "dxalice", string(cfg.Genesis.Balances[0].Account))
	assert.EqualValues(t, 500000, cfg.Genesis.Balances[0].Amount)
	assert.Equal(t, path, cfg.GetConfigPath())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadConfig("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("bad backend", func(t *testing.T) {
		cfg := base()
		cfg.Node.DbBackend = "bolt"
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("bad listen address", func(t *testing.T) {
		cfg := base()
		cfg.Server.Listen = "nonsense"
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("bad log level", func(t *testing.T) {
		cfg := base()
		cfg.Log.Level = "loud"
		assert.Error(t, ValidateConfig(cfg))
	})

	t.Run("zero genesis amount", func(t *testing.T) {
		cfg := base()
		cfg.Genesis.Balances = []GenesisBalance{{Account: "dxalice", Token: 1, Amount: 0}}
		assert.Error(t, ValidateConfig(cfg))
	})
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DEXD_NODE_DB_BACKEND", "memory")
	t.Setenv("DEXD_LOG_LEVEL", "warn")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, keyValueDb.BackendMemory, cfg.Node.DbBackend)
	assert.Equal(t, "warn", cfg.Log.Level)
}
