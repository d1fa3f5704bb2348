// Package config loads and validates the node configuration from defaults, a
// TOML file and DEXD_ environment variables, in that priority order.
package config

import (
	"github.com/permadex/godexd/internal/core/types"
)

// Config is the complete node configuration.
type Config struct {
	Node    NodeConfig    `mapstructure:"node"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	History HistoryConfig `mapstructure:"history"`
	Genesis GenesisConfig `mapstructure:"genesis"`

	configPath string
}

// NodeConfig selects the ledger storage backend and its location.
type NodeConfig struct {
	DataDir   string `mapstructure:"data_dir"`
	DbBackend string `mapstructure:"db_backend"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Listen    string `mapstructure:"listen"`
	WsEnabled bool   `mapstructure:"ws_enabled"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// HistoryConfig configures the transaction history store.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// GenesisBalance seeds one account with one token at first startup.
type GenesisBalance struct {
	Account types.AccountID `mapstructure:"account"`
	Token   types.TokenID   `mapstructure:"token"`
	Amount  types.Balance   `mapstructure:"amount"`
}

// GenesisConfig holds balances applied once to an empty store.
type GenesisConfig struct {
	Balances []GenesisBalance `mapstructure:"balances"`
}

// GetConfigPath returns the path the config was loaded from, empty when only
// defaults and environment were used.
func (c *Config) GetConfigPath() string {
	return c.configPath
}
