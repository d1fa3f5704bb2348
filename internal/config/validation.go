package config

import (
	"fmt"
	"net"

	"github.com/permadex/godexd/internal/storage/keyValueDb"
)

var validBackends = map[string]bool{
	keyValueDb.BackendPebble:  true,
	keyValueDb.BackendLevelDB: true,
	keyValueDb.BackendMemory:  true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig rejects configurations the node cannot start with.
func ValidateConfig(c *Config) error {
	if c.Node.DataDir == "" {
		return fmt.Errorf("node.data_dir cannot be empty")
	}
	if !validBackends[c.Node.DbBackend] {
		return fmt.Errorf("node.db_backend %q is not a known backend", c.Node.DbBackend)
	}

	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return fmt.Errorf("server.listen %q is not a host:port address: %w", c.Server.Listen, err)
	}

	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("log.level %q is not a known level", c.Log.Level)
	}

	for i, b := range c.Genesis.Balances {
		if b.Account == "" {
			return fmt.Errorf("genesis.balances[%d]: account cannot be empty", i)
		}
		if b.Amount == 0 {
			return fmt.Errorf("genesis.balances[%d]: amount cannot be zero", i)
		}
	}

	return nil
}
