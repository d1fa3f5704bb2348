package config

import (
	"github.com/spf13/viper"

	"github.com/permadex/godexd/internal/storage/keyValueDb"
)

// setDefaults installs the built-in defaults. Every key a Config field maps to
// has a default so a bare `dexd server` starts without a config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("node.data_dir", "data")
	v.SetDefault("node.db_backend", keyValueDb.BackendPebble)

	v.SetDefault("server.listen", "127.0.0.1:7180")
	v.SetDefault("server.ws_enabled", true)

	v.SetDefault("log.level", "info")

	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", "")
}
