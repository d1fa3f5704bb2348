// Package all links every transactor package into the binary. Importing it for
// side effects registers all transaction types with the registry.
package all

import (
	_ "github.com/permadex/godexd/internal/core/tx/admin"
	_ "github.com/permadex/godexd/internal/core/tx/amm"
)
