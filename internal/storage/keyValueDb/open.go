package keyValueDb

// Backend names accepted by the node configuration.
const (
	BackendPebble  = "pebble"
	BackendLevelDB = "leveldb"
	BackendMemory  = "memory"
)

// An OpenFunc opens a concrete backend at the given path. Backends register
// themselves here so the config layer can select one by name without linking
// every driver into every test binary.
type OpenFunc func(path string) (DB, error)

var backends = map[string]OpenFunc{}

// RegisterBackend makes a backend available under name.
func RegisterBackend(name string, open OpenFunc) {
	backends[name] = open
}

// Open opens the backend registered under name.
func Open(name, path string) (DB, error) {
	open, ok := backends[name]
	if !ok {
		return nil, ErrUnknownBackend
	}
	return open(path)
}
