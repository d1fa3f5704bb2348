// Package state owns the engine's persistent records: the pool directory, the
// pair-uniqueness index, the share ledger, the access-control entries and the
// token balance book. Records are CBOR-encoded values in a key/value store;
// mutation flows through a write-tracking table that commits all-or-nothing.
package state

// View provides read/write access to ledger records. Get returns (nil, nil)
// for an absent key.
type View interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	Put(key, value []byte) error
	Delete(key []byte) error
}
