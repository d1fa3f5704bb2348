package state

import (
	"encoding/binary"

	"github.com/permadex/godexd/internal/core/types"
)

// LoadPool reads a pool record. found is false for an unknown id.
func LoadPool(v View, id types.PoolID) (pool *LiquidityPool, found bool, err error) {
	data, err := v.Get(PoolKey(id))
	if err != nil || data == nil {
		return nil, false, err
	}
	pool = new(LiquidityPool)
	if err := decodeEntry(data, pool); err != nil {
		return nil, false, err
	}
	return pool, true, nil
}

// SavePool writes a pool record.
func SavePool(v View, id types.PoolID, pool *LiquidityPool) error {
	data, err := encodeEntry(pool)
	if err != nil {
		return err
	}
	return v.Put(PoolKey(id), data)
}

// PoolExists reports whether a pool id is occupied.
func PoolExists(v View, id types.PoolID) (bool, error) {
	return v.Has(PoolKey(id))
}

// NextPoolID returns the id the next registration would receive, without
// consuming it.
func NextPoolID(v View) (types.PoolID, error) {
	data, err := v.Get(NextPoolIDKey())
	if err != nil {
		return 0, err
	}
	if data == nil {
		return types.FirstPoolID, nil
	}
	return types.PoolID(binary.BigEndian.Uint64(data)), nil
}

// AllocatePoolID consumes and returns the next pool id.
func AllocatePoolID(v View) (types.PoolID, error) {
	id, err := NextPoolID(v)
	if err != nil {
		return 0, err
	}
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, uint64(id)+1)
	if err := v.Put(NextPoolIDKey(), next); err != nil {
		return 0, err
	}
	return id, nil
}

// PairRegistered reports whether the unordered token pair is already bound to
// a pool, in either token order.
func PairRegistered(v View, a, b types.TokenID) (bool, error) {
	return v.Has(PairKey(a, b))
}

// RegisterPair marks the unordered token pair as bound.
func RegisterPair(v View, a, b types.TokenID) error {
	return v.Put(PairKey(a, b), []byte{1})
}
