package state

import (
	"github.com/holiman/uint256"

	"github.com/permadex/godexd/internal/core/types"
)

// Shares returns an account's share balance in a pool, zero when no entry
// exists.
func Shares(v View, id types.PoolID, account types.AccountID) (*uint256.Int, error) {
	data, err := v.Get(ShareKey(id, account))
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).SetBytes(data), nil
}

// SetShares writes an account's share balance.
func SetShares(v View, id types.PoolID, account types.AccountID, shares *uint256.Int) error {
	return v.Put(ShareKey(id, account), shares.Bytes())
}

// RemoveShares deletes the share entry outright. Withdrawal always takes an
// account's entire recorded share, so the entry is removed rather than zeroed.
func RemoveShares(v View, id types.PoolID, account types.AccountID) error {
	return v.Delete(ShareKey(id, account))
}
