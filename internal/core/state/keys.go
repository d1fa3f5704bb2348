package state

import (
	"encoding/binary"

	"github.com/permadex/godexd/internal/core/types"
)

// Key prefixes. Every record type lives in its own namespace so iterators can
// scan one record kind.
const (
	prefixPool      = 0x01
	prefixPair      = 0x02
	prefixShare     = 0x03
	prefixAdmin     = 0x04
	prefixUser      = 0x05
	prefixRootAdmin = 0x06
	prefixWallet    = 0x07
	prefixNextPool  = 0x08
	prefixBalance   = 0x09
	prefixGenesis   = 0x0a
)

// PoolKey keys a LiquidityPool record.
func PoolKey(id types.PoolID) []byte {
	k := make([]byte, 9)
	k[0] = prefixPool
	binary.BigEndian.PutUint64(k[1:], uint64(id))
	return k
}

// PairKey keys the pair-registration flag for an unordered token pair. The
// tokens are stored in canonical (ascending) order so a single lookup covers
// both orderings.
func PairKey(a, b types.TokenID) []byte {
	lo, hi := a, b
	if hi < lo {
		lo, hi = hi, lo
	}
	k := make([]byte, 9)
	k[0] = prefixPair
	binary.BigEndian.PutUint32(k[1:5], uint32(lo))
	binary.BigEndian.PutUint32(k[5:9], uint32(hi))
	return k
}

// ShareKey keys an account's share balance in a pool.
func ShareKey(id types.PoolID, account types.AccountID) []byte {
	k := make([]byte, 9, 9+len(account))
	k[0] = prefixShare
	binary.BigEndian.PutUint64(k[1:9], uint64(id))
	return append(k, account...)
}

// AdminKey keys an admin-set membership flag.
func AdminKey(account types.AccountID) []byte {
	return append([]byte{prefixAdmin}, account...)
}

// UserKey keys a registered-user flag.
func UserKey(account types.AccountID) []byte {
	return append([]byte{prefixUser}, account...)
}

// RootAdminKey keys the single root-admin record.
func RootAdminKey() []byte { return []byte{prefixRootAdmin} }

// WalletKey keys the custodial wallet record.
func WalletKey() []byte { return []byte{prefixWallet} }

// NextPoolIDKey keys the pool id allocation counter.
func NextPoolIDKey() []byte { return []byte{prefixNextPool} }

// GenesisAppliedKey keys the marker set after genesis balances are applied.
func GenesisAppliedKey() []byte { return []byte{prefixGenesis} }

// BalanceKey keys an account's balance of a token in the asset book.
func BalanceKey(token types.TokenID, account types.AccountID) []byte {
	k := make([]byte, 5, 5+len(account))
	k[0] = prefixBalance
	binary.BigEndian.PutUint32(k[1:5], uint32(token))
	return append(k, account...)
}
