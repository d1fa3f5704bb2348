// Package types defines the scalar identifier and quantity types shared by the
// ledger engine: account identifiers, token identifiers, native balances and
// pool identifiers.
package types

import (
	"crypto/sha256"
	"encoding/hex"
)

// AccountID identifies a ledger account. Callers arrive with a pre-verified
// account identity; the engine never inspects its structure.
type AccountID string

// TokenID identifies a fungible token on the hosting asset ledger.
type TokenID uint32

// NativeToken is the reserved identifier for the native currency. It is only
// ever minted through the bootstrap credit path and never pooled.
const NativeToken TokenID = 0

// Balance is a token quantity in the asset ledger's native width.
type Balance uint64

// PoolID identifies a liquidity pool. Pool ids are allocated monotonically,
// starting at FirstPoolID.
type PoolID uint64

// FirstPoolID is the id handed to the first registered pool.
const FirstPoolID PoolID = 1

// treasurySeed is the fixed derivation input for the custodial wallet
// account.
const treasurySeed = "godexd/treasury/v1"

// DeriveTreasuryAccount returns the deterministic custodial wallet account that
// holds pooled reserves on behalf of all pools. The same seed always yields the
// same account, so the wallet can be re-derived instead of configured.
func DeriveTreasuryAccount() AccountID {
	sum := sha256.Sum256([]byte(treasurySeed))
	return AccountID("dx" + hex.EncodeToString(sum[:20]))
}
