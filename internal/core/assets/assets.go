// Package assets is the asset-ledger collaborator boundary: per-account token
// balances with a transfer primitive that fails rather than overdrawing, and a
// mint primitive used only by the native-currency bootstrap credits.
//
// Balances live in the same state view as the pool records, so a transfer
// inside a transaction participates in that transaction's all-or-nothing
// commit.
package assets

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/types"
)

var (
	// ErrInsufficientFunds is returned when a transfer would overdraw the
	// source account.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrBalanceOverflow is returned when a credit would exceed the balance
	// width.
	ErrBalanceOverflow = errors.New("balance overflow")
)

// BalanceOf returns an account's balance of a token, zero when no record
// exists.
func BalanceOf(v state.View, token types.TokenID, account types.AccountID) (types.Balance, error) {
	data, err := v.Get(state.BalanceKey(token, account))
	if err != nil || data == nil {
		return 0, err
	}
	return types.Balance(binary.BigEndian.Uint64(data)), nil
}

func setBalance(v state.View, token types.TokenID, account types.AccountID, amount types.Balance) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(amount))
	return v.Put(state.BalanceKey(token, account), buf)
}

// Transfer moves amount of token from one account to another. Any failure
// leaves both balances as they were; callers treat an error as fatal to the
// enclosing operation.
func Transfer(v state.View, from, to types.AccountID, token types.TokenID, amount types.Balance) error {
	if amount == 0 {
		return nil
	}
	src, err := BalanceOf(v, token, from)
	if err != nil {
		return err
	}
	if src < amount {
		return ErrInsufficientFunds
	}
	dst, err := BalanceOf(v, token, to)
	if err != nil {
		return err
	}
	if uint64(dst) > math.MaxUint64-uint64(amount) {
		return ErrBalanceOverflow
	}
	if err := setBalance(v, token, from, src-amount); err != nil {
		return err
	}
	return setBalance(v, token, to, dst+amount)
}

// Mint credits an account out of thin air. It backs the fixed bootstrap
// deposits and has no corresponding debit path.
func Mint(v state.View, account types.AccountID, token types.TokenID, amount types.Balance) error {
	cur, err := BalanceOf(v, token, account)
	if err != nil {
		return err
	}
	if uint64(cur) > math.MaxUint64-uint64(amount) {
		return ErrBalanceOverflow
	}
	return setBalance(v, token, account, cur+amount)
}
