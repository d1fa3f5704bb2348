// Package txtest provides a ready-made engine over an in-memory store for
// transaction tests, with helpers for the usual bootstrap steps.
package txtest

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
	"github.com/permadex/godexd/internal/storage/keyValueDb"
	_ "github.com/permadex/godexd/internal/storage/keyValueDb/memory"
)

// Env bundles an engine over a fresh in-memory store.
type Env struct {
	T      *testing.T
	Engine *tx.Engine
	Store  *state.Store
	Bus    *events.Bus
}

// New creates a fresh environment. The store is torn down with the test.
func New(t *testing.T) *Env {
	t.Helper()
	db, err := keyValueDb.Open(keyValueDb.BackendMemory, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := state.NewStore(db)
	require.NoError(t, err)

	bus := events.NewBus()
	return &Env{
		T:      t,
		Engine: tx.NewEngine(store, bus, zerolog.Nop()),
		Store:  store,
		Bus:    bus,
	}
}

// MustApply applies a transaction and requires the expected result code.
func (e *Env) MustApply(txn tx.Transaction, want tx.Result) tx.ApplyResult {
	e.T.Helper()
	res := e.Engine.Apply(txn)
	require.Equal(e.T, want, res.Code, "got %s, want %s", res.Code, want)
	return res
}

// Fund credits an account directly, bypassing the transaction path.
func (e *Env) Fund(account types.AccountID, token types.TokenID, amount types.Balance) {
	e.T.Helper()
	require.NoError(e.T, assets.Mint(e.Store, account, token, amount))
}

// Balance reads an account's token balance from the base store.
func (e *Env) Balance(account types.AccountID, token types.TokenID) types.Balance {
	e.T.Helper()
	b, err := assets.BalanceOf(e.Store, token, account)
	require.NoError(e.T, err)
	return b
}

// Pool loads a pool record and requires it to exist.
func (e *Env) Pool(id types.PoolID) *state.LiquidityPool {
	e.T.Helper()
	pool, found, err := state.LoadPool(e.Store, id)
	require.NoError(e.T, err)
	require.True(e.T, found, "pool %d not found", id)
	return pool
}

// Wallet returns the persisted custodial wallet account.
func (e *Env) Wallet() types.AccountID {
	e.T.Helper()
	wallet, found, err := state.WalletAccount(e.Store)
	require.NoError(e.T, err)
	require.True(e.T, found, "wallet not initialized")
	return wallet
}
