package assets

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/storage/keyValueDb/memory"
)

const tok types.TokenID = 5

func newView(t *testing.T) state.View {
	t.Helper()
	s, err := state.NewStore(memory.New())
	require.NoError(t, err)
	return s
}

func TestTransfer(t *testing.T) {
	v := newView(t)
	require.NoError(t, Mint(v, "alice", tok, 100))

	require.NoError(t, Transfer(v, "alice", "bob", tok, 40))

	a, err := BalanceOf(v, tok, "alice")
	require.NoError(t, err)
	b, err := BalanceOf(v, tok, "bob")
	require.NoError(t, err)
	assert.Equal(t, types.Balance(60), a)
	assert.Equal(t, types.Balance(40), b)
}

func TestTransferInsufficientFunds(t *testing.T) {
	v := newView(t)
	require.NoError(t, Mint(v, "alice", tok, 10))

	err := Transfer(v, "alice", "bob", tok, 11)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	// Balances untouched.
	a, _ := BalanceOf(v, tok, "alice")
	b, _ := BalanceOf(v, tok, "bob")
	assert.Equal(t, types.Balance(10), a)
	assert.Equal(t, types.Balance(0), b)
}

func TestTransferZeroIsNoop(t *testing.T) {
	v := newView(t)
	require.NoError(t, Transfer(v, "alice", "bob", tok, 0))
}

func TestMintOverflow(t *testing.T) {
	v := newView(t)
	require.NoError(t, Mint(v, "alice", tok, math.MaxUint64))
	assert.ErrorIs(t, Mint(v, "alice", tok, 1), ErrBalanceOverflow)
}
