package state

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/storage/keyValueDb/memory"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(memory.New())
	require.NoError(t, err)
	return s
}

func TestStateTableDiscardLeavesBaseUntouched(t *testing.T) {
	base := newTestStore(t)
	require.NoError(t, base.Put([]byte("k"), []byte("old")))

	table := NewStateTable(base)
	require.NoError(t, table.Put([]byte("k"), []byte("new")))
	require.NoError(t, table.Put([]byte("fresh"), []byte("x")))
	require.NoError(t, table.Delete([]byte("k")))

	// No commit: base must still hold the original state.
	v, err := base.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), v)
	ok, err := base.Has([]byte("fresh"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateTableCommit(t *testing.T) {
	base := newTestStore(t)
	require.NoError(t, base.Put([]byte("mod"), []byte("a")))
	require.NoError(t, base.Put([]byte("del"), []byte("b")))

	table := NewStateTable(base)
	require.NoError(t, table.Put([]byte("mod"), []byte("a2")))
	require.NoError(t, table.Put([]byte("ins"), []byte("c")))
	require.NoError(t, table.Delete([]byte("del")))
	require.NoError(t, table.Commit())

	v, err := base.Get([]byte("mod"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a2"), v)
	v, err = base.Get([]byte("ins"))
	require.NoError(t, err)
	assert.Equal(t, []byte("c"), v)
	ok, err := base.Has([]byte("del"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStateTableReadsThroughOwnWrites(t *testing.T) {
	base := newTestStore(t)
	table := NewStateTable(base)

	require.NoError(t, table.Put([]byte("k"), []byte("v")))
	got, err := table.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, table.Delete([]byte("k")))
	got, err = table.Get([]byte("k"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPoolRoundTrip(t *testing.T) {
	base := newTestStore(t)

	pool := &LiquidityPool{Token1: 1, Token2: 2, Reserve1: 1000, Reserve2: 2000}
	pool.SetTotalShares(uint256.NewInt(1414))
	require.NoError(t, SavePool(base, 1, pool))

	got, found, err := LoadPool(base, 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, types.TokenID(1), got.Token1)
	assert.Equal(t, types.Balance(2000), got.Reserve2)
	assert.Equal(t, uint64(1414), got.TotalSharesWide().Uint64())

	_, found, err = LoadPool(base, 99)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPoolIDAllocation(t *testing.T) {
	base := newTestStore(t)

	id, err := AllocatePoolID(base)
	require.NoError(t, err)
	assert.Equal(t, types.FirstPoolID, id)

	id, err = AllocatePoolID(base)
	require.NoError(t, err)
	assert.Equal(t, types.PoolID(2), id)
}

func TestPairCanonicalOrder(t *testing.T) {
	base := newTestStore(t)

	require.NoError(t, RegisterPair(base, 7, 3))
	ok, err := PairRegistered(base, 3, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = PairRegistered(base, 7, 3)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = PairRegistered(base, 3, 8)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestShareEntryRemoval(t *testing.T) {
	base := newTestStore(t)
	acct := types.AccountID("alice")

	s, err := Shares(base, 1, acct)
	require.NoError(t, err)
	assert.True(t, s.IsZero())

	require.NoError(t, SetShares(base, 1, acct, uint256.NewInt(500)))
	s, err = Shares(base, 1, acct)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), s.Uint64())

	require.NoError(t, RemoveShares(base, 1, acct))
	ok, err := base.Has(ShareKey(1, acct))
	require.NoError(t, err)
	assert.False(t, ok, "entry must be removed, not zeroed")
}
