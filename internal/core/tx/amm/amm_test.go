package amm_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/tx/admin"
	"github.com/permadex/godexd/internal/core/tx/amm"
	"github.com/permadex/godexd/internal/core/tx/txtest"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

const (
	root  = types.AccountID("dxroot")
	alice = types.AccountID("dxalice")
	bob   = types.AccountID("dxbob")

	tokenA = types.TokenID(1)
	tokenB = types.TokenID(2)
)

// bootstrap registers the root admin, whitelists alice and bob, funds them
// with both pool tokens, and registers pool 1 for (tokenA, tokenB).
func bootstrap(t *testing.T) *txtest.Env {
	t.Helper()
	env := txtest.New(t)
	env.MustApply(admin.NewAdminRegister(root), tx.TesSUCCESS)
	env.MustApply(admin.NewUserRegister(root, alice), tx.TesSUCCESS)
	env.MustApply(admin.NewUserRegister(root, bob), tx.TesSUCCESS)
	for _, u := range []types.AccountID{alice, bob} {
		env.Fund(u, tokenA, 1_000_000)
		env.Fund(u, tokenB, 1_000_000)
	}
	env.MustApply(amm.NewPoolCreate(root, tokenA, tokenB), tx.TesSUCCESS)
	return env
}

func sharesOf(t *testing.T, env *txtest.Env, id types.PoolID, account types.AccountID) *uint256.Int {
	t.Helper()
	s, err := state.Shares(env.Store, id, account)
	require.NoError(t, err)
	return s
}

func TestPoolCreate(t *testing.T) {
	env := txtest.New(t)
	env.MustApply(admin.NewAdminRegister(root), tx.TesSUCCESS)

	res := env.MustApply(amm.NewPoolCreate(root, tokenA, tokenB), tx.TesSUCCESS)
	require.Len(t, res.Events, 1)
	assert.Equal(t, events.PoolCreated{ID: 1, Token1: tokenA, Token2: tokenB}, res.Events[0])

	pool := env.Pool(1)
	assert.Equal(t, tokenA, pool.Token1)
	assert.Equal(t, tokenB, pool.Token2)
	assert.True(t, pool.Empty())
}

func TestPoolCreateGuards(t *testing.T) {
	env := txtest.New(t)
	env.MustApply(admin.NewAdminRegister(root), tx.TesSUCCESS)
	env.MustApply(amm.NewPoolCreate(root, tokenA, tokenB), tx.TesSUCCESS)

	// The pair is exclusive in both token orders.
	env.MustApply(amm.NewPoolCreate(root, tokenA, tokenB), tx.TecALREADY_REGISTERED)
	env.MustApply(amm.NewPoolCreate(root, tokenB, tokenA), tx.TecALREADY_REGISTERED)

	env.MustApply(amm.NewPoolCreate(root, tokenA, tokenA), tx.TemDUPLICATE_TOKEN)
	env.MustApply(amm.NewPoolCreate(alice, tokenA, 3), tx.TecNO_PERMISSION)

	// Rejected attempts did not burn pool ids: the next pool is 2.
	res := env.MustApply(amm.NewPoolCreate(root, tokenA, 3), tx.TesSUCCESS)
	require.Len(t, res.Events, 1)
	assert.Equal(t, types.PoolID(2), res.Events[0].(events.PoolCreated).ID)
}

func TestPoolDepositBootstrapsShares(t *testing.T) {
	env := bootstrap(t)
	wallet := env.Wallet()

	res := env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)
	require.Len(t, res.Events, 1)
	ev := res.Events[0].(events.LiquidityAdded)
	assert.Equal(t, "1000", ev.Shares)
	assert.Equal(t, types.Balance(1000), ev.Amount1)
	assert.Equal(t, types.Balance(1000), ev.Amount2)

	pool := env.Pool(1)
	assert.Equal(t, types.Balance(1000), pool.Reserve1)
	assert.Equal(t, types.Balance(1000), pool.Reserve2)
	assert.Equal(t, uint256.NewInt(1000), pool.TotalSharesWide())
	assert.Equal(t, uint256.NewInt(1000), sharesOf(t, env, 1, alice))

	assert.Equal(t, types.Balance(999_000), env.Balance(alice, tokenA))
	assert.Equal(t, types.Balance(999_000), env.Balance(alice, tokenB))
	assert.Equal(t, types.Balance(1000), env.Balance(wallet, tokenA))
	assert.Equal(t, types.Balance(1000), env.Balance(wallet, tokenB))
}

func TestPoolDepositProportional(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)

	res := env.MustApply(amm.NewPoolDeposit(root, 1, bob, 500, 500), tx.TesSUCCESS)
	assert.Equal(t, "500", res.Events[0].(events.LiquidityAdded).Shares)

	pool := env.Pool(1)
	assert.Equal(t, types.Balance(1500), pool.Reserve1)
	assert.Equal(t, types.Balance(1500), pool.Reserve2)
	assert.Equal(t, uint256.NewInt(1500), pool.TotalSharesWide())
}

func TestPoolDepositUnbalanced(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)

	res := env.MustApply(amm.NewPoolDeposit(root, 1, bob, 100, 50), tx.TecUNBALANCED_DEPOSIT)
	assert.False(t, res.Applied)

	// Nothing moved.
	pool := env.Pool(1)
	assert.Equal(t, types.Balance(1000), pool.Reserve1)
	assert.Equal(t, types.Balance(1_000_000), env.Balance(bob, tokenA))
	assert.True(t, sharesOf(t, env, 1, bob).IsZero())
}

func TestPoolDepositClampsWithinTolerance(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)

	// 1004 against 1000 is inside the half-percent band; the surplus side is
	// clamped to the exact ratio before funds move.
	res := env.MustApply(amm.NewPoolDeposit(root, 1, bob, 1004, 1000), tx.TesSUCCESS)
	ev := res.Events[0].(events.LiquidityAdded)
	assert.Equal(t, types.Balance(1000), ev.Amount1)
	assert.Equal(t, types.Balance(1000), ev.Amount2)
	assert.Equal(t, "1000", ev.Shares)

	assert.Equal(t, types.Balance(999_000), env.Balance(bob, tokenA))
	pool := env.Pool(1)
	assert.Equal(t, types.Balance(2000), pool.Reserve1)
	assert.Equal(t, types.Balance(2000), pool.Reserve2)
}

func TestPoolDepositGuards(t *testing.T) {
	env := bootstrap(t)

	env.MustApply(amm.NewPoolDeposit(alice, 1, alice, 10, 10), tx.TecNO_PERMISSION)
	env.MustApply(amm.NewPoolDeposit(root, 1, "dxcarol", 10, 10), tx.TecACCOUNT_NOT_FOUND)
	env.MustApply(amm.NewPoolDeposit(root, 99, alice, 10, 10), tx.TecNO_ENTRY)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 0, 10), tx.TemBAD_AMOUNT)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 10, 0), tx.TemBAD_AMOUNT)

	// Offering more than the user holds fails without partial effects.
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 2_000_000, 2_000_000), tx.TecUNFUNDED)
	assert.Equal(t, types.Balance(1_000_000), env.Balance(alice, tokenA))
	assert.True(t, env.Pool(1).Empty())
}

func TestPoolSwap(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)
	wallet := env.Wallet()

	res := env.MustApply(amm.NewPoolSwap(root, 1, bob, amm.SideToken1, 100), tx.TesSUCCESS)
	require.Len(t, res.Events, 1)
	ev := res.Events[0].(events.TokenSwapped)
	assert.Equal(t, tokenA, ev.TokenIn)
	assert.Equal(t, tokenB, ev.TokenOut)
	assert.Equal(t, types.Balance(100), ev.AmountIn)
	assert.Equal(t, types.Balance(89), ev.AmountOut)

	pool := env.Pool(1)
	assert.Equal(t, types.Balance(1100), pool.Reserve1)
	assert.Equal(t, types.Balance(911), pool.Reserve2)

	assert.Equal(t, types.Balance(999_900), env.Balance(bob, tokenA))
	assert.Equal(t, types.Balance(1_000_089), env.Balance(bob, tokenB))
	assert.Equal(t, types.Balance(1100), env.Balance(wallet, tokenA))
	assert.Equal(t, types.Balance(911), env.Balance(wallet, tokenB))
}

func TestPoolSwapReverseSide(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)

	res := env.MustApply(amm.NewPoolSwap(root, 1, bob, amm.SideToken2, 100), tx.TesSUCCESS)
	ev := res.Events[0].(events.TokenSwapped)
	assert.Equal(t, tokenB, ev.TokenIn)
	assert.Equal(t, tokenA, ev.TokenOut)
	assert.Equal(t, types.Balance(89), ev.AmountOut)

	pool := env.Pool(1)
	assert.Equal(t, types.Balance(911), pool.Reserve1)
	assert.Equal(t, types.Balance(1100), pool.Reserve2)
}

func TestPoolSwapProductNeverDecreases(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)

	product := func() *uint256.Int {
		p := env.Pool(1)
		return new(uint256.Int).Mul(
			uint256.NewInt(uint64(p.Reserve1)), uint256.NewInt(uint64(p.Reserve2)))
	}

	before := product()
	for _, in := range []types.Balance{100, 1, 7, 333, 50} {
		env.MustApply(amm.NewPoolSwap(root, 1, bob, amm.SideToken1, in), tx.TesSUCCESS)
		after := product()
		assert.False(t, after.Lt(before), "product decreased after swap of %d", in)
		before = after
	}
}

func TestPoolSwapGuards(t *testing.T) {
	env := bootstrap(t)

	// An empty pool cannot quote any output.
	env.MustApply(amm.NewPoolSwap(root, 1, alice, amm.SideToken1, 100), tx.TecINSUFFICIENT_LIQUIDITY)

	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)
	env.MustApply(amm.NewPoolSwap(alice, 1, alice, amm.SideToken1, 100), tx.TecNO_PERMISSION)
	env.MustApply(amm.NewPoolSwap(root, 1, "dxcarol", amm.SideToken1, 100), tx.TecACCOUNT_NOT_FOUND)
	env.MustApply(amm.NewPoolSwap(root, 99, alice, amm.SideToken1, 100), tx.TecNO_ENTRY)
	env.MustApply(amm.NewPoolSwap(root, 1, alice, amm.SideToken1, 0), tx.TemBAD_AMOUNT)

	// A one-unit swap has a zero effective input and a zero output but still
	// deposits the unit into the reserve.
	env.MustApply(amm.NewPoolSwap(root, 1, bob, amm.SideToken1, 1), tx.TesSUCCESS)
	assert.Equal(t, types.Balance(1001), env.Pool(1).Reserve1)
	assert.Equal(t, types.Balance(1000), env.Pool(1).Reserve2)
}

func TestPoolWithdrawFullPosition(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)
	env.MustApply(amm.NewPoolDeposit(root, 1, bob, 500, 500), tx.TesSUCCESS)

	res := env.MustApply(amm.NewPoolWithdraw(root, 1, bob), tx.TesSUCCESS)
	require.Len(t, res.Events, 1)
	ev := res.Events[0].(events.LiquidityRemoved)
	assert.Equal(t, "500", ev.Shares)
	assert.Equal(t, types.Balance(500), ev.Amount1)
	assert.Equal(t, types.Balance(500), ev.Amount2)

	pool := env.Pool(1)
	assert.Equal(t, types.Balance(1000), pool.Reserve1)
	assert.Equal(t, types.Balance(1000), pool.Reserve2)
	assert.Equal(t, uint256.NewInt(1000), pool.TotalSharesWide())
	assert.True(t, sharesOf(t, env, 1, bob).IsZero())
	assert.Equal(t, types.Balance(1_000_000), env.Balance(bob, tokenA))
}

func TestPoolWithdrawNoShares(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)

	// Bob never deposited; withdrawal succeeds and pays nothing.
	res := env.MustApply(amm.NewPoolWithdraw(root, 1, bob), tx.TesSUCCESS)
	ev := res.Events[0].(events.LiquidityRemoved)
	assert.Equal(t, "0", ev.Shares)
	assert.Equal(t, types.Balance(0), ev.Amount1)
	assert.Equal(t, types.Balance(1000), env.Pool(1).Reserve1)
}

func TestPoolWithdrawGuards(t *testing.T) {
	env := bootstrap(t)

	env.MustApply(amm.NewPoolWithdraw(alice, 1, alice), tx.TecNO_PERMISSION)
	env.MustApply(amm.NewPoolWithdraw(root, 1, "dxcarol"), tx.TecACCOUNT_NOT_FOUND)
	env.MustApply(amm.NewPoolWithdraw(root, 99, alice), tx.TecNO_ENTRY)
}

func TestDepositWithdrawRoundTripNeverProfits(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)

	// Odd amounts force rounding in share issuance and payout.
	env.MustApply(amm.NewPoolDeposit(root, 1, bob, 333, 333), tx.TesSUCCESS)
	env.MustApply(amm.NewPoolWithdraw(root, 1, bob), tx.TesSUCCESS)

	assert.LessOrEqual(t, env.Balance(bob, tokenA), types.Balance(1_000_000))
	assert.LessOrEqual(t, env.Balance(bob, tokenB), types.Balance(1_000_000))
}

func TestReservesAndSharesZeroTogether(t *testing.T) {
	env := bootstrap(t)
	env.MustApply(amm.NewPoolDeposit(root, 1, alice, 1000, 1000), tx.TesSUCCESS)
	env.MustApply(amm.NewPoolWithdraw(root, 1, alice), tx.TesSUCCESS)

	pool := env.Pool(1)
	assert.True(t, pool.Empty())

	// The drained pool accepts a fresh bootstrap deposit.
	res := env.MustApply(amm.NewPoolDeposit(root, 1, bob, 400, 900), tx.TesSUCCESS)
	assert.Equal(t, "600", res.Events[0].(events.LiquidityAdded).Shares)
}
