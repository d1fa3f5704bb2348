package history

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRecordAndQuerySwaps(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, in := range []uint64{100, 250, 40} {
		require.NoError(t, s.Record(ctx, events.TokenSwapped{
			PoolID:    1,
			TokenIn:   1,
			TokenOut:  2,
			AmountIn:  types.Balance(in),
			AmountOut: types.Balance(in - uint64(i)),
			Account:   "dxbob",
		}))
	}
	require.NoError(t, s.Record(ctx, events.TokenSwapped{
		PoolID: 2, TokenIn: 3, TokenOut: 4, AmountIn: 9, AmountOut: 8, Account: "dxalice",
	}))

	swaps, err := s.RecentSwaps(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, swaps, 2)

	// Newest first.
	assert.EqualValues(t, 40, swaps[0].AmountIn)
	assert.EqualValues(t, 250, swaps[1].AmountIn)
	assert.EqualValues(t, "dxbob", swaps[0].Account)

	none, err := s.RecentSwaps(ctx, 99, 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecordLiquidityAndTransfers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, events.LiquidityAdded{
		ID: 1, Shares: "1000", By: "dxalice", Amount1: 1000, Amount2: 1000,
	}))
	require.NoError(t, s.Record(ctx, events.LiquidityRemoved{
		ID: 1, Shares: "1000", By: "dxalice", Amount1: 1000, Amount2: 1000,
	}))
	require.NoError(t, s.Record(ctx, events.FundsTransferred{
		Who: "dxroot", To: "dxbob", Amount: 50, Token: 0,
	}))

	var count int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM liquidity`).Scan(&count))
	assert.Equal(t, 2, count)
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM transfers`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRecordIgnoresUntrackedEvents(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Record(context.Background(), events.AdminAdded{Who: "dxalice"}))
}

func TestRunConsumesBus(t *testing.T) {
	s := openTestStore(t)
	bus := events.NewBus()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, bus) }()

	bus.Publish(events.TokenSwapped{
		PoolID: 7, TokenIn: 1, TokenOut: 2, AmountIn: 5, AmountOut: 4, Account: "dxbob",
	})

	require.Eventually(t, func() bool {
		swaps, err := s.RecentSwaps(context.Background(), 7, 1)
		return err == nil && len(swaps) == 1
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
