package amm

import (
	"github.com/holiman/uint256"

	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/core/widemath"
	"github.com/permadex/godexd/internal/events"
)

// Swap sides. SideToken1 sells the pool's first token for its second.
const (
	SideToken1 uint8 = 1
	SideToken2 uint8 = 2
)

func init() {
	tx.Register(tx.TypePoolSwap, func() tx.Transaction {
		return &PoolSwap{BaseTx: *tx.NewBaseTx(tx.TypePoolSwap, "")}
	})
}

// PoolSwap executes a constant-product swap on behalf of a whitelisted user.
// Only 98% of the input participates in the output quote while the entire
// input lands in the reserve, so the 2% fee accrues to the pool.
type PoolSwap struct {
	tx.BaseTx

	// PoolID of the target pool (required)
	PoolID types.PoolID `json:"PoolID"`

	// User is the whitelisted account swapping (required)
	User types.AccountID `json:"User"`

	// Side selects the direction: SideToken1 sells token1, anything else
	// sells token2
	Side uint8 `json:"Side"`

	// AmountIn is the amount sold, strictly positive
	AmountIn types.Balance `json:"AmountIn"`
}

// NewPoolSwap creates a new PoolSwap transaction.
func NewPoolSwap(caller types.AccountID, id types.PoolID, user types.AccountID, side uint8, amountIn types.Balance) *PoolSwap {
	return &PoolSwap{
		BaseTx:   *tx.NewBaseTx(tx.TypePoolSwap, caller),
		PoolID:   id,
		User:     user,
		Side:     side,
		AmountIn: amountIn,
	}
}

// Validate validates the PoolSwap transaction.
func (p *PoolSwap) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.User == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "User is required")
	}
	if p.AmountIn == 0 {
		return tx.NewValidationError(tx.TemBAD_AMOUNT, "swap amount must be positive")
	}
	return nil
}

// Apply executes the swap.
func (p *PoolSwap) Apply(ctx *tx.ApplyContext) tx.Result {
	if code := ctx.CheckAdmin(); code != tx.TesSUCCESS {
		return code
	}
	if code := ctx.CheckUser(p.User); code != tx.TesSUCCESS {
		return code
	}
	pool, found, err := state.LoadPool(ctx.View, p.PoolID)
	if err != nil {
		return tx.TecINTERNAL
	}
	if !found {
		return tx.TecNO_ENTRY
	}
	wallet, code := ctx.Wallet()
	if code != tx.TesSUCCESS {
		return code
	}

	var tokenIn, tokenOut types.TokenID
	var reserveIn, reserveOut types.Balance
	if p.Side == SideToken1 {
		tokenIn, tokenOut = pool.Token1, pool.Token2
		reserveIn, reserveOut = pool.Reserve1, pool.Reserve2
	} else {
		tokenIn, tokenOut = pool.Token2, pool.Token1
		reserveIn, reserveOut = pool.Reserve2, pool.Reserve1
	}

	eff := widemath.MulDiv(
		widemath.FromBalance(uint64(p.AmountIn)),
		uint256.NewInt(feeNumerator),
		uint256.NewInt(feeDenominator))
	denom := new(uint256.Int).Add(widemath.FromBalance(uint64(reserveIn)), eff)
	if denom.IsZero() {
		return tx.TecINSUFFICIENT_LIQUIDITY
	}
	outWide := widemath.MulDiv(widemath.FromBalance(uint64(reserveOut)), eff, denom)
	if !outWide.Lt(widemath.FromBalance(uint64(reserveOut))) {
		return tx.TecINSUFFICIENT_LIQUIDITY
	}
	out := types.Balance(outWide.Uint64())

	if err := assets.Transfer(ctx.View, p.User, wallet, tokenIn, p.AmountIn); err != nil {
		return tx.TecUNFUNDED
	}
	if err := assets.Transfer(ctx.View, wallet, p.User, tokenOut, out); err != nil {
		return tx.TecUNFUNDED
	}

	// The full input lands in the reserve; the fee portion excluded from the
	// quote stays behind as pool growth.
	if p.Side == SideToken1 {
		pool.Reserve1 += p.AmountIn
		pool.Reserve2 -= out
	} else {
		pool.Reserve2 += p.AmountIn
		pool.Reserve1 -= out
	}
	if err := state.SavePool(ctx.View, p.PoolID, pool); err != nil {
		return tx.TecINTERNAL
	}

	ctx.Emit(events.TokenSwapped{
		PoolID:    p.PoolID,
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		AmountIn:  p.AmountIn,
		AmountOut: out,
		Account:   p.User,
	})
	return tx.TesSUCCESS
}
