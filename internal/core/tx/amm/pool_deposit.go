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

func init() {
	tx.Register(tx.TypePoolDeposit, func() tx.Transaction {
		return &PoolDeposit{BaseTx: *tx.NewBaseTx(tx.TypePoolDeposit, "")}
	})
}

// PoolDeposit adds liquidity on behalf of a whitelisted user. The offered
// amounts must sit within half a percent of the pool's reserve ratio; within
// the band the larger side is clamped down to the exact ratio before funds
// move.
type PoolDeposit struct {
	tx.BaseTx

	// PoolID of the target pool (required)
	PoolID types.PoolID `json:"PoolID"`

	// User is the whitelisted account providing the liquidity (required)
	User types.AccountID `json:"User"`

	// Amount1 and Amount2 are the offered amounts of the pool's two tokens,
	// both strictly positive
	Amount1 types.Balance `json:"Amount1"`
	Amount2 types.Balance `json:"Amount2"`
}

// NewPoolDeposit creates a new PoolDeposit transaction.
func NewPoolDeposit(caller types.AccountID, id types.PoolID, user types.AccountID, amount1, amount2 types.Balance) *PoolDeposit {
	return &PoolDeposit{
		BaseTx:  *tx.NewBaseTx(tx.TypePoolDeposit, caller),
		PoolID:  id,
		User:    user,
		Amount1: amount1,
		Amount2: amount2,
	}
}

// Validate validates the PoolDeposit transaction.
func (p *PoolDeposit) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.User == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "User is required")
	}
	if p.Amount1 == 0 || p.Amount2 == 0 {
		return tx.NewValidationError(tx.TemBAD_AMOUNT, "deposit amounts must be positive")
	}
	return nil
}

// Apply adds the liquidity and issues shares.
func (p *PoolDeposit) Apply(ctx *tx.ApplyContext) tx.Result {
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

	a1 := uint64(p.Amount1)
	a2 := uint64(p.Amount2)
	r1 := uint64(pool.Reserve1)
	r2 := uint64(pool.Reserve2)

	// Cross products compare the offered ratio against the reserve ratio
	// without dividing. An empty pool has both at zero and always passes.
	pp := widemath.Mul(a1, r2)
	qq := widemath.Mul(a2, r1)

	low := widemath.MulDiv(qq, uint256.NewInt(toleranceLow), uint256.NewInt(toleranceScale))
	high := widemath.MulDiv(qq, uint256.NewInt(toleranceHigh), uint256.NewInt(toleranceScale))
	if pp.Lt(low) || pp.Gt(high) {
		return tx.TecUNBALANCED_DEPOSIT
	}

	// Clamp the larger side down to the exact reserve ratio.
	if pp.Gt(qq) {
		a1 = widemath.ToBalanceSaturated(widemath.MulDiv(
			widemath.FromBalance(a2), widemath.FromBalance(r2), widemath.FromBalance(r1)))
	} else if qq.Gt(pp) {
		a2 = widemath.ToBalanceSaturated(widemath.MulDiv(
			widemath.FromBalance(a1), widemath.FromBalance(r1), widemath.FromBalance(r2)))
	}

	if err := assets.Transfer(ctx.View, p.User, wallet, pool.Token1, types.Balance(a1)); err != nil {
		return tx.TecUNFUNDED
	}
	if err := assets.Transfer(ctx.View, p.User, wallet, pool.Token2, types.Balance(a2)); err != nil {
		return tx.TecUNFUNDED
	}

	total := pool.TotalSharesWide()
	var issued *uint256.Int
	if total.IsZero() {
		issued = widemath.Sqrt(widemath.Mul(a1, a2))
	} else {
		s1 := widemath.MulDiv(widemath.FromBalance(a1), total, widemath.FromBalance(r1))
		s2 := widemath.MulDiv(widemath.FromBalance(a2), total, widemath.FromBalance(r2))
		issued = widemath.Min(s1, s2)
	}
	issued = widemath.ClampShares(issued)

	held, err := state.Shares(ctx.View, p.PoolID, p.User)
	if err != nil {
		return tx.TecINTERNAL
	}
	held = widemath.ClampShares(new(uint256.Int).Add(held, issued))
	if err := state.SetShares(ctx.View, p.PoolID, p.User, held); err != nil {
		return tx.TecINTERNAL
	}

	pool.SetTotalShares(widemath.ClampShares(new(uint256.Int).Add(total, issued)))
	pool.Reserve1 += types.Balance(a1)
	pool.Reserve2 += types.Balance(a2)
	if err := state.SavePool(ctx.View, p.PoolID, pool); err != nil {
		return tx.TecINTERNAL
	}

	ctx.Emit(events.LiquidityAdded{
		ID:      p.PoolID,
		Shares:  issued.Dec(),
		By:      p.User,
		Amount1: types.Balance(a1),
		Amount2: types.Balance(a2),
	})
	return tx.TesSUCCESS
}
