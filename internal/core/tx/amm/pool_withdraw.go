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
	tx.Register(tx.TypePoolWithdraw, func() tx.Transaction {
		return &PoolWithdraw{BaseTx: *tx.NewBaseTx(tx.TypePoolWithdraw, "")}
	})
}

// PoolWithdraw redeems a user's entire share position for its proportional cut
// of both reserves. Partial withdrawal is not offered; an account with no
// shares withdraws nothing and still succeeds.
type PoolWithdraw struct {
	tx.BaseTx

	// PoolID of the target pool (required)
	PoolID types.PoolID `json:"PoolID"`

	// User is the whitelisted account being paid out (required)
	User types.AccountID `json:"User"`
}

// NewPoolWithdraw creates a new PoolWithdraw transaction.
func NewPoolWithdraw(caller types.AccountID, id types.PoolID, user types.AccountID) *PoolWithdraw {
	return &PoolWithdraw{
		BaseTx: *tx.NewBaseTx(tx.TypePoolWithdraw, caller),
		PoolID: id,
		User:   user,
	}
}

// Validate validates the PoolWithdraw transaction.
func (p *PoolWithdraw) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.User == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "User is required")
	}
	return nil
}

// Apply pays out and burns the user's full share position.
func (p *PoolWithdraw) Apply(ctx *tx.ApplyContext) tx.Result {
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

	shares, err := state.Shares(ctx.View, p.PoolID, p.User)
	if err != nil {
		return tx.TecINTERNAL
	}
	total := pool.TotalSharesWide()

	// Zero shares pays nothing; skipping the quote also avoids dividing by a
	// zero total on an empty pool.
	var out1, out2 uint64
	if !shares.IsZero() {
		out1 = widemath.ToBalanceSaturated(widemath.MulDiv(
			shares, widemath.FromBalance(uint64(pool.Reserve1)), total))
		out2 = widemath.ToBalanceSaturated(widemath.MulDiv(
			shares, widemath.FromBalance(uint64(pool.Reserve2)), total))
	}

	pool.SetTotalShares(new(uint256.Int).Sub(total, shares))
	pool.Reserve1 -= types.Balance(out1)
	pool.Reserve2 -= types.Balance(out2)
	if err := state.SavePool(ctx.View, p.PoolID, pool); err != nil {
		return tx.TecINTERNAL
	}
	if err := state.RemoveShares(ctx.View, p.PoolID, p.User); err != nil {
		return tx.TecINTERNAL
	}

	if err := assets.Transfer(ctx.View, wallet, p.User, pool.Token1, types.Balance(out1)); err != nil {
		return tx.TecUNFUNDED
	}
	if err := assets.Transfer(ctx.View, wallet, p.User, pool.Token2, types.Balance(out2)); err != nil {
		return tx.TecUNFUNDED
	}

	ctx.Emit(events.LiquidityRemoved{
		ID:      p.PoolID,
		Shares:  shares.Dec(),
		By:      p.User,
		Amount1: types.Balance(out1),
		Amount2: types.Balance(out2),
	})
	return tx.TesSUCCESS
}
