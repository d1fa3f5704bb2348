package admin

import (
	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeFundDeposit, func() tx.Transaction {
		return &FundDeposit{BaseTx: *tx.NewBaseTx(tx.TypeFundDeposit, "")}
	})
}

// FundDeposit mints the fixed native top-up into the root admin's own account.
type FundDeposit struct {
	tx.BaseTx
}

// NewFundDeposit creates a new FundDeposit transaction.
func NewFundDeposit(caller types.AccountID) *FundDeposit {
	return &FundDeposit{BaseTx: *tx.NewBaseTx(tx.TypeFundDeposit, caller)}
}

// Apply mints RootFundCredit native to the caller.
func (f *FundDeposit) Apply(ctx *tx.ApplyContext) tx.Result {
	if code := ctx.CheckRootAdmin(); code != tx.TesSUCCESS {
		return code
	}
	if err := assets.Mint(ctx.View, ctx.Caller, types.NativeToken, RootFundCredit); err != nil {
		return tx.TecINTERNAL
	}
	return tx.TesSUCCESS
}
