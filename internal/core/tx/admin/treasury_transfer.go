package admin

import (
	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

func init() {
	tx.Register(tx.TypeTreasuryTransfer, func() tx.Transaction {
		return &TreasuryTransfer{BaseTx: *tx.NewBaseTx(tx.TypeTreasuryTransfer, "")}
	})
}

// TreasuryTransfer pays funds out of the custodial wallet to an arbitrary
// account. Root-admin only; the recipient does not need to be registered.
type TreasuryTransfer struct {
	tx.BaseTx

	// To is the account credited (required)
	To types.AccountID `json:"To"`

	// Token is the asset to pay out
	Token types.TokenID `json:"Token"`

	// Amount to pay out of the wallet
	Amount types.Balance `json:"Amount"`
}

// NewTreasuryTransfer creates a new TreasuryTransfer transaction.
func NewTreasuryTransfer(caller, to types.AccountID, token types.TokenID, amount types.Balance) *TreasuryTransfer {
	return &TreasuryTransfer{
		BaseTx: *tx.NewBaseTx(tx.TypeTreasuryTransfer, caller),
		To:     to,
		Token:  token,
		Amount: amount,
	}
}

// Validate validates the TreasuryTransfer transaction.
func (t *TreasuryTransfer) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.To == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "To is required")
	}
	return nil
}

// Apply pays the amount out of the wallet.
func (t *TreasuryTransfer) Apply(ctx *tx.ApplyContext) tx.Result {
	if code := ctx.CheckRootAdmin(); code != tx.TesSUCCESS {
		return code
	}
	wallet, code := ctx.Wallet()
	if code != tx.TesSUCCESS {
		return code
	}
	if err := assets.Transfer(ctx.View, wallet, t.To, t.Token, t.Amount); err != nil {
		return tx.TecUNFUNDED
	}

	ctx.Emit(events.FundsTransferred{
		Who:    ctx.Caller,
		To:     t.To,
		Amount: t.Amount,
		Token:  t.Token,
	})
	return tx.TesSUCCESS
}
