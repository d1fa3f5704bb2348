package admin

import (
	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeTokenWithdraw, func() tx.Transaction {
		return &TokenWithdraw{BaseTx: *tx.NewBaseTx(tx.TypeTokenWithdraw, "")}
	})
}

// TokenWithdraw is the custodial escape hatch that moves funds out of a
// registered user's account to an arbitrary recipient. Root-admin only.
type TokenWithdraw struct {
	tx.BaseTx

	// From is the user account debited (required, must be registered)
	From types.AccountID `json:"From"`

	// To is the account credited (required)
	To types.AccountID `json:"To"`

	// Token is the asset to move
	Token types.TokenID `json:"Token"`

	// Amount to move
	Amount types.Balance `json:"Amount"`
}

// NewTokenWithdraw creates a new TokenWithdraw transaction.
func NewTokenWithdraw(caller, from, to types.AccountID, token types.TokenID, amount types.Balance) *TokenWithdraw {
	return &TokenWithdraw{
		BaseTx: *tx.NewBaseTx(tx.TypeTokenWithdraw, caller),
		From:   from,
		To:     to,
		Token:  token,
		Amount: amount,
	}
}

// Validate validates the TokenWithdraw transaction.
func (t *TokenWithdraw) Validate() error {
	if err := t.BaseTx.Validate(); err != nil {
		return err
	}
	if t.From == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "From is required")
	}
	if t.To == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "To is required")
	}
	return nil
}

// Apply moves the funds. Only the source account must be registered; the
// recipient is unconstrained.
func (t *TokenWithdraw) Apply(ctx *tx.ApplyContext) tx.Result {
	if code := ctx.CheckRootAdmin(); code != tx.TesSUCCESS {
		return code
	}
	if code := ctx.CheckUser(t.From); code != tx.TesSUCCESS {
		return code
	}
	if err := assets.Transfer(ctx.View, t.From, t.To, t.Token, t.Amount); err != nil {
		return tx.TecUNFUNDED
	}
	return tx.TesSUCCESS
}
