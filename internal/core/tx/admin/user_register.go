package admin

import (
	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
)

func init() {
	tx.Register(tx.TypeUserRegister, func() tx.Transaction {
		return &UserRegister{BaseTx: *tx.NewBaseTx(tx.TypeUserRegister, "")}
	})
}

// UserRegister whitelists an account for pool operations and hands it the
// native bootstrap credit. Any admin may register users.
type UserRegister struct {
	tx.BaseTx

	// User is the account to whitelist (required)
	User types.AccountID `json:"User"`
}

// NewUserRegister creates a new UserRegister transaction.
func NewUserRegister(caller, user types.AccountID) *UserRegister {
	return &UserRegister{
		BaseTx: *tx.NewBaseTx(tx.TypeUserRegister, caller),
		User:   user,
	}
}

// Validate validates the UserRegister transaction.
func (u *UserRegister) Validate() error {
	if err := u.BaseTx.Validate(); err != nil {
		return err
	}
	if u.User == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "User is required")
	}
	return nil
}

// Apply whitelists the account.
func (u *UserRegister) Apply(ctx *tx.ApplyContext) tx.Result {
	if code := ctx.CheckAdmin(); code != tx.TesSUCCESS {
		return code
	}
	already, err := state.IsUser(ctx.View, u.User)
	if err != nil {
		return tx.TecINTERNAL
	}
	if already {
		return tx.TecALREADY_REGISTERED
	}
	if err := state.SetUser(ctx.View, u.User); err != nil {
		return tx.TecINTERNAL
	}
	if err := assets.Mint(ctx.View, u.User, types.NativeToken, UserBootstrapCredit); err != nil {
		return tx.TecINTERNAL
	}
	return tx.TesSUCCESS
}
