package admin

import (
	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

func init() {
	tx.Register(tx.TypeAdminRegister, func() tx.Transaction {
		return &AdminRegister{BaseTx: *tx.NewBaseTx(tx.TypeAdminRegister, "")}
	})
}

// AdminRegister performs the one-time root-admin bootstrap: the caller becomes
// the root admin and sole admin-set member, the custodial wallet account is
// derived and persisted, and the wallet receives its native bootstrap credit.
type AdminRegister struct {
	tx.BaseTx
}

// NewAdminRegister creates a new AdminRegister transaction.
func NewAdminRegister(caller types.AccountID) *AdminRegister {
	return &AdminRegister{BaseTx: *tx.NewBaseTx(tx.TypeAdminRegister, caller)}
}

// Apply applies the bootstrap. Re-registration fails before any mutation: the
// persisted wallet record is the initialized-once marker.
func (a *AdminRegister) Apply(ctx *tx.ApplyContext) tx.Result {
	_, initialized, err := state.WalletAccount(ctx.View)
	if err != nil {
		return tx.TecINTERNAL
	}
	if initialized {
		return tx.TecALREADY_INITIALIZED
	}

	if err := state.SetRootAdmin(ctx.View, ctx.Caller); err != nil {
		return tx.TecINTERNAL
	}
	if err := state.SetAdmin(ctx.View, ctx.Caller); err != nil {
		return tx.TecINTERNAL
	}

	wallet := types.DeriveTreasuryAccount()
	if err := state.SetWalletAccount(ctx.View, wallet); err != nil {
		return tx.TecINTERNAL
	}
	if err := assets.Mint(ctx.View, wallet, types.NativeToken, WalletBootstrapCredit); err != nil {
		return tx.TecINTERNAL
	}

	ctx.Emit(events.AdminRegistered{Admin: ctx.Caller, Wallet: wallet})
	return tx.TesSUCCESS
}
