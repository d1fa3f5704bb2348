package tx

import (
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

// ApplyContext provides the state and helpers a transaction needs to apply
// itself. It is passed to Appliable.Apply() instead of individual parameters.
type ApplyContext struct {
	// View is the write-tracking overlay the transaction mutates. The engine
	// commits it only on tesSUCCESS.
	View state.View

	// Caller is the pre-verified account invoking the operation.
	Caller types.AccountID

	// queued events, published by the engine after a successful commit
	queued []events.Event
}

// Emit queues an event for publication. Events from failed transactions are
// discarded along with the state table.
func (ctx *ApplyContext) Emit(ev events.Event) {
	ctx.queued = append(ctx.queued, ev)
}

// CheckAdmin verifies the caller is in the admin set.
func (ctx *ApplyContext) CheckAdmin() Result {
	ok, err := state.IsAdmin(ctx.View, ctx.Caller)
	if err != nil {
		return TecINTERNAL
	}
	if !ok {
		return TecNO_PERMISSION
	}
	return TesSUCCESS
}

// CheckRootAdmin verifies the caller is the root admin.
func (ctx *ApplyContext) CheckRootAdmin() Result {
	root, found, err := state.RootAdmin(ctx.View)
	if err != nil {
		return TecINTERNAL
	}
	if !found || root != ctx.Caller {
		return TecNO_PERMISSION
	}
	return TesSUCCESS
}

// CheckUser verifies an account is whitelisted for pool operations.
func (ctx *ApplyContext) CheckUser(account types.AccountID) Result {
	ok, err := state.IsUser(ctx.View, account)
	if err != nil {
		return TecINTERNAL
	}
	if !ok {
		return TecACCOUNT_NOT_FOUND
	}
	return TesSUCCESS
}

// Wallet returns the custodial wallet account. It exists from root-admin
// registration onward.
func (ctx *ApplyContext) Wallet() (types.AccountID, Result) {
	wallet, found, err := state.WalletAccount(ctx.View)
	if err != nil {
		return "", TecINTERNAL
	}
	if !found {
		return "", TecNO_ENTRY
	}
	return wallet, TesSUCCESS
}
