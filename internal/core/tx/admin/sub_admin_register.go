package admin

import (
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

func init() {
	tx.Register(tx.TypeSubAdminRegister, func() tx.Transaction {
		return &SubAdminRegister{BaseTx: *tx.NewBaseTx(tx.TypeSubAdminRegister, "")}
	})
}

// SubAdminRegister appoints a new sub-admin. Only the root admin may appoint;
// the admin set is append-only.
type SubAdminRegister struct {
	tx.BaseTx

	// NewAdmin is the account to add to the admin set (required)
	NewAdmin types.AccountID `json:"NewAdmin"`
}

// NewSubAdminRegister creates a new SubAdminRegister transaction.
func NewSubAdminRegister(caller, newAdmin types.AccountID) *SubAdminRegister {
	return &SubAdminRegister{
		BaseTx:   *tx.NewBaseTx(tx.TypeSubAdminRegister, caller),
		NewAdmin: newAdmin,
	}
}

// Validate validates the SubAdminRegister transaction.
func (s *SubAdminRegister) Validate() error {
	if err := s.BaseTx.Validate(); err != nil {
		return err
	}
	if s.NewAdmin == "" {
		return tx.NewValidationError(tx.TemMALFORMED, "NewAdmin is required")
	}
	return nil
}

// Apply adds the account to the admin set.
func (s *SubAdminRegister) Apply(ctx *tx.ApplyContext) tx.Result {
	if code := ctx.CheckRootAdmin(); code != tx.TesSUCCESS {
		return code
	}
	already, err := state.IsAdmin(ctx.View, s.NewAdmin)
	if err != nil {
		return tx.TecINTERNAL
	}
	if already {
		return tx.TecALREADY_REGISTERED
	}
	if err := state.SetAdmin(ctx.View, s.NewAdmin); err != nil {
		return tx.TecINTERNAL
	}

	ctx.Emit(events.AdminAdded{Who: s.NewAdmin})
	return tx.TesSUCCESS
}
