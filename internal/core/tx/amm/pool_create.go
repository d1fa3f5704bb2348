package amm

import (
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

func init() {
	tx.Register(tx.TypePoolCreate, func() tx.Transaction {
		return &PoolCreate{BaseTx: *tx.NewBaseTx(tx.TypePoolCreate, "")}
	})
}

// PoolCreate registers an empty pool for an unordered token pair. Each pair
// gets at most one pool, whichever order its tokens are listed in.
type PoolCreate struct {
	tx.BaseTx

	// Token1 and Token2 are the pool's pair, in display order (must differ)
	Token1 types.TokenID `json:"Token1"`
	Token2 types.TokenID `json:"Token2"`
}

// NewPoolCreate creates a new PoolCreate transaction.
func NewPoolCreate(caller types.AccountID, token1, token2 types.TokenID) *PoolCreate {
	return &PoolCreate{
		BaseTx: *tx.NewBaseTx(tx.TypePoolCreate, caller),
		Token1: token1,
		Token2: token2,
	}
}

// Validate validates the PoolCreate transaction.
func (p *PoolCreate) Validate() error {
	if err := p.BaseTx.Validate(); err != nil {
		return err
	}
	if p.Token1 == p.Token2 {
		return tx.NewValidationError(tx.TemDUPLICATE_TOKEN, "pool tokens must differ")
	}
	return nil
}

// Apply registers the pool. All existence checks run before the first write so
// a duplicate pair leaves the pool counter untouched.
func (p *PoolCreate) Apply(ctx *tx.ApplyContext) tx.Result {
	if code := ctx.CheckAdmin(); code != tx.TesSUCCESS {
		return code
	}

	registered, err := state.PairRegistered(ctx.View, p.Token1, p.Token2)
	if err != nil {
		return tx.TecINTERNAL
	}
	if registered {
		return tx.TecALREADY_REGISTERED
	}
	id, err := state.NextPoolID(ctx.View)
	if err != nil {
		return tx.TecINTERNAL
	}
	occupied, err := state.PoolExists(ctx.View, id)
	if err != nil {
		return tx.TecINTERNAL
	}
	if occupied {
		return tx.TecALREADY_REGISTERED
	}

	if _, err := state.AllocatePoolID(ctx.View); err != nil {
		return tx.TecINTERNAL
	}
	pool := &state.LiquidityPool{Token1: p.Token1, Token2: p.Token2}
	if err := state.SavePool(ctx.View, id, pool); err != nil {
		return tx.TecINTERNAL
	}
	if err := state.RegisterPair(ctx.View, p.Token1, p.Token2); err != nil {
		return tx.TecINTERNAL
	}

	ctx.Emit(events.PoolCreated{ID: id, Token1: p.Token1, Token2: p.Token2})
	return tx.TesSUCCESS
}
