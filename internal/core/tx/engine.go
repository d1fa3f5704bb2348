package tx

import (
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/events"
)

// Engine applies transactions to the ledger store, one at a time. The host
// contract is strictly sequential execution, so a single mutex serializes
// every operation; each one runs against a fresh state table that is committed
// only on success, making every operation all-or-nothing.
type Engine struct {
	mu    sync.Mutex
	store *state.Store
	bus   *events.Bus
	log   zerolog.Logger
}

// ApplyResult reports the outcome of one transaction.
type ApplyResult struct {
	Code Result
	// Applied is true when state was mutated and committed.
	Applied bool
	// Events published for this transaction (empty unless applied).
	Events []events.Event
}

// NewEngine creates an engine over a store. bus may be nil when no sink cares.
func NewEngine(store *state.Store, bus *events.Bus, log zerolog.Logger) *Engine {
	return &Engine{store: store, bus: bus, log: log}
}

// Store exposes the underlying store for read-only queries.
func (e *Engine) Store() *state.Store {
	return e.store
}

// Apply runs one transaction: preflight validation, then apply over a tracked
// view, then commit-or-discard.
func (e *Engine) Apply(txn Transaction) ApplyResult {
	if code := e.preflight(txn); code != TesSUCCESS {
		e.log.Debug().
			Str("type", txn.TxType().String()).
			Str("result", code.String()).
			Msg("transaction rejected in preflight")
		return ApplyResult{Code: code}
	}

	ap, ok := txn.(Appliable)
	if !ok {
		return ApplyResult{Code: TemUNKNOWN}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	table := state.NewStateTable(e.store)
	ctx := &ApplyContext{
		View:   table,
		Caller: txn.GetCommon().Account,
	}

	code := ap.Apply(ctx)
	if code != TesSUCCESS {
		e.log.Info().
			Str("type", txn.TxType().String()).
			Str("caller", string(ctx.Caller)).
			Str("result", code.String()).
			Msg("transaction failed")
		return ApplyResult{Code: code}
	}

	if err := table.Commit(); err != nil {
		e.log.Error().Err(err).
			Str("type", txn.TxType().String()).
			Msg("state commit failed")
		return ApplyResult{Code: TecINTERNAL}
	}

	if e.bus != nil {
		for _, ev := range ctx.queued {
			e.bus.Publish(ev)
		}
	}

	e.log.Info().
		Str("type", txn.TxType().String()).
		Str("caller", string(ctx.Caller)).
		Int("events", len(ctx.queued)).
		Msg("transaction applied")

	return ApplyResult{Code: TesSUCCESS, Applied: true, Events: ctx.queued}
}

// preflight runs static validation and maps failures to tem codes.
func (e *Engine) preflight(txn Transaction) Result {
	if err := txn.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return verr.Code
		}
		return TemMALFORMED
	}
	return TesSUCCESS
}
