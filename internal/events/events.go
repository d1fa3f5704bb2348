// Package events carries the engine's completed-operation notifications and a
// small fire-and-forget bus for delivering them to sinks (the websocket
// stream, the history store).
package events

import (
	"github.com/permadex/godexd/internal/core/types"
)

// Event is a completed-operation notification.
type Event interface {
	EventType() string
}

// AdminRegistered reports the one-time root-admin bootstrap.
type AdminRegistered struct {
	Admin  types.AccountID `json:"admin"`
	Wallet types.AccountID `json:"wallet"`
}

func (AdminRegistered) EventType() string { return "AdminRegistered" }

// AdminAdded reports a new sub-admin appointment.
type AdminAdded struct {
	Who types.AccountID `json:"who"`
}

func (AdminAdded) EventType() string { return "AdminAdded" }

// PoolCreated reports a new liquidity pool registration.
type PoolCreated struct {
	ID     types.PoolID  `json:"id"`
	Token1 types.TokenID `json:"token1"`
	Token2 types.TokenID `json:"token2"`
}

func (PoolCreated) EventType() string { return "PoolCreated" }

// LiquidityAdded reports a deposit. Shares is the issued share count in
// decimal form (share counts are wider than 64 bits).
type LiquidityAdded struct {
	ID      types.PoolID    `json:"id"`
	Shares  string          `json:"shares"`
	By      types.AccountID `json:"by"`
	Amount1 types.Balance   `json:"amount1"`
	Amount2 types.Balance   `json:"amount2"`
}

func (LiquidityAdded) EventType() string { return "LiquidityAdded" }

// LiquidityRemoved reports a full-share withdrawal.
type LiquidityRemoved struct {
	ID      types.PoolID    `json:"id"`
	Shares  string          `json:"shares"`
	By      types.AccountID `json:"by"`
	Amount1 types.Balance   `json:"amount1"`
	Amount2 types.Balance   `json:"amount2"`
}

func (LiquidityRemoved) EventType() string { return "LiquidityRemoved" }

// TokenSwapped reports an executed swap.
type TokenSwapped struct {
	PoolID    types.PoolID    `json:"pool_id"`
	TokenIn   types.TokenID   `json:"token_in"`
	TokenOut  types.TokenID   `json:"token_out"`
	AmountIn  types.Balance   `json:"amount_in"`
	AmountOut types.Balance   `json:"amount_out"`
	Account   types.AccountID `json:"account"`
}

func (TokenSwapped) EventType() string { return "TokenSwapped" }

// FundsTransferred reports a treasury transfer.
type FundsTransferred struct {
	Who    types.AccountID `json:"who"`
	To     types.AccountID `json:"to"`
	Amount types.Balance   `json:"amount"`
	Token  types.TokenID   `json:"token"`
}

func (FundsTransferred) EventType() string { return "FundsTransferred" }
