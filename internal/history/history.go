// Package history persists completed-operation events into a sqlite database
// so swaps, liquidity changes and treasury transfers can be queried after the
// fact. It consumes the event bus and never blocks the engine.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
)

const schema = `
CREATE TABLE IF NOT EXISTS swaps (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	at         INTEGER NOT NULL,
	pool_id    INTEGER NOT NULL,
	token_in   INTEGER NOT NULL,
	token_out  INTEGER NOT NULL,
	amount_in  INTEGER NOT NULL,
	amount_out INTEGER NOT NULL,
	account    TEXT    NOT NULL
);
CREATE TABLE IF NOT EXISTS liquidity (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	at      INTEGER NOT NULL,
	pool_id INTEGER NOT NULL,
	action  TEXT    NOT NULL,
	shares  TEXT    NOT NULL,
	account TEXT    NOT NULL,
	amount1 INTEGER NOT NULL,
	amount2 INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS transfers (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	at      INTEGER NOT NULL,
	who     TEXT    NOT NULL,
	dest    TEXT    NOT NULL,
	token   INTEGER NOT NULL,
	amount  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS swaps_pool ON swaps(pool_id, id);
`

// Store records events into sqlite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (and if needed creates) the history database. Pass ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	// modernc sqlite serializes access per connection; a single connection
	// avoids table-lock errors from concurrent writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record persists one event. Events the store does not track are ignored.
func (s *Store) Record(ctx context.Context, ev events.Event) error {
	at := s.now().Unix()
	switch e := ev.(type) {
	case events.TokenSwapped:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO swaps (at, pool_id, token_in, token_out, amount_in, amount_out, account)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			at, e.PoolID, e.TokenIn, e.TokenOut, e.AmountIn, e.AmountOut, string(e.Account))
		return err
	case events.LiquidityAdded:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO liquidity (at, pool_id, action, shares, account, amount1, amount2)
			 VALUES (?, ?, 'add', ?, ?, ?, ?)`,
			at, e.ID, e.Shares, string(e.By), e.Amount1, e.Amount2)
		return err
	case events.LiquidityRemoved:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO liquidity (at, pool_id, action, shares, account, amount1, amount2)
			 VALUES (?, ?, 'remove', ?, ?, ?, ?)`,
			at, e.ID, e.Shares, string(e.By), e.Amount1, e.Amount2)
		return err
	case events.FundsTransferred:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO transfers (at, who, dest, token, amount) VALUES (?, ?, ?, ?, ?)`,
			at, string(e.Who), string(e.To), e.Token, e.Amount)
		return err
	default:
		return nil
	}
}

// Swap is one recorded swap.
type Swap struct {
	At        time.Time
	PoolID    types.PoolID
	TokenIn   types.TokenID
	TokenOut  types.TokenID
	AmountIn  types.Balance
	AmountOut types.Balance
	Account   types.AccountID
}

// RecentSwaps returns up to limit swaps on a pool, newest first.
func (s *Store) RecentSwaps(ctx context.Context, pool types.PoolID, limit int) ([]Swap, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, pool_id, token_in, token_out, amount_in, amount_out, account
		 FROM swaps WHERE pool_id = ? ORDER BY id DESC LIMIT ?`, pool, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Swap
	for rows.Next() {
		var sw Swap
		var at int64
		var account string
		if err := rows.Scan(&at, &sw.PoolID, &sw.TokenIn, &sw.TokenOut,
			&sw.AmountIn, &sw.AmountOut, &account); err != nil {
			return nil, err
		}
		sw.At = time.Unix(at, 0)
		sw.Account = types.AccountID(account)
		out = append(out, sw)
	}
	return out, rows.Err()
}

// Run consumes the bus until ctx is cancelled. Record failures are counted
// against the returned error only when the context is still live.
func (s *Store) Run(ctx context.Context, bus *events.Bus) error {
	ch, cancel := bus.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if err := s.Record(ctx, ev); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return fmt.Errorf("failed to record %s event: %w", ev.EventType(), err)
			}
		}
	}
}
