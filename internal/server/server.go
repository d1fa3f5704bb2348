// Package server exposes the engine over HTTP: transaction submission, pool
// and balance queries, swap history, a health check and a websocket event
// stream.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	"github.com/permadex/godexd/internal/core/types"
	"github.com/permadex/godexd/internal/events"
	"github.com/permadex/godexd/internal/history"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server. History may be nil; WsEnabled gates the /ws
// endpoint.
type Options struct {
	Listen    string
	WsEnabled bool
	History   *history.Store
}

// Server is the HTTP front end.
type Server struct {
	engine  *tx.Engine
	bus     *events.Bus
	opts    Options
	log     zerolog.Logger
	httpSrv *http.Server

	upgrader websocket.Upgrader
}

// New creates a server over an engine and its bus.
func New(engine *tx.Engine, bus *events.Bus, opts Options, log zerolog.Logger) *Server {
	s := &Server{
		engine: engine,
		bus:    bus,
		opts:   opts,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tx", s.handleSubmit)
	mux.HandleFunc("/pools/", s.handlePool)
	mux.HandleFunc("/balances/", s.handleBalance)
	mux.HandleFunc("/health", s.handleHealth)
	if opts.WsEnabled {
		mux.HandleFunc("/ws", s.handleWs)
	}

	s.httpSrv = &http.Server{
		Addr:         opts.Listen,
		Handler:      mux,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info().Str("listen", s.opts.Listen).Msg("http server listening")
		if err := s.httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

type submitResponse struct {
	Result  string         `json:"result"`
	Code    int            `json:"code"`
	Applied bool           `json:"applied"`
	Events  []eventWrapper `json:"events,omitempty"`
}

type eventWrapper struct {
	Type string       `json:"type"`
	Data events.Event `json:"data"`
}

// handleSubmit decodes a JSON transaction, applies it and reports the result
// code. Malformed requests are 400; everything decodable gets a 200 with the
// engine's verdict, success or not.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	txn, err := tx.FromJSON(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := s.engine.Apply(txn)
	resp := submitResponse{
		Result:  res.Code.String(),
		Code:    int(res.Code),
		Applied: res.Applied,
	}
	for _, ev := range res.Events {
		resp.Events = append(resp.Events, eventWrapper{Type: ev.EventType(), Data: ev})
	}
	writeJSON(w, http.StatusOK, resp)
}

type poolResponse struct {
	ID          types.PoolID   `json:"id"`
	Token1      types.TokenID  `json:"token1"`
	Token2      types.TokenID  `json:"token2"`
	Reserve1    types.Balance  `json:"reserve1"`
	Reserve2    types.Balance  `json:"reserve2"`
	TotalShares string         `json:"total_shares"`
	Swaps       []history.Swap `json:"swaps,omitempty"`
}

// handlePool serves GET /pools/{id}, with recent swap history attached when a
// history store is wired in.
func (s *Server) handlePool(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/pools/")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pool id")
		return
	}

	pool, found, err := state.LoadPool(s.engine.Store(), types.PoolID(id))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "pool not found")
		return
	}

	resp := poolResponse{
		ID:          types.PoolID(id),
		Token1:      pool.Token1,
		Token2:      pool.Token2,
		Reserve1:    pool.Reserve1,
		Reserve2:    pool.Reserve2,
		TotalShares: pool.TotalSharesWide().Dec(),
	}
	if s.opts.History != nil {
		swaps, err := s.opts.History.RecentSwaps(r.Context(), types.PoolID(id), 20)
		if err == nil {
			resp.Swaps = swaps
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type balanceResponse struct {
	Account types.AccountID `json:"account"`
	Token   types.TokenID   `json:"token"`
	Amount  types.Balance   `json:"amount"`
}

// handleBalance serves GET /balances/{account}/{token}.
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "GET required")
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/balances/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "expected /balances/{account}/{token}")
		return
	}
	token, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid token id")
		return
	}

	account := types.AccountID(parts[0])
	amount, err := assets.BalanceOf(s.engine.Store(), types.TokenID(token), account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{
		Account: account,
		Token:   types.TokenID(token),
		Amount:  amount,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "dexd"})
}

// handleWs upgrades to a websocket and streams every event as a typed JSON
// envelope until the client goes away.
func (s *Server) handleWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ch, cancel := s.bus.Subscribe()
	defer cancel()

	// Drain reads so close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for ev := range ch {
		if err := conn.WriteJSON(eventWrapper{Type: ev.EventType(), Data: ev}); err != nil {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
