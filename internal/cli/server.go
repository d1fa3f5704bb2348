package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/permadex/godexd/internal/config"
	"github.com/permadex/godexd/internal/core/assets"
	"github.com/permadex/godexd/internal/core/state"
	"github.com/permadex/godexd/internal/core/tx"
	_ "github.com/permadex/godexd/internal/core/tx/all"
	"github.com/permadex/godexd/internal/events"
	"github.com/permadex/godexd/internal/history"
	"github.com/permadex/godexd/internal/server"
	"github.com/permadex/godexd/internal/storage/keyValueDb"
	_ "github.com/permadex/godexd/internal/storage/keyValueDb/leveldb"
	_ "github.com/permadex/godexd/internal/storage/keyValueDb/memory"
	_ "github.com/permadex/godexd/internal/storage/keyValueDb/pebble"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the exchange daemon",
	Long: `Start the dexd server: opens the ledger store, applies genesis
balances on first start, and serves the transaction and query API.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log.Level)

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	store, err := state.NewStore(db)
	if err != nil {
		return err
	}

	if err := applyGenesis(store, cfg, log); err != nil {
		return fmt.Errorf("failed to apply genesis balances: %w", err)
	}

	bus := events.NewBus()
	engine := tx.NewEngine(store, bus, log)

	var hist *history.Store
	if cfg.History.Enabled {
		path := cfg.History.Path
		if path == "" {
			path = filepath.Join(cfg.Node.DataDir, "history.db")
		}
		hist, err = history.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer hist.Close()
	}

	srv := server.New(engine, bus, server.Options{
		Listen:    cfg.Server.Listen,
		WsEnabled: cfg.Server.WsEnabled,
		History:   hist,
	}, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(ctx) })
	if hist != nil {
		g.Go(func() error {
			if err := hist.Run(ctx, bus); !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	log.Info().
		Str("backend", cfg.Node.DbBackend).
		Str("data_dir", cfg.Node.DataDir).
		Msg("dexd started")

	err = g.Wait()
	log.Info().Msg("dexd stopped")
	return err
}

func openDatabase(cfg *config.Config) (keyValueDb.DB, error) {
	path := filepath.Join(cfg.Node.DataDir, "ledger")
	if cfg.Node.DbBackend == keyValueDb.BackendMemory {
		path = ""
	} else if err := os.MkdirAll(cfg.Node.DataDir, 0o755); err != nil {
		return nil, err
	}
	return keyValueDb.Open(cfg.Node.DbBackend, path)
}

// applyGenesis seeds configured balances exactly once: any existing genesis
// marker, or any transaction history at all, skips the step.
func applyGenesis(store *state.Store, cfg *config.Config, log zerolog.Logger) error {
	if len(cfg.Genesis.Balances) == 0 {
		return nil
	}
	done, err := store.Has(state.GenesisAppliedKey())
	if err != nil {
		return err
	}
	if done {
		return nil
	}

	for _, b := range cfg.Genesis.Balances {
		if err := assets.Mint(store, b.Account, b.Token, b.Amount); err != nil {
			return err
		}
	}
	if err := store.Put(state.GenesisAppliedKey(), []byte{1}); err != nil {
		return err
	}
	log.Info().Int("balances", len(cfg.Genesis.Balances)).Msg("genesis balances applied")
	return nil
}
