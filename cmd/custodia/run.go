package main

import (
	"context"
	"fmt"
	"os"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"

	"github.com/custodia-xyz/go-custodia/config"
	"github.com/custodia-xyz/go-custodia/journal"
	"github.com/custodia-xyz/go-custodia/ledger"
)

const defaultConfigPath = "custodia.toml"

// env bundles everything a command needs: the rebuilt ledger behind a
// journaling recorder, the open store, and a logger.
type env struct {
	cfg   config.Config
	store journal.Store
	rec   *journal.Recorder
	log   zerolog.Logger
}

// openEnv loads the config, opens the journal, and rebuilds the ledger
// from the operation stream.
func openEnv(ctx context.Context, configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cfg.Log.Level)

	store, err := journal.NewSQLiteStore(cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	led, err := journal.Rebuild(ctx, store, cfg.Journal.Stream, cfg.LedgerConfig())
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("rebuild ledger: %w", err)
	}
	led.SetSink(journal.NewSink(store, cfg.EventStream(), logger))

	return &env{
		cfg:   cfg,
		store: store,
		rec:   journal.NewRecorder(led, store, cfg.Journal.Stream),
		log:   logger,
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

func (e *env) ledger() *ledger.Ledger {
	return e.rec.Ledger()
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().
		Logger()
}

// parseAmount parses a decimal amount into a 256-bit quantity.
func parseAmount(s string) (*uint256.Int, error) {
	amount := new(uint256.Int)
	if err := amount.SetFromDecimal(s); err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

// requireCaller validates the --as flag.
func requireCaller(as string) (ledger.Address, error) {
	if as == "" {
		return "", fmt.Errorf("caller required (--as <address>)")
	}
	return ledger.Address(as), nil
}
