// Package config loads the TOML configuration used by the custodia CLI.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/custodia-xyz/go-custodia/ledger"
)

// Config is the full operational configuration.
type Config struct {
	Token   Token   `toml:"token"`
	Journal Journal `toml:"journal"`
	Log     Log     `toml:"log"`
}

// Token holds ledger metadata and the custody pool identity.
type Token struct {
	Name     string `toml:"name"`
	Symbol   string `toml:"symbol"`
	Decimals uint8  `toml:"decimals"`
	Pool     string `toml:"pool"`
}

// Journal holds persistence settings.
type Journal struct {
	// Path is the SQLite database file, or ":memory:".
	Path string `toml:"path"`

	// Stream names the operation stream; the notification stream is
	// derived as Stream + ".events".
	Stream string `toml:"stream"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Token: Token{
			Name:     "Staked Units",
			Symbol:   "sUNIT",
			Decimals: 9,
			Pool:     string(ledger.DefaultPool),
		},
		Journal: Journal{
			Path:   "custodia.db",
			Stream: "ledger",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a TOML config file, filling missing fields with defaults.
// A missing file is not an error; defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Journal.Path == "" {
		cfg.Journal.Path = Default().Journal.Path
	}
	if cfg.Journal.Stream == "" {
		cfg.Journal.Stream = Default().Journal.Stream
	}
	return cfg, nil
}

// Write saves the configuration as TOML.
func Write(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return f.Close()
}

// LedgerConfig converts the token section into a ledger configuration.
func (c Config) LedgerConfig() ledger.Config {
	return ledger.Config{
		Metadata: ledger.Metadata{
			Name:     c.Token.Name,
			Symbol:   c.Token.Symbol,
			Decimals: c.Token.Decimals,
		},
		Pool: ledger.Address(c.Token.Pool),
	}
}

// EventStream returns the notification stream name.
func (c Config) EventStream() string {
	return c.Journal.Stream + ".events"
}
