package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/custodia-xyz/go-custodia/config"
)

func initConfig(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file to write")
	name := fs.String("name", "", "Token display name")
	symbol := fs.String("symbol", "", "Token symbol")
	pool := fs.String("pool", "", "Custody pool identity")
	journalPath := fs.String("journal", "", "Journal database path")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia init [options]

Write a default config file.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*configPath); err == nil {
		return fmt.Errorf("%s already exists", *configPath)
	}

	cfg := config.Default()
	if *name != "" {
		cfg.Token.Name = *name
	}
	if *symbol != "" {
		cfg.Token.Symbol = *symbol
	}
	if *pool != "" {
		cfg.Token.Pool = *pool
	}
	if *journalPath != "" {
		cfg.Journal.Path = *journalPath
	}

	if err := config.Write(*configPath, cfg); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", *configPath)
	return nil
}
