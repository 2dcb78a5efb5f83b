package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/custodia-xyz/go-custodia/ledger"
)

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	as := fs.String("as", "", "Caller (owner) address")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia approve --as <address> [options] <spender> <amount>

Set the caller's allowance for a spender. An amount of 0 revokes it.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("spender and amount required")
	}

	spender := ledger.Address(fs.Arg(0))
	amount, err := parseAmount(fs.Arg(1))
	if err != nil {
		return err
	}
	caller, err := requireCaller(*as)
	if err != nil {
		return err
	}

	ctx := context.Background()
	e, err := openEnv(ctx, *configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.rec.Approve(ctx, caller, spender, amount); err != nil {
		return err
	}

	fmt.Printf("Approved %s for %s on behalf of %s\n", amount.Dec(), spender, caller)
	return nil
}
