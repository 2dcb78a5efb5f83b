package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/custodia-xyz/go-custodia/ledger"
)

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia balance <address> [options]

Show an account balance.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("address required")
	}

	account := ledger.Address(fs.Arg(0))

	ctx := context.Background()
	e, err := openEnv(ctx, *configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Printf("%s: %s %s\n", account, e.ledger().BalanceOf(account).Dec(), e.ledger().Symbol())
	return nil
}

func allowance(args []string) error {
	fs := flag.NewFlagSet("allowance", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia allowance <owner> <spender> [options]

Show the remaining amount a spender may move for an owner.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("owner and spender required")
	}

	owner := ledger.Address(fs.Arg(0))
	spender := ledger.Address(fs.Arg(1))

	ctx := context.Background()
	e, err := openEnv(ctx, *configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	fmt.Printf("%s -> %s: %s %s\n", owner, spender,
		e.ledger().Allowance(owner, spender).Dec(), e.ledger().Symbol())
	return nil
}

func supply(args []string) error {
	fs := flag.NewFlagSet("supply", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia supply [options]

Show total supply, custody pool, and token metadata.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	ctx := context.Background()
	e, err := openEnv(ctx, *configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	l := e.ledger()
	fmt.Printf("%s (%s), %d decimals\n", l.Name(), l.Symbol(), l.Decimals())
	fmt.Printf("Total supply:  %s\n", l.TotalSupply().Dec())
	fmt.Printf("Custody pool:  %s\n", l.CustodyBalance().Dec())
	return nil
}
