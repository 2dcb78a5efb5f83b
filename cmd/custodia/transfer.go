package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/custodia-xyz/go-custodia/ledger"
)

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	as := fs.String("as", "", "Caller address")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia transfer --as <address> [options] <to> <amount>

Move units from the caller to another account.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		fs.Usage()
		return fmt.Errorf("recipient and amount required")
	}

	to := ledger.Address(fs.Arg(0))
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

	if err := e.rec.Transfer(ctx, caller, to, amount); err != nil {
		return err
	}

	fmt.Printf("Transferred %s from %s to %s\n", amount.Dec(), caller, to)
	return nil
}

func transferFrom(args []string) error {
	fs := flag.NewFlagSet("transfer-from", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	as := fs.String("as", "", "Caller (spender) address")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia transfer-from --as <address> [options] <owner> <to> <amount>

Move units out of an owner's balance using the caller's allowance.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 {
		fs.Usage()
		return fmt.Errorf("owner, recipient, and amount required")
	}

	owner := ledger.Address(fs.Arg(0))
	to := ledger.Address(fs.Arg(1))
	amount, err := parseAmount(fs.Arg(2))
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

	if err := e.rec.TransferFrom(ctx, caller, owner, to, amount); err != nil {
		return err
	}

	fmt.Printf("Transferred %s from %s to %s (remaining allowance %s)\n",
		amount.Dec(), owner, to,
		e.ledger().Allowance(owner, caller).Dec())
	return nil
}
