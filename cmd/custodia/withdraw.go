package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func withdraw(args []string) error {
	fs := flag.NewFlagSet("withdraw", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	as := fs.String("as", "", "Caller address")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia withdraw --as <address> [options] <amount>

Burn units from the caller and release custody.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("amount required")
	}

	amount, err := parseAmount(fs.Arg(0))
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

	if err := e.rec.Withdraw(ctx, caller, amount); err != nil {
		return err
	}

	fmt.Printf("Withdrew %s from %s (balance %s, supply %s)\n",
		amount.Dec(), caller,
		e.ledger().BalanceOf(caller).Dec(),
		e.ledger().TotalSupply().Dec())
	return nil
}
