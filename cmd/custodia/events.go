package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/custodia-xyz/go-custodia/journal"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	typeFilter := fs.String("type", "", "Filter by event kind")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia events [options]

List journaled notifications in emission order.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Show all notifications
  custodia events

  # Only transfers
  custodia events --type transfer
`)
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

	filter := journal.Filter{Stream: e.cfg.EventStream()}
	if *typeFilter != "" {
		filter.Types = []string{*typeFilter}
	}

	recs, err := e.store.ReadAll(ctx, filter)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No events recorded")
		return nil
	}

	for _, r := range recs {
		fmt.Printf("%4d  %-10s  %s  %s\n",
			r.Version, r.Type,
			r.Timestamp.Format("2006-01-02 15:04:05"),
			string(r.Data))
	}
	return nil
}
