package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/custodia-xyz/go-custodia/journal"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "Config file")
	output := fs.String("output", "", "Output file (default stdout)")
	which := fs.String("stream", "ops", "Which stream to export: ops or events")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: custodia export [options]

Export journal records as JSONL.

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

	stream := e.cfg.Journal.Stream
	if *which == "events" {
		stream = e.cfg.EventStream()
	}

	recs, err := e.store.Read(ctx, stream, 0)
	if err != nil {
		return err
	}

	if *output == "" {
		return journal.WriteJSONL(os.Stdout, recs)
	}
	if err := journal.ExportJSONL(*output, recs); err != nil {
		return err
	}
	fmt.Printf("Wrote %d records to %s\n", len(recs), *output)
	return nil
}
