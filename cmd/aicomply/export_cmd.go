package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/config"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/exportstore"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/ledger"
)

// runExportCmd re-exports a stored evaluation record to the configured
// export backend. It reads the durable ledger directly, so it works
// without a running server.
func runExportCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("export", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var id string
	cmd.StringVar(&id, "id", "", "Evaluation ID to export (REQUIRED)")
	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if id == "" {
		fmt.Fprintln(stderr, "Error: --id is required")
		cmd.Usage()
		return 2
	}

	ctx := context.Background()
	cfg := config.Load()

	var (
		records *ledger.SQLStore
		err     error
	)
	switch cfg.LedgerDriver {
	case "sqlite":
		records, err = ledger.OpenSQLite(ctx, cfg.SQLitePath)
	case "postgres":
		records, err = ledger.OpenPostgres(ctx, cfg.DatabaseURL)
	default:
		fmt.Fprintf(stderr, "Export requires a durable ledger (LEDGER_DRIVER=sqlite or postgres, got %q)\n", cfg.LedgerDriver)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error opening ledger: %v\n", err)
		return 1
	}
	defer func() { _ = records.Close() }()

	rec, err := records.Get(ctx, id)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	exports, err := exportstore.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error opening export store: %v\n", err)
		return 1
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		fmt.Fprintf(stderr, "Error encoding record: %v\n", err)
		return 1
	}
	if err := exports.Put(ctx, rec.ID, payload); err != nil {
		fmt.Fprintf(stderr, "Error exporting: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Exported %s (system %s, hash %s)\n", rec.ID, rec.SystemID, rec.ResultHash)
	return 0
}
