package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mmdatafocus/billing_ledger/config"
	"github.com/mmdatafocus/billing_ledger/models"
	"github.com/mmdatafocus/billing_ledger/workflow"
)

func main() {
	ifNeeded := flag.Bool("if-needed", false, "Skip the pass when purchases, sales and inventory are unchanged since the last one")
	dataDir := flag.String("data-dir", "", "Optional: data directory for the file backend (overrides LEDGER_DATA_DIR)")
	flag.Parse()

	cfg := config.LoadLedgerConfig()
	if strings.TrimSpace(*dataDir) != "" {
		cfg.DataDir = strings.TrimSpace(*dataDir)
	}
	logger := config.GetLogger()

	ctx := context.Background()
	ledger, err := workflow.OpenLedger(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open ledger: %v\n", err)
		os.Exit(1)
	}

	var result models.ReconcileResult
	if *ifNeeded && !config.ReconcileForce() {
		result, err = ledger.ReconcileIfNeeded(ctx)
	} else {
		result, err = ledger.Reconcile(ctx)
	}

	out, marshalErr := json.MarshalIndent(result, "", "    ")
	if marshalErr == nil {
		fmt.Println(string(out))
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "reconcile failed: %v\n", err)
		os.Exit(1)
	}
}
