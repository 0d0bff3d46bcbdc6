package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/catalog"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/euact"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
)

func runCatalogCmd(args []string, stdout, stderr io.Writer) int {
	switch args[0] {
	case "validate":
		return runCatalogValidate(args[1:], stdout, stderr)
	case "show":
		return runCatalogShow(stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Unknown catalog subcommand: %s\n", args[0])
		return 2
	}
}

// runCatalogValidate loads a YAML catalog, compiles its guards and checks
// it against the running engine version.
func runCatalogValidate(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("catalog validate", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var file string
	cmd.StringVar(&file, "file", "", "Path to the catalog YAML (REQUIRED)")
	if err := cmd.Parse(args); err != nil {
		return 2
	}
	if file == "" {
		fmt.Fprintln(stderr, "Error: --file is required")
		cmd.Usage()
		return 2
	}

	cat, err := catalog.LoadCatalog(file)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid catalog: %v\n", err)
		return 1
	}
	if err := cat.CheckEngine(inference.Version); err != nil {
		fmt.Fprintf(stderr, "Engine mismatch: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "OK: %s (%d rules, min engine %s)\n", cat.Version, len(cat.Rules), cat.MinEngine)
	return 0
}

func runCatalogShow(stdout, stderr io.Writer) int {
	cat := euact.DefaultCatalog()
	if err := cat.Validate(); err != nil {
		fmt.Fprintf(stderr, "Built-in catalog invalid: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Catalog %s (min engine %s)\n", cat.Version, cat.MinEngine)
	for _, rule := range cat.Rules {
		guard := ""
		if rule.Guard != "" {
			guard = fmt.Sprintf("  [guard: %s]", rule.Guard)
		}
		fmt.Fprintf(stdout, "  %-32s %s%s\n", rule.ID, rule.Group, guard)
	}
	return 0
}
