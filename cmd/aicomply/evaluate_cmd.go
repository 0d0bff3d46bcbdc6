package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/catalog"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/evaluation"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
)

// runEvaluateCmd classifies one system from a JSON request file and prints
// the evaluation to stdout.
func runEvaluateCmd(args []string, stdout, stderr io.Writer) int {
	cmd := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		inputPath      string
		catalogPath    string
		backgroundPath string
		parallel       bool
		pretty         bool
	)
	cmd.StringVar(&inputPath, "input", "-", "Path to the JSON evaluation request ('-' for stdin)")
	cmd.StringVar(&catalogPath, "catalog", "", "Rule catalog YAML (default: built-in EU AI Act catalog)")
	cmd.StringVar(&backgroundPath, "background", "", "Background graph YAML (default: built-in)")
	cmd.BoolVar(&parallel, "parallel", false, "Use the parallel inference mode")
	cmd.BoolVar(&pretty, "pretty", false, "Indent the JSON output")

	if err := cmd.Parse(args); err != nil {
		return 2
	}

	var (
		input []byte
		err   error
	)
	if inputPath == "-" {
		input, err = io.ReadAll(os.Stdin)
	} else {
		input, err = os.ReadFile(inputPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		return 2
	}

	var req evaluation.Request
	if err := json.Unmarshal(input, &req); err != nil {
		fmt.Fprintf(stderr, "Error parsing request: %v\n", err)
		return 2
	}

	cfg := evaluation.Config{
		Engine: inference.Config{MaxPasses: 100, Parallel: parallel, Workers: 4},
	}
	if catalogPath != "" {
		cfg.Catalog, err = catalog.LoadCatalog(catalogPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading catalog: %v\n", err)
			return 2
		}
	}
	if backgroundPath != "" {
		cfg.Background, err = catalog.LoadBackground(backgroundPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading background graph: %v\n", err)
			return 2
		}
	}

	svc, err := evaluation.New(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	eval, err := svc.Evaluate(context.Background(), req)
	if err != nil {
		fmt.Fprintf(stderr, "Evaluation failed: %v\n", err)
		return 1
	}

	enc := json.NewEncoder(stdout)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(eval); err != nil {
		fmt.Fprintf(stderr, "Error encoding result: %v\n", err)
		return 1
	}
	return 0
}
