package main

import (
	"fmt"
	"io"
	"os"
)

// Dispatcher
func main() {
	os.Exit(Run(os.Args, os.Stdout, os.Stderr))
}

// startServer is a variable to allow mocking in tests
var startServer = runServer

// Run is the entrypoint for testing
func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		printUsage(stdout)
		return 2
	}

	switch args[1] {
	case "evaluate":
		return runEvaluateCmd(args[2:], stdout, stderr)
	case "server", "serve":
		startServer()
		return 0
	case "catalog":
		if len(args) < 3 {
			_, _ = fmt.Fprintln(stderr, "Usage: aicomply catalog <validate|show>")
			return 2
		}
		return runCatalogCmd(args[2:], stdout, stderr)
	case "export":
		return runExportCmd(args[2:], stdout, stderr)
	case "health":
		return runHealthCmd(stdout, stderr)
	case "version":
		printVersion(stdout)
		return 0
	case "help", "--help", "-h":
		printUsage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		printUsage(stderr)
		return 2
	}
}

// ANSI Colors
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorGreen = "\033[32m"
	ColorBlue  = "\033[34m"
	ColorCyan  = "\033[36m"
	ColorGray  = "\033[37m"
)

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "%saicomply%s\n", ColorBold+ColorBlue, ColorReset)
	fmt.Fprintf(w, "%sSemantic compliance classification for AI systems.%s\n", ColorGray, ColorReset)
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "%sUSAGE:%s\n", ColorBold, ColorReset)
	fmt.Fprintln(w, "  aicomply <command> [flags]")
	fmt.Fprintln(w, "")

	printSection(w, "EVALUATION")
	printCommand(w, "evaluate", "Classify one system from a JSON fact file (--input, --pretty)")
	printCommand(w, "export", "Re-export a stored evaluation report (--id)")

	printSection(w, "CATALOG")
	printCommand(w, "catalog", "Validate or show a rule catalog (validate/show)")

	printSection(w, "SERVER")
	printCommand(w, "server", "Run the HTTP API server")
	printCommand(w, "health", "Check server health (HTTP)")

	printSection(w, "UTILITIES")
	printCommand(w, "version", "Show version information")
	printCommand(w, "help", "Show this help")
	fmt.Fprintln(w, "")
}

func printSection(w io.Writer, title string) {
	fmt.Fprintf(w, "%s%s:%s\n", ColorBold+ColorCyan, title, ColorReset)
}

func printCommand(w io.Writer, name, desc string) {
	fmt.Fprintf(w, "  %s%-12s%s %s\n", ColorGreen, name, ColorReset, desc)
}
