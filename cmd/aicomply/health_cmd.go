package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/config"
)

// runHealthCmd probes a running server over HTTP.
func runHealthCmd(stdout, stderr io.Writer) int {
	cfg := config.Load()
	url := fmt.Sprintf("http://localhost:%s/healthz", cfg.Port)

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(stderr, "Server unreachable at %s: %v\n", url, err)
		return 1
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(stderr, "Server unhealthy: HTTP %d\n", resp.StatusCode)
		return 1
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fmt.Fprintf(stderr, "Invalid health response: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "%sOK%s engine %s\n", ColorBold+ColorGreen, ColorReset, body["version"])
	return 0
}
