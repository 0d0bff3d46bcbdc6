package main

import (
	"fmt"
	"io"

	"github.com/cartesiosson/ai-act-project-sub003/pkg/euact"
	"github.com/cartesiosson/ai-act-project-sub003/pkg/inference"
)

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "aicomply engine %s (catalog %s)\n", inference.Version, euact.CatalogVersion)
}
