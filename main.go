// Package main provides the entry point for the Coalesce cache replacement
// benchmark suite: a learned, coherence-aware replacement engine compared
// against LRU, SRRIP, SHiP, and SDBP under synthetic access traces.
//
// For the full CLI, use: go run ./cmd/coalsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("COALESCE - Coherence-Aware Learned Cache Replacement")
	fmt.Println("")
	fmt.Println("Usage: coalsim [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -scenario     Scenario to run (pollution, graphhub, phasechange, all)")
	fmt.Println("  -iterations   Iteration count override")
	fmt.Println("  -config       Path to cache configuration JSON file")
	fmt.Println("  -record       Record results into a SQLite database")
	fmt.Println("  -v            Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/coalsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/coalsim' instead.")
	}
}
