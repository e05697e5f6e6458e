// Command burndown tracks throughput and ETA for a batch of work.
//
// See "burndown help" for the commands.
package main

import (
	"fmt"
	"os"

	"github.com/thruflo/burndown/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
