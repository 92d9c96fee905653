// Command mcp-server starts the tutor's MCP tools on stdio. It accepts the
// same --config, --topic and --language flags as lattice-tutor.
package main

import (
	"fmt"
	"os"

	"github.com/Protocol-Lattice/lattice-tutor/src/cli"
)

func main() {
	args := append([]string{"mcp"}, os.Args[1:]...)
	if err := cli.ExecuteArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Server error: %v\n", err)
		os.Exit(1)
	}
}
