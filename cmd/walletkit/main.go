// Command walletkit inspects factor source fixtures and runs the value
// semantics conformance harness.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/walletkit/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
