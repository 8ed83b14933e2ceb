// verdant is the command line client for verdant-ledgerd.
package main

import (
	"fmt"
	"os"

	"verdant.eco/ledger/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
