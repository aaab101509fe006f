// mk is the CLI for menukeeper, a small coffee menu and stock inventory keeper.
package main

import (
	"fmt"
	"os"

	"menukeeper/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
