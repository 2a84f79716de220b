// Command undraft watches a pull request's verification checks and marks
// the pull request ready for review once every check passes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	// Final safety net: never hang silently or exit 0 on an unhandled
	// fault.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "unexpected error: %v\n", r)
			os.Exit(1)
		}
	}()

	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Help display is not a successful run: exit 0 is reserved for a
	// pull request actually marked ready.
	if helpRequested(cmd) {
		os.Exit(1)
	}
}

func helpRequested(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("help")
	return flag != nil && flag.Changed
}
