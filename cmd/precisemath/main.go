// Command precisemath evaluates exact fraction arithmetic, runs scenario
// files and inspects recorded evaluation history.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/precisemath/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
