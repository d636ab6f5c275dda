// Command tacsim runs the tactical engagement simulator: Monte-Carlo
// batch sweeps, single-run trajectory replay capture, and the
// distributed coordinator/worker barrier protocol.
package main

import (
	"fmt"
	"os"

	"github.com/picogrid/legion-tacsim/cmd/tacsim/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
