// Command gradebook manages an ordered list of student grade records.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/gradebook/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	// Command failures have already been reported by the output formatter.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
