package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// errChecksFailed signals that the pipeline ran to completion and at
// least one check failed or was cancelled. Any other error out of
// Execute is an internal runner error.
var errChecksFailed = errors.New("checks failed")

var rootCmd = &cobra.Command{
	Use:   "cicheck",
	Short: "Run the project's code-quality pipeline",
	Long: "cicheck runs a fixed pipeline of code-quality checks (static analysis,\n" +
		"documentation build, formatting verification) over the current package and\n" +
		"reports aggregate pass/fail status.",
	Version:       Version,
	Args:          cobra.NoArgs,
	RunE:          runRun,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	os.Exit(exitCodeFor(rootCmd.Execute()))
}

// exitCodeFor maps Execute's error to the process exit code: 0 when
// every selected check passed, 1 when a check failed or was cancelled,
// 2 when an internal error prevented the pipeline from running.
func exitCodeFor(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errChecksFailed):
		return 1
	default:
		fmt.Fprintf(os.Stderr, "cicheck: %v\n", err)
		return 2
	}
}
