package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dtoniolo/cicheck/pkg/invoke"
	"github.com/dtoniolo/cicheck/pkg/pipeline"
	"github.com/dtoniolo/cicheck/pkg/registry"
	"github.com/dtoniolo/cicheck/pkg/report"
)

var (
	failFast     bool
	onlyChecks   []string
	pipelinePath string
	workDir      string
	outputFormat string
	timeout      time.Duration
)

// stdout is swapped for a buffer in tests.
var stdout io.Writer = os.Stdout

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the quality pipeline",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	for _, cmd := range []*cobra.Command{rootCmd, runCmd} {
		bindPipelineFlags(cmd)
		bindRunFlags(cmd)
	}
	rootCmd.AddCommand(runCmd)
}

// bindPipelineFlags binds the flags that select which checks make up
// the pipeline. Shared with the list command.
func bindPipelineFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&pipelinePath, "file", "", "path to pipeline file (default: search "+registry.DefaultFileName+" up from the current directory)")
	flags.StringSliceVar(&onlyChecks, "only", nil, "run only the named checks, preserving pipeline order")
	flags.StringVar(&workDir, "dir", "", "working directory for checks that do not set their own")
}

func bindRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.BoolVar(&failFast, "fail-fast", false, "stop after the first failed check (default: run all checks)")
	flags.StringVar(&outputFormat, "format", "text", "report format: text, json or junit")
	flags.DurationVar(&timeout, "timeout", 0, "overall deadline for the pipeline (0 = none)")
}

func runRun(cmd *cobra.Command, args []string) error {
	format, err := report.ParseFormat(outputFormat)
	if err != nil {
		return err
	}

	reg, err := resolveRegistry()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	policy := pipeline.RunAll
	if failFast {
		policy = pipeline.FailFast
	}

	runner := &pipeline.Runner{Invoker: &invoke.ExecInvoker{}, Policy: policy}
	result := runner.Run(ctx, reg)

	if err := report.Render(stdout, result, format); err != nil {
		return err
	}
	if report.ExitCode(result) != 0 {
		return errChecksFailed
	}
	return nil
}

// resolveRegistry builds the effective pipeline: built-in checks or a
// pipeline file, narrowed by --only and rooted at --dir.
func resolveRegistry() (*registry.Registry, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	path, err := registry.FindFile(wd, pipelinePath)
	if err != nil {
		return nil, err
	}

	reg := registry.Builtin()
	if path != "" {
		if reg, err = registry.Load(path); err != nil {
			return nil, err
		}
	}

	if len(onlyChecks) > 0 {
		if reg, err = reg.Filter(onlyChecks); err != nil {
			return nil, err
		}
	}
	if workDir != "" {
		reg = reg.WithDir(workDir)
	}
	return reg, nil
}
