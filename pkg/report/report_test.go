package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dtoniolo/cicheck/pkg/check"
)

// disableColors blanks the ANSI codes for the duration of a test.
func disableColors(t *testing.T) {
	t.Helper()
	oldGreen, oldRed, oldYellow, oldReset := green, red, yellow, reset
	green, red, yellow, reset = "", "", "", ""
	t.Cleanup(func() {
		green, red, yellow, reset = oldGreen, oldRed, oldYellow, oldReset
	})
}

func exitCode(c int) *int {
	return &c
}

func mixedResult() check.PipelineResult {
	return check.PipelineResult{Outcomes: []check.Outcome{
		{
			CheckName: "analysis",
			Status:    check.StatusPassed,
			ExitCode:  exitCode(0),
			Duration:  120 * time.Millisecond,
		},
		{
			CheckName: "docs",
			Status:    check.StatusPassed,
			ExitCode:  exitCode(0),
			Duration:  1200 * time.Millisecond,
		},
		{
			CheckName: "format",
			Status:    check.StatusFailed,
			Kind:      check.KindToolFailure,
			ExitCode:  exitCode(1),
			Stdout:    "unformatted file X\n",
			Duration:  80 * time.Millisecond,
			Err:       errors.New("gofmt ran and failed: exit status 1"),
		},
	}}
}

func TestText_MixedResult(t *testing.T) {
	disableColors(t)

	var buf bytes.Buffer
	if err := Text(&buf, mixedResult()); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"analysis: PASS (120ms)",
		"docs: PASS (1.2s)",
		"format: FAIL (80ms)",
		"unformatted file X",
		"exit code: 1",
		"2 passed, 1 failed, 0 skipped",
		"FAILED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestText_AllPassed(t *testing.T) {
	disableColors(t)

	result := check.PipelineResult{Outcomes: []check.Outcome{
		{CheckName: "analysis", Status: check.StatusPassed, Duration: time.Millisecond},
	}}

	var buf bytes.Buffer
	if err := Text(&buf, result); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "1 passed, 0 failed, 0 skipped") {
		t.Errorf("output missing summary:\n%s", out)
	}
	if !strings.Contains(out, "PASSED") {
		t.Errorf("output missing overall PASSED:\n%s", out)
	}
	if strings.Contains(out, "FAILED") {
		t.Errorf("output must not say FAILED:\n%s", out)
	}
}

func TestText_SkippedAndCancelled(t *testing.T) {
	disableColors(t)

	result := check.PipelineResult{Outcomes: []check.Outcome{
		{CheckName: "analysis", Status: check.StatusCancelled, Kind: check.KindCancelled, Err: errors.New("analysis cancelled: context deadline exceeded")},
		check.Skipped("docs"),
		check.Skipped("format"),
	}}

	var buf bytes.Buffer
	if err := Text(&buf, result); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"analysis: CANCELLED",
		"docs: SKIP",
		"format: SKIP",
		"0 passed, 0 failed, 2 skipped, 1 cancelled",
		"FAILED",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestText_MultipleFailuresAllShown(t *testing.T) {
	disableColors(t)

	result := check.PipelineResult{Outcomes: []check.Outcome{
		{CheckName: "analysis", Status: check.StatusFailed, Kind: check.KindToolFailure, Stderr: "vet: suspicious call\n", Err: errors.New("exit status 2")},
		{CheckName: "format", Status: check.StatusFailed, Kind: check.KindToolFailure, Stdout: "main.go\n", Err: errors.New("findings on stdout")},
	}}

	var buf bytes.Buffer
	if err := Text(&buf, result); err != nil {
		t.Fatalf("Text() error = %v", err)
	}
	out := buf.String()

	// Diagnostics are never suppressed, even with several failures.
	if !strings.Contains(out, "suspicious call") {
		t.Errorf("first failure's diagnostics missing:\n%s", out)
	}
	if !strings.Contains(out, "main.go") {
		t.Errorf("second failure's diagnostics missing:\n%s", out)
	}
}

func TestExitCode(t *testing.T) {
	passing := check.PipelineResult{Outcomes: []check.Outcome{
		{CheckName: "analysis", Status: check.StatusPassed},
	}}
	if got := ExitCode(passing); got != 0 {
		t.Errorf("ExitCode(passing) = %d, want 0", got)
	}

	if got := ExitCode(mixedResult()); got != 1 {
		t.Errorf("ExitCode(failed) = %d, want 1", got)
	}

	cancelled := check.PipelineResult{Outcomes: []check.Outcome{
		{CheckName: "analysis", Status: check.StatusCancelled},
	}}
	if got := ExitCode(cancelled); got != 1 {
		t.Errorf("ExitCode(cancelled) = %d, want 1", got)
	}
}

func TestRender_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, check.PipelineResult{}, "html")
	if err == nil {
		t.Fatal("Render() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "html") {
		t.Errorf("error = %q, want mention of the format", err)
	}
}

func TestRender_DefaultsToText(t *testing.T) {
	disableColors(t)

	var buf bytes.Buffer
	if err := Render(&buf, mixedResult(), ""); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(buf.String(), "2 passed, 1 failed, 0 skipped") {
		t.Errorf("empty format did not render text:\n%s", buf.String())
	}
}
