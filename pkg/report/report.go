// Package report renders a PipelineResult and selects the process exit
// code. Rendering is a pure function of the result: no side effects
// beyond writing to the given writer.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jwalton/go-supportscolor"

	"github.com/dtoniolo/cicheck/pkg/check"
)

var (
	green  = "\033[32m"
	red    = "\033[31m"
	yellow = "\033[33m"
	reset  = "\033[0m"
)

func init() {
	if !supportscolor.Stdout().SupportsColor {
		green, red, yellow, reset = "", "", "", ""
	}
}

// Format identifies a report rendering format.
type Format string

const (
	FormatText  Format = "text"
	FormatJSON  Format = "json"
	FormatJUnit Format = "junit"
)

// ParseFormat validates a format name. An empty name selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatJUnit:
		return FormatJUnit, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Render writes the result in the requested format.
func Render(w io.Writer, result check.PipelineResult, format Format) error {
	parsed, err := ParseFormat(string(format))
	if err != nil {
		return err
	}
	switch parsed {
	case FormatJSON:
		return JSON(w, result)
	case FormatJUnit:
		return JUnit(w, result)
	default:
		return Text(w, result)
	}
}

// ExitCode maps a result to the process exit code: 0 when every check
// passed, 1 otherwise.
func ExitCode(result check.PipelineResult) int {
	if result.OverallPassed() {
		return 0
	}
	return 1
}

// Text renders per-check lines followed by a summary line. Diagnostics
// of non-passed checks are always included, even when several checks
// failed.
func Text(w io.Writer, result check.PipelineResult) error {
	for _, o := range result.Outcomes {
		if _, err := fmt.Fprintf(w, "%s: %s (%s)\n", o.CheckName, colorStatus(o.Status), formatDuration(o.Duration)); err != nil {
			return err
		}
		if o.Passed() || o.Status == check.StatusSkipped {
			continue
		}
		if err := writeDiagnostics(w, o); err != nil {
			return err
		}
	}

	passed, failed, skipped, cancelled := result.Counts()
	summary := fmt.Sprintf("%d passed, %d failed, %d skipped", passed, failed, skipped)
	if cancelled > 0 {
		summary += fmt.Sprintf(", %d cancelled", cancelled)
	}

	overall := green + "PASSED" + reset
	if !result.OverallPassed() {
		overall = red + "FAILED" + reset
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", summary, overall)
	return err
}

func writeDiagnostics(w io.Writer, o check.Outcome) error {
	if o.Err != nil {
		if _, err := fmt.Fprintf(w, "      %s\n", o.Err); err != nil {
			return err
		}
	}
	if o.ExitCode != nil && *o.ExitCode != 0 {
		if _, err := fmt.Fprintf(w, "      exit code: %d\n", *o.ExitCode); err != nil {
			return err
		}
	}
	for _, stream := range []struct{ label, text string }{
		{"stdout", o.Stdout},
		{"stderr", o.Stderr},
	} {
		text := strings.TrimRight(stream.text, "\n")
		if text == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "      %s:\n", stream.label); err != nil {
			return err
		}
		for _, line := range strings.Split(text, "\n") {
			if _, err := fmt.Fprintf(w, "        %s\n", line); err != nil {
				return err
			}
		}
	}
	return nil
}

func colorStatus(s check.Status) string {
	switch s {
	case check.StatusPassed:
		return green + string(s) + reset
	case check.StatusFailed:
		return red + string(s) + reset
	default:
		return yellow + string(s) + reset
	}
}

// formatDuration rounds to the millisecond so reports stay readable.
func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
