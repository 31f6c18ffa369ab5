package report

import (
	"bytes"
	"encoding/xml"
	"errors"
	"strings"
	"testing"

	"github.com/dtoniolo/cicheck/pkg/check"
)

func TestJUnit(t *testing.T) {
	result := check.PipelineResult{Outcomes: []check.Outcome{
		mixedResult().Outcomes[0],
		mixedResult().Outcomes[2],
		{CheckName: "deps", Status: check.StatusFailed, Kind: check.KindToolStart, Err: errors.New("could not start cargo-machete")},
		check.Skipped("configs"),
	}}

	var buf bytes.Buffer
	if err := JUnit(&buf, result); err != nil {
		t.Fatalf("JUnit() error = %v", err)
	}
	out := buf.String()

	var suite junitTestSuite
	if err := xml.Unmarshal(buf.Bytes(), &suite); err != nil {
		t.Fatalf("output is not valid XML: %v\n%s", err, out)
	}

	if suite.Tests != 4 {
		t.Errorf("tests = %d, want 4", suite.Tests)
	}
	if suite.Failures != 1 {
		t.Errorf("failures = %d, want 1", suite.Failures)
	}
	if suite.Errors != 1 {
		t.Errorf("errors = %d, want 1", suite.Errors)
	}
	if suite.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", suite.Skipped)
	}

	format := suite.TestCases[1]
	if format.Failure == nil {
		t.Fatal("format testcase has no <failure>")
	}
	if !strings.Contains(format.Failure.Body, "unformatted file X") {
		t.Errorf("failure body = %q, want captured stdout", format.Failure.Body)
	}

	deps := suite.TestCases[2]
	if deps.Error == nil {
		t.Fatal("start failure must map to <error>, not <failure>")
	}
	if !strings.Contains(deps.Error.Message, "could not start") {
		t.Errorf("error message = %q, want 'could not start'", deps.Error.Message)
	}

	if suite.TestCases[3].Skipped == nil {
		t.Error("skipped check has no <skipped> element")
	}

	if !strings.HasPrefix(out, xml.Header) {
		t.Error("output missing XML header")
	}
}

func TestJUnit_CancelledMapsToError(t *testing.T) {
	result := check.PipelineResult{Outcomes: []check.Outcome{
		{CheckName: "docs", Status: check.StatusCancelled, Kind: check.KindCancelled, Err: errors.New("docs cancelled: context canceled")},
	}}

	var buf bytes.Buffer
	if err := JUnit(&buf, result); err != nil {
		t.Fatalf("JUnit() error = %v", err)
	}

	var suite junitTestSuite
	if err := xml.Unmarshal(buf.Bytes(), &suite); err != nil {
		t.Fatalf("output is not valid XML: %v", err)
	}
	if suite.Errors != 1 {
		t.Errorf("errors = %d, want 1", suite.Errors)
	}
	if suite.TestCases[0].Error == nil {
		t.Error("cancelled check has no <error> element")
	}
}
