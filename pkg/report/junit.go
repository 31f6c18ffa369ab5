package report

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/dtoniolo/cicheck/pkg/check"
)

// JUnit XML schema types

type junitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	XMLName xml.Name      `xml:"testcase"`
	Name    string        `xml:"name,attr"`
	Time    float64       `xml:"time,attr"`
	Failure *junitFailure `xml:"failure,omitempty"`
	Error   *junitError   `xml:"error,omitempty"`
	Skipped *junitSkipped `xml:"skipped,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

type junitError struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

type junitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnit renders the result as a JUnit XML testsuite, one testcase per
// check. Tool failures map to <failure>; start failures, internal
// errors and cancellations map to <error>; skipped checks to <skipped>.
func JUnit(w io.Writer, result check.PipelineResult) error {
	suite := junitTestSuite{
		Name:  "cicheck",
		Tests: len(result.Outcomes),
	}

	for _, o := range result.Outcomes {
		tc := junitTestCase{
			Name: o.CheckName,
			Time: o.Duration.Seconds(),
		}
		suite.Time += o.Duration.Seconds()

		message := ""
		if o.Err != nil {
			message = o.Err.Error()
		}
		body := o.Stdout
		if o.Stderr != "" {
			body += o.Stderr
		}

		switch o.Status {
		case check.StatusFailed:
			if o.Kind == check.KindToolFailure {
				suite.Failures++
				tc.Failure = &junitFailure{Message: message, Body: body}
			} else {
				suite.Errors++
				tc.Error = &junitError{Message: message, Body: body}
			}
		case check.StatusCancelled:
			suite.Errors++
			tc.Error = &junitError{Message: message, Body: body}
		case check.StatusSkipped:
			suite.Skipped++
			tc.Skipped = &junitSkipped{Message: "not run"}
		}

		suite.TestCases = append(suite.TestCases, tc)
	}

	if _, err := fmt.Fprint(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(suite); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}
