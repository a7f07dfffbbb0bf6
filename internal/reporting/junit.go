package reporting

import (
	"encoding/xml"
	"fmt"
	"os"
	"time"

	"github.com/pszt/botbench/internal/models"
)

// JUnit XML schema types

// JUnitTestSuites is the top-level container.
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite maps to one benchmark run.
type JUnitTestSuite struct {
	XMLName    xml.Name        `xml:"testsuite"`
	Name       string          `xml:"name,attr"`
	Tests      int             `xml:"tests,attr"`
	Failures   int             `xml:"failures,attr"`
	Errors     int             `xml:"errors,attr"`
	Skipped    int             `xml:"skipped,attr"`
	Time       float64         `xml:"time,attr"`
	Timestamp  string          `xml:"timestamp,attr"`
	Properties []JUnitProperty `xml:"properties>property,omitempty"`
	TestCases  []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase maps to one match.
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Error     *JUnitError   `xml:"error,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
	SystemOut string        `xml:"system-out,omitempty"`
}

// JUnitError represents a match that could not be played or summarized.
type JUnitError struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Body    string `xml:",chardata"`
}

// JUnitSkipped marks a match whose summary already existed.
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitProperty is a key-value metadata entry.
type JUnitProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

// ConvertToJUnit converts a RunOutcome to JUnit XML so CI systems can flag
// matches that need re-running.
func ConvertToJUnit(name string, outcome *models.RunOutcome) *JUnitTestSuites {
	durationSec := float64(outcome.DurationMs) / 1000.0
	summarized, failed, skipped := outcome.Counts()

	suite := JUnitTestSuite{
		Name:      name,
		Tests:     len(outcome.Matches),
		Errors:    failed,
		Skipped:   skipped,
		Time:      durationSec,
		Timestamp: outcome.StartedAt.Format(time.RFC3339),
		Properties: []JUnitProperty{
			{Name: "summarized", Value: fmt.Sprint(summarized)},
		},
	}

	for _, m := range outcome.Matches {
		suite.TestCases = append(suite.TestCases, convertMatch(m))
	}

	return &JUnitTestSuites{
		Tests:      len(outcome.Matches),
		Errors:     failed,
		Time:       durationSec,
		TestSuites: []JUnitTestSuite{suite},
	}
}

func convertMatch(m models.MatchResult) JUnitTestCase {
	tc := JUnitTestCase{
		Name:      m.Key.Name(),
		Classname: fmt.Sprintf("depth-%d", m.Key.White.Depth),
		Time:      float64(m.DurationMs) / 1000.0,
	}

	switch m.Status {
	case models.MatchFailed:
		tc.Error = &JUnitError{
			Message: m.Error,
			Type:    "MatchError",
			Body:    fmt.Sprintf("log: %s", m.LogPath),
		}
	case models.MatchSkipped:
		tc.Skipped = &JUnitSkipped{Message: "summary already stored"}
	case models.MatchSummarized:
		if m.Summary != nil {
			tc.SystemOut = fmt.Sprintf("outcome=%s white_avg_us=%s black_avg_us=%s",
				m.Summary.Outcome, models.FormatMicros(m.Summary.WhiteAvgMoveTime), models.FormatMicros(m.Summary.BlackAvgMoveTime))
		}
	}

	return tc
}

// WriteJUnitXML writes JUnit XML to the specified file path.
func WriteJUnitXML(name string, outcome *models.RunOutcome, path string) error {
	suites := ConvertToJUnit(name, outcome)

	data, err := xml.MarshalIndent(suites, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JUnit XML: %w", err)
	}

	output := append([]byte(xml.Header), data...)
	if err := os.WriteFile(path, output, 0644); err != nil {
		return fmt.Errorf("writing JUnit XML: %w", err)
	}
	return nil
}
