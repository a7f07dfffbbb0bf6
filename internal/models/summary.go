package models

import (
	"bufio"
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	whiteAvgLabel = "white_average_move_time"
	blackAvgLabel = "black_average_move_time"
	microsUnit    = "µs"
)

// MatchSummary is the per-match record produced from one game log. Its text
// form is five lines: white params, black params, white average move time,
// black average move time and the outcome token.
type MatchSummary struct {
	WhiteParams string
	BlackParams string
	// Average move times are in microseconds.
	WhiteAvgMoveTime float64
	BlackAvgMoveTime float64
	Outcome          Outcome
}

// AvgMoveTime returns the average move time for side.
func (s *MatchSummary) AvgMoveTime(side Side) float64 {
	if side == SideWhite {
		return s.WhiteAvgMoveTime
	}
	return s.BlackAvgMoveTime
}

// MarshalText encodes the summary in its five-line form.
func (s *MatchSummary) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(s.WhiteParams + "\n")
	buf.WriteString(s.BlackParams + "\n")
	fmt.Fprintf(&buf, "%s %s %s\n", whiteAvgLabel, FormatMicros(s.WhiteAvgMoveTime), microsUnit)
	fmt.Fprintf(&buf, "%s %s %s\n", blackAvgLabel, FormatMicros(s.BlackAvgMoveTime), microsUnit)
	buf.WriteString(string(s.Outcome) + "\n")
	return buf.Bytes(), nil
}

// UnmarshalText decodes the five-line form. A missing outcome line decodes
// as an empty outcome, which credits no one.
func (s *MatchSummary) UnmarshalText(data []byte) error {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedSummary, err)
	}
	if len(lines) < 4 {
		return fmt.Errorf("%w: expected at least 4 lines, got %d", ErrMalformedSummary, len(lines))
	}

	white, err := parseAvgLine(lines[2], whiteAvgLabel)
	if err != nil {
		return err
	}
	black, err := parseAvgLine(lines[3], blackAvgLabel)
	if err != nil {
		return err
	}

	*s = MatchSummary{
		WhiteParams:      lines[0],
		BlackParams:      lines[1],
		WhiteAvgMoveTime: white,
		BlackAvgMoveTime: black,
	}
	if len(lines) > 4 {
		s.Outcome = Outcome(lines[4])
	}
	return nil
}

func parseAvgLine(line, label string) (float64, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != label {
		return 0, fmt.Errorf("%w: expected %q line, got %q", ErrMalformedSummary, label, line)
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s value %q: %v", ErrMalformedSummary, label, fields[1], err)
	}
	return v, nil
}

// FormatMicros renders a float the way the game tooling always has: the
// shortest representation that round-trips, keeping a ".0" on integral
// values and switching to exponent form outside [1e-4, 1e16).
func FormatMicros(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	if abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
