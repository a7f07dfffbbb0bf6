// Package gamelog parses the raw per-game logs written by the checkers program.
//
// A log starts with the white and black configuration lines, holds one
// "<side> <microseconds>" line per ply and carries the outcome token on its
// second-to-last line (the last being empty after the trailing newline).
package gamelog

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pszt/botbench/internal/models"
)

// paramLines is the number of leading configuration lines.
const paramLines = 2

// ParseFile reads and parses the log at path.
func ParseFile(path string) (*models.GameLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading game log: %w", err)
	}
	return ParseBytes(path, data)
}

// Parse reads a log from r.
func Parse(r io.Reader) (*models.GameLog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading game log: %w", err)
	}
	return ParseBytes("", data)
}

// ParseBytes parses log data; path is only used in errors.
func ParseBytes(path string, data []byte) (*models.GameLog, error) {
	lines := strings.Split(string(data), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	if len(lines) < paramLines {
		return nil, &models.MalformedLogError{
			Path:   path,
			Reason: fmt.Sprintf("expected white and black parameter lines, got %d line(s)", len(lines)),
		}
	}

	log := &models.GameLog{
		Path:        path,
		WhiteParams: lines[0],
		BlackParams: lines[1],
	}
	// A log too short to hold anything past its parameters has no outcome.
	if idx := len(lines) - 2; idx >= paramLines {
		log.Outcome = models.Outcome(lines[idx])
	}

	for i := paramLines; i < len(lines); i++ {
		move, ok, err := ClassifyLine(lines[i])
		if err != nil {
			return nil, &models.MalformedLogError{Path: path, Line: i + 1, Reason: err.Error()}
		}
		if ok {
			log.Moves = append(log.Moves, move)
		}
	}

	return log, nil
}

// ClassifyLine reports whether line is a move record and decodes it. Lines
// whose first space-delimited token is not exactly "white" or "black" are not
// moves. A move line whose duration is not a non-negative integer is an error.
func ClassifyLine(line string) (models.MoveRecord, bool, error) {
	fields := strings.Split(line, " ")

	side := models.Side(fields[0])
	if side != models.SideWhite && side != models.SideBlack {
		return models.MoveRecord{}, false, nil
	}

	if len(fields) < 2 || fields[1] == "" {
		return models.MoveRecord{}, false, fmt.Errorf("%s move without a duration", side)
	}
	d, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return models.MoveRecord{}, false, fmt.Errorf("%s move duration %q is not an integer", side, fields[1])
	}
	if d < 0 {
		return models.MoveRecord{}, false, fmt.Errorf("%s move duration %d is negative", side, d)
	}

	return models.MoveRecord{Side: side, Duration: d}, true, nil
}
