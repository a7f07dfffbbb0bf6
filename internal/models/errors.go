package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLog marks a raw game log that violates the log format.
	ErrMalformedLog = errors.New("malformed game log")
	// ErrNoMovesRecorded marks a game in which a side never moved.
	ErrNoMovesRecorded = errors.New("no moves recorded")
	// ErrMissingResult marks an aggregation cell whose match summary was never produced.
	ErrMissingResult = errors.New("missing match result")
	// ErrMalformedSummary marks a stored match summary that cannot be decoded.
	ErrMalformedSummary = errors.New("malformed match summary")
)

// MalformedLogError locates a format violation in a raw game log.
type MalformedLogError struct {
	Path string
	// Line is 1-based, 0 when the violation is not tied to a line.
	Line   int
	Reason string
}

func (e *MalformedLogError) Error() string {
	path := e.Path
	if path == "" {
		path = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v: %s", path, e.Line, ErrMalformedLog, e.Reason)
	}
	return fmt.Sprintf("%s: %v: %s", path, ErrMalformedLog, e.Reason)
}

func (e *MalformedLogError) Unwrap() error { return ErrMalformedLog }

// NoMovesError reports the side that never moved.
type NoMovesError struct {
	Path string
	Side Side
}

func (e *NoMovesError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v for %s", ErrNoMovesRecorded, e.Side)
	}
	return fmt.Sprintf("%s: %v for %s", e.Path, ErrNoMovesRecorded, e.Side)
}

func (e *NoMovesError) Unwrap() error { return ErrNoMovesRecorded }

// MissingResultError names the exact cell an aggregation could not find.
type MissingResultError struct {
	Key MatchKey
	// Report names the report that needed the cell, e.g. "basic vs a_basic".
	Report string
}

func (e *MissingResultError) Error() string {
	return fmt.Sprintf("%s: %v for %s (white %s, black %s, depth %d); re-run that match",
		e.Report, ErrMissingResult, e.Key.FileName(), e.Key.White.Heuristic, e.Key.Black.Heuristic, e.Key.White.Depth)
}

func (e *MissingResultError) Unwrap() error { return ErrMissingResult }
