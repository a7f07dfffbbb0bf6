package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess        = 0 // Every match and report succeeded
	ExitPartialFailure = 1 // One or more matches or reports failed
	ExitError          = 2 // Configuration or runtime error
)

// PartialFailureError indicates that the command ran to completion but some
// matches or reports failed and need to be re-run.
type PartialFailureError struct {
	Message string
	Err     error
}

func (e *PartialFailureError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s:\n%v", e.Message, e.Err)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Err
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var partial *PartialFailureError
	if errors.As(err, &partial) {
		return ExitPartialFailure
	}
	// All other errors are configuration/runtime errors
	return ExitError
}
