package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartialFailureError(t *testing.T) {
	err := &PartialFailureError{Message: "benchmark completed with 2 failed match(es)"}
	assert.Equal(t, "benchmark completed with 2 failed match(es)", err.Error())

	cause := errors.New("basic-3-vs-a_basic-3: no summary")
	err = &PartialFailureError{Message: "some reports could not be written", Err: cause}
	assert.Contains(t, err.Error(), "some reports could not be written")
	assert.Contains(t, err.Error(), cause.Error())
	assert.ErrorIs(t, err, cause)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitSuccess},
		{name: "partial failure", err: &PartialFailureError{Message: "x"}, want: ExitPartialFailure},
		{name: "wrapped partial failure", err: fmt.Errorf("run: %w", &PartialFailureError{Message: "x"}), want: ExitPartialFailure},
		{name: "joined partial failure", err: errors.Join(errors.New("a"), &PartialFailureError{Message: "x"}), want: ExitPartialFailure},
		{name: "config error", err: errors.New("unknown engine"), want: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}
