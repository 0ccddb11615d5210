package cli

import (
	"errors"
	"fmt"

	"github.com/codalotl/linediff/internal/config"
	"github.com/codalotl/linediff/internal/linediff"
)

// ExitCoder is an error with an explicit process exit code.
type ExitCoder interface {
	error
	ExitCode() int
}

// UsageError indicates a user-facing mistake (exit code 2).
type UsageError struct {
	Message string
}

func (e UsageError) Error() string { return e.Message }
func (e UsageError) ExitCode() int { return 2 }

func usageErrorf(format string, args ...any) UsageError {
	return UsageError{Message: fmt.Sprintf(format, args...)}
}

// ExitError wraps an error with a specific exit code. A nil Err exits quietly.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error { return e.Err }
func (e ExitError) ExitCode() int { return e.Code }

// exitCodeFor maps err to 1 or 2. Bad algorithm names and invalid option values are usage errors.
func exitCodeFor(err error) int {
	var ec ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	var verr config.ValidationError
	if errors.As(err, &verr) {
		return 2
	}
	if errors.Is(err, linediff.ErrUnknownAlgorithm) || errors.Is(err, linediff.ErrNotImplemented) {
		return 2
	}
	return 1
}

// quiet reports whether err should exit without a message.
func quiet(err error) bool {
	var ee ExitError
	return errors.As(err, &ee) && ee.Err == nil
}
