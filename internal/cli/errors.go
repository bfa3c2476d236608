// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the check command
const (
	ExitCodeClean      = 0 // No problems found
	ExitCodeProblems   = 1 // At least one unit failed extraction
	ExitCodeCheckError = 2 // Error before or outside extraction
)

// ErrUsage is matched by command-line usage errors.
var ErrUsage = errors.New("cli usage error")

type usageError struct {
	msg string
}

func newUsageError(format string, args ...interface{}) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}

// ExitError carries the process exit code a command asks for.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for
// an ExitError, and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return 1
}
