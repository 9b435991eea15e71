// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

// ExitCode is a process exit status in the POSIX range 0-255.
type ExitCode int

// Statuses zipper reports itself. 124 and 127 follow timeout(1) and the
// shells.
const (
	ExitSuccess  ExitCode = 0
	ExitFailure  ExitCode = 1
	ExitTimeout  ExitCode = 124
	ExitNotFound ExitCode = 127

	maxExitCode ExitCode = 255
)

var ErrInvalidExitCode = errors.New("invalid exit code")

// InvalidExitCodeError wraps ErrInvalidExitCode.
type InvalidExitCodeError struct {
	Value ExitCode
}

func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-%d)", e.Value, maxExitCode)
}

func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// ExitCodeOf converts a raw wait status. Values outside 0-255, such as the
// -1 reported for signal-killed processes, become ExitFailure.
func ExitCodeOf(status int) ExitCode {
	if c := ExitCode(status); c.Validate() == nil {
		return c
	}
	return ExitFailure
}

func (c ExitCode) Validate() error {
	if c < ExitSuccess || c > maxExitCode {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
