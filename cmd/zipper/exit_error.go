// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/appdav/zipper/pkg/types"
)

// ExitError ends a command with Code. Rendered marks failures whose message
// was already printed, so the top-level handler stays quiet for them.
type ExitError struct {
	Code     types.ExitCode
	Err      error
	Rendered bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + e.Code.String()
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitCodeOf maps the error returned by the command tree to a process exit
// code. Errors that carry no code are generic failures.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return types.ExitFailure
}

func alreadyRendered(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Rendered
}
