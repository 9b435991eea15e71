// SPDX-License-Identifier: MPL-2.0

package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"

	"github.com/appdav/zipper/pkg/platform"
	"github.com/appdav/zipper/pkg/types"
)

// DefaultTimeout applies when RunOptions.Timeout is zero.
const DefaultTimeout = 10 * time.Second

var (
	// ErrEmptyCommand is returned when a command line has no words.
	ErrEmptyCommand = errors.New("empty command")
	// ErrTimeout is the sentinel wrapped by TimeoutError.
	ErrTimeout = errors.New("command timed out")
	// ErrNonZeroExit is the sentinel wrapped by ExitStatusError.
	ErrNonZeroExit = errors.New("command exited with non-zero status")

	// spawnPrefix is swapped in tests to simulate a sandbox.
	spawnPrefix = platform.SpawnPrefix
)

type (
	// Command is a program and its arguments, ready to run.
	Command struct {
		args []string
	}

	// RunOptions tunes a single Run call.
	RunOptions struct {
		// Dir is the working directory; empty means the current directory.
		Dir string
		// Timeout bounds the run; zero means DefaultTimeout.
		Timeout time.Duration
		// SandboxSpawn prefixes the host spawn helper when running inside
		// Flatpak or Snap.
		SandboxSpawn bool
		// Stdin is connected to the process when non-nil.
		Stdin io.Reader
	}

	// Result is the outcome of a Run.
	Result struct {
		// ExitCode is the process status, ExitTimeout after a deadline kill
		// and ExitNotFound when the program could not be started.
		ExitCode types.ExitCode
		// Output holds stdout and stderr interleaved as written.
		Output string
		// Err is set when the process did not run to completion on its own:
		// start failures, timeouts and cancellation. A plain non-zero exit
		// leaves Err nil.
		Err error
	}

	// TimeoutError reports a process killed after exceeding its deadline.
	TimeoutError struct {
		Timeout time.Duration
	}

	// ExitStatusError reports a non-zero exit status.
	ExitStatusError struct {
		ExitCode types.ExitCode
	}
)

// New splits line into words using POSIX shell quoting rules, so
// `zip -r "my archive.zip" dir` yields four arguments. Variables such as
// $HOME are expanded from the current environment.
func New(line string) (*Command, error) {
	fields, err := shell.Fields(line, nil)
	if err != nil {
		return nil, fmt.Errorf("parse command line %q: %w", line, err)
	}
	return FromArgs(fields)
}

// FromArgs builds a Command from already separated arguments.
func FromArgs(args []string) (*Command, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, ErrEmptyCommand
	}
	return &Command{args: append([]string(nil), args...)}, nil
}

// Args returns a copy of the program and its arguments.
func (c *Command) Args() []string {
	return append([]string(nil), c.args...)
}

// String renders the command for logs.
func (c *Command) String() string {
	return strings.Join(c.args, " ")
}

// argv returns the argument vector to execute, with prefix prepended.
func (c *Command) argv(prefix []string) []string {
	if len(prefix) == 0 {
		return c.Args()
	}
	return append(append([]string(nil), prefix...), c.args...)
}

// Run starts the command and blocks until it exits, the timeout elapses or
// ctx is canceled. It never returns nil.
func (c *Command) Run(ctx context.Context, opts RunOptions) *Result {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var prefix []string
	if opts.SandboxSpawn {
		prefix = spawnPrefix()
	}
	argv := c.argv(prefix)

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	// Children that inherit the pipes must not keep Wait blocked past the kill.
	cmd.WaitDelay = time.Second

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	result := &Result{Output: out.String()}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = types.ExitSuccess
	case ctx.Err() != nil:
		result.ExitCode = types.ExitFailure
		result.Err = fmt.Errorf("run %s: %w", argv[0], ctx.Err())
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		result.ExitCode = types.ExitTimeout
		result.Err = &TimeoutError{Timeout: timeout}
	case errors.As(err, &exitErr):
		result.ExitCode = types.ExitCodeOf(exitErr.ExitCode())
	case errors.Is(err, exec.ErrNotFound):
		result.ExitCode = types.ExitNotFound
		result.Err = err
	default:
		result.ExitCode = types.ExitFailure
		result.Err = err
	}
	return result
}

// Succeeded reports a zero exit status with no launch error.
func (r *Result) Succeeded() bool {
	return r.Err == nil && r.ExitCode.IsSuccess()
}

// Failure returns nil on success, Err when the process did not complete on
// its own, and an *ExitStatusError otherwise.
func (r *Result) Failure() error {
	switch {
	case r.Succeeded():
		return nil
	case r.Err != nil:
		return r.Err
	default:
		return &ExitStatusError{ExitCode: r.ExitCode}
	}
}

// ErrIfNonZero returns err when the run failed and nil otherwise. A nil err
// is replaced by Failure().
func (r *Result) ErrIfNonZero(err error) error {
	if r.Succeeded() {
		return nil
	}
	if err == nil {
		return r.Failure()
	}
	return err
}

// WriteOutput copies the captured output to w.
func (r *Result) WriteOutput(w io.Writer) error {
	_, err := io.WriteString(w, r.Output)
	return err
}

// Error implements the error interface.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command timed out after %s", e.Timeout)
}

// Unwrap returns ErrTimeout for errors.Is() compatibility.
func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// Error implements the error interface.
func (e *ExitStatusError) Error() string {
	return fmt.Sprintf("command exited with status %s", e.ExitCode)
}

// Unwrap returns ErrNonZeroExit for errors.Is() compatibility.
func (e *ExitStatusError) Unwrap() error { return ErrNonZeroExit }
