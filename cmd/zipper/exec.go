// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/appdav/zipper/internal/command"
	"github.com/appdav/zipper/internal/issue"
)

func newExecCommand(app *App) *cobra.Command {
	var (
		dir     string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with a timeout and capture its output",
		Long: `Run an external command, wait for it up to a timeout, and print its
combined output. zipper exits with the command's exit status, or 124 when
the timeout elapses.

A single quoted argument is split with shell quoting rules:
  zipper exec -- 'unzip -t "my archive.zip"'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(cmd, app, args, dir, timeout)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "working directory for the command")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "maximum run time (default from command.timeout)")
	return cmd
}

func runExec(cmd *cobra.Command, app *App, args []string, dir string, timeout time.Duration) error {
	var (
		c   *command.Command
		err error
	)
	if len(args) == 1 {
		c, err = command.New(args[0])
	} else {
		c, err = command.FromArgs(args)
	}
	if err != nil {
		return app.fail(cmd, err, "parse command", args[0])
	}

	if timeout <= 0 {
		if timeout, err = app.loaded.Command.TimeoutDuration(); err != nil {
			return app.fail(cmd, err, "read command timeout", "command.timeout")
		}
	}

	app.logger.Debug("running command", "command", c.String(), "timeout", timeout, "dir", dir)
	result := c.Run(cmd.Context(), command.RunOptions{
		Dir:          dir,
		Timeout:      timeout,
		SandboxSpawn: app.loaded.Command.SandboxSpawn,
		Stdin:        app.stdin,
	})
	if err := result.WriteOutput(app.stdout); err != nil {
		return fmt.Errorf("write command output: %w", err)
	}

	if result.Succeeded() {
		return nil
	}

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	ae := issue.NewErrorContext().
		WithOperation("run command").
		WithResource(c.String()).
		WithIssue(issue.CommandFailedId).
		Wrap(result.Failure()).
		Build()
	app.renderError(ae)
	return &ExitError{Code: result.ExitCode, Err: ae, Rendered: true}
}
