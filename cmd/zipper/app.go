// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/appdav/zipper/internal/config"
	"github.com/appdav/zipper/internal/issue"
)

type (
	// App is the composition root for the CLI. Every Cobra handler receives
	// it and reaches configuration, streams and the filesystem through it.
	App struct {
		Config config.Provider
		Fs     afero.Fs

		stdin  io.Reader
		stdout io.Writer
		stderr io.Writer

		logger  *log.Logger
		loaded  *config.Loaded
		verbose bool
		cfgFile string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		Fs     afero.Fs
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}
)

// NewApp builds an App, filling unset dependencies with production defaults.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config: deps.Config,
		Fs:     deps.Fs,
		stdin:  deps.Stdin,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.Fs == nil {
		app.Fs = afero.NewOsFs()
	}
	if app.stdin == nil {
		app.stdin = os.Stdin
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	app.logger = log.NewWithOptions(app.stderr, log.Options{Prefix: "zipper"})
	app.loaded = &config.Loaded{Config: config.DefaultConfig()}
	return app
}

// loadConfig reads configuration once per invocation. A broken config file
// is reported as a warning and defaults are used, so archive commands keep
// working.
func (a *App) loadConfig(ctx context.Context) {
	loaded, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.cfgFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.verbose))
	} else {
		a.loaded = loaded
	}

	if !a.verbose {
		a.verbose = a.loaded.UI.Verbose
	}
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	} else {
		a.logger.SetLevel(log.InfoLevel)
	}
	a.logger.Debug("configuration loaded", "path", a.loaded.Path)
}

// fail renders err for the user and converts it into an *ExitError so that
// Cobra and fang do not print it a second time.
func (a *App) fail(cmd *cobra.Command, err error, operation, resource string) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	ae := issue.FromArchiveError(err, operation, resource)
	a.renderError(ae)

	return &ExitError{Code: exitCodeOf(err), Err: ae, Rendered: true}
}

// renderError prints the catalogue page linked to ae, if any, followed by
// the formatted error.
func (a *App) renderError(ae *issue.ActionableError) {
	if ae.Issue != 0 {
		if page := issue.Get(ae.Issue); page != nil {
			rendered, renderErr := page.Render(a.loaded.UI.ColorScheme.GlamourStyle())
			if renderErr != nil {
				a.logger.Warn("failed to render issue page", "issue", ae.Issue, "error", renderErr)
			} else {
				fmt.Fprint(a.stderr, rendered)
			}
		}
	}
	fmt.Fprintf(a.stderr, "%s %s\n", ErrorStyle.Render("Error:"), ae.Format(a.verbose))
}

// formatErrorForDisplay uses the actionable form when available.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
