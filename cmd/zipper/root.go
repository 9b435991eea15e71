// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/appdav/zipper/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// getVersionString returns a formatted version string for display. Binaries
// built with `go install` carry their module version in the build info.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// newRootCommand assembles the command tree around app.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "zipper",
		Short: "Pack and unpack ZIP archives safely",
		Long: TitleStyle.Render("zipper") + SubtitleStyle.Render(" - Pack and unpack ZIP archives safely") + `

zipper builds ZIP archives from files and directories, preserving each
directory's hierarchy, and extracts archives while rejecting entries that
would escape the destination directory (zip-slip).

` + SubtitleStyle.Render("Examples:") + `
  zipper pack out/site.zip public/ README.md   Pack a directory and a file
  zipper unpack out/site.zip --dest /srv/www   Extract into /srv/www
  zipper unpack - < site.zip                   Extract from standard input
  zipper list out/site.zip                     Show archive entries
  zipper exec -- unzip -t out/site.zip         Run a helper command`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.loadConfig(cmd.Context())
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.cfgFile, "config", "", "config file (default is <config dir>/zipper/config.cue)")

	rootCmd.AddCommand(
		newPackCommand(app),
		newUnpackCommand(app),
		newListCommand(app),
		newExecCommand(app),
		newPlatformCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// Execute runs the CLI with production dependencies and exits the process
// with the resulting status. It is called by main.main.
func Execute() {
	os.Exit(int(run(context.Background(), NewApp(Dependencies{}), os.Args[1:])))
}

// run executes args against app and maps the outcome to an exit code.
func run(ctx context.Context, app *App, args []string) types.ExitCode {
	rootCmd := newRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			if alreadyRendered(err) {
				return
			}
			fang.DefaultErrorHandler(w, styles, err)
		}),
	)
	return exitCodeOf(err)
}
