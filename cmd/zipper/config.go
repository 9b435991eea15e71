// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdav/zipper/internal/config"
)

// newConfigCommand creates the `zipper config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect zipper configuration",
		Long: `Inspect zipper configuration.

Configuration is read from config.cue or config.toml in:
  - Linux: ~/.config/zipper/
  - macOS: ~/Library/Application Support/zipper/
  - Windows: %APPDATA%\zipper\

ZIPPER_* environment variables override file values, for example
ZIPPER_COMMAND_TIMEOUT=30s.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := config.Encode(app.loaded.Config)
			if err != nil {
				return app.fail(cmd, err, "show configuration", app.loaded.Path)
			}
			source := app.loaded.Path
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintln(app.stdout, SubtitleStyle.Render("# source: "+source))
			fmt.Fprint(app.stdout, out)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return app.fail(cmd, err, "locate configuration directory", "")
			}
			fmt.Fprintln(app.stdout, dir)
			return nil
		},
	})

	return cfgCmd
}
