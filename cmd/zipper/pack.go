// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdav/zipper/pkg/zipper"
)

func newPackCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pack <archive.zip> [source...]",
		Short: "Create a ZIP archive from files and directories",
		Long: `Create a new ZIP archive from files and directories.

Files are stored at the archive root under their own name. Directories keep
their name as the first path segment, with their hierarchy below it. Empty
directories are recorded so they survive a round trip. The archive path must
not exist yet.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPack(cmd, app, args[0], args[1:])
		},
	}
}

func runPack(cmd *cobra.Command, app *App, destination string, sources []string) error {
	app.logger.Debug("packing", "archive", destination, "sources", len(sources))

	archive, err := zipper.Pack(destination, sources, zipper.WithFs(app.Fs))
	if err != nil {
		return app.fail(cmd, err, "pack archive", destination)
	}

	if entries, listErr := zipper.List(archive, zipper.WithFs(app.Fs)); listErr == nil {
		app.logger.Debug("archive written", "archive", archive, "entries", len(entries))
	}
	fmt.Fprintf(app.stdout, "%s Created %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(archive))
	return nil
}
