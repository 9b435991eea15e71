// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/appdav/zipper/pkg/zipper"
)

// stdinArchive is the archive argument that selects standard input.
const stdinArchive = "-"

func newUnpackCommand(app *App) *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "unpack <archive.zip|-> [--dest dir]",
		Short: "Extract a ZIP archive",
		Long: `Extract a ZIP archive into a directory, creating it if needed.

Existing files are overwritten. Extraction stops at the first entry whose
name would place it outside the destination (zip-slip), at the first
symbolic link entry, and on any I/O error. Pass "-" to read the archive
from standard input.

The destination defaults to unpack.default_dest from the configuration, or
the current directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUnpack(cmd, app, args[0], dest)
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "", "destination directory")
	return cmd
}

func runUnpack(cmd *cobra.Command, app *App, archive, dest string) error {
	if dest == "" {
		dest = app.loaded.Unpack.DefaultDest
	}
	if dest == "" {
		dest = "."
	}
	app.logger.Debug("unpacking", "archive", archive, "dest", dest)

	var err error
	if archive == stdinArchive {
		err = zipper.UnpackReader(app.stdin, dest, zipper.WithFs(app.Fs))
	} else {
		err = zipper.Unpack(archive, dest, zipper.WithFs(app.Fs))
	}
	if err != nil {
		return app.fail(cmd, err, "unpack archive", archive)
	}

	fmt.Fprintf(app.stdout, "%s Extracted into %s\n", SuccessStyle.Render("✓"), CmdStyle.Render(dest))
	return nil
}
