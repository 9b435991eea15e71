// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/appdav/zipper/pkg/zipper"
)

func newListCommand(app *App) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "list <archive.zip>",
		Short: "List the entries of a ZIP archive",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := zipper.List(args[0], zipper.WithFs(app.Fs))
			if err != nil {
				return app.fail(cmd, err, "list archive", args[0])
			}
			if plain {
				for _, e := range entries {
					fmt.Fprintln(app.stdout, e.Name)
				}
				return nil
			}
			fmt.Fprintln(app.stdout, renderEntries(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print entry names only, one per line")
	return cmd
}

// renderEntries lays entries out as a table in stored order.
func renderEntries(entries []zipper.Entry) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorderStyle).
		Headers("NAME", "SIZE", "MODE", "MODIFIED")

	for _, e := range entries {
		size := strconv.FormatInt(e.Size, 10)
		if e.IsDir {
			size = "-"
		}
		modified := ""
		if !e.Modified.IsZero() {
			modified = e.Modified.Local().Format(time.DateTime)
		}
		t.Row(e.Name, size, e.Mode.String(), modified)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return tableHeaderStyle
		case col == 0 && row >= 0 && row < len(entries) && entries[row].IsDir:
			return tableDirStyle
		default:
			return tableCellStyle
		}
	})
	return t.Render()
}
