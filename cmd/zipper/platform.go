// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/appdav/zipper/pkg/platform"
)

func newPlatformCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Show the detected operating system family and sandbox",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			sandbox := "none"
			if platform.IsInSandbox() {
				sandbox = string(platform.DetectSandbox())
			}
			fmt.Fprintf(app.stdout, "%s %s (%s/%s)\n",
				SubtitleStyle.Render("family: "), platform.Current(), runtime.GOOS, runtime.GOARCH)
			fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("sandbox:"), sandbox)
			if prefix := platform.SpawnPrefix(); len(prefix) > 0 {
				fmt.Fprintf(app.stdout, "%s %s\n", SubtitleStyle.Render("spawn:  "), strings.Join(prefix, " "))
			}
		},
	}
}
