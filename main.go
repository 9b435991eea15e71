// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/appdav/zipper/cmd/zipper"

func main() {
	cmd.Execute()
}
