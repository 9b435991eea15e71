// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the zipper command-line interface: pack, unpack and
// list ZIP archives, run helper commands, and inspect configuration.
package cmd
