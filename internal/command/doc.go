// SPDX-License-Identifier: MPL-2.0

// Package command launches external programs with a bounded run time and
// captures their combined output for inspection.
package command
