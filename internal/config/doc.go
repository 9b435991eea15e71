// SPDX-License-Identifier: MPL-2.0

// Package config handles zipper configuration using Viper.
//
// Configuration is read from config.cue (validated against an embedded CUE
// schema) or, when no CUE file exists, config.toml, in the platform config
// directory: $XDG_CONFIG_HOME/zipper on Linux, ~/Library/Application
// Support/zipper on macOS and %APPDATA%\zipper on Windows. ZIPPER_* environment
// variables override file values (ZIPPER_COMMAND_TIMEOUT for command.timeout).
package config
