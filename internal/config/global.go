// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces ConfigDir's platform lookup in tests, where
// os.UserHomeDir does not reliably follow HOME (macOS CI).
var configDirOverride string

// overrideConfigDir makes ConfigDir return dir until restore runs. An empty
// dir restores the platform lookup.
func overrideConfigDir(dir string) (restore func()) {
	prev := configDirOverride
	configDirOverride = dir
	return func() { configDirOverride = prev }
}
