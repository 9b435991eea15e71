// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"os"
	"sync"
)

// SandboxType names the application sandbox the process runs in. The zero
// value means none.
type SandboxType string

const (
	SandboxNone    SandboxType = ""
	SandboxFlatpak SandboxType = "flatpak"
	SandboxSnap    SandboxType = "snap"
)

// hostSpawn holds the argv prefix that escapes each sandbox to run a program
// on the host.
var hostSpawn = map[SandboxType][]string{
	SandboxFlatpak: {"flatpak-spawn", "--host"},
	SandboxSnap:    {"snap", "run", "--shell"},
}

// detectSandboxFrom must not panic: sync.OnceValue would re-panic on every
// later call.
var sandboxOnce = sync.OnceValue(func() SandboxType {
	return detectSandboxFrom(os.Getenv, statFile)
})

// DetectSandbox reports Flatpak when /.flatpak-info exists, Snap when
// SNAP_NAME is set, and SandboxNone otherwise. The result is cached.
func DetectSandbox() SandboxType {
	return sandboxOnce()
}

// IsInSandbox reports whether DetectSandbox found a sandbox.
func IsInSandbox() bool {
	return DetectSandbox() != SandboxNone
}

// SpawnPrefix returns the argv prefix for running a host program from the
// detected sandbox, or nil outside one.
func SpawnPrefix() []string {
	return SpawnPrefixFor(DetectSandbox())
}

// SpawnPrefixFor returns a fresh copy of the prefix for st, or nil when st
// needs none.
func SpawnPrefixFor(st SandboxType) []string {
	prefix, ok := hostSpawn[st]
	if !ok {
		return nil
	}
	return append([]string(nil), prefix...)
}

func detectSandboxFrom(getenv func(string) string, stat func(string) error) SandboxType {
	// Flatpak wins when both markers are present.
	if stat("/.flatpak-info") == nil {
		return SandboxFlatpak
	}
	if getenv("SNAP_NAME") != "" {
		return SandboxSnap
	}
	return SandboxNone
}

func statFile(path string) error {
	_, err := os.Stat(path)
	return err
}
