// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"runtime"
	"strings"
	"sync"
)

// OS name constants for runtime.GOOS comparisons.
// Centralizes the string literals to avoid scattered magic strings.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

const (
	// FamilyOther covers every OS that is not recognized as one of the others.
	FamilyOther Family = iota
	// FamilyMac is macOS.
	FamilyMac
	// FamilyWindows is any Windows release.
	FamilyWindows
	// FamilyLinux covers Linux and other Unix-like systems matched by name.
	FamilyLinux
)

// familyOnce caches the host family. GOOS is fixed at build time, so the
// cache only saves the string matching.
var familyOnce = sync.OnceValue(func() Family {
	return FamilyFor(runtime.GOOS)
})

// Family groups operating systems that share platform-conditional behavior.
type Family int

// String returns a lower-case display name for the family.
func (f Family) String() string {
	switch f {
	case FamilyMac:
		return "mac"
	case FamilyWindows:
		return "windows"
	case FamilyLinux:
		return "linux"
	case FamilyOther:
		return "other"
	default:
		return "other"
	}
}

// Current returns the family of the running host.
func Current() Family {
	return familyOnce()
}

// FamilyFor maps a runtime.GOOS value to its Family.
func FamilyFor(goos string) Family {
	switch goos {
	case Darwin, "ios":
		return FamilyMac
	case Windows:
		return FamilyWindows
	case Linux, "android":
		return FamilyLinux
	default:
		return FamilyFromName(goos)
	}
}

// FamilyFromName classifies a free-form OS name such as "Mac OS X",
// "Windows 11" or "GNU/Linux" by substring. Matching is case-insensitive and
// checks macOS before Windows so that "darwin" is not caught by "win".
func FamilyFromName(osName string) Family {
	name := strings.ToLower(osName)
	switch {
	case strings.Contains(name, "mac"), strings.Contains(name, "darwin"):
		return FamilyMac
	case strings.Contains(name, "win"):
		return FamilyWindows
	case strings.Contains(name, "nux"), strings.Contains(name, "nix"):
		return FamilyLinux
	default:
		return FamilyOther
	}
}
