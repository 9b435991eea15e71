// SPDX-License-Identifier: MPL-2.0

// Package platform reports facts about the host the process runs on: the
// operating-system family, and whether the process is confined to an
// application sandbox (Flatpak, Snap) that requires a spawn helper to reach
// the host.
//
// Detection results are cached for the lifetime of the process. Every cached
// accessor has a pure counterpart (FamilyFor, FamilyFromName, SpawnPrefixFor)
// that tests can call without touching process-wide state.
package platform
