// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// It defines an error type carrying the failed operation, the resource
// involved and remediation hints, plus a catalogue of Markdown issue pages the
// CLI renders when an archive operation fails.
package issue
