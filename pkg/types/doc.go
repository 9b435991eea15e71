// SPDX-License-Identifier: MPL-2.0

// Package types holds small validated value types shared across zipper packages.
package types
