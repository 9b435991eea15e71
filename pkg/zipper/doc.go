// SPDX-License-Identifier: MPL-2.0

// Package zipper packs files and directories into a ZIP archive and unpacks
// archives back onto a filesystem.
//
// Packing preserves the caller's hierarchy: a regular file passed directly is
// stored under its base name at the archive root, while a directory passed
// directly is stored with its own name as the first path segment, so several
// directory arguments can coexist in one archive. Empty directories are
// recorded as explicit "name/" markers and recreated on extraction.
//
// Unpacking validates every entry with Resolve before touching the
// filesystem. A single entry that would land outside the destination aborts
// the whole extraction with a *PathTraversalError; entries written before it
// stay on disk. Symlink and other special entries are rejected, and so is any
// entry whose path crosses a symbolic link that already exists under the
// destination.
//
// All operations are synchronous and own the archive handle they open. The
// package never logs and never retries; errors are classified with the
// sentinels in errors.go and returned to the caller.
//
// The filesystem is abstracted with afero so callers can pack from, or unpack
// into, an in-memory or restricted filesystem:
//
//	path, err := zipper.Pack("dist/bundle.zip", []string{"README.md", "assets"})
//	if err != nil {
//		return err
//	}
//	err = zipper.Unpack(path, "out", zipper.WithFs(afero.NewBasePathFs(afero.NewOsFs(), "/sandbox")))
package zipper
