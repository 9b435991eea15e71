// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"github.com/appdav/zipper/pkg/fspath"
	"github.com/appdav/zipper/pkg/types"
)

// openArchive parses the ZIP directory of archive. label names the archive
// in errors.
func openArchive(archive io.ReaderAt, size int64, label types.FilesystemPath) (*zip.Reader, error) {
	// NewReader may return a usable reader together with an insecure-path
	// error; containment is enforced per entry by Resolve instead.
	zr, err := zip.NewReader(archive, size)
	if err != nil && zr == nil {
		return nil, newIOError("open archive", label, fmt.Errorf("%w: %w", ErrInvalidArchive, err))
	}
	return zr, nil
}

// read extracts every entry of archive beneath destination, in stored order.
//
// Each entry is checked with Resolve before anything is created for it; the
// first violation aborts the extraction. Existing files are overwritten, so
// extracting the same archive twice yields the same tree.
func read(fsys afero.Fs, archive io.ReaderAt, size int64, label, destination types.FilesystemPath) error {
	zr, err := openArchive(archive, size, label)
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(string(destination), 0o755); err != nil {
		return newIOError("create destination", destination, err)
	}

	for _, f := range zr.File {
		target, err := Resolve(destination, f.Name)
		if err != nil {
			return err
		}
		if err := checkNoSymlinks(fsys, destination, target, f.Name); err != nil {
			return err
		}

		entry := entryFromHeader(&f.FileHeader)
		switch {
		case entry.IsDir:
			if err := fsys.MkdirAll(string(target), 0o755); err != nil {
				return newIOError("create directory", target, err)
			}
		case !entry.Mode.IsRegular():
			return &UnsupportedEntryError{Entry: f.Name, Mode: entry.Mode}
		default:
			if err := fsys.MkdirAll(string(fspath.Dir(target)), 0o755); err != nil {
				return newIOError("create directory", fspath.Dir(target), err)
			}
			if err := extractFile(fsys, f, target, entry.Mode); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkNoSymlinks walks the components of target below root that already
// exist and fails with a *PathTraversalError at the first symbolic link, so a
// link left in the destination cannot redirect an entry outside it.
// Filesystems without Lstat support have no links to follow.
func checkNoSymlinks(fsys afero.Fs, root, target types.FilesystemPath, entryName string) error {
	lstater, ok := fsys.(afero.Lstater)
	if !ok {
		return nil
	}
	rel, err := fspath.Rel(root, target)
	if err != nil || rel == "." {
		return nil
	}

	current := root
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		current = fspath.JoinStr(current, part)
		info, _, err := lstater.LstatIfPossible(string(current))
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil
		case err != nil:
			return newIOError("inspect path", current, err)
		case info.Mode()&fs.ModeSymlink != 0:
			return &PathTraversalError{Entry: entryName, Root: root}
		}
	}
	return nil
}

// extractFile streams one entry to target, replacing any existing file.
// Owner read/write is always granted so that a read-only entry can be
// overwritten by a later extraction.
func extractFile(fsys afero.Fs, f *zip.File, target types.FilesystemPath, mode fs.FileMode) (err error) {
	rc, err := f.Open()
	if err != nil {
		return newIOError("open entry", target, fmt.Errorf("%s: %w", f.Name, err))
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = newIOError("close entry", target, closeErr)
		}
	}()

	out, err := fsys.OpenFile(string(target), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm()|0o600)
	if err != nil {
		return newIOError("create file", target, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = newIOError("close file", target, closeErr)
		}
	}()

	//nolint:gosec // G110: decompression size is bounded by the archive the caller chose to extract
	if _, err := io.Copy(out, rc); err != nil {
		return newIOError("extract entry", target, fmt.Errorf("%s: %w", f.Name, err))
	}
	return nil
}

// listEntries returns the entries of archive in stored order.
func listEntries(archive io.ReaderAt, size int64, label types.FilesystemPath) ([]Entry, error) {
	zr, err := openArchive(archive, size, label)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		entries = append(entries, entryFromHeader(&f.FileHeader))
	}
	return entries, nil
}
