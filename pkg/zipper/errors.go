// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/appdav/zipper/pkg/types"
)

var (
	// ErrPathTraversal is the sentinel wrapped by PathTraversalError.
	ErrPathTraversal = errors.New("path traversal")
	// ErrDestinationConflict is the sentinel wrapped by DestinationConflictError.
	ErrDestinationConflict = errors.New("destination already exists")
	// ErrIO is matched by every IOError through errors.Is.
	ErrIO = errors.New("archive I/O failure")
	// ErrUnsupportedEntry is the sentinel wrapped by UnsupportedEntryError.
	ErrUnsupportedEntry = errors.New("unsupported archive entry")
	// ErrDuplicateEntry is the sentinel wrapped by DuplicateEntryError.
	ErrDuplicateEntry = errors.New("duplicate archive entry")
	// ErrInvalidArchive marks input that is not a readable ZIP container.
	ErrInvalidArchive = errors.New("invalid zip archive")
)

type (
	// PathTraversalError reports an archive entry whose resolved path escapes
	// the extraction root (zip-slip), either lexically or through a symbolic
	// link already present under the root.
	PathTraversalError struct {
		Entry string
		Root  types.FilesystemPath
	}

	// DestinationConflictError is returned by Pack when the destination path
	// already exists. Pack never overwrites or appends.
	DestinationConflictError struct {
		Path  types.FilesystemPath
		IsDir bool
	}

	// IOError wraps an underlying filesystem or codec failure together with
	// the path that caused it. errors.Is matches both ErrIO and the wrapped
	// cause (e.g. fs.ErrNotExist).
	IOError struct {
		Op   string
		Path types.FilesystemPath
		Err  error
	}

	// UnsupportedEntryError is returned when an archive holds a symlink or
	// another non-regular entry that cannot be materialized safely.
	UnsupportedEntryError struct {
		Entry string
		Mode  fs.FileMode
	}

	// DuplicateEntryError is returned by Pack when two sources map to the
	// same entry name, such as two top-level files sharing a base name.
	DuplicateEntryError struct {
		Entry string
		Path  types.FilesystemPath
	}
)

// Error implements the error interface.
func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("zip archive contains zip-slip exploit which can cause damage to your system: entry name: %q", e.Entry)
}

// Unwrap returns ErrPathTraversal for errors.Is() compatibility.
func (e *PathTraversalError) Unwrap() error { return ErrPathTraversal }

// Error implements the error interface.
func (e *DestinationConflictError) Error() string {
	if e.IsDir {
		return fmt.Sprintf("destination %s is a directory, not an archive file", e.Path)
	}
	return fmt.Sprintf("destination %s already exists", e.Path)
}

// Unwrap returns ErrDestinationConflict for errors.Is() compatibility.
func (e *DestinationConflictError) Unwrap() error { return ErrDestinationConflict }

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause.
func (e *IOError) Unwrap() error { return e.Err }

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool { return target == ErrIO }

// Error implements the error interface.
func (e *UnsupportedEntryError) Error() string {
	return fmt.Sprintf("entry %q has unsupported type %s", e.Entry, e.Mode.Type())
}

// Unwrap returns ErrUnsupportedEntry for errors.Is() compatibility.
func (e *UnsupportedEntryError) Unwrap() error { return ErrUnsupportedEntry }

// Error implements the error interface.
func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("entry %q from %s is already present in the archive", e.Entry, e.Path)
}

// Unwrap returns ErrDuplicateEntry for errors.Is() compatibility.
func (e *DuplicateEntryError) Unwrap() error { return ErrDuplicateEntry }

func newIOError(op string, path types.FilesystemPath, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}
