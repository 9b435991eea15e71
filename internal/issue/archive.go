// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"

	"github.com/appdav/zipper/pkg/zipper"
)

// FromArchiveError wraps an error returned by the zipper package into an
// ActionableError for operation, linking the matching catalogue page. The
// resource defaults to fallback when the error does not name a path.
// It returns nil when err is nil, and err itself when it is already
// actionable.
func FromArchiveError(err error, operation, fallback string) *ActionableError {
	if err == nil {
		return nil
	}
	var ae *ActionableError
	if errors.As(err, &ae) {
		return ae
	}

	ctx := NewErrorContext().WithOperation(operation).WithResource(fallback).Wrap(err)

	var (
		ptErr  *zipper.PathTraversalError
		dcErr  *zipper.DestinationConflictError
		dupErr *zipper.DuplicateEntryError
		ueErr  *zipper.UnsupportedEntryError
		ioErr  *zipper.IOError
	)
	switch {
	case errors.As(err, &ptErr):
		ctx.WithIssue(PathTraversalId).
			WithResource(string(ptErr.Root)).
			WithHint("Inspect the entry names with 'zipper list' before extracting")
	case errors.As(err, &dcErr):
		ctx.WithIssue(DestinationConflictId).
			WithResource(string(dcErr.Path)).
			WithHint("Choose a destination path that does not exist yet")
	case errors.As(err, &dupErr):
		ctx.WithIssue(DuplicateEntryId).
			WithResource(string(dupErr.Path)).
			WithHint("Pass the parent directory instead, or rename one of the files")
	case errors.As(err, &ueErr):
		ctx.WithIssue(UnsupportedEntryId).
			WithHint("Rebuild the archive without symbolic links")
	case errors.Is(err, zipper.ErrInvalidArchive):
		ctx.WithIssue(InvalidArchiveId).
			WithHint("Check that the input really is a ZIP file")
	case errors.Is(err, fs.ErrNotExist):
		if errors.As(err, &ioErr) {
			ctx.WithResource(string(ioErr.Path))
			if ioErr.Op == "open archive" {
				ctx.WithIssue(ArchiveNotFoundId)
			}
		}
		ctx.WithHint("Check the path for typos")
	case errors.Is(err, fs.ErrPermission):
		ctx.WithIssue(PermissionDeniedId)
		if errors.As(err, &ioErr) {
			ctx.WithResource(string(ioErr.Path))
		}
		ctx.WithHint("Check the permissions of the path")
	}

	return ctx.Build()
}
