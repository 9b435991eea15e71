// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/appdav/zipper/pkg/fspath"
	"github.com/appdav/zipper/pkg/types"
)

// streamLabel names archives read from a stream in error messages.
const streamLabel types.FilesystemPath = "<stream>"

type (
	// Option configures a Pack, Unpack, UnpackReader or List call.
	Option func(*options)

	options struct {
		fs afero.Fs
	}

	// sizedReaderAt is satisfied by *bytes.Reader, *strings.Reader and
	// *io.SectionReader, which can be read in place without spooling.
	sizedReaderAt interface {
		io.ReaderAt
		Size() int64
	}
)

// WithFs runs the operation against fsys instead of the host filesystem.
func WithFs(fsys afero.Fs) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Pack writes a new ZIP archive at destination containing sources and
// returns the archive's absolute path.
//
// Files passed directly are placed at the archive root under their base
// name. Directories keep their own name as the first path segment and their
// hierarchy below it. Missing parent directories of destination are created.
//
// Pack fails with a *DestinationConflictError when destination already exists
// as a file or directory, and with a *DuplicateEntryError when two sources
// map to the same entry name. If a source cannot be read mid-way, the
// incomplete output is left on disk and is not a valid archive.
func Pack(destination string, sources []string, opts ...Option) (string, error) {
	o := applyOptions(opts)

	dest, err := absPath(destination)
	if err != nil {
		return "", fmt.Errorf("invalid destination: %w", err)
	}
	typed, err := types.FilesystemPaths(sources)
	if err != nil {
		return "", fmt.Errorf("invalid source: %w", err)
	}
	absSources := make([]types.FilesystemPath, len(typed))
	for i, src := range typed {
		if absSources[i], err = fspath.Abs(src); err != nil {
			return "", newIOError("resolve source", src, err)
		}
	}

	if err := write(o.fs, dest, absSources); err != nil {
		return "", err
	}
	return string(dest), nil
}

// Unpack extracts the archive at archivePath into destination, creating
// destination if needed. Existing files are overwritten; an entry that would
// escape destination aborts the extraction with a *PathTraversalError.
func Unpack(archivePath, destination string, opts ...Option) (err error) {
	o := applyOptions(opts)

	src, err := absPath(archivePath)
	if err != nil {
		return fmt.Errorf("invalid archive path: %w", err)
	}
	dest, err := absPath(destination)
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}

	f, err := o.fs.Open(string(src))
	if err != nil {
		return newIOError("open archive", src, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = newIOError("close archive", src, closeErr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return newIOError("stat archive", src, err)
	}
	return read(o.fs, f, info.Size(), src, dest)
}

// UnpackReader extracts an archive read from r into destination. It behaves
// like Unpack; r is consumed but not closed, the caller keeps ownership.
//
// ZIP needs random access to its central directory, so unless r already
// supports ReadAt and Size the stream is spooled to a temporary file on the
// configured filesystem, which is removed before returning.
func UnpackReader(r io.Reader, destination string, opts ...Option) (err error) {
	o := applyOptions(opts)

	dest, err := absPath(destination)
	if err != nil {
		return fmt.Errorf("invalid destination: %w", err)
	}

	if ra, ok := r.(sizedReaderAt); ok {
		return read(o.fs, ra, ra.Size(), streamLabel, dest)
	}

	spool, err := afero.TempFile(o.fs, "", "zipper-*.zip")
	if err != nil {
		return newIOError("create spool file", streamLabel, err)
	}
	spoolPath := types.FilesystemPath(spool.Name())
	defer func() {
		closeErr := spool.Close()
		removeErr := o.fs.Remove(string(spoolPath))
		if err != nil {
			return
		}
		if closeErr != nil {
			err = newIOError("close spool file", spoolPath, closeErr)
		} else if removeErr != nil {
			err = newIOError("remove spool file", spoolPath, removeErr)
		}
	}()

	size, err := io.Copy(spool, r)
	if err != nil {
		return newIOError("read archive stream", streamLabel, err)
	}
	return read(o.fs, spool, size, streamLabel, dest)
}

// List returns the entries stored in the archive at archivePath, in stored
// order, without extracting anything.
func List(archivePath string, opts ...Option) (entries []Entry, err error) {
	o := applyOptions(opts)

	src, err := absPath(archivePath)
	if err != nil {
		return nil, fmt.Errorf("invalid archive path: %w", err)
	}

	f, err := o.fs.Open(string(src))
	if err != nil {
		return nil, newIOError("open archive", src, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = newIOError("close archive", src, closeErr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, newIOError("stat archive", src, err)
	}
	return listEntries(f, info.Size(), src)
}

func absPath(raw string) (types.FilesystemPath, error) {
	p := types.FilesystemPath(raw)
	if err := p.Validate(); err != nil {
		return "", err
	}
	return fspath.Abs(p)
}
