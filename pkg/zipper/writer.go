// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"errors"
	"io/fs"
	"os"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"github.com/appdav/zipper/pkg/fspath"
	"github.com/appdav/zipper/pkg/types"
)

// write creates a new archive at destination containing sources.
//
// On a failure after the archive file was created, the zip writer is
// abandoned without writing its central directory, so the partial file is
// not a readable archive. The partial file is left in place for the caller.
func write(fsys afero.Fs, destination types.FilesystemPath, sources []types.FilesystemPath) (err error) {
	info, statErr := fsys.Stat(string(destination))
	switch {
	case statErr == nil:
		return &DestinationConflictError{Path: destination, IsDir: info.IsDir()}
	case !errors.Is(statErr, fs.ErrNotExist):
		return newIOError("stat destination", destination, statErr)
	}

	if mkdirErr := fsys.MkdirAll(string(fspath.Dir(destination)), 0o755); mkdirErr != nil {
		return newIOError("create parent directory", fspath.Dir(destination), mkdirErr)
	}

	// O_EXCL closes the window between the existence check and creation.
	out, err := fsys.OpenFile(string(destination), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return &DestinationConflictError{Path: destination}
		}
		return newIOError("create archive", destination, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = newIOError("close archive", destination, closeErr)
		}
	}()

	zw := zip.NewWriter(out)
	seen := make(map[string]struct{})
	for src, walkErr := range walkSources(fsys, sources, destination) {
		if walkErr != nil {
			return walkErr
		}
		if _, dup := seen[src.name]; dup {
			return &DuplicateEntryError{Entry: src.name, Path: src.path}
		}
		seen[src.name] = struct{}{}

		if addErr := addEntry(fsys, zw, destination, src); addErr != nil {
			return addErr
		}
	}

	if closeErr := zw.Close(); closeErr != nil {
		return newIOError("finalize archive", destination, closeErr)
	}
	return nil
}

// addEntry stores one walked item. File content is read fully before the
// entry header is written, so a read failure never leaves a half-written
// entry behind.
func addEntry(fsys afero.Fs, zw *zip.Writer, destination types.FilesystemPath, src sourceFile) error {
	header, err := zip.FileInfoHeader(src.info)
	if err != nil {
		return newIOError("build entry header", src.path, err)
	}
	header.Name = src.name

	if src.isDir() {
		header.Method = zip.Store
		header.UncompressedSize64 = 0
		if _, err := zw.CreateHeader(header); err != nil {
			return newIOError("write directory entry", destination, err)
		}
		return nil
	}

	data, err := afero.ReadFile(fsys, string(src.path))
	if err != nil {
		return newIOError("read source", src.path, err)
	}

	header.Method = zip.Deflate
	w, err := zw.CreateHeader(header)
	if err != nil {
		return newIOError("write entry", destination, err)
	}
	if _, err := w.Write(data); err != nil {
		return newIOError("write entry", destination, err)
	}
	return nil
}
