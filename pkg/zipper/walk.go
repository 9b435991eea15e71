// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"fmt"
	"io/fs"
	"iter"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/appdav/zipper/pkg/fspath"
	"github.com/appdav/zipper/pkg/types"
)

// sourceFile is one item produced by walkSources: either a regular file to
// store, or an empty directory to record as a marker.
type sourceFile struct {
	path types.FilesystemPath
	name string
	info fs.FileInfo
}

func (s sourceFile) isDir() bool { return s.info.IsDir() }

// walkSources lazily yields every archive item for sources in caller order.
// Regular files passed directly are named by their base name; directories
// are descended recursively and their contents named relative to the
// directory's parent. Iteration stops after the first error is yielded.
//
// exclude is the archive being written: it is skipped wherever it shows up,
// so an archive created inside a packed directory never contains itself.
// Symlinks found inside a directory are skipped, never followed. Directory
// listings come back sorted by name (afero.ReadDir), but callers must not
// depend on the order of entries within a directory.
func walkSources(fsys afero.Fs, sources []types.FilesystemPath, exclude types.FilesystemPath) iter.Seq2[sourceFile, error] {
	return func(yield func(sourceFile, error) bool) {
		w := walker{fsys: fsys, exclude: fspath.Clean(exclude), yield: yield}
		for _, src := range sources {
			info, err := fsys.Stat(string(src))
			if err != nil {
				yield(sourceFile{}, newIOError("stat source", src, err))
				return
			}

			switch {
			case info.Mode().IsRegular():
				if w.excluded(src) {
					continue
				}
				if !yield(sourceFile{path: src, name: fspath.Base(src), info: info}, nil) {
					return
				}
			case info.IsDir():
				base := fspath.Dir(fspath.Clean(src))
				if _, ok := w.walkDir(base, src, info); !ok {
					return
				}
			default:
				yield(sourceFile{}, newIOError("stat source", src,
					fmt.Errorf("%w: %s is neither a regular file nor a directory", ErrUnsupportedEntry, info.Mode().Type())))
				return
			}
		}
	}
}

type walker struct {
	fsys    afero.Fs
	exclude types.FilesystemPath
	yield   func(sourceFile, error) bool
}

func (w walker) excluded(p types.FilesystemPath) bool {
	return w.exclude != "" && fspath.Clean(p) == w.exclude
}

// walkDir descends dir and yields its files. It returns how many items were
// yielded beneath dir and whether iteration should continue. A directory with
// nothing stored beneath it is recorded as a marker.
func (w walker) walkDir(base, dir types.FilesystemPath, dirInfo fs.FileInfo) (int, bool) {
	children, err := afero.ReadDir(w.fsys, string(dir))
	if err != nil {
		w.yield(sourceFile{}, newIOError("read directory", dir, err))
		return 0, false
	}

	emitted := 0
	for _, child := range children {
		p := fspath.JoinStr(dir, child.Name())
		mode := child.Mode()

		switch {
		case mode&fs.ModeSymlink != 0:
			continue
		case child.IsDir():
			n, ok := w.walkDir(base, p, child)
			if !ok {
				return emitted + n, false
			}
			emitted += n
		case mode.IsRegular():
			if w.excluded(p) {
				continue
			}
			name, err := entryName(base, p)
			if err != nil {
				w.yield(sourceFile{}, newIOError("relativize", p, err))
				return emitted, false
			}
			if !w.yield(sourceFile{path: p, name: name, info: child}, nil) {
				return emitted, false
			}
			emitted++
		default:
			// Sockets, devices and pipes have no archivable content.
			continue
		}
	}

	if emitted > 0 {
		return emitted, true
	}
	name, err := entryName(base, dir)
	if err != nil {
		w.yield(sourceFile{}, newIOError("relativize", dir, err))
		return 0, false
	}
	if !w.yield(sourceFile{path: dir, name: name + "/", info: dirInfo}, nil) {
		return 1, false
	}
	return 1, true
}

// entryName relativizes p against base and converts it to the archive's
// forward-slash form.
func entryName(base, p types.FilesystemPath) (string, error) {
	rel, err := fspath.Rel(base, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
