// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/appdav/zipper/pkg/fspath"
	"github.com/appdav/zipper/pkg/types"
)

// Resolve maps an archive entry name onto root and verifies that the result
// is root itself or one of its descendants.
//
// Entry names are slash-separated; backslashes are treated as separators as
// well because archives produced on Windows sometimes carry them. Absolute
// names (leading slash, drive letter, UNC prefix) and names that climb above
// root are rejected with a *PathTraversalError. Resolve performs no I/O.
func Resolve(root types.FilesystemPath, entryName string) (types.FilesystemPath, error) {
	cleanRoot := fspath.Clean(root)
	reject := func() (types.FilesystemPath, error) {
		return "", &PathTraversalError{Entry: entryName, Root: cleanRoot}
	}

	name := strings.ReplaceAll(entryName, `\`, "/")
	if isAbsEntryName(name) {
		return reject()
	}

	cleaned := path.Clean(name)
	if escapes(cleaned) {
		return reject()
	}

	resolved := fspath.JoinStr(cleanRoot, filepath.FromSlash(cleaned))
	rel, err := fspath.Rel(cleanRoot, resolved)
	if err != nil || escapes(filepath.ToSlash(rel)) {
		return reject()
	}
	return resolved, nil
}

// isAbsEntryName reports names that would override the root instead of
// extending it.
func isAbsEntryName(name string) bool {
	if strings.HasPrefix(name, "/") {
		return true
	}
	// Drive-letter names ("C:", "C:/x") are absolute or drive-relative on
	// Windows; neither is meaningful inside an archive.
	if len(name) >= 2 && name[1] == ':' && isASCIILetter(name[0]) {
		return true
	}
	return filepath.VolumeName(filepath.FromSlash(name)) != ""
}

// escapes reports whether a cleaned slash path climbs above its base.
func escapes(cleaned string) bool {
	return cleaned == ".." || strings.HasPrefix(cleaned, "../")
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
