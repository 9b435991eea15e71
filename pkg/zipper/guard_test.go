// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/appdav/zipper/pkg/types"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	root := types.FilesystemPath(filepath.FromSlash("/dest"))
	under := func(rel string) types.FilesystemPath {
		return types.FilesystemPath(filepath.Join(string(root), filepath.FromSlash(rel)))
	}

	tests := []struct {
		name      string
		entry     string
		want      types.FilesystemPath
		wantError bool
	}{
		{name: "plain file", entry: "test.txt", want: under("test.txt")},
		{name: "nested file", entry: "folder1/sub/file.txt", want: under("folder1/sub/file.txt")},
		{name: "directory marker", entry: "folder3/", want: under("folder3")},
		{name: "dot segments collapse", entry: "a/./b/../c.txt", want: under("a/c.txt")},
		{name: "climb back to root", entry: "a/..", want: root},
		{name: "empty name is the root", entry: "", want: root},
		{name: "dot-dot prefix in a name is not a climb", entry: "..hidden/file", want: under("..hidden/file")},
		{name: "backslash separators", entry: `folder1\file.txt`, want: under("folder1/file.txt")},
		{name: "parent escape", entry: "../evil.txt", wantError: true},
		{name: "deep parent escape", entry: "../../evil.txt", wantError: true},
		{name: "escape after descent", entry: "a/b/../../../evil.txt", wantError: true},
		{name: "bare dot-dot", entry: "..", wantError: true},
		{name: "backslash escape", entry: `..\..\evil.txt`, wantError: true},
		{name: "absolute unix path", entry: "/etc/passwd", wantError: true},
		{name: "absolute backslash path", entry: `\windows\system32`, wantError: true},
		{name: "drive letter path", entry: "C:/Windows/evil.dll", wantError: true},
		{name: "drive relative path", entry: "c:evil.dll", wantError: true},
		{name: "unc path", entry: `\\server\share\evil`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Resolve(root, tt.entry)
			if tt.wantError {
				if err == nil {
					t.Fatalf("Resolve(%q) = %q, want error", tt.entry, got)
				}
				if !errors.Is(err, ErrPathTraversal) {
					t.Errorf("Resolve(%q) error = %v, want ErrPathTraversal", tt.entry, err)
				}
				var ptErr *PathTraversalError
				if !errors.As(err, &ptErr) {
					t.Fatalf("Resolve(%q) error type = %T, want *PathTraversalError", tt.entry, err)
				}
				if ptErr.Entry != tt.entry {
					t.Errorf("PathTraversalError.Entry = %q, want %q", ptErr.Entry, tt.entry)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.entry, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.entry, got, tt.want)
			}
		})
	}
}

func TestResolve_UncleanRoot(t *testing.T) {
	t.Parallel()

	root := types.FilesystemPath(filepath.FromSlash("/dest/./out/"))
	got, err := Resolve(root, "file.txt")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if want := types.FilesystemPath(filepath.FromSlash("/dest/out/file.txt")); got != want {
		t.Errorf("Resolve() = %q, want %q", got, want)
	}

	// A sibling sharing the root's name as a prefix must not pass as a descendant.
	if _, err := Resolve(types.FilesystemPath(filepath.FromSlash("/dest/out")), "../outside/file.txt"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("Resolve() into sibling error = %v, want ErrPathTraversal", err)
	}
}

func TestPathTraversalError_Message(t *testing.T) {
	t.Parallel()

	err := &PathTraversalError{Entry: "../../evil.txt", Root: "/dest"}
	want := `zip archive contains zip-slip exploit which can cause damage to your system: entry name: "../../evil.txt"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
