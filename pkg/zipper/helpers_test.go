// SPDX-License-Identifier: MPL-2.0

package zipper

import (
	"bytes"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
)

// rawEntry describes an archive entry written verbatim, bypassing Pack, so
// tests can craft hostile names and special modes.
type rawEntry struct {
	name string
	body string
	mode fs.FileMode
}

// failingFs fails Open for selected paths and delegates everything else.
type failingFs struct {
	afero.Fs
	failOpen map[string]error
}

func (f failingFs) Open(name string) (afero.File, error) {
	if err, ok := f.failOpen[filepath.Clean(name)]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	return f.Fs.Open(name)
}

func buildArchive(t *testing.T, entries ...rawEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		h := &zip.FileHeader{Name: e.name, Method: zip.Deflate, Modified: time.Now()}
		if e.mode != 0 {
			h.SetMode(e.mode)
		}
		w, err := zw.CreateHeader(h)
		if err != nil {
			t.Fatalf("CreateHeader(%q): %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatalf("Write(%q): %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing archive: %v", err)
	}
	return buf.Bytes()
}

func writeFiles(t *testing.T, fsys afero.Fs, files map[string]string) {
	t.Helper()

	for name, content := range files {
		p := filepath.FromSlash(name)
		if err := fsys.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", filepath.Dir(p), err)
		}
		if err := afero.WriteFile(fsys, p, []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", p, err)
		}
	}
}

func mkdirs(t *testing.T, fsys afero.Fs, dirs ...string) {
	t.Helper()

	for _, d := range dirs {
		if err := fsys.MkdirAll(filepath.FromSlash(d), 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", d, err)
		}
	}
}

// snapshot maps every path below root to its content. Directories appear
// with a trailing slash and empty content.
func snapshot(t *testing.T, fsys afero.Fs, root string) map[string]string {
	t.Helper()

	tree := make(map[string]string)
	root = filepath.FromSlash(root)
	err := afero.Walk(fsys, root, func(p string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if info.IsDir() {
			tree[rel+"/"] = ""
			return nil
		}
		data, err := afero.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		tree[rel] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("walking %s: %v", root, err)
	}
	return tree
}

func entryNames(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func sortedKeys(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, ", ")
}

func assertTree(t *testing.T, got, want map[string]string) {
	t.Helper()

	if len(got) != len(want) {
		t.Errorf("tree has %d paths [%s], want %d [%s]", len(got), sortedKeys(got), len(want), sortedKeys(want))
	}
	for p, content := range want {
		gotContent, ok := got[p]
		if !ok {
			t.Errorf("missing %s", p)
			continue
		}
		if gotContent != content {
			t.Errorf("%s content = %q, want %q", p, gotContent, content)
		}
	}
}
