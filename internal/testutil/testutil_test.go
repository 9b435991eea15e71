// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/appdav/zipper/pkg/platform"
)

func TestMustWriteTree_ReadTree(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := map[string]string{
		"a.txt":         "alpha",
		"dir/b.txt":     "bravo",
		"dir/":          "",
		"empty/":        "",
		"dir/sub/c.txt": "charlie",
		"dir/sub/":      "",
	}
	MustWriteTree(t, root, want)

	got := ReadTree(t, root)
	if len(got) != len(want) {
		t.Fatalf("ReadTree() = %v, want %v", got, want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ReadTree()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestMustSetenv_Restores(t *testing.T) {
	const key = "ZIPPER_TESTUTIL_PROBE"
	t.Cleanup(MustUnsetenv(t, key))

	cleanup := MustSetenv(t, key, "set")
	if got := os.Getenv(key); got != "set" {
		t.Fatalf("%s = %q, want %q", key, got, "set")
	}
	cleanup()
	if _, ok := os.LookupEnv(key); ok {
		t.Errorf("%s still set after cleanup", key)
	}
}

func TestSetHomeDir(t *testing.T) {
	key := "HOME"
	if runtime.GOOS == platform.Windows {
		key = "USERPROFILE"
	}
	original := os.Getenv(key)
	dir := t.TempDir()

	cleanup := SetHomeDir(t, dir)
	if got := os.Getenv(key); got != dir {
		t.Errorf("%s = %q, want %q", key, got, dir)
	}
	cleanup()
	if got := os.Getenv(key); got != original {
		t.Errorf("after cleanup %s = %q, want %q", key, got, original)
	}
}

func TestMustChdir(t *testing.T) {
	before, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	restore := MustChdir(t, dir)
	now, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	resolvedDir, _ := filepath.EvalSymlinks(dir)
	resolvedNow, _ := filepath.EvalSymlinks(now)
	if resolvedNow != resolvedDir {
		t.Errorf("Getwd() = %q, want %q", now, dir)
	}
	restore()
	if after, _ := os.Getwd(); after != before {
		t.Errorf("after restore Getwd() = %q, want %q", after, before)
	}
}
