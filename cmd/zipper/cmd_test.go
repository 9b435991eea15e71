// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"

	"github.com/appdav/zipper/internal/config"
	"github.com/appdav/zipper/internal/testutil"
	"github.com/appdav/zipper/pkg/platform"
	"github.com/appdav/zipper/pkg/types"
)

// staticProvider serves a fixed configuration so tests never read the
// developer's own config directory.
type staticProvider struct {
	loaded *config.Loaded
	err    error
}

func (p staticProvider) Load(context.Context, config.LoadOptions) (*config.Loaded, error) {
	return p.loaded, p.err
}

type harness struct {
	app    *App
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T, cfg *config.Config, stdin []byte) *harness {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	h := &harness{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	h.app = NewApp(Dependencies{
		Config: staticProvider{loaded: &config.Loaded{Config: cfg}},
		Stdin:  bytes.NewReader(stdin),
		Stdout: h.stdout,
		Stderr: h.stderr,
	})
	return h
}

func (h *harness) run(args ...string) types.ExitCode {
	return run(context.Background(), h.app, args)
}

func singleEntryArchive(t *testing.T, name string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("pwned")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPackListUnpack(t *testing.T) {
	tmp := t.TempDir()
	src := filepath.Join(tmp, "src")
	testutil.MustWriteTree(t, src, map[string]string{
		"test.txt":             "plain",
		"folder1/sub/file.txt": "nested",
		"folder3/":             "",
	})
	archive := filepath.Join(tmp, "out", "bundle.zip")

	h := newHarness(t, nil, nil)
	code := h.run("pack", archive,
		filepath.Join(src, "test.txt"), filepath.Join(src, "folder1"), filepath.Join(src, "folder3"))
	if code != types.ExitSuccess {
		t.Fatalf("pack exit = %s, stderr:\n%s", code, h.stderr)
	}
	if !strings.Contains(h.stdout.String(), "Created") {
		t.Errorf("pack stdout = %q", h.stdout)
	}

	h = newHarness(t, nil, nil)
	if code := h.run("list", "--plain", archive); code != types.ExitSuccess {
		t.Fatalf("list exit = %s, stderr:\n%s", code, h.stderr)
	}
	want := "test.txt\nfolder1/sub/file.txt\nfolder3/\n"
	if h.stdout.String() != want {
		t.Errorf("list --plain = %q, want %q", h.stdout, want)
	}

	h = newHarness(t, nil, nil)
	if code := h.run("list", archive); code != types.ExitSuccess {
		t.Fatalf("list exit = %s", code)
	}
	for _, col := range []string{"NAME", "SIZE", "folder1/sub/file.txt"} {
		if !strings.Contains(h.stdout.String(), col) {
			t.Errorf("list table missing %q:\n%s", col, h.stdout)
		}
	}

	dest := filepath.Join(tmp, "restored")
	h = newHarness(t, nil, nil)
	if code := h.run("unpack", archive, "--dest", dest); code != types.ExitSuccess {
		t.Fatalf("unpack exit = %s, stderr:\n%s", code, h.stderr)
	}
	got := testutil.ReadTree(t, dest)
	wantTree := map[string]string{
		"test.txt":             "plain",
		"folder1/":             "",
		"folder1/sub/":         "",
		"folder1/sub/file.txt": "nested",
		"folder3/":             "",
	}
	if len(got) != len(wantTree) {
		t.Errorf("restored tree = %v, want %v", got, wantTree)
	}
	for k, v := range wantTree {
		if got[k] != v {
			t.Errorf("restored %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestPack_Conflict(t *testing.T) {
	tmp := t.TempDir()
	testutil.MustWriteTree(t, tmp, map[string]string{"a.txt": "a", "exists.zip": "old"})

	h := newHarness(t, nil, nil)
	code := h.run("pack", filepath.Join(tmp, "exists.zip"), filepath.Join(tmp, "a.txt"))
	if code != types.ExitFailure {
		t.Errorf("exit = %s, want %s", code, types.ExitFailure)
	}
	if !strings.Contains(h.stderr.String(), "already exists") {
		t.Errorf("stderr = %q, want a conflict message", h.stderr)
	}
	if data, _ := os.ReadFile(filepath.Join(tmp, "exists.zip")); string(data) != "old" {
		t.Error("existing archive was modified")
	}
}

func TestUnpack_HostileArchiveFromStdin(t *testing.T) {
	tmp := t.TempDir()
	dest := filepath.Join(tmp, "out")

	h := newHarness(t, nil, singleEntryArchive(t, "../../evil.txt"))
	code := h.run("unpack", "-", "--dest", dest)
	if code != types.ExitFailure {
		t.Errorf("exit = %s, want %s", code, types.ExitFailure)
	}
	if !strings.Contains(h.stderr.String(), "zip-slip") {
		t.Errorf("stderr = %q, want the zip-slip message", h.stderr)
	}
	if _, err := os.Stat(filepath.Join(tmp, "evil.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Error("hostile entry escaped the destination")
	}
}

func TestUnpack_DefaultDestFromConfig(t *testing.T) {
	tmp := t.TempDir()
	archive := filepath.Join(tmp, "in.zip")
	if err := os.WriteFile(archive, singleEntryArchive(t, "safe.txt"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.Unpack.DefaultDest = filepath.Join(tmp, "configured")
	h := newHarness(t, cfg, nil)
	if code := h.run("unpack", archive); code != types.ExitSuccess {
		t.Fatalf("exit = %s, stderr:\n%s", code, h.stderr)
	}
	if data, err := os.ReadFile(filepath.Join(tmp, "configured", "safe.txt")); err != nil || string(data) != "pwned" {
		t.Errorf("configured destination content = %q, %v", data, err)
	}
}

func TestUnpack_MissingArchive(t *testing.T) {
	h := newHarness(t, nil, nil)
	code := h.run("unpack", filepath.Join(t.TempDir(), "missing.zip"), "--dest", t.TempDir())
	if code != types.ExitFailure {
		t.Errorf("exit = %s, want %s", code, types.ExitFailure)
	}
	if !strings.Contains(h.stderr.String(), "Archive not found") {
		t.Errorf("stderr should include the archive-not-found page:\n%s", h.stderr)
	}
}

func TestConfigWarningFallsBackToDefaults(t *testing.T) {
	h := newHarness(t, nil, nil)
	h.app.Config = staticProvider{err: errors.New("broken config")}

	if code := h.run("config", "show"); code != types.ExitSuccess {
		t.Fatalf("exit = %s, stderr:\n%s", code, h.stderr)
	}
	if !strings.Contains(h.stderr.String(), "broken config") {
		t.Errorf("stderr = %q, want the config warning", h.stderr)
	}
	if !strings.Contains(h.stdout.String(), "timeout = '10s'") {
		t.Errorf("config show = %q, want defaults", h.stdout)
	}
}

func TestExec(t *testing.T) {
	if runtime.GOOS == platform.Windows {
		t.Skip("uses a POSIX shell")
	}

	tests := []struct {
		name     string
		args     []string
		wantCode types.ExitCode
		wantOut  string
	}{
		{name: "success", args: []string{"exec", "--", "sh", "-c", "echo ran"}, wantCode: types.ExitSuccess, wantOut: "ran"},
		{name: "single quoted line", args: []string{"exec", "--", `echo "two words"`}, wantCode: types.ExitSuccess, wantOut: "two words"},
		{name: "child exit code", args: []string{"exec", "--", "sh", "-c", "exit 3"}, wantCode: 3},
		{name: "timeout", args: []string{"exec", "--timeout", "100ms", "--", "sleep", "5"}, wantCode: types.ExitTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil, nil)
			if code := h.run(tt.args...); code != tt.wantCode {
				t.Errorf("exit = %s, want %s; stderr:\n%s", code, tt.wantCode, h.stderr)
			}
			if !strings.Contains(h.stdout.String(), tt.wantOut) {
				t.Errorf("stdout = %q, want %q", h.stdout, tt.wantOut)
			}
		})
	}
}

func TestPlatform(t *testing.T) {
	h := newHarness(t, nil, nil)
	if code := h.run("platform"); code != types.ExitSuccess {
		t.Fatalf("exit = %s", code)
	}
	if !strings.Contains(h.stdout.String(), platform.Current().String()) {
		t.Errorf("platform output = %q, want family %s", h.stdout, platform.Current())
	}
}

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
	})

	Version, Commit, BuildDate = "v1.2.3", "abc1234", "2026-01-02T03:04:05Z"
	if got, want := getVersionString(), "v1.2.3 (commit: abc1234, built: 2026-01-02T03:04:05Z)"; got != want {
		t.Errorf("getVersionString() = %q, want %q", got, want)
	}

	// Development builds fall back to the module version, when one is stamped.
	Version = "dev"
	if got := getVersionString(); got == "" || strings.Contains(got, "commit:") {
		t.Errorf("getVersionString() = %q, want a development version", got)
	}
}

func TestExitCodeOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		err          error
		wantCode     types.ExitCode
		wantRendered bool
	}{
		{name: "nil", err: nil, wantCode: types.ExitSuccess},
		{name: "plain error", err: errors.New("unknown flag"), wantCode: types.ExitFailure},
		{name: "exit error", err: &ExitError{Code: types.ExitTimeout}, wantCode: types.ExitTimeout},
		{
			name:         "wrapped rendered exit error",
			err:          fmt.Errorf("run: %w", &ExitError{Code: 3, Rendered: true}),
			wantCode:     3,
			wantRendered: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeOf(tt.err); got != tt.wantCode {
				t.Errorf("exitCodeOf() = %s, want %s", got, tt.wantCode)
			}
			if got := alreadyRendered(tt.err); got != tt.wantRendered {
				t.Errorf("alreadyRendered() = %v, want %v", got, tt.wantRendered)
			}
		})
	}
}
