// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "pack archive"},
			expected: "failed to pack archive",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "pack archive", Resource: "out.zip"},
			expected: "failed to pack archive: out.zip",
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load config", Cause: errors.New("unexpected token")},
			expected: "failed to load config: unexpected token",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "unpack archive",
				Resource:  "in.zip",
				Cause:     errors.New("file not found"),
			},
			expected: "failed to unpack archive: in.zip: file not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	cause := errors.New("specific error")
	wrapped := &ActionableError{Operation: "test", Cause: cause}

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if (&ActionableError{Operation: "test"}).Unwrap() != nil {
		t.Error("Unwrap() should return nil when no cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	inner := errors.New("disk full")
	outer := &ActionableError{
		Operation: "unpack archive",
		Resource:  "in.zip",
		Hints:     []string{"Free some space", "Pick another destination"},
		Cause:     errors.Join(inner),
	}

	quiet := outer.Format(false)
	for _, want := range []string{"failed to unpack archive: in.zip", "• Free some space", "• Pick another destination"} {
		if !strings.Contains(quiet, want) {
			t.Errorf("Format(false) missing %q in:\n%s", want, quiet)
		}
	}
	if strings.Contains(quiet, "Error chain:") {
		t.Errorf("Format(false) should not include the error chain:\n%s", quiet)
	}

	loud := outer.Format(true)
	if !strings.Contains(loud, "Error chain:") || !strings.Contains(loud, "1. disk full") {
		t.Errorf("Format(true) missing error chain:\n%s", loud)
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("pack archive").
		WithResource("out.zip").
		WithHint("first").
		WithHint("second", "third").
		WithIssue(DestinationConflictId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "pack archive" || ae.Resource != "out.zip" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Hints) != 3 {
		t.Errorf("Hints = %v, want 3 entries", ae.Hints)
	}
	if ae.Issue != DestinationConflictId {
		t.Errorf("Issue = %d, want %d", ae.Issue, DestinationConflictId)
	}
	if !errors.Is(ae, cause) {
		t.Error("built error should wrap the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if ae := NewErrorContext().WithResource("x").Build(); ae != nil {
		t.Errorf("Build() = %v, want nil without an operation", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() = %v, want a true nil", err)
	}
}

func TestErrorContext_BuildCopiesHints(t *testing.T) {
	ctx := NewErrorContext().WithOperation("pack archive").WithHint("first")
	first := ctx.Build()
	ctx.WithHint("second")
	second := ctx.Build()

	if len(first.Hints) != 1 || len(second.Hints) != 2 {
		t.Errorf("hints = %v and %v, want 1 and 2 entries", first.Hints, second.Hints)
	}
}

func TestActionableError_FormatJoinedChain(t *testing.T) {
	ae := &ActionableError{
		Operation: "load config",
		Cause:     fmt.Errorf("decode: %w", errors.Join(errors.New("bad timeout"), errors.New("bad scheme"))),
	}

	out := ae.Format(true)
	for _, want := range []string{"1. decode: bad timeout", "3. bad timeout", "4. bad scheme"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format(true) missing %q in:\n%s", want, out)
		}
	}
}
