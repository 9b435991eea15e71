// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type (
	// ActionableError is a user-facing failure: the operation that failed,
	// the path it failed on, hints for the user and the catalogue page that
	// explains it. Build one with NewErrorContext:
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("unpack archive").
	//		WithResource("./release.zip").
	//		WithHint("Run 'zipper list ./release.zip' to inspect its entries").
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "pack archive".
		Operation string
		// Resource is the path involved, if any.
		Resource string
		Hints    []string
		Cause    error
		// Issue is zero when no catalogue page applies.
		Issue Id
	}

	// ErrorContext accumulates the fields of an ActionableError.
	ErrorContext struct {
		draft ActionableError
	}
)

func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error reads "failed to <operation>: <resource>: <cause>", omitting the
// parts that are empty.
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format renders Error followed by the hints. verbose appends every error
// beneath Cause, numbered depth-first, including each branch of joined
// errors.
func (e *ActionableError) Format(verbose bool) string {
	var b strings.Builder
	b.WriteString(e.Error())

	if len(e.Hints) > 0 {
		b.WriteString("\n")
		for _, hint := range e.Hints {
			b.WriteString("\n  • " + hint)
		}
	}

	if verbose && e.Cause != nil {
		b.WriteString("\n\nError chain:")
		for i, msg := range causeChain(e.Cause) {
			fmt.Fprintf(&b, "\n  %d. %s", i+1, msg)
		}
	}
	return b.String()
}

func causeChain(err error) []string {
	var msgs []string
	var visit func(error)
	visit = func(err error) {
		for err != nil {
			msgs = append(msgs, err.Error())
			switch u := err.(type) {
			case interface{ Unwrap() []error }:
				for _, inner := range u.Unwrap() {
					visit(inner)
				}
				return
			case interface{ Unwrap() error }:
				err = u.Unwrap()
			default:
				return
			}
		}
	}
	visit(err)
	return msgs
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.draft.Operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.draft.Resource = res
	return c
}

// WithHint appends hints; it may be called repeatedly.
func (c *ErrorContext) WithHint(hints ...string) *ErrorContext {
	c.draft.Hints = append(c.draft.Hints, hints...)
	return c
}

func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.draft.Issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.draft.Cause = err
	return c
}

// Build returns the accumulated error, or nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.draft.Operation == "" {
		return nil
	}
	ae := c.draft
	ae.Hints = slices.Clone(c.draft.Hints)
	return &ae
}

// BuildError is Build behind the error interface; a missing operation
// yields a true nil.
func (c *ErrorContext) BuildError() error {
	if ae := c.Build(); ae != nil {
		return ae
	}
	return nil
}
