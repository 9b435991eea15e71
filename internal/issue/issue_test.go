// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

func TestGet_CatalogueComplete(t *testing.T) {
	for id := PathTraversalId; id <= CommandFailedId; id++ {
		page := Get(id)
		if page == nil {
			t.Errorf("Get(%d) = nil, want a page", id)
			continue
		}
		if page.Id() != id {
			t.Errorf("Get(%d).Id() = %d", id, page.Id())
		}
		if strings.TrimSpace(string(page.mdMsg)) == "" {
			t.Errorf("issue %d has an empty message", id)
		}
	}
	if Get(Id(0)) != nil || Get(CommandFailedId+1) != nil {
		t.Error("Get() should return nil for ids outside the catalogue")
	}
}

func TestIssue_Render(t *testing.T) {
	original := render
	t.Cleanup(func() { render = original })

	var gotStyle, gotMd string
	render = func(in, stylePath string) (string, error) {
		gotMd, gotStyle = in, stylePath
		return "rendered", nil
	}

	out, err := Get(PathTraversalId).Render("dark")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "rendered" || gotStyle != "dark" {
		t.Errorf("Render() = %q with style %q", out, gotStyle)
	}
	if !strings.Contains(gotMd, "Unsafe archive rejected") || !strings.Contains(gotMd, "## See also") ||
		!strings.Contains(gotMd, "<https://security.snyk.io/research/zip-slip-vulnerability>") {
		t.Errorf("markdown passed to renderer:\n%s", gotMd)
	}
}

func TestIssue_RenderNoTTY(t *testing.T) {
	out, err := Get(DestinationConflictId).Render("notty")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(out, "Destination already exists") {
		t.Errorf("Render() output missing title:\n%s", out)
	}
}

func TestIssue_RenderWithoutLinks(t *testing.T) {
	original := render
	t.Cleanup(func() { render = original })

	var gotMd string
	render = func(in, _ string) (string, error) {
		gotMd = in
		return in, nil
	}

	if _, err := Get(DestinationConflictId).Render("notty"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(gotMd, "See also") {
		t.Errorf("page without links should not get a See also section:\n%s", gotMd)
	}
}
