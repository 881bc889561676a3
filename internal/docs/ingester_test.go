package docs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobsToRegexp(t *testing.T) {
	cases := []struct {
		glob  string
		path  string
		match bool
	}{
		{"**/*.md", "README.md", true},
		{"**/*.md", "docs/guide.md", true},
		{"**/*.md", "docs/deep/nested/guide.md", true},
		{"**/*.md", "docs/guide.txt", false},
		{"docs/*.md", "docs/guide.md", true},
		{"docs/*.md", "docs/deep/guide.md", false},
		{"docs/**", "docs/deep/guide.md", true},
		{"*.md", "README.md", true},
		{"*.md", "docs/guide.md", false},
	}
	for _, tc := range cases {
		rx := globsToRegexp([]string{tc.glob})
		if rx == nil {
			t.Fatalf("nil regexp for %q", tc.glob)
		}
		if got := rx.MatchString(tc.path); got != tc.match {
			t.Errorf("glob %q vs %q: got %v, want %v", tc.glob, tc.path, got, tc.match)
		}
	}

	if globsToRegexp(nil) != nil {
		t.Fatal("empty glob list should produce nil")
	}
	if globsToRegexp([]string{"", "  "}) != nil {
		t.Fatal("blank globs should produce nil")
	}
}

func TestFilterFiles(t *testing.T) {
	files := []string{"README.md", "docs/a.md", "docs/b.md", "vendor/c.md", "main.go"}
	include := globsToRegexp([]string{"**/*.md"})
	exclude := globsToRegexp([]string{"vendor/**"})

	got := filterFiles(files, include, exclude, 0)
	want := []string{"README.md", "docs/a.md", "docs/b.md"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}

	if capped := filterFiles(files, include, exclude, 2); len(capped) != 2 {
		t.Fatalf("max cap not honored, got %v", capped)
	}
}

func TestClassifyDocType(t *testing.T) {
	cases := map[string]string{
		"README.md":      "markdown",
		"docs/page.mdx":  "markdown",
		"notes.MARKDOWN": "markdown",
		"notes.txt":      "plain",
		"script.sh":      "plain",
	}
	for path, want := range cases {
		if got := classifyDocType(path); got != want {
			t.Errorf("classifyDocType(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestMaterializeDir(t *testing.T) {
	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "README.md"), "# Hello")
	mustWrite(t, filepath.Join(root, "docs", "guide.md"), "## Guide")
	mustWrite(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main")

	tree, err := materializeDir(root)
	if err != nil {
		t.Fatalf("materializeDir: %v", err)
	}
	if tree.rev != "local" {
		t.Fatalf("local sources use the %q revision, got %q", "local", tree.rev)
	}
	if len(tree.files) != 2 {
		t.Fatalf("expected 2 files (git dir skipped), got %v", tree.files)
	}

	content, err := tree.read("docs/guide.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(content) != "## Guide" {
		t.Fatalf("unexpected content %q", content)
	}
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}
