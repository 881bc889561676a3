package ingestion

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, `sources:
  - name: handbook
    url: https://github.com/acme/handbook
    include:
      - "docs/**/*.md"
  - name: local-notes
    path: /srv/notes
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if len(m.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(m.Sources))
	}
	if m.Sources[0].Name != "handbook" || m.Sources[0].URL == "" {
		t.Fatalf("unexpected first source %+v", m.Sources[0])
	}
	if len(m.Sources[0].Include) != 1 {
		t.Fatalf("include patterns not parsed: %+v", m.Sources[0])
	}
	if m.Sources[1].Path != "/srv/notes" {
		t.Fatalf("unexpected second source %+v", m.Sources[1])
	}
}

func TestLoadManifestRejectsInvalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"empty", "sources: []\n"},
		{"no name", "sources:\n  - url: https://github.com/acme/x\n"},
		{"both url and path", "sources:\n  - name: x\n    url: https://github.com/acme/x\n    path: /tmp/x\n"},
		{"neither url nor path", "sources:\n  - name: x\n"},
		{"duplicate names", "sources:\n  - name: x\n    path: /a\n  - name: x\n    path: /b\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeManifest(t, tc.content)
			if _, err := LoadManifest(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadManifestMissingFile(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing manifest")
	}
}
