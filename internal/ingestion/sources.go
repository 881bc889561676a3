package ingestion

import (
	"fmt"
	"os"
	"strings"

	"sigs.k8s.io/yaml"
)

// Source describes one knowledge base source, either a git repository URL or
// a local directory path. Exactly one of URL and Path must be set.
type Source struct {
	Name    string   `json:"name"`
	URL     string   `json:"url,omitempty"`
	Path    string   `json:"path,omitempty"`
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

type Manifest struct {
	Sources []Source `json:"sources"`
}

func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse sources manifest: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	if len(m.Sources) == 0 {
		return fmt.Errorf("sources manifest defines no sources")
	}
	seen := make(map[string]bool, len(m.Sources))
	for i, s := range m.Sources {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("source %d has no name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate source name %q", name)
		}
		seen[name] = true
		if (s.URL == "") == (s.Path == "") {
			return fmt.Errorf("source %q must set exactly one of url or path", name)
		}
	}
	return nil
}
