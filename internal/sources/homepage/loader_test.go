package homepage

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleBookmarks = `---
- Developer:
    - Github:
        - abbr: GH
          href: https://github.com/
    - Go Docs:
        - href: https://go.dev/doc/
- Social:
    - Reddit:
        - icon: reddit.png
          href: {{HOMEPAGE_VAR_REDDIT_URL}}
    - Mastodon:
        - href: https://mastodon.social/
`

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}
	return path
}

func TestLoaderLoad(t *testing.T) {
	loader := NewLoader(writeFile(t, sampleBookmarks))
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(config) != 2 {
		t.Fatalf("Load() returned %d categories, want 2", len(config))
	}
	dev, ok := config[0]["Developer"]
	if !ok || len(dev) != 2 {
		t.Errorf("Developer category = %v", dev)
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	loader := NewLoader(writeFile(t, "- Developer: [unclosed"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}

func TestLoaderLoadFileNotFound(t *testing.T) {
	loader := NewLoader("/nonexistent/path/bookmarks.yaml")
	_, err := loader.Load()
	if err == nil {
		t.Error("Load() with non-existent file should return error")
	}
}

func TestStripTemplateVariablesFunc(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "single template variable",
			input:    []byte("url: {{HOMEPAGE_VAR_URL}}"),
			expected: "url: \"\"",
		},
		{
			name:     "two variables on one line",
			input:    []byte("{{A}}:{{B}}"),
			expected: `"":""`,
		},
		{
			name:     "no template variables",
			input:    []byte("plain text"),
			expected: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripTemplateVariables(tt.input)
			if string(result) != tt.expected {
				t.Errorf("stripTemplateVariables() = %q, want %q", string(result), tt.expected)
			}
		})
	}
}
