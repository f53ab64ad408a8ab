// Package homepage reads bookmarks exported by the Homepage dashboard
// (gethomepage.dev) so they can be imported as browser bookmarks.
package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Loader handles loading and parsing of Homepage bookmarks.yaml
type Loader struct {
	filePath string
}

// NewLoader creates a new Homepage bookmarks loader
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the bookmarks.yaml file
func (l *Loader) Load() (BookmarksConfig, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bookmarks file: %w", err)
	}

	// Strip Homepage template variables ({{HOMEPAGE_VAR_...}})
	data = stripTemplateVariables(data)

	var config BookmarksConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks yaml: %w", err)
	}

	return config, nil
}

// stripTemplateVariables removes Homepage template variables from YAML
// Example: {{HOMEPAGE_VAR_ADGUARD_USER}} -> ""
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, []byte(`""`))
}
