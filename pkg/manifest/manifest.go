package manifest

import (
	"bytes"
	"os"
	"path/filepath"

	// Packages
	schema "github.com/mutablelogic/go-tools/pkg/schema"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Manifest is the published list of tool definitions
type Manifest struct {
	Tools []schema.ToolDefinition `json:"tools" yaml:"tools"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Marshal returns the manifest as a YAML document
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write the manifest to a file, creating the parent directory if needed
func (m *Manifest) Write(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Names returns the tool names in manifest order
func (m *Manifest) Names() []string {
	result := make([]string, 0, len(m.Tools))
	for _, t := range m.Tools {
		result = append(result, t.Name)
	}
	return result
}
