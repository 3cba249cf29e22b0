package manifest

import (
	"bytes"
	"encoding/json"
	"os"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	types "github.com/mutablelogic/go-server/pkg/types"
	yaml "gopkg.in/yaml.v3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Registry is the ordered list of tools to include in a manifest
type Registry struct {
	Exports []Export `json:"exports" yaml:"exports"`
}

// Export identifies a tool by its export id and the target which provides it
type Export struct {
	ID          string `json:"id" yaml:"id"`
	VirtualPath string `json:"virtualPath" yaml:"virtualPath"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// LoadRegistry reads a registry from a JSON or YAML file
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRegistry(data)
}

// ParseRegistry parses a registry document, which is JSON or YAML. Every
// export requires an id and a virtual path.
func ParseRegistry(data []byte) (*Registry, error) {
	var registry struct {
		Exports *[]Export `json:"exports" yaml:"exports"`
	}
	if err := unmarshal(data, &registry); err != nil {
		return nil, tools.ErrBadParameter.Withf("registry: %v", err)
	} else if registry.Exports == nil {
		return nil, tools.ErrBadParameter.With("registry: missing exports")
	}
	for i, export := range *registry.Exports {
		if export.ID == "" {
			return nil, tools.ErrBadParameter.Withf("registry: exports[%d]: missing id", i)
		}
		if export.VirtualPath == "" {
			return nil, tools.ErrBadParameter.Withf("registry: exports[%d]: missing virtualPath", i)
		}
	}
	return &Registry{Exports: *registry.Exports}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// unmarshal decodes a JSON object with encoding/json, and anything else as YAML
func unmarshal(data []byte, v any) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		return json.Unmarshal(trimmed, v)
	}
	return yaml.Unmarshal(data, v)
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r Registry) String() string {
	return types.Stringify(r)
}
