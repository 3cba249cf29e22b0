package schema

import (
	"encoding/json"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	tools "github.com/mutablelogic/go-tools"
	yaml "gopkg.in/yaml.v3"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// JSONSchema is a JSON-encoded schema document that marshals to and from
// both JSON and YAML. In YAML the document is a native mapping, so manifests
// embed schemas rather than JSON strings.
type JSONSchema json.RawMessage

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewJSONSchema creates a JSONSchema from raw JSON bytes.
func NewJSONSchema(data json.RawMessage) JSONSchema {
	return JSONSchema(data)
}

// JSONSchemaFor converts a declared type into a portable schema document
func JSONSchemaFor(t *Type) (JSONSchema, error) {
	if t == nil {
		return nil, tools.ErrBadParameter.With("missing schema")
	}
	data, err := json.Marshal(t.JSONSchema())
	if err != nil {
		return nil, err
	}
	return JSONSchema(data), nil
}

////////////////////////////////////////////////////////////////////////////////
// METHODS

// Bytes returns the underlying JSON bytes.
func (s JSONSchema) Bytes() []byte {
	return []byte(s)
}

// Schema decodes the document into a jsonschema.Schema
func (s JSONSchema) Schema() (*jsonschema.Schema, error) {
	var result jsonschema.Schema
	if len(s) == 0 {
		return nil, tools.ErrBadParameter.With("empty schema")
	}
	if err := json.Unmarshal(s, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Validate resolves the document and validates a decoded JSON value against it
func (s JSONSchema) Validate(instance any) error {
	schema, err := s.Schema()
	if err != nil {
		return err
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return tools.ErrBadParameter.Withf("schema resolution failed: %v", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return tools.ErrBadParameter.Withf("validation failed: %v", err)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// JSON MARSHALLING

func (s JSONSchema) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

func (s *JSONSchema) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}
	*s = append((*s)[:0], data...)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// YAML MARSHALLING

// MarshalYAML emits the schema as a mapping. Mapping keys are sorted by the
// encoder, which keeps the output stable between runs.
func (s JSONSchema) MarshalYAML() (any, error) {
	if len(s) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(s, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *JSONSchema) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	*s = data
	return nil
}
