package tool

import (
	"context"
	"encoding/json"

	// Packages
	schema "github.com/mutablelogic/go-tools/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Tool is an interface for a tool with a name, description and declared
// input and output schemas
type Tool interface {
	// Return the name of the tool
	Name() string

	// Return the description of the tool
	Description() string

	// Return the schema for the tool input, or nil if not declared
	InputSchema() *schema.Type

	// Return the schema for the tool output, or nil if not declared
	OutputSchema() *schema.Type

	// Run the tool with the given input as JSON (may be nil)
	Run(ctx context.Context, input json.RawMessage) (any, error)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// HasSchemas returns true if the tool declares both an input and an output schema
func HasSchemas(t Tool) bool {
	return t.InputSchema() != nil && t.OutputSchema() != nil
}

// Definition returns the published definition of a tool under the given name
func Definition(name string, t Tool) (schema.ToolDefinition, error) {
	return schema.NewToolDefinition(name, t.Description(), t.InputSchema(), t.OutputSchema())
}
