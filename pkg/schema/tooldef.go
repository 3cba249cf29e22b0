package schema

import (
	"fmt"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolDefinition is the published description of a tool: its name, a
// description and portable input and output schemas.
type ToolDefinition struct {
	Name         string     `json:"name" yaml:"name"`
	Description  string     `json:"description" yaml:"description"`
	InputSchema  JSONSchema `json:"inputSchema" yaml:"inputSchema"`
	OutputSchema JSONSchema `json:"outputSchema" yaml:"outputSchema"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolDefinition converts declared input and output types into a tool
// definition. An empty description is replaced with "Tool for <name>".
func NewToolDefinition(name, description string, input, output *Type) (ToolDefinition, error) {
	if description == "" {
		description = fmt.Sprintf("Tool for %s", name)
	}
	in, err := JSONSchemaFor(input)
	if err != nil {
		return ToolDefinition{}, fmt.Errorf("%s: input schema: %w", name, err)
	}
	out, err := JSONSchemaFor(output)
	if err != nil {
		return ToolDefinition{}, fmt.Errorf("%s: output schema: %w", name, err)
	}
	return ToolDefinition{
		Name:         name,
		Description:  description,
		InputSchema:  in,
		OutputSchema: out,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (d ToolDefinition) String() string {
	return types.Stringify(d)
}
