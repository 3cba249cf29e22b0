package tool

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"time"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	metrics "github.com/mutablelogic/go-tools/pkg/metrics"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Toolkit is a collection of tools with unique names
type Toolkit struct {
	tools map[string]Tool
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewToolkit creates a new toolkit with the given tools.
// Returns an error if any tool has an invalid or duplicate name.
func NewToolkit(items ...Tool) (*Toolkit, error) {
	tk := &Toolkit{
		tools: make(map[string]Tool),
	}
	if err := tk.Register(items...); err != nil {
		return nil, err
	}
	return tk, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Tools returns all tools in the toolkit, sorted by name
func (tk *Toolkit) Tools() []Tool {
	result := make([]Tool, 0, len(tk.tools))
	for _, t := range tk.tools {
		result = append(result, t)
	}
	slices.SortFunc(result, func(a, b Tool) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return result
}

// Register adds one or more tools to the toolkit.
// Returns an error if any tool has an invalid or duplicate name.
func (tk *Toolkit) Register(items ...Tool) error {
	for _, t := range items {
		if t == nil {
			return tools.ErrBadParameter.With("tool cannot be nil")
		}
		name := t.Name()
		if !types.IsIdentifier(name) {
			return tools.ErrBadParameter.Withf("invalid tool name: %q", name)
		}
		if _, exists := tk.tools[name]; exists {
			return tools.ErrConflict.Withf("duplicate tool name: %q", name)
		}
		tk.tools[name] = t
	}
	return nil
}

// Lookup returns a tool by name, or nil if not found
func (tk *Toolkit) Lookup(name string) Tool {
	return tk.tools[name]
}

// Run executes a tool by name with the given input.
// The input should be json.RawMessage, []byte, nil or a value which can be
// marshalled to JSON. The input is validated against the declared input
// schema and the result against the declared output schema.
func (tk *Toolkit) Run(ctx context.Context, name string, input any) (result any, err error) {
	// Lookup the tool
	tool := tk.Lookup(name)
	if tool == nil {
		return nil, tools.ErrNotFound.Withf("tool not found: %q", name)
	}

	// Record the invocation. A panic in the tool is returned as an error.
	defer func(start time.Time) {
		if r := recover(); r != nil {
			result, err = nil, tools.ErrInternalServerError.Withf("%s: %v", name, r)
		}
		metrics.ObserveInvocation(name, err, time.Since(start))
	}(time.Now())

	// Convert input to json.RawMessage
	rawInput, err := rawMessage(input)
	if err != nil {
		return nil, err
	}

	// Validate input against schema if provided
	if s := tool.InputSchema(); s != nil {
		var value any = map[string]any{}
		if len(rawInput) > 0 {
			if err := json.Unmarshal(rawInput, &value); err != nil {
				return nil, tools.ErrBadParameter.Withf("invalid JSON input: %v", err)
			}
		}
		if err := s.Validate(value); err != nil {
			return nil, err
		}
	}

	// Run the tool
	result, err = tool.Run(ctx, rawInput)
	if err != nil {
		return nil, err
	}

	// Validate output against schema if provided
	if s := tool.OutputSchema(); s != nil {
		value, err := jsonValue(result)
		if err != nil {
			return nil, tools.ErrInternalServerError.Withf("failed to marshal output: %v", err)
		}
		if err := s.Validate(value); err != nil {
			return nil, tools.ErrUnexpectedResponse.Withf("invalid output: %v", err)
		}
	}

	// Return success
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (tk *Toolkit) String() string {
	names := make([]string, 0, len(tk.tools))
	for _, t := range tk.Tools() {
		names = append(names, t.Name())
	}
	return "<toolkit " + strings.Join(names, " ") + ">"
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func rawMessage(input any) (json.RawMessage, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return v, nil
	case []byte:
		return json.RawMessage(v), nil
	default:
		data, err := json.Marshal(input)
		if err != nil {
			return nil, tools.ErrBadParameter.Withf("failed to marshal input: %v", err)
		}
		return json.RawMessage(data), nil
	}
}

// jsonValue round-trips a value through JSON so it can be validated
func jsonValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return result, nil
}
