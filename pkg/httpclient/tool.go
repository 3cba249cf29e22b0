package httpclient

import (
	"context"
	"encoding/json"

	// Packages
	client "github.com/mutablelogic/go-client"
	tools "github.com/mutablelogic/go-tools"
	httphandler "github.com/mutablelogic/go-tools/pkg/httphandler"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	gjson "github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListTools returns all available tools
func (c *Client) ListTools(ctx context.Context) (*httphandler.ListToolResponse, error) {
	var response httphandler.ListToolResponse
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("tool")); err != nil {
		return nil, err
	}
	return &response, nil
}

// GetTool returns a tool by name
func (c *Client) GetTool(ctx context.Context, name string) (*httphandler.ToolMeta, error) {
	if name == "" {
		return nil, tools.ErrBadParameter.With("tool name cannot be empty")
	}
	var response httphandler.ToolMeta
	if err := c.DoWithContext(ctx, client.NewRequest(), &response, client.OptPath("tool", name)); err != nil {
		return nil, err
	}
	return &response, nil
}

// CallTool calls a tool with the given input, and returns the result as
// JSON. A failed call returns a *tool.Failure as the error.
func (c *Client) CallTool(ctx context.Context, name string, input any) (json.RawMessage, error) {
	if name == "" {
		return nil, tools.ErrBadParameter.With("tool name cannot be empty")
	}
	if input == nil {
		input = map[string]any{}
	}
	req, err := client.NewJSONRequest(input)
	if err != nil {
		return nil, err
	}

	var response json.RawMessage
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("tool", name)); err != nil {
		return nil, err
	}
	if failure := failure(response); failure != nil {
		return nil, failure
	}
	return response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// failure returns the failure when the response is an object with a single
// "error" string
func failure(data json.RawMessage) *tool.Failure {
	result := gjson.ParseBytes(data)
	if !result.IsObject() {
		return nil
	}
	fields := result.Map()
	if message, exists := fields["error"]; exists && len(fields) == 1 && message.Type == gjson.String {
		return &tool.Failure{Message: message.Str}
	}
	return nil
}
