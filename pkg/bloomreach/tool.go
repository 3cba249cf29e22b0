package bloomreach

import (
	"context"
	"encoding/json"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	schema "github.com/mutablelogic/go-tools/pkg/schema"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type search struct {
	client *Client
}

var _ tool.Tool = (*search)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// SearchExport is the identifier the search tool is exported under
	SearchExport = "bloomReachSearch"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the search tools backed by a new client
func NewTools(opts ...Opt) ([]tool.Tool, error) {
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return []tool.Tool{
		&search{client: client},
	}, nil
}

// Exports returns the tools keyed by their export identifier
func Exports(opts ...Opt) (map[string]tool.Tool, error) {
	client, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return map[string]tool.Tool{
		SearchExport: &search{client: client},
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// SEARCH

func (*search) Name() string {
	return "bloomreach_search"
}

func (*search) Description() string {
	return "Search for products using the Bloomreach search service"
}

func (*search) InputSchema() *schema.Type {
	return InputSchema
}

func (*search) OutputSchema() *schema.Type {
	return OutputSchema
}

// Run the tool with the given input
func (s *search) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req SearchRequest

	// Unmarshal JSON input if provided
	if len(input) > 0 {
		if err := json.Unmarshal(input, &req); err != nil {
			return nil, tools.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
		}
	}

	// Validate required fields
	if req.SearchQuery == "" {
		return nil, tools.ErrBadParameter.With("search_query is required")
	}

	return s.client.Search(ctx, &req)
}
