/*
bloomreach implements a client for the Bloomreach Discovery search API,
and exposes product search as a tool.
https://documentation.bloomreach.com/discovery/reference/search-api
*/
package bloomreach

import (
	"context"
	"io"
	"net/http"
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	tools "github.com/mutablelogic/go-tools"
	attribute "go.opentelemetry.io/otel/attribute"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	values url.Values
	query  QueryFunc
	tracer trace.Tracer
}

// rawResponse captures the response body so it can be read in document order
type rawResponse struct {
	data []byte
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultEndpoint = "https://core.dxpapi.com/api/v1/core/"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client
func New(opts ...Opt) (*Client, error) {
	o, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}

	// Create client
	clientopts := append(o.clientopts, client.OptEndpoint(o.endpoint))
	if o.tracer != nil {
		clientopts = append(clientopts, client.OptTracer(o.tracer))
	}
	c, err := client.New(clientopts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client: c,
		values: o.values,
		query:  o.query,
		tracer: o.tracer,
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Search issues a single search request and returns the normalized response
func (c *Client) Search(ctx context.Context, req *SearchRequest) (_ *SearchResponse, err error) {
	if req == nil || req.SearchQuery == "" {
		return nil, tools.ErrBadParameter.With("search_query is required")
	}

	// OTEL
	if c.tracer != nil {
		var endSpan func(error)
		ctx, endSpan = otel.StartSpan(c.tracer, ctx, "bloomreach.Search",
			attribute.String("search_query", req.SearchQuery),
		)
		defer func() { endSpan(err) }()
	}

	// Request -> Response
	var response rawResponse
	if err := c.DoWithContext(ctx, nil, &response, client.OptQuery(c.queryValues(req))); err != nil {
		return nil, err
	}

	// Normalize the response
	return ParseResponse(response.data)
}

///////////////////////////////////////////////////////////////////////////////
// UNMARSHALER

func (r *rawResponse) Unmarshal(_ http.Header, body io.Reader) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	r.data = data
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// queryValues merges the fixed parameters with the per-request query
func (c *Client) queryValues(req *SearchRequest) url.Values {
	result := make(url.Values, len(c.values)+2)
	for key, values := range c.values {
		result[key] = append([]string(nil), values...)
	}
	for key, values := range c.query(*req) {
		result[key] = values
	}
	return result
}
