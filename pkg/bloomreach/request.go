package bloomreach

import (
	"net/url"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// SearchRequest defines the input for a product search
type SearchRequest struct {
	SearchQuery string `json:"search_query"`
	FilterQuery string `json:"filter_query,omitempty"`
}

// QueryFunc maps a search request to the query parameters sent to the backend
type QueryFunc func(SearchRequest) url.Values

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// DefaultQuery sends the search text as the "q" parameter. The filter query
// is not forwarded.
func DefaultQuery(req SearchRequest) url.Values {
	result := url.Values{}
	result.Set("q", req.SearchQuery)
	return result
}
