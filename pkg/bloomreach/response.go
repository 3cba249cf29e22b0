package bloomreach

import (
	"strconv"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	types "github.com/mutablelogic/go-server/pkg/types"
	gjson "github.com/tidwall/gjson"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ProductSummary is a product from the search results
type ProductSummary struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Url            string  `json:"url"`
	ThumbnailImage string  `json:"thumbnail_image"`
	Department     string  `json:"department,omitempty"`
}

// FacetItem is a facet with the values available for filtering
type FacetItem struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// SearchResponse contains the products and facets from a search
type SearchResponse struct {
	Products []ProductSummary `json:"products"`
	Facets   []FacetItem      `json:"facets"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// ParseResponse normalizes a raw search response body. Missing documents,
// facets and fields are not an error.
func ParseResponse(data []byte) (*SearchResponse, error) {
	if !gjson.ValidBytes(data) {
		return nil, tools.ErrUnexpectedResponse.With("response is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, tools.ErrUnexpectedResponse.Withf("expected a JSON object, got %v", root.Type)
	}

	response := &SearchResponse{
		Products: make([]ProductSummary, 0),
		Facets:   make([]FacetItem, 0),
	}

	// Products, in document order
	if docs := root.Get("response.docs"); truthy(docs) {
		if !docs.IsArray() {
			return nil, tools.ErrUnexpectedResponse.Withf("response.docs: expected an array, got %v", docs.Type)
		}
		for i, doc := range docs.Array() {
			if doc.Type == gjson.Null {
				return nil, tools.ErrUnexpectedResponse.Withf("response.docs[%d]: unexpected null", i)
			}
			response.Products = append(response.Products, NewProductSummary(doc))
		}
	}

	// Facets, in the order the fields first appear in the document. A
	// repeated field keeps its first position and takes the last value.
	if fields := root.Get("facet_counts.facet_fields"); truthy(fields) {
		var names []string
		entries := make(map[string]gjson.Result)
		index := 0
		fields.ForEach(func(key, values gjson.Result) bool {
			name := key.String()
			if fields.IsArray() {
				name = strconv.Itoa(index)
			}
			index++
			if _, exists := entries[name]; !exists {
				names = append(names, name)
			}
			entries[name] = values
			return true
		})
		for _, name := range names {
			if values := entries[name]; values.IsArray() {
				response.Facets = append(response.Facets, NewFacetItem(name, values))
			}
		}
	}

	// Return success
	return response, nil
}

// NewProductSummary reads a product from a raw document. Missing fields
// default to an empty string or zero price.
func NewProductSummary(doc gjson.Result) ProductSummary {
	return ProductSummary{
		Title:          stringOrEmpty(doc.Get("title")),
		Description:    stringOrEmpty(doc.Get("description")),
		Price:          floatOrZero(doc.Get("price")),
		Url:            stringOrEmpty(doc.Get("url")),
		ThumbnailImage: stringOrEmpty(doc.Get("thumb_image")),
		Department:     stringOrEmpty(doc.Get("department")),
	}
}

// NewFacetItem reads a facet from a raw list of values. Only entries which
// are objects with a non-empty name are kept.
func NewFacetItem(name string, values gjson.Result) FacetItem {
	result := FacetItem{
		Name:   name,
		Values: make([]string, 0),
	}
	for _, value := range values.Array() {
		if !value.IsObject() {
			continue
		}
		if v := value.Get("name"); truthy(v) {
			result.Values = append(result.Values, v.String())
		}
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r SearchResponse) String() string {
	return types.Stringify(r)
}

func (p ProductSummary) String() string {
	return types.Stringify(p)
}

func (f FacetItem) String() string {
	return types.Stringify(f)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// truthy returns false for missing values, null, false, zero and the empty string
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		return true
	}
	return false
}

func stringOrEmpty(v gjson.Result) string {
	if !truthy(v) {
		return ""
	}
	return v.String()
}

func floatOrZero(v gjson.Result) float64 {
	if !truthy(v) {
		return 0
	}
	return v.Float()
}
