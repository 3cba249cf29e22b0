package bloomreach

import (
	// Packages
	schema "github.com/mutablelogic/go-tools/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	maxUrlLength = 2083
)

var (
	// InputSchema declares the search tool input
	InputSchema = schema.Object(
		schema.Prop("search_query", schema.String().Min(1).Describe("Search Query to lookup products")),
		schema.Prop("filter_query", schema.String().Optional().Describe("Filter Query to refine search results")),
	)

	// ProductSchema declares a product in the search results
	ProductSchema = schema.Object(
		schema.Prop("title", schema.String().Describe("Product title")),
		schema.Prop("description", schema.String().Describe("Product description")),
		schema.Prop("price", schema.Number().Describe("Product price")),
		schema.Prop("url", schema.String().URL().Min(1).Max(maxUrlLength).Describe("Product URL")),
		schema.Prop("thumbnail_image", schema.String().URL().Min(1).Max(maxUrlLength).Describe("Product thumbnail image URL")),
		schema.Prop("department", schema.String().Optional().Describe("Product department")),
	)

	// FacetItemSchema declares a facet in the search results
	FacetItemSchema = schema.Object(
		schema.Prop("name", schema.String().Describe("Name of the facet")),
		schema.Prop("values", schema.Array(schema.String()).Describe("List of values for the facet")),
	)

	// OutputSchema declares the search tool output
	OutputSchema = schema.Object(
		schema.Prop("products", schema.Array(ProductSchema).Describe("List of products matching the search query")),
		schema.Prop("facets", schema.Array(FacetItemSchema).Describe("List of facets available for filtering search results")),
	)
)
