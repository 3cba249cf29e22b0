package bloomreach_test

import (
	"testing"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	bloomreach "github.com/mutablelogic/go-tools/pkg/bloomreach"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_response_001(t *testing.T) {
	assert := assert.New(t)

	// Missing or empty docs produce no products
	for _, body := range []string{
		`{}`,
		`{"response":{}}`,
		`{"response":{"docs":[]}}`,
		`{"response":{"docs":null}}`,
		`{"response":null}`,
	} {
		response, err := bloomreach.ParseResponse([]byte(body))
		if assert.NoError(err, body) {
			assert.NotNil(response.Products, body)
			assert.Empty(response.Products, body)
			assert.NotNil(response.Facets, body)
			assert.Empty(response.Facets, body)
		}
	}
}

func Test_response_002(t *testing.T) {
	assert := assert.New(t)

	// Missing fields default to empty values
	response, err := bloomreach.ParseResponse([]byte(`{"response":{"docs":[{}]}}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(response.Products, 1) {
		assert.Equal(bloomreach.ProductSummary{}, response.Products[0])
		assert.Equal(0.0, response.Products[0].Price)
	}
}

func Test_response_003(t *testing.T) {
	assert := assert.New(t)

	// Falsy values are defaulted as well
	response, err := bloomreach.ParseResponse([]byte(`{"response":{"docs":[
		{"title":null,"description":false,"price":0,"url":"","thumb_image":null}
	]}}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(response.Products, 1) {
		assert.Equal(bloomreach.ProductSummary{}, response.Products[0])
	}
}

func Test_response_004(t *testing.T) {
	assert := assert.New(t)

	// Facet values keep only objects with a non-empty name
	response, err := bloomreach.ParseResponse([]byte(`{"facet_counts":{"facet_fields":{
		"color":[{"name":"Red"},{"other":"x"},{"name":""},"not-an-object"]
	}}}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal([]bloomreach.FacetItem{
		{Name: "color", Values: []string{"Red"}},
	}, response.Facets)
}

func Test_response_005(t *testing.T) {
	assert := assert.New(t)

	// Facet fields which are not lists are skipped
	response, err := bloomreach.ParseResponse([]byte(`{"facet_counts":{"facet_fields":{
		"count":42,
		"nested":{"name":"x"},
		"size":[{"name":"L"}],
		"empty":[]
	}}}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal([]bloomreach.FacetItem{
		{Name: "size", Values: []string{"L"}},
		{Name: "empty", Values: []string{}},
	}, response.Facets)
}

func Test_response_006(t *testing.T) {
	assert := assert.New(t)

	// Products and facets keep the order of the document
	response, err := bloomreach.ParseResponse([]byte(`{
		"response":{"docs":[{"title":"c"},{"title":"a"},{"title":"b"}]},
		"facet_counts":{"facet_fields":{"zeta":[],"alpha":[],"mid":[]}}
	}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	titles := make([]string, 0, len(response.Products))
	for _, product := range response.Products {
		titles = append(titles, product.Title)
	}
	names := make([]string, 0, len(response.Facets))
	for _, facet := range response.Facets {
		names = append(names, facet.Name)
	}
	assert.Equal([]string{"c", "a", "b"}, titles)
	assert.Equal([]string{"zeta", "alpha", "mid"}, names)
}

func Test_response_007(t *testing.T) {
	assert := assert.New(t)

	// Malformed bodies are unexpected responses
	for _, body := range []string{
		``,
		`not json`,
		`[]`,
		`"string"`,
		`{"response":{"docs":"abc"}}`,
		`{"response":{"docs":[null]}}`,
	} {
		_, err := bloomreach.ParseResponse([]byte(body))
		assert.ErrorIs(err, tools.ErrUnexpectedResponse, body)
	}
}

func Test_response_008(t *testing.T) {
	assert := assert.New(t)

	// Numbers and strings are converted
	response, err := bloomreach.ParseResponse([]byte(`{"response":{"docs":[
		{"title":"Cab","price":"19.5","url":"http://x/1","thumb_image":"http://x/1.jpg","department":"Wine"}
	]}}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal(bloomreach.ProductSummary{
		Title:          "Cab",
		Price:          19.5,
		Url:            "http://x/1",
		ThumbnailImage: "http://x/1.jpg",
		Department:     "Wine",
	}, response.Products[0])
}

func Test_response_009(t *testing.T) {
	assert := assert.New(t)

	// A repeated facet field keeps its first position and its last value
	response, err := bloomreach.ParseResponse([]byte(`{"facet_counts":{"facet_fields":{
		"a":[{"name":"x"}],
		"b":[],
		"a":[{"name":"y"}]
	}}}`))
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Equal([]bloomreach.FacetItem{
		{Name: "a", Values: []string{"y"}},
		{Name: "b", Values: []string{}},
	}, response.Facets)

	// The last value decides whether the field is kept
	response, err = bloomreach.ParseResponse([]byte(`{"facet_counts":{"facet_fields":{
		"a":[{"name":"x"}],
		"b":[{"name":"z"}],
		"a":"none"
	}}}`))
	if assert.NoError(err) {
		assert.Equal([]bloomreach.FacetItem{
			{Name: "b", Values: []string{"z"}},
		}, response.Facets)
	}
}
