package bloomreach_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	// Packages
	bloomreach "github.com/mutablelogic/go-tools/pkg/bloomreach"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	assert "github.com/stretchr/testify/assert"
	noop "go.opentelemetry.io/otel/trace/noop"
)

///////////////////////////////////////////////////////////////////////////////
// TEST SET-UP

const wineResponse = `{
	"response":{"docs":[{"title":"Cab","price":19.99,"url":"http://x/1","thumb_image":"http://x/1.jpg"}]},
	"facet_counts":{"facet_fields":{"department":[{"name":"Wine"},{"name":""}]}}
}`

// stub returns a backend which records the query and replies with body
func stub(t *testing.T, body string, query *url.Values) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if query != nil {
			*query = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func toolkit(t *testing.T, opts ...bloomreach.Opt) *tool.Toolkit {
	t.Helper()
	tools, err := bloomreach.NewTools(opts...)
	if err != nil {
		t.Fatal(err)
	}
	tk, err := tool.NewToolkit(tools...)
	if err != nil {
		t.Fatal(err)
	}
	return tk
}

///////////////////////////////////////////////////////////////////////////////
// TESTS

func Test_tool_001(t *testing.T) {
	assert := assert.New(t)

	tools, err := bloomreach.NewTools()
	if !assert.NoError(err) {
		t.FailNow()
	}
	if assert.Len(tools, 1) {
		assert.Equal("bloomreach_search", tools[0].Name())
		assert.NotEmpty(tools[0].Description())
		assert.True(tool.HasSchemas(tools[0]))
	}
}

func Test_tool_002(t *testing.T) {
	assert := assert.New(t)

	exports, err := bloomreach.Exports()
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.Contains(exports, bloomreach.SearchExport)
}

func Test_tool_003(t *testing.T) {
	assert := assert.New(t)

	// Stubbed backend returns a single product and facet
	var query url.Values
	server := stub(t, wineResponse, &query)
	tk := toolkit(t, bloomreach.WithEndpoint(server.URL), bloomreach.WithValue("account_id", "1234"))

	result := tk.Call(t.Context(), "bloomreach_search", json.RawMessage(`{"search_query":"wine"}`))
	if !assert.True(result.Ok(), result) {
		t.FailNow()
	}
	data, err := json.Marshal(result)
	if !assert.NoError(err) {
		t.FailNow()
	}
	assert.JSONEq(`{
		"products":[{"title":"Cab","description":"","price":19.99,"url":"http://x/1","thumbnail_image":"http://x/1.jpg"}],
		"facets":[{"name":"department","values":["Wine"]}]
	}`, string(data))

	// Query parameters
	assert.Equal("wine", query.Get("q"))
	assert.Equal("1234", query.Get("account_id"))
}

func Test_tool_004(t *testing.T) {
	assert := assert.New(t)

	// Transport failure is returned as a failure with a message
	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()
	tk := toolkit(t, bloomreach.WithEndpoint(endpoint))

	result := tk.Call(t.Context(), "bloomreach_search", json.RawMessage(`{"search_query":"wine"}`))
	assert.False(result.Ok())
	assert.Nil(result.Value)
	if assert.NotNil(result.Failure) {
		assert.NotEmpty(result.Failure.Message)
	}
}

func Test_tool_005(t *testing.T) {
	assert := assert.New(t)

	// Non-JSON body is returned as a failure
	server := stub(t, `<html>oops</html>`, nil)
	tk := toolkit(t, bloomreach.WithEndpoint(server.URL))

	result := tk.Call(t.Context(), "bloomreach_search", json.RawMessage(`{"search_query":"wine"}`))
	assert.False(result.Ok())
	assert.Nil(result.Value)
}

func Test_tool_006(t *testing.T) {
	assert := assert.New(t)

	// Missing search query is rejected before the backend is called
	var query url.Values
	server := stub(t, wineResponse, &query)
	tk := toolkit(t, bloomreach.WithEndpoint(server.URL))

	for _, input := range []string{`{}`, `{"search_query":""}`, `{"filter_query":"color:red"}`} {
		result := tk.Call(t.Context(), "bloomreach_search", json.RawMessage(input))
		assert.False(result.Ok(), input)
	}
	assert.Nil(query)
}

func Test_tool_007(t *testing.T) {
	assert := assert.New(t)

	// A custom query function can forward the filter query
	var query url.Values
	server := stub(t, wineResponse, &query)
	tk := toolkit(t, bloomreach.WithEndpoint(server.URL), bloomreach.WithQuery(func(req bloomreach.SearchRequest) url.Values {
		values := bloomreach.DefaultQuery(req)
		if req.FilterQuery != "" {
			values.Set("fq", req.FilterQuery)
		}
		return values
	}))

	result := tk.Call(t.Context(), "bloomreach_search", json.RawMessage(`{"search_query":"wine","filter_query":"color:red"}`))
	assert.True(result.Ok(), result)
	assert.Equal("wine", query.Get("q"))
	assert.Equal("color:red", query.Get("fq"))
}

func Test_tool_008(t *testing.T) {
	assert := assert.New(t)

	// A product without a url fails output validation
	server := stub(t, `{"response":{"docs":[{"title":"Cab"}]}}`, nil)
	tk := toolkit(t, bloomreach.WithEndpoint(server.URL))

	result := tk.Call(t.Context(), "bloomreach_search", json.RawMessage(`{"search_query":"wine"}`))
	assert.False(result.Ok())
	assert.Nil(result.Value)
}

func Test_tool_009(t *testing.T) {
	assert := assert.New(t)

	_, err := bloomreach.New(bloomreach.WithEndpoint("not a url"))
	assert.Error(err)
	_, err = bloomreach.New(bloomreach.WithQuery(nil))
	assert.Error(err)
}

func Test_tool_010(t *testing.T) {
	assert := assert.New(t)

	// Search with a tracer
	server := stub(t, wineResponse, nil)
	client, err := bloomreach.New(
		bloomreach.WithEndpoint(server.URL),
		bloomreach.WithTracer(noop.NewTracerProvider().Tracer("test")),
	)
	if !assert.NoError(err) {
		t.FailNow()
	}
	response, err := client.Search(t.Context(), &bloomreach.SearchRequest{SearchQuery: "wine"})
	if assert.NoError(err) && assert.Len(response.Products, 1) {
		assert.Equal("Cab", response.Products[0].Title)
	}

	// Empty query is rejected by the client
	_, err = client.Search(t.Context(), &bloomreach.SearchRequest{})
	assert.Error(err)
}
