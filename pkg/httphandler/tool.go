package httphandler

import (
	"encoding/json"
	"net/http"

	// Packages
	chi "github.com/go-chi/chi/v5"
	tools "github.com/mutablelogic/go-tools"
	host "github.com/mutablelogic/go-tools/pkg/host"
	schema "github.com/mutablelogic/go-tools/pkg/schema"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	httprequest "github.com/mutablelogic/go-server/pkg/httprequest"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolMeta describes a tool, with schemas when the tool declares them
type ToolMeta struct {
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	InputSchema  schema.JSONSchema `json:"inputSchema,omitempty"`
	OutputSchema schema.JSONSchema `json:"outputSchema,omitempty"`
}

// ListToolResponse is the response body for the tool list
type ListToolResponse struct {
	Count int        `json:"count"`
	Body  []ToolMeta `json:"body"`
}

///////////////////////////////////////////////////////////////////////////////
// HANDLER FUNCTIONS

// Path: /tool
func ToolListHandler(toolkit *tool.Toolkit) (string, http.HandlerFunc) {
	return "/tool", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			resp := ListToolResponse{Body: []ToolMeta{}}
			for _, t := range toolkit.Tools() {
				meta, err := toolMeta(t)
				if err != nil {
					_ = httpresponse.Error(w, httpErr(err))
					return
				}
				resp.Body = append(resp.Body, meta)
			}
			resp.Count = len(resp.Body)
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), resp)
		default:
			_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}
}

// Path: /tool/{name}
//
// GET returns the tool, and POST calls the tool with the request body as
// input. A failed call is returned as {"error": message} with status 200.
func ToolHandler(toolkit *tool.Toolkit, log *zap.Logger) (string, http.HandlerFunc) {
	return "/tool/{name}", func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		t := toolkit.Lookup(name)
		if t == nil {
			_ = httpresponse.Error(w, httpErr(tools.ErrNotFound.Withf("tool not found: %q", name)))
			return
		}
		switch r.Method {
		case http.MethodGet:
			meta, err := toolMeta(t)
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), meta)
		case http.MethodPost:
			var input map[string]any
			if err := httprequest.Read(r, &input); err != nil {
				_ = httpresponse.Error(w, err)
				return
			}
			data, err := json.Marshal(input)
			if err != nil {
				_ = httpresponse.Error(w, httpresponse.ErrBadRequest.With(err))
				return
			}
			handler, err := host.Handler(toolkit, name, host.WithLogger(log))
			if err != nil {
				_ = httpresponse.Error(w, httpErr(err))
				return
			}
			handler(r.Context(), host.Input(data), func(failure *tool.Failure, result any) {
				if failure != nil {
					_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), failure)
				} else {
					_ = httpresponse.JSON(w, http.StatusOK, httprequest.Indent(r), result)
				}
			})
		default:
			_ = httpresponse.Error(w, httpresponse.Err(http.StatusMethodNotAllowed), r.Method)
		}
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func toolMeta(t tool.Tool) (ToolMeta, error) {
	meta := ToolMeta{
		Name:        t.Name(),
		Description: t.Description(),
	}
	if s := t.InputSchema(); s != nil {
		data, err := schema.JSONSchemaFor(s)
		if err != nil {
			return meta, err
		}
		meta.InputSchema = data
	}
	if s := t.OutputSchema(); s != nil {
		data, err := schema.JSONSchemaFor(s)
		if err != nil {
			return meta, err
		}
		meta.OutputSchema = data
	}
	return meta, nil
}
