package httphandler

import (
	"errors"
	"net/http"

	// Packages
	chi "github.com/go-chi/chi/v5"
	tools "github.com/mutablelogic/go-tools"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	prometheus "github.com/prometheus/client_golang/prometheus"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Router is the subset of a chi router used to register handlers
type Router interface {
	HandleFunc(pattern string, fn http.HandlerFunc)
}

var _ Router = chi.Router(nil)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RegisterHandlers registers the tool handlers, and a metrics handler when
// a gatherer is provided
func RegisterHandlers(router Router, toolkit *tool.Toolkit, gatherer prometheus.Gatherer, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	router.HandleFunc(ToolListHandler(toolkit))
	router.HandleFunc(ToolHandler(toolkit, log))
	if gatherer != nil {
		router.HandleFunc(MetricsHandler(gatherer))
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// httpErr converts a tools.Err to an httpresponse.Err, preserving the
// original error message. Unknown error codes map to 500.
func httpErr(err error) error {
	var toolsErr tools.Err
	if !errors.As(err, &toolsErr) {
		return err
	}
	switch toolsErr {
	case tools.ErrNotFound:
		return httpresponse.ErrNotFound.With(err)
	case tools.ErrBadParameter:
		return httpresponse.ErrBadRequest.With(err)
	case tools.ErrConflict:
		return httpresponse.ErrConflict.With(err)
	case tools.ErrNotImplemented:
		return httpresponse.ErrNotImplemented.With(err)
	default:
		return httpresponse.ErrInternalError.With(err)
	}
}
