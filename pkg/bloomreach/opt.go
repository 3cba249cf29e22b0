package bloomreach

import (
	"net/url"

	// Packages
	client "github.com/mutablelogic/go-client"
	tools "github.com/mutablelogic/go-tools"
	trace "go.opentelemetry.io/otel/trace"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*opts) error

type opts struct {
	endpoint   string
	values     url.Values
	query      QueryFunc
	tracer     trace.Tracer
	clientopts []client.ClientOpt
}

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func applyOpts(opt ...Opt) (*opts, error) {
	o := &opts{
		endpoint: DefaultEndpoint,
		values:   make(url.Values),
		query:    DefaultQuery,
	}
	for _, fn := range opt {
		if err := fn(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithEndpoint sets the search endpoint
func WithEndpoint(endpoint string) Opt {
	return func(o *opts) error {
		if u, err := url.Parse(endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			return tools.ErrBadParameter.Withf("invalid endpoint: %q", endpoint)
		}
		o.endpoint = endpoint
		return nil
	}
}

// WithValue adds a fixed query parameter which is sent with every request,
// for example account_id, domain_key or request_type
func WithValue(key, value string) Opt {
	return func(o *opts) error {
		if key == "" {
			return tools.ErrBadParameter.With("missing parameter name")
		}
		if value != "" {
			o.values.Add(key, value)
		}
		return nil
	}
}

// WithQuery sets the function which maps a search request to query parameters
func WithQuery(fn QueryFunc) Opt {
	return func(o *opts) error {
		if fn == nil {
			return tools.ErrBadParameter.With("query function cannot be nil")
		}
		o.query = fn
		return nil
	}
}

// WithTracer sets the tracer for search spans and outbound requests
func WithTracer(tracer trace.Tracer) Opt {
	return func(o *opts) error {
		o.tracer = tracer
		return nil
	}
}

// WithClientOpts passes options to the underlying HTTP client
func WithClientOpts(opt ...client.ClientOpt) Opt {
	return func(o *opts) error {
		o.clientopts = append(o.clientopts, opt...)
		return nil
	}
}
