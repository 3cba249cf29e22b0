/*
host adapts tools in a toolkit to a host framework which passes the tool
input through a context object and expects a completion callback.
*/
package host

import (
	"context"
	"encoding/json"
	"time"

	// Packages
	tools "github.com/mutablelogic/go-tools"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Context is the invocation context passed by the host
type Context interface {
	// Return the tool input as JSON, or nil when no input was provided
	ToolInput() json.RawMessage
}

// Callback completes an invocation. Exactly one of err and result is set.
type Callback func(err *tool.Failure, result any)

// HandlerFunc invokes a tool on behalf of the host
type HandlerFunc func(ctx context.Context, c Context, cb Callback)

// Input is a Context with a fixed input
type Input json.RawMessage

type opts struct {
	log *zap.Logger
}

// Opt is an option for a handler
type Opt func(*opts) error

var _ Context = Input(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Handler returns a function which invokes the named tool in the toolkit,
// and reports the outcome to the callback. Failures are logged and never
// returned as an error or panic.
func Handler(tk *tool.Toolkit, name string, opt ...Opt) (HandlerFunc, error) {
	o := opts{log: zap.NewNop()}
	for _, fn := range opt {
		if err := fn(&o); err != nil {
			return nil, err
		}
	}
	if tk == nil {
		return nil, tools.ErrBadParameter.With("toolkit cannot be nil")
	} else if tk.Lookup(name) == nil {
		return nil, tools.ErrNotFound.Withf("tool not found: %q", name)
	}

	log := o.log.With(zap.String("tool", name))
	return func(ctx context.Context, c Context, cb Callback) {
		var input json.RawMessage
		if c != nil {
			input = c.ToolInput()
		}

		start := time.Now()
		result := tk.Call(ctx, name, input)
		if !result.Ok() {
			log.Error("tool invocation failed", zap.String("error", result.Failure.Message), zap.Duration("duration", time.Since(start)))
			if cb != nil {
				cb(result.Failure, nil)
			}
			return
		}

		log.Debug("tool invocation succeeded", zap.Duration("duration", time.Since(start)))
		if cb != nil {
			cb(nil, result.Value)
		}
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithLogger sets the logger for failed invocations
func WithLogger(log *zap.Logger) Opt {
	return func(o *opts) error {
		if log == nil {
			return tools.ErrBadParameter.With("logger cannot be nil")
		}
		o.log = log
		return nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

func (i Input) ToolInput() json.RawMessage {
	return json.RawMessage(i)
}
