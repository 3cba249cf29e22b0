package mcp

import (
	// Packages
	tools "github.com/mutablelogic/go-tools"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	zap "go.uber.org/zap"
)

/////////////////////////////////////////////////////////////////////////////////
// TYPES

type Opt func(*Server) error

/////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func (server *Server) apply(opts ...Opt) error {
	for _, opt := range opts {
		if err := opt(server); err != nil {
			return err
		}
	}
	return nil
}

/////////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithToolkit sets the tools served by tools/list and tools/call
func WithToolkit(v *tool.Toolkit) Opt {
	return func(server *Server) error {
		server.toolkit = v
		return nil
	}
}

// WithLogger sets the logger for request and tool errors
func WithLogger(v *zap.Logger) Opt {
	return func(server *Server) error {
		if v == nil {
			return tools.ErrBadParameter.With("logger cannot be nil")
		}
		server.log = v
		return nil
	}
}
