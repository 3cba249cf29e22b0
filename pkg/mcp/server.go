// Implements an MCP server which serves the tools in a toolkit, based on
// the following specification:
// https://modelcontextprotocol.io/specification/2025-06-18/basic/lifecycle
package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"sync"

	// Packages
	schema "github.com/mutablelogic/go-tools/pkg/schema"
	tool "github.com/mutablelogic/go-tools/pkg/tool"
	zap "go.uber.org/zap"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string

	// Private members
	mu       sync.RWMutex       // Handler map lock
	handlers map[string]Handler // Method handlers
	toolkit  *tool.Toolkit      // Toolkit for the server
	log      *zap.Logger
}

type Handler func(context.Context, any, json.RawMessage) (any, error)

///////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	// Used when a tool does not declare an input schema
	emptyObjectSchema = schema.NewJSONSchema(json.RawMessage(`{"type":"object"}`))
)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version
func New(name, version string, opts ...Opt) (*Server, error) {
	self := &Server{
		name:     name,
		version:  version,
		handlers: make(map[string]Handler, 10),
		log:      zap.NewNop(),
	}

	// Apply options
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Register default handlers
	self.HandlerFunc(MessageTypeInitialize, self.handleInitialize)
	self.HandlerFunc(MessageTypePing, self.handlePing)
	self.HandlerFunc(NotificationTypeInitialize, self.handleInitialized)
	self.HandlerFunc(MessageTypeListTools, self.handleListTools)
	self.HandlerFunc(MessageTypeCallTool, self.handleCallTool)

	// Return success
	return self, nil
}

// Implements an MCP server with standard input and output,
// and run in the foreground until the context is done or the input
// is closed.
func (server *Server) RunStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	var requests, writers sync.WaitGroup

	// Create a new buffered reader and writer
	reader := bufio.NewReader(r)
	writer := bufio.NewWriter(w)

	// Writer channel is closed once all requests have completed
	writerCh := make(chan []byte)
	writers.Go(func() {
		for data := range writerCh {
			if _, err := writer.Write(data); err != nil {
				server.log.Error("write failed", zap.Error(err))
				continue
			}
			// Flush the writer to ensure data is sent immediately
			writer.Flush()
		}
	})
	defer func() {
		requests.Wait()
		close(writerCh)
		writers.Wait()
	}()

	// Continue receiving input until the context is done
	var request string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if part, isPrefix, err := reader.ReadLine(); err != nil {
			if err == io.EOF {
				break
			}
			return err
		} else if isPrefix {
			request += string(part)
			continue
		} else {
			request += string(part)
		}
		if request = strings.TrimSpace(request); request == "" {
			continue
		}

		// Process a request in the background
		payload := request
		requests.Go(func() {
			if response := server.processRequest(ctx, payload); response != nil {
				writerCh <- append(response, '\n')
			}
		})

		// Reset the request
		request = ""
	}

	// Return success
	return nil
}

// HandlerFunc registers (or removes) a handler for a method
func (server *Server) HandlerFunc(method string, fn Handler) {
	server.mu.Lock()
	defer server.mu.Unlock()
	if fn == nil {
		delete(server.handlers, method)
	} else {
		server.handlers[method] = fn
	}
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// processRequest returns the encoded response, or nil for notifications
func (server *Server) processRequest(ctx context.Context, payload string) []byte {
	// Decode the request
	var request Request
	if err := json.Unmarshal([]byte(payload), &request); err != nil {
		server.log.Warn("parse error", zap.Error(err))
		return server.encode(Response{Version: RPCVersion, Err: NewError(ErrorCodeParseError, err.Error())})
	}

	// Check the request is JSON-RPC 2.0 and names a method
	response := Response{Version: RPCVersion, ID: request.ID}
	if request.Version != RPCVersion || request.Method == "" {
		server.log.Warn("invalid request", zap.String("version", request.Version), zap.String("method", request.Method))
		response.Err = NewError(ErrorCodeInvalidRequest, "invalid request")
		return server.encode(response)
	}

	// Look up and call the handler
	result, err := server.call(ctx, &request)
	if request.ID == nil {
		// Notification, no response
		if err != nil {
			server.log.Debug("notification failed", zap.String("method", request.Method), zap.Error(err))
		}
		return nil
	}
	if err != nil {
		var target *Error
		if errors.As(err, &target) {
			response.Err = target
		} else {
			response.Err = NewError(ErrorInternalError, err.Error())
		}
		server.log.Debug("request failed", zap.String("method", request.Method), zap.Error(err))
	} else if result == nil {
		response.Result = map[string]any{}
	} else {
		response.Result = result
	}

	// Return the response
	return server.encode(response)
}

func (server *Server) encode(response Response) []byte {
	data, err := json.Marshal(response)
	if err != nil {
		server.log.Error("encode failed", zap.Error(err))
		return nil
	}
	return data
}

func (server *Server) call(ctx context.Context, request *Request) (any, error) {
	server.mu.RLock()
	fn, exists := server.handlers[request.Method]
	server.mu.RUnlock()

	if !exists {
		return nil, NewError(ErrorCodeMethodNotFound, "method not found", request.Method)
	}
	return fn(ctx, request.ID, request.Payload)
}

///////////////////////////////////////////////////////////////////////
// HANDLERS

func (server *Server) handleInitialize(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := new(ResponseInitialize)
	response.Version = ProtocolVersion
	response.ServerInfo.Name = server.name
	response.ServerInfo.Version = server.version
	response.Capabilities.Tools = map[string]any{
		"listChanged": false,
	}
	return response, nil
}

func (server *Server) handlePing(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	return map[string]any{}, nil
}

func (server *Server) handleInitialized(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	server.log.Debug("client initialized")
	return nil, nil
}

func (server *Server) handleListTools(_ context.Context, _ any, _ json.RawMessage) (any, error) {
	response := &ResponseListTools{
		Tools: []*Tool{},
	}
	if server.toolkit == nil {
		return response, nil
	}
	for _, t := range server.toolkit.Tools() {
		definition := &Tool{
			Name:        t.Name(),
			Description: t.Description(),
			InputSchema: emptyObjectSchema,
		}
		if s := t.InputSchema(); s != nil {
			if data, err := schema.JSONSchemaFor(s); err == nil {
				definition.InputSchema = data
			} else {
				server.log.Warn("input schema", zap.String("tool", t.Name()), zap.Error(err))
			}
		}
		if s := t.OutputSchema(); s != nil {
			if data, err := schema.JSONSchemaFor(s); err == nil {
				definition.OutputSchema = data
			} else {
				server.log.Warn("output schema", zap.String("tool", t.Name()), zap.Error(err))
			}
		}
		response.Tools = append(response.Tools, definition)
	}
	return response, nil
}

func (server *Server) handleCallTool(ctx context.Context, _ any, payload json.RawMessage) (any, error) {
	if server.toolkit == nil {
		return nil, NewError(ErrorCodeMethodNotFound, "no tools configured")
	}

	var req RequestToolCall
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, NewError(ErrorCodeInvalidParameters, err.Error())
	} else if server.toolkit.Lookup(req.Name) == nil {
		return nil, NewError(ErrorCodeInvalidParameters, "unknown tool", req.Name)
	}

	// Marshal arguments to pass to the toolkit
	var input json.RawMessage
	if req.Arguments != nil {
		data, err := json.Marshal(req.Arguments)
		if err != nil {
			return nil, NewError(ErrorCodeInvalidParameters, err.Error())
		}
		input = data
	}

	// Run the tool, failures are returned as a tool error response rather
	// than a JSON-RPC error
	result := server.toolkit.Call(ctx, req.Name, input)
	if !result.Ok() {
		server.log.Error("tool invocation failed", zap.String("tool", req.Name), zap.String("error", result.Failure.Message))
		return &ResponseToolCall{
			Content: []*Content{{Type: "text", Text: result.Failure.Message}},
			Error:   true,
		}, nil
	}

	// Marshal the result to JSON text
	data, err := json.Marshal(result.Value)
	if err != nil {
		return nil, NewError(ErrorInternalError, err.Error())
	}
	return &ResponseToolCall{
		Content:           []*Content{{Type: "text", Text: string(data)}},
		StructuredContent: json.RawMessage(data),
	}, nil
}
