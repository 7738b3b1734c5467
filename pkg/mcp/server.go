// Implements an MCP server which exposes a toolkit over stdio or
// streamable HTTP, using the Model Context Protocol described at
// https://modelcontextprotocol.io
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	weather "github.com/mutablelogic/go-weather"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	otel "go.opentelemetry.io/otel"
	attribute "go.opentelemetry.io/otel/attribute"
	codes "go.opentelemetry.io/otel/codes"
	trace "go.opentelemetry.io/otel/trace"
)

///////////////////////////////////////////////////////////////////////
// TYPES

type Server struct {
	name    string
	version string

	// Private members
	toolkit *tool.Toolkit // Tools served, may be nil
	logger  *slog.Logger  // Tool call logging
	tracer  trace.Tracer  // Span per tool call
	server  *sdk.Server   // Protocol implementation
	handler http.Handler  // Streamable HTTP transport
}

///////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	tracerName = "github.com/mutablelogic/go-weather/pkg/mcp"
)

///////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new MCP server with the given name and version
func New(name, version string, opts ...Opt) (*Server, error) {
	self := &Server{
		name:    name,
		version: version,
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	if name == "" {
		return nil, weather.ErrBadParameter.With("missing server name")
	}

	// Apply options
	if err := self.apply(opts...); err != nil {
		return nil, err
	}

	// Create the protocol server and register the tools
	self.server = sdk.NewServer(&sdk.Implementation{
		Name:    name,
		Version: version,
	}, nil)
	if self.toolkit != nil {
		for _, t := range self.toolkit.Tools() {
			if err := self.addTool(t); err != nil {
				return nil, err
			}
		}
	}

	self.handler = sdk.NewStreamableHTTPHandler(func(*http.Request) *sdk.Server {
		return self.server
	}, nil)

	// Return success
	return self, nil
}

///////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RunStdio serves a single session over standard input and output,
// and runs in the foreground until the client disconnects or the
// context is done.
func (server *Server) RunStdio(ctx context.Context) error {
	server.logger.InfoContext(ctx, "serving on stdio", "name", server.name, "version", server.version)
	return server.server.Run(ctx, &sdk.StdioTransport{})
}

// Connect serves a single session over the given transport, and returns
// once the session is initialized
func (server *Server) Connect(ctx context.Context, transport sdk.Transport) (*sdk.ServerSession, error) {
	return server.server.Connect(ctx, transport, nil)
}

// Handler returns an HTTP handler which serves sessions with the
// streamable HTTP transport
func (server *Server) Handler() http.Handler {
	return server.handler
}

///////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (server *Server) addTool(t tool.Tool) error {
	schema, err := t.Schema()
	if err != nil {
		return weather.ErrInternalServerError.Withf("%s: %v", t.Name(), err)
	} else if schema == nil {
		schema = &jsonschema.Schema{Type: "object"}
	}
	server.server.AddTool(&sdk.Tool{
		Name:        t.Name(),
		Description: t.Description(),
		InputSchema: schema,
	}, server.callTool(t.Name()))
	return nil
}

// callTool returns the handler for a named tool. Tool errors are returned
// to the client as error results rather than protocol errors.
func (server *Server) callTool(name string) sdk.ToolHandler {
	return func(ctx context.Context, req *sdk.CallToolRequest) (*sdk.CallToolResult, error) {
		ctx, span := server.tracer.Start(ctx, "tools/call "+name, trace.WithAttributes(
			attribute.String("mcp.tool.name", name),
		))
		defer span.End()

		// Arguments may be absent
		var input json.RawMessage
		if req != nil && req.Params != nil && string(req.Params.Arguments) != "null" {
			input = req.Params.Arguments
		}

		// Run the tool
		start := time.Now()
		result, err := server.toolkit.Run(ctx, name, input)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			server.logger.WarnContext(ctx, "tool call failed", "tool", name, "error", err)
			return errorResult(err), nil
		}
		server.logger.DebugContext(ctx, "tool call", "tool", name, "duration", time.Since(start))

		// Render the result as text
		text, err := resultText(result)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return errorResult(err), nil
		}
		return &sdk.CallToolResult{
			Content: []sdk.Content{&sdk.TextContent{Text: text}},
		}, nil
	}
}

func errorResult(err error) *sdk.CallToolResult {
	return &sdk.CallToolResult{
		Content: []sdk.Content{&sdk.TextContent{Text: err.Error()}},
		IsError: true,
	}
}

// Strings are passed through, anything else is JSON
func resultText(v any) (string, error) {
	switch v := v.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return "", weather.ErrInternalServerError.Withf("failed to marshal result: %v", err)
		}
		return string(data), nil
	}
}
