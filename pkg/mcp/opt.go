package mcp

import (
	"log/slog"

	// Packages
	weather "github.com/mutablelogic/go-weather"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	trace "go.opentelemetry.io/otel/trace"
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

// WithToolkit sets the tools served
func WithToolkit(v *tool.Toolkit) Opt {
	return func(server *Server) error {
		server.toolkit = v
		return nil
	}
}

// WithLogger sets the logger for tool calls, which defaults to slog.Default()
func WithLogger(v *slog.Logger) Opt {
	return func(server *Server) error {
		if v == nil {
			return weather.ErrBadParameter.With("logger cannot be nil")
		}
		server.logger = v
		return nil
	}
}

// WithTracer sets the tracer for tool calls, which defaults to the global
// tracer provider
func WithTracer(v trace.Tracer) Opt {
	return func(server *Server) error {
		if v == nil {
			return weather.ErrBadParameter.With("tracer cannot be nil")
		}
		server.tracer = v
		return nil
	}
}
