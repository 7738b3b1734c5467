package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// Packages
	kong "github.com/alecthomas/kong"
	client "github.com/mutablelogic/go-client"
	logger "github.com/mutablelogic/go-server/pkg/logger"
	mcp "github.com/mutablelogic/go-weather/pkg/mcp"
	nws "github.com/mutablelogic/go-weather/pkg/nws"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	version "github.com/mutablelogic/go-weather/pkg/version"
	otel "go.opentelemetry.io/otel"
	trace "go.opentelemetry.io/otel/trace"
	rate "golang.org/x/time/rate"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

type Globals struct {
	// Debugging
	Debug   bool `name:"debug" help:"Enable debug logging"`
	Verbose bool `name:"verbose" help:"Trace requests to the NWS API on stderr"`

	// National Weather Service API
	NWS struct {
		UserAgent string        `name:"user-agent" env:"NWS_USER_AGENT" help:"User-Agent header, required by the NWS API" default:"${USER_AGENT}"`
		Endpoint  string        `name:"endpoint" env:"NWS_ENDPOINT" help:"NWS API endpoint" default:"${NWS_ENDPOINT}"`
		Rate      float64       `name:"rate" env:"NWS_RATE" help:"Maximum requests per second, zero for no limit" default:"5"`
		Timeout   time.Duration `name:"timeout" env:"NWS_TIMEOUT" help:"Request timeout" default:"30s"`
	} `embed:"" prefix:"nws."`

	// OpenTelemetry
	OTel struct {
		Endpoint string `name:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" help:"OTLP HTTP endpoint for traces, tracing is disabled when empty"`
	} `embed:"" prefix:"otel."`

	// Private fields
	ctx      context.Context
	execName string
	level    *slog.LevelVar
	logger   *slog.Logger
	tracer   trace.Tracer
	shutdown func(context.Context) error
}

type CLI struct {
	Globals
	MCPCommands
	ToolCommands
	Version VersionCommand `cmd:"" name:"version" help:"Print version information."`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	defaultUserAgent = "weather-app/1.0"
	shutdownTimeout  = 5 * time.Second
)

////////////////////////////////////////////////////////////////////////////////
// MAIN

func main() {
	// Create a cli parser
	cli := CLI{}
	name := execName()
	cmd := kong.Parse(&cli,
		kong.Name(name),
		kong.Description("National Weather Service tools for MCP clients"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{
			"USER_AGENT":   defaultUserAgent,
			"NWS_ENDPOINT": nws.Endpoint,
		},
	)

	// Create a context
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Set up logging and tracing
	if err := cli.Globals.init(ctx, name); err != nil {
		cmd.FatalIfErrorf(err)
		return
	}

	// Run the command
	err := cmd.Run(&cli.Globals)
	cli.Globals.close()
	cmd.FatalIfErrorf(err)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Toolkit returns the NWS tools configured from the global flags
func (g *Globals) Toolkit() (*tool.Toolkit, error) {
	client, err := nws.New(g.NWS.UserAgent, g.limit(), g.clientOpts()...)
	if err != nil {
		return nil, err
	}
	client.SetLogger(g.logger)
	return tool.NewToolkit(client.Tools()...)
}

// Server returns an MCP server which serves the NWS tools
func (g *Globals) Server() (*mcp.Server, error) {
	toolkit, err := g.Toolkit()
	if err != nil {
		return nil, err
	}
	return mcp.New(g.execName, version.Version(),
		mcp.WithToolkit(toolkit),
		mcp.WithLogger(g.logger),
		mcp.WithTracer(g.tracer),
	)
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (g *Globals) init(ctx context.Context, name string) error {
	g.ctx = ctx
	g.execName = name

	// Log to stderr, stdout carries the stdio transport
	g.level = new(slog.LevelVar)
	if g.Debug {
		g.level.Set(slog.LevelDebug)
	}
	g.logger = slog.New(logger.NewTermHandler(os.Stderr, g.level))
	slog.SetDefault(g.logger)

	// Tracing
	if g.OTel.Endpoint != "" {
		provider, err := newTracerProvider(ctx, g.OTel.Endpoint, name)
		if err != nil {
			return err
		}
		otel.SetTracerProvider(provider)
		g.shutdown = provider.Shutdown
		g.logger.Debug("tracing enabled", "endpoint", g.OTel.Endpoint)
	}
	g.tracer = otel.Tracer(name)

	// Return success
	return nil
}

// close flushes any pending spans
func (g *Globals) close() {
	if g.shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := g.shutdown(ctx); err != nil {
		g.logger.Warn("tracer shutdown", "error", err)
	}
}

func (g *Globals) clientOpts() []client.ClientOpt {
	opts := []client.ClientOpt{}
	if g.Debug || g.Verbose {
		opts = append(opts, client.OptTrace(os.Stderr, g.Verbose))
	}
	if g.NWS.Endpoint != "" {
		opts = append(opts, client.OptEndpoint(g.NWS.Endpoint))
	}
	if g.NWS.Timeout > 0 {
		opts = append(opts, client.OptTimeout(g.NWS.Timeout))
	}
	if g.shutdown != nil {
		opts = append(opts, client.OptTracer(g.tracer))
	}
	return opts
}

func (g *Globals) limit() rate.Limit {
	if g.NWS.Rate <= 0 {
		return rate.Inf
	}
	return rate.Limit(g.NWS.Rate)
}

func execName() string {
	name, err := os.Executable()
	if err != nil {
		panic(err)
	}
	return filepath.Base(name)
}
