package main

import (
	"net/http"

	// Packages
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	mcp "github.com/mutablelogic/go-weather/pkg/mcp"
	version "github.com/mutablelogic/go-weather/pkg/version"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type MCPCommands struct {
	Run   RunCommand   `cmd:"" name:"run" help:"Serve tools to an MCP client over stdio." group:"MCP"`
	Serve ServeCommand `cmd:"" name:"serve" help:"Serve tools over streamable HTTP." group:"MCP"`
}

type RunCommand struct{}

type ServeCommand struct {
	HTTP struct {
		Addr string `name:"addr" env:"WEATHER_ADDR" help:"Listen address" default:"localhost:8080"`
		Path string `name:"path" help:"Path for the MCP endpoint" default:"/mcp"`
	} `embed:"" prefix:"http."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunCommand) Run(ctx *Globals) error {
	server, err := ctx.Server()
	if err != nil {
		return err
	}
	return server.RunStdio(ctx.ctx)
}

func (cmd *ServeCommand) Run(ctx *Globals) error {
	server, err := ctx.Server()
	if err != nil {
		return err
	}

	// Create the HTTP server and mount the MCP endpoint
	httpserver, err := httpserver.New(cmd.HTTP.Addr, nil)
	if err != nil {
		return err
	}
	cmd.mount(httpserver.Router(), server)

	// Serve until the context is cancelled
	ctx.logger.Info("started", "name", ctx.execName, "version", version.Version(), "addr", cmd.HTTP.Addr, "path", cmd.HTTP.Path)
	if err := httpserver.Run(ctx.ctx); err != nil {
		return err
	}
	ctx.logger.Info("stopped", "name", ctx.execName)
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *ServeCommand) mount(router *http.ServeMux, server *mcp.Server) {
	router.Handle(cmd.HTTP.Path, server.Handler())
}
