package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	types "github.com/mutablelogic/go-server/pkg/types"
	datephrase "github.com/mutablelogic/go-weather/pkg/datephrase"
	attribute "go.opentelemetry.io/otel/attribute"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	Tools    ListToolsCommand `cmd:"" name:"tools" help:"List tools." group:"TOOLS"`
	Alerts   AlertsCommand    `cmd:"" name:"alerts" help:"Print active alerts for a US state." group:"TOOLS"`
	Forecast ForecastCommand  `cmd:"" name:"forecast" help:"Print the forecast for a location." group:"TOOLS"`
	Date     DateCommand      `cmd:"" name:"date" help:"Print the forecast for a date phrase such as 明天 or 8月7日." group:"TOOLS"`
}

type ListToolsCommand struct{}

type AlertsCommand struct {
	State string `arg:"" name:"state" json:"state" help:"Two-letter US state code"`
}

type ForecastCommand struct {
	Latitude  float64 `arg:"" name:"latitude" json:"latitude" help:"Latitude in degrees"`
	Longitude float64 `arg:"" name:"longitude" json:"longitude" help:"Longitude in degrees, use -- before negative values"`
}

type DateCommand struct {
	Latitude    float64 `arg:"" name:"latitude" json:"latitude" help:"Latitude in degrees"`
	Longitude   float64 `arg:"" name:"longitude" json:"longitude" help:"Longitude in degrees, use -- before negative values"`
	Description string  `arg:"" name:"phrase" json:"date_description" help:"Date phrase"`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) error {
	toolkit, err := ctx.Toolkit()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()
	for _, t := range toolkit.Tools() {
		fmt.Fprintf(w, "%s\t%s\n", t.Name(), t.Description())
	}
	return nil
}

func (cmd *AlertsCommand) Run(ctx *Globals) error {
	return ctx.runTool("get_alerts", cmd)
}

func (cmd *ForecastCommand) Run(ctx *Globals) error {
	return ctx.runTool("get_forecast", cmd)
}

func (cmd *DateCommand) Run(ctx *Globals) error {
	cmd.logPhrase(ctx.logger)
	return ctx.runTool("get_forecast_by_date", cmd)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// logPhrase reports which rule will interpret the phrase before any request
// is made
func (cmd *DateCommand) logPhrase(logger *slog.Logger) {
	if rule, ok := datephrase.Match(cmd.Description); ok {
		logger.Debug("date phrase", "phrase", cmd.Description, "rule", rule)
	} else {
		logger.Warn("unrecognized date phrase", "phrase", cmd.Description)
	}
}

// runTool runs a tool once with the command as input and prints the result
func (g *Globals) runTool(name string, input any) (err error) {
	toolkit, err := g.Toolkit()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(g.tracer, g.ctx, name,
		attribute.String("request", types.Stringify(input)),
	)
	defer func() { endSpan(err) }()

	// Run the tool
	result, err := toolkit.Run(parent, name, input)
	if err != nil {
		return err
	}

	// Print the result
	switch v := result.(type) {
	case string:
		fmt.Println(v)
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}
