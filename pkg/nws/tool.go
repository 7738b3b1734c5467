package nws

import (
	"context"
	"encoding/json"
	"fmt"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	client "github.com/mutablelogic/go-client"
	weather "github.com/mutablelogic/go-weather"
	datephrase "github.com/mutablelogic/go-weather/pkg/datephrase"
	tool "github.com/mutablelogic/go-weather/pkg/tool"
	rate "golang.org/x/time/rate"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type alerts struct {
	client *Client
}

type forecast struct {
	client *Client
}

type forecastByDate struct {
	client *Client
}

type flexible struct {
	forecastByDate
}

var _ tool.Tool = (*alerts)(nil)
var _ tool.Tool = (*forecast)(nil)
var _ tool.Tool = (*forecastByDate)(nil)
var _ tool.Tool = (*flexible)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTools returns the weather tools for use with LLM agents
func NewTools(userAgent string, limit rate.Limit, opts ...client.ClientOpt) ([]tool.Tool, error) {
	// Create a client
	client, err := New(userAgent, limit, opts...)
	if err != nil {
		return nil, err
	}
	return client.Tools(), nil
}

// Tools returns the weather tools which use this client
func (c *Client) Tools() []tool.Tool {
	return []tool.Tool{
		&alerts{client: c},
		&forecast{client: c},
		&forecastByDate{client: c},
		&flexible{forecastByDate{client: c}},
	}
}

///////////////////////////////////////////////////////////////////////////////
// ALERTS

func (*alerts) Name() string {
	return "get_alerts"
}

func (*alerts) Description() string {
	return "Get the active weather alerts for a US state."
}

// Return the JSON schema for the tool input
func (*alerts) Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[AlertsRequest](nil)
	if err != nil {
		return nil, err
	}
	if state, ok := schema.Properties["state"]; ok && state != nil {
		state.Pattern = "^[A-Za-z]{2}$"
	}
	return schema, nil
}

// Run the tool with the given input
func (a *alerts) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req AlertsRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	response, err := a.client.Alerts(ctx, req.State)
	if err != nil {
		a.client.logger.WarnContext(ctx, "alerts unavailable", "state", req.State, "error", err)
		return msgAlertsUnavailable, nil
	} else if response.Features == nil {
		return msgAlertsUnavailable, nil
	} else if len(response.Features) == 0 {
		return msgNoAlerts, nil
	}
	return FormatAlerts(response.Items()), nil
}

///////////////////////////////////////////////////////////////////////////////
// FORECAST

func (*forecast) Name() string {
	return "get_forecast"
}

func (*forecast) Description() string {
	return "Get the weather forecast for a location in the United States."
}

// Return the JSON schema for the tool input
func (*forecast) Schema() (*jsonschema.Schema, error) {
	return coordinateSchema(jsonschema.For[ForecastRequest](nil))
}

// Run the tool with the given input
func (f *forecast) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ForecastRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// First the gridpoint, then its forecast
	point, err := f.client.Points(ctx, req.Latitude, req.Longitude)
	if err != nil {
		f.client.logger.WarnContext(ctx, "points unavailable", "latitude", req.Latitude, "longitude", req.Longitude, "error", err)
		return msgPointsUnavailable, nil
	}
	response, err := f.client.Forecast(ctx, point.Properties.Forecast)
	if err != nil {
		f.client.logger.WarnContext(ctx, "forecast unavailable", "url", point.Properties.Forecast, "error", err)
		return msgForecastUnavailable, nil
	}

	periods := response.Properties.Periods
	if len(periods) > forecastPeriods {
		periods = periods[:forecastPeriods]
	}
	return FormatPeriods(periods), nil
}

///////////////////////////////////////////////////////////////////////////////
// FORECAST BY DATE

func (*forecastByDate) Name() string {
	return "get_forecast_by_date"
}

func (*forecastByDate) Description() string {
	return "Get the weather forecast for a location in the United States on a date described in Chinese, " +
		"such as 8月7日, 8月7号, 7号 (this or next month), 未来3天, 明天, 后天 or 大后天."
}

// Return the JSON schema for the tool input
func (*forecastByDate) Schema() (*jsonschema.Schema, error) {
	return coordinateSchema(jsonschema.For[ForecastByDateRequest](nil))
}

// Run the tool with the given input
func (f *forecastByDate) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req ForecastByDateRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return f.resolve(ctx, req.Latitude, req.Longitude, req.DateDescription), nil
}

func (f *forecastByDate) resolve(ctx context.Context, lat, lon float64, description string) string {
	point, err := f.client.Points(ctx, lat, lon)
	if err != nil {
		f.client.logger.WarnContext(ctx, "points unavailable", "latitude", lat, "longitude", lon, "error", err)
		return msgPointsUnavailable
	}
	response, err := f.client.Forecast(ctx, point.Properties.Forecast)
	if err != nil {
		f.client.logger.WarnContext(ctx, "forecast unavailable", "url", point.Properties.Forecast, "error", err)
		return msgForecastUnavailable
	}

	result := datephrase.Resolve(description, response.Properties.Periods, f.client.clock())
	f.client.logger.DebugContext(ctx, "resolved date", "description", description, "rule", result.Rule, "periods", len(result.Periods), "rejected", result.Rejected())
	switch {
	case result.Rejected():
		return result.Reason
	case result.Empty():
		return fmt.Sprintf(msgDateNotFound, description)
	default:
		return FormatPeriods(result.Periods)
	}
}

///////////////////////////////////////////////////////////////////////////////
// FLEXIBLE

func (*flexible) Name() string {
	return "get_weather_flexible"
}

func (*flexible) Description() string {
	return "Flexible weather query for a location in the United States. " +
		"Supports 8月7日 or 8月7号 for a date, 7号 for a day this or next month, 未来3天 for three days ahead, 明天 and 后天."
}

// Return the JSON schema for the tool input
func (*flexible) Schema() (*jsonschema.Schema, error) {
	return coordinateSchema(jsonschema.For[FlexibleRequest](nil))
}

// Run the tool with the given input
func (f *flexible) Run(ctx context.Context, input json.RawMessage) (any, error) {
	var req FlexibleRequest
	if err := decode(input, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return f.resolve(ctx, req.Latitude, req.Longitude, req.Query), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decode(input json.RawMessage, v any) error {
	if len(input) == 0 {
		return nil
	}
	if err := json.Unmarshal(input, v); err != nil {
		return weather.ErrBadParameter.Withf("failed to unmarshal input: %v", err)
	}
	return nil
}

// Add range constraints to latitude and longitude
func coordinateSchema(schema *jsonschema.Schema, err error) (*jsonschema.Schema, error) {
	if err != nil {
		return nil, err
	}
	constrain := func(name string, lo, hi float64) {
		if field, ok := schema.Properties[name]; ok && field != nil {
			field.Minimum = &lo
			field.Maximum = &hi
		}
	}
	constrain("latitude", -90, 90)
	constrain("longitude", -180, 180)
	return schema, nil
}
