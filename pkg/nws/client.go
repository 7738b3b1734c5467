/*
nws implements an API client for the US National Weather Service
https://www.weather.gov/documentation/services-web-api
*/
package nws

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	weather "github.com/mutablelogic/go-weather"
	schema "github.com/mutablelogic/go-weather/pkg/schema"
	rate "golang.org/x/time/rate"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	limiter *rate.Limiter
	clock   func() time.Time
	logger  *slog.Logger
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Default NWS API endpoint
	Endpoint       = "https://api.weather.gov"
	defaultTimeout = 30 * time.Second

	// NWS serves GeoJSON unless told otherwise
	ContentTypeGeoJSON = "application/geo+json"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Create a new client. NWS asks every caller to identify itself with a
// user agent. The limit is the maximum number of requests per second,
// where zero or rate.Inf disables rate limiting. Options can override
// the endpoint and timeout.
func New(userAgent string, limit rate.Limit, opts ...client.ClientOpt) (*Client, error) {
	// Check for missing user agent
	if userAgent = strings.TrimSpace(userAgent); userAgent == "" {
		return nil, weather.ErrBadParameter.With("missing user agent")
	}
	if limit <= 0 {
		limit = rate.Inf
	}

	// Create client
	defaults := []client.ClientOpt{
		client.OptEndpoint(Endpoint),
		client.OptUserAgent(userAgent),
		client.OptTimeout(defaultTimeout),
		client.OptHeader("Accept", ContentTypeGeoJSON),
	}
	c, err := client.New(append(defaults, opts...)...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{
		Client:  c,
		limiter: rate.NewLimiter(limit, 1),
		clock:   time.Now,
		logger:  slog.Default(),
	}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SetLogger routes the warnings and debug records of the tools, which
// otherwise go to slog.Default() at the time the client was created
func (c *Client) SetLogger(logger *slog.Logger) {
	if logger != nil {
		c.logger = logger
	}
}

// Points returns the grid metadata for a coordinate, including the
// location of its forecast
func (c *Client) Points(ctx context.Context, lat, lon float64) (Point, error) {
	var response Point

	if err := c.wait(ctx); err != nil {
		return Point{}, err
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("points", coordinates(lat, lon))); err != nil {
		return Point{}, err
	}

	return response, nil
}

// Forecast returns the forecast at the location returned by Points
func (c *Client) Forecast(ctx context.Context, url string) (Forecast, error) {
	var response Forecast

	if url == "" {
		return Forecast{}, weather.ErrNotFound.With("missing forecast url")
	}
	if err := c.wait(ctx); err != nil {
		return Forecast{}, err
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptReqEndpoint(url)); err != nil {
		return Forecast{}, err
	}

	return response, nil
}

// ForecastAt returns the forecast periods for a coordinate, in the order
// the upstream returns them
func (c *Client) ForecastAt(ctx context.Context, lat, lon float64) ([]schema.Period, error) {
	point, err := c.Points(ctx, lat, lon)
	if err != nil {
		return nil, err
	}
	forecast, err := c.Forecast(ctx, point.Properties.Forecast)
	if err != nil {
		return nil, err
	}
	return forecast.Properties.Periods, nil
}

// Alerts returns the active alerts for a two-letter state code
func (c *Client) Alerts(ctx context.Context, state string) (Alerts, error) {
	var response Alerts

	state, err := normaliseState(state)
	if err != nil {
		return Alerts{}, err
	}
	if err := c.wait(ctx); err != nil {
		return Alerts{}, err
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("alerts", "active", "area", state)); err != nil {
		return Alerts{}, err
	}

	return response, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (c *Client) wait(ctx context.Context) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return weather.ErrUnavailable.Withf("rate limit wait canceled: %v", err)
	}
	return nil
}

// NWS redirects requests with more than four decimal places
func coordinates(lat, lon float64) string {
	return formatCoordinate(lat) + "," + formatCoordinate(lon)
}

func formatCoordinate(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func normaliseState(state string) (string, error) {
	state = strings.ToUpper(strings.TrimSpace(state))
	if len(state) != 2 || !isLetter(state[0]) || !isLetter(state[1]) {
		return "", weather.ErrBadParameter.Withf("invalid state code: %q", state)
	}
	return state, nil
}

func isLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}
