package nws

import (
	"encoding/json"
	"io"
	"net/http"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-weather/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Point is the response from /points/{lat},{lon}
type Point struct {
	ID         string `json:"id,omitempty"`
	Properties struct {
		GridID           string `json:"gridId,omitempty"`
		GridX            int    `json:"gridX,omitempty"`
		GridY            int    `json:"gridY,omitempty"`
		Forecast         string `json:"forecast"`
		ForecastHourly   string `json:"forecastHourly,omitempty"`
		TimeZone         string `json:"timeZone,omitempty"`
		RelativeLocation struct {
			Properties struct {
				City  string `json:"city,omitempty"`
				State string `json:"state,omitempty"`
			} `json:"properties"`
		} `json:"relativeLocation"`
	} `json:"properties"`
}

// Forecast is the response from the gridpoint forecast endpoint
type Forecast struct {
	Properties struct {
		Updated     string          `json:"updated,omitempty"`
		GeneratedAt string          `json:"generatedAt,omitempty"`
		Periods     []schema.Period `json:"periods"`
	} `json:"properties"`
}

// Alerts is the response from /alerts/active/area/{state}. Features is
// nil when the upstream omitted it, and empty when there are no alerts.
type Alerts struct {
	Title    string         `json:"title,omitempty"`
	Updated  string         `json:"updated,omitempty"`
	Features []AlertFeature `json:"features"`
}

type AlertFeature struct {
	ID         string       `json:"id,omitempty"`
	Properties schema.Alert `json:"properties"`
}

var _ client.Unmarshaler = (*Point)(nil)
var _ client.Unmarshaler = (*Forecast)(nil)
var _ client.Unmarshaler = (*Alerts)(nil)

///////////////////////////////////////////////////////////////////////////////
// UNMARSHAL

// The upstream answers with application/geo+json, which is decoded as JSON

func (p *Point) Unmarshal(_ http.Header, r io.Reader) error {
	return json.NewDecoder(r).Decode(p)
}

func (f *Forecast) Unmarshal(_ http.Header, r io.Reader) error {
	return json.NewDecoder(r).Decode(f)
}

func (a *Alerts) Unmarshal(_ http.Header, r io.Reader) error {
	return json.NewDecoder(r).Decode(a)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Items returns the alert properties in upstream order
func (a Alerts) Items() []schema.Alert {
	result := make([]schema.Alert, 0, len(a.Features))
	for _, feature := range a.Features {
		result = append(result, feature.Properties)
	}
	return result
}
