// Package schema defines the National Weather Service records shared by
// the API client and the date phrase resolver.
package schema

import (
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Period is a named forecast segment ("Tonight", "Monday", "Monday Night")
// as returned by the NWS gridpoint forecast endpoint.
type Period struct {
	Number           int     `json:"number"`
	Name             string  `json:"name"`
	StartTime        string  `json:"startTime,omitempty"`
	EndTime          string  `json:"endTime,omitempty"`
	IsDaytime        bool    `json:"isDaytime"`
	Temperature      float64 `json:"temperature"`
	TemperatureUnit  string  `json:"temperatureUnit"`
	WindSpeed        string  `json:"windSpeed"`
	WindDirection    string  `json:"windDirection"`
	ShortForecast    string  `json:"shortForecast,omitempty"`
	DetailedForecast string  `json:"detailedForecast"`
}

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// PeriodTonight is the name NWS gives the evening period of the current day
	PeriodTonight = "Tonight"

	// PeriodNightSuffix terminates the name of every other night period
	PeriodNightSuffix = "Night"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// IsNight returns true for "Tonight" and any "<Weekday> Night" period
func (p Period) IsNight() bool {
	return p.Name == PeriodTonight || strings.HasSuffix(p.Name, PeriodNightSuffix)
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (p Period) String() string {
	return types.Stringify(p)
}
