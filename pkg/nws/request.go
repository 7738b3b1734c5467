package nws

import (
	"strings"

	// Packages
	weather "github.com/mutablelogic/go-weather"
)

///////////////////////////////////////////////////////////////////////////////
// REQUEST TYPES

// AlertsRequest defines the input for the active alerts query
type AlertsRequest struct {
	State string `json:"state" jsonschema:"Two-letter US state code (e.g. CA, NY)"`
}

// ForecastRequest defines the input for the forecast query
type ForecastRequest struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitude of the location"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude of the location"`
}

// ForecastByDateRequest defines the input for the forecast query on a described date
type ForecastByDateRequest struct {
	Latitude        float64 `json:"latitude" jsonschema:"Latitude of the location"`
	Longitude       float64 `json:"longitude" jsonschema:"Longitude of the location"`
	DateDescription string  `json:"date_description" jsonschema:"Date description, such as 8月7日, 8月7号, 7号, 未来3天, 明天, 后天 or 大后天"`
}

// FlexibleRequest defines the input for the free-form weather query
type FlexibleRequest struct {
	Latitude  float64 `json:"latitude" jsonschema:"Latitude of the location"`
	Longitude float64 `json:"longitude" jsonschema:"Longitude of the location"`
	Query     string  `json:"query" jsonschema:"Query, such as 8月7日, 7号, 未来3天, 明天 or 后天"`
}

///////////////////////////////////////////////////////////////////////////////
// METHODS

// Validate normalises the state code
func (r *AlertsRequest) Validate() error {
	state, err := normaliseState(r.State)
	if err != nil {
		return err
	}
	r.State = state
	return nil
}

// Validate checks the coordinate range
func (r *ForecastRequest) Validate() error {
	return validateCoordinates(r.Latitude, r.Longitude)
}

// Validate checks the coordinate range and the description
func (r *ForecastByDateRequest) Validate() error {
	if err := validateCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	if strings.TrimSpace(r.DateDescription) == "" {
		return weather.ErrBadParameter.With("date_description is required")
	}
	return nil
}

// Validate checks the coordinate range and the query
func (r *FlexibleRequest) Validate() error {
	if err := validateCoordinates(r.Latitude, r.Longitude); err != nil {
		return err
	}
	if strings.TrimSpace(r.Query) == "" {
		return weather.ErrBadParameter.With("query is required")
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func validateCoordinates(lat, lon float64) error {
	if lat < -90 || lat > 90 {
		return weather.ErrBadParameter.Withf("latitude out of range: %v", lat)
	}
	if lon < -180 || lon > 180 {
		return weather.ErrBadParameter.Withf("longitude out of range: %v", lon)
	}
	return nil
}
