package nws

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-weather/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// FAKE UPSTREAM

const (
	testUserAgent = "go-weather-test/1.0"
	testPoint     = "39.7456,-97.0892"
)

// Wednesday afternoon
var testToday = time.Date(2025, time.June, 25, 14, 0, 0, 0, time.Local)

type upstream struct {
	*httptest.Server
	requests  atomic.Int32
	userAgent atomic.Value
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := new(upstream)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /points/{coords}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("coords") {
		case testPoint:
			writeGeoJSON(w, map[string]any{
				"id": u.URL + "/points/" + testPoint,
				"properties": map[string]any{
					"gridId":   "TOP",
					"gridX":    31,
					"gridY":    80,
					"forecast": u.URL + "/gridpoints/TOP/31,80/forecast",
				},
			})
		case "0,0":
			// Point without a forecast
			writeGeoJSON(w, map[string]any{"properties": map[string]any{}})
		case "1,1":
			// Point with a broken forecast
			writeGeoJSON(w, map[string]any{"properties": map[string]any{
				"forecast": u.URL + "/gridpoints/ERR/1,1/forecast",
			}})
		default:
			http.Error(w, `{"title":"Not Found"}`, http.StatusNotFound)
		}
	})
	mux.HandleFunc("GET /gridpoints/TOP/31,80/forecast", func(w http.ResponseWriter, r *http.Request) {
		writeGeoJSON(w, map[string]any{
			"properties": map[string]any{
				"updated": "2025-06-25T18:00:00+00:00",
				"periods": testPeriods(),
			},
		})
	})
	mux.HandleFunc("GET /gridpoints/ERR/1,1/forecast", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"Unexpected Problem"}`, http.StatusInternalServerError)
	})
	mux.HandleFunc("GET /alerts/active/area/{state}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("state") {
		case "KS":
			writeGeoJSON(w, map[string]any{
				"title": "Current watches, warnings, and advisories for Kansas",
				"features": []map[string]any{
					{"id": "a1", "properties": map[string]any{
						"event":       "Severe Thunderstorm Warning",
						"areaDesc":    "Shawnee, KS",
						"severity":    "Severe",
						"description": "Damaging winds expected.",
						"instruction": "Move indoors.",
					}},
					{"id": "a2", "properties": map[string]any{
						"event": "Heat Advisory",
					}},
				},
			})
		case "NY":
			writeGeoJSON(w, map[string]any{"features": []any{}})
		case "OR":
			writeGeoJSON(w, map[string]any{"title": "no features"})
		default:
			http.Error(w, `{"title":"Bad Request"}`, http.StatusBadRequest)
		}
	})
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.requests.Add(1)
		u.userAgent.Store(r.UserAgent())
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) client(t *testing.T) *Client {
	t.Helper()
	c, err := New(testUserAgent, 0, client.OptEndpoint(u.URL))
	if err != nil {
		t.Fatal(err)
	}
	c.clock = func() time.Time { return testToday }
	return c
}

func writeGeoJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", ContentTypeGeoJSON)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

func testPeriods() []schema.Period {
	names := []string{
		"This Afternoon", "Tonight",
		"Thursday", "Thursday Night",
		"Friday", "Friday Night",
		"Saturday", "Saturday Night",
		"Sunday", "Sunday Night",
		"Monday", "Monday Night",
		"Tuesday", "Tuesday Night",
	}
	periods := make([]schema.Period, 0, len(names))
	for i, name := range names {
		periods = append(periods, schema.Period{
			Number:           i + 1,
			Name:             name,
			IsDaytime:        i%2 == 0,
			Temperature:      float64(80 - i),
			TemperatureUnit:  "F",
			WindSpeed:        "10 mph",
			WindDirection:    "S",
			ShortForecast:    "Sunny",
			DetailedForecast: fmt.Sprintf("Forecast %d.", i+1),
		})
	}
	return periods
}
