package datephrase

import (
	"strings"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-weather/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// SelectByOffset returns the periods for the day which is a number of days
// after today. For today, this is the first daytime period. For later days
// it is the consecutive block of periods whose names contain the target
// weekday, which is usually "<Weekday>" followed by "<Weekday> Night".
// The periods are expected in upstream order. Negative offsets select nothing.
func SelectByOffset(periods []schema.Period, days int, today time.Time) []schema.Period {
	switch {
	case days < 0:
		return nil
	case days == 0:
		for _, period := range periods {
			if !period.IsNight() {
				return []schema.Period{period}
			}
		}
		return nil
	}

	weekday := today.AddDate(0, 0, days).Weekday().String()
	var result []schema.Period
	for _, period := range periods {
		if period.Name == schema.PeriodTonight {
			continue
		}
		if strings.Contains(period.Name, weekday) {
			result = append(result, period)
		} else if len(result) > 0 {
			break
		}
	}
	return result
}
