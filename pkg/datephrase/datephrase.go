/*
datephrase resolves Chinese date phrases such as "明天", "8月7日", "7号" or
"未来3天" against an ordered list of NWS forecast periods.

Every phrase reduces to a number of days ahead of the caller-supplied date,
which then selects the periods for that weekday. Resolution never fails:
the Result is either a list of periods, an empty list when nothing matched,
or a rejection reason for requests the forecast cannot answer.
*/
package datephrase

import (
	"fmt"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-weather/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Result is the outcome of resolving a date phrase
type Result struct {
	// Rule is the name of the rule which matched, or empty
	Rule string `json:"rule,omitempty"`

	// Periods selected for the described day, in upstream order
	Periods []schema.Period `json:"periods,omitempty"`

	// Reason is set when a recognized phrase was rejected, and is
	// meant to be shown to the user as-is
	Reason string `json:"reason,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Resolve matches the description against the rules in order and returns
// the periods for the described day. The first rule whose pattern matches
// decides the outcome, even when it rejects the request.
func Resolve(description string, periods []schema.Period, today time.Time) Result {
	for _, r := range rules {
		if match := r.match(description); match != nil {
			result := r.apply(match, periods, today)
			result.Rule = r.name
			return result
		}
	}
	return Result{}
}

// Match returns the name of the first rule matching the description
func Match(description string) (string, bool) {
	for _, r := range rules {
		if r.match(description) != nil {
			return r.name, true
		}
	}
	return "", false
}

// Rejected returns true if the phrase was recognized but cannot be answered
func (r Result) Rejected() bool {
	return r.Reason != ""
}

// Empty returns true if no periods were selected and the phrase was not rejected
func (r Result) Empty() bool {
	return r.Reason == "" && len(r.Periods) == 0
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func offset(periods []schema.Period, days int, today time.Time) Result {
	return Result{Periods: SelectByOffset(periods, days, today)}
}

func reject(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}
