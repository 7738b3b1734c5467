package datephrase

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-weather/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type rule struct {
	name  string
	match func(description string) []string
	apply func(match []string, periods []schema.Period, today time.Time) Result
}

type relative struct {
	phrase string
	days   int
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	RuleMonthDay   = "month_day"
	RuleDay        = "day"
	RuleFutureDays = "future_days"
	RuleRelative   = "relative"
)

var (
	reMonthDay   = regexp.MustCompile(`(\d+)月(\d+)[日号]`)
	reDay        = regexp.MustCompile(`(\d+)号`)
	reFutureDays = regexp.MustCompile(`未来(\d+)天`)
)

// Phrases containing another phrase ("大后天" contains "后天") come first
var relatives = []relative{
	{"今天", 0},
	{"明天", 1},
	{"大后天", 3},
	{"后天", 2},
	{"昨天", -1},
	{"大前天", -3},
	{"前天", -2},
}

// Order is precedence
var rules = []rule{
	{RuleMonthDay, matchRegexp(reMonthDay), resolveMonthDay},
	{RuleDay, matchRegexp(reDay), resolveDay},
	{RuleFutureDays, matchRegexp(reFutureDays), resolveFutureDays},
	{RuleRelative, matchRelative, resolveRelative},
}

///////////////////////////////////////////////////////////////////////////////
// MATCHERS

func matchRegexp(re *regexp.Regexp) func(string) []string {
	return func(description string) []string {
		if match := re.FindStringSubmatch(description); match != nil {
			return match[1:]
		}
		return nil
	}
}

func matchRelative(description string) []string {
	for _, r := range relatives {
		if strings.Contains(description, r.phrase) {
			return []string{r.phrase, strconv.Itoa(r.days)}
		}
	}
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// HANDLERS

// "8月7日", "8月7号"
func resolveMonthDay(match []string, periods []schema.Period, today time.Time) Result {
	month, err := strconv.Atoi(match[0])
	if err != nil {
		return Result{}
	}
	day, err := strconv.Atoi(match[1])
	if err != nil {
		return Result{}
	}

	current := int(today.Month())
	switch {
	case month == current:
		if day <= today.Day() {
			return reject("抱歉，无法查询过去的日期（%d月%d日）。", month, day)
		}
		return offset(periods, day-today.Day(), today)
	case month > current:
		// Only ever looks one month ahead
		return offset(periods, daysInMonth(today)-today.Day()+day, today)
	default:
		return reject("抱歉，暂不支持跨年查询（%d月%d日）。", month, day)
	}
}

// "7号", this month or next
func resolveDay(match []string, periods []schema.Period, today time.Time) Result {
	day, err := strconv.Atoi(match[0])
	if err != nil {
		return Result{}
	}
	if day > today.Day() {
		return offset(periods, day-today.Day(), today)
	}
	return offset(periods, daysInMonth(today)-today.Day()+day, today)
}

// "未来3天"
func resolveFutureDays(match []string, periods []schema.Period, today time.Time) Result {
	days, err := strconv.Atoi(match[0])
	if err != nil {
		return Result{}
	}
	return offset(periods, days, today)
}

// "今天", "明天", "昨天", ...
func resolveRelative(match []string, periods []schema.Period, today time.Time) Result {
	days, err := strconv.Atoi(match[1])
	if err != nil {
		return Result{}
	}
	if days < 0 {
		return reject("抱歉，NWS API不支持历史天气查询，无法获取%s的天气信息。", match[0])
	}
	return offset(periods, days, today)
}
