package datephrase_test

import (
	"sync"
	"testing"
	"time"

	// Packages
	cmp "github.com/google/go-cmp/cmp"
	datephrase "github.com/mutablelogic/go-weather/pkg/datephrase"
	schema "github.com/mutablelogic/go-weather/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

///////////////////////////////////////////////////////////////////////////////
// FIXTURES

// Wednesday afternoon
var today = time.Date(2025, time.June, 25, 14, 0, 0, 0, time.Local)

func week() []schema.Period {
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
			Temperature:      float64(70 + i),
			TemperatureUnit:  "F",
			WindSpeed:        "5 mph",
			WindDirection:    "SW",
			DetailedForecast: "Sunny.",
		})
	}
	return periods
}

func names(periods []schema.Period) []string {
	result := make([]string, 0, len(periods))
	for _, p := range periods {
		result = append(result, p.Name)
	}
	return result
}

///////////////////////////////////////////////////////////////////////////////
// TESTS: RELATIVE

func Test_Resolve_Relative(t *testing.T) {
	tests := []struct {
		phrase string
		expect []string
	}{
		{"今天", []string{"This Afternoon"}},
		{"明天", []string{"Thursday", "Thursday Night"}},
		{"后天", []string{"Friday", "Friday Night"}},
		{"大后天", []string{"Saturday", "Saturday Night"}},
		{"明天天气怎么样", []string{"Thursday", "Thursday Night"}},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			result := datephrase.Resolve(tt.phrase, week(), today)
			assert.Equal(t, datephrase.RuleRelative, result.Rule)
			assert.False(t, result.Rejected())
			if diff := cmp.Diff(tt.expect, names(result.Periods)); diff != "" {
				t.Errorf("unexpected periods (-want +got):\n%s", diff)
			}
		})
	}
}

func Test_Resolve_Historical(t *testing.T) {
	for _, phrase := range []string{"昨天", "前天", "大前天"} {
		t.Run(phrase, func(t *testing.T) {
			result := datephrase.Resolve(phrase, week(), today)
			assert.True(t, result.Rejected())
			assert.Empty(t, result.Periods)
			assert.Equal(t, "抱歉，NWS API不支持历史天气查询，无法获取"+phrase+"的天气信息。", result.Reason)
		})
	}
}

func Test_Resolve_TodayAtNight(t *testing.T) {
	assert := assert.New(t)

	// In the evening the first period is "Tonight"
	periods := week()[1:]
	result := datephrase.Resolve("今天", periods, today)
	assert.Equal([]string{"Thursday"}, names(result.Periods))

	// Only night periods
	result = datephrase.Resolve("今天", []schema.Period{{Name: "Tonight"}, {Name: "Thursday Night"}}, today)
	assert.True(result.Empty())
}

///////////////////////////////////////////////////////////////////////////////
// TESTS: MONTH AND DAY

func Test_Resolve_MonthDay(t *testing.T) {
	assert := assert.New(t)
	periods := week()

	// Tomorrow by date and by name are the same
	tomorrow := datephrase.Resolve("6月26日", periods, today)
	assert.Equal(datephrase.RuleMonthDay, tomorrow.Rule)
	assert.Equal(datephrase.Resolve("明天", periods, today).Periods, tomorrow.Periods)

	// Both day markers
	assert.Equal(tomorrow.Periods, datephrase.Resolve("6月26号", periods, today).Periods)

	// Same month, later in the month
	result := datephrase.Resolve("6月30日", periods, today)
	assert.Equal([]string{"Monday", "Monday Night"}, names(result.Periods))
}

func Test_Resolve_MonthDayPast(t *testing.T) {
	assert := assert.New(t)

	result := datephrase.Resolve("6月25日", week(), today)
	assert.True(result.Rejected())
	assert.Equal("抱歉，无法查询过去的日期（6月25日）。", result.Reason)

	result = datephrase.Resolve("6月1号", week(), today)
	assert.True(result.Rejected())
	assert.Equal("抱歉，无法查询过去的日期（6月1日）。", result.Reason)
}

func Test_Resolve_MonthDayNextMonth(t *testing.T) {
	assert := assert.New(t)
	periods := week()

	// (30 - 25) + 3 = 8 days ahead
	result := datephrase.Resolve("7月3日", periods, today)
	assert.False(result.Rejected())
	assert.Equal(datephrase.SelectByOffset(periods, 8, today), result.Periods)
	assert.Equal([]string{"Thursday", "Thursday Night"}, names(result.Periods))

	// Months further ahead are treated as the next month
	result = datephrase.Resolve("9月1日", periods, today)
	assert.Equal(datephrase.SelectByOffset(periods, 6, today), result.Periods)
	assert.Equal([]string{"Tuesday", "Tuesday Night"}, names(result.Periods))
}

func Test_Resolve_MonthDayEarlierMonth(t *testing.T) {
	assert := assert.New(t)

	result := datephrase.Resolve("5月1日", week(), today)
	assert.True(result.Rejected())
	assert.Equal("抱歉，暂不支持跨年查询（5月1日）。", result.Reason)

	// No year rollover on new year's eve either
	eve := time.Date(2025, time.December, 31, 9, 0, 0, 0, time.Local)
	result = datephrase.Resolve("1月1日", week(), eve)
	assert.True(result.Rejected())
}

func Test_Resolve_Day(t *testing.T) {
	periods := week()
	tests := []struct {
		phrase string
		days   int
	}{
		{"28号", 3},
		{"26号", 1},
		{"3号", 8},   // next month
		{"25号", 30}, // today means next month
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			result := datephrase.Resolve(tt.phrase, periods, today)
			assert.Equal(t, datephrase.RuleDay, result.Rule)
			assert.False(t, result.Rejected())
			assert.Equal(t, datephrase.SelectByOffset(periods, tt.days, today), result.Periods)
		})
	}
}

///////////////////////////////////////////////////////////////////////////////
// TESTS: FUTURE DAYS

func Test_Resolve_FutureDays(t *testing.T) {
	assert := assert.New(t)
	periods := week()

	result := datephrase.Resolve("未来3天", periods, today)
	assert.Equal(datephrase.RuleFutureDays, result.Rule)
	assert.Equal(datephrase.SelectByOffset(periods, 3, today), result.Periods)
	assert.Equal([]string{"Saturday", "Saturday Night"}, names(result.Periods))

	// Zero days is today
	result = datephrase.Resolve("未来0天", periods, today)
	assert.Equal([]string{"This Afternoon"}, names(result.Periods))

	// Missing number is not this rule
	_, ok := datephrase.Match("未来几天")
	assert.False(ok)
}

///////////////////////////////////////////////////////////////////////////////
// TESTS: UNRECOGNIZED

func Test_Resolve_Unrecognized(t *testing.T) {
	assert := assert.New(t)

	for _, phrase := range []string{"xyz", "", "next week", "7日", "8月"} {
		result := datephrase.Resolve(phrase, week(), today)
		assert.True(result.Empty(), phrase)
		assert.False(result.Rejected(), phrase)
		assert.Empty(result.Rule, phrase)
	}
}

func Test_Resolve_Overflow(t *testing.T) {
	assert := assert.New(t)

	result := datephrase.Resolve("99999999999999999999号", week(), today)
	assert.Equal(datephrase.RuleDay, result.Rule)
	assert.True(result.Empty())
}

func Test_Resolve_NoMatchingPeriod(t *testing.T) {
	assert := assert.New(t)

	// Recognized, but the forecast does not reach that far
	result := datephrase.Resolve("明天", week()[:2], today)
	assert.Equal(datephrase.RuleRelative, result.Rule)
	assert.True(result.Empty())
}

///////////////////////////////////////////////////////////////////////////////
// TESTS: PRECEDENCE

func Test_Match_Precedence(t *testing.T) {
	tests := []struct {
		phrase string
		rule   string
	}{
		{"8月7号", datephrase.RuleMonthDay},
		{"8月7日", datephrase.RuleMonthDay},
		{"明天7号", datephrase.RuleDay},
		{"未来3天明天", datephrase.RuleFutureDays},
		{"后天", datephrase.RuleRelative},
	}
	for _, tt := range tests {
		t.Run(tt.phrase, func(t *testing.T) {
			rule, ok := datephrase.Match(tt.phrase)
			assert.True(t, ok)
			assert.Equal(t, tt.rule, rule)
		})
	}
}

func Test_Resolve_RejectionStopsCascade(t *testing.T) {
	assert := assert.New(t)

	// The month/day rule rejects, later rules are not consulted
	result := datephrase.Resolve("5月1日明天", week(), today)
	assert.Equal(datephrase.RuleMonthDay, result.Rule)
	assert.True(result.Rejected())
}

///////////////////////////////////////////////////////////////////////////////
// TESTS: CONCURRENCY

func Test_Resolve_Concurrent(t *testing.T) {
	periods := week()
	want := datephrase.Resolve("后天", periods, today)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := datephrase.Resolve("后天", periods, today)
			assert.Equal(t, want, got)
		}()
	}
	wg.Wait()
	assert.Equal(t, week(), periods)
}
