package nws

import (
	"fmt"
	"strings"

	// Packages
	schema "github.com/mutablelogic/go-weather/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	separator = "\n---\n"

	// The number of periods returned by get_forecast
	forecastPeriods = 5
)

// Messages returned to the user instead of errors
const (
	msgAlertsUnavailable   = "无法获取预警信息或未找到相关数据。"
	msgNoAlerts            = "该州当前没有生效的天气预警。"
	msgPointsUnavailable   = "无法获取该地点的预报数据。"
	msgForecastUnavailable = "无法获取详细的预报信息。"
	msgDateNotFound        = "无法找到%s的天气信息。"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// FormatAlert renders a single alert, substituting placeholders for
// missing properties
func FormatAlert(alert schema.Alert) string {
	return fmt.Sprintf("\n事件: %s\n区域: %s\n严重性: %s\n描述: %s\n指令: %s\n",
		orDefault(alert.Event, "未知"),
		orDefault(alert.AreaDesc, "未知"),
		orDefault(alert.Severity, "未知"),
		orDefault(alert.Description, "无描述信息"),
		orDefault(alert.Instruction, "无具体指令"),
	)
}

// FormatAlerts renders alerts separated by a rule
func FormatAlerts(alerts []schema.Alert) string {
	result := make([]string, 0, len(alerts))
	for _, alert := range alerts {
		result = append(result, FormatAlert(alert))
	}
	return strings.Join(result, separator)
}

// FormatPeriod renders the name, temperature, wind and narrative of a period
func FormatPeriod(period schema.Period) string {
	return fmt.Sprintf("\n%s:\n温度: %v°%s\n风力: %s %s\n预报: %s\n",
		period.Name,
		period.Temperature, period.TemperatureUnit,
		period.WindSpeed, period.WindDirection,
		period.DetailedForecast,
	)
}

// FormatPeriods renders periods separated by a rule
func FormatPeriods(periods []schema.Period) string {
	result := make([]string, 0, len(periods))
	for _, period := range periods {
		result = append(result, FormatPeriod(period))
	}
	return strings.Join(result, separator)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
