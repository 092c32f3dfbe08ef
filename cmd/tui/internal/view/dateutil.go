package view

import (
	"time"

	"cloud.google.com/go/civil"
)

// Timeframe is a preset date range, ordered from narrowest to widest.
type Timeframe int

const (
	TimeframeThisWeek Timeframe = iota
	TimeframeLastWeek
	TimeframeThisMonth
	TimeframeLastMonth
	TimeframeAll
	TimeframeCustom
)

var timeframeNames = [...]string{"This Week", "Last Week", "This Month", "Last Month", "All Time", "Custom Range"}

func (t Timeframe) String() string {
	if t < 0 || int(t) >= len(timeframeNames) {
		return "Unknown"
	}

	return timeframeNames[t]
}

// TimeframeRange returns the inclusive dates a predefined timeframe covers
// relative to today. Weeks start on Monday.
func TimeframeRange(tf Timeframe, today civil.Date) (from, to civil.Date) {
	monday := today.AddDays(-((int(today.In(time.UTC).Weekday()) + 6) % 7))

	switch tf {
	case TimeframeThisWeek:
		return monday, today
	case TimeframeLastWeek:
		return monday.AddDays(-7), monday.AddDays(-1)
	case TimeframeThisMonth:
		return civil.Date{Year: today.Year, Month: today.Month, Day: 1}, today
	case TimeframeLastMonth:
		first := civil.Date{Year: today.Year, Month: today.Month, Day: 1}
		last := first.AddDays(-1)

		return civil.Date{Year: last.Year, Month: last.Month, Day: 1}, last
	}

	return civil.Date{}, civil.Date{}
}

// rangeLabel describes a selected range for a screen header.
func rangeLabel(from, to *civil.Date) string {
	switch {
	case from == nil && to == nil:
		return "All Time"
	case from == nil:
		return "until " + FormatDate(*to)
	case to == nil:
		return "since " + FormatDate(*from)
	default:
		return FormatDate(*from) + " to " + FormatDate(*to)
	}
}
