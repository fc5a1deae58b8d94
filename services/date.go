package services

import (
	"fmt"
	"time"
)

// FormatDashboardDate formats the dashboard greeting date,
// e.g. "Thursday 15th Oct 2026"
func FormatDashboardDate(t time.Time) string {
	return fmt.Sprintf("%s %d%s %s", t.Format("Monday"), t.Day(), ordinalSuffix(t.Day()), t.Format("Jan 2006"))
}

// FormatTaskDate formats a task date for tables, e.g. "13th Oct 2026"
func FormatTaskDate(t time.Time) string {
	return fmt.Sprintf("%d%s %s", t.Day(), ordinalSuffix(t.Day()), t.Format("Jan 2006"))
}

// ordinalSuffix returns the English ordinal suffix for a day of the month
func ordinalSuffix(day int) string {
	if day%100 >= 11 && day%100 <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
