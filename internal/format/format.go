// Package format renders currency amounts and dates for display and
// computes calendar-day distances between dates.
package format

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder is rendered for absent values.
const Placeholder = "—"

var printer = message.NewPrinter(language.English)

// Currency formats an optional amount as whole US dollars with digit grouping,
// e.g. "$12,500". Absent amounts render as Placeholder.
func Currency(amount *float64) string {
	if amount == nil {
		return Placeholder
	}
	return Dollars(*amount)
}

// Dollars formats an amount as whole US dollars with digit grouping.
func Dollars(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return printer.Sprintf("-$%d", -n)
	}
	return printer.Sprintf("$%d", n)
}

// CompactDollars abbreviates large amounts: "$1.2M", "$15K", "$950".
func CompactDollars(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s$%.0fK", sign, v/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, v)
	}
}

// Date formats an optional date as "Jan 2, 2006".
func Date(t *time.Time) string {
	if t == nil {
		return Placeholder
	}
	return t.Format("Jan 2, 2006")
}

// DateRange formats a start/end pair. A missing side is rendered as an open range.
func DateRange(start, end *time.Time) string {
	switch {
	case start == nil && end == nil:
		return Placeholder
	case start == nil:
		return "until " + Date(end)
	case end == nil:
		return "from " + Date(start)
	case start.Year() == end.Year():
		return start.Format("Jan 2") + " – " + Date(end)
	default:
		return Date(start) + " – " + Date(end)
	}
}

// DaysUntil returns the number of calendar days from ref to target. The
// result is negative when target is in the past. ok is false when target is nil.
func DaysUntil(target *time.Time, ref time.Time) (days int, ok bool) {
	if target == nil {
		return 0, false
	}
	diff := calendarDay(*target).Sub(calendarDay(ref))
	return int(math.Round(diff.Hours() / 24)), true
}

// DaysSince is DaysUntil with the sign flipped.
func DaysSince(t *time.Time, ref time.Time) (int, bool) {
	d, ok := DaysUntil(t, ref)
	return -d, ok
}

// calendarDay projects t onto midnight UTC of its own calendar date so that
// time-of-day and DST shifts never change the day count.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Percent returns part/total*100, or 0 when total is zero.
func Percent(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return part / total * 100
}
