package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ParseDate parses flexible user-supplied dates: "2026-03-15", "2026-03",
// month names ("november", "nov"), and relative forms like "3 weeks ago" or
// "2 months ago". A bare month name resolves to the current year, or the
// previous year when the month lies in the future.
func ParseDate(input string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	now = now.UTC()

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return t, nil
	}

	if month, ok := monthNames[s]; ok {
		year := now.Year()
		if month > now.Month() {
			year--
		}
		return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
	}

	if s == "last month" {
		start, _ := LastMonthRange(now)
		return start, nil
	}

	if strings.Contains(s, "ago") {
		fields := strings.Fields(s)
		if len(fields) >= 3 {
			if n, err := strconv.Atoi(fields[0]); err == nil {
				switch {
				case strings.HasPrefix(fields[1], "week"):
					return now.AddDate(0, 0, -7*n), nil
				case strings.HasPrefix(fields[1], "month"):
					return now.AddDate(0, 0, -30*n), nil
				case strings.HasPrefix(fields[1], "day"):
					return now.AddDate(0, 0, -n), nil
				}
			}
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q. Expected YYYY-MM-DD, YYYY-MM, a month name, or 'N weeks/months ago'", input)
}

// MonthRange returns the [start, end) window for the month named by input.
func MonthRange(input string, now time.Time) (time.Time, time.Time, error) {
	start, err := ParseDate(input, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// LastMonthRange returns the [start, end) window of the previous calendar month.
func LastMonthRange(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	end := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return end.AddDate(0, -1, 0), end
}

// MonthWindow reports the [start, end) window when input names a whole month:
// a bare month name, a YYYY-MM value, or "last month". Exact dates and
// relative forms are not whole months and return ok=false.
func MonthWindow(input string, now time.Time) (start, end time.Time, ok bool) {
	s := strings.ToLower(strings.TrimSpace(input))
	if s == "last month" {
		start, end = LastMonthRange(now)
		return start, end, true
	}
	if _, isName := monthNames[s]; !isName {
		if _, err := time.Parse("2006-01", s); err != nil {
			return time.Time{}, time.Time{}, false
		}
	}
	start, end, err := MonthRange(s, now)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
