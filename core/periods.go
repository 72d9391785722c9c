package core

import (
	"fmt"
	"time"
)

// PeriodStrategy yields time window boundaries and display labels for
// activity aggregation. Index 0 is the current period, 1 the one before it.
type PeriodStrategy interface {
	Boundaries(now time.Time, index int) (start, end time.Time)
	Label(now time.Time, index int) string
}

// DailyPeriod groups activity by calendar day.
type DailyPeriod struct{}

func (DailyPeriod) Boundaries(now time.Time, index int) (time.Time, time.Time) {
	day := now.UTC().AddDate(0, 0, -index)
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24*time.Hour - time.Second)
	return start, end
}

func (DailyPeriod) Label(now time.Time, index int) string {
	day := now.UTC().AddDate(0, 0, -index)
	return day.Format("Monday, Jan 02")
}

// WeeklyPeriod groups activity by week, starting Monday.
type WeeklyPeriod struct{}

func (WeeklyPeriod) Boundaries(now time.Time, index int) (time.Time, time.Time) {
	now = now.UTC()
	sinceMonday := (int(now.Weekday()) + 6) % 7
	day := now.AddDate(0, 0, -(sinceMonday + index*7))
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7).Add(-time.Second)
	return start, end
}

func (w WeeklyPeriod) Label(now time.Time, index int) string {
	start, _ := w.Boundaries(now, index)
	return "Week of " + start.Format("Jan 02")
}

// MonthlyPeriod groups activity by calendar month.
type MonthlyPeriod struct{}

func (MonthlyPeriod) Boundaries(now time.Time, index int) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -index, 0)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

func (m MonthlyPeriod) Label(now time.Time, index int) string {
	start, _ := m.Boundaries(now, index)
	return start.Format("January 2006")
}

// QuarterlyPeriod groups activity by calendar quarter.
type QuarterlyPeriod struct{}

func (QuarterlyPeriod) Boundaries(now time.Time, index int) (time.Time, time.Time) {
	now = now.UTC()
	quarterStart := (int(now.Month()) - 1) / 3 * 3
	start := time.Date(now.Year(), time.Month(quarterStart+1), 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, -3*index, 0)
	end := start.AddDate(0, 3, 0).Add(-time.Second)
	return start, end
}

func (q QuarterlyPeriod) Label(now time.Time, index int) string {
	start, _ := q.Boundaries(now, index)
	quarter := (int(start.Month())-1)/3 + 1
	return fmt.Sprintf("Q%d %d", quarter, start.Year())
}

// CustomPeriod is a fixed caller-supplied window.
type CustomPeriod struct {
	Start time.Time
	End   time.Time
	Name  string
}

func (c CustomPeriod) Boundaries(time.Time, int) (time.Time, time.Time) {
	return c.Start, c.End
}

func (c CustomPeriod) Label(time.Time, int) string {
	return c.Name
}
