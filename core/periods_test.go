package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Fixed reference point: Wednesday 2026-08-12 15:04:05 UTC.
var refNow = time.Date(2026, 8, 12, 15, 4, 5, 0, time.UTC)

func TestDailyPeriod(t *testing.T) {
	start, end := DailyPeriod{}.Boundaries(refNow, 0)
	assert.Equal(t, time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 12, 23, 59, 59, 0, time.UTC), end)

	start, _ = DailyPeriod{}.Boundaries(refNow, 3)
	assert.Equal(t, time.Date(2026, 8, 9, 0, 0, 0, 0, time.UTC), start)

	assert.Equal(t, "Wednesday, Aug 12", DailyPeriod{}.Label(refNow, 0))
	assert.Equal(t, "Sunday, Aug 09", DailyPeriod{}.Label(refNow, 3))
}

func TestWeeklyPeriod(t *testing.T) {
	start, end := WeeklyPeriod{}.Boundaries(refNow, 0)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Sunday, end.Weekday())
	assert.Equal(t, time.Date(2026, 8, 16, 23, 59, 59, 0, time.UTC), end)

	start, _ = WeeklyPeriod{}.Boundaries(refNow, 2)
	assert.Equal(t, time.Date(2026, 7, 27, 0, 0, 0, 0, time.UTC), start)

	assert.Equal(t, "Week of Aug 10", WeeklyPeriod{}.Label(refNow, 0))
}

func TestWeeklyPeriodSundayStart(t *testing.T) {
	// A Sunday belongs to the week that started the previous Monday.
	sunday := time.Date(2026, 8, 16, 12, 0, 0, 0, time.UTC)
	start, _ := WeeklyPeriod{}.Boundaries(sunday, 0)
	assert.Equal(t, time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC), start)
}

func TestMonthlyPeriod(t *testing.T) {
	start, end := MonthlyPeriod{}.Boundaries(refNow, 0)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 31, 23, 59, 59, 0, time.UTC), end)

	// Crosses the year boundary.
	start, end = MonthlyPeriod{}.Boundaries(refNow, 9)
	assert.Equal(t, time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 11, 30, 23, 59, 59, 0, time.UTC), end)

	assert.Equal(t, "August 2026", MonthlyPeriod{}.Label(refNow, 0))
	assert.Equal(t, "November 2025", MonthlyPeriod{}.Label(refNow, 9))
}

func TestQuarterlyPeriod(t *testing.T) {
	start, end := QuarterlyPeriod{}.Boundaries(refNow, 0)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC), end)

	start, _ = QuarterlyPeriod{}.Boundaries(refNow, 3)
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), start)

	assert.Equal(t, "Q3 2026", QuarterlyPeriod{}.Label(refNow, 0))
	assert.Equal(t, "Q4 2025", QuarterlyPeriod{}.Label(refNow, 3))
}

func TestCustomPeriod(t *testing.T) {
	p := CustomPeriod{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC),
		Name:  "H1 2026",
	}
	start, end := p.Boundaries(refNow, 5)
	assert.Equal(t, p.Start, start)
	assert.Equal(t, p.End, end)
	assert.Equal(t, "H1 2026", p.Label(refNow, 5))
}
