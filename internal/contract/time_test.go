package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 8, 12, 15, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-03-15", time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)},
		{"2026-03", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"march", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"Nov", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)}, // future month falls back a year
		{"august", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
		{"sept", time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"2 weeks ago", refNow.AddDate(0, 0, -14)},
		{"1 week ago", refNow.AddDate(0, 0, -7)},
		{"3 months ago", refNow.AddDate(0, 0, -90)},
		{"10 days ago", refNow.AddDate(0, 0, -10)},
		{"last month", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)},
		{"  2026-01-01  ", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input, refNow)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, input := range []string{"", "not a date", "13th of never", "soon"} {
		_, err := ParseDate(input, refNow)
		assert.Error(t, err, "input %q should fail", input)
	}
}

func TestMonthRange(t *testing.T) {
	start, end, err := MonthRange("2026-02", refNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), end)

	// December rolls into the next year.
	start, end, err = MonthRange("2025-12", refNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestLastMonthRange(t *testing.T) {
	start, end := LastMonthRange(refNow)
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), end)

	// January rolls back into the previous year.
	start, end = LastMonthRange(time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		input     string
		wantStart time.Time
		wantEnd   time.Time
		wantOK    bool
	}{
		{"2026-02", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"march", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), true},
		{"last month", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), true},
		{"2026-03-15", time.Time{}, time.Time{}, false}, // exact dates are not windows
		{"2 weeks ago", time.Time{}, time.Time{}, false},
		{"never", time.Time{}, time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			start, end, ok := MonthWindow(tt.input, refNow)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}
