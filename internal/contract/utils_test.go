package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetPlainActivityLabel(t *testing.T) {
	tests := []struct {
		commits int
		want    string
	}{
		{0, QuietActivity},
		{1, LowActivity},
		{7, LowActivity},
		{8, ModerateActivity},
		{19, ModerateActivity},
		{20, HighActivity},
		{100, HighActivity},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GetPlainActivityLabel(tt.commits), "commits=%d", tt.commits)
	}
}

func TestGetColorActivityLabel(t *testing.T) {
	// Colored output still contains the plain label text.
	for _, commits := range []int{0, 5, 10, 25} {
		plain := GetPlainActivityLabel(commits)
		assert.Contains(t, GetColorActivityLabel(commits), plain)
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1", "Yes"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, got, "input %q", s)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, got, "input %q", s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}
