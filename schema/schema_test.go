package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContributionTypeLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"production_code", "Production Code"},
		{"tests", "Tests"},
		{"documentation", "Documentation"},
		{"specs_config", "Specs & Config"},
		{"infrastructure", "Infrastructure"},
		{"styling", "Styling"},
		{"build_artifacts", "Build Artifacts"},
		{"assets", "Assets"},
		{"generated", "Generated"},
		{"data", "Data"},
		{"other", "Other"},
		{"bogus", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, ContributionTypeLabel(tt.key))
		})
	}
}

func TestNewRepoStats(t *testing.T) {
	rs := NewRepoStats("proj", "/tmp/proj")
	assert.Equal(t, "proj", rs.Name)
	assert.Equal(t, "/tmp/proj", rs.Path)
	assert.NotNil(t, rs.Languages)
	assert.NotNil(t, rs.ContributionTypes)
	assert.NotNil(t, rs.FileExtensions)
}

func TestValidBackends(t *testing.T) {
	for _, b := range []DatabaseBackend{SQLiteBackend, MySQLBackend, PostgreSQLBackend, NoneBackend} {
		_, ok := ValidBackends[b]
		assert.True(t, ok, "backend %s should be valid", b)
	}
	_, ok := ValidBackends[DatabaseBackend("mongodb")]
	assert.False(t, ok)
}
