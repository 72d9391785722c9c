package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitpulse/gitpulse/schema"
)

func TestClassify(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		path     string
		wantType schema.ContributionType
		wantLang string
	}{
		// Tests win over everything else
		{"tests/test_parser.py", schema.Tests, "Python"},
		{"src/widget_test.go", schema.Tests, "Go"},
		{"src/app.spec.ts", schema.Tests, "TypeScript"},
		{"cypress/login.cy.js", schema.Tests, "JavaScript"},
		{"e2e/checkout.test.tsx", schema.Tests, "TypeScript (React)"},

		// Documentation patterns, then extensions
		{"README.md", schema.Documentation, "Documentation"},
		{"docs/setup.py", schema.Documentation, "Documentation"},
		{"CHANGELOG", schema.Documentation, "Documentation"},
		{"notes.txt", schema.Documentation, "Documentation"},
		{"manual.rst", schema.Documentation, "Documentation"},

		// Extension dispatch
		{"logo.png", schema.Assets, ""},
		{"report.pdf", schema.Assets, ""},
		{"export.csv", schema.Data, ""},
		{"app.exe", schema.BuildArtifacts, ""},
		{"lib.so", schema.BuildArtifacts, ""},

		// Infrastructure
		{"Dockerfile", schema.Infrastructure, "Infrastructure"},
		{"terraform/main.tf", schema.Infrastructure, "Infrastructure"},
		{"Makefile", schema.Infrastructure, "Infrastructure"},
		{"k8s/service.py", schema.Infrastructure, "Infrastructure"},

		// Specs & config
		{"package.json", schema.SpecsConfig, "Configuration"},
		{"ci.yaml", schema.SpecsConfig, "Configuration"},
		{"Cargo.toml", schema.SpecsConfig, "Configuration"},
		{"go.mod", schema.SpecsConfig, "Configuration"},
		{".github/workflows/release.yml", schema.SpecsConfig, "Configuration"},

		// Styling
		{"src/app.css", schema.Styling, "CSS/Styling"},
		{"styles/main.less", schema.Styling, "CSS/Styling"},
		{"theme.py", schema.Styling, "CSS/Styling"},

		// Build artifact / asset / generated / data patterns
		{"node_modules/react/index.js", schema.BuildArtifacts, ""},
		{"dist/app.bundle.js", schema.BuildArtifacts, ""},
		{"assets/icon.py", schema.Assets, ""},
		{"Cargo.lock", schema.Generated, ""},
		{"api_generated.go", schema.Generated, ""},
		{"types.d.ts", schema.Generated, ""},
		{"seeds/users.py", schema.Data, ""},

		// Production code by language
		{"src/main.rs", schema.ProductionCode, "Rust"},
		{"server.go", schema.ProductionCode, "Go"},
		{"app.py", schema.ProductionCode, "Python"},
		{"Widget.tsx", schema.ProductionCode, "TypeScript (React)"},

		// Fallback
		{"unknown.xyz", schema.Other, ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := c.Classify(tt.path, 10, 2)
			assert.Equal(t, tt.wantType, got.Type, "type for %s", tt.path)
			assert.Equal(t, tt.wantLang, got.Language, "language for %s", tt.path)
			assert.Equal(t, tt.path, got.Path)
			assert.Equal(t, 10, got.LinesAdded)
			assert.Equal(t, 2, got.LinesRemoved)
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	assert.Equal(t, "Go", DetectLanguage(".go"))
	assert.Equal(t, "TypeScript (React)", DetectLanguage(".tsx"))
	assert.Equal(t, "", DetectLanguage(".xyz"))
}
