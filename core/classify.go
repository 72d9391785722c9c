// Package core implements commit parsing, file classification, aggregation
// and period summaries for repository activity analysis.
package core

import (
	"strings"

	"github.com/gitpulse/gitpulse/schema"
)

// languageMap maps a lowercased file extension to its language name.
var languageMap = map[string]string{
	".py":     "Python",
	".js":     "JavaScript",
	".ts":     "TypeScript",
	".tsx":    "TypeScript (React)",
	".jsx":    "JavaScript (React)",
	".cs":     "C#",
	".java":   "Java",
	".go":     "Go",
	".rs":     "Rust",
	".rb":     "Ruby",
	".php":    "PHP",
	".swift":  "Swift",
	".kt":     "Kotlin",
	".scala":  "Scala",
	".c":      "C",
	".cpp":    "C++",
	".cc":     "C++",
	".cxx":    "C++",
	".h":      "C/C++ Header",
	".hpp":    "C++ Header",
	".vue":    "Vue",
	".svelte": "Svelte",
	".html":   "HTML",
	".sql":    "SQL",
	".r":      "R",
	".m":      "MATLAB/Objective-C",
	".pl":     "Perl",
	".lua":    "Lua",
	".dart":   "Dart",
	".elm":    "Elm",
	".ex":     "Elixir",
	".exs":    "Elixir",
	".erl":    "Erlang",
	".hs":     "Haskell",
	".clj":    "Clojure",
	".fs":     "F#",
	".fsx":    "F#",
	".sh":     "Shell",
	".ps1":    "PowerShell",
}

// extensionTypeMap resolves contribution types that follow from the extension
// alone. Styling extensions stay here for lookup but are deferred during
// classification so pattern checks can set the language override.
var extensionTypeMap = map[string]schema.ContributionType{
	// Documentation
	".md": schema.Documentation, ".rst": schema.Documentation,
	".adoc": schema.Documentation, ".wiki": schema.Documentation,
	".txt": schema.Documentation,

	// Build artifacts
	".o": schema.BuildArtifacts, ".obj": schema.BuildArtifacts,
	".a": schema.BuildArtifacts, ".lib": schema.BuildArtifacts,
	".so": schema.BuildArtifacts, ".dll": schema.BuildArtifacts,
	".dylib": schema.BuildArtifacts, ".exe": schema.BuildArtifacts,
	".rlib": schema.BuildArtifacts, ".rmeta": schema.BuildArtifacts,
	".pdb": schema.BuildArtifacts, ".class": schema.BuildArtifacts,
	".jar": schema.BuildArtifacts, ".war": schema.BuildArtifacts,
	".pyc": schema.BuildArtifacts, ".pyo": schema.BuildArtifacts,
	".wasm": schema.BuildArtifacts,

	// Assets
	".png": schema.Assets, ".jpg": schema.Assets, ".jpeg": schema.Assets,
	".gif": schema.Assets, ".bmp": schema.Assets, ".ico": schema.Assets,
	".svg": schema.Assets, ".webp": schema.Assets, ".ttf": schema.Assets,
	".otf": schema.Assets, ".woff": schema.Assets, ".woff2": schema.Assets,
	".eot": schema.Assets, ".mp3": schema.Assets, ".mp4": schema.Assets,
	".wav": schema.Assets, ".ogg": schema.Assets, ".webm": schema.Assets,
	".avi": schema.Assets, ".mov": schema.Assets, ".pdf": schema.Assets,
	".zip": schema.Assets, ".tar": schema.Assets, ".gz": schema.Assets,
	".rar": schema.Assets, ".7z": schema.Assets,

	// Data
	".csv": schema.Data, ".tsv": schema.Data, ".sqlite": schema.Data,
	".db": schema.Data, ".log": schema.Data, ".jsonl": schema.Data,
	".ndjson": schema.Data, ".parquet": schema.Data, ".avro": schema.Data,
	".xls": schema.Data, ".xlsx": schema.Data,

	// Styling (deferred, see Classify)
	".css": schema.Styling, ".scss": schema.Styling, ".sass": schema.Styling,
	".less": schema.Styling, ".styl": schema.Styling,
}

// Pattern tables checked by substring match against the lowercased path.
var (
	testPatterns = []string{
		"test_", "_test.", ".test.", "tests/", "/test/", "spec_", "_spec.",
		".spec.", "specs/", "/spec/", "__tests__/", ".tests.", "testing/",
		"unittest", "pytest", "jest", "mocha", "cypress/", "e2e/",
	}
	docPatterns = []string{
		"readme", "changelog", "contributing", "license", "authors",
		"docs/", "/doc/", "documentation/", "wiki/", "guide", "manual", "api-docs/",
	}
	infraPatterns = []string{
		"dockerfile", "docker-compose", "kubernetes/", "k8s/", "helm/",
		"terraform/", ".tf", "ansible/", "puppet/", "chef/",
		"cloudformation", "pulumi/", "vagrant", "makefile", "cmake",
		"deploy/", "deployment/", "infra/", "infrastructure/",
		"scripts/deploy", "scripts/build", "nginx", "apache",
	}
	configPatterns = []string{
		"package.json", "tsconfig", "webpack", "babel", "eslint", "prettier",
		".yaml", ".yml", ".json", ".toml", ".ini", ".cfg", ".conf",
		"openapi", "swagger", "schema", ".env", "config/", "/config",
		"settings", ".editorconfig", ".gitignore", ".dockerignore",
		"pyproject.toml", "setup.py", "setup.cfg", "requirements",
		"gemfile", "cargo.toml", "go.mod", "pom.xml", "build.gradle",
		".github/", ".gitlab-ci", "azure-pipelines", "jenkinsfile",
		".travis", "circle.yml", "bitbucket-pipelines",
	}
	stylingPatterns = []string{
		".styled.", "styles/", "/style/", "theme", ".tailwind",
	}
	buildPatterns = []string{
		"target/", "build/", "dist/", "out/", "bin/", "obj/",
		"node_modules/", ".cache/", "__pycache__/", ".tox/",
		"vendor/", "deps/", ".fingerprint/", "incremental/",
		".timestamp", ".cargo-lock", ".min.js", ".min.css",
		".bundle.js", ".chunk.js",
	}
	assetPatterns = []string{
		"assets/", "images/", "img/", "fonts/", "media/", "static/",
		"public/", "resources/",
	}
	generatedPatterns = []string{
		".generated.", ".g.", "_generated", "generated/",
		".lock", "package-lock.json", "yarn.lock", "cargo.lock",
		"poetry.lock", "pipfile.lock", "composer.lock", "gemfile.lock",
		".min.", ".map", ".d.ts",
	}
	dataPatterns = []string{
		"data/", "datasets/", "fixtures/", "seeds/", "migrations/",
	}
)

func matchAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}

// DetectLanguage returns the language for a lowercased extension, or "" when unknown.
func DetectLanguage(ext string) string {
	return languageMap[ext]
}

// Classifier assigns changed files to contribution types.
type Classifier struct{}

// NewClassifier returns a ready-to-use Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify buckets a changed file into a contribution type.
//
// Priority: tests, then documentation patterns, then extension dispatch
// (except styling), then infrastructure, specs/config, styling, build
// artifacts, assets, generated, data, and finally production code when a
// language was detected. Matching is case-insensitive substring matching
// against the full path.
func (c *Classifier) Classify(path string, added, removed int) schema.Classification {
	lower := strings.ToLower(path)
	ext := schema.FileExtension(lower)
	language := DetectLanguage(ext)

	out := schema.Classification{
		Path:         path,
		Language:     language,
		LinesAdded:   added,
		LinesRemoved: removed,
	}

	switch {
	case matchAny(lower, testPatterns):
		out.Type = schema.Tests
	case matchAny(lower, docPatterns):
		out.Type = schema.Documentation
		out.Language = "Documentation"
	default:
		if ct, ok := extensionTypeMap[ext]; ok && ct != schema.Styling {
			out.Type = ct
			if ct == schema.Documentation {
				out.Language = "Documentation"
			} else {
				out.Language = ""
			}
			return out
		}
		switch {
		case matchAny(lower, infraPatterns):
			out.Type = schema.Infrastructure
			out.Language = "Infrastructure"
		case matchAny(lower, configPatterns):
			out.Type = schema.SpecsConfig
			out.Language = "Configuration"
		case extensionTypeMap[ext] == schema.Styling || matchAny(lower, stylingPatterns):
			out.Type = schema.Styling
			out.Language = "CSS/Styling"
		case matchAny(lower, buildPatterns):
			out.Type = schema.BuildArtifacts
			out.Language = ""
		case matchAny(lower, assetPatterns):
			out.Type = schema.Assets
			out.Language = ""
		case matchAny(lower, generatedPatterns):
			out.Type = schema.Generated
			out.Language = ""
		case matchAny(lower, dataPatterns):
			out.Type = schema.Data
			out.Language = ""
		case language != "":
			out.Type = schema.ProductionCode
		default:
			out.Type = schema.Other
		}
	}
	return out
}
