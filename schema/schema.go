// Package schema has shared types for analysis, classification and output.
package schema

// ContributionType buckets a changed file into the kind of work it represents.
type ContributionType string

// All known contribution types.
const (
	ProductionCode ContributionType = "production_code"
	Tests          ContributionType = "tests"
	Documentation  ContributionType = "documentation"
	SpecsConfig    ContributionType = "specs_config"
	Infrastructure ContributionType = "infrastructure"
	Styling        ContributionType = "styling"
	BuildArtifacts ContributionType = "build_artifacts"
	Assets         ContributionType = "assets"
	Generated      ContributionType = "generated"
	Data           ContributionType = "data"
	Other          ContributionType = "other"
)

// Label returns the human-readable name for a contribution type.
func (t ContributionType) Label() string {
	switch t {
	case ProductionCode:
		return "Production Code"
	case Tests:
		return "Tests"
	case Documentation:
		return "Documentation"
	case SpecsConfig:
		return "Specs & Config"
	case Infrastructure:
		return "Infrastructure"
	case Styling:
		return "Styling"
	case BuildArtifacts:
		return "Build Artifacts"
	case Assets:
		return "Assets"
	case Generated:
		return "Generated"
	case Data:
		return "Data"
	default:
		return "Other"
	}
}

// ContributionTypeLabel maps a raw breakdown key back to its display label.
// Unknown keys collapse to "Other".
func ContributionTypeLabel(key string) string {
	return ContributionType(key).Label()
}

// Classification is the result of classifying a single changed file.
type Classification struct {
	Path         string           `json:"file_path"`
	Type         ContributionType `json:"contribution_type"`
	Language     string           `json:"language,omitempty"`
	LinesAdded   int              `json:"lines_added"`
	LinesRemoved int              `json:"lines_removed"`
}
