// Package shadow provides offline comparison of this service's case analysis
// against the legacy Node service it replaces. Both sides analyse the same
// case fixture; the comparator reports per-section divergence.
package shadow

// ComparisonResult is the top-level output of a shadow-run comparison.
type ComparisonResult struct {
	Sections []SectionComparison `json:"sections"`
	AllMatch bool                `json:"all_match"`
	Summary  string              `json:"summary"`
}

// SectionComparison records the comparison for a single analysis section.
type SectionComparison struct {
	Section      string `json:"section"`
	GoOutput     string `json:"go_output"`
	LegacyOutput string `json:"legacy_output"`
	Match        bool   `json:"match"`
	DiffLines    string `json:"diff_lines,omitempty"`
}
