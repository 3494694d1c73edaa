package shadow

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Compare compares Go and legacy analysis outputs and produces a
// ComparisonResult. Both inputs are the JSON shape of CaseAnalysis; the
// comparison is section-wise so one divergent section does not drown out
// the rest.
func Compare(goJSON, legacyJSON []byte) (*ComparisonResult, error) {
	var goState, legacyState map[string]any
	if err := json.Unmarshal(goJSON, &goState); err != nil {
		return nil, fmt.Errorf("parse Go output: %w", err)
	}
	if err := json.Unmarshal(legacyJSON, &legacyState); err != nil {
		return nil, fmt.Errorf("parse legacy output: %w", err)
	}

	sections := []string{
		"readiness",
		"route_recommendation",
		"ground_recommendations",
		"calculated_date",
		"blocking_issues",
		"warnings",
	}
	var comparisons []SectionComparison
	allMatch := true

	for _, section := range sections {
		goVal, _ := json.MarshalIndent(goState[section], "", "  ")         // safe: values came from Unmarshal
		legacyVal, _ := json.MarshalIndent(legacyState[section], "", "  ") // safe: values came from Unmarshal

		match := string(goVal) == string(legacyVal)
		if !match {
			allMatch = false
		}

		sc := SectionComparison{
			Section:      section,
			GoOutput:     string(goVal),
			LegacyOutput: string(legacyVal),
			Match:        match,
		}
		if !match {
			sc.DiffLines = simpleDiff(string(goVal), string(legacyVal))
		}
		comparisons = append(comparisons, sc)
	}

	summary := "all sections match"
	if !allMatch {
		var divergent []string
		for _, c := range comparisons {
			if !c.Match {
				divergent = append(divergent, c.Section)
			}
		}
		summary = fmt.Sprintf("divergence in: %s", strings.Join(divergent, ", "))
	}

	return &ComparisonResult{
		Sections: comparisons,
		AllMatch: allMatch,
		Summary:  summary,
	}, nil
}

// simpleDiff returns a basic line-by-line diff indicator.
func simpleDiff(a, b string) string {
	aLines := strings.Split(a, "\n")
	bLines := strings.Split(b, "\n")
	var diffs []string

	maxLen := len(aLines)
	if len(bLines) > maxLen {
		maxLen = len(bLines)
	}

	for i := range maxLen {
		aLine := ""
		if i < len(aLines) {
			aLine = aLines[i]
		}
		bLine := ""
		if i < len(bLines) {
			bLine = bLines[i]
		}
		if aLine != bLine {
			diffs = append(diffs, fmt.Sprintf("line %d:\n  go:     %s\n  legacy: %s", i+1, aLine, bLine))
		}
	}
	return strings.Join(diffs, "\n")
}
