package shadow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_AllMatch(t *testing.T) {
	t.Parallel()
	data := []byte(`{"readiness":"ready","route_recommendation":{"recommended_route":"section_8"},"blocking_issues":[],"warnings":[]}`)

	result, err := Compare(data, data)
	require.NoError(t, err)
	assert.True(t, result.AllMatch)
	assert.Equal(t, "all sections match", result.Summary)
	assert.Len(t, result.Sections, 6)
	for _, s := range result.Sections {
		assert.True(t, s.Match, "section %s should match", s.Section)
		assert.Empty(t, s.DiffLines)
	}
}

func TestCompare_RouteDivergence(t *testing.T) {
	t.Parallel()
	goJSON := []byte(`{"readiness":"ready","route_recommendation":{"recommended_route":"section_8"},"blocking_issues":[]}`)
	legacyJSON := []byte(`{"readiness":"ready","route_recommendation":{"recommended_route":"section_21"},"blocking_issues":[]}`)

	result, err := Compare(goJSON, legacyJSON)
	require.NoError(t, err)
	assert.False(t, result.AllMatch)
	assert.Contains(t, result.Summary, "route_recommendation")
	assert.NotContains(t, result.Summary, "readiness")

	for _, s := range result.Sections {
		if s.Section == "route_recommendation" {
			assert.False(t, s.Match)
			assert.NotEmpty(t, s.DiffLines)
		} else {
			assert.True(t, s.Match)
		}
	}
}

func TestCompare_MultipleSectionsDivergent(t *testing.T) {
	t.Parallel()
	goJSON := []byte(`{"readiness":"ready","calculated_date":{"expiry_date":"2026-08-15"},"blocking_issues":[]}`)
	legacyJSON := []byte(`{"readiness":"blocked","calculated_date":{"expiry_date":"2026-08-16"},"blocking_issues":[{"code":"EPC_MISSING"}]}`)

	result, err := Compare(goJSON, legacyJSON)
	require.NoError(t, err)
	assert.False(t, result.AllMatch)
	assert.Contains(t, result.Summary, "readiness")
	assert.Contains(t, result.Summary, "calculated_date")
	assert.Contains(t, result.Summary, "blocking_issues")
}

func TestCompare_MissingSection(t *testing.T) {
	t.Parallel()
	goJSON := []byte(`{"readiness":"ready"}`)
	legacyJSON := []byte(`{"readiness":"ready","warnings":[{"code":"EPC_BELOW_MEES"}]}`)

	result, err := Compare(goJSON, legacyJSON)
	require.NoError(t, err)
	assert.False(t, result.AllMatch)
	// warnings is present in legacy but null in go
	assert.Contains(t, result.Summary, "warnings")
}

func TestCompare_InvalidJSON(t *testing.T) {
	t.Parallel()
	_, err := Compare([]byte("not json"), []byte(`{}`))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse Go output")

	_, err = Compare([]byte(`{}`), []byte("not json"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse legacy output")
}

func TestSimpleDiff(t *testing.T) {
	t.Parallel()
	a := "line1\nline2\nline3"
	b := "line1\nchanged\nline3"

	diff := simpleDiff(a, b)
	assert.Contains(t, diff, "line 2:")
	assert.Contains(t, diff, "go:     line2")
	assert.Contains(t, diff, "legacy: changed")
	assert.NotContains(t, diff, "line 1:")
	assert.NotContains(t, diff, "line 3:")
}

func TestSimpleDiff_DifferentLengths(t *testing.T) {
	t.Parallel()
	a := "line1\nline2"
	b := "line1\nline2\nline3"

	diff := simpleDiff(a, b)
	assert.Contains(t, diff, "line 3:")
	assert.Contains(t, diff, "legacy: line3")
}
