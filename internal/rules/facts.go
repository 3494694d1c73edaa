package rules

import (
	"encoding/json"
	"time"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// floatFact extracts a float64 fact by question ID, returning fallback if the
// fact is missing or cannot be converted. Answers arrive via JSON so numbers
// are usually float64 or json.Number.
func floatFact(facts domain.Facts, id string, fallback float64) float64 {
	v, ok := facts[id]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return fallback
		}
		return f
	case string:
		var f float64
		if err := json.Unmarshal([]byte(n), &f); err != nil {
			return fallback
		}
		return f
	}
	return fallback
}

// boolFact extracts a boolean fact, treating "yes"/"no" answers as booleans.
func boolFact(facts domain.Facts, id string, fallback bool) bool {
	v, ok := facts[id]
	if !ok {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if b == "yes" || b == "true" {
			return true
		}
		if b == "no" || b == "false" {
			return false
		}
	}
	return fallback
}

// stringFact extracts a string fact, returning fallback if missing or not a string.
func stringFact(facts domain.Facts, id, fallback string) string {
	v, ok := facts[id]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok {
		return fallback
	}
	return s
}

// stringsFact extracts a multi_select answer as a string slice.
func stringsFact(facts domain.Facts, id string) []string {
	v, ok := facts[id]
	if !ok {
		return nil
	}
	switch vs := v.(type) {
	case []string:
		return vs
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{vs}
	}
	return nil
}

// dateFact parses a yyyy-mm-dd fact. Returns the zero time if absent or unparsable.
func dateFact(facts domain.Facts, id string) time.Time {
	s := stringFact(facts, id, "")
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// annualRent converts the rent_amount/rent_period fact pair to annual rent.
// Unknown periods are treated as monthly, the dominant UK convention.
func annualRent(facts domain.Facts) float64 {
	amount := floatFact(facts, "rent_amount", 0)
	switch stringFact(facts, "rent_period", "monthly") {
	case "weekly":
		return amount * 52
	case "fortnightly":
		return amount * 26
	case "quarterly":
		return amount * 4
	case "yearly":
		return amount
	default:
		return amount * 12
	}
}
