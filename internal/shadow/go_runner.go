package shadow

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/wizard"
)

// GoRunner analyses a case fixture with this service's rules engine.
type GoRunner struct{}

// Run loads a case JSON fixture, runs the analysis, and returns the
// CaseAnalysis JSON. The output has the same shape as the legacy service's
// analyze endpoint so the comparator can diff them section by section.
func (r *GoRunner) Run(fixturePath string) ([]byte, error) {
	data, err := os.ReadFile(fixturePath)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var c domain.Case
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	analysis, err := wizard.AnalyzeCase(c)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	return json.MarshalIndent(analysis, "", "  ")
}
