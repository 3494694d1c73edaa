package wizard

import (
	"fmt"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// ComplianceError reports legal failures raised while freezing an answer.
// The answer is still persisted; the API maps this to a 422 and the
// session records the failures as warnings and keeps moving.
type ComplianceError struct {
	Code     string                   `json:"code"` // NOTICE_NONCOMPLIANT | LEGAL_BLOCK
	Failures []domain.ValidationIssue `json:"failures"`
	Warnings []domain.ValidationIssue `json:"warnings,omitempty"`
}

func (e *ComplianceError) Error() string {
	return fmt.Sprintf("%s: %d failure(s)", e.Code, len(e.Failures))
}

// BlockedError is the client-side gate: the stored facts carry a blocking
// issue the user must amend before the session will advance. Today the
// only trigger is the tenancy deposit cap.
type BlockedError struct {
	Issues []domain.ValidationIssue
}

func (e *BlockedError) Error() string {
	if len(e.Issues) > 0 {
		return fmt.Sprintf("blocked: %s", e.Issues[0].Code)
	}
	return "blocked"
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// Submit is still saving. The caller retries after the first resolves.
var ErrSubmitInFlight = fmt.Errorf("wizard: submit already in flight")
