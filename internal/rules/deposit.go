// Package rules implements the deterministic legal rules engine: statutory
// deposit caps, notice-period calculation, possession-ground selection and
// route recommendation. It is the system of record for compliance — any copy
// of these checks living in a client is a UX hint only.
package rules

import (
	"fmt"
	"math"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// Tenant Fees Act 2019 thresholds (England; mirrored for Wales intake).
const (
	depositCapWeeksStandard = 5
	depositCapWeeksHighRent = 6
	highRentAnnualThreshold = 50000
)

// DepositCap returns the maximum lawful tenancy deposit for the given annual
// rent: five weeks' rent, or six when annual rent is £50,000 or more.
func DepositCap(annualRent float64) float64 {
	weekly := annualRent / 52
	weeks := float64(depositCapWeeksStandard)
	if annualRent >= highRentAnnualThreshold {
		weeks = depositCapWeeksHighRent
	}
	// Round to the penny — cap comparisons must not fail on float dust.
	return math.Round(weekly*weeks*100) / 100
}

// CheckDeposit validates the deposit amount against the statutory cap.
// Returns nil when no deposit was taken, the facts are incomplete, or the
// deposit is lawful. The returned issue is blocking: per the product's UX
// contract this is the one rule that also blocks Next at the client.
func CheckDeposit(facts domain.Facts, jurisdiction domain.Jurisdiction) *domain.ValidationIssue {
	if jurisdiction != domain.JurisdictionEngland && jurisdiction != domain.JurisdictionWales {
		return nil
	}
	if !boolFact(facts, "deposit_taken", false) {
		return nil
	}
	deposit := floatFact(facts, "deposit_amount", 0)
	annual := annualRent(facts)
	if deposit <= 0 || annual <= 0 {
		return nil
	}

	cap := DepositCap(annual)
	if deposit <= cap {
		return nil
	}

	weeks := depositCapWeeksStandard
	if annual >= highRentAnnualThreshold {
		weeks = depositCapWeeksHighRent
	}
	return &domain.ValidationIssue{
		Code:       "DEPOSIT_OVER_CAP",
		QuestionID: "deposit_amount",
		Severity:   domain.SeverityBlocking,
		LegalReason: fmt.Sprintf(
			"Tenant Fees Act 2019 caps tenancy deposits at %d weeks' rent (£%.2f for this tenancy); £%.2f was taken",
			weeks, cap, deposit),
		FixHint: fmt.Sprintf("Refund the excess so the deposit is at most £%.2f before serving notice", cap),
	}
}

// CheckDepositProtection validates the protection-scheme requirements that
// gate a Section 21 notice. Failures block generation, never navigation.
func CheckDepositProtection(facts domain.Facts) []domain.ValidationIssue {
	if !boolFact(facts, "deposit_taken", false) {
		return nil
	}

	var issues []domain.ValidationIssue
	if !boolFact(facts, "deposit_protected", false) {
		issues = append(issues, domain.ValidationIssue{
			Code:        "DEPOSIT_UNPROTECTED",
			QuestionID:  "deposit_protected",
			Severity:    domain.SeverityBlocking,
			LegalReason: "Housing Act 2004 s.213 requires the deposit to be held in an authorised scheme within 30 days; an unprotected deposit invalidates a Section 21 notice",
			FixHint:     "Protect the deposit in DPS, MyDeposits or TDS, or refund it in full",
		})
	}
	if boolFact(facts, "deposit_protected", false) && !boolFact(facts, "prescribed_info_given", false) {
		issues = append(issues, domain.ValidationIssue{
			Code:        "PRESCRIBED_INFO_MISSING",
			QuestionID:  "prescribed_info_given",
			Severity:    domain.SeverityBlocking,
			LegalReason: "Prescribed information about the deposit scheme must be served within 30 days of receiving the deposit",
			FixHint:     "Serve the scheme's prescribed information certificate before serving notice",
		})
	}
	return issues
}
