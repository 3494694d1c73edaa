package rules

import (
	"fmt"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// Section21Prerequisites evaluates the service requirements that make a
// Section 21 notice valid. Every failure is a blocking issue with the legal
// reason spelled out; per the UX contract none of them stops the wizard —
// they gate document generation only.
func Section21Prerequisites(facts domain.Facts) []domain.ValidationIssue {
	issues := CheckDepositProtection(facts)

	if !boolFact(facts, "epc_given", false) && !boolFact(facts, "epc_exempt", false) {
		issues = append(issues, domain.ValidationIssue{
			Code:        "EPC_MISSING",
			QuestionID:  "epc_given",
			Severity:    domain.SeverityBlocking,
			LegalReason: "Assured Shorthold Tenancies Regulations 2015 require a valid EPC to be given to the tenant before a Section 21 notice",
			FixHint:     "Serve the EPC (or record the exemption) and re-serve notice",
		})
	}
	if boolFact(facts, "has_gas_appliances", false) && !boolFact(facts, "gas_safety_given", false) {
		issues = append(issues, domain.ValidationIssue{
			Code:        "GAS_CERT_MISSING",
			QuestionID:  "gas_safety_given",
			Severity:    domain.SeverityBlocking,
			LegalReason: "A current gas safety certificate must be given to the tenant before a Section 21 notice where the property has gas appliances",
			FixHint:     "Arrange a Gas Safe inspection and serve the CP12 certificate",
		})
	}
	if !boolFact(facts, "how_to_rent_given", false) {
		issues = append(issues, domain.ValidationIssue{
			Code:        "HOW_TO_RENT_MISSING",
			QuestionID:  "how_to_rent_given",
			Severity:    domain.SeverityBlocking,
			LegalReason: "The government's 'How to Rent' guide must be provided at the start of the tenancy for a Section 21 notice to be valid",
			FixHint:     "Serve the current 'How to Rent' guide, then serve a fresh notice",
		})
	}
	if boolFact(facts, "licence_required", false) && !boolFact(facts, "property_licensed", false) {
		issues = append(issues, domain.ValidationIssue{
			Code:        "LICENCE_MISSING",
			QuestionID:  "property_licensed",
			Severity:    domain.SeverityBlocking,
			LegalReason: "Housing Act 2004 bars a Section 21 notice while a property requiring an HMO or selective licence is unlicensed",
			FixHint:     "Apply for the licence before serving notice",
		})
	}
	return issues
}

// epcAdvisories returns non-blocking warnings about the EPC rating (MEES).
func epcAdvisories(facts domain.Facts) []domain.ValidationIssue {
	rating := stringFact(facts, "epc_rating", "")
	if (rating == "F" || rating == "G") && !boolFact(facts, "mees_exempt", false) {
		return []domain.ValidationIssue{{
			Code:        "EPC_BELOW_MEES",
			QuestionID:  "epc_rating",
			Severity:    domain.SeverityAdvisory,
			LegalReason: "Minimum Energy Efficiency Standard: a property rated F or G cannot lawfully be let without a registered exemption",
			FixHint:     "Improve the rating to E or register a MEES exemption",
		}}
	}
	return nil
}

// RecommendRoute picks the eviction route for the collected facts. The
// evaluation is priority-ordered and deterministic:
//
//  1. Devolved jurisdictions map to their own notice regimes.
//  2. Two or more months of arrears → Section 8 ground 8 (mandatory).
//  3. Prerequisites satisfied → Section 21 (no-fault).
//  4. Otherwise Section 21 with its blocking issues attached.
func RecommendRoute(facts domain.Facts, jurisdiction domain.Jurisdiction) domain.RouteRecommendation {
	arrearsMonths := floatFact(facts, "arrears_months", 0)

	switch jurisdiction {
	case domain.JurisdictionScotland:
		return domain.RouteRecommendation{
			RecommendedRoute:   domain.RouteNoticeToLeave,
			Reasoning:          "Scottish PRTs end by Notice to Leave citing grounds from the 2016 Act; all grounds are discretionary before the First-tier Tribunal",
			SuccessProbability: scotlandProbability(arrearsMonths),
		}
	case domain.JurisdictionNorthernIreland:
		return domain.RouteRecommendation{
			RecommendedRoute:   domain.RouteNoticeToQuit,
			Reasoning:          "Northern Ireland private tenancies end by Notice to Quit; the notice length depends on the tenancy's age",
			SuccessProbability: 0.7,
		}
	case domain.JurisdictionWales:
		if arrearsMonths < 2 {
			return domain.RouteRecommendation{
				RecommendedRoute:   domain.RouteWalesSection173,
				Reasoning:          "No-fault possession of a Welsh occupation contract uses a section 173 notice with six months' notice",
				SuccessProbability: 0.75,
			}
		}
	}

	if arrearsMonths >= 2 {
		return domain.RouteRecommendation{
			RecommendedRoute: domain.RouteSection8,
			Reasoning: fmt.Sprintf(
				"%.0f months of arrears meets the Ground 8 threshold; Section 8 gives a 14-day notice and a mandatory possession order if arrears persist at the hearing",
				arrearsMonths),
			SuccessProbability: 0.9,
		}
	}

	blocking := Section21Prerequisites(facts)
	if len(blocking) == 0 {
		return domain.RouteRecommendation{
			RecommendedRoute:   domain.RouteSection21,
			Reasoning:          "All Section 21 service prerequisites are satisfied; the accelerated possession procedure needs no hearing in most cases",
			SuccessProbability: 0.85,
		}
	}
	return domain.RouteRecommendation{
		RecommendedRoute:   domain.RouteSection21,
		Reasoning:          fmt.Sprintf("Section 21 is available once %d compliance failure(s) are cured; until then any notice served would be invalid", len(blocking)),
		BlockingIssues:     blocking,
		SuccessProbability: 0.4,
	}
}

func scotlandProbability(arrearsMonths float64) float64 {
	if arrearsMonths >= 3 {
		return 0.75
	}
	return 0.6
}

// moneyClaimIssues returns advisories for money-claim cases: track guidance
// and interest notes. Nothing blocks — small claims are always available.
func moneyClaimIssues(facts domain.Facts) (blocking, warnings []domain.ValidationIssue) {
	amount := floatFact(facts, "claim_amount", 0)
	if amount > 10000 {
		warnings = append(warnings, domain.ValidationIssue{
			Code:        "CLAIM_ABOVE_SMALL_CLAIMS",
			QuestionID:  "claim_amount",
			Severity:    domain.SeverityAdvisory,
			LegalReason: "Claims over £10,000 leave the small claims track; costs exposure and directions differ on the fast track",
			FixHint:     "Consider capping the claim at £10,000 or taking advice on fast-track costs",
		})
	}
	if amount > 0 && dateFact(facts, "arrears_from_date").IsZero() {
		warnings = append(warnings, domain.ValidationIssue{
			Code:        "INTEREST_START_UNKNOWN",
			QuestionID:  "arrears_from_date",
			Severity:    domain.SeverityAdvisory,
			LegalReason: "Statutory 8% interest under County Courts Act 1984 s.69 runs from the date each sum fell due",
			FixHint:     "Provide the date arrears began so interest can be claimed",
		})
	}
	return blocking, warnings
}

// Evaluate runs every rule relevant to the case type and splits the results
// into blocking issues and advisory warnings. This single entry point backs
// the answer, checkpoint and analyze endpoints so they can never disagree.
func Evaluate(facts domain.Facts, caseType domain.CaseType, jurisdiction domain.Jurisdiction) (blocking, warnings []domain.ValidationIssue) {
	if issue := CheckDeposit(facts, jurisdiction); issue != nil {
		blocking = append(blocking, *issue)
	}
	warnings = append(warnings, epcAdvisories(facts)...)

	switch caseType {
	case domain.CaseEviction:
		route := stringFact(facts, "eviction_route", "")
		noFault := route == string(domain.RouteSection21) || route == "" && floatFact(facts, "arrears_months", 0) < 2
		if (jurisdiction == domain.JurisdictionEngland || jurisdiction == domain.JurisdictionWales) && noFault {
			blocking = append(blocking, Section21Prerequisites(facts)...)
		} else {
			// Fault routes survive service failures, but the landlord
			// should still fix them; demote to advisories.
			for _, issue := range Section21Prerequisites(facts) {
				issue.Severity = domain.SeverityAdvisory
				warnings = append(warnings, issue)
			}
		}
	case domain.CaseMoneyClaim:
		b, w := moneyClaimIssues(facts)
		blocking = append(blocking, b...)
		warnings = append(warnings, w...)
	case domain.CaseTenancyAgreement:
		// The deposit cap check above is the load-bearing rule here.
	}
	return blocking, warnings
}
