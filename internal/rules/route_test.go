package rules

import (
	"testing"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// compliantS21Facts is an England eviction case with every Section 21
// prerequisite satisfied.
func compliantS21Facts() domain.Facts {
	return domain.Facts{
		"deposit_taken":         true,
		"deposit_protected":     true,
		"prescribed_info_given": true,
		"epc_given":             true,
		"has_gas_appliances":    true,
		"gas_safety_given":      true,
		"how_to_rent_given":     true,
		"licence_required":      false,
		"rent_amount":           1000.0,
		"rent_period":           "monthly",
		"deposit_amount":        1100.0,
	}
}

func TestSection21Prerequisites(t *testing.T) {
	t.Parallel()
	if issues := Section21Prerequisites(compliantS21Facts()); len(issues) != 0 {
		t.Fatalf("expected no issues for compliant facts, got %+v", issues)
	}

	facts := compliantS21Facts()
	facts["deposit_protected"] = false
	facts["epc_given"] = false
	facts["how_to_rent_given"] = false
	issues := Section21Prerequisites(facts)

	codes := make(map[string]bool)
	for _, i := range issues {
		codes[i.Code] = true
		if i.Severity != domain.SeverityBlocking {
			t.Errorf("%s: prerequisites are blocking, got %q", i.Code, i.Severity)
		}
	}
	for _, want := range []string{"DEPOSIT_UNPROTECTED", "EPC_MISSING", "HOW_TO_RENT_MISSING"} {
		if !codes[want] {
			t.Errorf("missing expected issue %s in %v", want, codes)
		}
	}
}

func TestSection21PrerequisitesEPCExemption(t *testing.T) {
	t.Parallel()
	facts := compliantS21Facts()
	facts["epc_given"] = false
	facts["epc_exempt"] = true
	for _, i := range Section21Prerequisites(facts) {
		if i.Code == "EPC_MISSING" {
			t.Error("EPC exemption flag must suppress EPC_MISSING")
		}
	}
}

func TestRecommendRouteArrears(t *testing.T) {
	t.Parallel()
	facts := compliantS21Facts()
	facts["arrears_months"] = 3.0
	rec := RecommendRoute(facts, domain.JurisdictionEngland)
	if rec.RecommendedRoute != domain.RouteSection8 {
		t.Errorf("expected section_8 for serious arrears, got %q", rec.RecommendedRoute)
	}
	if rec.SuccessProbability < 0.85 {
		t.Errorf("ground 8 is mandatory, expected high probability, got %v", rec.SuccessProbability)
	}
}

func TestRecommendRouteNoFaultCompliant(t *testing.T) {
	t.Parallel()
	rec := RecommendRoute(compliantS21Facts(), domain.JurisdictionEngland)
	if rec.RecommendedRoute != domain.RouteSection21 {
		t.Errorf("expected section_21, got %q", rec.RecommendedRoute)
	}
	if len(rec.BlockingIssues) != 0 {
		t.Errorf("expected no blocking issues, got %+v", rec.BlockingIssues)
	}
}

func TestRecommendRouteNoFaultNonCompliant(t *testing.T) {
	t.Parallel()
	facts := compliantS21Facts()
	facts["deposit_protected"] = false
	rec := RecommendRoute(facts, domain.JurisdictionEngland)
	if rec.RecommendedRoute != domain.RouteSection21 {
		t.Errorf("expected section_21 with blockers, got %q", rec.RecommendedRoute)
	}
	if len(rec.BlockingIssues) == 0 {
		t.Error("expected blocking issues attached to the recommendation")
	}
	if rec.SuccessProbability >= 0.8 {
		t.Errorf("non-compliant s21 must not score high, got %v", rec.SuccessProbability)
	}
}

func TestRecommendRouteDevolved(t *testing.T) {
	t.Parallel()
	tests := []struct {
		jurisdiction domain.Jurisdiction
		want         domain.Route
	}{
		{domain.JurisdictionScotland, domain.RouteNoticeToLeave},
		{domain.JurisdictionNorthernIreland, domain.RouteNoticeToQuit},
		{domain.JurisdictionWales, domain.RouteWalesSection173},
	}
	for _, tt := range tests {
		t.Run(string(tt.jurisdiction), func(t *testing.T) {
			t.Parallel()
			rec := RecommendRoute(domain.Facts{}, tt.jurisdiction)
			if rec.RecommendedRoute != tt.want {
				t.Errorf("%s: got %q, want %q", tt.jurisdiction, rec.RecommendedRoute, tt.want)
			}
		})
	}
}

func TestRecommendRouteWalesArrears(t *testing.T) {
	t.Parallel()
	rec := RecommendRoute(domain.Facts{"arrears_months": 2.0}, domain.JurisdictionWales)
	if rec.RecommendedRoute != domain.RouteSection8 {
		t.Errorf("serious arrears in Wales should use the arrears route, got %q", rec.RecommendedRoute)
	}
}

func TestEvaluateSplitsSeverity(t *testing.T) {
	t.Parallel()
	facts := compliantS21Facts()
	facts["deposit_amount"] = 2500.0 // over cap
	facts["epc_rating"] = "F"

	blocking, warnings := Evaluate(facts, domain.CaseEviction, domain.JurisdictionEngland)

	foundCap := false
	for _, i := range blocking {
		if i.Code == "DEPOSIT_OVER_CAP" {
			foundCap = true
		}
	}
	if !foundCap {
		t.Errorf("expected DEPOSIT_OVER_CAP in blocking issues, got %+v", blocking)
	}

	foundMEES := false
	for _, w := range warnings {
		if w.Code == "EPC_BELOW_MEES" {
			foundMEES = true
			if w.Severity != domain.SeverityAdvisory {
				t.Errorf("MEES is advisory, got %q", w.Severity)
			}
		}
	}
	if !foundMEES {
		t.Errorf("expected EPC_BELOW_MEES warning, got %+v", warnings)
	}
}

func TestEvaluateFaultRouteDemotesPrerequisites(t *testing.T) {
	t.Parallel()
	facts := compliantS21Facts()
	facts["arrears_months"] = 3.0
	facts["eviction_route"] = string(domain.RouteSection8)
	facts["how_to_rent_given"] = false

	blocking, warnings := Evaluate(facts, domain.CaseEviction, domain.JurisdictionEngland)
	for _, i := range blocking {
		if i.Code == "HOW_TO_RENT_MISSING" {
			t.Error("service failures must not block a Section 8 route")
		}
	}
	found := false
	for _, w := range warnings {
		if w.Code == "HOW_TO_RENT_MISSING" && w.Severity == domain.SeverityAdvisory {
			found = true
		}
	}
	if !found {
		t.Errorf("expected demoted HOW_TO_RENT_MISSING advisory, got %+v", warnings)
	}
}

func TestEvaluateMoneyClaim(t *testing.T) {
	t.Parallel()
	facts := domain.Facts{"claim_amount": 12000.0}
	blocking, warnings := Evaluate(facts, domain.CaseMoneyClaim, domain.JurisdictionEngland)
	if len(blocking) != 0 {
		t.Errorf("money claims never block, got %+v", blocking)
	}
	codes := make(map[string]bool)
	for _, w := range warnings {
		codes[w.Code] = true
	}
	if !codes["CLAIM_ABOVE_SMALL_CLAIMS"] || !codes["INTEREST_START_UNKNOWN"] {
		t.Errorf("expected track and interest advisories, got %v", codes)
	}
}
