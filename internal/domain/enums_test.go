package domain

import "testing"

func TestCaseTypeValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		ct    CaseType
		valid bool
	}{
		{name: "eviction", ct: CaseEviction, valid: true},
		{name: "money_claim", ct: CaseMoneyClaim, valid: true},
		{name: "tenancy_agreement", ct: CaseTenancyAgreement, valid: true},
		{name: "bogus", ct: CaseType("bogus"), valid: false},
		{name: "empty", ct: CaseType(""), valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.ct.Valid(); got != tt.valid {
				t.Errorf("CaseType(%q).Valid() = %v, want %v", tt.ct, got, tt.valid)
			}
		})
	}
}

func TestJurisdictionValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		j     Jurisdiction
		valid bool
	}{
		{name: "england", j: JurisdictionEngland, valid: true},
		{name: "wales", j: JurisdictionWales, valid: true},
		{name: "scotland", j: JurisdictionScotland, valid: true},
		{name: "northern-ireland", j: JurisdictionNorthernIreland, valid: true},
		{name: "uk", j: Jurisdiction("uk"), valid: false},
		{name: "empty", j: Jurisdiction(""), valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.j.Valid(); got != tt.valid {
				t.Errorf("Jurisdiction(%q).Valid() = %v, want %v", tt.j, got, tt.valid)
			}
		})
	}
}

func TestProductCaseTypeCoversAllProducts(t *testing.T) {
	t.Parallel()
	products := []Product{
		ProductNoticeOnly, ProductCompletePack, ProductMoneyClaim,
		ProductASTStandard, ProductASTPremium,
	}
	for _, p := range products {
		t.Run(string(p), func(t *testing.T) {
			t.Parallel()
			ct, err := CaseTypeFor(p)
			if err != nil {
				t.Fatalf("CaseTypeFor(%q): %v", p, err)
			}
			if !ct.Valid() {
				t.Errorf("CaseTypeFor(%q) = %q, not a valid case type", p, ct)
			}
		})
	}
}

func TestCaseTypeForUnknownProduct(t *testing.T) {
	t.Parallel()
	if _, err := CaseTypeFor(Product("gold_plan")); err == nil {
		t.Error("expected error for unknown product")
	}
}

func TestInputTypeValid(t *testing.T) {
	t.Parallel()
	valid := []InputType{
		InputSelect, InputYesNo, InputMultiSelect, InputCurrency, InputDate,
		InputGroup, InputUpload, InputInfo, InputTextarea, InputRadio,
	}
	for _, it := range valid {
		t.Run(string(it), func(t *testing.T) {
			t.Parallel()
			if !it.Valid() {
				t.Errorf("InputType(%q).Valid() = false, want true", it)
			}
		})
	}
	if InputType("checkbox").Valid() {
		t.Error("InputType(checkbox).Valid() = true, want false")
	}
}

func TestIssueSeverityValid(t *testing.T) {
	t.Parallel()
	if !SeverityBlocking.Valid() || !SeverityAdvisory.Valid() {
		t.Error("expected blocking and advisory to be valid")
	}
	if IssueSeverity("fatal").Valid() {
		t.Error("IssueSeverity(fatal).Valid() = true, want false")
	}
}

func TestRouteStringValues(t *testing.T) {
	t.Parallel()
	// Wire values the frontend matches on.
	tests := []struct {
		r    Route
		want string
	}{
		{RouteSection21, "section_21"},
		{RouteSection8, "section_8"},
		{RouteNoticeToLeave, "notice_to_leave"},
		{RouteWalesSection173, "rhw_section_173"},
		{RouteNoticeToQuit, "notice_to_quit"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if string(tt.r) != tt.want {
				t.Errorf("Route: got %q, want %q", tt.r, tt.want)
			}
		})
	}
}

func TestReviewStatusValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		r     ReviewStatus
		valid bool
	}{
		{name: "pending", r: ReviewPending, valid: true},
		{name: "approved", r: ReviewApproved, valid: true},
		{name: "rejected", r: ReviewRejected, valid: true},
		{name: "skipped", r: ReviewSkipped, valid: true},
		{name: "timed_out", r: ReviewTimedOut, valid: true},
		{name: "bogus", r: ReviewStatus("bogus"), valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.r.Valid(); got != tt.valid {
				t.Errorf("ReviewStatus(%q).Valid() = %v, want %v", tt.r, got, tt.valid)
			}
		})
	}
}
