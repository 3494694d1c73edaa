package flow

import (
	"testing"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

func mustSet(t *testing.T, ct domain.CaseType, j domain.Jurisdiction) *Set {
	t.Helper()
	s, err := ForCase(ct, j)
	if err != nil {
		t.Fatalf("ForCase(%s, %s): %v", ct, j, err)
	}
	return s
}

func TestForCaseAllShapes(t *testing.T) {
	t.Parallel()
	shapes := []struct {
		ct domain.CaseType
		j  domain.Jurisdiction
	}{
		{domain.CaseEviction, domain.JurisdictionEngland},
		{domain.CaseEviction, domain.JurisdictionWales},
		{domain.CaseEviction, domain.JurisdictionScotland},
		{domain.CaseEviction, domain.JurisdictionNorthernIreland},
		{domain.CaseMoneyClaim, domain.JurisdictionEngland},
		{domain.CaseTenancyAgreement, domain.JurisdictionEngland},
		{domain.CaseTenancyAgreement, domain.JurisdictionScotland},
	}
	for _, sh := range shapes {
		s := mustSet(t, sh.ct, sh.j)
		if len(s.Questions()) == 0 {
			t.Errorf("%s/%s: empty question set", sh.ct, sh.j)
		}
	}

	if _, err := ForCase(domain.CaseType("divorce"), domain.JurisdictionEngland); err == nil {
		t.Error("expected error for unknown case type")
	}
	if _, err := ForCase(domain.CaseEviction, domain.Jurisdiction("narnia")); err == nil {
		t.Error("expected error for unknown jurisdiction")
	}
}

func TestDependenciesPointBackwards(t *testing.T) {
	t.Parallel()
	_, err := NewSet([]domain.Question{
		{
			ID: "a", Prompt: "A", InputType: domain.InputYesNo,
			DependsOn: &domain.Dependency{QuestionID: "b", Values: []string{"yes"}},
		},
		{ID: "b", Prompt: "B", InputType: domain.InputYesNo},
	})
	if err == nil {
		t.Fatal("expected forward dependency to be rejected")
	}
}

func TestDuplicateIDsRejected(t *testing.T) {
	t.Parallel()
	_, err := NewSet([]domain.Question{
		{ID: "a", Prompt: "A", InputType: domain.InputYesNo},
		{ID: "a", Prompt: "A again", InputType: domain.InputYesNo},
	})
	if err == nil {
		t.Fatal("expected duplicate id to be rejected")
	}
}

// Visibility is equality for scalar answers and containment for arrays.
func TestVisibility(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)

	arrears, ok := s.Lookup("arrears_months")
	if !ok {
		t.Fatal("arrears_months not in set")
	}

	if s.Visible(arrears, domain.Facts{}) {
		t.Error("dependent question visible before its trigger is answered")
	}
	if s.Visible(arrears, domain.Facts{"eviction_reason": []any{"no_fault"}}) {
		t.Error("visible despite non-matching answer")
	}
	if !s.Visible(arrears, domain.Facts{"eviction_reason": []any{"breach", "arrears"}}) {
		t.Error("containment match should make the question visible")
	}

	depositAmount, _ := s.Lookup("deposit_amount")
	if !s.Visible(depositAmount, domain.Facts{"deposit_taken": true}) {
		t.Error("boolean true should match the yes dependency value")
	}
	if s.Visible(depositAmount, domain.Facts{"deposit_taken": false}) {
		t.Error("boolean false must not match yes")
	}
}

func TestNextQuestionWalksInOrder(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)
	facts := domain.Facts{}

	first := s.NextQuestion(facts)
	if first == nil || first.ID != "eviction_intro" {
		t.Fatalf("expected eviction_intro first, got %+v", first)
	}

	facts["eviction_intro"] = true
	second := s.NextQuestion(facts)
	if second == nil || second.ID != "tenancy_type" {
		t.Fatalf("expected tenancy_type second, got %+v", second)
	}
}

func TestNextQuestionSkipsHidden(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)
	facts := domain.Facts{
		"eviction_intro":     true,
		"tenancy_type":       "ast",
		"tenancy_start_date": "2023-05-01",
		"fixed_term":         false,
	}
	next := s.NextQuestion(facts)
	if next == nil {
		t.Fatal("expected another question")
	}
	if next.ID == "fixed_term_end_date" {
		t.Error("fixed_term_end_date must be hidden when fixed_term is no")
	}
	if next.ID != "rent_details" {
		t.Errorf("expected rent_details, got %s", next.ID)
	}
}

func TestProgressIgnoresHidden(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)
	facts := domain.Facts{}

	if p := s.Progress(facts); p != 0 {
		t.Errorf("empty facts should be zero progress, got %v", p)
	}

	facts["eviction_intro"] = true
	before := s.Progress(facts)

	// Answering "no deposit" hides three follow-ups, shrinking the
	// denominator, so progress must not decrease.
	facts["deposit_taken"] = false
	after := s.Progress(facts)
	if after <= before {
		t.Errorf("hiding questions should not reduce progress: %v -> %v", before, after)
	}
}

func TestCompleteFlow(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseMoneyClaim, domain.JurisdictionEngland)
	facts := domain.Facts{}

	for i := 0; i < 50; i++ {
		q := s.NextQuestion(facts)
		if q == nil {
			break
		}
		switch q.InputType {
		case domain.InputInfo:
			facts[q.ID] = true
		case domain.InputGroup:
			obj := map[string]any{}
			for _, f := range q.Fields {
				switch f.InputType {
				case domain.InputCurrency:
					obj[f.ID] = 100.0
				case domain.InputSelect:
					obj[f.ID] = f.Options[0].Value
				default:
					obj[f.ID] = "x"
				}
			}
			if err := s.ApplyAnswer(facts, q.ID, obj); err != nil {
				t.Fatalf("ApplyAnswer(%s): %v", q.ID, err)
			}
			continue
		case domain.InputCurrency:
			facts[q.ID] = 500.0
		case domain.InputDate:
			facts[q.ID] = "2026-01-01"
		case domain.InputYesNo:
			facts[q.ID] = "yes"
		case domain.InputUpload:
			facts[q.ID] = []string{}
		case domain.InputSelect, domain.InputRadio:
			facts[q.ID] = q.Options[0].Value
		case domain.InputMultiSelect:
			facts[q.ID] = []string{q.Options[0].Value}
		default:
			facts[q.ID] = "answer"
		}
	}

	if !s.IsComplete(facts) {
		t.Fatalf("flow should be complete, next = %+v", s.NextQuestion(facts))
	}
	if p := s.Progress(facts); p != 1 {
		t.Errorf("complete flow should report progress 1, got %v", p)
	}
	if len(s.VisibleAnswered(facts)) == 0 {
		t.Error("review list should not be empty on a complete flow")
	}
}

func TestPruneCascades(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)
	facts := domain.Facts{
		"deposit_taken":         true,
		"deposit_amount":        900.0,
		"deposit_protected":     true,
		"prescribed_info_given": true,
	}

	// Changing the root answer must sweep the whole dependent chain,
	// including prescribed_info_given which hangs off deposit_protected.
	facts["deposit_taken"] = false
	removed := s.Prune(facts)

	for _, id := range []string{"deposit_amount", "deposit_protected", "prescribed_info_given"} {
		if _, ok := facts[id]; ok {
			t.Errorf("%s should have been pruned", id)
		}
	}
	if len(removed) != 3 {
		t.Errorf("expected 3 pruned facts, got %v", removed)
	}
}

func TestQuestionIDsMatchRuleFactKeys(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)
	for _, key := range []string{
		"rent_amount", "rent_period", "deposit_taken", "deposit_amount",
		"deposit_protected", "prescribed_info_given", "eviction_reason",
		"arrears_months", "asb_conviction", "epc_given", "epc_exempt",
		"epc_rating", "has_gas_appliances", "gas_safety_given",
		"how_to_rent_given", "licence_required", "property_licensed",
		"notice_service_date", "tenancy_start_date", "fixed_term_end_date",
	} {
		if _, ok := s.Lookup(key); !ok {
			t.Errorf("rules engine fact key %q has no question", key)
		}
	}
}
