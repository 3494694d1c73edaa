package flow

import (
	"errors"
	"testing"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

func TestValidateAnswer(t *testing.T) {
	t.Parallel()
	min, max := 1.0, 100.0
	tests := []struct {
		name     string
		question domain.Question
		answer   any
		wantErr  bool
	}{
		{
			name:     "yes_no bool",
			question: domain.Question{ID: "q", InputType: domain.InputYesNo},
			answer:   true,
		},
		{
			name:     "yes_no string",
			question: domain.Question{ID: "q", InputType: domain.InputYesNo},
			answer:   "no",
		},
		{
			name:     "yes_no junk",
			question: domain.Question{ID: "q", InputType: domain.InputYesNo},
			answer:   "maybe",
			wantErr:  true,
		},
		{
			name: "select valid option",
			question: domain.Question{ID: "q", InputType: domain.InputSelect,
				Options: []domain.Option{{Value: "a", Label: "A"}}},
			answer: "a",
		},
		{
			name: "select unknown option",
			question: domain.Question{ID: "q", InputType: domain.InputSelect,
				Options: []domain.Option{{Value: "a", Label: "A"}}},
			answer:  "z",
			wantErr: true,
		},
		{
			name: "multi_select containment",
			question: domain.Question{ID: "q", InputType: domain.InputMultiSelect,
				Options: []domain.Option{{Value: "a", Label: "A"}, {Value: "b", Label: "B"}}},
			answer: []any{"a", "b"},
		},
		{
			name: "multi_select required empty",
			question: domain.Question{ID: "q", InputType: domain.InputMultiSelect,
				Options:    []domain.Option{{Value: "a", Label: "A"}},
				Validation: domain.Validation{Required: true}},
			answer:  []any{},
			wantErr: true,
		},
		{
			name: "currency within bounds",
			question: domain.Question{ID: "q", InputType: domain.InputCurrency,
				Validation: domain.Validation{Min: &min, Max: &max}},
			answer: 50.0,
		},
		{
			name: "currency below min",
			question: domain.Question{ID: "q", InputType: domain.InputCurrency,
				Validation: domain.Validation{Min: &min}},
			answer:  0.5,
			wantErr: true,
		},
		{
			name:     "currency not a number",
			question: domain.Question{ID: "q", InputType: domain.InputCurrency},
			answer:   "lots",
			wantErr:  true,
		},
		{
			name:     "date valid",
			question: domain.Question{ID: "q", InputType: domain.InputDate},
			answer:   "2026-03-01",
		},
		{
			name:     "date wrong format",
			question: domain.Question{ID: "q", InputType: domain.InputDate},
			answer:   "01/03/2026",
			wantErr:  true,
		},
		{
			name: "textarea required empty",
			question: domain.Question{ID: "q", InputType: domain.InputTextarea,
				Validation: domain.Validation{Required: true}},
			answer:  "",
			wantErr: true,
		},
		{
			name:     "nil optional",
			question: domain.Question{ID: "q", InputType: domain.InputTextarea},
			answer:   nil,
		},
		{
			name: "nil required",
			question: domain.Question{ID: "q", InputType: domain.InputTextarea,
				Validation: domain.Validation{Required: true}},
			answer:  nil,
			wantErr: true,
		},
		{
			name:     "upload list",
			question: domain.Question{ID: "q", InputType: domain.InputUpload},
			answer:   []any{"file-1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateAnswer(tt.question, tt.answer)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAnswer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var ae *AnswerError
				if !errors.As(err, &ae) {
					t.Errorf("expected *AnswerError, got %T", err)
				}
			}
		})
	}
}

func TestValidateAnswerGroup(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)
	rent, _ := s.Lookup("rent_details")

	if err := ValidateAnswer(rent, map[string]any{
		"rent_amount": 950.0,
		"rent_period": "monthly",
	}); err != nil {
		t.Fatalf("valid group rejected: %v", err)
	}

	err := ValidateAnswer(rent, map[string]any{"rent_period": "monthly"})
	var ae *AnswerError
	if !errors.As(err, &ae) || ae.QuestionID != "rent_amount" {
		t.Errorf("expected rent_amount required error, got %v", err)
	}

	if err := ValidateAnswer(rent, map[string]any{
		"rent_amount": 950.0,
		"rent_period": "monthly",
		"surprise":    true,
	}); err == nil {
		t.Error("unknown group field should be rejected")
	}
}

func TestApplyAnswer(t *testing.T) {
	t.Parallel()
	s := mustSet(t, domain.CaseEviction, domain.JurisdictionEngland)
	facts := domain.Facts{}

	if err := s.ApplyAnswer(facts, "deposit_taken", "yes"); err != nil {
		t.Fatalf("ApplyAnswer: %v", err)
	}
	if err := s.ApplyAnswer(facts, "deposit_amount", 1100.0); err != nil {
		t.Fatalf("ApplyAnswer: %v", err)
	}

	// Group answers flatten into per-field facts.
	if err := s.ApplyAnswer(facts, "rent_details", map[string]any{
		"rent_amount": 950.0,
		"rent_period": "monthly",
	}); err != nil {
		t.Fatalf("ApplyAnswer group: %v", err)
	}
	if facts["rent_amount"] != 950.0 || facts["rent_period"] != "monthly" {
		t.Errorf("group answer not flattened: %+v", facts)
	}

	// Flipping the branch prunes the dependent answer.
	if err := s.ApplyAnswer(facts, "deposit_taken", "no"); err != nil {
		t.Fatalf("ApplyAnswer: %v", err)
	}
	if _, ok := facts["deposit_amount"]; ok {
		t.Error("deposit_amount should be pruned after deposit_taken flips to no")
	}

	if err := s.ApplyAnswer(facts, "deposit_amount", 500.0); err == nil {
		t.Error("answering a hidden question must fail")
	}
	if err := s.ApplyAnswer(facts, "nope", "x"); err == nil {
		t.Error("answering an unknown question must fail")
	}
}
