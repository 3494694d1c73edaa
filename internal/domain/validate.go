package domain

import "fmt"

// ValidateCase checks required fields on a Case.
func ValidateCase(c Case) error {
	if c.CaseID == "" {
		return fmt.Errorf("case_id is required")
	}
	if !c.CaseType.Valid() {
		return fmt.Errorf("invalid case_type: %q", c.CaseType)
	}
	if !c.Jurisdiction.Valid() {
		return fmt.Errorf("invalid jurisdiction: %q", c.Jurisdiction)
	}
	if !c.Product.Valid() {
		return fmt.Errorf("invalid product: %q", c.Product)
	}
	if !c.Status.Valid() {
		return fmt.Errorf("invalid status: %q", c.Status)
	}
	if ProductCaseType[c.Product] != c.CaseType {
		return fmt.Errorf("product %q does not produce case type %q", c.Product, c.CaseType)
	}
	return nil
}

// ValidateQuestion checks a Question definition, recursing into group fields.
func ValidateQuestion(q Question) error {
	if q.ID == "" {
		return fmt.Errorf("question id is required")
	}
	if !q.InputType.Valid() {
		return fmt.Errorf("question %s: invalid input_type: %q", q.ID, q.InputType)
	}
	switch q.InputType {
	case InputSelect, InputRadio, InputMultiSelect:
		if len(q.Options) == 0 {
			return fmt.Errorf("question %s: %s requires options", q.ID, q.InputType)
		}
	case InputGroup:
		if len(q.Fields) == 0 {
			return fmt.Errorf("question %s: group requires fields", q.ID)
		}
		for _, f := range q.Fields {
			if f.InputType == InputGroup {
				return fmt.Errorf("question %s: nested groups are not supported", q.ID)
			}
			if err := ValidateQuestion(f); err != nil {
				return fmt.Errorf("question %s: %w", q.ID, err)
			}
		}
	}
	if q.DependsOn != nil {
		if q.DependsOn.QuestionID == "" {
			return fmt.Errorf("question %s: depends_on question_id is required", q.ID)
		}
		if len(q.DependsOn.Values) == 0 {
			return fmt.Errorf("question %s: depends_on values are required", q.ID)
		}
	}
	return nil
}

// ValidateIssue checks required fields on a ValidationIssue.
func ValidateIssue(i ValidationIssue) error {
	if i.Code == "" {
		return fmt.Errorf("issue code is required")
	}
	if !i.Severity.Valid() {
		return fmt.Errorf("invalid severity: %q", i.Severity)
	}
	if i.LegalReason == "" {
		return fmt.Errorf("legal_reason is required")
	}
	return nil
}

// ValidateGenerationState checks required fields on a GenerationState.
func ValidateGenerationState(s GenerationState) error {
	if s.GenerationID == "" {
		return fmt.Errorf("generation_id is required")
	}
	if err := ValidateCase(s.Case); err != nil {
		return fmt.Errorf("case: %w", err)
	}
	if !s.Review.Valid() {
		return fmt.Errorf("invalid review status: %q", s.Review)
	}
	return nil
}
