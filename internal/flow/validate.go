package flow

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// AnswerError is a structural validation failure on a submitted answer.
// It maps to a 422 with code ANSWER_INVALID; it is not a legal issue.
type AnswerError struct {
	QuestionID string `json:"question_id"`
	Reason     string `json:"reason"`
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("answer to %s invalid: %s", e.QuestionID, e.Reason)
}

func answerErr(questionID, format string, args ...any) *AnswerError {
	return &AnswerError{QuestionID: questionID, Reason: fmt.Sprintf(format, args...)}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func optionValues(q domain.Question) map[string]bool {
	vals := make(map[string]bool, len(q.Options))
	for _, o := range q.Options {
		vals[o.Value] = true
	}
	return vals
}

// ValidateAnswer checks a submitted answer against the question's input
// type and constraints. Group answers must be objects keyed by field ID
// and are validated field by field.
func ValidateAnswer(q domain.Question, answer any) error {
	if answer == nil {
		if q.Validation.Required {
			return answerErr(q.ID, "an answer is required")
		}
		return nil
	}

	switch q.InputType {
	case domain.InputInfo:
		// Acknowledgement only; any value marks it seen.
		return nil

	case domain.InputYesNo:
		switch v := answer.(type) {
		case bool:
			return nil
		case string:
			if v == "yes" || v == "no" {
				return nil
			}
			return answerErr(q.ID, "expected yes or no, got %q", v)
		}
		return answerErr(q.ID, "expected a yes/no answer")

	case domain.InputSelect, domain.InputRadio:
		s, ok := answer.(string)
		if !ok {
			return answerErr(q.ID, "expected a single option value")
		}
		if !optionValues(q)[s] {
			return answerErr(q.ID, "%q is not one of the offered options", s)
		}
		return nil

	case domain.InputMultiSelect:
		var items []string
		switch v := answer.(type) {
		case []string:
			items = v
		case []any:
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return answerErr(q.ID, "expected option values")
				}
				items = append(items, s)
			}
		default:
			return answerErr(q.ID, "expected a list of option values")
		}
		if q.Validation.Required && len(items) == 0 {
			return answerErr(q.ID, "select at least one option")
		}
		valid := optionValues(q)
		for _, s := range items {
			if !valid[s] {
				return answerErr(q.ID, "%q is not one of the offered options", s)
			}
		}
		return nil

	case domain.InputCurrency:
		n, ok := asNumber(answer)
		if !ok {
			return answerErr(q.ID, "expected a number")
		}
		if q.Validation.Min != nil && n < *q.Validation.Min {
			return answerErr(q.ID, "must be at least %g", *q.Validation.Min)
		}
		if q.Validation.Max != nil && n > *q.Validation.Max {
			return answerErr(q.ID, "must be at most %g", *q.Validation.Max)
		}
		return nil

	case domain.InputDate:
		s, ok := answer.(string)
		if !ok {
			return answerErr(q.ID, "expected a date string")
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return answerErr(q.ID, "dates use YYYY-MM-DD, got %q", s)
		}
		return nil

	case domain.InputTextarea:
		s, ok := answer.(string)
		if !ok {
			return answerErr(q.ID, "expected text")
		}
		if q.Validation.Required && s == "" {
			return answerErr(q.ID, "an answer is required")
		}
		if q.Validation.Pattern != "" {
			re, err := regexp.Compile(q.Validation.Pattern)
			if err == nil && !re.MatchString(s) {
				return answerErr(q.ID, "does not match the expected format")
			}
		}
		return nil

	case domain.InputUpload:
		// Uploads flow through the evidence endpoint; an answer here is
		// just the list of file IDs already uploaded.
		switch answer.(type) {
		case []any, []string:
			return nil
		}
		return answerErr(q.ID, "expected a list of uploaded file IDs")

	case domain.InputGroup:
		obj, ok := answer.(map[string]any)
		if !ok {
			return answerErr(q.ID, "expected an object keyed by field id")
		}
		for _, f := range q.Fields {
			v, present := obj[f.ID]
			if !present {
				if f.Validation.Required {
					return answerErr(f.ID, "an answer is required")
				}
				continue
			}
			if err := ValidateAnswer(f, v); err != nil {
				return err
			}
		}
		for k := range obj {
			known := false
			for _, f := range q.Fields {
				if f.ID == k {
					known = true
					break
				}
			}
			if !known {
				return answerErr(q.ID, "unknown field %q", k)
			}
		}
		return nil
	}
	return answerErr(q.ID, "unsupported input type %q", q.InputType)
}

// ApplyAnswer validates the answer, freezes it into the facts, and prunes
// facts hidden by the change. Group answers are flattened into per-field
// facts so the rules engine can read them directly.
func (s *Set) ApplyAnswer(facts domain.Facts, questionID string, answer any) error {
	q, ok := s.Lookup(questionID)
	if !ok {
		return answerErr(questionID, "unknown question")
	}
	if !s.Visible(q, facts) {
		return answerErr(questionID, "question is not currently visible")
	}
	if err := ValidateAnswer(q, answer); err != nil {
		return err
	}
	if q.InputType == domain.InputGroup {
		obj, _ := answer.(map[string]any)
		for _, f := range q.Fields {
			if v, present := obj[f.ID]; present {
				facts[f.ID] = v
			}
		}
	} else {
		facts[questionID] = answer
	}
	s.Prune(facts)
	return nil
}
