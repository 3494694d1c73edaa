// Package flow holds the master question sets and the engine that walks
// them: conditional visibility, next-question selection, progress, and
// structural answer validation. Legal interpretation of the collected
// facts lives in internal/rules.
package flow

import (
	"fmt"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// Set is an ordered, validated question sequence for one case shape.
type Set struct {
	questions []domain.Question
	byID      map[string]domain.Question
}

// NewSet validates the sequence and indexes it. Dependencies must point
// backwards: a question may only depend on one asked earlier.
func NewSet(questions []domain.Question) (*Set, error) {
	s := &Set{
		questions: questions,
		byID:      make(map[string]domain.Question, len(questions)),
	}
	for i, q := range questions {
		if err := domain.ValidateQuestion(q); err != nil {
			return nil, fmt.Errorf("flow: question %d: %w", i, err)
		}
		if _, dup := s.byID[q.ID]; dup {
			return nil, fmt.Errorf("flow: duplicate question id %q", q.ID)
		}
		if q.DependsOn != nil {
			if _, ok := s.byID[q.DependsOn.QuestionID]; !ok {
				return nil, fmt.Errorf("flow: question %q depends on %q which is not asked before it",
					q.ID, q.DependsOn.QuestionID)
			}
		}
		s.byID[q.ID] = q
		for _, f := range q.Fields {
			if _, dup := s.byID[f.ID]; dup {
				return nil, fmt.Errorf("flow: duplicate question id %q", f.ID)
			}
			s.byID[f.ID] = f
		}
	}
	return s, nil
}

// Questions returns the full ordered sequence.
func (s *Set) Questions() []domain.Question {
	return s.questions
}

// Lookup returns a question (or group field) by ID.
func (s *Set) Lookup(id string) (domain.Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// Visible reports whether a question should be shown given the facts
// collected so far. A question with no dependency is always visible; a
// dependent question is visible iff the referenced answer equals, or for
// array answers contains, one of the dependency values.
func (s *Set) Visible(q domain.Question, facts domain.Facts) bool {
	if q.DependsOn == nil {
		return true
	}
	answer, ok := facts[q.DependsOn.QuestionID]
	if !ok {
		return false
	}
	for _, v := range q.DependsOn.Values {
		if domain.AnswerEquals(answer, v) {
			return true
		}
	}
	return false
}

// answered reports whether the facts hold an answer for q. Info questions
// are acknowledged rather than answered, and count once any later fact
// exists; group questions are answered when every required field is.
func (s *Set) answered(q domain.Question, facts domain.Facts) bool {
	if q.InputType == domain.InputGroup {
		for _, f := range q.Fields {
			if _, ok := facts[f.ID]; !ok && f.Validation.Required {
				return false
			}
		}
		return true
	}
	_, ok := facts[q.ID]
	return ok
}

// NextQuestion returns the first visible unanswered question, or nil when
// the flow is complete. Info and upload questions count as answered once
// acknowledged with any value.
func (s *Set) NextQuestion(facts domain.Facts) *domain.Question {
	for i := range s.questions {
		q := s.questions[i]
		if !s.Visible(q, facts) {
			continue
		}
		if !s.answered(q, facts) {
			return &q
		}
	}
	return nil
}

// Progress returns answered-over-visible in [0, 1]. Hidden questions
// never count against the denominator, so the raw ratio can dip when an
// answer reveals a branch; Session clamps the user-facing value.
func (s *Set) Progress(facts domain.Facts) float64 {
	visible, answered := 0, 0
	for _, q := range s.questions {
		if !s.Visible(q, facts) {
			continue
		}
		visible++
		if s.answered(q, facts) {
			answered++
		}
	}
	if visible == 0 {
		return 1
	}
	return float64(answered) / float64(visible)
}

// IsComplete reports whether every visible question is answered.
func (s *Set) IsComplete(facts domain.Facts) bool {
	return s.NextQuestion(facts) == nil
}

// VisibleAnswered returns the visible questions that already have answers,
// in ask order. The review screen iterates this.
func (s *Set) VisibleAnswered(facts domain.Facts) []domain.Question {
	var out []domain.Question
	for _, q := range s.questions {
		if s.Visible(q, facts) && s.answered(q, facts) {
			out = append(out, q)
		}
	}
	return out
}

// Prune removes facts belonging to questions that are no longer visible
// after an answer changed. Runs to a fixed point so cascading branches
// collapse in one call. Returns the IDs removed.
func (s *Set) Prune(facts domain.Facts) []string {
	var removed []string
	for {
		n := len(removed)
		for _, q := range s.questions {
			if s.Visible(q, facts) {
				continue
			}
			ids := []string{q.ID}
			for _, f := range q.Fields {
				ids = append(ids, f.ID)
			}
			for _, id := range ids {
				if _, ok := facts[id]; ok {
					delete(facts, id)
					removed = append(removed, id)
				}
			}
		}
		if len(removed) == n {
			return removed
		}
	}
}
