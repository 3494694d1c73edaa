package wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/flow"
)

// SessionState is one node of the wizard session machine.
type SessionState string

const (
	StateIntro    SessionState = "intro"
	StateLoading  SessionState = "loading"
	StateQuestion SessionState = "question"
	StateSaving   SessionState = "saving"
	StateComplete SessionState = "complete"
	StateFailed   SessionState = "failed"
)

// SessionService is what a session needs from the server. *Engine
// satisfies it in-process; an HTTP client satisfies it over the wire.
type SessionService interface {
	StartCase(ctx context.Context, product domain.Product, jurisdiction domain.Jurisdiction) (domain.Case, *domain.Question, error)
	SubmitAnswer(ctx context.Context, caseID, questionID string, answer any) (domain.AnswerOutcome, error)
	NextQuestion(ctx context.Context, caseID string, includeAnswered bool, currentQuestionID string) (NextResult, error)
	UploadEvidence(ctx context.Context, caseID string, up Upload) (domain.EvidenceFile, error)
	Analyze(ctx context.Context, caseID string) (domain.CaseAnalysis, error)
}

// HistoryEntry is one completed step, kept so Back can restore the
// question, its answer and any files uploaded alongside it exactly.
type HistoryEntry struct {
	Question domain.Question
	Answer   any
	Uploads  []domain.EvidenceFile
	Progress float64 // progress before this step was answered
}

// Session is the explicit client state machine over the wizard API.
// Transitions: intro → loading → question → saving → {question, complete,
// failed}. Back is a pure local history pop. Not safe for concurrent use;
// the double-submit guard covers re-entrant calls, not data races.
type Session struct {
	svc SessionService

	state    SessionState
	caseID   string
	current  *domain.Question
	restored any // answer restored by Back, nil otherwise

	history  []HistoryEntry
	progress float64

	pendingUploads []domain.EvidenceFile
	blocked        []domain.ValidationIssue
	warnings       []domain.ValidationIssue

	outcome  *domain.AnswerOutcome
	analysis *domain.CaseAnalysis
	err      error
}

func NewSession(svc SessionService) *Session {
	return &Session{svc: svc, state: StateIntro}
}

func (s *Session) State() SessionState { return s.state }
func (s *Session) CaseID() string { return s.caseID }
func (s *Session) Current() *domain.Question { return s.current }
func (s *Session) RestoredAnswer() any { return s.restored }
func (s *Session) Progress() float64 { return s.progress }
func (s *Session) Warnings() []domain.ValidationIssue { return s.warnings }
func (s *Session) Blocked() []domain.ValidationIssue { return s.blocked }
func (s *Session) LastOutcome() *domain.AnswerOutcome { return s.outcome }
func (s *Session) Analysis() *domain.CaseAnalysis { return s.analysis }
func (s *Session) Err() error { return s.err }
func (s *Session) History() []HistoryEntry { return s.history }
func (s *Session) PendingUploads() []domain.EvidenceFile { return s.pendingUploads }

func (s *Session) fail(err error) error {
	s.state = StateFailed
	s.err = err
	return err
}

// Start creates the case and loads the first question.
func (s *Session) Start(ctx context.Context, product domain.Product, jurisdiction domain.Jurisdiction) error {
	if s.state != StateIntro {
		return fmt.Errorf("wizard: start from state %q", s.state)
	}
	s.state = StateLoading
	c, first, err := s.svc.StartCase(ctx, product, jurisdiction)
	if err != nil {
		return s.fail(err)
	}
	s.caseID = c.CaseID
	s.current = first
	if first == nil {
		return s.complete(ctx)
	}
	s.state = StateQuestion
	return nil
}

// Submit freezes the current question's answer and advances. While a
// Submit is saving, further Submits return ErrSubmitInFlight: the first
// one wins and the session never double-freezes an answer.
func (s *Session) Submit(ctx context.Context, answer any) error {
	if s.state == StateSaving {
		return ErrSubmitInFlight
	}
	if s.state != StateQuestion || s.current == nil {
		return fmt.Errorf("wizard: submit from state %q", s.state)
	}
	question := *s.current
	progressBefore := s.progress

	s.state = StateSaving
	outcome, err := s.svc.SubmitAnswer(ctx, s.caseID, question.ID, answer)

	var compliance *ComplianceError
	switch {
	case err == nil:
	case errors.As(err, &compliance):
		// Non-blocking contract: the answer persisted server-side, the
		// failures become session warnings, and the flow advances.
		s.warnings = append(s.warnings, compliance.Failures...)
	default:
		var structural *flow.AnswerError
		if errors.As(err, &structural) {
			// Structural rejection: stay on the question for a retry.
			s.state = StateQuestion
			return err
		}
		return s.fail(err)
	}

	s.outcome = &outcome

	// The deposit cap gates Next client-side: hold the session on the
	// offending question until the user amends the answer.
	if gate := clientGate(outcome.PreviewBlockingIssues); len(gate) > 0 {
		s.blocked = gate
		s.state = StateQuestion
		return &BlockedError{Issues: gate}
	}
	s.blocked = nil

	s.history = append(s.history, HistoryEntry{
		Question: question,
		Answer:   answer,
		Uploads:  s.pendingUploads,
		Progress: progressBefore,
	})
	s.pendingUploads = nil
	s.restored = nil
	// A branching answer can reveal questions faster than it answers them,
	// shrinking the raw ratio. Forward steps clamp to the running maximum;
	// only Back lowers the displayed value.
	if outcome.Progress > s.progress {
		s.progress = outcome.Progress
	}

	if outcome.IsComplete {
		return s.complete(ctx)
	}
	next, err := s.svc.NextQuestion(ctx, s.caseID, false, "")
	if err != nil {
		return s.fail(err)
	}
	if next.IsComplete || next.NextQuestion == nil {
		return s.complete(ctx)
	}
	s.current = next.NextQuestion
	s.state = StateQuestion
	return nil
}

// clientGate returns the blocking issues that hold the session on its
// current question instead of surfacing as a 422.
func clientGate(issues []domain.ValidationIssue) []domain.ValidationIssue {
	var out []domain.ValidationIssue
	for _, i := range issues {
		if i.Code == "DEPOSIT_OVER_CAP" {
			out = append(out, i)
		}
	}
	return out
}

func (s *Session) complete(ctx context.Context) error {
	analysis, err := s.svc.Analyze(ctx, s.caseID)
	if err != nil {
		return s.fail(err)
	}
	s.analysis = &analysis
	s.current = nil
	s.state = StateComplete
	return nil
}

// Back pops the last step and restores its question, answer and uploads.
// Pure local operation, no server call, no-op at the start of history.
func (s *Session) Back() bool {
	if len(s.history) == 0 {
		return false
	}
	if s.state != StateQuestion && s.state != StateComplete {
		return false
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]
	s.current = &last.Question
	s.restored = last.Answer
	s.pendingUploads = last.Uploads
	s.progress = last.Progress
	s.blocked = nil
	s.state = StateQuestion
	return true
}

// UploadBatch uploads files sequentially. The first failure aborts the
// rest and is returned as the batch's single error; files already stored
// are kept on the server but the batch is not reported attached.
func (s *Session) UploadBatch(ctx context.Context, ups []Upload) ([]domain.EvidenceFile, error) {
	var done []domain.EvidenceFile
	for i, up := range ups {
		f, err := s.svc.UploadEvidence(ctx, s.caseID, up)
		if err != nil {
			return nil, fmt.Errorf("wizard: upload %d of %d (%s): %w", i+1, len(ups), up.Name, err)
		}
		done = append(done, f)
	}
	s.pendingUploads = append(s.pendingUploads, done...)
	return done, nil
}
