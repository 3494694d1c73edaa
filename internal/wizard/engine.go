// Package wizard orchestrates the question flow and legal rules into the
// case intake engine behind /api/wizard/*, plus the explicit session
// state machine clients drive.
package wizard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/flow"
	"github.com/landlord-heaven/wizard-go/internal/rules"
)

// CaseStore persists cases. internal/store provides the SQLite
// implementation; tests use an in-memory one.
type CaseStore interface {
	CreateCase(ctx context.Context, c domain.Case) error
	GetCase(ctx context.Context, caseID string) (domain.Case, error)
	UpdateCase(ctx context.Context, c domain.Case) error
	AddEvidence(ctx context.Context, f domain.EvidenceFile) error
}

// EvidenceStore holds uploaded evidence bytes. internal/evidence provides
// S3 and stub filesystem implementations.
type EvidenceStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64) error
}

// Engine is the server-side wizard: it owns question selection, answer
// freezing and rule evaluation for every case.
type Engine struct {
	store    CaseStore
	evidence EvidenceStore
	logger   *slog.Logger
}

func NewEngine(store CaseStore, evidence EvidenceStore, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{store: store, evidence: evidence, logger: logger}
}

func (e *Engine) setFor(c domain.Case) (*flow.Set, error) {
	return flow.ForCase(c.CaseType, c.Jurisdiction)
}

// StartCase creates a draft case and returns it with its first question.
func (e *Engine) StartCase(ctx context.Context, product domain.Product, jurisdiction domain.Jurisdiction) (domain.Case, *domain.Question, error) {
	c, err := domain.NewCase(product, jurisdiction)
	if err != nil {
		return domain.Case{}, nil, fmt.Errorf("wizard: start case: %w", err)
	}
	set, err := e.setFor(c)
	if err != nil {
		return domain.Case{}, nil, fmt.Errorf("wizard: start case: %w", err)
	}
	if err := e.store.CreateCase(ctx, c); err != nil {
		return domain.Case{}, nil, fmt.Errorf("wizard: create case: %w", err)
	}
	e.logger.InfoContext(ctx, "case started",
		"case_id", c.CaseID, "product", c.Product, "jurisdiction", c.Jurisdiction)
	return c, set.NextQuestion(c.CollectedFacts), nil
}

// NextResult is the /api/wizard/next-question response.
type NextResult struct {
	IsComplete   bool             `json:"is_complete"`
	NextQuestion *domain.Question `json:"next_question,omitempty"`
	Progress     float64          `json:"progress"`
}

// NextQuestion returns the next unanswered visible question. With
// includeAnswered the review screen walks already-answered questions
// instead; currentQuestionID scopes the walk to questions after it.
func (e *Engine) NextQuestion(ctx context.Context, caseID string, includeAnswered bool, currentQuestionID string) (NextResult, error) {
	c, err := e.store.GetCase(ctx, caseID)
	if err != nil {
		return NextResult{}, fmt.Errorf("wizard: next question: %w", err)
	}
	set, err := e.setFor(c)
	if err != nil {
		return NextResult{}, err
	}
	res := NextResult{Progress: set.Progress(c.CollectedFacts)}
	if includeAnswered {
		answered := set.VisibleAnswered(c.CollectedFacts)
		past := currentQuestionID == ""
		for i := range answered {
			if past {
				res.NextQuestion = &answered[i]
				return res, nil
			}
			if answered[i].ID == currentQuestionID {
				past = true
			}
		}
	}
	res.NextQuestion = set.NextQuestion(c.CollectedFacts)
	res.IsComplete = res.NextQuestion == nil
	return res, nil
}

// SubmitAnswer validates and freezes one answer, then evaluates the legal
// rules against the updated facts. Structural failures reject the answer;
// compliance failures persist it and come back as a *ComplianceError
// alongside a usable outcome.
func (e *Engine) SubmitAnswer(ctx context.Context, caseID, questionID string, answer any) (domain.AnswerOutcome, error) {
	c, err := e.store.GetCase(ctx, caseID)
	if err != nil {
		return domain.AnswerOutcome{}, fmt.Errorf("wizard: answer: %w", err)
	}
	set, err := e.setFor(c)
	if err != nil {
		return domain.AnswerOutcome{}, err
	}
	if err := set.ApplyAnswer(c.CollectedFacts, questionID, answer); err != nil {
		return domain.AnswerOutcome{}, err
	}
	if set.IsComplete(c.CollectedFacts) {
		c.Status = domain.StatusComplete
	} else {
		c.Status = domain.StatusDraft
	}
	if err := e.store.UpdateCase(ctx, c); err != nil {
		return domain.AnswerOutcome{}, fmt.Errorf("wizard: persist answer: %w", err)
	}

	outcome := e.buildOutcome(c, set, questionID)
	e.logger.DebugContext(ctx, "answer frozen",
		"case_id", c.CaseID, "question_id", questionID, "progress", outcome.Progress)

	if failures := complianceFailures(outcome, questionID); len(failures) > 0 {
		return outcome, &ComplianceError{
			Code:     "NOTICE_NONCOMPLIANT",
			Failures: failures,
			Warnings: outcome.PreviewWarnings,
		}
	}
	return outcome, nil
}

// complianceFailures selects the blocking issues that should surface as a
// 422 rather than a client-side gate. The deposit cap stays client-side
// (it gates Next); service prerequisite failures are server compliance.
func complianceFailures(outcome domain.AnswerOutcome, questionID string) []domain.ValidationIssue {
	var out []domain.ValidationIssue
	for _, i := range outcome.PreviewBlockingIssues {
		if i.Code == "DEPOSIT_OVER_CAP" {
			continue
		}
		if i.QuestionID == questionID {
			out = append(out, i)
		}
	}
	return out
}

func (e *Engine) buildOutcome(c domain.Case, set *flow.Set, questionID string) domain.AnswerOutcome {
	facts := c.CollectedFacts
	blocking, warnings := rules.Evaluate(facts, c.CaseType, c.Jurisdiction)

	outcome := domain.AnswerOutcome{
		Progress:              set.Progress(facts),
		IsComplete:            set.IsComplete(facts),
		PreviewBlockingIssues: blocking,
		PreviewWarnings:       warnings,
		SuggestedWording:      suggestedWording(questionID, facts),
	}

	if c.CaseType == domain.CaseEviction {
		if _, ok := facts["eviction_reason"]; ok {
			rec := rules.RecommendRoute(facts, c.Jurisdiction)
			outcome.RouteRecommendation = &rec
			outcome.GroundRecommendations = rules.RecommendGrounds(facts, c.Jurisdiction)
			outcome.StepFlags = stepFlags(rec)

			if _, ok := facts["notice_service_date"]; ok {
				if nd, err := rules.CalculateNoticeDate(facts, rec.RecommendedRoute,
					recommendedCodes(outcome.GroundRecommendations), c.Jurisdiction); err == nil {
					outcome.CalculatedDate = &nd
				}
			}
		}
	}
	return outcome
}

func recommendedCodes(recs []domain.GroundRecommendation) []string {
	var codes []string
	for _, r := range recs {
		if r.Recommended {
			codes = append(codes, r.Ground.Code)
		}
	}
	return codes
}

func stepFlags(rec domain.RouteRecommendation) map[string]bool {
	return map[string]bool{
		"section_21_clear": rec.RecommendedRoute == domain.RouteSection21 && len(rec.BlockingIssues) == 0,
		"fault_route":      rec.RecommendedRoute == domain.RouteSection8,
	}
}

// suggestedWording offers formal phrasing for free-text answers the
// documents will quote.
func suggestedWording(questionID string, facts domain.Facts) string {
	if questionID != "breach_description" {
		return ""
	}
	raw, _ := facts["breach_description"].(string)
	if raw == "" {
		return ""
	}
	return fmt.Sprintf("The tenant has breached the terms of the tenancy agreement, in that %s.",
		strings.TrimRight(strings.ToLower(raw[:1])+raw[1:], "."))
}

// Checkpoint returns the live blocking/warning snapshot for a case.
func (e *Engine) Checkpoint(ctx context.Context, caseID string) (domain.Checkpoint, error) {
	c, err := e.store.GetCase(ctx, caseID)
	if err != nil {
		return domain.Checkpoint{}, fmt.Errorf("wizard: checkpoint: %w", err)
	}
	set, err := e.setFor(c)
	if err != nil {
		return domain.Checkpoint{}, err
	}
	blocking, warnings := rules.Evaluate(c.CollectedFacts, c.CaseType, c.Jurisdiction)
	return domain.Checkpoint{
		CaseID:         c.CaseID,
		Progress:       set.Progress(c.CollectedFacts),
		IsComplete:     set.IsComplete(c.CollectedFacts),
		BlockingIssues: blocking,
		Warnings:       warnings,
	}, nil
}

// Analyze produces the case-strength summary for the review screen.
func (e *Engine) Analyze(ctx context.Context, caseID string) (domain.CaseAnalysis, error) {
	c, err := e.store.GetCase(ctx, caseID)
	if err != nil {
		return domain.CaseAnalysis{}, fmt.Errorf("wizard: analyze: %w", err)
	}
	return AnalyzeCase(c)
}

// AnalyzeCase is the analysis over a single case snapshot. The generation
// workflow runs it inside an activity: notice-date arithmetic falls back to
// the wall clock when no service date has been frozen.
func AnalyzeCase(c domain.Case) (domain.CaseAnalysis, error) {
	set, err := flow.ForCase(c.CaseType, c.Jurisdiction)
	if err != nil {
		return domain.CaseAnalysis{}, err
	}
	facts := c.CollectedFacts
	blocking, warnings := rules.Evaluate(facts, c.CaseType, c.Jurisdiction)

	analysis := domain.CaseAnalysis{
		CaseID:         c.CaseID,
		BlockingIssues: blocking,
		Warnings:       warnings,
	}
	switch {
	case len(blocking) > 0:
		analysis.Readiness = "blocked"
	case !set.IsComplete(facts):
		analysis.Readiness = "incomplete"
	default:
		analysis.Readiness = "ready"
	}

	if c.CaseType == domain.CaseEviction {
		rec := rules.RecommendRoute(facts, c.Jurisdiction)
		analysis.Route = &rec
		analysis.Grounds = rules.RecommendGrounds(facts, c.Jurisdiction)
		analysis.SuccessProbability = rec.SuccessProbability
		if nd, err := rules.CalculateNoticeDate(facts, rec.RecommendedRoute,
			recommendedCodes(analysis.Grounds), c.Jurisdiction); err == nil {
			analysis.NoticeDate = &nd
		}
	} else {
		analysis.SuccessProbability = 0.8
		if len(blocking) > 0 {
			analysis.SuccessProbability = 0.3
		}
	}
	analysis.StrengthNarrative = narrative(analysis)
	return analysis, nil
}

func narrative(a domain.CaseAnalysis) string {
	switch a.Readiness {
	case "blocked":
		return fmt.Sprintf("The case cannot proceed yet: %d issue(s) must be fixed first.", len(a.BlockingIssues))
	case "incomplete":
		return "More answers are needed before the case can be assessed."
	}
	if a.Route != nil {
		return fmt.Sprintf("The case is ready to proceed via %s. Estimated prospect of success: %.0f%%.",
			a.Route.RecommendedRoute, a.SuccessProbability*100)
	}
	return "The case is ready to proceed."
}

// Upload is one evidence file in an upload batch.
type Upload struct {
	Name       string
	QuestionID string
	Size       int64
	Body       io.Reader
}

// UploadEvidence stores one evidence file and records it on the case.
func (e *Engine) UploadEvidence(ctx context.Context, caseID string, up Upload) (domain.EvidenceFile, error) {
	c, err := e.store.GetCase(ctx, caseID)
	if err != nil {
		return domain.EvidenceFile{}, fmt.Errorf("wizard: upload: %w", err)
	}
	f := domain.NewEvidenceFile(c.CaseID, up.Name, up.Size)
	f.QuestionID = up.QuestionID
	if err := e.evidence.Put(ctx, f.Key, up.Body, up.Size); err != nil {
		return domain.EvidenceFile{}, fmt.Errorf("wizard: store evidence %s: %w", up.Name, err)
	}
	if err := e.store.AddEvidence(ctx, f); err != nil {
		return domain.EvidenceFile{}, fmt.Errorf("wizard: record evidence %s: %w", up.Name, err)
	}
	e.logger.InfoContext(ctx, "evidence uploaded",
		"case_id", caseID, "file_id", f.FileID, "name", f.Name, "size", f.Size)
	return f, nil
}

// GetCase returns the case snapshot.
func (e *Engine) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	return e.store.GetCase(ctx, caseID)
}
