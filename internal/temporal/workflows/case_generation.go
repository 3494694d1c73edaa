// Package workflows defines the Temporal workflow functions.
package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
)

// UpdateNameReview is the Temporal Update handler name for the premium
// human-review gate.
const UpdateNameReview = "review"

// QueryNameState is the query name for reading in-flight generation state.
const QueryNameState = "state"

// ReviewTimeout is how long the workflow waits for a solicitor review.
const ReviewTimeout = 72 * time.Hour

// TerminationReason describes why the workflow ended.
type TerminationReason string

const (
	ReasonCompleted         TerminationReason = "completed"
	ReasonCaseIncomplete    TerminationReason = "case_incomplete"
	ReasonComplianceBlocked TerminationReason = "compliance_blocked"
	ReasonReviewRejected    TerminationReason = "review_rejected"
	ReasonReviewTimedOut    TerminationReason = "review_timed_out"
	ReasonAnalyzeError      TerminationReason = "analyze_error"
	ReasonRenderError       TerminationReason = "render_error"
	ReasonStoreError        TerminationReason = "store_error"
	ReasonDeliverError      TerminationReason = "deliver_error"
)

// WorkflowInput is the input to the case generation workflow.
type WorkflowInput struct {
	CaseID string `json:"case_id"`
}

// WorkflowResult is the output of the case generation workflow.
// The workflow returns this on all paths; only infra failures produce
// workflow-level errors.
type WorkflowResult struct {
	State  domain.GenerationState `json:"state"`
	Reason TerminationReason      `json:"reason"`
	Links  map[string]string      `json:"links,omitempty"`
}

// WorkflowID returns the deterministic workflow ID for a case, so a second
// generate request for the same case dedupes onto the running workflow.
func WorkflowID(caseID string) string {
	return "case-generation-" + caseID
}

// CaseGenerationWorkflow drives a completed case through analysis, document
// rendering, the premium review gate, storage and delivery:
//
//	analyze -> render -> review_gate -> store -> deliver -> END
//
// Each step may short-circuit to END via early returns. Analysis runs as an
// activity, not in-workflow: notice-date arithmetic reads the wall clock
// when no service date has been frozen into the facts.
func CaseGenerationWorkflow(ctx workflow.Context, input WorkflowInput) (WorkflowResult, error) {
	logger := workflow.GetLogger(ctx)

	// GenerationID and StartedAt must come from workflow-deterministic
	// sources, not uuid/time.Now.
	state := domain.GenerationState{
		GenerationID: workflow.GetInfo(ctx).WorkflowExecution.RunID,
		StartedAt:    workflow.Now(ctx).UTC().Format(time.RFC3339),
		Review:       domain.ReviewPending,
		CurrentPhase: "validate",
	}

	if err := workflow.SetQueryHandler(ctx, QueryNameState, func() (WorkflowResult, error) {
		return WorkflowResult{State: state}, nil
	}); err != nil {
		return WorkflowResult{}, fmt.Errorf("register state query: %w", err)
	}

	// Activity options: generous timeout, no retry by default (a failed
	// render should surface, not loop).
	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 1,
		},
	}
	actCtx := workflow.WithActivityOptions(ctx, actOpts)

	fail := func(reason TerminationReason, msg string) (WorkflowResult, error) {
		state.Error = &msg
		state.ShouldTerminate = true
		checkpoint(actCtx, state)
		setStatus(actCtx, input.CaseID, domain.StatusFailed)
		return WorkflowResult{State: state, Reason: reason}, nil
	}

	setStatus(actCtx, input.CaseID, domain.StatusGenerating)

	// ------------------------------------------------------------------
	// Analyze: load the case and run the full legal analysis
	// ------------------------------------------------------------------
	state.CurrentPhase = "analyze"
	var analyzeOut activities.AnalyzeOutput
	err := workflow.ExecuteActivity(actCtx, "AnalyzeCase", activities.AnalyzeInput{
		CaseID: input.CaseID,
	}).Get(ctx, &analyzeOut)
	if err != nil {
		return fail(ReasonAnalyzeError, fmt.Sprintf("analysis failed: %v", err))
	}
	state.Case = analyzeOut.Case
	state.Analysis = &analyzeOut.Analysis
	logger.Info("analysis complete",
		"case_id", input.CaseID,
		"readiness", analyzeOut.Analysis.Readiness,
		"blocking", len(analyzeOut.Analysis.BlockingIssues))

	// Hard gate: documents are never generated over blocking issues or a
	// half-answered question set, even if the API check was raced.
	switch analyzeOut.Analysis.Readiness {
	case "blocked":
		return fail(ReasonComplianceBlocked, "case has blocking compliance issues")
	case "incomplete":
		return fail(ReasonCaseIncomplete, "case has unanswered questions")
	}

	// ------------------------------------------------------------------
	// Render: produce the document set for the product
	// ------------------------------------------------------------------
	state.CurrentPhase = "render"
	var renderOut activities.RenderOutput
	err = workflow.ExecuteActivity(actCtx, "RenderDocuments", activities.RenderInput{
		Case:     analyzeOut.Case,
		Analysis: analyzeOut.Analysis,
	}).Get(ctx, &renderOut)
	if err != nil {
		return fail(ReasonRenderError, fmt.Sprintf("render failed: %v", err))
	}
	state.Documents = renderOut.Documents
	logger.Info("render complete", "case_id", input.CaseID, "documents", len(renderOut.Documents))

	// ------------------------------------------------------------------
	// Review gate: premium cases wait for a solicitor sign-off
	// ------------------------------------------------------------------
	state.CurrentPhase = "review"
	if analyzeOut.Case.Product == domain.ProductASTPremium {
		checkpoint(actCtx, state)
		setStatus(actCtx, input.CaseID, domain.StatusReview)

		review, details, err := waitForReview(ctx)
		if err != nil {
			return WorkflowResult{}, fmt.Errorf("review gate: %w", err)
		}
		state.Review = review
		state.ReviewDetails = details

		switch review {
		case domain.ReviewRejected:
			return fail(ReasonReviewRejected, "review rejected: "+details)
		case domain.ReviewTimedOut:
			return fail(ReasonReviewTimedOut, "review not received within 72h")
		}
	} else {
		state.Review = domain.ReviewSkipped
	}

	// ------------------------------------------------------------------
	// Store: write bodies to object storage, record metadata
	// ------------------------------------------------------------------
	state.CurrentPhase = "store"
	var storeOut activities.StoreOutput
	err = workflow.ExecuteActivity(actCtx, "StoreDocuments", activities.StoreInput{
		Documents: state.Documents,
	}).Get(ctx, &storeOut)
	if err != nil {
		return fail(ReasonStoreError, fmt.Sprintf("store failed: %v", err))
	}
	state.Documents = storeOut.Documents

	// ------------------------------------------------------------------
	// Deliver: presign download links
	// ------------------------------------------------------------------
	state.CurrentPhase = "deliver"
	var deliverOut activities.DeliverOutput
	err = workflow.ExecuteActivity(actCtx, "DeliverDocuments", activities.DeliverInput{
		Documents: state.Documents,
	}).Get(ctx, &deliverOut)
	if err != nil {
		return fail(ReasonDeliverError, fmt.Sprintf("deliver failed: %v", err))
	}

	state.CurrentPhase = "completed"
	state.ShouldTerminate = true
	checkpoint(actCtx, state)
	setStatus(actCtx, input.CaseID, domain.StatusDelivered)
	logger.Info("generation complete", "case_id", input.CaseID, "documents", len(state.Documents))

	return WorkflowResult{State: state, Reason: ReasonCompleted, Links: deliverOut.Links}, nil
}

// checkpoint persists the generation state for the preview UI. Best-effort:
// a failed checkpoint must not kill a generation that is otherwise healthy.
func checkpoint(ctx workflow.Context, state domain.GenerationState) {
	err := workflow.ExecuteActivity(ctx, "PersistGenerationState", activities.PersistStateInput{
		State: state,
	}).Get(ctx, nil)
	if err != nil {
		workflow.GetLogger(ctx).Warn("checkpoint failed", "generation_id", state.GenerationID, "error", err)
	}
}

// setStatus moves the case between statuses. Best-effort, same as checkpoint.
func setStatus(ctx workflow.Context, caseID string, status domain.CaseStatus) {
	err := workflow.ExecuteActivity(ctx, "SetCaseStatus", activities.SetStatusInput{
		CaseID: caseID,
		Status: status,
	}).Get(ctx, nil)
	if err != nil {
		workflow.GetLogger(ctx).Warn("status update failed", "case_id", caseID, "status", status, "error", err)
	}
}

// waitForReview registers a Temporal Update handler and waits for either a
// solicitor decision or the 72-hour timeout, whichever comes first.
func waitForReview(ctx workflow.Context) (domain.ReviewStatus, string, error) {
	logger := workflow.GetLogger(ctx)

	var result domain.ReviewStatus
	var details string
	responded := false

	err := workflow.SetUpdateHandlerWithOptions(
		ctx,
		UpdateNameReview,
		func(ctx workflow.Context, resp activities.ReviewResponse) (string, error) {
			if responded {
				return "", fmt.Errorf("review already received")
			}
			responded = true
			if resp.Approved {
				result = domain.ReviewApproved
				details = fmt.Sprintf("approved by %s", resp.By)
				logger.Info("review approved", "by", resp.By)
			} else {
				result = domain.ReviewRejected
				details = fmt.Sprintf("rejected by %s: %s", resp.By, resp.Reason)
				logger.Info("review rejected", "by", resp.By, "reason", resp.Reason)
			}
			return string(result), nil
		},
		workflow.UpdateHandlerOptions{
			Validator: func(resp activities.ReviewResponse) error {
				if resp.By == "" {
					return fmt.Errorf("review 'by' field is required")
				}
				if !resp.Approved && resp.Reason == "" {
					return fmt.Errorf("a rejection needs a reason")
				}
				if responded {
					return fmt.Errorf("review already received")
				}
				return nil
			},
		},
	)
	if err != nil {
		return "", "", fmt.Errorf("register review handler: %w", err)
	}

	// Race: review update vs 72h timeout. Await wakes on the handler
	// flipping `responded`; false means the window elapsed first.
	ok, err := workflow.AwaitWithTimeout(ctx, ReviewTimeout, func() bool { return responded })
	if err != nil {
		return "", "", fmt.Errorf("review wait: %w", err)
	}
	if !ok {
		result = domain.ReviewTimedOut
		logger.Info("review timed out after 72h")
	}

	return result, details, nil
}
