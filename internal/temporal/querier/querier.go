package querier

import (
	"context"
	"fmt"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/api/workflowservice/v1"
	"go.temporal.io/sdk/client"

	"github.com/landlord-heaven/wizard-go/internal/ratelimit"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/versioning"
	"github.com/landlord-heaven/wizard-go/internal/temporal/workflows"
)

// TemporalQuerier implements GenerationQuerier using a Temporal client.
type TemporalQuerier struct {
	client  client.Client
	limiter *ratelimit.ServiceLimiter
}

// New creates a TemporalQuerier. A nil limiter disables outbound rate
// limiting.
func New(c client.Client, limiter *ratelimit.ServiceLimiter) *TemporalQuerier {
	return &TemporalQuerier{client: c, limiter: limiter}
}

func (q *TemporalQuerier) wait(ctx context.Context) error {
	if q.limiter == nil {
		return nil
	}
	return q.limiter.Wait(ctx, "temporal")
}

// StartGeneration starts the generation workflow for a case. The workflow ID
// is derived from the case ID, so a repeat call while one is running dedupes
// onto the existing execution.
func (q *TemporalQuerier) StartGeneration(ctx context.Context, caseID string) (string, error) {
	if err := q.wait(ctx); err != nil {
		return "", err
	}
	run, err := q.client.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:        workflows.WorkflowID(caseID),
		TaskQueue: versioning.QueueGeneration,
	}, workflows.CaseGenerationWorkflow, workflows.WorkflowInput{CaseID: caseID})
	if err != nil {
		return "", fmt.Errorf("start generation: %w", err)
	}
	return run.GetID(), nil
}

// ListWorkflows lists workflow executions using Temporal's visibility API.
func (q *TemporalQuerier) ListWorkflows(ctx context.Context, opts ListOptions) ([]WorkflowSummary, error) {
	query := ""
	if opts.TaskQueue != "" {
		query = fmt.Sprintf("TaskQueue = %q", opts.TaskQueue)
	}
	if opts.StatusFilter != "" {
		if query != "" {
			query += " AND "
		}
		query += fmt.Sprintf("ExecutionStatus = %q", opts.StatusFilter)
	}

	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	resp, err := q.client.ListWorkflow(ctx, &workflowservice.ListWorkflowExecutionsRequest{
		Query:    query,
		PageSize: int32(pageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}

	var summaries []WorkflowSummary
	for _, exec := range resp.Executions {
		s := WorkflowSummary{
			WorkflowID: exec.Execution.WorkflowId,
			RunID:      exec.Execution.RunId,
			Status:     exec.Status.String(),
			StartTime:  exec.StartTime.AsTime(),
			TaskQueue:  exec.TaskQueue,
		}
		if exec.CloseTime != nil {
			s.CloseTime = exec.CloseTime.AsTime()
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}

// GetGenerationState returns the current generation result for a case.
// For completed workflows, extracts the result directly.
// For running workflows, uses the Query handler.
func (q *TemporalQuerier) GetGenerationState(ctx context.Context, caseID string) (*workflows.WorkflowResult, error) {
	workflowID := workflows.WorkflowID(caseID)
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	desc, err := q.client.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return nil, fmt.Errorf("describe workflow: %w", err)
	}

	status := desc.WorkflowExecutionInfo.Status
	if status == enumspb.WORKFLOW_EXECUTION_STATUS_COMPLETED {
		run := q.client.GetWorkflow(ctx, workflowID, "")
		var result workflows.WorkflowResult
		if err := run.Get(ctx, &result); err != nil {
			return nil, fmt.Errorf("get workflow result: %w", err)
		}
		return &result, nil
	}

	if status == enumspb.WORKFLOW_EXECUTION_STATUS_RUNNING {
		resp, err := q.client.QueryWorkflow(ctx, workflowID, "", workflows.QueryNameState)
		if err != nil {
			return nil, fmt.Errorf("query workflow state: %w", err)
		}
		var result workflows.WorkflowResult
		if err := resp.Get(&result); err != nil {
			return nil, fmt.Errorf("decode query result: %w", err)
		}
		return &result, nil
	}

	return nil, fmt.Errorf("workflow %s has status %s, cannot read state", workflowID, status)
}

// DescribeWorkflow returns detailed information about a workflow execution.
func (q *TemporalQuerier) DescribeWorkflow(ctx context.Context, workflowID string) (*WorkflowDescription, error) {
	if err := q.wait(ctx); err != nil {
		return nil, err
	}
	desc, err := q.client.DescribeWorkflowExecution(ctx, workflowID, "")
	if err != nil {
		return nil, fmt.Errorf("describe workflow: %w", err)
	}

	info := desc.WorkflowExecutionInfo
	wd := &WorkflowDescription{
		WorkflowSummary: WorkflowSummary{
			WorkflowID: info.Execution.WorkflowId,
			RunID:      info.Execution.RunId,
			Status:     info.Status.String(),
			StartTime:  info.StartTime.AsTime(),
			TaskQueue:  info.TaskQueue,
		},
	}
	if info.CloseTime != nil {
		wd.CloseTime = info.CloseTime.AsTime()
	}
	return wd, nil
}

// SubmitReview sends a review decision Update to a running generation workflow.
func (q *TemporalQuerier) SubmitReview(ctx context.Context, caseID string, resp activities.ReviewResponse) (string, error) {
	if err := q.wait(ctx); err != nil {
		return "", err
	}
	handle, err := q.client.UpdateWorkflow(ctx, client.UpdateWorkflowOptions{
		WorkflowID:   workflows.WorkflowID(caseID),
		UpdateName:   workflows.UpdateNameReview,
		Args:         []any{resp},
		WaitForStage: client.WorkflowUpdateStageCompleted,
	})
	if err != nil {
		return "", fmt.Errorf("submit review: %w", err)
	}

	var result string
	if err := handle.Get(ctx, &result); err != nil {
		return "", fmt.Errorf("get review result: %w", err)
	}
	return result, nil
}
