package querier

import (
	"context"

	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/workflows"
)

// GenerationQuerier provides read access to generation workflow state and
// the ability to submit reviews. Used by the HTTP API, the preview streamer,
// and the MCP server.
type GenerationQuerier interface {
	ListWorkflows(ctx context.Context, opts ListOptions) ([]WorkflowSummary, error)
	GetGenerationState(ctx context.Context, caseID string) (*workflows.WorkflowResult, error)
	DescribeWorkflow(ctx context.Context, workflowID string) (*WorkflowDescription, error)
	SubmitReview(ctx context.Context, caseID string, resp activities.ReviewResponse) (string, error)
}
