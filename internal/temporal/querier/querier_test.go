package querier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/temporal/workflows"
)

// mockQuerier implements GenerationQuerier for unit testing handlers/tools
// without a Temporal dependency.
type mockQuerier struct {
	workflows []querier.WorkflowSummary
	state     *workflows.WorkflowResult
	desc      *querier.WorkflowDescription
	review    string
	err       error
}

func (m *mockQuerier) ListWorkflows(_ context.Context, _ querier.ListOptions) ([]querier.WorkflowSummary, error) {
	return m.workflows, m.err
}

func (m *mockQuerier) GetGenerationState(_ context.Context, _ string) (*workflows.WorkflowResult, error) {
	return m.state, m.err
}

func (m *mockQuerier) DescribeWorkflow(_ context.Context, _ string) (*querier.WorkflowDescription, error) {
	return m.desc, m.err
}

func (m *mockQuerier) SubmitReview(_ context.Context, _ string, _ activities.ReviewResponse) (string, error) {
	return m.review, m.err
}

var _ querier.GenerationQuerier = (*mockQuerier)(nil)

func TestMockSatisfiesInterface(t *testing.T) {
	c, err := domain.NewCase(domain.ProductNoticeOnly, domain.JurisdictionEngland)
	require.NoError(t, err)

	m := &mockQuerier{
		state: &workflows.WorkflowResult{
			State:  domain.NewGenerationState(c),
			Reason: workflows.ReasonCompleted,
		},
	}

	ctx := context.Background()

	summaries, err := m.ListWorkflows(ctx, querier.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, summaries)

	result, err := m.GetGenerationState(ctx, c.CaseID)
	require.NoError(t, err)
	assert.Equal(t, workflows.ReasonCompleted, result.Reason)
	assert.Equal(t, c.CaseID, result.State.Case.CaseID)

	desc, err := m.DescribeWorkflow(ctx, "wf-1")
	require.NoError(t, err)
	assert.Nil(t, desc)
}

func TestListOptionsDefaults(t *testing.T) {
	opts := querier.ListOptions{}
	assert.Empty(t, opts.TaskQueue)
	assert.Empty(t, opts.StatusFilter)
	assert.Equal(t, 0, opts.PageSize)
}

func TestWorkflowSummaryFields(t *testing.T) {
	s := querier.WorkflowSummary{
		WorkflowID: workflows.WorkflowID("case-123"),
		RunID:      "run-1",
		Status:     "Running",
		TaskQueue:  "wizard-generation",
	}
	assert.Equal(t, "case-generation-case-123", s.WorkflowID)
	assert.Equal(t, "Running", s.Status)
}
