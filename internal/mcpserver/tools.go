// Package mcpserver exposes wizard case and generation data via MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/rules"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/temporal/versioning"
	"github.com/landlord-heaven/wizard-go/internal/uischema"
)

// RegisterTools registers all wizard MCP tools on the given server.
func RegisterTools(server *mcp.Server, q querier.GenerationQuerier) {
	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_generations",
			Description: "List recent document generation workflows with their status",
		},
		listGenerationsHandler(q),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_generation_state",
			Description: "Get the full generation state for a case: analysis, review, documents",
		},
		getGenerationStateHandler(q),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "get_generation_ui",
			Description: "Get UI schema (components + actions) for rendering a case's generation",
		},
		getGenerationUIHandler(q),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "approve_review",
			Description: "Approve the pending solicitor review on a premium case",
		},
		approveReviewHandler(q),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "reject_review",
			Description: "Reject the pending solicitor review on a premium case",
		},
		rejectReviewHandler(q),
	)

	mcp.AddTool(server,
		&mcp.Tool{
			Name:        "list_grounds",
			Description: "List the possession grounds for a jurisdiction with notice periods",
		},
		listGroundsHandler(),
	)
}

type listGenerationsInput struct {
	Status string `json:"status,omitempty"`
}

func listGenerationsHandler(q querier.GenerationQuerier) mcp.ToolHandlerFor[listGenerationsInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input listGenerationsInput) (*mcp.CallToolResult, any, error) {
		opts := querier.ListOptions{TaskQueue: versioning.QueueGeneration}
		if input.Status != "" {
			opts.StatusFilter = input.Status
		}

		workflows, err := q.ListWorkflows(ctx, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("list_generations: %w", err)
		}

		return textResult(workflows)
	}
}

type caseIDInput struct {
	CaseID string `json:"case_id"`
}

func getGenerationStateHandler(q querier.GenerationQuerier) mcp.ToolHandlerFor[caseIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input caseIDInput) (*mcp.CallToolResult, any, error) {
		if input.CaseID == "" {
			return errorResult("case_id is required"), nil, nil
		}

		result, err := q.GetGenerationState(ctx, input.CaseID)
		if err != nil {
			return nil, nil, fmt.Errorf("get_generation_state: %w", err)
		}

		return textResult(result)
	}
}

func getGenerationUIHandler(q querier.GenerationQuerier) mcp.ToolHandlerFor[caseIDInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input caseIDInput) (*mcp.CallToolResult, any, error) {
		if input.CaseID == "" {
			return errorResult("case_id is required"), nil, nil
		}

		result, err := q.GetGenerationState(ctx, input.CaseID)
		if err != nil {
			return nil, nil, fmt.Errorf("get_generation_ui: %w", err)
		}

		schema := uischema.Build(result.State)
		return textResult(schema)
	}
}

type reviewInput struct {
	CaseID string `json:"case_id"`
	By     string `json:"by"`
	Reason string `json:"reason,omitempty"`
}

func approveReviewHandler(q querier.GenerationQuerier) mcp.ToolHandlerFor[reviewInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input reviewInput) (*mcp.CallToolResult, any, error) {
		if input.CaseID == "" || input.By == "" {
			return errorResult("case_id and by are required"), nil, nil
		}

		resp := activities.ReviewResponse{Approved: true, By: input.By, Reason: input.Reason}
		result, err := q.SubmitReview(ctx, input.CaseID, resp)
		if err != nil {
			return nil, nil, fmt.Errorf("approve_review: %w", err)
		}

		return textResult(map[string]string{"result": result})
	}
}

func rejectReviewHandler(q querier.GenerationQuerier) mcp.ToolHandlerFor[reviewInput, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input reviewInput) (*mcp.CallToolResult, any, error) {
		if input.CaseID == "" || input.By == "" {
			return errorResult("case_id and by are required"), nil, nil
		}
		if input.Reason == "" {
			return errorResult("a rejection needs a reason"), nil, nil
		}

		resp := activities.ReviewResponse{Approved: false, By: input.By, Reason: input.Reason}
		result, err := q.SubmitReview(ctx, input.CaseID, resp)
		if err != nil {
			return nil, nil, fmt.Errorf("reject_review: %w", err)
		}

		return textResult(map[string]string{"result": result})
	}
}

type groundsInput struct {
	Jurisdiction string `json:"jurisdiction"`
}

func listGroundsHandler() mcp.ToolHandlerFor[groundsInput, any] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input groundsInput) (*mcp.CallToolResult, any, error) {
		jurisdiction := domain.Jurisdiction(input.Jurisdiction)
		if !jurisdiction.Valid() {
			return errorResult("unknown jurisdiction"), nil, nil
		}

		grounds, err := rules.GroundsFor(jurisdiction)
		if err != nil {
			return nil, nil, fmt.Errorf("list_grounds: %w", err)
		}

		return textResult(grounds)
	}
}

func textResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshal result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(data)},
		},
	}, nil, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: msg},
		},
		IsError: true,
	}
}
