// Package activities defines the Temporal activity I/O structs and the
// Activities implementation that bridges Temporal's serialization boundary
// to the pure-logic packages in internal/.
package activities

import "github.com/landlord-heaven/wizard-go/internal/domain"

// AnalyzeInput is the activity input for case analysis.
type AnalyzeInput struct {
	CaseID string `json:"case_id"`
}

// AnalyzeOutput is the activity output from case analysis. The case is
// returned alongside the analysis so the workflow holds the exact snapshot
// the documents will be rendered from.
type AnalyzeOutput struct {
	Case     domain.Case         `json:"case"`
	Analysis domain.CaseAnalysis `json:"analysis"`
}

// RenderInput is the activity input for document rendering.
type RenderInput struct {
	Case     domain.Case         `json:"case"`
	Analysis domain.CaseAnalysis `json:"analysis"`
}

// RenderOutput is the activity output from document rendering.
type RenderOutput struct {
	Documents []domain.Document `json:"documents"`
}

// StoreInput is the activity input for persisting rendered documents.
type StoreInput struct {
	Documents []domain.Document `json:"documents"`
}

// StoreOutput returns the documents with their storage keys assigned and
// bodies dropped (the body lives in object storage from here on).
type StoreOutput struct {
	Documents []domain.Document `json:"documents"`
}

// DeliverInput is the activity input for producing download links.
type DeliverInput struct {
	Documents []domain.Document `json:"documents"`
}

// DeliverOutput maps document IDs to presigned download URLs.
type DeliverOutput struct {
	Links map[string]string `json:"links"`
}

// PersistStateInput is the activity input for checkpointing generation state.
type PersistStateInput struct {
	State domain.GenerationState `json:"state"`
}

// SetStatusInput is the activity input for moving a case between statuses.
type SetStatusInput struct {
	CaseID string            `json:"case_id"`
	Status domain.CaseStatus `json:"status"`
}

// ReviewResponse is sent via the Temporal Update handler for the premium
// human-review gate.
type ReviewResponse struct {
	Approved bool   `json:"approved"`
	By       string `json:"by"`
	Reason   string `json:"reason,omitempty"`
}
