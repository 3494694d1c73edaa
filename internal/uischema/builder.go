package uischema

import "github.com/landlord-heaven/wizard-go/internal/domain"

const schemaVersion = "v1"

// Build constructs a UISchema from the current generation state.
// The schema drives what the frontend renders -- no raw JSX from the backend.
func Build(state domain.GenerationState) UISchema {
	schema := UISchema{
		Version:      schemaVersion,
		GenerationID: state.GenerationID,
		CaseID:       state.Case.CaseID,
		Phase:        state.CurrentPhase,
	}

	if state.Error != nil {
		schema.Components = append(schema.Components, errorBanner(*state.Error))
	}

	// Always show the case overview once the case is loaded.
	if state.Case.CaseID != "" {
		schema.Components = append(schema.Components, caseSummary(state.Case))
	}

	// After analysis: route, grounds, dates, issues, strength.
	if a := state.Analysis; a != nil {
		if a.Route != nil {
			schema.Components = append(schema.Components, routeCard(a.Route))
		}
		if len(a.Grounds) > 0 {
			schema.Components = append(schema.Components, groundsTable(a.Grounds))
		}
		if a.NoticeDate != nil {
			schema.Components = append(schema.Components, noticeDateCard(a.NoticeDate))
		}
		if len(a.BlockingIssues) > 0 || len(a.Warnings) > 0 {
			schema.Components = append(schema.Components, issueList(a.BlockingIssues, a.Warnings))
		}
		schema.Components = append(schema.Components, strengthPanel(a))
	}

	// After render: one preview per document. Once stored the bodies are
	// gone, so previews make way for the download panel.
	if len(state.Documents) > 0 {
		if state.CurrentPhase == "completed" {
			schema.Components = append(schema.Components, downloadPanel(state.Documents))
			schema.Actions = append(schema.Actions, Action{
				Type:  ActionDownload,
				Label: "Download Documents",
			})
		} else {
			schema.Components = append(schema.Components, documentPreviews(state.Documents)...)
		}
	}

	// Waiting on a solicitor: review queue + approve/reject actions.
	if state.Review == domain.ReviewPending && state.CurrentPhase == "review" {
		schema.Components = append(schema.Components, reviewQueue(state))
		schema.Actions = append(schema.Actions,
			Action{
				Type:  ActionApprove,
				Label: "Approve Documents",
			},
			Action{
				Type:  ActionReject,
				Label: "Reject Documents",
				Confirm: &ConfirmConfig{
					Required:        true,
					AcknowledgeText: "Rejecting sends the case back to the landlord with my reasons",
				},
			},
		)
	}

	return schema
}
