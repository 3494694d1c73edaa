package uischema

import "github.com/landlord-heaven/wizard-go/internal/domain"

// caseSummary builds the always-present case overview component.
func caseSummary(c domain.Case) Component {
	return Component{
		Type:       ComponentCaseSummary,
		Title:      "Case Summary",
		Priority:   0,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"case_id":      c.CaseID,
			"case_type":    string(c.CaseType),
			"product":      string(c.Product),
			"jurisdiction": string(c.Jurisdiction),
			"status":       string(c.Status),
		},
	}
}

// routeCard builds the recommended-route component.
func routeCard(route *domain.RouteRecommendation) Component {
	return Component{
		Type:       ComponentRouteCard,
		Title:      "Recommended Route",
		Priority:   10,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"route":               string(route.RecommendedRoute),
			"reasoning":           route.Reasoning,
			"success_probability": route.SuccessProbability,
		},
	}
}

// groundsTable lists the possession grounds with per-ground reasoning.
func groundsTable(recs []domain.GroundRecommendation) Component {
	rows := make([]map[string]any, len(recs))
	for i, r := range recs {
		rows[i] = map[string]any{
			"code":                 r.Ground.Code,
			"title":                r.Ground.Title,
			"mandatory":            r.Ground.Mandatory,
			"notice_period_days":   r.Ground.NoticePeriodDays,
			"notice_period_months": r.Ground.NoticePeriodMonths,
			"recommended":          r.Recommended,
			"reasoning":            r.Reasoning,
			"success_probability":  r.SuccessProbability,
		}
	}
	return Component{
		Type:       ComponentGroundsTable,
		Title:      "Possession Grounds",
		Priority:   20,
		Visibility: VisibilityVisible,
		Data:       map[string]any{"grounds": rows},
	}
}

// noticeDateCard shows the calculated earliest valid expiry.
func noticeDateCard(nd *domain.NoticeDate) Component {
	return Component{
		Type:       ComponentNoticeDateCard,
		Title:      "Notice Dates",
		Priority:   25,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"service_date": nd.ServiceDate,
			"expiry_date":  nd.ExpiryDate,
			"period_days":  nd.PeriodDays,
			"basis":        nd.Basis,
		},
	}
}

// issueList shows blocking issues and warnings together; blockers first.
func issueList(blocking, warnings []domain.ValidationIssue) Component {
	toRows := func(issues []domain.ValidationIssue) []map[string]any {
		rows := make([]map[string]any, len(issues))
		for i, issue := range issues {
			rows[i] = map[string]any{
				"code":         issue.Code,
				"severity":     string(issue.Severity),
				"legal_reason": issue.LegalReason,
				"fix_hint":     issue.FixHint,
				"question_id":  issue.QuestionID,
			}
		}
		return rows
	}
	return Component{
		Type:       ComponentIssueList,
		Title:      "Compliance Issues",
		Priority:   30,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"blocking": toRows(blocking),
			"warnings": toRows(warnings),
		},
	}
}

// strengthPanel shows the case-strength narrative.
func strengthPanel(a *domain.CaseAnalysis) Component {
	return Component{
		Type:       ComponentStrengthPanel,
		Title:      "Case Strength",
		Priority:   35,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"readiness":           a.Readiness,
			"narrative":           a.StrengthNarrative,
			"success_probability": a.SuccessProbability,
		},
	}
}

// documentPreviews builds one preview component per rendered document.
func documentPreviews(docs []domain.Document) []Component {
	var comps []Component
	for i, d := range docs {
		comps = append(comps, Component{
			Type:       ComponentDocumentPreview,
			Title:      d.Title,
			Priority:   40 + i,
			Visibility: VisibilityVisible,
			Data: map[string]any{
				"document_id": d.DocumentID,
				"kind":        d.Kind,
				"body":        d.Body,
				"key":         d.Key,
				"rendered_at": d.RenderedAt,
			},
		})
	}
	return comps
}

// reviewQueue builds the pending-review component for premium cases.
func reviewQueue(state domain.GenerationState) Component {
	return Component{
		Type:       ComponentReviewQueue,
		Title:      "Solicitor Review Required",
		Priority:   50,
		Visibility: VisibilityVisible,
		Data: map[string]any{
			"review_status":  string(state.Review),
			"review_details": state.ReviewDetails,
		},
	}
}

// downloadPanel lists the stored documents once generation completes.
func downloadPanel(docs []domain.Document) Component {
	rows := make([]map[string]any, len(docs))
	for i, d := range docs {
		rows[i] = map[string]any{
			"document_id": d.DocumentID,
			"title":       d.Title,
			"kind":        d.Kind,
			"key":         d.Key,
		}
	}
	return Component{
		Type:       ComponentDownloadPanel,
		Title:      "Your Documents",
		Priority:   60,
		Visibility: VisibilityVisible,
		Data:       map[string]any{"documents": rows},
	}
}

// errorBanner surfaces a failed generation.
func errorBanner(msg string) Component {
	return Component{
		Type:       ComponentErrorBanner,
		Title:      "Generation Failed",
		Priority:   5,
		Visibility: VisibilityVisible,
		Data:       map[string]any{"message": msg},
	}
}
