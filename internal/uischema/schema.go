// Package uischema defines the typed UI contract emitted by the backend.
// The frontend renders dynamic components based on this schema -- it never
// decides what to show on its own.
package uischema

// UISchema is the top-level schema the backend emits for a generation state.
type UISchema struct {
	Version      string      `json:"ui_schema_version"`
	GenerationID string      `json:"generation_id"`
	CaseID       string      `json:"case_id"`
	Phase        string      `json:"phase"`
	Components   []Component `json:"components"`
	Actions      []Action    `json:"actions"`
}

// ComponentType identifies what React component to render.
type ComponentType string

const (
	ComponentCaseSummary     ComponentType = "case_summary"
	ComponentRouteCard       ComponentType = "route_card"
	ComponentGroundsTable    ComponentType = "grounds_table"
	ComponentNoticeDateCard  ComponentType = "notice_date_card"
	ComponentIssueList       ComponentType = "issue_list"
	ComponentStrengthPanel   ComponentType = "strength_panel"
	ComponentDocumentPreview ComponentType = "document_preview"
	ComponentReviewQueue     ComponentType = "review_queue"
	ComponentDownloadPanel   ComponentType = "download_panel"
	ComponentErrorBanner     ComponentType = "error_banner"
)

// Visibility controls component rendering.
type Visibility string

const (
	VisibilityVisible   Visibility = "visible"
	VisibilityHidden    Visibility = "hidden"
	VisibilityCollapsed Visibility = "collapsed"
)

// Component is a single renderable UI element.
type Component struct {
	Type       ComponentType  `json:"type"`
	Title      string         `json:"title"`
	Priority   int            `json:"priority"`
	Visibility Visibility     `json:"visibility"`
	Data       map[string]any `json:"data,omitempty"`
}

// ActionUIType classifies the user-facing action.
type ActionUIType string

const (
	ActionApprove  ActionUIType = "approve"
	ActionReject   ActionUIType = "reject"
	ActionDownload ActionUIType = "download"
)

// ConfirmConfig describes confirmation requirements for consequential actions.
type ConfirmConfig struct {
	Required        bool   `json:"required"`
	AcknowledgeText string `json:"acknowledge_text,omitempty"`
}

// Action is a user-triggerable operation from the UI.
type Action struct {
	Type    ActionUIType   `json:"type"`
	Label   string         `json:"label"`
	Confirm *ConfirmConfig `json:"confirm,omitempty"`
}
