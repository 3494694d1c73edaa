package domain

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

func shortID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func newUUID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant 10
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		b[0:4], b[4:6], b[6:8], b[8:10], b[10:16])
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// Timestamp returns the current UTC time in the wire format every
// timestamp field uses.
func Timestamp() string { return nowUTC() }

// Facts is the collected_facts mapping of question ID to frozen answer.
type Facts map[string]any

// Clone returns a shallow copy so callers can mutate safely.
func (f Facts) Clone() Facts {
	out := make(Facts, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Case is the server-side record the wizard fills in. The store owns it;
// sessions hold a cached copy.
type Case struct {
	CaseID       string       `json:"case_id"`
	CaseType     CaseType     `json:"case_type"`
	Jurisdiction Jurisdiction `json:"jurisdiction"`
	Product      Product      `json:"product"`
	Status       CaseStatus   `json:"status"`
	UserID       string       `json:"user_id,omitempty"`

	CollectedFacts Facts          `json:"collected_facts"`
	Evidence       []EvidenceFile `json:"evidence,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// NewCase creates a draft Case for the given product.
func NewCase(product Product, jurisdiction Jurisdiction) (Case, error) {
	ct, err := CaseTypeFor(product)
	if err != nil {
		return Case{}, err
	}
	now := nowUTC()
	return Case{
		CaseID:         newUUID(),
		CaseType:       ct,
		Jurisdiction:   jurisdiction,
		Product:        product,
		Status:         StatusDraft,
		CollectedFacts: make(Facts),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// Option is a selectable choice on select/radio/multi_select questions.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Validation holds structural constraints checked before an answer is accepted.
type Validation struct {
	Required bool     `json:"required,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Pattern  string   `json:"pattern,omitempty"`
}

// Dependency hides a question unless the referenced question's stored answer
// equals (or, for array answers, contains) one of Values.
type Dependency struct {
	QuestionID string   `json:"question_id"`
	Values     []string `json:"values"`
}

// Question is one unit of the dynamic form. Immutable once defined.
type Question struct {
	ID         string      `json:"id"`
	Prompt     string      `json:"prompt"`
	Help       string      `json:"help,omitempty"`
	InputType  InputType   `json:"input_type"`
	Options    []Option    `json:"options,omitempty"`
	Fields     []Question  `json:"fields,omitempty"` // group sub-questions
	Validation Validation  `json:"validation"`
	DependsOn  *Dependency `json:"depends_on,omitempty"`
}

// ValidationIssue is a compliance problem raised against a collected fact.
type ValidationIssue struct {
	Code        string        `json:"code"`
	QuestionID  string        `json:"affected_question_id,omitempty"`
	Severity    IssueSeverity `json:"severity"`
	LegalReason string        `json:"legal_reason"`
	FixHint     string        `json:"user_fix_hint,omitempty"`
}

// EvidenceFile records one uploaded evidence document.
type EvidenceFile struct {
	FileID     string `json:"file_id"`
	CaseID     string `json:"case_id"`
	QuestionID string `json:"question_id,omitempty"`
	Name       string `json:"name"`
	Key        string `json:"key"` // storage object key
	Size       int64  `json:"size"`
	UploadedAt string `json:"uploaded_at"`
}

// NewEvidenceFile creates an EvidenceFile with generated defaults.
func NewEvidenceFile(caseID, name string, size int64) EvidenceFile {
	id := shortID()
	return EvidenceFile{
		FileID:     id,
		CaseID:     caseID,
		Name:       name,
		Key:        fmt.Sprintf("cases/%s/evidence/%s-%s", caseID, id, name),
		Size:       size,
		UploadedAt: nowUTC(),
	}
}

// GroundInfo is jurisdiction-specific metadata for one possession ground.
// Notice is a day count, or a calendar-month count where the statute says
// "months": two months from 1 July is 1 September, not 30 August.
type GroundInfo struct {
	Code               string `json:"code"` // e.g. "8", "14", "scot_12"
	Title              string `json:"title"`
	Mandatory          bool   `json:"mandatory"`
	NoticePeriodDays   int    `json:"notice_period_days,omitempty"`
	NoticePeriodMonths int    `json:"notice_period_months,omitempty"`
	Description        string `json:"description"`
}

// GroundRecommendation scores one ground for the case at hand.
type GroundRecommendation struct {
	Ground             GroundInfo `json:"ground"`
	Recommended        bool       `json:"recommended"`
	Reasoning          string     `json:"reasoning"`
	SuccessProbability float64    `json:"success_probability"`
}

// RouteRecommendation is the server-computed routing guidance the client
// renders verbatim.
type RouteRecommendation struct {
	RecommendedRoute   Route             `json:"recommended_route"`
	Reasoning          string            `json:"reasoning"`
	BlockingIssues     []ValidationIssue `json:"blocking_issues"`
	SuccessProbability float64           `json:"success_probability"`
}

// NoticeDate is the calculated earliest valid notice expiry.
type NoticeDate struct {
	ServiceDate string `json:"service_date"`
	ExpiryDate  string `json:"expiry_date"`
	PeriodDays  int    `json:"period_days"`
	Basis       string `json:"basis"`
}

// AnswerOutcome is the result of submitting one answer: updated progress plus
// any server-computed guidance. Mirrors the /api/wizard/answer response body.
type AnswerOutcome struct {
	Progress              float64                `json:"progress"`
	IsComplete            bool                   `json:"is_complete"`
	SuggestedWording      string                 `json:"suggested_wording,omitempty"`
	RouteRecommendation   *RouteRecommendation   `json:"route_recommendation,omitempty"`
	GroundRecommendations []GroundRecommendation `json:"ground_recommendations,omitempty"`
	CalculatedDate        *NoticeDate            `json:"calculated_date,omitempty"`
	PreviewBlockingIssues []ValidationIssue      `json:"preview_blocking_issues,omitempty"`
	PreviewWarnings       []ValidationIssue      `json:"preview_warnings,omitempty"`
	StepFlags             map[string]bool        `json:"step_flags,omitempty"`
}

// Checkpoint is the live blocking/warning/completeness snapshot for a case.
type Checkpoint struct {
	CaseID         string            `json:"case_id"`
	Progress       float64           `json:"progress"`
	IsComplete     bool              `json:"is_complete"`
	BlockingIssues []ValidationIssue `json:"blocking_issues"`
	Warnings       []ValidationIssue `json:"warnings"`
}

// CaseAnalysis is the case-strength summary returned by /api/wizard/analyze.
type CaseAnalysis struct {
	CaseID             string                 `json:"case_id"`
	Readiness          string                 `json:"readiness"` // ready | blocked | incomplete
	Route              *RouteRecommendation   `json:"route_recommendation,omitempty"`
	Grounds            []GroundRecommendation `json:"ground_recommendations,omitempty"`
	NoticeDate         *NoticeDate            `json:"calculated_date,omitempty"`
	BlockingIssues     []ValidationIssue      `json:"blocking_issues"`
	Warnings           []ValidationIssue      `json:"warnings"`
	StrengthNarrative  string                 `json:"strength_narrative"`
	SuccessProbability float64                `json:"success_probability"`
}

// Document is one rendered output file.
type Document struct {
	DocumentID string `json:"document_id"`
	CaseID     string `json:"case_id"`
	Title      string `json:"title"`
	Kind       string `json:"kind"` // notice, agreement, claim_form, cover_letter, service_instructions
	Key        string `json:"key,omitempty"`
	Body       string `json:"body,omitempty"`
	RenderedAt string `json:"rendered_at"`
}

// NewDocument creates a Document with generated defaults.
func NewDocument(caseID, title, kind string) Document {
	return Document{
		DocumentID: shortID(),
		CaseID:     caseID,
		Title:      title,
		Kind:       kind,
		RenderedAt: nowUTC(),
	}
}

// GenerationState is the top-level document-generation pipeline state held by
// the workflow and rendered by the preview UI schema.
type GenerationState struct {
	GenerationID string `json:"generation_id"`
	StartedAt    string `json:"started_at"`

	Case     Case          `json:"case"`
	Analysis *CaseAnalysis `json:"analysis"`

	Review        ReviewStatus `json:"review"`
	ReviewDetails string       `json:"review_details"`

	Documents []Document `json:"documents"`

	CurrentPhase    string  `json:"current_phase"`
	ShouldTerminate bool    `json:"should_terminate"`
	Error           *string `json:"error"`
}

// NewGenerationState creates a GenerationState with generated defaults.
func NewGenerationState(c Case) GenerationState {
	return GenerationState{
		GenerationID: newUUID(),
		StartedAt:    nowUTC(),
		Case:         c,
		Review:       ReviewPending,
		CurrentPhase: "validate",
	}
}

// AnswerEquals reports whether a stored answer matches a dependency target.
// Array answers match by containment; scalars by string equality.
func AnswerEquals(answer any, target string) bool {
	switch v := answer.(type) {
	case nil:
		return false
	case []any:
		for _, item := range v {
			if AnswerEquals(item, target) {
				return true
			}
		}
		return false
	case []string:
		for _, item := range v {
			if item == target {
				return true
			}
		}
		return false
	case bool:
		return (v && target == "yes") || (!v && target == "no")
	case string:
		return v == target
	case json.Number:
		return v.String() == target
	case float64:
		return fmt.Sprintf("%g", v) == target
	case int:
		return fmt.Sprintf("%d", v) == target
	}
	return fmt.Sprintf("%v", answer) == target
}
