package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/flow"
	"github.com/landlord-heaven/wizard-go/internal/rules"
	"github.com/landlord-heaven/wizard-go/internal/temporal/activities"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/temporal/versioning"
	"github.com/landlord-heaven/wizard-go/internal/uischema"
	"github.com/landlord-heaven/wizard-go/internal/wizard"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Product      string `json:"product"`
		Jurisdiction string `json:"jurisdiction"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	product := domain.Product(body.Product)
	jurisdiction := domain.Jurisdiction(body.Jurisdiction)
	if !product.Valid() {
		writeError(w, http.StatusBadRequest, "unknown product")
		return
	}
	if !jurisdiction.Valid() {
		writeError(w, http.StatusBadRequest, "unknown jurisdiction")
		return
	}

	c, first, err := s.deps.Engine.StartCase(r.Context(), product, jurisdiction)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordCaseStarted(r.Context(), body.Product, body.Jurisdiction)
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"case_id":       c.CaseID,
		"next_question": first,
	})
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CaseID            string `json:"case_id"`
		IncludeAnswered   bool   `json:"include_answered,omitempty"`
		CurrentQuestionID string `json:"current_question_id,omitempty"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.CaseID == "" {
		writeError(w, http.StatusBadRequest, "case_id required")
		return
	}

	res, err := s.deps.Engine.NextQuestion(r.Context(), body.CaseID, body.IncludeAnswered, body.CurrentQuestionID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CaseID     string `json:"case_id"`
		QuestionID string `json:"question_id"`
		Answer     any    `json:"answer"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.CaseID == "" || body.QuestionID == "" {
		writeError(w, http.StatusBadRequest, "case_id and question_id required")
		return
	}
	if s.deps.Budget != nil {
		if err := s.deps.Budget.Check(body.CaseID, "answer"); err != nil {
			writeError(w, http.StatusTooManyRequests, err.Error())
			return
		}
		s.deps.Budget.Record(body.CaseID, "answer")
	}

	outcome, err := s.deps.Engine.SubmitAnswer(r.Context(), body.CaseID, body.QuestionID, body.Answer)
	if err != nil {
		// Structural failure: answer rejected, nothing persisted.
		var structural *flow.AnswerError
		if errors.As(err, &structural) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"error":       "invalid answer",
				"question_id": structural.QuestionID,
				"reason":      structural.Reason,
			})
			return
		}
		// Compliance failure: answer persisted, flow continues. The client
		// renders the failures and keeps going.
		var compliance *wizard.ComplianceError
		if errors.As(err, &compliance) {
			if s.deps.Metrics != nil {
				for _, issue := range compliance.Failures {
					s.deps.Metrics.RecordIssue(r.Context(), issue.Code, string(issue.Severity))
				}
			}
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":           compliance.Code,
				"failures":        compliance.Failures,
				"warnings":        compliance.Warnings,
				"blocking_issues": outcome.PreviewBlockingIssues,
				"outcome":         outcome,
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if s.deps.Metrics != nil {
		s.deps.Metrics.RecordAnswer(r.Context(), body.QuestionID)
	}
	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CaseID string `json:"case_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.CaseID == "" {
		writeError(w, http.StatusBadRequest, "case_id required")
		return
	}
	analysis, err := s.deps.Engine.Analyze(r.Context(), body.CaseID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (s *Server) handleCheckpoint(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CaseID string `json:"case_id"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.CaseID == "" {
		writeError(w, http.StatusBadRequest, "case_id required")
		return
	}
	cp, err := s.deps.Engine.Checkpoint(r.Context(), body.CaseID)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cp)
}

// maxUploadBytes bounds one evidence upload request.
const maxUploadBytes = 32 << 20

func (s *Server) handleUploadEvidence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	caseID := r.FormValue("case_id")
	if caseID == "" {
		writeError(w, http.StatusBadRequest, "case_id required")
		return
	}
	questionID := r.FormValue("question_id")

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "at least one file required")
		return
	}

	var uploaded []domain.EvidenceFile
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable file "+fh.Filename)
			return
		}
		ev, err := s.deps.Engine.UploadEvidence(r.Context(), caseID, wizard.Upload{
			Name:       fh.Filename,
			QuestionID: questionID,
			Size:       fh.Size,
			Body:       f,
		})
		f.Close()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		uploaded = append(uploaded, ev)
	}
	// The last file doubles as the `document` shortcut for single-file
	// uploads, which is what the wizard sends per question.
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"evidence": map[string]any{"files": uploaded},
		"document": uploaded[len(uploaded)-1],
	})
}

func (s *Server) handleGrounds(w http.ResponseWriter, r *http.Request) {
	jurisdiction := domain.Jurisdiction(r.PathValue("jurisdiction"))
	if !jurisdiction.Valid() {
		writeError(w, http.StatusBadRequest, "unknown jurisdiction")
		return
	}
	grounds, err := rules.GroundsFor(jurisdiction)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, grounds)
}

func (s *Server) handleListCases(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		userID = UserFromContext(r.Context())
	}
	cases, err := s.deps.Cases.ListCases(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, cases)
}

func (s *Server) handleGetCase(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	c, err := s.deps.Engine.GetCase(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	docs, err := s.deps.Cases.ListDocuments(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

// handleGenerate is the hard gate in front of document generation: a case
// with blocking issues or unanswered questions never reaches the workflow,
// whatever the client claimed.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	analysis, err := s.deps.Engine.Analyze(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	switch analysis.Readiness {
	case "blocked":
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":     "LEGAL_BLOCK",
			"failures": analysis.BlockingIssues,
		})
		return
	case "incomplete":
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code":  "CASE_INCOMPLETE",
			"error": "all required questions must be answered before generation",
		})
		return
	}

	workflowID, err := s.deps.Starter.StartGeneration(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"workflow_id": workflowID})
}

func (s *Server) handleGetGeneration(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, err := s.deps.Querier.GetGenerationState(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetGenerationUI(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	result, err := s.deps.Querier.GetGenerationState(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	schema := uischema.Build(result.State)
	writeJSON(w, http.StatusOK, schema)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var body struct {
		Approved bool   `json:"approved"`
		By       string `json:"by"`
		Reason   string `json:"reason,omitempty"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.By == "" {
		writeError(w, http.StatusBadRequest, "'by' field is required")
		return
	}
	if !body.Approved && body.Reason == "" {
		writeError(w, http.StatusBadRequest, "a rejection needs a reason")
		return
	}

	result, err := s.deps.Querier.SubmitReview(r.Context(), id, activities.ReviewResponse{
		Approved: body.Approved,
		By:       body.By,
		Reason:   body.Reason,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func (s *Server) handleListWorkflows(w http.ResponseWriter, r *http.Request) {
	opts := querier.ListOptions{
		TaskQueue: versioning.QueueGeneration,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		opts.StatusFilter = status
	}
	workflows, err := s.deps.Querier.ListWorkflows(r.Context(), opts)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, workflows)
}
