// Package api is the HTTP surface of the wizard: intake endpoints, case
// management, and the generation/review endpoints backed by Temporal.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/observability"
	"github.com/landlord-heaven/wizard-go/internal/ratelimit"
	"github.com/landlord-heaven/wizard-go/internal/stream"
	"github.com/landlord-heaven/wizard-go/internal/temporal/querier"
	"github.com/landlord-heaven/wizard-go/internal/wizard"
)

// CaseDirectory is the read-side case listing surface. store.Store satisfies it.
type CaseDirectory interface {
	ListCases(ctx context.Context, userID string) ([]domain.Case, error)
	ListDocuments(ctx context.Context, caseID string) ([]domain.Document, error)
}

// GenerationStarter starts (or dedupes onto) the generation workflow for a
// case. querier.TemporalQuerier satisfies it.
type GenerationStarter interface {
	StartGeneration(ctx context.Context, caseID string) (string, error)
}

// Deps bundles the server's collaborators.
type Deps struct {
	Engine  *wizard.Engine
	Cases   CaseDirectory
	Querier querier.GenerationQuerier
	Starter GenerationStarter
	Budget  *ratelimit.CaseBudget  // nil = no per-case answer budget
	Metrics *observability.Metrics // nil = no metrics
}

// Server is the HTTP API server for the wizard.
type Server struct {
	deps    Deps
	mux     *http.ServeMux
	handler http.Handler
}

// New creates a Server with the given dependencies, CORS origins and OIDC
// settings. With OIDC enabled the issuer is discovered eagerly so a
// misconfigured issuer fails at startup, not on the first request.
func New(deps Deps, corsOrigins []string, oidcCfg OIDCConfig) (*Server, error) {
	s := &Server{deps: deps, mux: http.NewServeMux()}
	s.routes()

	var h http.Handler = s.mux
	if oidcCfg.Enabled {
		provider, err := oidc.NewProvider(context.Background(), oidcCfg.IssuerURL)
		if err != nil {
			return nil, fmt.Errorf("api: discover OIDC issuer: %w", err)
		}
		h = oidcAuth(provider, oidcCfg.Audience)(h)
	}
	s.handler = requestID(logging(cors(corsOrigins, h)))
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)

	// Intake.
	s.mux.HandleFunc("POST /api/wizard/start", s.handleStart)
	s.mux.HandleFunc("POST /api/wizard/next-question", s.handleNextQuestion)
	s.mux.HandleFunc("POST /api/wizard/answer", s.handleAnswer)
	s.mux.HandleFunc("POST /api/wizard/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/wizard/checkpoint", s.handleCheckpoint)
	s.mux.HandleFunc("POST /api/wizard/upload-evidence", s.handleUploadEvidence)

	// Reference data.
	s.mux.HandleFunc("GET /api/grounds/{jurisdiction}", s.handleGrounds)

	// Case management and generation.
	s.mux.HandleFunc("GET /api/cases", s.handleListCases)
	s.mux.HandleFunc("GET /api/cases/{id}", s.handleGetCase)
	s.mux.HandleFunc("GET /api/cases/{id}/documents", s.handleListDocuments)
	s.mux.HandleFunc("POST /api/cases/{id}/generate", s.handleGenerate)
	s.mux.HandleFunc("GET /api/cases/{id}/generation", s.handleGetGeneration)
	s.mux.HandleFunc("GET /api/cases/{id}/generation/ui", s.handleGetGenerationUI)
	s.mux.HandleFunc("GET /api/cases/{id}/generation/stream", stream.Handler(s.deps.Querier, stream.DefaultConfig()))
	s.mux.HandleFunc("POST /api/cases/{id}/review", s.handleReview)

	// Ops visibility.
	s.mux.HandleFunc("GET /api/v1/workflows", s.handleListWorkflows)
}
