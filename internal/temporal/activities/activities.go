package activities

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/landlord-heaven/wizard-go/internal/docgen"
	"github.com/landlord-heaven/wizard-go/internal/domain"
	"github.com/landlord-heaven/wizard-go/internal/ratelimit"
	"github.com/landlord-heaven/wizard-go/internal/wizard"
)

// CaseStore is the case persistence surface consumed by activities.
// store.Store satisfies this; testutil.MemCaseStore covers the first two.
type CaseStore interface {
	GetCase(ctx context.Context, caseID string) (domain.Case, error)
	UpdateCase(ctx context.Context, c domain.Case) error
}

// DocumentStore persists rendered documents and generation checkpoints.
type DocumentStore interface {
	SaveDocument(ctx context.Context, d domain.Document) error
	SaveGeneration(ctx context.Context, g domain.GenerationState) error
}

// ObjectStore is the object storage surface for document bodies.
// evidence.S3Store and evidence.StubStore satisfy this.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64) error
	PresignDownload(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// linkExpiry is how long delivered download links stay valid.
const linkExpiry = 7 * 24 * time.Hour

// Activities holds the dependencies for all Temporal activities.
// Each method is registered as a Temporal activity.
type Activities struct {
	Cases   CaseStore
	Docs    DocumentStore
	Objects ObjectStore
	Budget  *ratelimit.CaseBudget // nil = no budget enforcement
}

// checkBudget enforces per-case operation budgets when configured.
func (a *Activities) checkBudget(caseID, operation string) error {
	if a.Budget == nil {
		return nil
	}
	if err := a.Budget.Check(caseID, operation); err != nil {
		return err
	}
	a.Budget.Record(caseID, operation)
	return nil
}

// AnalyzeCase loads the case and runs the full legal analysis. It runs as
// an activity rather than in the workflow because notice-date arithmetic
// reads the wall clock when no service date is frozen.
func (a *Activities) AnalyzeCase(ctx context.Context, in AnalyzeInput) (AnalyzeOutput, error) {
	if err := a.checkBudget(in.CaseID, "AnalyzeCase"); err != nil {
		return AnalyzeOutput{}, err
	}
	c, err := a.Cases.GetCase(ctx, in.CaseID)
	if err != nil {
		return AnalyzeOutput{}, fmt.Errorf("analyze activity: load case: %w", err)
	}
	analysis, err := wizard.AnalyzeCase(c)
	if err != nil {
		return AnalyzeOutput{}, fmt.Errorf("analyze activity: %w", err)
	}
	return AnalyzeOutput{Case: c, Analysis: analysis}, nil
}

// RenderDocuments renders the document set for the case's product.
func (a *Activities) RenderDocuments(_ context.Context, in RenderInput) (RenderOutput, error) {
	if err := a.checkBudget(in.Case.CaseID, "RenderDocuments"); err != nil {
		return RenderOutput{}, err
	}
	docs, err := docgen.Render(in.Case, in.Analysis)
	if err != nil {
		return RenderOutput{}, fmt.Errorf("render activity: %w", err)
	}
	return RenderOutput{Documents: docs}, nil
}

// StoreDocuments writes document bodies to object storage in parallel, then
// records the metadata rows. Returned documents carry keys, not bodies.
func (a *Activities) StoreDocuments(ctx context.Context, in StoreInput) (StoreOutput, error) {
	stored := make([]domain.Document, len(in.Documents))

	g, gctx := errgroup.WithContext(ctx)
	for i, doc := range in.Documents {
		g.Go(func() error {
			key := fmt.Sprintf("cases/%s/documents/%s-%s.txt", doc.CaseID, doc.DocumentID, doc.Kind)
			body := doc.Body
			if err := a.Objects.Put(gctx, key, strings.NewReader(body), int64(len(body))); err != nil {
				return fmt.Errorf("store activity: put %s: %w", key, err)
			}
			doc.Key = key
			doc.Body = ""
			stored[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return StoreOutput{}, err
	}

	for _, doc := range stored {
		if err := a.Docs.SaveDocument(ctx, doc); err != nil {
			return StoreOutput{}, fmt.Errorf("store activity: save %s: %w", doc.DocumentID, err)
		}
	}
	return StoreOutput{Documents: stored}, nil
}

// DeliverDocuments produces a presigned download link per document.
func (a *Activities) DeliverDocuments(ctx context.Context, in DeliverInput) (DeliverOutput, error) {
	links := make(map[string]string, len(in.Documents))
	for _, doc := range in.Documents {
		if doc.Key == "" {
			return DeliverOutput{}, fmt.Errorf("deliver activity: document %s has no storage key", doc.DocumentID)
		}
		url, err := a.Objects.PresignDownload(ctx, doc.Key, linkExpiry)
		if err != nil {
			return DeliverOutput{}, fmt.Errorf("deliver activity: presign %s: %w", doc.Key, err)
		}
		links[doc.DocumentID] = url
	}
	return DeliverOutput{Links: links}, nil
}

// PersistGenerationState checkpoints the workflow state for the preview UI.
func (a *Activities) PersistGenerationState(ctx context.Context, in PersistStateInput) error {
	if err := a.Docs.SaveGeneration(ctx, in.State); err != nil {
		return fmt.Errorf("persist state activity: %w", err)
	}
	return nil
}

// SetCaseStatus moves the case to the given status.
func (a *Activities) SetCaseStatus(ctx context.Context, in SetStatusInput) error {
	if !in.Status.Valid() {
		return fmt.Errorf("set status activity: invalid status %q", in.Status)
	}
	c, err := a.Cases.GetCase(ctx, in.CaseID)
	if err != nil {
		return fmt.Errorf("set status activity: load case: %w", err)
	}
	c.Status = in.Status
	if err := a.Cases.UpdateCase(ctx, c); err != nil {
		return fmt.Errorf("set status activity: update case: %w", err)
	}
	return nil
}
