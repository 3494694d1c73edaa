// Package testutil provides in-memory stand-ins for the stores so engine,
// API and workflow tests run without SQLite or S3.
package testutil

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// MemCaseStore is an in-memory CaseStore.
type MemCaseStore struct {
	mu    sync.Mutex
	cases map[string]domain.Case
}

func NewMemCaseStore() *MemCaseStore {
	return &MemCaseStore{cases: make(map[string]domain.Case)}
}

func (s *MemCaseStore) CreateCase(_ context.Context, c domain.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.CaseID]; ok {
		return fmt.Errorf("testutil: case %s already exists", c.CaseID)
	}
	s.cases[c.CaseID] = snapshot(c)
	return nil
}

func (s *MemCaseStore) GetCase(_ context.Context, caseID string) (domain.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[caseID]
	if !ok {
		return domain.Case{}, fmt.Errorf("testutil: case %s not found", caseID)
	}
	return snapshot(c), nil
}

func (s *MemCaseStore) UpdateCase(_ context.Context, c domain.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.CaseID]; !ok {
		return fmt.Errorf("testutil: case %s not found", c.CaseID)
	}
	s.cases[c.CaseID] = snapshot(c)
	return nil
}

func (s *MemCaseStore) AddEvidence(_ context.Context, f domain.EvidenceFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[f.CaseID]
	if !ok {
		return fmt.Errorf("testutil: case %s not found", f.CaseID)
	}
	c.Evidence = append(c.Evidence, f)
	s.cases[c.CaseID] = c
	return nil
}

func snapshot(c domain.Case) domain.Case {
	c.CollectedFacts = c.CollectedFacts.Clone()
	c.Evidence = append([]domain.EvidenceFile(nil), c.Evidence...)
	return c
}

// MemEvidence is an in-memory EvidenceStore. Set FailAfter to n to make
// the (n+1)th Put fail, for upload-batch abort tests.
type MemEvidence struct {
	mu        sync.Mutex
	Objects   map[string][]byte
	FailAfter int // -1 (default via NewMemEvidence) never fails
	puts      int
}

func NewMemEvidence() *MemEvidence {
	return &MemEvidence{Objects: make(map[string][]byte), FailAfter: -1}
}

func (s *MemEvidence) Put(_ context.Context, key string, body io.Reader, _ int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailAfter >= 0 && s.puts >= s.FailAfter {
		return fmt.Errorf("testutil: simulated storage failure on %s", key)
	}
	s.puts++
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.Objects[key] = data
	return nil
}

func (s *MemEvidence) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Objects[key]; !ok {
		return "", fmt.Errorf("testutil: no object at %s", key)
	}
	return "mem://" + key, nil
}

// MemDocStore is an in-memory document and generation-state store.
type MemDocStore struct {
	mu          sync.Mutex
	Documents   map[string]domain.Document
	Generations map[string]domain.GenerationState // keyed by case ID, latest wins
}

func NewMemDocStore() *MemDocStore {
	return &MemDocStore{
		Documents:   make(map[string]domain.Document),
		Generations: make(map[string]domain.GenerationState),
	}
}

func (s *MemDocStore) SaveDocument(_ context.Context, d domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Documents[d.DocumentID] = d
	return nil
}

func (s *MemDocStore) SaveGeneration(_ context.Context, g domain.GenerationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Generations[g.Case.CaseID] = g
	return nil
}

func (s *MemDocStore) LatestGeneration(_ context.Context, caseID string) (domain.GenerationState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.Generations[caseID]
	if !ok {
		return domain.GenerationState{}, fmt.Errorf("testutil: no generation for case %s", caseID)
	}
	return g, nil
}
