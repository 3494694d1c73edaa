// Package store persists cases, evidence records, rendered documents and
// generation state in SQLite. The pure-Go driver keeps deployment to a
// single static binary.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/landlord-heaven/wizard-go/internal/domain"
)

// ErrNotFound is returned when a case, document or generation is missing.
var ErrNotFound = errors.New("store: not found")

// Store is the SQLite-backed system of record.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. ":memory:" gives
// an ephemeral store for tests and stub mode.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	// The driver is file-locked; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS cases (
			case_id      TEXT PRIMARY KEY,
			case_type    TEXT NOT NULL,
			jurisdiction TEXT NOT NULL,
			product      TEXT NOT NULL,
			status       TEXT NOT NULL,
			user_id      TEXT,
			facts        TEXT NOT NULL,
			created_at   TEXT NOT NULL,
			updated_at   TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_cases_user ON cases(user_id);`,
		`CREATE TABLE IF NOT EXISTS evidence (
			file_id     TEXT PRIMARY KEY,
			case_id     TEXT NOT NULL REFERENCES cases(case_id),
			question_id TEXT,
			name        TEXT NOT NULL,
			key         TEXT NOT NULL,
			size        INTEGER NOT NULL,
			uploaded_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_evidence_case ON evidence(case_id);`,
		`CREATE TABLE IF NOT EXISTS documents (
			document_id TEXT PRIMARY KEY,
			case_id     TEXT NOT NULL REFERENCES cases(case_id),
			title       TEXT NOT NULL,
			kind        TEXT NOT NULL,
			key         TEXT,
			body        TEXT,
			rendered_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_documents_case ON documents(case_id);`,
		`CREATE TABLE IF NOT EXISTS generations (
			generation_id TEXT PRIMARY KEY,
			case_id       TEXT NOT NULL REFERENCES cases(case_id),
			state         TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_generations_case ON generations(case_id);`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("store: create schema: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateCase inserts a new case.
func (s *Store) CreateCase(ctx context.Context, c domain.Case) error {
	facts, err := json.Marshal(c.CollectedFacts)
	if err != nil {
		return fmt.Errorf("store: marshal facts: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO cases (case_id, case_type, jurisdiction, product, status, user_id, facts, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CaseID, c.CaseType, c.Jurisdiction, c.Product, c.Status, c.UserID,
		string(facts), c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("store: insert case %s: %w", c.CaseID, err)
	}
	return nil
}

// GetCase loads a case with its evidence records.
func (s *Store) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	var c domain.Case
	var facts string
	err := s.db.QueryRowContext(ctx,
		`SELECT case_id, case_type, jurisdiction, product, status, COALESCE(user_id, ''), facts, created_at, updated_at
		 FROM cases WHERE case_id = ?`, caseID).
		Scan(&c.CaseID, &c.CaseType, &c.Jurisdiction, &c.Product, &c.Status,
			&c.UserID, &facts, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Case{}, fmt.Errorf("store: case %s: %w", caseID, ErrNotFound)
	}
	if err != nil {
		return domain.Case{}, fmt.Errorf("store: load case %s: %w", caseID, err)
	}
	if err := json.Unmarshal([]byte(facts), &c.CollectedFacts); err != nil {
		return domain.Case{}, fmt.Errorf("store: decode facts for %s: %w", caseID, err)
	}
	if c.Evidence, err = s.listEvidence(ctx, caseID); err != nil {
		return domain.Case{}, err
	}
	return c, nil
}

// UpdateCase rewrites the mutable case columns.
func (s *Store) UpdateCase(ctx context.Context, c domain.Case) error {
	facts, err := json.Marshal(c.CollectedFacts)
	if err != nil {
		return fmt.Errorf("store: marshal facts: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE cases SET status = ?, facts = ?, updated_at = ? WHERE case_id = ?`,
		c.Status, string(facts), domain.Timestamp(), c.CaseID)
	if err != nil {
		return fmt.Errorf("store: update case %s: %w", c.CaseID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: case %s: %w", c.CaseID, ErrNotFound)
	}
	return nil
}

// ListCases returns the cases belonging to a user, newest first. An empty
// userID lists everything (stub mode, admin tooling).
func (s *Store) ListCases(ctx context.Context, userID string) ([]domain.Case, error) {
	query := `SELECT case_id FROM cases ORDER BY created_at DESC`
	args := []any{}
	if userID != "" {
		query = `SELECT case_id FROM cases WHERE user_id = ? ORDER BY created_at DESC`
		args = append(args, userID)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list cases: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("store: scan case id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list cases: %w", err)
	}

	cases := make([]domain.Case, 0, len(ids))
	for _, id := range ids {
		c, err := s.GetCase(ctx, id)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	return cases, nil
}

// AddEvidence records one uploaded file against its case.
func (s *Store) AddEvidence(ctx context.Context, f domain.EvidenceFile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evidence (file_id, case_id, question_id, name, key, size, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.FileID, f.CaseID, f.QuestionID, f.Name, f.Key, f.Size, f.UploadedAt)
	if err != nil {
		return fmt.Errorf("store: insert evidence %s: %w", f.FileID, err)
	}
	return nil
}

func (s *Store) listEvidence(ctx context.Context, caseID string) ([]domain.EvidenceFile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_id, case_id, COALESCE(question_id, ''), name, key, size, uploaded_at
		 FROM evidence WHERE case_id = ? ORDER BY uploaded_at`, caseID)
	if err != nil {
		return nil, fmt.Errorf("store: list evidence for %s: %w", caseID, err)
	}
	defer rows.Close()

	var files []domain.EvidenceFile
	for rows.Next() {
		var f domain.EvidenceFile
		if err := rows.Scan(&f.FileID, &f.CaseID, &f.QuestionID, &f.Name, &f.Key, &f.Size, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("store: scan evidence: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// SaveDocument upserts one rendered document.
func (s *Store) SaveDocument(ctx context.Context, d domain.Document) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (document_id, case_id, title, kind, key, body, rendered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(document_id) DO UPDATE SET title = excluded.title, kind = excluded.kind,
		 key = excluded.key, body = excluded.body, rendered_at = excluded.rendered_at`,
		d.DocumentID, d.CaseID, d.Title, d.Kind, d.Key, d.Body, d.RenderedAt)
	if err != nil {
		return fmt.Errorf("store: save document %s: %w", d.DocumentID, err)
	}
	return nil
}

// ListDocuments returns a case's rendered documents.
func (s *Store) ListDocuments(ctx context.Context, caseID string) ([]domain.Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT document_id, case_id, title, kind, COALESCE(key, ''), COALESCE(body, ''), rendered_at
		 FROM documents WHERE case_id = ? ORDER BY rendered_at`, caseID)
	if err != nil {
		return nil, fmt.Errorf("store: list documents for %s: %w", caseID, err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var d domain.Document
		if err := rows.Scan(&d.DocumentID, &d.CaseID, &d.Title, &d.Kind, &d.Key, &d.Body, &d.RenderedAt); err != nil {
			return nil, fmt.Errorf("store: scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// SaveGeneration upserts the pipeline state for a case. The state column
// is the full GenerationState JSON; queries always want the whole thing.
func (s *Store) SaveGeneration(ctx context.Context, g domain.GenerationState) error {
	state, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("store: marshal generation state: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO generations (generation_id, case_id, state, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(generation_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at`,
		g.GenerationID, g.Case.CaseID, string(state), domain.Timestamp())
	if err != nil {
		return fmt.Errorf("store: save generation %s: %w", g.GenerationID, err)
	}
	return nil
}

// LatestGeneration returns the most recently updated generation for a case.
func (s *Store) LatestGeneration(ctx context.Context, caseID string) (domain.GenerationState, error) {
	var state string
	err := s.db.QueryRowContext(ctx,
		`SELECT state FROM generations WHERE case_id = ? ORDER BY updated_at DESC LIMIT 1`, caseID).
		Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.GenerationState{}, fmt.Errorf("store: generation for case %s: %w", caseID, ErrNotFound)
	}
	if err != nil {
		return domain.GenerationState{}, fmt.Errorf("store: load generation for %s: %w", caseID, err)
	}
	var g domain.GenerationState
	if err := json.Unmarshal([]byte(state), &g); err != nil {
		return domain.GenerationState{}, fmt.Errorf("store: decode generation state: %w", err)
	}
	return g, nil
}
