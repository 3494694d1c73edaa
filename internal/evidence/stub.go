package evidence

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StubStore keeps evidence under a local directory, mirroring the object
// key layout, for stub mode and tests.
type StubStore struct {
	root string
}

func NewStubStore(root string) *StubStore {
	return &StubStore{root: root}
}

func (s *StubStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("evidence: invalid key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *StubStore) Put(_ context.Context, key string, body io.Reader, _ int64) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("evidence: create directory: %w", err)
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("evidence: create %s: %w", key, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, body); err != nil {
		return fmt.Errorf("evidence: write %s: %w", key, err)
	}
	return nil
}

func (s *StubStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("evidence: open %s: %w", key, err)
	}
	return f, nil
}

// PresignDownload returns a file URL; stub mode has no signing.
func (s *StubStore) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	return "file://" + p, nil
}
