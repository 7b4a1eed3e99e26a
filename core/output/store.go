package output

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// ErrNoArtifact is returned by Load before any output has been saved.
var ErrNoArtifact = errors.New("no output saved yet")

// FileStore keeps the last output in a single local file. Every Save
// overwrites it; the mutex only keeps a write from interleaving with another.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save overwrites the artifact with data.
func (s *FileStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", s.path, err)
	}
	return nil
}

// Load returns the current artifact.
func (s *FileStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoArtifact
	}
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", s.path, err)
	}
	return data, nil
}

// Location returns the artifact path.
func (s *FileStore) Location() string {
	return s.path
}

var _ core.ArtifactStore = (*FileStore)(nil)
