package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/meridian/starchart/pkg/galaxy"
)

// FileStore keeps each draft as a JSON file in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based draft store.
// If baseDir is empty, defaults to ~/.config/starchart/drafts/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "starchart", "drafts")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create draft dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) draftPath(id uuid.UUID) string {
	return filepath.Join(s.baseDir, id.String()+".json")
}

func (s *FileStore) Create(ctx context.Context, name string, cfg galaxy.GenerationConfig) (*Draft, error) {
	draft, err := newDraft(name, cfg)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.write(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *FileStore) Get(ctx context.Context, id uuid.UUID) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(id)
}

func (s *FileStore) List(ctx context.Context) ([]Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read draft dir: %w", err)
	}

	drafts := make([]Draft, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var d Draft
		if err := json.Unmarshal(data, &d); err != nil {
			continue
		}
		drafts = append(drafts, d)
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})
	return drafts, nil
}

func (s *FileStore) Update(ctx context.Context, id uuid.UUID, cfg galaxy.GenerationConfig) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.read(id)
	if err != nil {
		return nil, err
	}
	if err := prepareConfig(draft.Name, &cfg); err != nil {
		return nil, err
	}
	draft.Config = cfg
	draft.UpdatedAt = time.Now().UTC()
	if err := s.write(draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (s *FileStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.draftPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove draft file: %w", err)
	}
	return nil
}

func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for draft files.
func (s *FileStore) Path() string {
	return s.baseDir
}

func (s *FileStore) read(id uuid.UUID) (*Draft, error) {
	data, err := os.ReadFile(s.draftPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read draft file: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse draft: %w", err)
	}
	return &d, nil
}

func (s *FileStore) write(d *Draft) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := os.WriteFile(s.draftPath(d.ID), data, 0600); err != nil {
		return fmt.Errorf("write draft file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
