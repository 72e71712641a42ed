package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/okian/ladder/internal/domain/model"
)

const defaultPath = "ladder-state.json"

// FileStore persists the snapshot as a single pretty-printed JSON file so
// operators can inspect and hand-edit it. Writes go through a temp file and
// rename, so a crash mid-save never truncates the previous snapshot.
type FileStore struct {
	path string
}

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithPath sets the snapshot file path.
func WithPath(path string) Option {
	return func(s *FileStore) {
		if path != "" {
			s.path = path
		}
	}
}

// NewFileStore creates a snapshot store writing to the configured path.
func NewFileStore(opts ...Option) (*FileStore, error) {
	s := &FileStore{path: defaultPath}
	for _, opt := range opts {
		opt(s)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
	}
	return s, nil
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string { return s.path }

// Save writes the snapshot atomically.
func (s *FileStore) Save(ctx context.Context, state model.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}

// Load reads the last saved snapshot.
func (s *FileStore) Load(ctx context.Context) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return model.State{}, err
	}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.State{}, ErrNoSnapshot
	}
	if err != nil {
		return model.State{}, fmt.Errorf("read snapshot: %w", err)
	}

	var state model.State
	if err := json.Unmarshal(data, &state); err != nil {
		return model.State{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if state.Competitors == nil {
		state.Competitors = make(map[string]model.CompetitorState)
	}
	return state, nil
}
