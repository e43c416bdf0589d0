package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// FileStore persists diagrams as JSON files in a directory, one file per
// key. Suitable for single-machine CLI use.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based store.
// If baseDir is empty, defaults to ~/.config/flowpad/diagrams/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "flowpad", "diagrams")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create diagram dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// path maps a key to its file. Keys are opaque identifiers, never paths:
// anything that could escape baseDir is rejected.
func (f *FileStore) path(key string) (string, error) {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid diagram key %q", key)
	}
	return filepath.Join(f.baseDir, key+".json"), nil
}

func (f *FileStore) Load(ctx context.Context, key string) (*diagram.State, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read diagram file: %w", err)
	}
	return decodeState(data)
}

func (f *FileStore) Save(ctx context.Context, key string, s *diagram.State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.path(key)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal diagram: %w", err)
	}
	if err := os.WriteFile(p, data, 0600); err != nil {
		return fmt.Errorf("write diagram file: %w", err)
	}
	return nil
}

func (f *FileStore) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove diagram file: %w", err)
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

// Path returns the storage directory.
func (f *FileStore) Path() string { return f.baseDir }

var _ Store = (*FileStore)(nil)

// decodeState unmarshals a stored state and re-seeds its ID counters via
// Replace, so a loaded diagram can be edited immediately.
func decodeState(data []byte) (*diagram.State, error) {
	var raw diagram.State
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse diagram: %w", err)
	}
	s := diagram.NewState(raw.Direction, raw.Theme)
	s.Replace(&raw)
	return s, nil
}
