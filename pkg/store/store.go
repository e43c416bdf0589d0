// Package store persists diagram states under string keys.
//
// It backs two features: autosave (one fixed key, overwritten on every
// state change, loaded at startup when no share link is present) and the
// HTTP API's saved diagrams (uuid keys). Backends:
//
//   - memory: in-process map, for tests and the default CLI run
//   - file: one JSON file per key in a config directory
//   - redis: shared autosave for multi-instance deployments
//   - mongo: durable saved-diagram storage
//
// All backends serialize the same diagram.State shape, so diagrams move
// between them freely.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flowpad/flowpad/pkg/diagram"
)

// ErrNotFound is returned by Load when no diagram exists under the key.
var ErrNotFound = errors.New("diagram not found")

// AutosaveKey is the fixed key the autosave feature writes to.
const AutosaveKey = "autosave"

// Store is the interface for diagram persistence backends.
// Implementations must return deep-enough copies that callers can mutate
// a loaded state without corrupting the stored one.
type Store interface {
	// Load retrieves the state stored under key.
	// Returns ErrNotFound if the key has never been saved.
	Load(ctx context.Context, key string) (*diagram.State, error)

	// Save stores the state under key, overwriting any previous value.
	Save(ctx context.Context, key string, s *diagram.State) error

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Config selects and parameterizes a backend.
type Config struct {
	Backend string // "memory", "file", "redis", or "mongo"

	// File backend
	Path string // storage directory; empty means the default config dir

	// Redis backend
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration // 0 means no expiry

	// Mongo backend
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

// Open creates the backend named by cfg.Backend. An empty backend name
// selects the memory store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Path)
	case "redis":
		return NewRedisStore(ctx, cfg)
	case "mongo":
		return NewMongoStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
