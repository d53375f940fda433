package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Package storage provides the key-value side of the fetch path: a long-lived
// handle to a local document store, read by key, values kept as raw bytes.

// ErrNotFound reports an absent key.
var ErrNotFound = errors.New("key not found")

// Store is a read-mostly key-value handle. Put exists for seeding and tests.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Options controls backend-specific settings for concrete store implementations.
type Options struct {
	Bucket string
}

const defaultBucket = "test"

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	if strings.TrimSpace(opts.Bucket) == "" {
		opts.Bucket = defaultBucket
	}

	switch typ {
	case "memory":
		return NewMemoryStore(), nil
	case "", "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

// memoryStore is a map-backed Store for tests and local runs.
type memoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory Store.
func NewMemoryStore() Store {
	return &memoryStore{values: make(map[string][]byte)}
}

func (m *memoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("get %q: %w", key, ErrNotFound)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *memoryStore) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *memoryStore) Close() error { return nil }
