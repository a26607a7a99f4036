// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

// Package store provides read-only object store backends. Each backend is
// scoped to a single bucket namespace; the probe inspects and enumerates
// objects, it never writes them.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Type identifies the backend implementation.
type Type string

const (
	TypeS3     Type = "s3"     // S3-compatible object store
	TypeLocal  Type = "local"  // Local filesystem
	TypeMemory Type = "memory" // In-memory, used for testing
)

// ObjectInfo describes a single stored object. It is produced fresh on
// every call and never cached.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Store is the read-only interface to one bucket of an object store.
type Store interface {
	// Type returns the backend type.
	Type() Type

	// Stat returns metadata for key. A missing key fails with
	// storerr.ErrNotFound; backend failures with storerr.ErrTransport.
	Stat(ctx context.Context, key string) (ObjectInfo, error)

	// List returns every object whose key starts with prefix. Backend
	// pagination is drained before returning. Zero matches is an empty
	// slice, not an error.
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)

	// Exists reports whether key resolves to an object.
	Exists(ctx context.Context, key string) (bool, error)

	// Close releases any resources.
	Close() error
}

// PrefixProber is an optional capability: backends that can cheaply check
// whether any key exists under a prefix implement it so callers avoid a
// full listing.
type PrefixProber interface {
	HasPrefix(ctx context.Context, prefix string) (bool, error)
}

// Config contains configuration for creating a store instance.
type Config struct {
	Type      Type   `json:"type" mapstructure:"type"`
	Endpoint  string `json:"endpoint,omitempty" mapstructure:"endpoint"`
	Bucket    string `json:"bucket,omitempty" mapstructure:"bucket"`
	Path      string `json:"path,omitempty" mapstructure:"path"`
	Region    string `json:"region,omitempty" mapstructure:"region"`
	AccessKey string `json:"access_key,omitempty" mapstructure:"access_key"`
	SecretKey string `json:"secret_key,omitempty" mapstructure:"secret_key"`
	PathStyle bool   `json:"path_style,omitempty" mapstructure:"path_style"`
}

// Registry holds registered backend factories
var (
	registryMu sync.RWMutex
	registry   = make(map[Type]Factory)
)

// Factory creates a Store from config
type Factory func(cfg Config) (Store, error)

// Register adds a factory for a store type
func Register(t Type, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[t] = f
}

// New creates a Store from config
func New(cfg Config) (Store, error) {
	registryMu.RLock()
	f, ok := registry[cfg.Type]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
	return f(cfg)
}

// Manager tracks multiple named stores, e.g. the backend profiles from a
// config file.
type Manager struct {
	mu      sync.RWMutex
	stores  map[string]Store
	configs map[string]Config
}

// NewManager creates a store manager
func NewManager() *Manager {
	return &Manager{
		stores:  make(map[string]Store),
		configs: make(map[string]Config),
	}
}

// Add creates and registers a store
func (m *Manager) Add(id string, cfg Config) error {
	st, err := New(cfg)
	if err != nil {
		return fmt.Errorf("create store %s: %w", id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, exists := m.stores[id]; exists {
		old.Close()
	}

	m.stores[id] = st
	m.configs[id] = cfg
	return nil
}

// Get retrieves a store by ID
func (m *Manager) Get(id string) (Store, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.stores[id]
	return s, ok
}

// Remove closes and removes a store
func (m *Manager) Remove(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.stores[id]; ok {
		s.Close()
		delete(m.stores, id)
		delete(m.configs, id)
	}
	return nil
}

// List returns all store IDs
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]string, 0, len(m.stores))
	for id := range m.stores {
		ids = append(ids, id)
	}
	return ids
}

// Close closes all stores
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.stores {
		s.Close()
	}
	m.stores = make(map[string]Store)
	m.configs = make(map[string]Config)
	return nil
}
