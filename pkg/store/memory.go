// Copyright 2026 The objprobe Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/objprobe/objprobe/pkg/storerr"
)

func init() {
	Register(TypeMemory, func(cfg Config) (Store, error) {
		return NewMemory(), nil
	})
}

type memObject struct {
	size    int64
	modTime time.Time
}

// Memory is an in-memory store used as a test double. Listings come back
// in lexicographic key order, mirroring S3.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]memObject
	failErr error
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		objects: make(map[string]memObject),
	}
}

// Put seeds an object. The stored size is len(data); contents are not
// retained since the probe never reads object bodies.
func (m *Memory) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{size: int64(len(data)), modTime: time.Now()}
}

// PutSized seeds an object of the given size without materializing data.
func (m *Memory) PutSized(key string, size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memObject{size: size, modTime: time.Now()}
}

// FailWith makes every subsequent call fail with a transport error
// wrapping err. Pass nil to clear.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *Memory) Type() Type {
	return TypeMemory
}

func (m *Memory) Stat(ctx context.Context, key string) (ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failErr != nil {
		return ObjectInfo{}, storerr.Transport(key, m.failErr)
	}
	obj, ok := m.objects[key]
	if !ok {
		return ObjectInfo{}, storerr.NotFound(key)
	}
	return ObjectInfo{Key: key, Size: obj.size, ModTime: obj.modTime}, nil
}

func (m *Memory) List(ctx context.Context, prefix string) ([]ObjectInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failErr != nil {
		return nil, storerr.Transport(prefix, m.failErr)
	}

	var infos []ObjectInfo
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, ObjectInfo{Key: key, Size: obj.size, ModTime: obj.modTime})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (m *Memory) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failErr != nil {
		return false, storerr.Transport(key, m.failErr)
	}
	_, ok := m.objects[key]
	return ok, nil
}

func (m *Memory) HasPrefix(ctx context.Context, prefix string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.failErr != nil {
		return false, storerr.Transport(prefix, m.failErr)
	}
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects = make(map[string]memObject)
	return nil
}

// AddMemory is a convenience method to add a memory store to the manager
func (m *Manager) AddMemory(id string) error {
	return m.Add(id, Config{
		Type: TypeMemory,
	})
}
