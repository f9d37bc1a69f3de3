// Package storage adapts the per-browser key-value medium the shop state
// lives in. Mediums are raw byte stores; Store layers JSON encoding and
// failure tolerance on top.
package storage

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound      = errors.New("storage: key not found")
	ErrUnavailable   = errors.New("storage: medium unavailable")
	ErrQuotaExceeded = errors.New("storage: quota exceeded")
)

// Medium is a synchronous string-keyed byte store. Get reports
// ErrNotFound for absent keys.
type Medium interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Memory keeps values in process. A positive Quota caps the size of a
// single value. Unavailable mimics a sandboxed context that refuses all
// access.
type Memory struct {
	mu          sync.RWMutex
	data        map[string][]byte
	quota       int
	unavailable bool
}

func NewMemory(quota int) *Memory {
	return &Memory{data: make(map[string][]byte), quota: quota}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.unavailable {
		return nil, ErrUnavailable
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.unavailable {
		return ErrUnavailable
	}
	if m.quota > 0 && len(value) > m.quota {
		return ErrQuotaExceeded
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	return nil
}

// SetUnavailable switches the medium between working and refusing access.
func (m *Memory) SetUnavailable(v bool) {
	m.mu.Lock()
	m.unavailable = v
	m.mu.Unlock()
}

// Raw returns what is stored under key without any decoding, for tests and
// debugging.
func (m *Memory) Raw(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return string(v), ok
}

// Put writes a raw payload, bypassing the quota.
func (m *Memory) Put(key, raw string) {
	m.mu.Lock()
	m.data[key] = []byte(raw)
	m.mu.Unlock()
}
