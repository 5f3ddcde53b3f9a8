package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/fcpanel/internal/common"
)

// MemoryStore is a thread-safe in-memory Store. It keeps the same raw
// encoding as SQLiteStore so decoding failures can be reproduced with Put.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return decodeSnapshot(m.data[common.SessionTokenKey], m.data[common.SessionUserKey])
}

func (m *MemoryStore) Set(_ context.Context, snap Snapshot) error {
	if snap.Token == "" {
		return errors.New("refusing to store an empty token")
	}
	user, err := encodeUser(snap.User)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[common.SessionTokenKey] = []byte(snap.Token)
	m.data[common.SessionUserKey] = user
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.data)
	return nil
}

// Put stores a raw value under key, bypassing encoding.
func (m *MemoryStore) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Raw returns the raw value under key.
func (m *MemoryStore) Raw(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}
