package store

import (
	"context"
	"sync"
	"time"

	"github.com/serroba/url-shortener/internal/shortener"
)

// MemoryStore is an in-memory implementation of shortener.Repository.
type MemoryStore struct {
	mu     sync.RWMutex
	lastID shortener.ID
	urls   map[shortener.ID]shortener.URLRecord
}

// NewMemoryStore creates a new in-memory URL store. IDs start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		urls: make(map[shortener.ID]shortener.URLRecord),
	}
}

func (m *MemoryStore) Insert(_ context.Context, url string) (*shortener.URLRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastID++

	record := shortener.URLRecord{
		ID:        m.lastID,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
	m.urls[record.ID] = record

	return &record, nil
}

func (m *MemoryStore) FindByID(_ context.Context, id shortener.ID) (*shortener.URLRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.urls[id]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return &record, nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(_ context.Context) error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*MemoryStore)(nil)
