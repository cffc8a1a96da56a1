package storage

import (
	"sync"
	"time"

	"github.com/cardsheet/cardsheet-backend/internal/models"
)

// MemoryStore keeps the conversion log in memory, for tests and local runs.
type MemoryStore struct {
	mu          sync.RWMutex
	conversions []*models.Conversion
	counter     uint
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) RecordConversion(conversion *models.Conversion) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counter++
	conversion.ID = m.counter
	conversion.CreatedAt = time.Now()
	m.conversions = append(m.conversions, conversion)
	return nil
}

func (m *MemoryStore) RecentConversions(limit int) ([]*models.Conversion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if limit <= 0 || limit > len(m.conversions) {
		limit = len(m.conversions)
	}
	out := make([]*models.Conversion, 0, limit)
	for i := len(m.conversions) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.conversions[i])
	}
	return out, nil
}

func (m *MemoryStore) CountConversions() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return int64(len(m.conversions)), nil
}
