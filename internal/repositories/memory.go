package repositories

import (
	"context"
	"sort"
	"sync"

	"event-handlers-api/internal/models"
)

// MemoryRecordRepository is an in-memory RecordRepository used locally and in tests
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	table   string
	records map[string]models.Record
	order   []string
}

// NewMemoryRecordRepository creates an empty in-memory table
func NewMemoryRecordRepository(table string) *MemoryRecordRepository {
	return &MemoryRecordRepository{
		table:   table,
		records: make(map[string]models.Record),
	}
}

// Put implements RecordRepository.Put
func (m *MemoryRecordRepository) Put(ctx context.Context, record models.Record) error {
	id := record.ID()
	if id == "" {
		return NewRepositoryError("put", m.table, id, ErrInvalidID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[id]; !exists {
		m.order = append(m.order, id)
	}
	m.records[id] = record.Clone()
	return nil
}

// Update implements RecordRepository.Update
func (m *MemoryRecordRepository) Update(ctx context.Context, id string, changes map[string]interface{}) error {
	if id == "" {
		return NewRepositoryError("update", m.table, id, ErrInvalidID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, exists := m.records[id]
	if !exists {
		rec = models.Record{models.FieldID: id}
		m.order = append(m.order, id)
	}
	for k, v := range changes {
		if k == models.FieldID {
			continue
		}
		rec[k] = v
	}
	m.records[id] = rec
	return nil
}

// Get implements RecordRepository.Get
func (m *MemoryRecordRepository) Get(ctx context.Context, id string) (models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.records[id]
	if !exists {
		return nil, NewRepositoryError("get", m.table, id, ErrNotFound)
	}
	return rec.Clone(), nil
}

// Scan implements RecordRepository.Scan. Records come back in insertion order.
func (m *MemoryRecordRepository) Scan(ctx context.Context, limit int) ([]models.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Record, 0, len(m.order))
	for _, id := range m.order {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, m.records[id].Clone())
	}
	return out, nil
}

// Close implements RecordRepository.Close
func (m *MemoryRecordRepository) Close() error {
	return nil
}

// IDs returns the stored ids sorted, for assertions in tests
func (m *MemoryRecordRepository) IDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := append([]string(nil), m.order...)
	sort.Strings(ids)
	return ids
}
