package faqrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/polyglot-faq/internal/domain/faq"
)

// MemoryRepository is an in-memory faq.Repository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	records map[int64]faq.FAQ
}

// NewMemoryRepository constructs a repo backed by memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		nextID:  1,
		records: make(map[int64]faq.FAQ),
	}
}

// List implements faq.Repository.
func (r *MemoryRepository) List(_ context.Context) ([]faq.FAQ, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]faq.FAQ, 0, len(r.records))
	for _, record := range r.records {
		out = append(out, record.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get implements faq.Repository.
func (r *MemoryRepository) Get(_ context.Context, id int64) (faq.FAQ, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	record, ok := r.records[id]
	if !ok {
		return faq.FAQ{}, false, nil
	}
	return record.Clone(), true, nil
}

// Insert implements faq.Repository.
func (r *MemoryRepository) Insert(_ context.Context, record faq.FAQ) (faq.FAQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record = record.Clone()
	record.ID = r.nextID
	r.nextID++
	r.records[record.ID] = record
	return record.Clone(), nil
}

// Update implements faq.Repository.
func (r *MemoryRepository) Update(_ context.Context, record faq.FAQ) (faq.FAQ, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.records[record.ID]
	if !ok {
		return faq.FAQ{}, false, nil
	}
	record = record.Clone()
	record.CreatedAt = current.CreatedAt
	r.records[record.ID] = record
	return record.Clone(), true, nil
}

// Delete implements faq.Repository.
func (r *MemoryRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[id]; !ok {
		return false, nil
	}
	delete(r.records, id)
	return true, nil
}

var _ faq.Repository = (*MemoryRepository)(nil)
