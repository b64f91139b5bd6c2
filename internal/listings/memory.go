package listings

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// memoryRepository is an in-memory Repository used in tests and for
// running the API without a database.
type memoryRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]Listing
}

func NewMemoryRepository() Repository {
	return &memoryRepository{rows: make(map[uuid.UUID]Listing)}
}

func (r *memoryRepository) Create(_ context.Context, l *Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[l.ID]; exists {
		return fmt.Errorf("listing %s already exists", l.ID)
	}
	r.rows[l.ID] = *l
	return nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *memoryRepository) Search(_ context.Context, filter SearchFilter, limit int) ([]Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var results []Listing
	for _, l := range r.rows {
		if matchesFilter(l, filter) {
			results = append(results, l)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].IsFeatured != results[j].IsFeatured {
			return results[i].IsFeatured
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (r *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return fmt.Errorf("listing not found")
	}
	delete(r.rows, id)
	return nil
}

func matchesFilter(l Listing, f SearchFilter) bool {
	if f.City != "" && !strings.EqualFold(l.City, f.City) {
		return false
	}
	if f.PropertyType != "" && !strings.EqualFold(l.PropertyType, f.PropertyType) {
		return false
	}
	if f.MinPrice > 0 && l.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && l.Price > f.MaxPrice {
		return false
	}
	if f.MinSize > 0 && l.Size < f.MinSize {
		return false
	}
	if f.MaxSize > 0 && l.Size > f.MaxSize {
		return false
	}
	return true
}
