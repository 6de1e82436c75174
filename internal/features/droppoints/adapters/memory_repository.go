package adapters

import (
	"context"
	"fmt"
	"sync"

	"droppoint-tracker/internal/features/droppoints/domain"
	"droppoint-tracker/internal/features/droppoints/ports"
)

// MemoryDropPointRepository implements ports.DropPointRepository in process
// memory. Used for development without a Redis and as a test double.
type MemoryDropPointRepository struct {
	mu        sync.Mutex
	snapshots map[int]domain.Snapshot
}

// NewMemoryDropPointRepository creates an empty in-memory repository.
func NewMemoryDropPointRepository() *MemoryDropPointRepository {
	return &MemoryDropPointRepository{
		snapshots: make(map[int]domain.Snapshot),
	}
}

// Insert stores a new snapshot, failing on a duplicate number. Check and
// insert happen under one lock.
func (r *MemoryDropPointRepository) Insert(ctx context.Context, s domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.snapshots[s.Number]; exists {
		return fmt.Errorf("drop point %d: %w", s.Number, ports.ErrDuplicateNumber)
	}
	r.snapshots[s.Number] = s
	return nil
}

// Save overwrites the stored snapshot.
func (r *MemoryDropPointRepository) Save(ctx context.Context, s domain.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots[s.Number] = s
	return nil
}

// LoadAll returns every stored snapshot.
func (r *MemoryDropPointRepository) LoadAll(ctx context.Context) ([]domain.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.Snapshot, 0, len(r.snapshots))
	for _, s := range r.snapshots {
		out = append(out, s)
	}
	return out, nil
}
