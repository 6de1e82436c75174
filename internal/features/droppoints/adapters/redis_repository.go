package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"droppoint-tracker/internal/core/cache"
	"droppoint-tracker/internal/features/droppoints/domain"
	"droppoint-tracker/internal/features/droppoints/ports"
)

const dropPointKeyPrefix = "droppoint:"

// RedisDropPointRepository implements ports.DropPointRepository on the
// key-value store port, one JSON snapshot per drop point.
type RedisDropPointRepository struct {
	store cache.Store
}

// NewRedisDropPointRepository creates a new RedisDropPointRepository.
func NewRedisDropPointRepository(s cache.Store) *RedisDropPointRepository {
	return &RedisDropPointRepository{
		store: s,
	}
}

func dropPointKey(number int) string {
	return dropPointKeyPrefix + strconv.Itoa(number)
}

// Insert persists a new drop point. The write goes through SetNX so two
// processes sharing the backend cannot both create the same number.
func (r *RedisDropPointRepository) Insert(ctx context.Context, s domain.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal drop point %d: %w", s.Number, err)
	}

	ok, err := r.store.SetNX(ctx, dropPointKey(s.Number), data, 0)
	if err != nil {
		return fmt.Errorf("failed to insert drop point %d: %w", s.Number, err)
	}
	if !ok {
		return fmt.Errorf("drop point %d: %w", s.Number, ports.ErrDuplicateNumber)
	}
	return nil
}

// Save overwrites the stored snapshot for an existing drop point.
func (r *RedisDropPointRepository) Save(ctx context.Context, s domain.Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal drop point %d: %w", s.Number, err)
	}

	if err := r.store.Set(ctx, dropPointKey(s.Number), data, 0); err != nil {
		return fmt.Errorf("failed to save drop point %d: %w", s.Number, err)
	}
	return nil
}

// LoadAll returns every stored drop point snapshot.
func (r *RedisDropPointRepository) LoadAll(ctx context.Context) ([]domain.Snapshot, error) {
	keys, err := r.store.Keys(ctx, dropPointKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list drop points: %w", err)
	}

	snapshots := make([]domain.Snapshot, 0, len(keys))
	for _, key := range keys {
		data, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", key, err)
		}

		var snap domain.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", key, err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}
