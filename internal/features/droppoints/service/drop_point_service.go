package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"droppoint-tracker/internal/features/droppoints/domain"
	"droppoint-tracker/internal/features/droppoints/ports"
)

var (
	// ErrNotFound is returned when no drop point exists for a number.
	ErrNotFound = errors.New("drop point not found")
)

// DropPointServiceImpl implements ports.DropPointService on top of the
// in-memory registry, writing every change through to the storage backend.
type DropPointServiceImpl struct {
	registry *domain.Registry
	repo     ports.DropPointRepository
}

// NewDropPointService creates a new DropPointServiceImpl.
func NewDropPointService(registry *domain.Registry, repo ports.DropPointRepository) *DropPointServiceImpl {
	return &DropPointServiceImpl{
		registry: registry,
		repo:     repo,
	}
}

// Restore loads every persisted drop point into the registry. Called once
// at startup before the service handles requests.
func (s *DropPointServiceImpl) Restore(ctx context.Context) error {
	snapshots, err := s.repo.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("service: failed to load drop points: %w", err)
	}
	for _, snap := range snapshots {
		if err := s.registry.RestoreSnapshot(snap); err != nil {
			return fmt.Errorf("service: failed to restore drop point %d: %w", snap.Number, err)
		}
	}
	return nil
}

// Create registers a new drop point and persists it. The registry performs
// the atomic uniqueness check; the repository insert is uniqueness-checked
// again so concurrent processes sharing a backend cannot race.
func (s *DropPointServiceImpl) Create(ctx context.Context, p domain.DropPointParams) (*domain.DropPoint, error) {
	dp, err := s.registry.Create(p)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, dp.Snapshot()); err != nil {
		s.registry.Discard(dp.Number())
		if errors.Is(err, ports.ErrDuplicateNumber) {
			// Another process sharing the backend won the race.
			verr := &domain.ValidationError{}
			verr.Add("number", "that drop point already exists")
			return nil, verr
		}
		return nil, fmt.Errorf("service: failed to persist drop point: %w", err)
	}
	return dp, nil
}

// Get returns the drop point with the given number or ErrNotFound.
func (s *DropPointServiceImpl) Get(ctx context.Context, number int) (*domain.DropPoint, error) {
	dp, ok := s.registry.Get(number)
	if !ok {
		return nil, ErrNotFound
	}
	return dp, nil
}

// List returns every drop point, removed ones included, ordered by number.
func (s *DropPointServiceImpl) List(ctx context.Context) []*domain.DropPoint {
	return s.registry.All()
}

// Remove marks a drop point as removed and persists the change.
func (s *DropPointServiceImpl) Remove(ctx context.Context, number int, at *time.Time) error {
	return s.mutate(ctx, number, func(dp *domain.DropPoint) error {
		return dp.Remove(at)
	})
}

// Report logs a visitor observation and persists the change.
func (s *DropPointServiceImpl) Report(ctx context.Context, number int, state domain.ReportState, at *time.Time) error {
	return s.mutate(ctx, number, func(dp *domain.DropPoint) error {
		return dp.Report(state, at)
	})
}

// LogVisit logs a maintenance visit and persists the change.
func (s *DropPointServiceImpl) LogVisit(ctx context.Context, number int, action domain.VisitAction, at *time.Time) error {
	return s.mutate(ctx, number, func(dp *domain.DropPoint) error {
		return dp.Visit(action, at)
	})
}

// Relocate appends a new location and persists the change.
func (s *DropPointServiceImpl) Relocate(ctx context.Context, number int, p domain.LocationParams) error {
	return s.mutate(ctx, number, func(dp *domain.DropPoint) error {
		return dp.Relocate(p)
	})
}

// ChangeCapacity appends a new crate count and persists the change.
func (s *DropPointServiceImpl) ChangeCapacity(ctx context.Context, number int, p domain.CapacityParams) error {
	return s.mutate(ctx, number, func(dp *domain.DropPoint) error {
		return dp.ChangeCapacity(p)
	})
}

// mutate applies a domain operation to one drop point and writes the new
// snapshot through to the backend. Domain errors pass through untouched so
// handlers can map them; only persistence failures are wrapped.
func (s *DropPointServiceImpl) mutate(ctx context.Context, number int, op func(dp *domain.DropPoint) error) error {
	dp, ok := s.registry.Get(number)
	if !ok {
		return ErrNotFound
	}
	if err := op(dp); err != nil {
		return err
	}
	if err := s.repo.Save(ctx, dp.Snapshot()); err != nil {
		return fmt.Errorf("service: failed to persist drop point: %w", err)
	}
	return nil
}
