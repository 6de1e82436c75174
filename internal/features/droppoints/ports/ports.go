package ports

import (
	"context"
	"errors"
	"time"

	"droppoint-tracker/internal/features/droppoints/domain"
)

// ErrDuplicateNumber is returned by DropPointRepository.Insert when the
// backend already holds a drop point with the same number.
var ErrDuplicateNumber = errors.New("drop point number already stored")

// DropPointService defines the primary port for drop point operations.
type DropPointService interface {
	Create(ctx context.Context, p domain.DropPointParams) (*domain.DropPoint, error)
	Get(ctx context.Context, number int) (*domain.DropPoint, error)
	List(ctx context.Context) []*domain.DropPoint
	Remove(ctx context.Context, number int, at *time.Time) error
	Report(ctx context.Context, number int, state domain.ReportState, at *time.Time) error
	LogVisit(ctx context.Context, number int, action domain.VisitAction, at *time.Time) error
	Relocate(ctx context.Context, number int, p domain.LocationParams) error
	ChangeCapacity(ctx context.Context, number int, p domain.CapacityParams) error
}

// DropPointRepository defines the secondary port for the storage backend.
// The core is agnostic to whether it is in-memory, file-backed or a
// database; it only needs uniqueness-checked inserts and snapshot
// round-trips.
type DropPointRepository interface {
	// Insert persists a new drop point. It fails if the number is already
	// stored, so a second process cannot slip in a duplicate.
	Insert(ctx context.Context, s domain.Snapshot) error
	// Save overwrites the stored snapshot for an existing drop point.
	Save(ctx context.Context, s domain.Snapshot) error
	// LoadAll returns every stored snapshot.
	LoadAll(ctx context.Context) ([]domain.Snapshot, error)
}
