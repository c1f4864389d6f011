package shared

import (
	"context"
	"time"

	"tablebook/internal/domain/dining"
	"tablebook/internal/domain/maintenance"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"

	"github.com/google/uuid"
)

// UnitOfWork is the transactional boundary for "check availability, then
// write" flows. The conflict check and the insert must observe the same data,
// or two writers can both see a free table and both commit.
type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: single-query reads using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, reads ConstraintReads) error) error
}

type Tx interface {
	Reservations() ReservationWriter
	Maintenance() MaintenanceWriter
	Reads() ConstraintReads
	// LockTable serializes writers on one table for the rest of the
	// transaction. Taken before the conflict re-check.
	LockTable(ctx context.Context, tableID uuid.UUID) error
}

// ConstraintReads fetches the resolver's three constraint sources. Fetch
// failures must surface as errors, never as empty results: a missing source
// is not "no conflicts".
type ConstraintReads interface {
	TablesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]dining.Table, error)
	TableByID(ctx context.Context, id uuid.UUID) (*dining.Table, error)
	// ReservationsOverlapping returns reservation rows of any status whose
	// span (end defaulted to start+defaultDuration when absent) overlaps the
	// window, for the given tables. Status filtering is domain policy, not SQL.
	ReservationsOverlapping(ctx context.Context, tableIDs []uuid.UUID, window schedule.Interval, defaultDuration time.Duration) ([]reservation.Record, error)
	// MaintenanceOverlapping returns scheduled rows intersecting the window
	// plus every in-progress row regardless of it.
	MaintenanceOverlapping(ctx context.Context, tableIDs []uuid.UUID, window schedule.Interval) ([]maintenance.Record, error)
	OperatingHours(ctx context.Context, restaurantID uuid.UUID) ([]schedule.DayHours, error)
}

type ReservationWriter interface {
	Create(ctx context.Context, res *reservation.Reservation) error
}

type MaintenanceWriter interface {
	Create(ctx context.Context, m *maintenance.Maintenance) error
}
