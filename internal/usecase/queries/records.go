package queries

import (
	"context"
	"time"

	"tablebook/internal/infra"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound = errs.New("reservation not found")
	ErrMaintenanceNotFound = errs.New("maintenance not found")
)

// Read models for read-after-write lookups.
type ReservationView struct {
	ID           uuid.UUID  `json:"id"`
	RestaurantID uuid.UUID  `json:"restaurant_id"`
	TableID      *uuid.UUID `json:"table_id,omitempty"`
	TableNumber  *string    `json:"table_number,omitempty"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	PartySize    int        `json:"party_size"`
	Start        time.Time  `json:"start"`
	End          *time.Time `json:"end,omitempty"`
	Status       string     `json:"status"`
	Note         string     `json:"note,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type MaintenanceView struct {
	ID             uuid.UUID  `json:"id"`
	TableID        uuid.UUID  `json:"table_id"`
	ScheduledStart time.Time  `json:"scheduled_start"`
	ScheduledEnd   time.Time  `json:"scheduled_end"`
	ActualStart    *time.Time `json:"actual_start,omitempty"`
	ActualEnd      *time.Time `json:"actual_end,omitempty"`
	Status         string     `json:"status"`
	Reason         string     `json:"reason"`
}

// RecordViews is the read-side port for single-record lookups.
type RecordViews interface {
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	MaintenanceByID(ctx context.Context, id uuid.UUID) (*MaintenanceView, error)
}

type RecordQueries interface {
	GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	GetMaintenance(ctx context.Context, id uuid.UUID) (*MaintenanceView, error)
}

type recordQueriesImpl struct {
	views RecordViews
}

func NewRecordQueries(views RecordViews) RecordQueries {
	return &recordQueriesImpl{views: views}
}

func (r *recordQueriesImpl) GetReservation(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := r.views.ReservationByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrReservationNotFound)
		}
		return nil, errs.Mark(err, ErrDataUnavailable)
	}
	return view, nil
}

func (r *recordQueriesImpl) GetMaintenance(ctx context.Context, id uuid.UUID) (*MaintenanceView, error) {
	view, err := r.views.MaintenanceByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrMaintenanceNotFound)
		}
		return nil, errs.Mark(err, ErrDataUnavailable)
	}
	return view, nil
}
