package commands

import (
	"fmt"
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrTableNotFound           = errs.New("table not found")
	ErrTableInactive           = errs.New("table is not active")
	ErrInvalidTimeSlot         = errs.New("invalid time slot")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDataUnavailable         = errs.New("constraint source unavailable")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// ConflictRecordView is one blocking record, shaped for the caller to explain
// a rejection: which record, what kind, and the span it holds.
type ConflictRecordView struct {
	RecordID uuid.UUID  `json:"record_id"`
	Source   string     `json:"source"`
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"` // nil for open-ended maintenance
}

// ConflictError is the expected "no" answer from write-time checks. It always
// carries the conflicting records, never just a boolean.
type ConflictError struct {
	TableID   uuid.UUID
	Conflicts []ConflictRecordView
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("table %s has %d conflicting records", e.TableID, len(e.Conflicts))
}

func conflictViews(conflicts []schedule.Conflict) []ConflictRecordView {
	views := make([]ConflictRecordView, len(conflicts))
	for i, c := range conflicts {
		view := ConflictRecordView{
			RecordID: c.RecordID,
			Source:   string(c.Source),
			Start:    c.Span.Start(),
		}
		if end, ok := c.Span.End(); ok {
			e := end
			view.End = &e
		}
		views[i] = view
	}
	return views
}

// ConflictReport is the result of the standalone wouldConflict predicate.
type ConflictReport struct {
	Conflict  bool                 `json:"conflict"`
	TableID   uuid.UUID            `json:"table_id"`
	Conflicts []ConflictRecordView `json:"conflicting_records"`
}

type CreateReservationCommand struct {
	RestaurantID uuid.UUID
	TableID      uuid.UUID
	CustomerID   uuid.UUID
	PartySize    int
	Start        time.Time
	End          time.Time
	Note         string
}

type ScheduleMaintenanceCommand struct {
	TableID uuid.UUID
	Start   time.Time
	End     time.Time
	Reason  string
}

type CheckConflictQuery struct {
	TableID   uuid.UUID
	Start     time.Time
	End       time.Time
	ExcludeID *uuid.UUID
}

// ReservationResult is the write-side view of a created reservation.
type ReservationResult struct {
	ID        uuid.UUID `json:"id"`
	TableID   uuid.UUID `json:"table_id"`
	PartySize int       `json:"party_size"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status"`
}

type MaintenanceResult struct {
	ID      uuid.UUID `json:"id"`
	TableID uuid.UUID `json:"table_id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	Status  string    `json:"status"`
	Reason  string    `json:"reason"`
}
