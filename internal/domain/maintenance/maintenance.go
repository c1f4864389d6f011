package maintenance

import (
	"strings"
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errs.New("invalid maintenance status")
	ErrEmptyReason   = errs.New("maintenance reason is required")
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Record is a maintenance row as fetched for availability evaluation.
type Record struct {
	ID             uuid.UUID
	TableID        uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	ActualStart    *time.Time
	ActualEnd      *time.Time
	Status         Status
}

// Span derives the blocking span for a record, or reports that it blocks
// nothing. In-progress maintenance with no actual end is open-ended: it holds
// the table until someone resolves it, no matter how far ahead the query looks.
func (r Record) BlockingSpan() (schedule.Span, bool, error) {
	switch r.Status {
	case StatusInProgress:
		start := r.ScheduledStart
		if r.ActualStart != nil {
			start = *r.ActualStart
		}
		if r.ActualEnd != nil {
			span, err := schedule.NewSpan(start, *r.ActualEnd)
			return span, err == nil, err
		}
		return schedule.NewOpenSpan(start), true, nil
	case StatusScheduled:
		span, err := schedule.NewSpan(r.ScheduledStart, r.ScheduledEnd)
		return span, err == nil, err
	default:
		// completed and cancelled never block
		return schedule.Span{}, false, nil
	}
}

// BusyIntervals normalizes maintenance records into busy intervals. Scheduled
// windows count only when they intersect the query window; in-progress
// records count regardless of it.
func BusyIntervals(records []Record, window schedule.Interval) ([]schedule.BusyInterval, error) {
	var busy []schedule.BusyInterval
	for _, rec := range records {
		span, blocks, err := rec.BlockingSpan()
		if err != nil {
			return nil, err
		}
		if !blocks {
			continue
		}
		if rec.Status == StatusScheduled && !span.Overlaps(window) {
			continue
		}
		busy = append(busy, schedule.BusyInterval{
			RecordID: rec.ID,
			TableID:  rec.TableID,
			Span:     span,
			Source:   schedule.SourceMaintenance,
		})
	}
	return busy, nil
}

// Maintenance is a candidate maintenance window built at write time, checked
// for conflicts inside the writer's transaction like a reservation.
type Maintenance struct {
	id        uuid.UUID
	tableID   uuid.UUID
	window    schedule.Interval
	reason    string
	status    Status
	createdAt time.Time
}

func NewMaintenance(tableID uuid.UUID, window schedule.Interval, reason string, asOf time.Time) (*Maintenance, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrEmptyReason
	}

	return &Maintenance{
		id:        uuid.New(),
		tableID:   tableID,
		window:    window,
		reason:    reason,
		status:    StatusScheduled,
		createdAt: asOf,
	}, nil
}

func (m *Maintenance) ID() uuid.UUID             { return m.id }
func (m *Maintenance) TableID() uuid.UUID        { return m.tableID }
func (m *Maintenance) Window() schedule.Interval { return m.window }
func (m *Maintenance) Reason() string            { return m.reason }
func (m *Maintenance) Status() Status            { return m.status }
func (m *Maintenance) CreatedAt() time.Time      { return m.createdAt }
