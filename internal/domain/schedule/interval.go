package schedule

import (
	"fmt"
	"time"

	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidInterval = errs.New("invalid interval")

// Interval is a half-open time span [start, end). Touching endpoints do not
// overlap, so back-to-back bookings on the same table are always legal.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if !end.After(start) {
		return Interval{}, errs.Mark(
			errs.New(fmt.Sprintf("end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))),
			ErrInvalidInterval,
		)
	}
	return Interval{start: start, end: end}, nil
}

func (iv Interval) Start() time.Time {
	return iv.start
}

func (iv Interval) End() time.Time {
	return iv.end
}

func (iv Interval) Duration() time.Duration {
	return iv.end.Sub(iv.start)
}

// Overlaps is the single overlap predicate every conflict check in the
// resolver goes through: a.start < b.end && b.start < a.end.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.start.Before(other.end) && other.start.Before(iv.end)
}

// Span is a busy period that may be open-ended, which is how in-progress
// maintenance blocks a table until someone closes it out. A nil end means
// "from start onward, indefinitely".
type Span struct {
	start time.Time
	end   *time.Time
}

func NewSpan(start, end time.Time) (Span, error) {
	if !end.After(start) {
		return Span{}, errs.Mark(
			errs.New(fmt.Sprintf("span end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))),
			ErrInvalidInterval,
		)
	}
	e := end
	return Span{start: start, end: &e}, nil
}

func NewOpenSpan(start time.Time) Span {
	return Span{start: start}
}

func (s Span) Start() time.Time {
	return s.start
}

// End reports the span's end and whether one exists.
func (s Span) End() (time.Time, bool) {
	if s.end == nil {
		return time.Time{}, false
	}
	return *s.end, true
}

func (s Span) OpenEnded() bool {
	return s.end == nil
}

func (s Span) Overlaps(iv Interval) bool {
	if s.end == nil {
		return s.start.Before(iv.end)
	}
	return s.start.Before(iv.end) && iv.start.Before(*s.end)
}

// Covers reports whether the instant t falls inside the span.
func (s Span) Covers(t time.Time) bool {
	if t.Before(s.start) {
		return false
	}
	return s.end == nil || t.Before(*s.end)
}

type Source string

const (
	SourceReservation Source = "reservation"
	SourceMaintenance Source = "maintenance"
)

// BusyInterval is the normalized busy period for one table, derived fresh per
// query from a reservation or maintenance record. Seated distinguishes a party
// at the table from a forthcoming reservation in "now" status reporting.
type BusyInterval struct {
	RecordID uuid.UUID
	TableID  uuid.UUID
	Span     Span
	Source   Source
	Seated   bool
}
