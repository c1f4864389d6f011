package reservation

import (
	"time"

	"tablebook/internal/domain/schedule"

	"github.com/google/uuid"
)

// Record is a reservation row as fetched for availability evaluation. End is
// nil for legacy rows that stored only a start time; the adapter derives the
// end from the restaurant's default duration.
type Record struct {
	ID      uuid.UUID
	TableID *uuid.UUID
	Start   time.Time
	End     *time.Time
	Status  Status
}

// BusyIntervals normalizes reservation records into busy intervals under the
// given blocking policy. Records without an assigned table block nothing;
// they belong to the waitlist until a table is picked. A record whose end is
// not after its start is a data bug and fails with ErrInvalidInterval rather
// than being silently dropped or corrected.
func BusyIntervals(records []Record, defaultDuration time.Duration, policy BlockingPolicy) ([]schedule.BusyInterval, error) {
	var busy []schedule.BusyInterval
	for _, rec := range records {
		if rec.TableID == nil {
			continue
		}
		if !policy.blocks(rec.Status) {
			continue
		}

		end := rec.Start.Add(defaultDuration)
		if rec.End != nil {
			end = *rec.End
		}
		span, err := schedule.NewSpan(rec.Start, end)
		if err != nil {
			return nil, err
		}

		busy = append(busy, schedule.BusyInterval{
			RecordID: rec.ID,
			TableID:  *rec.TableID,
			Span:     span,
			Source:   schedule.SourceReservation,
			Seated:   rec.Status == StatusSeated,
		})
	}
	return busy, nil
}
