package commands

import (
	"context"
	"time"

	"tablebook/internal/domain/maintenance"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

// findConflicts fetches every write-blocking interval for the table and
// overlap-tests the candidate. It runs against whatever reads it is handed:
// inside the write transaction (after the table lock) the snapshot it sees is
// the one the insert will commit against. Fetch failures fail closed.
func findConflicts(
	ctx context.Context,
	reads shared.ConstraintReads,
	tableID uuid.UUID,
	candidate schedule.Interval,
	exclude uuid.UUID,
	defaultDuration time.Duration,
) ([]schedule.Conflict, error) {
	ids := []uuid.UUID{tableID}

	resRecords, err := reads.ReservationsOverlapping(ctx, ids, candidate, defaultDuration)
	if err != nil {
		return nil, errs.Mark(err, ErrDataUnavailable)
	}
	maintRecords, err := reads.MaintenanceOverlapping(ctx, ids, candidate)
	if err != nil {
		return nil, errs.Mark(err, ErrDataUnavailable)
	}

	resBusy, err := reservation.BusyIntervals(resRecords, defaultDuration, reservation.WriteBlocking)
	if err != nil {
		return nil, err
	}
	maintBusy, err := maintenance.BusyIntervals(maintRecords, candidate)
	if err != nil {
		return nil, err
	}

	return schedule.FindConflicts(candidate, append(resBusy, maintBusy...), exclude), nil
}
