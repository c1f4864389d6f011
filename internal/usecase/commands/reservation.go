package commands

import (
	"context"
	"fmt"
	"time"

	"tablebook/internal/domain/dining"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationCommands interface {
	// CreateReservation re-validates the candidate slot and inserts it as one
	// transactional unit. The per-table advisory lock serializes concurrent
	// writers so both cannot observe the same free window.
	CreateReservation(ctx context.Context, cmd CreateReservationCommand) (*ReservationResult, error)
	// CheckConflict is the standalone wouldConflict predicate. It runs with
	// snapshot consistency; the authoritative re-check happens inside the
	// write transaction.
	CheckConflict(ctx context.Context, q CheckConflictQuery) (*ConflictReport, error)
}

type reservationCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewReservationCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) ReservationCommands {
	return &reservationCommandsImpl{uow: uow, clock: clk, cfg: cfg}
}

func (r *reservationCommandsImpl) CreateReservation(ctx context.Context, cmd CreateReservationCommand) (*ReservationResult, error) {
	slot, err := schedule.NewInterval(cmd.Start, cmd.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}
	if r.cfg.MaxPartySize > 0 && cmd.PartySize > r.cfg.MaxPartySize {
		return nil, errs.Mark(
			errs.New(fmt.Sprintf("party size %d exceeds maximum %d", cmd.PartySize, r.cfg.MaxPartySize)),
			ErrDomainValidation,
		)
	}

	var result *ReservationResult
	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		table, err := tx.Reads().TableByID(ctx, cmd.TableID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrTableNotFound
			}
			return errs.Mark(err, ErrDataUnavailable)
		}

		res, err := reservation.NewReservation(
			cmd.RestaurantID, *table, cmd.CustomerID, cmd.PartySize, slot, cmd.Note, r.clock.Now(),
		)
		if err != nil {
			switch {
			case errs.Is(err, dining.ErrInvalidPartySize),
				errs.Is(err, reservation.ErrPartyTooLarge),
				errs.Is(err, reservation.ErrSlotInPast):
				return errs.Mark(err, ErrDomainValidation)
			case errs.Is(err, reservation.ErrTableInactive):
				return ErrTableInactive
			default:
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		if err := tx.LockTable(ctx, cmd.TableID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		conflicts, err := findConflicts(ctx, tx.Reads(), cmd.TableID, slot, uuid.Nil, r.defaultDuration())
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{TableID: cmd.TableID, Conflicts: conflictViews(conflicts)}
		}

		if err := tx.Reservations().Create(ctx, res); err != nil {
			// The storage-level overlap constraint is the backstop; a
			// conflict here means a writer slipped past the lock scope.
			if infra.IsKind(err, infra.KindConflict) {
				return &ConflictError{TableID: cmd.TableID}
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &ReservationResult{
			ID:        res.ID(),
			TableID:   res.TableID(),
			PartySize: res.PartySize(),
			Start:     res.Slot().Start(),
			End:       res.Slot().End(),
			Status:    res.Status().String(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *reservationCommandsImpl) CheckConflict(ctx context.Context, q CheckConflictQuery) (*ConflictReport, error) {
	candidate, err := schedule.NewInterval(q.Start, q.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	exclude := uuid.Nil
	if q.ExcludeID != nil {
		exclude = *q.ExcludeID
	}

	var report *ConflictReport
	err = r.uow.WithDB(ctx, func(ctx context.Context, reads shared.ConstraintReads) error {
		if _, err := reads.TableByID(ctx, q.TableID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrTableNotFound
			}
			return errs.Mark(err, ErrDataUnavailable)
		}

		conflicts, err := findConflicts(ctx, reads, q.TableID, candidate, exclude, r.defaultDuration())
		if err != nil {
			return err
		}
		report = &ConflictReport{
			Conflict:  len(conflicts) > 0,
			TableID:   q.TableID,
			Conflicts: conflictViews(conflicts),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *reservationCommandsImpl) defaultDuration() time.Duration {
	return time.Duration(r.cfg.DefaultDurationMin) * time.Minute
}
