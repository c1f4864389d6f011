package commands

import (
	"context"
	"time"

	"tablebook/internal/domain/maintenance"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

type MaintenanceCommands interface {
	// ScheduleMaintenance books a maintenance window under the same
	// lock-check-insert discipline as a reservation; a table cannot be taken
	// out of service under a confirmed party.
	ScheduleMaintenance(ctx context.Context, cmd ScheduleMaintenanceCommand) (*MaintenanceResult, error)
}

type maintenanceCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewMaintenanceCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) MaintenanceCommands {
	return &maintenanceCommandsImpl{uow: uow, clock: clk, cfg: cfg}
}

func (m *maintenanceCommandsImpl) ScheduleMaintenance(ctx context.Context, cmd ScheduleMaintenanceCommand) (*MaintenanceResult, error) {
	window, err := schedule.NewInterval(cmd.Start, cmd.End)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidTimeSlot)
	}

	var result *MaintenanceResult
	err = m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().TableByID(ctx, cmd.TableID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrTableNotFound
			}
			return errs.Mark(err, ErrDataUnavailable)
		}

		mnt, err := maintenance.NewMaintenance(cmd.TableID, window, cmd.Reason, m.clock.Now())
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		if err := tx.LockTable(ctx, cmd.TableID); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		defaultDur := m.defaultDuration()
		conflicts, err := findConflicts(ctx, tx.Reads(), cmd.TableID, window, uuid.Nil, defaultDur)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return &ConflictError{TableID: cmd.TableID, Conflicts: conflictViews(conflicts)}
		}

		if err := tx.Maintenance().Create(ctx, mnt); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return &ConflictError{TableID: cmd.TableID}
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		result = &MaintenanceResult{
			ID:      mnt.ID(),
			TableID: mnt.TableID(),
			Start:   mnt.Window().Start(),
			End:     mnt.Window().End(),
			Status:  mnt.Status().String(),
			Reason:  mnt.Reason(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (m *maintenanceCommandsImpl) defaultDuration() time.Duration {
	return time.Duration(m.cfg.DefaultDurationMin) * time.Minute
}
