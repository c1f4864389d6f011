//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tablebook/internal/domain/dining"
	"tablebook/internal/domain/maintenance"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/pkg/ptr"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

type fakeReads struct {
	tables       map[uuid.UUID]dining.Table
	reservations []reservation.Record
	maintenance  []maintenance.Record

	reservationsErr error

	// call order tracking shared with the fake Tx
	calls *[]string
}

func (f *fakeReads) record(name string) {
	if f.calls != nil {
		*f.calls = append(*f.calls, name)
	}
}

func (f *fakeReads) TablesByRestaurant(context.Context, uuid.UUID) ([]dining.Table, error) {
	tables := make([]dining.Table, 0, len(f.tables))
	for _, t := range f.tables {
		tables = append(tables, t)
	}
	return tables, nil
}

func (f *fakeReads) TableByID(_ context.Context, id uuid.UUID) (*dining.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "table not found", nil)
	}
	return &t, nil
}

func (f *fakeReads) ReservationsOverlapping(context.Context, []uuid.UUID, schedule.Interval, time.Duration) ([]reservation.Record, error) {
	f.record("check")
	if f.reservationsErr != nil {
		return nil, f.reservationsErr
	}
	return f.reservations, nil
}

func (f *fakeReads) MaintenanceOverlapping(context.Context, []uuid.UUID, schedule.Interval) ([]maintenance.Record, error) {
	return f.maintenance, nil
}

func (f *fakeReads) OperatingHours(context.Context, uuid.UUID) ([]schedule.DayHours, error) {
	return nil, nil
}

type fakeReservationWriter struct {
	created   []*reservation.Reservation
	createErr error
	calls     *[]string
}

func (f *fakeReservationWriter) Create(_ context.Context, res *reservation.Reservation) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "insert")
	}
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, res)
	return nil
}

type fakeMaintenanceWriter struct {
	created []*maintenance.Maintenance
}

func (f *fakeMaintenanceWriter) Create(_ context.Context, m *maintenance.Maintenance) error {
	f.created = append(f.created, m)
	return nil
}

type fakeTx struct {
	reads        *fakeReads
	reservations *fakeReservationWriter
	maintenance  *fakeMaintenanceWriter
	lockErr      error
	calls        *[]string
}

func (f *fakeTx) Reservations() shared.ReservationWriter { return f.reservations }
func (f *fakeTx) Maintenance() shared.MaintenanceWriter  { return f.maintenance }
func (f *fakeTx) Reads() shared.ConstraintReads          { return f.reads }

func (f *fakeTx) LockTable(context.Context, uuid.UUID) error {
	if f.calls != nil {
		*f.calls = append(*f.calls, "lock")
	}
	return f.lockErr
}

type fakeUoW struct {
	tx *fakeTx
}

func (f *fakeUoW) Within(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
	return fn(ctx, f.tx)
}

func (f *fakeUoW) WithDB(ctx context.Context, fn func(context.Context, shared.ConstraintReads) error) error {
	return fn(ctx, f.tx.reads)
}

type fixture struct {
	table    dining.Table
	tx       *fakeTx
	calls    []string
	commands commands.ReservationCommands
}

func newFixture() *fixture {
	f := &fixture{
		table: dining.Table{
			ID:          uuid.New(),
			Number:      "T4",
			Capacity:    4,
			MinCapacity: 1,
			AreaID:      uuid.New(),
			AreaName:    "Main",
			Active:      true,
		},
	}
	reads := &fakeReads{
		tables: map[uuid.UUID]dining.Table{},
		calls:  &f.calls,
	}
	reads.tables[f.table.ID] = f.table
	f.tx = &fakeTx{
		reads:        reads,
		reservations: &fakeReservationWriter{calls: &f.calls},
		maintenance:  &fakeMaintenanceWriter{},
		calls:        &f.calls,
	}
	cfg := config.BookingConfig{DefaultDurationMin: 120, MaxPartySize: 20}
	f.commands = commands.NewReservationCommands(&fakeUoW{tx: f.tx}, clock.NewMockClock(at(10, 0)), cfg)
	return f
}

func (f *fixture) createCommand() commands.CreateReservationCommand {
	return commands.CreateReservationCommand{
		RestaurantID: uuid.New(),
		TableID:      f.table.ID,
		CustomerID:   uuid.New(),
		PartySize:    2,
		Start:        at(18, 0),
		End:          at(20, 0),
	}
}

func TestCreateReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		f := newFixture()

		result, err := f.commands.CreateReservation(context.Background(), f.createCommand())
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, f.table.ID, result.TableID)
		assert.Equal(t, "pending", result.Status)
		require.Len(t, f.tx.reservations.created, 1)
	})

	t.Run("lock is taken before the conflict check", func(t *testing.T) {
		f := newFixture()

		_, err := f.commands.CreateReservation(context.Background(), f.createCommand())
		require.NoError(t, err)

		assert.Equal(t, []string{"lock", "check", "insert"}, f.calls)
	})

	t.Run("conflict answer carries the blocking records", func(t *testing.T) {
		f := newFixture()
		existingID := uuid.New()
		f.tx.reads.reservations = []reservation.Record{{
			ID:      existingID,
			TableID: &f.table.ID,
			Start:   at(19, 0),
			End:     ptr.To(at(21, 0)),
			Status:  reservation.StatusPending,
		}}

		_, err := f.commands.CreateReservation(context.Background(), f.createCommand())

		var conflictErr *commands.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, f.table.ID, conflictErr.TableID)
		require.Len(t, conflictErr.Conflicts, 1)
		assert.Equal(t, existingID, conflictErr.Conflicts[0].RecordID)
		assert.Equal(t, "reservation", conflictErr.Conflicts[0].Source)
		assert.Empty(t, f.tx.reservations.created, "nothing written on conflict")
	})

	t.Run("open-ended maintenance blocks any future slot", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.maintenance = []maintenance.Record{{
			ID:             uuid.New(),
			TableID:        f.table.ID,
			ScheduledStart: at(9, 0),
			ScheduledEnd:   at(11, 0),
			ActualStart:    ptr.To(at(9, 0)),
			Status:         maintenance.StatusInProgress,
		}}

		_, err := f.commands.CreateReservation(context.Background(), f.createCommand())

		var conflictErr *commands.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.Len(t, conflictErr.Conflicts, 1)
		assert.Equal(t, "maintenance", conflictErr.Conflicts[0].Source)
		assert.Nil(t, conflictErr.Conflicts[0].End, "open-ended span has no end")
	})

	t.Run("touching slot does not conflict", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.reservations = []reservation.Record{{
			ID:      uuid.New(),
			TableID: &f.table.ID,
			Start:   at(20, 0),
			End:     ptr.To(at(22, 0)),
			Status:  reservation.StatusConfirmed,
		}}

		_, err := f.commands.CreateReservation(context.Background(), f.createCommand())
		require.NoError(t, err)
	})

	t.Run("unknown table", func(t *testing.T) {
		f := newFixture()
		cmd := f.createCommand()
		cmd.TableID = uuid.New()

		_, err := f.commands.CreateReservation(context.Background(), cmd)
		require.True(t, errs.Is(err, commands.ErrTableNotFound))
	})

	t.Run("inverted slot", func(t *testing.T) {
		f := newFixture()
		cmd := f.createCommand()
		cmd.Start, cmd.End = cmd.End, cmd.Start

		_, err := f.commands.CreateReservation(context.Background(), cmd)
		require.True(t, errs.Is(err, commands.ErrInvalidTimeSlot))
	})

	t.Run("party above the policy maximum is rejected before any write", func(t *testing.T) {
		f := newFixture()
		cmd := f.createCommand()
		cmd.PartySize = 21

		_, err := f.commands.CreateReservation(context.Background(), cmd)
		require.True(t, errs.Is(err, commands.ErrDomainValidation))
		assert.Empty(t, f.calls)
		assert.Empty(t, f.tx.reservations.created)
	})

	t.Run("busy source failure fails closed", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.reservationsErr = errors.New("connection refused")

		_, err := f.commands.CreateReservation(context.Background(), f.createCommand())
		require.True(t, errs.Is(err, commands.ErrDataUnavailable))
		assert.Empty(t, f.tx.reservations.created)
	})

	t.Run("storage conflict backstop maps to a conflict answer", func(t *testing.T) {
		f := newFixture()
		f.tx.reservations.createErr = infra.WrapRepoErr(infra.KindConflict, "overlap constraint", errors.New("23P01"))

		_, err := f.commands.CreateReservation(context.Background(), f.createCommand())

		var conflictErr *commands.ConflictError
		require.ErrorAs(t, err, &conflictErr)
	})
}

func TestCheckConflict(t *testing.T) {
	t.Run("reports would-be conflicts without writing", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.reservations = []reservation.Record{{
			ID:      uuid.New(),
			TableID: &f.table.ID,
			Start:   at(19, 0),
			End:     ptr.To(at(21, 0)),
			Status:  reservation.StatusConfirmed,
		}}

		report, err := f.commands.CheckConflict(context.Background(), commands.CheckConflictQuery{
			TableID: f.table.ID,
			Start:   at(18, 0),
			End:     at(20, 0),
		})
		require.NoError(t, err)

		assert.True(t, report.Conflict)
		require.Len(t, report.Conflicts, 1)
		assert.Empty(t, f.tx.reservations.created)
	})

	t.Run("exclusion supports reschedule checks", func(t *testing.T) {
		f := newFixture()
		existingID := uuid.New()
		f.tx.reads.reservations = []reservation.Record{{
			ID:      existingID,
			TableID: &f.table.ID,
			Start:   at(18, 0),
			End:     ptr.To(at(20, 0)),
			Status:  reservation.StatusConfirmed,
		}}

		report, err := f.commands.CheckConflict(context.Background(), commands.CheckConflictQuery{
			TableID:   f.table.ID,
			Start:     at(18, 30),
			End:       at(20, 30),
			ExcludeID: &existingID,
		})
		require.NoError(t, err)
		assert.False(t, report.Conflict)
	})
}

func TestScheduleMaintenance(t *testing.T) {
	newMaintCommands := func(f *fixture) commands.MaintenanceCommands {
		cfg := config.BookingConfig{DefaultDurationMin: 120, MaxPartySize: 20}
		return commands.NewMaintenanceCommands(&fakeUoW{tx: f.tx}, clock.NewMockClock(at(10, 0)), cfg)
	}

	t.Run("basic success case", func(t *testing.T) {
		f := newFixture()

		result, err := newMaintCommands(f).ScheduleMaintenance(context.Background(), commands.ScheduleMaintenanceCommand{
			TableID: f.table.ID,
			Start:   at(9, 0),
			End:     at(11, 0),
			Reason:  "deep clean",
		})
		require.NoError(t, err)

		assert.Equal(t, "scheduled", result.Status)
		require.Len(t, f.tx.maintenance.created, 1)
	})

	t.Run("cannot pull a table out from under a booking", func(t *testing.T) {
		f := newFixture()
		f.tx.reads.reservations = []reservation.Record{{
			ID:      uuid.New(),
			TableID: &f.table.ID,
			Start:   at(10, 0),
			End:     ptr.To(at(12, 0)),
			Status:  reservation.StatusConfirmed,
		}}

		_, err := newMaintCommands(f).ScheduleMaintenance(context.Background(), commands.ScheduleMaintenanceCommand{
			TableID: f.table.ID,
			Start:   at(9, 0),
			End:     at(11, 0),
			Reason:  "deep clean",
		})

		var conflictErr *commands.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Empty(t, f.tx.maintenance.created)
	})

	t.Run("empty reason", func(t *testing.T) {
		f := newFixture()

		_, err := newMaintCommands(f).ScheduleMaintenance(context.Background(), commands.ScheduleMaintenanceCommand{
			TableID: f.table.ID,
			Start:   at(9, 0),
			End:     at(11, 0),
			Reason:  "  ",
		})
		require.True(t, errs.Is(err, commands.ErrDomainValidation))
	})
}
