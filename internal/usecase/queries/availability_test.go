//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tablebook/internal/domain/dining"
	"tablebook/internal/domain/maintenance"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/pkg/ptr"
	"tablebook/internal/usecase/queries"
	"tablebook/internal/usecase/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReads struct {
	tables       []dining.Table
	hours        []schedule.DayHours
	reservations []reservation.Record
	maintenance  []maintenance.Record

	reservationsErr error
	maintenanceErr  error
	hoursErr        error
}

func (f *fakeReads) TablesByRestaurant(context.Context, uuid.UUID) ([]dining.Table, error) {
	return f.tables, nil
}

func (f *fakeReads) TableByID(_ context.Context, id uuid.UUID) (*dining.Table, error) {
	for _, t := range f.tables {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeReads) ReservationsOverlapping(context.Context, []uuid.UUID, schedule.Interval, time.Duration) ([]reservation.Record, error) {
	if f.reservationsErr != nil {
		return nil, f.reservationsErr
	}
	return f.reservations, nil
}

func (f *fakeReads) MaintenanceOverlapping(context.Context, []uuid.UUID, schedule.Interval) ([]maintenance.Record, error) {
	if f.maintenanceErr != nil {
		return nil, f.maintenanceErr
	}
	return f.maintenance, nil
}

func (f *fakeReads) OperatingHours(context.Context, uuid.UUID) ([]schedule.DayHours, error) {
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	return f.hours, nil
}

type fakeUoW struct {
	reads *fakeReads
}

func (f *fakeUoW) Within(context.Context, func(context.Context, shared.Tx) error) error {
	panic("queries never open a write transaction")
}

func (f *fakeUoW) WithDB(ctx context.Context, fn func(context.Context, shared.ConstraintReads) error) error {
	return fn(ctx, f.reads)
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC) // a Saturday
}

func saturdayHours() []schedule.DayHours {
	return []schedule.DayHours{
		{Weekday: time.Saturday, Open: "12:00", Close: "16:00"},
	}
}

func newQueries(reads *fakeReads) queries.AvailabilityQueries {
	cfg := config.BookingConfig{DefaultDurationMin: 120, MaxPartySize: 20}
	return queries.NewAvailabilityQueries(&fakeUoW{reads: reads}, clock.NewMockClock(at(10, 0)), cfg)
}

func fourTop(number string, areaID uuid.UUID) dining.Table {
	return dining.Table{
		ID:          uuid.New(),
		Number:      number,
		Capacity:    4,
		MinCapacity: 1,
		AreaID:      areaID,
		AreaName:    "Main",
		Active:      true,
	}
}

func TestCheckAvailability(t *testing.T) {
	restaurantID := uuid.New()
	areaID := uuid.New()

	t.Run("open day with no bookings", func(t *testing.T) {
		table := fourTop("T1", areaID)
		reads := &fakeReads{tables: []dining.Table{table}, hours: saturdayHours()}

		view, err := newQueries(reads).CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    2,
		})
		require.NoError(t, err)

		assert.False(t, view.Closed)
		assert.False(t, view.Degraded)
		assert.True(t, view.Available)
		assert.Equal(t, 120, view.DurationMin)

		starts := make([]string, len(view.TimeSlots))
		for i, s := range view.TimeSlots {
			starts[i] = s.Time
		}
		want := []string{"12:00", "12:30", "13:00", "13:30", "14:00"}
		if diff := cmp.Diff(want, starts); diff != "" {
			t.Errorf("slot starts mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 5, view.Stats.TotalSlots)
		assert.Equal(t, 5, view.Stats.AvailableSlots)
		assert.Equal(t, 1, view.Stats.EligibleTables)
	})

	t.Run("mid-shift booking exhausts a single table", func(t *testing.T) {
		table := fourTop("T1", areaID)
		reads := &fakeReads{
			tables: []dining.Table{table},
			hours:  saturdayHours(),
			reservations: []reservation.Record{{
				ID:      uuid.New(),
				TableID: &table.ID,
				Start:   at(13, 0),
				End:     ptr.To(at(15, 0)),
				Status:  reservation.StatusConfirmed,
			}},
		}

		view, err := newQueries(reads).CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    2,
		})
		require.NoError(t, err)

		assert.False(t, view.Available, "2h slots cannot fit around a 13:00-15:00 booking before a 16:00 close")
		assert.Equal(t, 0, view.Stats.AvailableSlots)
	})

	t.Run("pending reservations do not block display", func(t *testing.T) {
		table := fourTop("T1", areaID)
		reads := &fakeReads{
			tables: []dining.Table{table},
			hours:  saturdayHours(),
			reservations: []reservation.Record{{
				ID:      uuid.New(),
				TableID: &table.ID,
				Start:   at(13, 0),
				End:     ptr.To(at(15, 0)),
				Status:  reservation.StatusPending,
			}},
		}

		view, err := newQueries(reads).CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    2,
		})
		require.NoError(t, err)
		assert.True(t, view.Available)
	})

	t.Run("closed day is distinct from fully booked", func(t *testing.T) {
		reads := &fakeReads{
			tables: []dining.Table{fourTop("T1", areaID)},
			hours: []schedule.DayHours{
				{Weekday: time.Saturday, Closed: true},
			},
		}

		view, err := newQueries(reads).CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    2,
		})
		require.NoError(t, err)

		assert.True(t, view.Closed)
		assert.False(t, view.Available)
		assert.Empty(t, view.TimeSlots)
	})

	t.Run("busy source failure degrades instead of inventing free tables", func(t *testing.T) {
		reads := &fakeReads{
			tables:          []dining.Table{fourTop("T1", areaID)},
			hours:           saturdayHours(),
			reservationsErr: errors.New("connection refused"),
		}

		view, err := newQueries(reads).CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    2,
		})
		require.NoError(t, err)

		assert.True(t, view.Degraded)
		assert.False(t, view.Available)
		assert.Empty(t, view.TimeSlots)
	})

	t.Run("operating hours failure is an error", func(t *testing.T) {
		reads := &fakeReads{
			tables:   []dining.Table{fourTop("T1", areaID)},
			hoursErr: errors.New("connection refused"),
		}

		_, err := newQueries(reads).CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    2,
		})
		require.True(t, errs.Is(err, queries.ErrDataUnavailable))
	})

	t.Run("invalid inputs", func(t *testing.T) {
		q := newQueries(&fakeReads{hours: saturdayHours()})

		_, err := q.CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    0,
		})
		require.True(t, errs.Is(err, queries.ErrInvalidPartySize))

		_, err = q.CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    2,
			DurationMin:  ptr.To(-30),
		})
		require.True(t, errs.Is(err, queries.ErrInvalidDuration))
	})

	t.Run("party above the policy maximum is rejected", func(t *testing.T) {
		q := newQueries(&fakeReads{hours: saturdayHours()})

		_, err := q.CheckAvailability(context.Background(), queries.CheckAvailabilityQuery{
			RestaurantID: restaurantID,
			Date:         at(0, 0),
			PartySize:    21,
		})
		require.True(t, errs.Is(err, queries.ErrInvalidPartySize))
	})
}

func TestTableStatus(t *testing.T) {
	restaurantID := uuid.New()
	areaID := uuid.New()

	t.Run("reports states at the given instant", func(t *testing.T) {
		free := fourTop("T1", areaID)
		seated := fourTop("T2", areaID)
		held := fourTop("T3", areaID)
		down := fourTop("T4", areaID)

		reads := &fakeReads{
			tables: []dining.Table{free, seated, held, down},
			reservations: []reservation.Record{
				{ID: uuid.New(), TableID: &seated.ID, Start: at(12, 0), End: ptr.To(at(14, 0)), Status: reservation.StatusSeated},
				{ID: uuid.New(), TableID: &held.ID, Start: at(12, 30), End: ptr.To(at(14, 30)), Status: reservation.StatusPending},
			},
			maintenance: []maintenance.Record{{
				ID:             uuid.New(),
				TableID:        down.ID,
				ScheduledStart: at(9, 0),
				ScheduledEnd:   at(11, 0),
				ActualStart:    ptr.To(at(9, 0)),
				Status:         maintenance.StatusInProgress,
			}},
		}

		result, err := newQueries(reads).TableStatus(context.Background(), queries.TableStatusQuery{
			RestaurantID: restaurantID,
			AsOf:         ptr.To(at(13, 0)),
		})
		require.NoError(t, err)

		states := map[string]schedule.TableState{}
		for _, tv := range result.Tables {
			states[tv.Number] = tv.State
		}
		want := map[string]schedule.TableState{
			"T1": schedule.StateAvailable,
			"T2": schedule.StateOccupied,
			"T3": schedule.StateReserved,
			"T4": schedule.StateMaintenance,
		}
		if diff := cmp.Diff(want, states); diff != "" {
			t.Errorf("table states mismatch (-want +got):\n%s", diff)
		}

		require.Len(t, result.Areas, 1)
		assert.Equal(t, 1, result.Areas[0].FreeTables)
		assert.Equal(t, 4, result.Areas[0].FreeCapacity)
	})

	t.Run("defaults to the clock when asOf is absent", func(t *testing.T) {
		reads := &fakeReads{tables: []dining.Table{fourTop("T1", areaID)}}

		result, err := newQueries(reads).TableStatus(context.Background(), queries.TableStatusQuery{
			RestaurantID: restaurantID,
		})
		require.NoError(t, err)
		assert.Equal(t, at(10, 0), result.AsOf)
	})

	t.Run("advancing the clock frees a table past its booking", func(t *testing.T) {
		seated := fourTop("T2", areaID)
		reads := &fakeReads{
			tables: []dining.Table{seated},
			reservations: []reservation.Record{
				{ID: uuid.New(), TableID: &seated.ID, Start: at(12, 0), End: ptr.To(at(14, 0)), Status: reservation.StatusSeated},
			},
		}
		clk := clock.NewMockClock(at(10, 0))
		q := queries.NewAvailabilityQueries(
			&fakeUoW{reads: reads}, clk,
			config.BookingConfig{DefaultDurationMin: 120, MaxPartySize: 20},
		)

		clk.Set(at(13, 0))
		result, err := q.TableStatus(context.Background(), queries.TableStatusQuery{RestaurantID: restaurantID})
		require.NoError(t, err)
		require.Len(t, result.Tables, 1)
		assert.Equal(t, schedule.StateOccupied, result.Tables[0].State)

		clk.Advance(time.Hour)
		result, err = q.TableStatus(context.Background(), queries.TableStatusQuery{RestaurantID: restaurantID})
		require.NoError(t, err)
		assert.Equal(t, schedule.StateAvailable, result.Tables[0].State)
	})

	t.Run("state filter", func(t *testing.T) {
		free := fourTop("T1", areaID)
		seated := fourTop("T2", areaID)
		reads := &fakeReads{
			tables: []dining.Table{free, seated},
			reservations: []reservation.Record{
				{ID: uuid.New(), TableID: &seated.ID, Start: at(9, 0), End: ptr.To(at(11, 0)), Status: reservation.StatusSeated},
			},
		}

		result, err := newQueries(reads).TableStatus(context.Background(), queries.TableStatusQuery{
			RestaurantID: restaurantID,
			State:        ptr.To(schedule.StateOccupied),
		})
		require.NoError(t, err)
		require.Len(t, result.Tables, 1)
		assert.Equal(t, "T2", result.Tables[0].Number)
	})

	t.Run("fails closed when a busy source is unreachable", func(t *testing.T) {
		reads := &fakeReads{
			tables:         []dining.Table{fourTop("T1", areaID)},
			maintenanceErr: errors.New("connection refused"),
		}

		_, err := newQueries(reads).TableStatus(context.Background(), queries.TableStatusQuery{
			RestaurantID: restaurantID,
		})
		require.True(t, errs.Is(err, queries.ErrDataUnavailable))
	})
}
