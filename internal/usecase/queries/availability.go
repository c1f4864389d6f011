package queries

import (
	"context"
	"log/slog"
	"time"

	"tablebook/internal/domain/dining"
	"tablebook/internal/domain/maintenance"
	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/clock"
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidPartySize = errs.New("invalid party size")
	ErrInvalidDuration  = errs.New("invalid duration")
	ErrDataUnavailable  = errs.New("constraint source unavailable")
)

type AvailabilityQueries interface {
	// CheckAvailability enumerates bookable slots for a party on a date.
	// When a busy-interval source is unreachable it degrades to a flagged
	// partial result instead of failing, but it never invents free tables.
	CheckAvailability(ctx context.Context, q CheckAvailabilityQuery) (*AvailabilityView, error)
	// TableStatus reports each table's state at one instant (now mode).
	// Unlike CheckAvailability this fails closed on fetch errors: a guessed
	// "available" on the floor view is worse than no answer.
	TableStatus(ctx context.Context, q TableStatusQuery) (*TableStatusResult, error)
}

type availabilityQueriesImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	cfg   config.BookingConfig
}

func NewAvailabilityQueries(uow shared.UnitOfWork, clk clock.Clock, cfg config.BookingConfig) AvailabilityQueries {
	return &availabilityQueriesImpl{uow: uow, clock: clk, cfg: cfg}
}

func (a *availabilityQueriesImpl) CheckAvailability(ctx context.Context, q CheckAvailabilityQuery) (*AvailabilityView, error) {
	duration, err := a.resolveDuration(q.DurationMin)
	if err != nil {
		return nil, err
	}
	if q.PartySize <= 0 {
		return nil, errs.Mark(dining.ErrInvalidPartySize, ErrInvalidPartySize)
	}
	if a.cfg.MaxPartySize > 0 && q.PartySize > a.cfg.MaxPartySize {
		return nil, errs.Mark(dining.ErrInvalidPartySize, ErrInvalidPartySize)
	}

	var view *AvailabilityView
	err = a.uow.WithDB(ctx, func(ctx context.Context, reads shared.ConstraintReads) error {
		var innerErr error
		view, innerErr = a.checkAvailability(ctx, reads, q, duration)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (a *availabilityQueriesImpl) checkAvailability(
	ctx context.Context,
	reads shared.ConstraintReads,
	q CheckAvailabilityQuery,
	duration time.Duration,
) (*AvailabilityView, error) {
	view := &AvailabilityView{
		RestaurantID: q.RestaurantID,
		Date:         q.Date.Format("2006-01-02"),
		PartySize:    q.PartySize,
		DurationMin:  int(duration / time.Minute),
		TimeSlots:    []TimeSlotView{},
	}

	hours, err := reads.OperatingHours(ctx, q.RestaurantID)
	if err != nil {
		return nil, errs.Mark(err, ErrDataUnavailable)
	}

	shifts, closed, err := schedule.ShiftsForDate(q.Date, hours)
	if err != nil {
		return nil, err
	}
	if closed {
		view.Closed = true
		return view, nil
	}
	view.OperatingHours = shiftViews(shifts)

	tables, err := reads.TablesByRestaurant(ctx, q.RestaurantID)
	if err != nil {
		return nil, errs.Mark(err, ErrDataUnavailable)
	}
	eligible, err := dining.EligibleTables(tables, q.PartySize, q.AreaID)
	if err != nil {
		if errs.Is(err, dining.ErrInvalidPartySize) {
			return nil, errs.Mark(err, ErrInvalidPartySize)
		}
		return nil, err
	}
	view.Stats.EligibleTables = len(eligible)

	window, err := dayWindow(q.Date)
	if err != nil {
		return nil, err
	}

	busy, degraded, err := a.fetchBusy(ctx, reads, tableIDs(eligible), window, reservation.DisplayBlocking)
	if err != nil {
		return nil, err
	}
	if degraded {
		// Display-only degradation: slots unknown, nothing reported free.
		view.Degraded = true
		return view, nil
	}

	slots := schedule.GenerateSlots(shifts, duration)
	evaluated := schedule.Evaluate(slots, tableIDs(eligible), busy)

	byID := make(map[uuid.UUID]dining.Table, len(eligible))
	for _, t := range eligible {
		byID[t.ID] = t
	}

	view.Stats.TotalSlots = len(evaluated)
	for _, sa := range evaluated {
		slot := TimeSlotView{
			Time:      sa.Slot.Start().Format("15:04"),
			Start:     sa.Slot.Start(),
			Available: sa.Available(),
			Tables:    make([]TableSummary, 0, len(sa.FreeTableIDs)),
		}
		for _, id := range sa.FreeTableIDs {
			t := byID[id]
			slot.Tables = append(slot.Tables, TableSummary{
				ID:       t.ID,
				Number:   t.Number,
				Capacity: t.Capacity,
				Area:     t.AreaName,
			})
		}
		if slot.Available {
			view.Stats.AvailableSlots++
		}
		view.TimeSlots = append(view.TimeSlots, slot)
	}
	view.Available = schedule.AnyAvailable(evaluated)
	view.Areas = areaBreakdownFromSlots(evaluated, eligible)

	return view, nil
}

func (a *availabilityQueriesImpl) TableStatus(ctx context.Context, q TableStatusQuery) (*TableStatusResult, error) {
	asOf := a.clock.Now()
	if q.AsOf != nil {
		asOf = *q.AsOf
	}

	var result *TableStatusResult
	err := a.uow.WithDB(ctx, func(ctx context.Context, reads shared.ConstraintReads) error {
		var innerErr error
		result, innerErr = a.tableStatus(ctx, reads, q, asOf)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *availabilityQueriesImpl) tableStatus(
	ctx context.Context,
	reads shared.ConstraintReads,
	q TableStatusQuery,
	asOf time.Time,
) (*TableStatusResult, error) {
	tables, err := reads.TablesByRestaurant(ctx, q.RestaurantID)
	if err != nil {
		return nil, errs.Mark(err, ErrDataUnavailable)
	}

	active := make([]dining.Table, 0, len(tables))
	for _, t := range tables {
		if !t.Active {
			continue
		}
		if q.AreaID != nil && t.AreaID != *q.AreaID {
			continue
		}
		active = append(active, t)
	}

	// An instant query is a degenerate slot; the epsilon keeps the shared
	// overlap predicate applicable.
	window, err := schedule.NewInterval(asOf, asOf.Add(time.Minute))
	if err != nil {
		return nil, err
	}

	// "Reserved" covers currently-overlapping pending holds too, so the
	// write-blocking status set is the right one here.
	busy, degraded, err := a.fetchBusy(ctx, reads, tableIDs(active), window, reservation.WriteBlocking)
	if err != nil {
		return nil, err
	}
	if degraded {
		return nil, errs.Mark(errs.New("busy-interval source unreachable"), ErrDataUnavailable)
	}

	result := &TableStatusResult{AsOf: asOf, Tables: []TableStatusView{}}
	freeByArea := map[uuid.UUID]*AreaAvailabilityView{}
	var areaOrder []uuid.UUID
	for _, t := range active {
		state := schedule.TableStateAt(asOf, busy[t.ID])
		if q.State != nil && state != *q.State {
			continue
		}
		result.Tables = append(result.Tables, TableStatusView{
			ID:          t.ID,
			Number:      t.Number,
			Capacity:    t.Capacity,
			MinCapacity: t.MinCapacity,
			Area:        t.AreaName,
			State:       state,
		})
		if state == schedule.StateAvailable {
			area, ok := freeByArea[t.AreaID]
			if !ok {
				area = &AreaAvailabilityView{AreaID: t.AreaID, Name: t.AreaName}
				freeByArea[t.AreaID] = area
				areaOrder = append(areaOrder, t.AreaID)
			}
			area.FreeTables++
			area.FreeCapacity += t.Capacity
		}
	}
	result.Areas = make([]AreaAvailabilityView, 0, len(areaOrder))
	for _, id := range areaOrder {
		result.Areas = append(result.Areas, *freeByArea[id])
	}

	return result, nil
}

// fetchBusy pulls both busy-interval sources and normalizes them. The
// degraded return is true when a source could not be fetched; callers on the
// display path turn that into a flagged partial result instead of an error.
func (a *availabilityQueriesImpl) fetchBusy(
	ctx context.Context,
	reads shared.ConstraintReads,
	ids []uuid.UUID,
	window schedule.Interval,
	policy reservation.BlockingPolicy,
) (map[uuid.UUID][]schedule.BusyInterval, bool, error) {
	defaultDur := time.Duration(a.cfg.DefaultDurationMin) * time.Minute

	resRecords, err := reads.ReservationsOverlapping(ctx, ids, window, defaultDur)
	if err != nil {
		slog.Warn("availability degraded: reservations unavailable", "error", err.Error())
		return nil, true, nil
	}
	maintRecords, err := reads.MaintenanceOverlapping(ctx, ids, window)
	if err != nil {
		slog.Warn("availability degraded: maintenance unavailable", "error", err.Error())
		return nil, true, nil
	}

	resBusy, err := reservation.BusyIntervals(resRecords, defaultDur, policy)
	if err != nil {
		return nil, false, err
	}
	maintBusy, err := maintenance.BusyIntervals(maintRecords, window)
	if err != nil {
		return nil, false, err
	}

	busy := make(map[uuid.UUID][]schedule.BusyInterval)
	for _, b := range append(resBusy, maintBusy...) {
		busy[b.TableID] = append(busy[b.TableID], b)
	}
	return busy, false, nil
}

func (a *availabilityQueriesImpl) resolveDuration(durationMin *int) (time.Duration, error) {
	minutes := a.cfg.DefaultDurationMin
	if durationMin != nil {
		minutes = *durationMin
	}
	if minutes <= 0 {
		return 0, ErrInvalidDuration
	}
	return time.Duration(minutes) * time.Minute, nil
}

func dayWindow(date time.Time) (schedule.Interval, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return schedule.NewInterval(start, start.AddDate(0, 0, 1))
}

func tableIDs(tables []dining.Table) []uuid.UUID {
	ids := make([]uuid.UUID, len(tables))
	for i, t := range tables {
		ids[i] = t.ID
	}
	return ids
}

func shiftViews(shifts []schedule.Shift) []ShiftView {
	views := make([]ShiftView, len(shifts))
	for i, s := range shifts {
		views[i] = ShiftView{
			Open:  s.Open().Format("15:04"),
			Close: s.Close().Format("15:04"),
		}
	}
	return views
}

// areaBreakdownFromSlots counts, per area, tables free in at least one slot
// and their summed capacity.
func areaBreakdownFromSlots(evaluated []schedule.SlotAvailability, tables []dining.Table) []AreaAvailabilityView {
	freeTables := map[uuid.UUID]bool{}
	for _, sa := range evaluated {
		for _, id := range sa.FreeTableIDs {
			freeTables[id] = true
		}
	}

	byArea := map[uuid.UUID]*AreaAvailabilityView{}
	var order []uuid.UUID
	for _, t := range tables {
		if !freeTables[t.ID] {
			continue
		}
		area, ok := byArea[t.AreaID]
		if !ok {
			area = &AreaAvailabilityView{AreaID: t.AreaID, Name: t.AreaName}
			byArea[t.AreaID] = area
			order = append(order, t.AreaID)
		}
		area.FreeTables++
		area.FreeCapacity += t.Capacity
	}

	views := make([]AreaAvailabilityView, 0, len(order))
	for _, id := range order {
		views = append(views, *byArea[id])
	}
	return views
}
