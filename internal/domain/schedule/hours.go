package schedule

import (
	"fmt"
	"sort"
	"time"

	"tablebook/internal/pkg/errs"
)

var ErrInvalidShift = errs.New("invalid operating shift")

const hoursFormat = "15:04"

// DayHours is one operating-hours record for a weekday. A restaurant may
// define several per day (lunch and dinner shifts) or none at all.
type DayHours struct {
	Weekday time.Weekday
	Open    string // "HH:MM", local to the restaurant
	Close   string
	Closed  bool
}

// Shift is one contiguous operating window anchored to a concrete date.
type Shift struct {
	open  time.Time
	close time.Time
}

func NewShift(open, close time.Time) (Shift, error) {
	if !close.After(open) {
		return Shift{}, errs.Mark(
			errs.New(fmt.Sprintf("close %s is not after open %s", close.Format(hoursFormat), open.Format(hoursFormat))),
			ErrInvalidShift,
		)
	}
	return Shift{open: open, close: close}, nil
}

func (s Shift) Open() time.Time {
	return s.open
}

func (s Shift) Close() time.Time {
	return s.close
}

func (s Shift) Interval() Interval {
	return Interval{start: s.open, end: s.close}
}

// ShiftsForDate resolves the operating-hours records matching the date's
// weekday into concrete shifts, sorted by opening time. The second return
// value reports whether the day is closed, which callers must surface as a
// distinct outcome from "open but fully booked".
func ShiftsForDate(date time.Time, hours []DayHours) ([]Shift, bool, error) {
	var shifts []Shift
	for _, h := range hours {
		if h.Weekday != date.Weekday() {
			continue
		}
		if h.Closed {
			continue
		}
		open, err := atTimeOfDay(date, h.Open)
		if err != nil {
			return nil, false, err
		}
		close, err := atTimeOfDay(date, h.Close)
		if err != nil {
			return nil, false, err
		}
		shift, err := NewShift(open, close)
		if err != nil {
			return nil, false, err
		}
		shifts = append(shifts, shift)
	}

	if len(shifts) == 0 {
		return nil, true, nil
	}

	sort.Slice(shifts, func(i, j int) bool {
		return shifts[i].open.Before(shifts[j].open)
	})
	return shifts, false, nil
}

func atTimeOfDay(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.ParseInLocation(hoursFormat, hhmm, date.Location())
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "parse time of day %q", hhmm), ErrInvalidShift)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
