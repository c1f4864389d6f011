package schedule

import (
	"time"

	"github.com/google/uuid"
)

// TableState is the current status of a table in "now" queries.
type TableState string

const (
	StateAvailable   TableState = "available"
	StateOccupied    TableState = "occupied"
	StateReserved    TableState = "reserved"
	StateMaintenance TableState = "maintenance"
)

func (s TableState) IsValid() bool {
	switch s {
	case StateAvailable, StateOccupied, StateReserved, StateMaintenance:
		return true
	default:
		return false
	}
}

// SlotAvailability pairs one candidate slot with the tables free for it.
type SlotAvailability struct {
	Slot         Interval
	FreeTableIDs []uuid.UUID
}

func (s SlotAvailability) Available() bool {
	return len(s.FreeTableIDs) > 0
}

// Evaluate cross-references every candidate slot against the busy intervals
// of each table. Table order is preserved from the input, so callers keep the
// smallest-adequate-table-first ordering imposed by the eligibility filter.
func Evaluate(slots []Interval, tableIDs []uuid.UUID, busy map[uuid.UUID][]BusyInterval) []SlotAvailability {
	result := make([]SlotAvailability, len(slots))
	for i, slot := range slots {
		result[i] = SlotAvailability{
			Slot:         slot,
			FreeTableIDs: FreeTableIDs(slot, tableIDs, busy),
		}
	}
	return result
}

// FreeTableIDs returns the tables with no busy interval overlapping the slot,
// preserving input order.
func FreeTableIDs(slot Interval, tableIDs []uuid.UUID, busy map[uuid.UUID][]BusyInterval) []uuid.UUID {
	free := make([]uuid.UUID, 0, len(tableIDs))
	for _, id := range tableIDs {
		if !anyOverlap(slot, busy[id]) {
			free = append(free, id)
		}
	}
	return free
}

// AnyAvailable reports whether at least one slot has a free table.
func AnyAvailable(slots []SlotAvailability) bool {
	for _, s := range slots {
		if s.Available() {
			return true
		}
	}
	return false
}

// TableStateAt derives a table's status at one instant. Priority:
// maintenance > seated party > held reservation > available.
func TableStateAt(asOf time.Time, busy []BusyInterval) TableState {
	state := StateAvailable
	for _, b := range busy {
		if !b.Span.Covers(asOf) {
			continue
		}
		switch {
		case b.Source == SourceMaintenance:
			return StateMaintenance
		case b.Seated:
			state = StateOccupied
		case state == StateAvailable:
			state = StateReserved
		}
	}
	return state
}

func anyOverlap(slot Interval, busy []BusyInterval) bool {
	for _, b := range busy {
		if b.Span.Overlaps(slot) {
			return true
		}
	}
	return false
}
