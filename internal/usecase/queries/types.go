package queries

import (
	"time"

	"tablebook/internal/domain/schedule"

	"github.com/google/uuid"
)

type CheckAvailabilityQuery struct {
	RestaurantID uuid.UUID
	Date         time.Time // calendar date in the restaurant's timezone
	PartySize    int
	DurationMin  *int // nil falls back to the restaurant default
	AreaID       *uuid.UUID
}

type TableStatusQuery struct {
	RestaurantID uuid.UUID
	AreaID       *uuid.UUID
	State        *schedule.TableState
	AsOf         *time.Time // nil means "now"
}

// Read models (DTO for read side)
type TableSummary struct {
	ID       uuid.UUID `json:"id"`
	Number   string    `json:"number"`
	Capacity int       `json:"capacity"`
	Area     string    `json:"area"`
}

type TimeSlotView struct {
	Time      string         `json:"time"` // "HH:MM"
	Start     time.Time      `json:"start"`
	Available bool           `json:"available"`
	Tables    []TableSummary `json:"tables"`
}

type ShiftView struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type AreaAvailabilityView struct {
	AreaID       uuid.UUID `json:"area_id"`
	Name         string    `json:"name"`
	FreeTables   int       `json:"free_tables"`
	FreeCapacity int       `json:"free_capacity"`
}

type AvailabilityStats struct {
	TotalSlots     int `json:"total_slots"`
	AvailableSlots int `json:"available_slots"`
	EligibleTables int `json:"eligible_tables"`
}

type AvailabilityView struct {
	RestaurantID uuid.UUID `json:"restaurant_id"`
	Date         string    `json:"date"`
	PartySize    int       `json:"party_size"`
	DurationMin  int       `json:"duration_min"`
	// Closed distinguishes "we are closed today" from "open but fully booked".
	Closed bool `json:"closed"`
	// Degraded flags a partial result produced while a busy-interval source
	// was unreachable; no slot is reported available in that case.
	Degraded       bool                   `json:"degraded,omitempty"`
	Available      bool                   `json:"available"`
	TimeSlots      []TimeSlotView         `json:"time_slots"`
	OperatingHours []ShiftView            `json:"operating_hours"`
	Areas          []AreaAvailabilityView `json:"areas,omitempty"`
	Stats          AvailabilityStats      `json:"stats"`
}

type TableStatusView struct {
	ID          uuid.UUID           `json:"id"`
	Number      string              `json:"number"`
	Capacity    int                 `json:"capacity"`
	MinCapacity int                 `json:"min_capacity"`
	Area        string              `json:"area"`
	State       schedule.TableState `json:"state"`
}

type TableStatusResult struct {
	AsOf   time.Time              `json:"as_of"`
	Tables []TableStatusView      `json:"tables"`
	Areas  []AreaAvailabilityView `json:"areas"`
}
