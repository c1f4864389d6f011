package reservation

import (
	"strings"
	"time"

	"tablebook/internal/domain/dining"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus = errs.New("invalid reservation status")
	ErrTableInactive = errs.New("table is not active")
	ErrPartyTooLarge = errs.New("party does not fit the table")
	ErrSlotInPast    = errs.New("reservation slot is in the past")
)

// Reservation is a candidate booking built at write time. The conflict check
// against existing busy intervals happens inside the writer's transaction,
// not here; construction only enforces the invariants that need no I/O.
type Reservation struct {
	id           uuid.UUID
	restaurantID uuid.UUID
	tableID      uuid.UUID
	customerID   uuid.UUID
	partySize    int
	slot         schedule.Interval
	status       Status
	note         string
	createdAt    time.Time
}

func NewReservation(
	restaurantID uuid.UUID,
	table dining.Table,
	customerID uuid.UUID,
	partySize int,
	slot schedule.Interval,
	note string,
	asOf time.Time,
) (*Reservation, error) {
	if partySize <= 0 {
		return nil, dining.ErrInvalidPartySize
	}
	if !table.Active {
		return nil, ErrTableInactive
	}
	if !table.Fits(partySize) {
		return nil, ErrPartyTooLarge
	}
	if slot.End().Before(asOf) || slot.End().Equal(asOf) {
		return nil, ErrSlotInPast
	}

	return &Reservation{
		id:           uuid.New(),
		restaurantID: restaurantID,
		tableID:      table.ID,
		customerID:   customerID,
		partySize:    partySize,
		slot:         slot,
		status:       StatusPending,
		note:         strings.TrimSpace(note),
		createdAt:    asOf,
	}, nil
}

func (r *Reservation) ID() uuid.UUID           { return r.id }
func (r *Reservation) RestaurantID() uuid.UUID { return r.restaurantID }
func (r *Reservation) TableID() uuid.UUID      { return r.tableID }
func (r *Reservation) CustomerID() uuid.UUID   { return r.customerID }
func (r *Reservation) PartySize() int          { return r.partySize }
func (r *Reservation) Slot() schedule.Interval { return r.slot }
func (r *Reservation) Status() Status          { return r.status }
func (r *Reservation) Note() string            { return r.note }
func (r *Reservation) CreatedAt() time.Time    { return r.createdAt }
