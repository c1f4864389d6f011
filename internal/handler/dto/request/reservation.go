package request

import (
	"strings"
	"time"

	"tablebook/internal/pkg/ptr"
	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" binding:"required"`
	TableID      uuid.UUID `json:"table_id" binding:"required"`
	CustomerID   uuid.UUID `json:"customer_id" binding:"required"`
	PartySize    int       `json:"party_size" binding:"required,min=1"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	Note         *string   `json:"note,omitempty"`
}

func (r CreateReservationRequest) ToCommand() commands.CreateReservationCommand {
	note := strings.TrimSpace(ptr.Deref(r.Note, ""))
	return commands.CreateReservationCommand{
		RestaurantID: r.RestaurantID,
		TableID:      r.TableID,
		CustomerID:   r.CustomerID,
		PartySize:    r.PartySize,
		Start:        r.StartTime,
		End:          r.EndTime,
		Note:         note,
	}
}

type CheckConflictRequest struct {
	TableID   string `form:"table_id" binding:"required"`
	StartTime string `form:"start_time" binding:"required"` // RFC3339
	EndTime   string `form:"end_time" binding:"required"`
	ExcludeID string `form:"exclude_id"`
}

func (r CheckConflictRequest) ToQuery() (commands.CheckConflictQuery, error) {
	tableID, err := uuid.Parse(r.TableID)
	if err != nil {
		return commands.CheckConflictQuery{}, ErrInvalidUUID
	}
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return commands.CheckConflictQuery{}, ErrInvalidTime
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return commands.CheckConflictQuery{}, ErrInvalidTime
	}

	q := commands.CheckConflictQuery{TableID: tableID, Start: start, End: end}
	if r.ExcludeID != "" {
		excludeID, err := uuid.Parse(r.ExcludeID)
		if err != nil {
			return commands.CheckConflictQuery{}, ErrInvalidUUID
		}
		q.ExcludeID = &excludeID
	}
	return q, nil
}
