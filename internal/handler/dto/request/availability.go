package request

import (
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate  = errs.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidUUID  = errs.New("invalid UUID format")
	ErrInvalidState = errs.New("unknown table state")
	ErrInvalidTime  = errs.New("invalid time format, expected RFC3339")
)

type AvailabilityRequest struct {
	RestaurantID string `form:"restaurant_id" binding:"required"`
	Date         string `form:"date" binding:"required"`
	PartySize    int    `form:"party_size" binding:"required,min=1"`
	DurationMin  *int   `form:"duration_min"`
	AreaID       string `form:"area_id"`
}

func (r AvailabilityRequest) ToQuery() (queries.CheckAvailabilityQuery, error) {
	restaurantID, err := uuid.Parse(r.RestaurantID)
	if err != nil {
		return queries.CheckAvailabilityQuery{}, ErrInvalidUUID
	}

	date, err := time.ParseInLocation("2006-01-02", r.Date, time.Local)
	if err != nil {
		return queries.CheckAvailabilityQuery{}, ErrInvalidDate
	}

	q := queries.CheckAvailabilityQuery{
		RestaurantID: restaurantID,
		Date:         date,
		PartySize:    r.PartySize,
		DurationMin:  r.DurationMin,
	}
	if r.AreaID != "" {
		areaID, err := uuid.Parse(r.AreaID)
		if err != nil {
			return queries.CheckAvailabilityQuery{}, ErrInvalidUUID
		}
		q.AreaID = &areaID
	}
	return q, nil
}

type TableStatusRequest struct {
	RestaurantID string `form:"restaurant_id" binding:"required"`
	AreaID       string `form:"area_id"`
	State        string `form:"state"`
	AsOf         string `form:"as_of"` // RFC3339; empty means "now"
}

func (r TableStatusRequest) ToQuery() (queries.TableStatusQuery, error) {
	restaurantID, err := uuid.Parse(r.RestaurantID)
	if err != nil {
		return queries.TableStatusQuery{}, ErrInvalidUUID
	}

	q := queries.TableStatusQuery{RestaurantID: restaurantID}
	if r.AreaID != "" {
		areaID, err := uuid.Parse(r.AreaID)
		if err != nil {
			return queries.TableStatusQuery{}, ErrInvalidUUID
		}
		q.AreaID = &areaID
	}
	if r.State != "" {
		state := schedule.TableState(r.State)
		if !state.IsValid() {
			return queries.TableStatusQuery{}, ErrInvalidState
		}
		q.State = &state
	}
	if r.AsOf != "" {
		asOf, err := time.Parse(time.RFC3339, r.AsOf)
		if err != nil {
			return queries.TableStatusQuery{}, ErrInvalidTime
		}
		q.AsOf = &asOf
	}
	return q, nil
}
