package api

import (
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Check availability
// @Description Enumerate bookable time slots for a party on a date
// @Tags availability
// @Produce json
// @Param restaurant_id query string true "Restaurant ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Param party_size query int true "Party size"
// @Param duration_min query int false "Desired duration in minutes"
// @Param area_id query string false "Restrict to one area"
// @Success 200 {object} queries.AvailabilityView
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /availability [get]
func (h *AvailabilityHandler) CheckAvailability(c *gin.Context) {
	var req reqdto.AvailabilityRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	query, err := req.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	view, err := h.availabilityQueries.CheckAvailability(c.Request.Context(), query)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrInvalidPartySize):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid party size", nil)
		case errs.Is(err, queries.ErrInvalidDuration):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid duration", nil)
		case errs.Is(err, queries.ErrDataUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Availability data temporarily unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
