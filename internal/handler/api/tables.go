package api

import (
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type TableHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewTableHandler(availabilityQueries queries.AvailabilityQueries) *TableHandler {
	return &TableHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Table status
// @Description Report each table's state at one instant
// @Tags tables
// @Produce json
// @Param restaurant_id query string true "Restaurant ID"
// @Param area_id query string false "Restrict to one area"
// @Param state query string false "Filter by state (available, occupied, reserved, maintenance)"
// @Param as_of query string false "Instant to evaluate (RFC3339), defaults to now"
// @Success 200 {object} queries.TableStatusResult
// @Failure 400 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /tables/status [get]
func (h *TableHandler) TableStatus(c *gin.Context) {
	var req reqdto.TableStatusRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	query, err := req.ToQuery()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		return
	}

	result, err := h.availabilityQueries.TableStatus(c.Request.Context(), query)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrDataUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Table status temporarily unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}
