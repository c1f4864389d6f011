package api

import (
	"errors"
	"net/http"

	reqdto "tablebook/internal/handler/dto/request"
	resdto "tablebook/internal/handler/dto/response"
	"tablebook/internal/handler/httperr"
	"tablebook/internal/pkg/errs"
	"tablebook/internal/usecase/commands"
	"tablebook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MaintenanceHandler struct {
	maintenanceCommands commands.MaintenanceCommands
	recordQueries       queries.RecordQueries
}

func NewMaintenanceHandler(maintenanceCommands commands.MaintenanceCommands, recordQueries queries.RecordQueries) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceCommands: maintenanceCommands,
		recordQueries:       recordQueries,
	}
}

// @Summary Schedule maintenance
// @Description Schedule a maintenance window for a table
// @Tags maintenance
// @Accept json
// @Produce json
// @Param request body reqdto.ScheduleMaintenanceRequest true "Maintenance request"
// @Success 201 {object} resdto.MaintenanceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /maintenance [post]
func (h *MaintenanceHandler) ScheduleMaintenance(c *gin.Context) {
	var req reqdto.ScheduleMaintenanceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	result, err := h.maintenanceCommands.ScheduleMaintenance(c.Request.Context(), req.ToCommand())
	if err != nil {
		var conflictErr *commands.ConflictError
		switch {
		case errors.As(err, &conflictErr):
			httperr.AbortWithError(c, http.StatusConflict, err, "Maintenance window conflicts with existing records", gin.H{
				"table_id":            conflictErr.TableID,
				"conflicting_records": conflictErr.Conflicts,
			})
		case errs.Is(err, commands.ErrTableNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Table not found", nil)
		case errs.Is(err, commands.ErrInvalidTimeSlot):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time slot", nil)
		case errs.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Domain validation failed", nil)
		case errs.Is(err, commands.ErrDataUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Constraint data temporarily unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromMaintenanceResult(result))
}

// @Summary Get maintenance
// @Description Get a single maintenance window by ID
// @Tags maintenance
// @Produce json
// @Param id path string true "Maintenance ID"
// @Success 200 {object} queries.MaintenanceView
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 500 {object} httperr.Response
// @Router /maintenance/{id} [get]
func (h *MaintenanceHandler) GetMaintenance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid maintenance ID format", nil)
		return
	}

	view, err := h.recordQueries.GetMaintenance(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrMaintenanceNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Maintenance not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
