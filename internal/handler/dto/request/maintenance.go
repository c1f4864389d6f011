package request

import (
	"time"

	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type ScheduleMaintenanceRequest struct {
	TableID   uuid.UUID `json:"table_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason" binding:"required"`
}

func (r ScheduleMaintenanceRequest) ToCommand() commands.ScheduleMaintenanceCommand {
	return commands.ScheduleMaintenanceCommand{
		TableID: r.TableID,
		Start:   r.StartTime,
		End:     r.EndTime,
		Reason:  r.Reason,
	}
}
