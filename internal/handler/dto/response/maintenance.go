package response

import (
	"time"

	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type MaintenanceResponse struct {
	ID        uuid.UUID `json:"id"`
	TableID   uuid.UUID `json:"tableId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
}

func FromMaintenanceResult(rm *commands.MaintenanceResult) *MaintenanceResponse {
	return &MaintenanceResponse{
		ID:        rm.ID,
		TableID:   rm.TableID,
		StartTime: rm.Start,
		EndTime:   rm.End,
		Status:    rm.Status,
		Reason:    rm.Reason,
	}
}
