package response

import (
	"time"

	"tablebook/internal/usecase/commands"

	"github.com/google/uuid"
)

type ReservationResponse struct {
	ID        uuid.UUID `json:"id"`
	TableID   uuid.UUID `json:"tableId"`
	PartySize int       `json:"partySize"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Status    string    `json:"status"`
}

func FromReservationResult(rm *commands.ReservationResult) *ReservationResponse {
	return &ReservationResponse{
		ID:        rm.ID,
		TableID:   rm.TableID,
		PartySize: rm.PartySize,
		StartTime: rm.Start,
		EndTime:   rm.End,
		Status:    rm.Status,
	}
}

type ConflictRecordResponse struct {
	RecordID uuid.UUID  `json:"recordId"`
	Source   string     `json:"source"`
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"` // absent for open-ended maintenance
}

type ConflictCheckResponse struct {
	Conflict  bool                     `json:"conflict"`
	TableID   uuid.UUID                `json:"tableId"`
	Conflicts []ConflictRecordResponse `json:"conflictingRecords"`
}

func FromConflictReport(rm *commands.ConflictReport) *ConflictCheckResponse {
	return &ConflictCheckResponse{
		Conflict:  rm.Conflict,
		TableID:   rm.TableID,
		Conflicts: conflictRecords(rm.Conflicts),
	}
}

func conflictRecords(views []commands.ConflictRecordView) []ConflictRecordResponse {
	records := make([]ConflictRecordResponse, len(views))
	for i, v := range views {
		records[i] = ConflictRecordResponse{
			RecordID: v.RecordID,
			Source:   v.Source,
			Start:    v.Start,
			End:      v.End,
		}
	}
	return records
}
