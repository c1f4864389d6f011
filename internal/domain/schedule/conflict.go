package schedule

import "github.com/google/uuid"

// Conflict is one existing record whose busy span overlaps a candidate
// booking. Conflict checks return the full list, never a bare boolean, so the
// caller can explain the rejection.
type Conflict struct {
	RecordID uuid.UUID
	Source   Source
	Span     Span
}

// FindConflicts tests the candidate interval against every busy interval,
// skipping the record identified by exclude (uuid.Nil excludes nothing).
// Used at write time inside the caller's transaction scope.
func FindConflicts(candidate Interval, busy []BusyInterval, exclude uuid.UUID) []Conflict {
	var conflicts []Conflict
	for _, b := range busy {
		if exclude != uuid.Nil && b.RecordID == exclude {
			continue
		}
		if !b.Span.Overlaps(candidate) {
			continue
		}
		conflicts = append(conflicts, Conflict{
			RecordID: b.RecordID,
			Source:   b.Source,
			Span:     b.Span,
		})
	}
	return conflicts
}
