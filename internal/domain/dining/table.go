package dining

import (
	"fmt"
	"sort"

	"tablebook/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidPartySize = errs.New("invalid party size")

// Table is a bookable dining table. Read-only to the resolver; the catalog
// CRUD owns its lifecycle.
type Table struct {
	ID          uuid.UUID
	Number      string
	Capacity    int
	MinCapacity int
	AreaID      uuid.UUID
	AreaName    string
	Active      bool
}

// Fits reports whether the table's capacity bounds admit the party:
// minCapacity <= partySize <= capacity. MinCapacity keeps large tables from
// being burned on tiny parties.
func (t Table) Fits(partySize int) bool {
	return t.Capacity >= partySize && t.MinCapacity <= partySize
}

type Area struct {
	ID           uuid.UUID
	Name         string
	RestaurantID uuid.UUID
}

// EligibleTables keeps active tables whose capacity bounds admit the party,
// optionally restricted to one area, ordered by capacity ascending (smallest
// adequate table first) with table number as tiebreak.
func EligibleTables(tables []Table, partySize int, areaID *uuid.UUID) ([]Table, error) {
	if partySize <= 0 {
		return nil, errs.Mark(errs.New(fmt.Sprintf("party size %d", partySize)), ErrInvalidPartySize)
	}

	eligible := make([]Table, 0, len(tables))
	for _, t := range tables {
		if !t.Active || !t.Fits(partySize) {
			continue
		}
		if areaID != nil && t.AreaID != *areaID {
			continue
		}
		eligible = append(eligible, t)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].Capacity != eligible[j].Capacity {
			return eligible[i].Capacity < eligible[j].Capacity
		}
		return eligible[i].Number < eligible[j].Number
	})
	return eligible, nil
}
