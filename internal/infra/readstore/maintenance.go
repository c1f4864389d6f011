package readstore

import (
	"context"
	"time"

	"tablebook/internal/domain/maintenance"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// MaintenanceOverlapping fetches scheduled rows intersecting the window plus
// every in-progress row regardless of its window: an in-progress record with
// no actual end blocks its table indefinitely.
func (s *Store) MaintenanceOverlapping(
	ctx context.Context,
	tableIDs []uuid.UUID,
	window schedule.Interval,
) ([]maintenance.Record, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.
		Select("id", "table_id", "scheduled_start", "scheduled_end", "actual_start", "actual_end", "status").
		From("table_maintenance").
		Where(sq.Expr("table_id = ANY(?::uuid[])", uuidStrings(tableIDs))).
		Where(sq.Or{
			sq.Eq{"status": string(maintenance.StatusInProgress)},
			sq.And{
				sq.Eq{"status": string(maintenance.StatusScheduled)},
				sq.Lt{"scheduled_start": window.End()},
				sq.Gt{"scheduled_end": window.Start()},
			},
		}).
		OrderBy("scheduled_start").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "build maintenance query", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "query maintenance", err)
	}
	defer rows.Close()

	var records []maintenance.Record
	for rows.Next() {
		var (
			rec         maintenance.Record
			idStr       string
			tableIDStr  string
			actualStart *time.Time
			actualEnd   *time.Time
			status      string
		)
		if err := rows.Scan(&idStr, &tableIDStr, &rec.ScheduledStart, &rec.ScheduledEnd, &actualStart, &actualEnd, &status); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scan maintenance row", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse maintenance id", err)
		}
		tableID, err := uuid.Parse(tableIDStr)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse maintenance table id", err)
		}
		rec.ID = id
		rec.TableID = tableID
		rec.ActualStart = actualStart
		rec.ActualEnd = actualEnd
		rec.Status = maintenance.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "iterate maintenance rows", err)
	}
	return records, nil
}
