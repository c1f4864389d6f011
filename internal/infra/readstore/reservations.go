package readstore

import (
	"context"
	"time"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// ReservationsOverlapping fetches reservation rows of any status whose span
// overlaps the window. Rows without a stored end time get one derived from
// the default duration, mirrored here in SQL so the window narrowing and the
// domain's derived interval agree.
func (s *Store) ReservationsOverlapping(
	ctx context.Context,
	tableIDs []uuid.UUID,
	window schedule.Interval,
	defaultDuration time.Duration,
) ([]reservation.Record, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}

	query, args, err := psql.
		Select("id", "table_id", "start_time", "end_time", "status").
		From("reservations").
		Where(sq.Expr("table_id = ANY(?::uuid[])", uuidStrings(tableIDs))).
		Where(sq.Lt{"start_time": window.End()}).
		Where(sq.Expr("COALESCE(end_time, start_time + make_interval(mins => ?)) > ?",
			int(defaultDuration.Minutes()), window.Start())).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "build reservations query", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "query reservations", err)
	}
	defer rows.Close()

	var records []reservation.Record
	for rows.Next() {
		var (
			rec     reservation.Record
			idStr   string
			tableID uuid.NullUUID
			end     *time.Time
			status  string
		)
		if err := rows.Scan(&idStr, &tableID, &rec.Start, &end, &status); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scan reservation row", err)
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse reservation id", err)
		}
		rec.ID = id
		if tableID.Valid {
			t := tableID.UUID
			rec.TableID = &t
		}
		rec.End = end
		rec.Status = reservation.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "iterate reservation rows", err)
	}
	return records, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
