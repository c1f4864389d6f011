package readstore

import (
	"context"
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/internal/infra"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

func (s *Store) OperatingHours(ctx context.Context, restaurantID uuid.UUID) ([]schedule.DayHours, error) {
	query, args, err := psql.
		Select("day_of_week", "to_char(open_time, 'HH24:MI')", "to_char(close_time, 'HH24:MI')", "is_closed").
		From("operating_hours").
		Where(sq.Expr("restaurant_id = ?::uuid", restaurantID.String())).
		OrderBy("day_of_week", "open_time").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "build operating hours query", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "query operating hours", err)
	}
	defer rows.Close()

	var hours []schedule.DayHours
	for rows.Next() {
		var (
			dayOfWeek int
			h         schedule.DayHours
		)
		if err := rows.Scan(&dayOfWeek, &h.Open, &h.Close, &h.Closed); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scan operating hours row", err)
		}
		h.Weekday = time.Weekday(dayOfWeek)
		hours = append(hours, h)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "iterate operating hours rows", err)
	}
	return hours, nil
}
