package writerepo

import (
	"context"

	"tablebook/internal/domain/reservation"
	"tablebook/internal/infra/db"
)

type ReservationRepository struct {
	db db.DBTX
}

func NewReservationRepository(db db.DBTX) *ReservationRepository {
	return &ReservationRepository{db: db}
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	slot := res.Slot()
	query, args, err := psql.
		Insert("reservations").
		Columns(
			"id", "restaurant_id", "table_id", "customer_id",
			"party_size", "start_time", "end_time", "status", "note", "created_at",
		).
		Values(
			res.ID().String(), res.RestaurantID().String(), res.TableID().String(), res.CustomerID().String(),
			res.PartySize(), slot.Start(), slot.End(), res.Status().String(), res.Note(), res.CreatedAt(),
		).
		ToSql()
	if err != nil {
		return mapPgError("build reservation insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return mapPgError("insert reservation", err)
	}
	return nil
}
