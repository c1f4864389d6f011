package readstore

import (
	"context"
	"errors"
	"time"

	"tablebook/internal/infra"
	"tablebook/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) ReservationByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	query, args, err := psql.
		Select("r.id", "r.restaurant_id", "r.table_id", "t.number", "r.customer_id",
			"r.party_size", "r.start_time", "r.end_time", "r.status", "r.note", "r.created_at").
		From("reservations r").
		LeftJoin("tables t ON t.id = r.table_id").
		Where(sq.Expr("r.id = ?::uuid", id.String())).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "build reservation lookup", err)
	}

	var (
		view            queries.ReservationView
		idStr           string
		restaurantIDStr string
		tableID         uuid.NullUUID
		tableNumber     *string
		customerIDStr   string
		end             *time.Time
	)
	row := s.db.QueryRow(ctx, query, args...)
	if err := row.Scan(&idStr, &restaurantIDStr, &tableID, &tableNumber, &customerIDStr,
		&view.PartySize, &view.Start, &end, &view.Status, &view.Note, &view.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "reservation not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scan reservation", err)
	}

	resID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse reservation id", err)
	}
	restaurantID, err := uuid.Parse(restaurantIDStr)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse restaurant id", err)
	}
	customerID, err := uuid.Parse(customerIDStr)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse customer id", err)
	}
	view.ID = resID
	view.RestaurantID = restaurantID
	view.CustomerID = customerID
	if tableID.Valid {
		t := tableID.UUID
		view.TableID = &t
	}
	view.TableNumber = tableNumber
	view.End = end
	return &view, nil
}

func (s *Store) MaintenanceByID(ctx context.Context, id uuid.UUID) (*queries.MaintenanceView, error) {
	query, args, err := psql.
		Select("id", "table_id", "scheduled_start", "scheduled_end", "actual_start", "actual_end", "status", "reason").
		From("table_maintenance").
		Where(sq.Expr("id = ?::uuid", id.String())).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "build maintenance lookup", err)
	}

	var (
		view       queries.MaintenanceView
		idStr      string
		tableIDStr string
	)
	row := s.db.QueryRow(ctx, query, args...)
	if err := row.Scan(&idStr, &tableIDStr, &view.ScheduledStart, &view.ScheduledEnd,
		&view.ActualStart, &view.ActualEnd, &view.Status, &view.Reason); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "maintenance not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scan maintenance", err)
	}

	mntID, err := uuid.Parse(idStr)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse maintenance id", err)
	}
	tableID, err := uuid.Parse(tableIDStr)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "parse maintenance table id", err)
	}
	view.ID = mntID
	view.TableID = tableID
	return &view, nil
}
