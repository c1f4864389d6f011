package readstore

import (
	"context"
	"errors"

	"tablebook/internal/domain/dining"
	"tablebook/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (s *Store) TablesByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]dining.Table, error) {
	query, args, err := psql.
		Select("t.id", "t.number", "t.capacity", "t.min_capacity", "t.area_id", "a.name", "t.is_active").
		From("tables t").
		Join("areas a ON a.id = t.area_id").
		Where("a.restaurant_id = ?", restaurantID.String()).
		OrderBy("t.number").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "build tables query", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "query tables", err)
	}
	defer rows.Close()

	var tables []dining.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "scan table row", err)
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "iterate table rows", err)
	}
	return tables, nil
}

func (s *Store) TableByID(ctx context.Context, id uuid.UUID) (*dining.Table, error) {
	query, args, err := psql.
		Select("t.id", "t.number", "t.capacity", "t.min_capacity", "t.area_id", "a.name", "t.is_active").
		From("tables t").
		Join("areas a ON a.id = t.area_id").
		Where("t.id = ?", id.String()).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "build table query", err)
	}

	row := s.db.QueryRow(ctx, query, args...)
	t, err := scanTable(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "table not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "scan table row", err)
	}
	return &t, nil
}

func scanTable(row pgx.Row) (dining.Table, error) {
	var (
		t         dining.Table
		idStr     string
		areaIDStr string
	)
	if err := row.Scan(&idStr, &t.Number, &t.Capacity, &t.MinCapacity, &areaIDStr, &t.AreaName, &t.Active); err != nil {
		return dining.Table{}, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return dining.Table{}, err
	}
	areaID, err := uuid.Parse(areaIDStr)
	if err != nil {
		return dining.Table{}, err
	}
	t.ID = id
	t.AreaID = areaID
	return t, nil
}
