package writerepo

import (
	"context"

	"tablebook/internal/domain/maintenance"
	"tablebook/internal/infra/db"
)

type MaintenanceRepository struct {
	db db.DBTX
}

func NewMaintenanceRepository(db db.DBTX) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

func (r *MaintenanceRepository) Create(ctx context.Context, m *maintenance.Maintenance) error {
	window := m.Window()
	query, args, err := psql.
		Insert("table_maintenance").
		Columns("id", "table_id", "scheduled_start", "scheduled_end", "reason", "status", "created_at").
		Values(
			m.ID().String(), m.TableID().String(),
			window.Start(), window.End(), m.Reason(), m.Status().String(), m.CreatedAt(),
		).
		ToSql()
	if err != nil {
		return mapPgError("build maintenance insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return mapPgError("insert maintenance", err)
	}
	return nil
}
