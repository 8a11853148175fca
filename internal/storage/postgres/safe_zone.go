package postgres

import (
	"context"
	"log/slog"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

type SafeZoneRepo struct {
	db     DB
	logger *slog.Logger
}

func NewSafeZoneRepo(db DB, logger *slog.Logger) *SafeZoneRepo {
	return &SafeZoneRepo{db: db, logger: logger}
}

func (r *SafeZoneRepo) ListActive(ctx context.Context) ([]domain.SafeZone, error) {
	const op = "postgres.SafeZone.ListActive"

	const query = `
		SELECT id, name, kind,
			   ST_Y(geo_point::geometry) AS lat,
			   ST_X(geo_point::geometry) AS lng,
			   capacity, is_active
		FROM safe_zones
		WHERE is_active
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	zones := make([]domain.SafeZone, 0, 8)
	for rows.Next() {
		var z domain.SafeZone
		if err := rows.Scan(
			&z.ID,
			&z.Name,
			&z.Kind,
			&z.Location.Latitude,
			&z.Location.Longitude,
			&z.Capacity,
			&z.IsActive,
		); err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return zones, nil
}
