package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"borderwatch/internal/domain"
	"borderwatch/pkg/e"
)

type ThreatRepo struct {
	db     DB
	logger *slog.Logger
}

func NewThreatRepo(db DB, logger *slog.Logger) *ThreatRepo {
	return &ThreatRepo{db: db, logger: logger}
}

const threatSelect = `
	SELECT id, title, description, category, severity,
		   ST_Y(geo_point::geometry) AS lat,
		   ST_X(geo_point::geometry) AS lng,
		   is_active, reported_at
	FROM threats
`

func scanThreat(row scanner) (domain.Threat, error) {
	var t domain.Threat
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.Category,
		&t.Severity,
		&t.Location.Latitude,
		&t.Location.Longitude,
		&t.IsActive,
		&t.ReportedAt,
	)
	return t, err
}

func (r *ThreatRepo) Create(ctx context.Context, t *domain.Threat) error {
	const op = "postgres.Threat.Create"

	if !t.Location.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.ReportedAt.IsZero() {
		t.ReportedAt = time.Now().UTC()
	}

	const query = `
		INSERT INTO threats (id, title, description, category, severity, geo_point, is_active, reported_at)
		VALUES ($1, $2, $3, $4, $5, ST_SetSRID(ST_MakePoint($6, $7), 4326), $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		t.ID,
		t.Title,
		t.Description,
		t.Category,
		t.Severity,
		t.Location.Longitude,
		t.Location.Latitude,
		t.IsActive,
		t.ReportedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *ThreatRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Threat, error) {
	const op = "postgres.Threat.Get"

	t, err := scanThreat(r.db.QueryRow(ctx, threatSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		r.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	return &t, nil
}

func (r *ThreatRepo) ListActive(ctx context.Context) ([]domain.Threat, error) {
	const op = "postgres.Threat.ListActive"
	return r.query(ctx, op, threatSelect+` WHERE is_active ORDER BY reported_at DESC`)
}

// FindNearby returns active threats within radiusKm of origin, nearest first.
func (r *ThreatRepo) FindNearby(ctx context.Context, origin domain.Coordinate, radiusKm float64) ([]domain.Threat, error) {
	const op = "postgres.Threat.FindNearby"

	if !origin.Valid() || radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}

	// geography cast keeps distances in metres.
	const where = `
		WHERE is_active
		  AND ST_DWithin(
			geo_point,
			ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
			$3 * 1000
		  )
		ORDER BY geo_point <-> ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
	`

	return r.query(ctx, op, threatSelect+where, origin.Longitude, origin.Latitude, radiusKm)
}

func (r *ThreatRepo) query(ctx context.Context, op, query string, args ...any) ([]domain.Threat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	threats := make([]domain.Threat, 0, 8)
	for rows.Next() {
		t, err := scanThreat(rows)
		if err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		threats = append(threats, t)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return threats, nil
}
