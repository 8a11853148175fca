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

type AlertRepo struct {
	db     DB
	logger *slog.Logger
}

func NewAlertRepo(db DB, logger *slog.Logger) *AlertRepo {
	return &AlertRepo{db: db, logger: logger}
}

const alertColumns = `id, title, message, severity, target_lat, target_lng, target_radius_km,
	threat_id, is_active, source, created_at, expires_at`

func scanAlert(row scanner) (domain.Alert, error) {
	var (
		a                  domain.Alert
		lat, lng, radiusKM *float64
	)
	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Message,
		&a.Severity,
		&lat,
		&lng,
		&radiusKM,
		&a.ThreatID,
		&a.IsActive,
		&a.Source,
		&a.CreatedAt,
		&a.ExpiresAt,
	)
	if err != nil {
		return a, err
	}
	if lat != nil && lng != nil && radiusKM != nil {
		a.TargetArea = &domain.TargetArea{
			Center:   domain.Coordinate{Latitude: *lat, Longitude: *lng},
			RadiusKM: *radiusKM,
		}
	}
	return a, nil
}

func targetArgs(t *domain.TargetArea) (lat, lng, radiusKM *float64) {
	if t == nil {
		return nil, nil, nil
	}
	return &t.Center.Latitude, &t.Center.Longitude, &t.RadiusKM
}

func (r *AlertRepo) Create(ctx context.Context, a *domain.Alert) error {
	const op = "postgres.Alert.Create"

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.Source == "" {
		a.Source = domain.AlertSourceInternal
	}

	const query = `
		INSERT INTO alerts (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	lat, lng, radius := targetArgs(a.TargetArea)
	_, err := r.db.Exec(ctx, query,
		a.ID,
		a.Title,
		a.Message,
		a.Severity,
		lat,
		lng,
		radius,
		a.ThreatID,
		a.IsActive,
		a.Source,
		a.CreatedAt,
		a.ExpiresAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *AlertRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Alert, error) {
	const op = "postgres.Alert.Get"

	const query = `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1`

	a, err := scanAlert(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		r.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	return &a, nil
}

func (r *AlertRepo) List(ctx context.Context, page, limit int) ([]domain.Alert, int64, error) {
	const op = "postgres.Alert.List"

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&total); err != nil {
		r.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	const query = `
		SELECT ` + alertColumns + `
		FROM alerts
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	alerts, err := r.query(ctx, op, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return alerts, total, nil
}

// ListActive returns switched-on alerts that have not expired, newest first.
func (r *AlertRepo) ListActive(ctx context.Context) ([]domain.Alert, error) {
	const op = "postgres.Alert.ListActive"

	const query = `
		SELECT ` + alertColumns + `
		FROM alerts
		WHERE is_active AND (expires_at IS NULL OR expires_at > now())
		ORDER BY created_at DESC
	`

	return r.query(ctx, op, query)
}

func (r *AlertRepo) Update(ctx context.Context, a *domain.Alert) error {
	const op = "postgres.Alert.Update"

	const query = `
		UPDATE alerts
		SET title = $2,
			message = $3,
			severity = $4,
			is_active = $5,
			expires_at = $6
		WHERE id = $1
	`

	cmd, err := r.db.Exec(ctx, query, a.ID, a.Title, a.Message, a.Severity, a.IsActive, a.ExpiresAt)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", a.ID.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

// Deactivate switches an alert off. Alerts are never physically deleted.
func (r *AlertRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	const op = "postgres.Alert.Deactivate"

	const query = `UPDATE alerts SET is_active = false WHERE id = $1 AND is_active`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}

// DeactivateExpired switches off every active alert whose expiry has passed.
func (r *AlertRepo) DeactivateExpired(ctx context.Context) (int64, error) {
	const op = "postgres.Alert.DeactivateExpired"

	const query = `UPDATE alerts SET is_active = false WHERE is_active AND expires_at IS NOT NULL AND expires_at <= now()`

	cmd, err := r.db.Exec(ctx, query)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return 0, e.WrapError(ctx, op, err)
	}
	return cmd.RowsAffected(), nil
}

func (r *AlertRepo) query(ctx context.Context, op, query string, args ...any) ([]domain.Alert, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	alerts := make([]domain.Alert, 0, 16)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return alerts, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit
}
