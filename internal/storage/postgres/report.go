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

type ReportRepo struct {
	db     DB
	logger *slog.Logger
}

func NewReportRepo(db DB, logger *slog.Logger) *ReportRepo {
	return &ReportRepo{db: db, logger: logger}
}

const reportSelect = `
	SELECT id, session_id, category, description,
		   ST_Y(geo_point::geometry) AS lat,
		   ST_X(geo_point::geometry) AS lng,
		   urgency, status, media_paths, created_at
	FROM reports
`

func scanReport(row scanner) (domain.Report, error) {
	var rep domain.Report
	err := row.Scan(
		&rep.ID,
		&rep.SessionID,
		&rep.Category,
		&rep.Description,
		&rep.Location.Latitude,
		&rep.Location.Longitude,
		&rep.Urgency,
		&rep.Status,
		&rep.MediaPaths,
		&rep.CreatedAt,
	)
	return rep, err
}

func (r *ReportRepo) Create(ctx context.Context, rep *domain.Report) error {
	const op = "postgres.Report.Create"

	if !rep.Location.Valid() {
		return fmt.Errorf("%s: %w", op, e.ErrInvalidCoordinates)
	}
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	if rep.CreatedAt.IsZero() {
		rep.CreatedAt = time.Now().UTC()
	}
	if rep.Status == "" {
		rep.Status = domain.ReportPending
	}
	if rep.Urgency == "" {
		rep.Urgency = domain.UrgencyMedium
	}
	if rep.MediaPaths == nil {
		rep.MediaPaths = []string{}
	}

	const query = `
		INSERT INTO reports (id, session_id, category, description, geo_point, urgency, status, media_paths, created_at)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8, $9, $10)
	`

	_, err := r.db.Exec(ctx, query,
		rep.ID,
		rep.SessionID,
		rep.Category,
		rep.Description,
		rep.Location.Longitude,
		rep.Location.Latitude,
		rep.Urgency,
		rep.Status,
		rep.MediaPaths,
		rep.CreatedAt,
	)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func (r *ReportRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	const op = "postgres.Report.Get"

	rep, err := scanReport(r.db.QueryRow(ctx, reportSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		r.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}
	return &rep, nil
}

// List pages through reports, newest first. An empty status lists all of them.
func (r *ReportRepo) List(ctx context.Context, status domain.ReportStatus, page, limit int) ([]domain.Report, int64, error) {
	const op = "postgres.Report.List"

	page, limit = normalizePage(page, limit)
	offset := (page - 1) * limit

	const filter = ` WHERE ($1 = '' OR status = $1)`

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM reports`+filter, string(status)).Scan(&total); err != nil {
		r.logger.Error("db count failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}

	rows, err := r.db.Query(ctx, reportSelect+filter+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		string(status), limit, offset)
	if err != nil {
		r.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0, limit)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			r.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, 0, e.WrapError(ctx, op, err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, 0, e.WrapError(ctx, op, err)
	}
	return reports, total, nil
}

func (r *ReportRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReportStatus) error {
	const op = "postgres.Report.UpdateStatus"

	cmd, err := r.db.Exec(ctx, `UPDATE reports SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}
	return nil
}
