package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

const alertColumns = `
	id,
	subject_id,
	cause,
	cause_key,
	severity,
	longitude,
	latitude,
	description,
	status,
	acknowledged_by,
	acknowledged_at,
	created_at,
	resolved_at,
	metadata`

type AlertRepository struct {
	db *pgxpool.Pool
}

func NewAlertRepository(db *pgxpool.Pool) service.AlertStore {
	return &AlertRepository{db: db}
}

// FindActive возвращает активный алерт по ключу дедупликации или nil
func (r *AlertRepository) FindActive(ctx context.Context, subjectID string, cause models.AlertCause, causeKey string) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + `
		FROM alerts
		WHERE subject_id = $1 AND cause = $2 AND cause_key = $3 AND status = 'active'
		LIMIT 1;
	`
	alert, err := scanAlert(conn(ctx, r.db).QueryRow(ctx, query, subjectID, cause, causeKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active alert: %w", err)
	}
	return alert, nil
}

// LatestResolved возвращает последний разрешенный алерт по ключу или nil
func (r *AlertRepository) LatestResolved(ctx context.Context, subjectID string, cause models.AlertCause, causeKey string) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + `
		FROM alerts
		WHERE subject_id = $1 AND cause = $2 AND cause_key = $3 AND resolved_at IS NOT NULL
		ORDER BY resolved_at DESC
		LIMIT 1;
	`
	alert, err := scanAlert(conn(ctx, r.db).QueryRow(ctx, query, subjectID, cause, causeKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find resolved alert: %w", err)
	}
	return alert, nil
}

// Create сохраняет алерт. Частичный уникальный индекс uq_alerts_active_cause не допускает
// второго активного алерта по геозоне или аномалии, в этом случае возвращается models.ErrConflict.
func (r *AlertRepository) Create(ctx context.Context, alert *models.Alert) error {
	query := `
		INSERT INTO alerts
			(id, subject_id, cause, cause_key, severity, longitude, latitude, description, status, created_at, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (subject_id, cause, cause_key)
			WHERE status = 'active' AND cause IN ('geofence', 'anomaly')
		DO NOTHING;
	`
	cmdTag, err := conn(ctx, r.db).Exec(ctx, query,
		alert.ID,
		alert.SubjectID,
		alert.Cause,
		alert.CauseKey,
		alert.Severity,
		alert.Point.Longitude,
		alert.Point.Latitude,
		alert.Description,
		alert.Status,
		alert.CreatedAt,
		alert.Metadata,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("alert %s: %w", alert.ID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create alert: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("active %s alert for %s: %w", alert.Cause, alert.SubjectID, models.ErrConflict)
	}
	return nil
}

// GetByID возвращает алерт по его UUID
func (r *AlertRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Alert, error) {
	query := `SELECT ` + alertColumns + ` FROM alerts WHERE id = $1;`
	alert, err := scanAlert(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("alert %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get alert by id: %w", err)
	}
	return alert, nil
}

// Transition меняет статус алерта, только если текущий статус равен from
func (r *AlertRepository) Transition(ctx context.Context, id uuid.UUID, from, to models.AlertStatus, at time.Time, by string) error {
	query := `
		UPDATE alerts SET
			status = $3,
			acknowledged_by = CASE WHEN $3 = 'acknowledged' THEN $5 ELSE acknowledged_by END,
			acknowledged_at = CASE WHEN $3 = 'acknowledged' THEN $4 ELSE acknowledged_at END,
			resolved_at = CASE WHEN $3 = 'resolved' THEN $4 ELSE resolved_at END
		WHERE id = $1 AND status = $2;
	`
	q := conn(ctx, r.db)
	cmdTag, err := q.Exec(ctx, query, id, from, to, at, by)
	if err != nil {
		return fmt.Errorf("failed to transition alert: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = q.QueryRow(ctx, `SELECT status FROM alerts WHERE id = $1;`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("alert %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read alert status: %w", err)
	}
	return fmt.Errorf("alert %s is %s: %w", id, current, models.ErrInvalidTransition)
}

// ListForSubject возвращает алерты субъекта по фильтру, новые первыми
func (r *AlertRepository) ListForSubject(ctx context.Context, subjectID string, filter models.AlertFilter) ([]models.Alert, error) {
	conds := []string{"subject_id = $1", "created_at >= $2"}
	args := []any{subjectID, filter.Since}
	if filter.Cause != "" {
		args = append(args, filter.Cause)
		conds = append(conds, fmt.Sprintf("cause = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + alertColumns + `
		FROM alerts
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY created_at DESC, id;
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]models.Alert, 0)
	for rows.Next() {
		alert, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}
		alerts = append(alerts, *alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error alert iteration: %w", err)
	}
	return alerts, nil
}

func scanAlert(row pgx.Row) (*models.Alert, error) {
	alert := &models.Alert{}
	err := row.Scan(
		&alert.ID,
		&alert.SubjectID,
		&alert.Cause,
		&alert.CauseKey,
		&alert.Severity,
		&alert.Point.Longitude,
		&alert.Point.Latitude,
		&alert.Description,
		&alert.Status,
		&alert.AcknowledgedBy,
		&alert.AcknowledgedAt,
		&alert.CreatedAt,
		&alert.ResolvedAt,
		&alert.Metadata,
	)
	if err != nil {
		return nil, err
	}
	return alert, nil
}
