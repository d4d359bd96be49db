package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

type EmergencyRepository struct {
	db *pgxpool.Pool
}

func NewEmergencyRepository(db *pgxpool.Pool) service.EmergencyStore {
	return &EmergencyRepository{db: db}
}

// Create сохраняет ЧС
func (r *EmergencyRepository) Create(ctx context.Context, e *models.Emergency) error {
	query := `
		INSERT INTO emergencies
			(id, subject_id, kind, longitude, latitude, status, device_id, nearest_responder_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		e.ID,
		e.SubjectID,
		e.Kind,
		e.Point.Longitude,
		e.Point.Latitude,
		e.Status,
		e.DeviceID,
		e.NearestResponderID,
		e.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("emergency %s: %w", e.ID, models.ErrConflict)
		}
		return fmt.Errorf("failed to create emergency: %w", err)
	}
	return nil
}

// GetByID возвращает ЧС по ее UUID
func (r *EmergencyRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Emergency, error) {
	query := `
		SELECT
			id,
			subject_id,
			kind,
			longitude,
			latitude,
			status,
			device_id,
			nearest_responder_id,
			efir_number,
			created_at,
			dispatched_at,
			resolved_at
		FROM emergencies
		WHERE id = $1;
	`
	e := &models.Emergency{}
	err := conn(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.SubjectID,
		&e.Kind,
		&e.Point.Longitude,
		&e.Point.Latitude,
		&e.Status,
		&e.DeviceID,
		&e.NearestResponderID,
		&e.EFIRNumber,
		&e.CreatedAt,
		&e.DispatchedAt,
		&e.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("emergency %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get emergency by id: %w", err)
	}
	return e, nil
}

// Transition меняет статус ЧС, только если текущий статус равен from
func (r *EmergencyRepository) Transition(ctx context.Context, id uuid.UUID, from, to models.EmergencyStatus, at time.Time) error {
	query := `
		UPDATE emergencies SET
			status = $3,
			dispatched_at = CASE WHEN $3 = 'dispatched' THEN $4 ELSE dispatched_at END,
			resolved_at = CASE WHEN $3 = 'resolved' THEN $4 ELSE resolved_at END
		WHERE id = $1 AND status = $2;
	`
	q := conn(ctx, r.db)
	cmdTag, err := q.Exec(ctx, query, id, from, to, at)
	if err != nil {
		return fmt.Errorf("failed to transition emergency: %w", err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var current string
	err = q.QueryRow(ctx, `SELECT status FROM emergencies WHERE id = $1;`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("emergency %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read emergency status: %w", err)
	}
	return fmt.Errorf("emergency %s is %s: %w", id, current, models.ErrInvalidTransition)
}

// SetEFIR записывает номер электронного протокола
func (r *EmergencyRepository) SetEFIR(ctx context.Context, id uuid.UUID, number string) error {
	query := `UPDATE emergencies SET efir_number = $2 WHERE id = $1;`
	cmdTag, err := conn(ctx, r.db).Exec(ctx, query, id, number)
	if err != nil {
		return fmt.Errorf("failed to set efir number: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("emergency %s: %w", id, models.ErrNotFound)
	}
	return nil
}
