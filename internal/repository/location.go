package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

type LocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) service.LocationStore {
	return &LocationRepository{db: db}
}

// Append сохраняет отчет о местоположении
func (r *LocationRepository) Append(ctx context.Context, report *models.LocationReport) error {
	query := `
		INSERT INTO location_reports
			(subject_id, longitude, latitude, recorded_at, altitude, accuracy, source, battery_level, health, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id;
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		report.SubjectID,
		report.Point.Longitude,
		report.Point.Latitude,
		report.Timestamp,
		report.Altitude,
		report.Accuracy,
		report.Source,
		report.BatteryLevel,
		report.Health,
		report.ReceivedAt,
	).Scan(&report.ID)
	if err != nil {
		return fmt.Errorf("failed to append location report: %w", err)
	}
	return nil
}

// RecentFor возвращает отчеты субъекта начиная с since в хронологическом порядке
func (r *LocationRepository) RecentFor(ctx context.Context, subjectID string, since time.Time) ([]models.LocationReport, error) {
	query := `
		SELECT
			id,
			subject_id,
			longitude,
			latitude,
			recorded_at,
			altitude,
			accuracy,
			source,
			battery_level,
			health,
			received_at
		FROM location_reports
		WHERE subject_id = $1 AND recorded_at >= $2
		ORDER BY recorded_at, id;
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, subjectID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent locations: %w", err)
	}
	defer rows.Close()

	reports := make([]models.LocationReport, 0)
	for rows.Next() {
		var rep models.LocationReport
		err := rows.Scan(
			&rep.ID,
			&rep.SubjectID,
			&rep.Point.Longitude,
			&rep.Point.Latitude,
			&rep.Timestamp,
			&rep.Altitude,
			&rep.Accuracy,
			&rep.Source,
			&rep.BatteryLevel,
			&rep.Health,
			&rep.ReceivedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location row: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error location iteration: %w", err)
	}
	return reports, nil
}

// SubjectsSince возвращает субъектов, присылавших отчеты начиная с since
func (r *LocationRepository) SubjectsSince(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT DISTINCT subject_id
		FROM location_reports
		WHERE recorded_at >= $1
		ORDER BY subject_id;
	`
	rows, err := conn(ctx, r.db).Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query active subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subject row: %w", err)
		}
		subjects = append(subjects, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error subject iteration: %w", err)
	}
	return subjects, nil
}
