package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

const zoneColumns = `
	id,
	name,
	kind,
	polygon,
	risk_level,
	alert_message,
	active_hours,
	created_at,
	updated_at`

// ZoneRepository хранит зоны; кольцо полигона лежит в JSONB, проверка попадания выполняется в памяти
type ZoneRepository struct {
	db *pgxpool.Pool
}

func NewZoneRepository(db *pgxpool.Pool) service.ZoneStore {
	return &ZoneRepository{db: db}
}

func (r *ZoneRepository) Upsert(ctx context.Context, zone *models.Zone) error {
	query := `
		INSERT INTO zones (id, name, kind, polygon, risk_level, alert_message, active_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			polygon = EXCLUDED.polygon,
			risk_level = EXCLUDED.risk_level,
			alert_message = EXCLUDED.alert_message,
			active_hours = EXCLUDED.active_hours,
			updated_at = EXCLUDED.updated_at
		RETURNING created_at;
	`
	err := conn(ctx, r.db).QueryRow(ctx, query,
		zone.ID,
		zone.Name,
		zone.Kind,
		zone.Polygon,
		zone.RiskLevel,
		zone.AlertMessage,
		zone.ActiveHours,
		zone.CreatedAt,
		zone.UpdatedAt,
	).Scan(&zone.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert zone: %w", err)
	}
	return nil
}

func (r *ZoneRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := conn(ctx, r.db).Exec(ctx, `DELETE FROM zones WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete zone: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("zone %s: %w", id, models.ErrNotFound)
	}
	return nil
}

func (r *ZoneRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones WHERE id = $1;`
	zone, err := scanZone(conn(ctx, r.db).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("zone %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get zone by id: %w", err)
	}
	return zone, nil
}

// List возвращает все зоны для загрузки индекса
func (r *ZoneRepository) List(ctx context.Context) ([]models.Zone, error) {
	query := `SELECT ` + zoneColumns + ` FROM zones ORDER BY name;`
	rows, err := conn(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}
	defer rows.Close()

	zones := make([]models.Zone, 0)
	for rows.Next() {
		zone, err := scanZone(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan zone row: %w", err)
		}
		zones = append(zones, *zone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error zone iteration: %w", err)
	}
	return zones, nil
}

func scanZone(row pgx.Row) (*models.Zone, error) {
	zone := &models.Zone{}
	err := row.Scan(
		&zone.ID,
		&zone.Name,
		&zone.Kind,
		&zone.Polygon,
		&zone.RiskLevel,
		&zone.AlertMessage,
		&zone.ActiveHours,
		&zone.CreatedAt,
		&zone.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return zone, nil
}
