package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

type DeviceRepository struct {
	db *pgxpool.Pool
}

func NewDeviceRepository(db *pgxpool.Pool) service.DeviceStore {
	return &DeviceRepository{db: db}
}

// Register сохраняет новое устройство. Повторный device_id - models.ErrConflict.
func (r *DeviceRepository) Register(ctx context.Context, d *models.Device) error {
	lon, lat := pointArgs(d.Point)
	query := `
		INSERT INTO devices
			(device_id, subject_id, kind, status, firmware_version, battery_level, longitude, latitude, health, last_heartbeat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := conn(ctx, r.db).Exec(ctx, query,
		d.DeviceID,
		d.SubjectID,
		d.Kind,
		d.Status,
		d.FirmwareVersion,
		d.BatteryLevel,
		lon,
		lat,
		d.Health,
		d.LastHeartbeat,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("device %s: %w", d.DeviceID, models.ErrConflict)
		}
		return fmt.Errorf("failed to register device: %w", err)
	}
	return nil
}

func (r *DeviceRepository) GetByDeviceID(ctx context.Context, deviceID string) (*models.Device, error) {
	query := `
		SELECT
			device_id,
			subject_id,
			kind,
			status,
			firmware_version,
			battery_level,
			longitude,
			latitude,
			health,
			last_heartbeat
		FROM devices
		WHERE device_id = $1;
	`
	d := &models.Device{}
	var lon, lat *float64
	err := conn(ctx, r.db).QueryRow(ctx, query, deviceID).Scan(
		&d.DeviceID,
		&d.SubjectID,
		&d.Kind,
		&d.Status,
		&d.FirmwareVersion,
		&d.BatteryLevel,
		&lon,
		&lat,
		&d.Health,
		&d.LastHeartbeat,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("device %s: %w", deviceID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	if lon != nil && lat != nil {
		d.Point = &models.Point{Longitude: *lon, Latitude: *lat}
	}
	return d, nil
}

// Heartbeat обновляет время последнего сигнала и переданные показатели
func (r *DeviceRepository) Heartbeat(ctx context.Context, deviceID string, at time.Time, battery *int, point *models.Point, health *models.HealthMetrics) error {
	lon, lat := pointArgs(point)
	query := `
		UPDATE devices SET
			last_heartbeat = $2,
			battery_level = COALESCE($3, battery_level),
			longitude = COALESCE($4, longitude),
			latitude = COALESCE($5, latitude),
			health = COALESCE($6, health),
			status = CASE WHEN status = 'inactive' THEN 'active' ELSE status END
		WHERE device_id = $1;
	`
	cmdTag, err := conn(ctx, r.db).Exec(ctx, query, deviceID, at, battery, lon, lat, health)
	if err != nil {
		return fmt.Errorf("failed to record heartbeat: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("device %s: %w", deviceID, models.ErrNotFound)
	}
	return nil
}

// MarkSOS переводит устройство в статус sos и запоминает точку сигнала
func (r *DeviceRepository) MarkSOS(ctx context.Context, deviceID string, point models.Point, health *models.HealthMetrics, at time.Time) error {
	query := `
		UPDATE devices SET
			status = 'sos',
			longitude = $2,
			latitude = $3,
			health = COALESCE($4, health),
			last_heartbeat = $5
		WHERE device_id = $1;
	`
	cmdTag, err := conn(ctx, r.db).Exec(ctx, query, deviceID, point.Longitude, point.Latitude, health, at)
	if err != nil {
		return fmt.Errorf("failed to mark device sos: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("device %s: %w", deviceID, models.ErrNotFound)
	}
	return nil
}

func pointArgs(p *models.Point) (lon, lat *float64) {
	if p == nil {
		return nil, nil
	}
	return &p.Longitude, &p.Latitude
}
