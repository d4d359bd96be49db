package repository

import (
	"context"
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/tourist_safety/internal/geo"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service"
)

type ResponderRepository struct {
	db *pgxpool.Pool
}

func NewResponderRepository(db *pgxpool.Pool) service.ResponderLocator {
	return &ResponderRepository{db: db}
}

// Nearest выбирает кандидатов по ограничивающему прямоугольнику круга радиуса maxKm,
// затем находит ближайшего по расстоянию гаверсинуса
func (r *ResponderRepository) Nearest(ctx context.Context, p models.Point, maxKm float64) (*models.Responder, error) {
	radius := s1.Angle(maxKm / geo.EarthRadiusKm)
	bound := s2.CapFromCenterAngle(s2.PointFromLatLng(geo.LatLng(p)), radius).RectBound()

	query := `
		SELECT id, name, longitude, latitude, active
		FROM responders
		WHERE active AND latitude BETWEEN $1 AND $2
	`
	args := []any{bound.Lo().Lat.Degrees(), bound.Hi().Lat.Degrees()}
	if !bound.Lng.IsFull() && !bound.Lng.IsInverted() {
		query += ` AND longitude BETWEEN $3 AND $4`
		args = append(args, bound.Lo().Lng.Degrees(), bound.Hi().Lng.Degrees())
	}

	rows, err := conn(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query responders: %w", err)
	}
	defer rows.Close()

	var (
		best     *models.Responder
		bestDist float64
	)
	for rows.Next() {
		var resp models.Responder
		if err := rows.Scan(&resp.ID, &resp.Name, &resp.Point.Longitude, &resp.Point.Latitude, &resp.Active); err != nil {
			return nil, fmt.Errorf("failed to scan responder row: %w", err)
		}
		d := geo.HaversineDistanceKm(p, resp.Point)
		if d > maxKm {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = &resp, d
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error responder iteration: %w", err)
	}
	return best, nil
}
