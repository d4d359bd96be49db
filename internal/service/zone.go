package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/zoneindex"
	"github.com/sirupsen/logrus"
)

// ZoneService определяет контракт управления геозонами.
// Изменения сначала сохраняются в хранилище, затем публикуются в индекс.
type ZoneService interface {
	LoadIndex(ctx context.Context) error
	UpsertZone(ctx context.Context, zone *models.Zone) error
	RemoveZone(ctx context.Context, id uuid.UUID) error
	GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error)
	ListZones(ctx context.Context) ([]models.Zone, error)
	// CheckPoint возвращает активные в момент at зоны, содержащие точку, от самой опасной
	CheckPoint(ctx context.Context, point models.Point, at time.Time) ([]models.Zone, error)
}

type zoneService struct {
	store   ZoneStore
	index   *zoneindex.Index
	logger  *logrus.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewZoneService(store ZoneStore, index *zoneindex.Index, logger *logrus.Logger, m *metrics.Metrics) ZoneService {
	return &zoneService{
		store:   store,
		index:   index,
		logger:  logger,
		metrics: m,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// LoadIndex загружает все зоны из хранилища в индекс
func (s *zoneService) LoadIndex(ctx context.Context) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "LoadIndex",
	})

	zones, err := s.store.List(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to list zones from repository")
		return storeError("list zones", err)
	}
	if err := s.index.Load(zones); err != nil {
		log.WithError(err).Error("Failed to load zone index")
		return fmt.Errorf("service: could not load zone index: %w", err)
	}

	s.metrics.SetZones(s.index.Len())
	log.WithField("zones", len(zones)).Info("Zone index loaded")
	return nil
}

// UpsertZone создает или заменяет зону. Некорректная геометрия отклоняется до записи.
func (s *zoneService) UpsertZone(ctx context.Context, zone *models.Zone) error {
	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "UpsertZone",
		"zone_id": zone.ID,
	})
	log.Info("Attempting to upsert zone")

	if err := zone.ValidateRiskLevel(); err != nil {
		log.WithError(err).Warn("Rejected zone")
		return fmt.Errorf("service: invalid zone: %w", err)
	}
	if err := s.index.Validate(*zone); err != nil {
		log.WithError(err).Warn("Rejected zone")
		return fmt.Errorf("service: invalid zone: %w", err)
	}

	now := s.now()
	if existing, ok := s.index.Get(zone.ID); ok {
		zone.CreatedAt = existing.CreatedAt
	} else if zone.CreatedAt.IsZero() {
		zone.CreatedAt = now
	}
	zone.UpdatedAt = now

	if err := s.store.Upsert(ctx, zone); err != nil {
		log.WithError(err).Error("Failed to upsert zone in repository")
		return storeError("upsert zone", err)
	}
	if err := s.index.Upsert(*zone); err != nil {
		return fmt.Errorf("service: could not index zone: %w", err)
	}

	s.metrics.SetZones(s.index.Len())
	log.Info("Zone upserted successfully")
	return nil
}

// RemoveZone удаляет зону из хранилища и индекса
func (s *zoneService) RemoveZone(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "zone",
		"method":  "RemoveZone",
		"zone_id": id,
	})

	if err := s.store.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete zone in repository")
		return storeError("delete zone", err)
	}
	if err := s.index.Remove(id); err != nil {
		log.WithError(err).Warn("Zone was not indexed")
	}

	s.metrics.SetZones(s.index.Len())
	log.Info("Zone removed successfully")
	return nil
}

func (s *zoneService) GetZone(ctx context.Context, id uuid.UUID) (*models.Zone, error) {
	if zone, ok := s.index.Get(id); ok {
		return &zone, nil
	}
	zone, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get zone", err)
	}
	return zone, nil
}

func (s *zoneService) ListZones(_ context.Context) ([]models.Zone, error) {
	return s.index.List(), nil
}

func (s *zoneService) CheckPoint(_ context.Context, point models.Point, at time.Time) ([]models.Zone, error) {
	if err := point.Validate(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if at.IsZero() {
		at = s.now()
	}
	return s.index.ZonesContaining(point, at), nil
}
