package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shenikar/tourist_safety/internal/anomaly"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/zoneindex"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	batchParallelism = 8
	sweepParallelism = 4
)

// LocationService определяет контракт конвейера обработки местоположений
type LocationService interface {
	// EvaluateLocation сохраняет отчет, проверяет геозоны и (не чаще AnomalyInterval) аномалии.
	// Возвращает только вновь созданные алерты.
	EvaluateLocation(ctx context.Context, report *models.LocationReport) ([]models.Alert, error)
	EvaluateBatch(ctx context.Context, reports []models.LocationReport) ([]models.Alert, error)
	AnalyzeSubject(ctx context.Context, subjectID string, window time.Duration) ([]models.Anomaly, []models.Alert, error)
	// SweepAnomalies анализирует всех недавно активных субъектов, возвращает число созданных алертов
	SweepAnomalies(ctx context.Context) (int, error)
	History(ctx context.Context, subjectID string, since time.Time) ([]models.LocationReport, error)
}

type locationService struct {
	repos    Repositories
	tx       txRunner
	alerts   AlertService
	index    *zoneindex.Index
	detector *anomaly.Detector
	logger   *logrus.Logger
	cfg      *config.Config
	metrics  *metrics.Metrics
	now      func() time.Time

	locks *keyedMutex

	anomalyMu  sync.Mutex
	lastReview map[string]time.Time
}

func NewLocationService(
	repos Repositories,
	alerts AlertService,
	index *zoneindex.Index,
	detector *anomaly.Detector,
	logger *logrus.Logger,
	cfg *config.Config,
	m *metrics.Metrics,
) LocationService {
	return &locationService{
		repos:      repos,
		tx:         txRunner{tx: repos.Tx},
		alerts:     alerts,
		index:      index,
		detector:   detector,
		logger:     logger,
		cfg:        cfg,
		metrics:    m,
		now:        func() time.Time { return time.Now().UTC() },
		locks:      newKeyedMutex(),
		lastReview: make(map[string]time.Time),
	}
}

// EvaluateLocation обрабатывает один отчет о местоположении
func (s *locationService) EvaluateLocation(ctx context.Context, report *models.LocationReport) ([]models.Alert, error) {
	start := time.Now()
	log := s.logger.WithFields(logrus.Fields{
		"service":    "location",
		"method":     "EvaluateLocation",
		"subject_id": report.SubjectID,
	})

	if err := s.normalize(report); err != nil {
		log.WithError(err).Warn("Rejected location report")
		return nil, err
	}

	unlock := s.locks.Lock(report.SubjectID)
	defer unlock()

	alerts, err := s.evaluateLocked(ctx, report)
	if err != nil {
		log.WithError(err).Error("Failed to evaluate location")
		return nil, err
	}
	if s.anomalyDue(report.SubjectID) {
		alerts = append(alerts, s.reviewAnomalies(ctx, report.SubjectID)...)
	}

	s.metrics.ObserveEvaluate(time.Since(start))
	log.WithField("alerts", len(alerts)).Debug("Location evaluated")
	return alerts, nil
}

// EvaluateBatch обрабатывает пакет отчетов. Отчеты одного субъекта обрабатываются по времени,
// разные субъекты - параллельно. Атомарен каждый отчет, но не пакет целиком.
func (s *locationService) EvaluateBatch(ctx context.Context, reports []models.LocationReport) ([]models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "EvaluateBatch",
		"count":   len(reports),
	})
	log.Info("Evaluating location batch")

	bySubject := make(map[string][]*models.LocationReport)
	var order []string
	for i := range reports {
		r := &reports[i]
		if err := s.normalize(r); err != nil {
			return nil, fmt.Errorf("report %d: %w", i, err)
		}
		if _, ok := bySubject[r.SubjectID]; !ok {
			order = append(order, r.SubjectID)
		}
		bySubject[r.SubjectID] = append(bySubject[r.SubjectID], r)
	}

	var (
		mu  sync.Mutex
		out []models.Alert
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchParallelism)
	for _, subjectID := range order {
		group := bySubject[subjectID]
		sort.SliceStable(group, func(a, b int) bool { return group[a].Timestamp.Before(group[b].Timestamp) })

		g.Go(func() error {
			unlock := s.locks.Lock(subjectID)
			defer unlock()

			var created []models.Alert
			for _, r := range group {
				alerts, err := s.evaluateLocked(gctx, r)
				if err != nil {
					return fmt.Errorf("subject %s: %w", subjectID, err)
				}
				created = append(created, alerts...)
			}
			if s.anomalyDue(subjectID) {
				created = append(created, s.reviewAnomalies(gctx, subjectID)...)
			}

			mu.Lock()
			out = append(out, created...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to evaluate location batch")
		return out, err
	}

	log.WithField("alerts", len(out)).Info("Location batch evaluated")
	return out, nil
}

// AnalyzeSubject явно запускает детектор аномалий по окну. Ошибки возвращаются вызывающему.
func (s *locationService) AnalyzeSubject(ctx context.Context, subjectID string, window time.Duration) ([]models.Anomaly, []models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "location",
		"method":     "AnalyzeSubject",
		"subject_id": subjectID,
	})
	if subjectID == "" {
		return nil, nil, fmt.Errorf("service: %w: subject id is required", models.ErrInvalidArgument)
	}
	if window <= 0 {
		window = s.cfg.AnomalyWindow
	}

	unlock := s.locks.Lock(subjectID)
	defer unlock()

	anomalies, alerts, err := s.analyze(ctx, subjectID, window)
	if err != nil {
		log.WithError(err).Error("Failed to analyze subject")
		return anomalies, alerts, err
	}
	s.markReviewed(subjectID)

	log.WithFields(logrus.Fields{
		"anomalies": len(anomalies),
		"alerts":    len(alerts),
	}).Info("Subject analyzed")
	return anomalies, alerts, nil
}

// SweepAnomalies - периодический проход детектора по активным субъектам.
// Ошибка по одному субъекту не прерывает проход.
func (s *locationService) SweepAnomalies(ctx context.Context) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "location",
		"method":  "SweepAnomalies",
	})

	if evicted := s.pruneReviews(); evicted > 0 {
		log.WithField("evicted", evicted).Debug("Stale anomaly review marks dropped")
	}

	subjects, err := s.repos.Locations.SubjectsSince(ctx, s.now().Add(-s.cfg.AnomalyWindow))
	if err != nil {
		log.WithError(err).Error("Failed to list active subjects")
		return 0, storeError("list active subjects", err)
	}

	var (
		mu      sync.Mutex
		created int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepParallelism)
	for _, subjectID := range subjects {
		g.Go(func() error {
			unlock := s.locks.Lock(subjectID)
			defer unlock()

			alerts := s.reviewAnomalies(gctx, subjectID)
			mu.Lock()
			created += len(alerts)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	log.WithFields(logrus.Fields{
		"subjects": len(subjects),
		"alerts":   created,
	}).Info("Anomaly sweep completed")
	return created, nil
}

// History возвращает отчеты субъекта начиная с since
func (s *locationService) History(ctx context.Context, subjectID string, since time.Time) ([]models.LocationReport, error) {
	reports, err := s.repos.Locations.RecentFor(ctx, subjectID, since)
	if err != nil {
		return nil, storeError("location history", err)
	}
	return reports, nil
}

// evaluateLocked сохраняет отчет и поднимает геофенс-алерты в одной транзакции.
// Вызывающий держит блокировку субъекта.
func (s *locationService) evaluateLocked(ctx context.Context, report *models.LocationReport) ([]models.Alert, error) {
	var created []models.Alert
	err := s.tx.run(ctx, func(ctx context.Context) error {
		created = created[:0]
		report.ReceivedAt = s.now()
		if err := s.repos.Locations.Append(ctx, report); err != nil {
			return storeError("append location", err)
		}

		for _, zone := range s.index.ZonesContaining(report.Point, report.Timestamp) {
			if !zone.Kind.Alerting() {
				continue
			}
			alert, err := s.alerts.RaiseGeofenceAlert(ctx, report.SubjectID, zone, report.Point)
			if errors.Is(err, models.ErrDuplicateSuppressed) {
				continue
			}
			if err != nil {
				return err
			}
			created = append(created, *alert)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncReports()
	return created, nil
}

// reviewAnomalies - анализ аномалий в режиме best-effort: сбой логируется и не влияет
// на уже сохраненный отчет и геофенс-алерты.
func (s *locationService) reviewAnomalies(ctx context.Context, subjectID string) []models.Alert {
	_, alerts, err := s.analyze(ctx, subjectID, s.cfg.AnomalyWindow)
	if err != nil {
		s.metrics.IncAnomalyFailure()
		s.logger.WithFields(logrus.Fields{
			"service":    "location",
			"subject_id": subjectID,
		}).WithError(err).Warn("Anomaly analysis failed")
	}
	return alerts
}

func (s *locationService) analyze(ctx context.Context, subjectID string, window time.Duration) ([]models.Anomaly, []models.Alert, error) {
	reports, err := s.repos.Locations.RecentFor(ctx, subjectID, s.now().Add(-window))
	if err != nil {
		return nil, nil, storeError("recent locations", err)
	}

	anomalies := s.detector.Detect(reports)
	var created []models.Alert
	for _, a := range anomalies {
		alert, err := s.alerts.RaiseAnomalyAlert(ctx, subjectID, a)
		if errors.Is(err, models.ErrDuplicateSuppressed) {
			continue
		}
		if err != nil {
			return anomalies, created, err
		}
		created = append(created, *alert)
	}
	return anomalies, created, nil
}

// anomalyDue сообщает, пора ли запускать детектор для субъекта, и отмечает запуск
func (s *locationService) anomalyDue(subjectID string) bool {
	now := s.now()
	s.anomalyMu.Lock()
	defer s.anomalyMu.Unlock()
	last, ok := s.lastReview[subjectID]
	if ok && now.Sub(last) < s.cfg.AnomalyInterval {
		return false
	}
	s.lastReview[subjectID] = now
	return true
}

// pruneReviews удаляет отметки старше AnomalyInterval: для таких субъектов анализ и так разрешен
func (s *locationService) pruneReviews() int {
	cutoff := s.now().Add(-s.cfg.AnomalyInterval)
	s.anomalyMu.Lock()
	defer s.anomalyMu.Unlock()
	evicted := 0
	for subjectID, last := range s.lastReview {
		if !last.After(cutoff) {
			delete(s.lastReview, subjectID)
			evicted++
		}
	}
	return evicted
}

func (s *locationService) markReviewed(subjectID string) {
	s.anomalyMu.Lock()
	s.lastReview[subjectID] = s.now()
	s.anomalyMu.Unlock()
}

// normalize проверяет отчет и заполняет значения по умолчанию
func (s *locationService) normalize(report *models.LocationReport) error {
	if report.SubjectID == "" {
		return fmt.Errorf("service: %w: subject id is required", models.ErrInvalidArgument)
	}
	if err := report.Point.Validate(); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	switch report.Source {
	case "":
		report.Source = models.SourceGPS
	case models.SourceGPS, models.SourceIoT, models.SourceManual:
	default:
		return fmt.Errorf("service: %w: unknown source %q", models.ErrInvalidArgument, report.Source)
	}
	if report.Timestamp.IsZero() {
		report.Timestamp = s.now()
	}
	report.Timestamp = report.Timestamp.UTC()
	return nil
}
