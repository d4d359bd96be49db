package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/webhook"
	"github.com/sirupsen/logrus"
)

// AlertService определяет контракт машины состояний алертов и ЧС
type AlertService interface {
	// RaiseGeofenceAlert создает алерт входа в зону; при наличии активного алерта по той же зоне
	// возвращает models.ErrDuplicateSuppressed.
	RaiseGeofenceAlert(ctx context.Context, subjectID string, zone models.Zone, point models.Point) (*models.Alert, error)
	RaiseAnomalyAlert(ctx context.Context, subjectID string, anomaly models.Anomaly) (*models.Alert, error)
	RaisePanic(ctx context.Context, subjectID string, point models.Point, kind models.EmergencyKind) (*models.Emergency, *models.Alert, error)
	RaiseSOS(ctx context.Context, deviceID, subjectID string, point models.Point, health *models.HealthMetrics) (*models.Emergency, *models.Alert, error)
	ReportMissing(ctx context.Context, subjectID string, lastKnown models.Point, lastSeen time.Time, description string) (*models.Alert, error)

	Acknowledge(ctx context.Context, alertID uuid.UUID, by string) (*models.Alert, error)
	Resolve(ctx context.Context, alertID uuid.UUID) (*models.Alert, error)
	GetAlert(ctx context.Context, alertID uuid.UUID) (*models.Alert, error)
	ListAlerts(ctx context.Context, subjectID string, filter models.AlertFilter) ([]models.Alert, error)

	Dispatch(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error)
	ResolveEmergency(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error)
	GetEmergency(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error)
	GenerateEFIR(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error)
}

type alertService struct {
	repos     Repositories
	tx        txRunner
	publisher webhook.EventPublisher
	logger    *logrus.Logger
	cfg       *config.Config
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewAlertService(repos Repositories, publisher webhook.EventPublisher, logger *logrus.Logger, cfg *config.Config, m *metrics.Metrics) AlertService {
	return &alertService{
		repos:     repos,
		tx:        txRunner{tx: repos.Tx},
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
		metrics:   m,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// RaiseGeofenceAlert создает алерт о нахождении субъекта в опасной зоне
func (s *alertService) RaiseGeofenceAlert(ctx context.Context, subjectID string, zone models.Zone, point models.Point) (*models.Alert, error) {
	severity := models.SeverityMedium
	if zone.Kind == models.ZoneHighRisk {
		severity = models.SeverityHigh
	}

	metadata := map[string]string{
		"zone_id":    zone.ID.String(),
		"zone_name":  zone.Name,
		"zone_kind":  string(zone.Kind),
		"risk_level": strconv.Itoa(zone.RiskLevel),
	}
	if zone.AlertMessage != "" {
		metadata["alert_message"] = zone.AlertMessage
	}

	alert := &models.Alert{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Cause:       models.CauseGeofence,
		CauseKey:    zone.ID.String(),
		Severity:    severity,
		Point:       point,
		Description: fmt.Sprintf("Entered %s zone: %s", zone.Kind, zone.Name),
		Status:      models.AlertActive,
		CreatedAt:   s.now(),
		Metadata:    metadata,
	}
	return s.raiseDeduplicated(ctx, "RaiseGeofenceAlert", alert, 0)
}

// RaiseAnomalyAlert создает алерт по аномалии. Повторный алерт того же вида не создается,
// пока есть активный или пока не истек период охлаждения после разрешения предыдущего.
func (s *alertService) RaiseAnomalyAlert(ctx context.Context, subjectID string, anomaly models.Anomaly) (*models.Alert, error) {
	alert := &models.Alert{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Cause:       models.CauseAnomaly,
		CauseKey:    string(anomaly.Kind),
		Severity:    anomaly.Severity,
		Point:       anomaly.Point,
		Description: anomaly.Description,
		Status:      models.AlertActive,
		CreatedAt:   s.now(),
		Metadata: map[string]string{
			"anomaly_kind":  string(anomaly.Kind),
			"reports_count": strconv.Itoa(len(anomaly.Reports)),
		},
	}
	return s.raiseDeduplicated(ctx, "RaiseAnomalyAlert", alert, s.cfg.AlertCooldown)
}

// ReportMissing создает алерт о пропаже. Каждое сообщение - отдельный алерт.
func (s *alertService) ReportMissing(ctx context.Context, subjectID string, lastKnown models.Point, lastSeen time.Time, description string) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "ReportMissing",
		"subject_id": subjectID,
	})
	log.Info("Reporting missing subject")

	if subjectID == "" {
		return nil, fmt.Errorf("service: %w: subject id is required", models.ErrInvalidArgument)
	}
	if err := lastKnown.Validate(); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	now := s.now()
	if description == "" {
		description = "Subject reported missing"
	}
	metadata := map[string]string{"reported_at": now.Format(time.RFC3339)}
	if !lastSeen.IsZero() {
		metadata["last_seen"] = lastSeen.UTC().Format(time.RFC3339)
	}

	alert := &models.Alert{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Cause:       models.CauseMissing,
		CauseKey:    uuid.NewString(),
		Severity:    models.SeverityCritical,
		Point:       lastKnown,
		Description: description,
		Status:      models.AlertActive,
		CreatedAt:   now,
		Metadata:    metadata,
	}

	err := s.tx.run(ctx, func(ctx context.Context) error {
		if err := s.repos.Alerts.Create(ctx, alert); err != nil {
			return storeError("create missing alert", err)
		}
		s.announceAlert(ctx, webhook.EventAlertRaised, *alert)
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to create missing alert")
		return nil, err
	}

	log.WithField("alert_id", alert.ID).Info("Missing alert created")
	return alert, nil
}

// Acknowledge переводит алерт active -> acknowledged
func (s *alertService) Acknowledge(ctx context.Context, alertID uuid.UUID, by string) (*models.Alert, error) {
	return s.transitionAlert(ctx, "Acknowledge", alertID, models.AlertAcknowledged, by)
}

// Resolve закрывает алерт. Повторное закрытие - ошибка перехода.
func (s *alertService) Resolve(ctx context.Context, alertID uuid.UUID) (*models.Alert, error) {
	return s.transitionAlert(ctx, "Resolve", alertID, models.AlertResolved, "")
}

func (s *alertService) GetAlert(ctx context.Context, alertID uuid.UUID) (*models.Alert, error) {
	alert, err := s.repos.Alerts.GetByID(ctx, alertID)
	if err != nil {
		return nil, storeError("get alert", err)
	}
	return alert, nil
}

// ListAlerts возвращает алерты субъекта по фильтру, новые первыми
func (s *alertService) ListAlerts(ctx context.Context, subjectID string, filter models.AlertFilter) ([]models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "ListAlerts",
		"subject_id": subjectID,
	})

	alerts, err := s.repos.Alerts.ListForSubject(ctx, subjectID, filter)
	if err != nil {
		log.WithError(err).Error("Failed to list alerts from repository")
		return nil, storeError("list alerts", err)
	}
	log.WithField("count", len(alerts)).Debug("Alerts listed")
	return alerts, nil
}

func (s *alertService) raiseDeduplicated(ctx context.Context, method string, alert *models.Alert, cooldown time.Duration) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     method,
		"subject_id": alert.SubjectID,
		"cause":      alert.Cause,
		"cause_key":  alert.CauseKey,
	})

	err := s.tx.run(ctx, func(ctx context.Context) error {
		existing, err := s.repos.Alerts.FindActive(ctx, alert.SubjectID, alert.Cause, alert.CauseKey)
		if err != nil {
			return storeError("find active alert", err)
		}
		if existing != nil {
			return models.ErrDuplicateSuppressed
		}

		if cooldown > 0 {
			last, err := s.repos.Alerts.LatestResolved(ctx, alert.SubjectID, alert.Cause, alert.CauseKey)
			if err != nil {
				return storeError("find resolved alert", err)
			}
			if last != nil && last.ResolvedAt != nil && alert.CreatedAt.Sub(*last.ResolvedAt) < cooldown {
				return models.ErrDuplicateSuppressed
			}
		}

		if err := s.repos.Alerts.Create(ctx, alert); err != nil {
			if errors.Is(err, models.ErrConflict) {
				return models.ErrDuplicateSuppressed
			}
			return storeError("create alert", err)
		}
		s.announceAlert(ctx, webhook.EventAlertRaised, *alert)
		return nil
	})

	if errors.Is(err, models.ErrDuplicateSuppressed) {
		s.metrics.IncAlertSuppressed(string(alert.Cause))
		log.Debug("Alert suppressed, active alert already exists")
		return nil, fmt.Errorf("service: %w", models.ErrDuplicateSuppressed)
	}
	if err != nil {
		log.WithError(err).Error("Failed to raise alert")
		return nil, err
	}

	log.WithField("alert_id", alert.ID).Info("Alert raised")
	return alert, nil
}

func (s *alertService) transitionAlert(ctx context.Context, method string, alertID uuid.UUID, to models.AlertStatus, by string) (*models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   method,
		"alert_id": alertID,
	})

	alert, err := s.repos.Alerts.GetByID(ctx, alertID)
	if err != nil {
		log.WithError(err).Warn("Attempted to transition a non-existent alert")
		return nil, storeError("get alert", err)
	}
	if !alert.Status.CanTransitionTo(to) {
		log.WithField("status", alert.Status).Warn("Rejected alert transition")
		return nil, fmt.Errorf("service: alert %s %s -> %s: %w", alertID, alert.Status, to, models.ErrInvalidTransition)
	}

	now := s.now()
	if err := s.repos.Alerts.Transition(ctx, alertID, alert.Status, to, now, by); err != nil {
		log.WithError(err).Error("Failed to transition alert in repository")
		return nil, storeError("transition alert", err)
	}

	alert.Status = to
	switch to {
	case models.AlertAcknowledged:
		alert.AcknowledgedAt = &now
		alert.AcknowledgedBy = by
	case models.AlertResolved:
		alert.ResolvedAt = &now
	}

	s.metrics.IncTransition("alert", string(to))
	s.announceAlert(ctx, webhook.EventAlertUpdated, *alert)
	log.WithField("status", to).Info("Alert transitioned")
	return alert, nil
}

// announceAlert публикует событие и сбрасывает кэш оценки после фиксации транзакции
func (s *alertService) announceAlert(ctx context.Context, t webhook.EventType, alert models.Alert) {
	afterCommit(ctx, func() {
		if t == webhook.EventAlertRaised {
			s.metrics.IncAlertRaised(string(alert.Cause), string(alert.Severity))
			s.invalidateScore(ctx, alert.SubjectID)
		}
		s.publish(ctx, webhook.NewAlertEvent(t, alert, s.now()))
	})
}

func (s *alertService) publish(ctx context.Context, event webhook.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.logger.WithFields(logrus.Fields{
			"service":  "alert",
			"event_id": event.ID,
			"type":     event.Type,
		}).WithError(err).Warn("Failed to publish event")
	}
}

func (s *alertService) invalidateScore(ctx context.Context, subjectID string) {
	if s.repos.ScoreCache == nil {
		return
	}
	if err := s.repos.ScoreCache.Invalidate(context.WithoutCancel(ctx), subjectID); err != nil {
		s.logger.WithField("subject_id", subjectID).WithError(err).Warn("Failed to invalidate score cache")
	}
}
