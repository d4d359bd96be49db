package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/webhook"
	"github.com/sirupsen/logrus"
)

const efirSuffixLen = 5

// RaisePanic создает ЧС и критический алерт одной транзакцией. Дедупликации нет:
// каждое нажатие кнопки - новая ЧС.
func (s *alertService) RaisePanic(ctx context.Context, subjectID string, point models.Point, kind models.EmergencyKind) (*models.Emergency, *models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "alert",
		"method":     "RaisePanic",
		"subject_id": subjectID,
		"kind":       kind,
	})
	log.Info("Panic button pressed")

	if kind == "" {
		kind = models.EmergencyPanic
	}
	if !kind.Valid() || kind == models.EmergencySOS {
		return nil, nil, fmt.Errorf("service: %w: unsupported emergency kind %q", models.ErrInvalidArgument, kind)
	}
	if subjectID == "" {
		return nil, nil, fmt.Errorf("service: %w: subject id is required", models.ErrInvalidArgument)
	}
	if err := point.Validate(); err != nil {
		return nil, nil, fmt.Errorf("service: %w", err)
	}

	emergency := s.newEmergency(ctx, subjectID, point, kind)
	alert := &models.Alert{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Cause:       models.CausePanic,
		CauseKey:    emergency.ID.String(),
		Severity:    models.SeverityCritical,
		Point:       point,
		Description: panicDescription(kind),
		Status:      models.AlertActive,
		CreatedAt:   emergency.CreatedAt,
		Metadata: map[string]string{
			"emergency_id":   emergency.ID.String(),
			"emergency_kind": string(kind),
		},
	}

	err := s.tx.run(ctx, func(ctx context.Context) error {
		if err := s.repos.Emergencies.Create(ctx, emergency); err != nil {
			return storeError("create emergency", err)
		}
		if err := s.repos.Alerts.Create(ctx, alert); err != nil {
			return storeError("create panic alert", err)
		}
		s.announceEmergency(ctx, webhook.EventEmergencyCreated, *emergency)
		s.announceAlert(ctx, webhook.EventAlertRaised, *alert)
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to record panic")
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{
		"emergency_id": emergency.ID,
		"alert_id":     alert.ID,
	}).Info("Emergency created")
	return emergency, alert, nil
}

// RaiseSOS обрабатывает SOS с IoT-устройства: отмечает устройство, создает ЧС и алерт одной транзакцией.
// Пустой subjectID берется из привязки устройства.
func (s *alertService) RaiseSOS(ctx context.Context, deviceID, subjectID string, point models.Point, health *models.HealthMetrics) (*models.Emergency, *models.Alert, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "alert",
		"method":    "RaiseSOS",
		"device_id": deviceID,
	})
	log.Info("SOS signal received")

	if deviceID == "" {
		return nil, nil, fmt.Errorf("service: %w: device id is required", models.ErrInvalidArgument)
	}
	if err := point.Validate(); err != nil {
		return nil, nil, fmt.Errorf("service: %w", err)
	}

	device, err := s.repos.Devices.GetByDeviceID(ctx, deviceID)
	if err != nil {
		log.WithError(err).Warn("SOS from unknown device")
		return nil, nil, storeError("get device", err)
	}
	switch {
	case subjectID == "":
		subjectID = device.SubjectID
	case device.SubjectID != "" && device.SubjectID != subjectID:
		return nil, nil, fmt.Errorf("service: %w: device %s is bound to another subject", models.ErrInvalidArgument, deviceID)
	}
	if subjectID == "" {
		return nil, nil, fmt.Errorf("service: %w: device %s has no subject", models.ErrInvalidArgument, deviceID)
	}

	emergency := s.newEmergency(ctx, subjectID, point, models.EmergencySOS)
	emergency.DeviceID = deviceID

	metadata := map[string]string{
		"emergency_id": emergency.ID.String(),
		"device_id":    deviceID,
	}
	if health != nil && health.HeartRate != nil {
		metadata["heart_rate"] = strconv.Itoa(*health.HeartRate)
	}
	alert := &models.Alert{
		ID:          uuid.New(),
		SubjectID:   subjectID,
		Cause:       models.CauseSOS,
		CauseKey:    deviceID,
		Severity:    models.SeverityCritical,
		Point:       point,
		Description: "SOS signal received from IoT device",
		Status:      models.AlertActive,
		CreatedAt:   emergency.CreatedAt,
		Metadata:    metadata,
	}

	err = s.tx.run(ctx, func(ctx context.Context) error {
		if err := s.repos.Devices.MarkSOS(ctx, deviceID, point, health, emergency.CreatedAt); err != nil {
			return storeError("mark device sos", err)
		}
		if err := s.repos.Emergencies.Create(ctx, emergency); err != nil {
			return storeError("create emergency", err)
		}
		if err := s.repos.Alerts.Create(ctx, alert); err != nil {
			return storeError("create sos alert", err)
		}
		s.announceEmergency(ctx, webhook.EventEmergencyCreated, *emergency)
		s.announceAlert(ctx, webhook.EventAlertRaised, *alert)
		return nil
	})
	if err != nil {
		log.WithError(err).Error("Failed to record SOS")
		return nil, nil, err
	}

	log.WithFields(logrus.Fields{
		"emergency_id": emergency.ID,
		"subject_id":   subjectID,
	}).Info("SOS emergency created")
	return emergency, alert, nil
}

// Dispatch переводит ЧС active -> dispatched
func (s *alertService) Dispatch(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error) {
	return s.transitionEmergency(ctx, "Dispatch", emergencyID, models.EmergencyDispatched)
}

// ResolveEmergency закрывает ЧС
func (s *alertService) ResolveEmergency(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error) {
	return s.transitionEmergency(ctx, "ResolveEmergency", emergencyID, models.EmergencyResolved)
}

func (s *alertService) GetEmergency(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error) {
	emergency, err := s.repos.Emergencies.GetByID(ctx, emergencyID)
	if err != nil {
		return nil, storeError("get emergency", err)
	}
	return emergency, nil
}

// GenerateEFIR присваивает ЧС номер электронного протокола. Повторный вызов возвращает уже выданный номер.
func (s *alertService) GenerateEFIR(ctx context.Context, emergencyID uuid.UUID) (*models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "alert",
		"method":       "GenerateEFIR",
		"emergency_id": emergencyID,
	})

	emergency, err := s.repos.Emergencies.GetByID(ctx, emergencyID)
	if err != nil {
		log.WithError(err).Warn("Attempted to generate E-FIR for a non-existent emergency")
		return nil, storeError("get emergency", err)
	}
	if emergency.EFIRNumber != "" {
		return emergency, nil
	}

	number := fmt.Sprintf("EFIR-%d-%s", s.now().UnixMilli(), efirSuffix())
	if err := s.repos.Emergencies.SetEFIR(ctx, emergencyID, number); err != nil {
		log.WithError(err).Error("Failed to store E-FIR number")
		return nil, storeError("set efir", err)
	}
	emergency.EFIRNumber = number

	log.WithField("efir", number).Info("E-FIR generated")
	return emergency, nil
}

func (s *alertService) transitionEmergency(ctx context.Context, method string, emergencyID uuid.UUID, to models.EmergencyStatus) (*models.Emergency, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "alert",
		"method":       method,
		"emergency_id": emergencyID,
	})

	emergency, err := s.repos.Emergencies.GetByID(ctx, emergencyID)
	if err != nil {
		log.WithError(err).Warn("Attempted to transition a non-existent emergency")
		return nil, storeError("get emergency", err)
	}
	if !emergency.Status.CanTransitionTo(to) {
		log.WithField("status", emergency.Status).Warn("Rejected emergency transition")
		return nil, fmt.Errorf("service: emergency %s %s -> %s: %w", emergencyID, emergency.Status, to, models.ErrInvalidTransition)
	}

	now := s.now()
	if err := s.repos.Emergencies.Transition(ctx, emergencyID, emergency.Status, to, now); err != nil {
		log.WithError(err).Error("Failed to transition emergency in repository")
		return nil, storeError("transition emergency", err)
	}

	emergency.Status = to
	switch to {
	case models.EmergencyDispatched:
		emergency.DispatchedAt = &now
	case models.EmergencyResolved:
		emergency.ResolvedAt = &now
	}

	s.metrics.IncTransition("emergency", string(to))
	s.announceEmergency(ctx, webhook.EventEmergencyUpdated, *emergency)
	log.WithField("status", to).Info("Emergency transitioned")
	return emergency, nil
}

func (s *alertService) newEmergency(ctx context.Context, subjectID string, point models.Point, kind models.EmergencyKind) *models.Emergency {
	emergency := &models.Emergency{
		ID:        uuid.New(),
		SubjectID: subjectID,
		Kind:      kind,
		Point:     point,
		Status:    models.EmergencyActive,
		CreatedAt: s.now(),
	}

	// Поиск ближайшего подразделения не должен мешать созданию ЧС
	if s.repos.Responders == nil {
		return emergency
	}
	responder, err := s.repos.Responders.Nearest(ctx, point, s.cfg.ResponderSearchRadiusKm)
	if err != nil {
		s.logger.WithField("subject_id", subjectID).WithError(err).Warn("Failed to locate nearest responder")
		return emergency
	}
	if responder != nil {
		id := responder.ID
		emergency.NearestResponderID = &id
	}
	return emergency
}

func (s *alertService) announceEmergency(ctx context.Context, t webhook.EventType, emergency models.Emergency) {
	afterCommit(ctx, func() {
		if t == webhook.EventEmergencyCreated {
			s.metrics.IncEmergency(string(emergency.Kind))
		}
		s.publish(ctx, webhook.NewEmergencyEvent(t, emergency, s.now()))
	})
}

func panicDescription(kind models.EmergencyKind) string {
	switch kind {
	case models.EmergencyMedical:
		return "Medical emergency reported"
	case models.EmergencyAccident:
		return "Accident reported"
	}
	return "Panic button activated"
}

func efirSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:efirSuffixLen]
}
