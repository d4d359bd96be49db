package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shenikar/tourist_safety/internal/anomaly"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/sirupsen/logrus"
)

// DeviceService определяет контракт реестра IoT-устройств
type DeviceService interface {
	RegisterDevice(ctx context.Context, device *models.Device) error
	Heartbeat(ctx context.Context, deviceID string, battery *int, point *models.Point, health *models.HealthMetrics) (*models.Device, error)
	GetDevice(ctx context.Context, deviceID string) (*models.Device, error)
}

type deviceService struct {
	store    DeviceStore
	alerts   AlertService
	detector *anomaly.Detector
	logger   *logrus.Logger
	now      func() time.Time
}

func NewDeviceService(store DeviceStore, alerts AlertService, detector *anomaly.Detector, logger *logrus.Logger) DeviceService {
	return &deviceService{
		store:    store,
		alerts:   alerts,
		detector: detector,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// RegisterDevice регистрирует устройство. Повторная регистрация - models.ErrConflict.
func (s *deviceService) RegisterDevice(ctx context.Context, device *models.Device) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "device",
		"method":    "RegisterDevice",
		"device_id": device.DeviceID,
	})

	if device.DeviceID == "" || device.SubjectID == "" {
		return fmt.Errorf("service: %w: device id and subject id are required", models.ErrInvalidArgument)
	}
	if device.Point != nil {
		if err := device.Point.Validate(); err != nil {
			return fmt.Errorf("service: %w", err)
		}
	}
	if device.Kind == "" {
		device.Kind = models.DeviceSmartBand
	}
	device.Status = models.DeviceActive
	device.LastHeartbeat = s.now()

	if err := s.store.Register(ctx, device); err != nil {
		log.WithError(err).Error("Failed to register device")
		return storeError("register device", err)
	}
	log.Info("Device registered successfully")
	return nil
}

// Heartbeat обновляет состояние устройства. Показания здоровья проверяются детектором,
// аномальный пульс поднимает алерт с той же дедупликацией, что и анализ отчетов.
func (s *deviceService) Heartbeat(ctx context.Context, deviceID string, battery *int, point *models.Point, health *models.HealthMetrics) (*models.Device, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":   "device",
		"method":    "Heartbeat",
		"device_id": deviceID,
	})

	if point != nil {
		if err := point.Validate(); err != nil {
			return nil, fmt.Errorf("service: %w", err)
		}
	}
	now := s.now()
	if err := s.store.Heartbeat(ctx, deviceID, now, battery, point, health); err != nil {
		log.WithError(err).Warn("Failed to record heartbeat")
		return nil, storeError("device heartbeat", err)
	}

	device, err := s.store.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, storeError("get device", err)
	}
	log.Debug("Heartbeat recorded")

	if health != nil {
		s.reviewReading(ctx, device, health, now, log)
	}
	return device, nil
}

// reviewReading проверяет показание устройства. Ошибки не прерывают heartbeat.
func (s *deviceService) reviewReading(ctx context.Context, device *models.Device, health *models.HealthMetrics, at time.Time, log *logrus.Entry) {
	if s.detector == nil || s.alerts == nil || device.SubjectID == "" {
		return
	}
	reading := models.LocationReport{
		SubjectID: device.SubjectID,
		Timestamp: at,
		Source:    models.SourceIoT,
		Health:    health,
	}
	if device.Point != nil {
		reading.Point = *device.Point
	}

	found := s.detector.CheckReading(reading)
	if found == nil {
		return
	}
	alert, err := s.alerts.RaiseAnomalyAlert(ctx, device.SubjectID, *found)
	switch {
	case errors.Is(err, models.ErrDuplicateSuppressed):
		log.Debug("Abnormal reading already alerted")
	case err != nil:
		log.WithError(err).Warn("Failed to raise alert for abnormal reading")
	default:
		log.WithField("alert_id", alert.ID).Info("Abnormal device reading alerted")
	}
}

func (s *deviceService) GetDevice(ctx context.Context, deviceID string) (*models.Device, error) {
	device, err := s.store.GetByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, storeError("get device", err)
	}
	return device, nil
}
