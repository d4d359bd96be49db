package service

import (
	"context"
	"testing"
	"time"

	"github.com/shenikar/tourist_safety/internal/anomaly"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestDeviceService(t *testing.T, env *testEnv) *deviceService {
	service := NewDeviceService(env.repos.Devices, env.alerts, anomaly.NewDetector(anomaly.DefaultConfig()), env.alerts.logger).(*deviceService)
	service.now = func() time.Time { return *env.clock }
	return service
}

func TestHeartbeat_AbnormalHeartRateRaisesAlert(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	service := newTestDeviceService(t, env)
	require.NoError(t, service.RegisterDevice(ctx, &models.Device{DeviceID: "band-1", SubjectID: "t1"}))
	high, low := 134, 42

	// Ожидания: один алерт - одно событие
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	_, err := service.Heartbeat(ctx, "band-1", nil, &models.Point{Longitude: 2, Latitude: 3}, &models.HealthMetrics{HeartRate: &high})
	require.NoError(t, err)
	_, err = service.Heartbeat(ctx, "band-1", nil, nil, &models.HealthMetrics{HeartRate: &low})
	require.NoError(t, err)

	// Проверки
	alerts, err := env.alerts.ListAlerts(ctx, "t1", models.AlertFilter{Cause: models.CauseAnomaly})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, string(models.AnomalyAbnormalHeartRate), alerts[0].CauseKey)
	assert.Equal(t, models.SeverityMedium, alerts[0].Severity)
	assert.Contains(t, alerts[0].Description, "Abnormal heart rate detected")
	assert.Equal(t, models.Point{Longitude: 2, Latitude: 3}, alerts[0].Point)
}

func TestHeartbeat_NormalReadingNoAlert(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	service := newTestDeviceService(t, env)
	require.NoError(t, service.RegisterDevice(ctx, &models.Device{DeviceID: "band-1", SubjectID: "t1"}))
	normal := 72
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	device, err := service.Heartbeat(ctx, "band-1", nil, nil, &models.HealthMetrics{HeartRate: &normal})

	require.NoError(t, err)
	require.NotNil(t, device.Health)
	assert.Equal(t, 72, *device.Health.HeartRate)
	alerts, err := env.alerts.ListAlerts(ctx, "t1", models.AlertFilter{})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
