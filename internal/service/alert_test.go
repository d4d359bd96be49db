package service

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shenikar/tourist_safety/internal/anomaly"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/metrics"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/repository/memory"
	"github.com/shenikar/tourist_safety/internal/webhook"
	webhook_mocks "github.com/shenikar/tourist_safety/internal/webhook/mocks"
	"github.com/shenikar/tourist_safety/internal/zoneindex"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	store     *memory.Store
	repos     Repositories
	index     *zoneindex.Index
	alerts    *alertService
	locations *locationService
	publisher *webhook_mocks.MockEventPublisher
	clock     *time.Time
}

// newTestEnv - вспомогательная функция: сервисы поверх хранилища в памяти и мок публикатора.
func newTestEnv(t *testing.T) *testEnv {
	ctrl := gomock.NewController(t)
	publisher := webhook_mocks.NewMockEventPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		AnomalyWindow:           7 * 24 * time.Hour,
		AnomalyInterval:         0,
		AlertCooldown:           24 * time.Hour,
		ScoreWindow:             7 * 24 * time.Hour,
		ResponderSearchRadiusKm: 5,
	}

	store := memory.New()
	repos := Repositories{
		Locations:   store.Locations(),
		Alerts:      store.Alerts(),
		Emergencies: store.Emergencies(),
		Zones:       store.Zones(),
		Devices:     store.Devices(),
		Responders:  store.Responders(),
		Scores:      store.Scores(),
		Tx:          store,
	}
	m := metrics.New(prometheus.NewRegistry())
	index := zoneindex.New(time.UTC)

	clock := testNow
	now := func() time.Time { return clock }

	alerts := NewAlertService(repos, publisher, logger, cfg, m).(*alertService)
	alerts.now = now
	detector := anomaly.NewDetector(anomaly.DefaultConfig())
	locations := NewLocationService(repos, alerts, index, detector, logger, cfg, m).(*locationService)
	locations.now = now

	return &testEnv{
		store:     store,
		repos:     repos,
		index:     index,
		alerts:    alerts,
		locations: locations,
		publisher: publisher,
		clock:     &clock,
	}
}

func square(minLon, minLat, size float64) []models.Point {
	return []models.Point{
		{Longitude: minLon, Latitude: minLat},
		{Longitude: minLon + size, Latitude: minLat},
		{Longitude: minLon + size, Latitude: minLat + size},
		{Longitude: minLon, Latitude: minLat + size},
		{Longitude: minLon, Latitude: minLat},
	}
}

func restrictedZone() models.Zone {
	return models.Zone{ID: uuid.New(), Name: "Border strip", Kind: models.ZoneRestricted, Polygon: square(0, 0, 1), RiskLevel: 3}
}

func TestRaiseGeofenceAlert_ConcurrentCallsCreateOne(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	zone := restrictedZone()
	point := models.Point{Longitude: 0.5, Latitude: 0.5}

	// Ожидания
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			alert, err := env.alerts.RaiseGeofenceAlert(ctx, "t1", zone, point)
			if err == nil && alert != nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, models.ErrDuplicateSuppressed)
		}()
	}
	wg.Wait()

	// Проверки
	assert.Equal(t, 1, created)
	active, err := env.alerts.ListAlerts(ctx, "t1", models.AlertFilter{Status: models.AlertActive})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestRaiseGeofenceAlert_ReArmAfterResolve(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	zone := restrictedZone()
	point := models.Point{Longitude: 0.5, Latitude: 0.5}
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Действие
	first, err := env.alerts.RaiseGeofenceAlert(ctx, "t1", zone, point)
	require.NoError(t, err)
	_, err = env.alerts.Resolve(ctx, first.ID)
	require.NoError(t, err)
	second, err := env.alerts.RaiseGeofenceAlert(ctx, "t1", zone, point)

	// Проверки
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.SeverityMedium, second.Severity)
	assert.Equal(t, zone.ID.String(), second.CauseKey)
}

func TestRaisePanic_TwoPanicsTwoEmergencies(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	point := models.Point{Longitude: 37.61, Latitude: 55.75}

	// Ожидания: на каждую панику - событие ЧС и событие алерта
	var (
		mu     sync.Mutex
		events []webhook.EventType
	)
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, event webhook.Event) {
			mu.Lock()
			events = append(events, event.Type)
			mu.Unlock()
		}).Return(nil).Times(4)

	// Действие
	e1, a1, err := env.alerts.RaisePanic(ctx, "t1", point, "")
	require.NoError(t, err)
	e2, a2, err := env.alerts.RaisePanic(ctx, "t1", point, models.EmergencyMedical)
	require.NoError(t, err)

	// Проверки
	assert.NotEqual(t, e1.ID, e2.ID)
	assert.Equal(t, models.EmergencyPanic, e1.Kind)
	assert.Equal(t, models.EmergencyMedical, e2.Kind)
	assert.Equal(t, models.SeverityCritical, a1.Severity)
	assert.Equal(t, e1.ID.String(), a1.CauseKey)
	assert.Equal(t, e2.ID.String(), a2.CauseKey)
	assert.ElementsMatch(t, []webhook.EventType{
		webhook.EventEmergencyCreated, webhook.EventAlertRaised,
		webhook.EventEmergencyCreated, webhook.EventAlertRaised,
	}, events)
}

func TestRaisePanic_RejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, _, err := env.alerts.RaisePanic(ctx, "t1", models.Point{Longitude: 200, Latitude: 0}, "")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, _, err = env.alerts.RaisePanic(ctx, "t1", models.Point{}, models.EmergencySOS)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, _, err = env.alerts.RaisePanic(ctx, "", models.Point{}, "")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestRaisePanic_AttachesNearestResponder(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	responder := models.Responder{ID: uuid.New(), Name: "Central station", Point: models.Point{Longitude: 37.62, Latitude: 55.75}, Active: true}
	env.store.AddResponder(responder)
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Действие
	emergency, _, err := env.alerts.RaisePanic(ctx, "t1", models.Point{Longitude: 37.61, Latitude: 55.75}, models.EmergencyAccident)

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, emergency.NearestResponderID)
	assert.Equal(t, responder.ID, *emergency.NearestResponderID)
}

func TestRaisePanic_StoreFailureWritesNothing(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.store.FailOn("alerts.create", errors.New("connection reset"))

	// Ожидания: событий нет
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	emergency, alert, err := env.alerts.RaisePanic(ctx, "t1", models.Point{Longitude: 1, Latitude: 1}, "")

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Nil(t, emergency)
	assert.Nil(t, alert)
}

func TestRaiseSOS(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	device := &models.Device{DeviceID: "band-1", SubjectID: "t1", Kind: models.DeviceSmartBand, Status: models.DeviceActive}
	require.NoError(t, env.store.Devices().Register(ctx, device))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	heartRate := 140
	point := models.Point{Longitude: 77.2, Latitude: 28.6}

	// Действие
	emergency, alert, err := env.alerts.RaiseSOS(ctx, "band-1", "", point, &models.HealthMetrics{HeartRate: &heartRate})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, "t1", emergency.SubjectID)
	assert.Equal(t, models.EmergencySOS, emergency.Kind)
	assert.Equal(t, "band-1", emergency.DeviceID)
	assert.Equal(t, models.CauseSOS, alert.Cause)
	assert.Equal(t, "140", alert.Metadata["heart_rate"])

	stored, err := env.store.Devices().GetByDeviceID(ctx, "band-1")
	require.NoError(t, err)
	assert.Equal(t, models.DeviceSOS, stored.Status)
	assert.Equal(t, point, *stored.Point)
}

func TestRaiseSOS_UnknownDevice(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.alerts.RaiseSOS(context.Background(), "ghost", "t1", models.Point{}, nil)

	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRaiseSOS_RollbackRestoresDevice(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.Devices().Register(ctx, &models.Device{DeviceID: "band-1", SubjectID: "t1", Status: models.DeviceActive}))
	env.store.FailOn("alerts.create", errors.New("connection reset"))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	_, _, err := env.alerts.RaiseSOS(ctx, "band-1", "t1", models.Point{Longitude: 1, Latitude: 1}, nil)

	// Проверки
	require.Error(t, err)
	stored, err := env.store.Devices().GetByDeviceID(ctx, "band-1")
	require.NoError(t, err)
	assert.Equal(t, models.DeviceActive, stored.Status)
	assert.Nil(t, stored.Point)
}

func TestAlertTransitions(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	alert, err := env.alerts.ReportMissing(ctx, "t1", models.Point{Longitude: 1, Latitude: 1}, testNow.Add(-time.Hour), "")
	require.NoError(t, err)

	// Действие и проверки
	acked, err := env.alerts.Acknowledge(ctx, alert.ID, "officer-7")
	require.NoError(t, err)
	assert.Equal(t, models.AlertAcknowledged, acked.Status)
	assert.Equal(t, "officer-7", acked.AcknowledgedBy)
	require.NotNil(t, acked.AcknowledgedAt)

	_, err = env.alerts.Acknowledge(ctx, alert.ID, "officer-8")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	resolved, err := env.alerts.Resolve(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	*env.clock = testNow.Add(time.Hour)
	_, err = env.alerts.Resolve(ctx, alert.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	stored, err := env.alerts.GetAlert(ctx, alert.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertResolved, stored.Status)
	require.NotNil(t, stored.ResolvedAt)
	assert.Equal(t, *resolved.ResolvedAt, *stored.ResolvedAt)
	assert.Equal(t, "officer-7", stored.AcknowledgedBy)

	_, err = env.alerts.Resolve(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolve_ActiveDirectly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	alert, err := env.alerts.ReportMissing(ctx, "t1", models.Point{}, time.Time{}, "lost near lake")
	require.NoError(t, err)

	resolved, err := env.alerts.Resolve(ctx, alert.ID)

	require.NoError(t, err)
	assert.Equal(t, models.AlertResolved, resolved.Status)
	assert.Nil(t, resolved.AcknowledgedAt)
}

func TestReportMissing_NotDeduplicated(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	// Действие
	a1, err := env.alerts.ReportMissing(ctx, "t1", models.Point{Longitude: 1, Latitude: 1}, time.Time{}, "")
	require.NoError(t, err)
	a2, err := env.alerts.ReportMissing(ctx, "t1", models.Point{Longitude: 1, Latitude: 1}, time.Time{}, "")
	require.NoError(t, err)

	// Проверки
	assert.NotEqual(t, a1.ID, a2.ID)
	assert.NotEqual(t, a1.CauseKey, a2.CauseKey)
	assert.Equal(t, models.SeverityCritical, a1.Severity)
	assert.Equal(t, "Subject reported missing", a1.Description)
}

func TestRaiseAnomalyAlert_Cooldown(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	found := models.Anomaly{Kind: models.AnomalyAbnormalHeartRate, Severity: models.SeverityHigh, Description: "Heart rate 150 bpm"}

	first, err := env.alerts.RaiseAnomalyAlert(ctx, "t1", found)
	require.NoError(t, err)

	// Действие и проверки: пока активен - подавляется
	_, err = env.alerts.RaiseAnomalyAlert(ctx, "t1", found)
	assert.ErrorIs(t, err, models.ErrDuplicateSuppressed)

	_, err = env.alerts.Resolve(ctx, first.ID)
	require.NoError(t, err)

	// в пределах охлаждения - подавляется
	*env.clock = testNow.Add(time.Hour)
	_, err = env.alerts.RaiseAnomalyAlert(ctx, "t1", found)
	assert.ErrorIs(t, err, models.ErrDuplicateSuppressed)

	// после охлаждения - новый алерт
	*env.clock = testNow.Add(25 * time.Hour)
	second, err := env.alerts.RaiseAnomalyAlert(ctx, "t1", found)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestEmergencyTransitions(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	e1, _, err := env.alerts.RaisePanic(ctx, "t1", models.Point{}, "")
	require.NoError(t, err)
	e2, _, err := env.alerts.RaisePanic(ctx, "t2", models.Point{}, "")
	require.NoError(t, err)

	// Действие и проверки
	dispatched, err := env.alerts.Dispatch(ctx, e1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyDispatched, dispatched.Status)
	require.NotNil(t, dispatched.DispatchedAt)

	_, err = env.alerts.Dispatch(ctx, e1.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	resolved, err := env.alerts.ResolveEmergency(ctx, e1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EmergencyResolved, resolved.Status)

	_, err = env.alerts.ResolveEmergency(ctx, e1.ID)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	falseAlarm, err := env.alerts.ResolveEmergency(ctx, e2.ID)
	require.NoError(t, err)
	assert.Nil(t, falseAlarm.DispatchedAt)

	_, err = env.alerts.Dispatch(ctx, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGenerateEFIR(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	emergency, _, err := env.alerts.RaisePanic(ctx, "t1", models.Point{}, "")
	require.NoError(t, err)

	// Действие
	first, err := env.alerts.GenerateEFIR(ctx, emergency.ID)
	require.NoError(t, err)
	again, err := env.alerts.GenerateEFIR(ctx, emergency.ID)
	require.NoError(t, err)

	// Проверки
	assert.Regexp(t, regexp.MustCompile(`^EFIR-1714996800000-[A-Z0-9]{5}$`), first.EFIRNumber)
	assert.Equal(t, first.EFIRNumber, again.EFIRNumber)
}

func TestPublishFailureDoesNotFailRaise(t *testing.T) {
	env := newTestEnv(t)
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("redis down")).Times(1)

	alert, err := env.alerts.ReportMissing(context.Background(), "t1", models.Point{}, time.Time{}, "")

	require.NoError(t, err)
	assert.NotNil(t, alert)
}
