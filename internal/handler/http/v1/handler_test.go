package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var apiKey = map[string]string{"X-API-Key": "test-api-key"}

type serviceMocks struct {
	alerts    *mocks.MockAlertService
	locations *mocks.MockLocationService
	scores    *mocks.MockScoreService
	zones     *mocks.MockZoneService
	devices   *mocks.MockDeviceService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*serviceMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &serviceMocks{
		alerts:    mocks.NewMockAlertService(ctrl),
		locations: mocks.NewMockLocationService(ctrl),
		scores:    mocks.NewMockScoreService(ctrl),
		zones:     mocks.NewMockZoneService(ctrl),
		devices:   mocks.NewMockDeviceService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{APIKeys: []string{"test-api-key"}}

	handler := NewHandler(Services{
		Alerts:    m.alerts,
		Locations: m.locations,
		Scores:    m.scores,
		Zones:     m.zones,
		Devices:   m.devices,
	}, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v any) io.Reader {
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func TestHealthCheck_NoKeyRequired(t *testing.T) {
	_, router := newTestHandler(t)

	w := makeRequest(router, "GET", "/api/v1/system/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuth_MissingAndInvalidKey(t *testing.T) {
	m, router := newTestHandler(t)
	m.zones.EXPECT().ListZones(gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/zones", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "API key required")

	w = makeRequest(router, "GET", "/api/v1/zones", nil, map[string]string{"X-API-Key": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid API key")
}

func TestAuth_BearerToken(t *testing.T) {
	m, router := newTestHandler(t)
	m.zones.EXPECT().ListZones(gomock.Any()).Return(nil, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/zones", nil, map[string]string{"Authorization": "Bearer test-api-key"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestSubmitLocation_Success(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	alertID := uuid.New()
	heartRate := 72
	reqBody := LocationReportRequest{
		SubjectID: "t1",
		Latitude:  55.75,
		Longitude: 37.61,
		Health:    &HealthMetricsDTO{HeartRate: &heartRate},
	}

	// Ожидания
	m.locations.EXPECT().
		EvaluateLocation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.LocationReport) ([]models.Alert, error) {
			assert.Equal(t, "t1", r.SubjectID)
			assert.Equal(t, models.Point{Longitude: 37.61, Latitude: 55.75}, r.Point)
			assert.True(t, r.Timestamp.IsZero())
			require.NotNil(t, r.Health)
			assert.Equal(t, 72, *r.Health.HeartRate)
			return []models.Alert{{ID: alertID, SubjectID: "t1", Cause: models.CauseGeofence, Status: models.AlertActive}}, nil
		}).Times(1)

	// Действие
	w := makeRequest(router, "POST", "/api/v1/locations", jsonBody(t, reqBody), apiKey)

	// Проверки
	require.Equal(t, http.StatusOK, w.Code)
	var resp EvaluateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Alerts, 1)
	assert.Equal(t, alertID, resp.Alerts[0].ID)
	assert.Equal(t, "geofence", resp.Alerts[0].Cause)
}

func TestSubmitLocation_NoAlertsIsEmptyArray(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().EvaluateLocation(gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/locations", jsonBody(t, LocationReportRequest{SubjectID: "t1"}), apiKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"alerts":[]}`, w.Body.String())
}

func TestSubmitLocation_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().EvaluateLocation(gomock.Any(), gomock.Any()).Times(0) // Сервис не должен вызываться

	w := makeRequest(router, "POST", "/api/v1/locations", bytes.NewBufferString(`{"subject_id": "t1"`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestSubmitLocation_ValidationError(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().EvaluateLocation(gomock.Any(), gomock.Any()).Times(0)

	reqBody := LocationReportRequest{SubjectID: "t1", Latitude: 95, Longitude: 10}
	w := makeRequest(router, "POST", "/api/v1/locations", jsonBody(t, reqBody), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Error:Field validation for 'Latitude' failed on the 'latitude' tag")
}

func TestSubmitLocation_StoreUnavailable(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().
		EvaluateLocation(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("service: append location: %w: %w", models.ErrStoreUnavailable, errors.New("dial tcp"))).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/locations", jsonBody(t, LocationReportRequest{SubjectID: "t1"}), apiKey)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "dial tcp")
}

func TestSubmitLocationBatch(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	ts := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)
	reqBody := LocationBatchRequest{Reports: []LocationReportRequest{
		{SubjectID: "t1", Latitude: 1, Longitude: 1, Timestamp: &ts},
		{SubjectID: "t2", Latitude: 2, Longitude: 2, Source: "iot"},
	}}

	// Ожидания
	m.locations.EXPECT().
		EvaluateBatch(gomock.Any(), gomock.Len(2)).
		DoAndReturn(func(_ context.Context, reports []models.LocationReport) ([]models.Alert, error) {
			assert.Equal(t, ts, reports[0].Timestamp)
			assert.Equal(t, models.SourceIoT, reports[1].Source)
			return nil, nil
		}).Times(1)

	// Действие
	w := makeRequest(router, "POST", "/api/v1/locations/batch", jsonBody(t, reqBody), apiKey)

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitLocationBatch_Empty(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().EvaluateBatch(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/locations/batch", bytes.NewBufferString(`{"reports":[]}`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationHistory_BadSince(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().History(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/subjects/t1/locations?since=yesterday", nil, apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLocationHistory(t *testing.T) {
	m, router := newTestHandler(t)
	since := time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)
	m.locations.EXPECT().History(gomock.Any(), "t1", since).Return([]models.LocationReport{
		{ID: 7, SubjectID: "t1", Point: models.Point{Longitude: 3, Latitude: 4}, Source: models.SourceGPS},
	}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/subjects/t1/locations?since=2024-05-06T00:00:00Z", nil, apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []LocationReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(7), resp[0].ID)
	assert.Equal(t, 4.0, resp[0].Latitude)
}

func TestAnalyzeSubject(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().
		AnalyzeSubject(gomock.Any(), "t1", 48*time.Hour).
		Return([]models.Anomaly{{Kind: models.AnomalyAbnormalHeartRate, Severity: models.SeverityHigh, Reports: make([]models.LocationReport, 3)}}, nil, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/subjects/t1/anomalies/analyze?window=48h", nil, apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	var resp AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Anomalies, 1)
	assert.Equal(t, "abnormal_heart_rate", resp.Anomalies[0].Kind)
	assert.Equal(t, 3, resp.Anomalies[0].ReportsCount)
	assert.Empty(t, resp.Alerts)
}

func TestAnalyzeSubject_BadWindow(t *testing.T) {
	m, router := newTestHandler(t)
	m.locations.EXPECT().AnalyzeSubject(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	for _, window := range []string{"soon", "-1h", "10000h"} {
		w := makeRequest(router, "POST", "/api/v1/subjects/t1/anomalies/analyze?window="+window, nil, apiKey)
		assert.Equal(t, http.StatusBadRequest, w.Code, window)
	}
}

func TestSafetyScore(t *testing.T) {
	m, router := newTestHandler(t)
	m.scores.EXPECT().ComputeSafetyScore(gomock.Any(), "t1").Return(&models.SafetyScore{
		SubjectID:    "t1",
		CurrentScore: 65,
		Factors:      models.ScoreFactors{LocationRisk: 10, TimeRisk: 5, BehaviorRisk: 20},
		AlertsCount:  3,
	}, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/subjects/t1/safety-score", nil, apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	var resp SafetyScoreResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 65, resp.CurrentScore)
	assert.Equal(t, 20, resp.Factors.BehaviorRisk)
	assert.NotNil(t, resp.History)
}

func TestListAlerts_Filter(t *testing.T) {
	m, router := newTestHandler(t)
	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	m.alerts.EXPECT().
		ListAlerts(gomock.Any(), "t1", models.AlertFilter{Since: since, Cause: models.CausePanic, Status: models.AlertActive}).
		Return(nil, nil).Times(1)

	w := makeRequest(router, "GET", "/api/v1/subjects/t1/alerts?since=2024-05-01T00:00:00Z&cause=panic&status=active", nil, apiKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetAlert_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)
	m.alerts.EXPECT().GetAlert(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/v1/alerts/not-a-uuid", nil, apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid alert ID")
}

func TestGetAlert_NotFound(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.alerts.EXPECT().GetAlert(gomock.Any(), id).Return(nil, fmt.Errorf("service: %w", models.ErrNotFound)).Times(1)

	w := makeRequest(router, "GET", "/api/v1/alerts/"+id.String(), nil, apiKey)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAcknowledgeAlert(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	id := uuid.New()
	ackAt := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)

	// Ожидания
	m.alerts.EXPECT().Acknowledge(gomock.Any(), id, "officer-7").Return(&models.Alert{
		ID:             id,
		Status:         models.AlertAcknowledged,
		AcknowledgedBy: "officer-7",
		AcknowledgedAt: &ackAt,
	}, nil).Times(1)

	// Действие
	w := makeRequest(router, "POST", "/api/v1/alerts/"+id.String()+"/acknowledge", jsonBody(t, AcknowledgeRequest{AcknowledgedBy: "officer-7"}), apiKey)

	// Проверки
	require.Equal(t, http.StatusOK, w.Code)
	var resp AlertResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "acknowledged", resp.Status)
	assert.Equal(t, ackAt, *resp.AcknowledgedAt)
}

func TestAcknowledgeAlert_MissingActor(t *testing.T) {
	m, router := newTestHandler(t)
	m.alerts.EXPECT().Acknowledge(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/alerts/"+uuid.NewString()+"/acknowledge", bytes.NewBufferString(`{}`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestResolveAlert_InvalidTransition(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.alerts.EXPECT().Resolve(gomock.Any(), id).
		Return(nil, fmt.Errorf("service: alert %s: %w", id, models.ErrInvalidTransition)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/alerts/"+id.String()+"/resolve", nil, apiKey)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReportMissing(t *testing.T) {
	m, router := newTestHandler(t)
	lastSeen := time.Date(2024, 5, 6, 9, 30, 0, 0, time.UTC)
	m.alerts.EXPECT().
		ReportMissing(gomock.Any(), "t1", models.Point{Longitude: 37.6, Latitude: 55.7}, lastSeen, "left the hostel").
		Return(&models.Alert{ID: uuid.New(), Cause: models.CauseMissing, Severity: models.SeverityCritical}, nil).
		Times(1)

	reqBody := MissingPersonRequest{SubjectID: "t1", Latitude: 55.7, Longitude: 37.6, LastSeen: &lastSeen, Description: "left the hostel"}
	w := makeRequest(router, "POST", "/api/v1/alerts/missing", jsonBody(t, reqBody), apiKey)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"severity":"critical"`)
}

func TestRaisePanic(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	emergencyID := uuid.New()
	alertID := uuid.New()

	// Ожидания
	m.alerts.EXPECT().
		RaisePanic(gomock.Any(), "t1", models.Point{Longitude: 10, Latitude: 20}, models.EmergencyMedical).
		Return(
			&models.Emergency{ID: emergencyID, Kind: models.EmergencyMedical, Status: models.EmergencyActive},
			&models.Alert{ID: alertID, Cause: models.CausePanic, CauseKey: emergencyID.String()},
			nil,
		).Times(1)

	// Действие
	w := makeRequest(router, "POST", "/api/v1/emergencies/panic", jsonBody(t, PanicRequest{SubjectID: "t1", Latitude: 20, Longitude: 10, Kind: "medical"}), apiKey)

	// Проверки
	require.Equal(t, http.StatusCreated, w.Code)
	var resp EmergencyCreatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, emergencyID, resp.Emergency.ID)
	assert.Equal(t, alertID, resp.Alert.ID)
	assert.Equal(t, "medical", resp.Emergency.Kind)
}

func TestRaisePanic_SOSKindRejected(t *testing.T) {
	m, router := newTestHandler(t)
	m.alerts.EXPECT().RaisePanic(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/emergencies/panic", jsonBody(t, PanicRequest{SubjectID: "t1", Kind: "sos"}), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRaiseSOS_UnknownDevice(t *testing.T) {
	m, router := newTestHandler(t)
	m.alerts.EXPECT().
		RaiseSOS(gomock.Any(), "band-9", "", gomock.Any(), gomock.Nil()).
		Return(nil, nil, fmt.Errorf("service: %w", models.ErrNotFound)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/devices/band-9/sos", jsonBody(t, SOSRequest{Latitude: 1, Longitude: 1}), apiKey)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEmergencyActions(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	dispatchedAt := time.Date(2024, 5, 6, 12, 5, 0, 0, time.UTC)

	m.alerts.EXPECT().Dispatch(gomock.Any(), id).
		Return(&models.Emergency{ID: id, Status: models.EmergencyDispatched, DispatchedAt: &dispatchedAt}, nil).Times(1)
	m.alerts.EXPECT().GenerateEFIR(gomock.Any(), id).
		Return(&models.Emergency{ID: id, EFIRNumber: "EFIR-1714996800000-ABCDE"}, nil).Times(1)
	m.alerts.EXPECT().ResolveEmergency(gomock.Any(), id).
		Return(nil, fmt.Errorf("service: %w", models.ErrInvalidTransition)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/emergencies/"+id.String()+"/dispatch", nil, apiKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"dispatched"`)

	w = makeRequest(router, "POST", "/api/v1/emergencies/"+id.String()+"/efir", nil, apiKey)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "EFIR-1714996800000-ABCDE")

	w = makeRequest(router, "POST", "/api/v1/emergencies/"+id.String()+"/resolve", nil, apiKey)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateZone(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	zoneID := uuid.New()
	reqBody := ZoneRequest{
		Name:      "Cliffs",
		Kind:      "high_risk",
		RiskLevel: 8,
		Polygon: []PointDTO{
			{Latitude: 0, Longitude: 0},
			{Latitude: 0, Longitude: 1},
			{Latitude: 1, Longitude: 1},
			{Latitude: 0, Longitude: 0},
		},
		ActiveHours: &ActiveHoursDTO{Start: "22:00", End: "06:00", Timezone: "Asia/Kolkata"},
	}

	// Ожидания
	m.zones.EXPECT().
		UpsertZone(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, z *models.Zone) error {
			assert.Equal(t, models.ZoneHighRisk, z.Kind)
			assert.Len(t, z.Polygon, 4)
			require.NotNil(t, z.ActiveHours)
			assert.Equal(t, "22:00", z.ActiveHours.Start)
			z.ID = zoneID
			return nil
		}).Times(1)

	// Действие
	w := makeRequest(router, "POST", "/api/v1/zones", jsonBody(t, reqBody), apiKey)

	// Проверки
	require.Equal(t, http.StatusCreated, w.Code)
	var resp ZoneResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, zoneID, resp.ID)
	assert.Equal(t, "Asia/Kolkata", resp.ActiveHours.Timezone)
}

func TestCreateZone_InvalidGeometry(t *testing.T) {
	m, router := newTestHandler(t)
	m.zones.EXPECT().UpsertZone(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: invalid zone: %w", models.ErrInvalidGeometry)).Times(1)

	reqBody := ZoneRequest{
		Name: "Flat",
		Kind: "restricted",
		Polygon: []PointDTO{
			{Latitude: 0, Longitude: 0},
			{Latitude: 0, Longitude: 1},
			{Latitude: 0, Longitude: 2},
			{Latitude: 0, Longitude: 0},
		},
	}
	w := makeRequest(router, "POST", "/api/v1/zones", jsonBody(t, reqBody), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid geometry")
}

func TestCreateZone_UnknownKind(t *testing.T) {
	m, router := newTestHandler(t)
	m.zones.EXPECT().UpsertZone(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/zones", bytes.NewBufferString(`{"name":"X1","kind":"lava","polygon":[]}`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateZone_RiskLevelOutOfRange(t *testing.T) {
	m, router := newTestHandler(t)
	m.zones.EXPECT().UpsertZone(gomock.Any(), gomock.Any()).Times(0)

	body := `{"name":"Cliff","kind":"high_risk","risk_level":-3,"polygon":[{"latitude":0,"longitude":0},{"latitude":0,"longitude":1},{"latitude":1,"longitude":1},{"latitude":0,"longitude":0}]}`
	w := makeRequest(router, "POST", "/api/v1/zones", bytes.NewBufferString(body), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDeleteZone(t *testing.T) {
	m, router := newTestHandler(t)
	id := uuid.New()
	m.zones.EXPECT().UpsertZone(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, z *models.Zone) error {
			assert.Equal(t, id, z.ID)
			return nil
		}).Times(1)
	m.zones.EXPECT().RemoveZone(gomock.Any(), id).Return(nil).Times(1)

	reqBody := ZoneRequest{
		Name:    "Beach",
		Kind:    "safe",
		Polygon: []PointDTO{{0, 0}, {0, 1}, {1, 1}, {0, 0}},
	}
	w := makeRequest(router, "PUT", "/api/v1/zones/"+id.String(), jsonBody(t, reqBody), apiKey)
	assert.Equal(t, http.StatusOK, w.Code)

	w = makeRequest(router, "DELETE", "/api/v1/zones/"+id.String(), nil, apiKey)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCheckPoint(t *testing.T) {
	m, router := newTestHandler(t)
	m.zones.EXPECT().CheckPoint(gomock.Any(), models.Point{Longitude: 5, Latitude: 6}, time.Time{}).
		Return([]models.Zone{
			{ID: uuid.New(), Name: "Cliffs", Kind: models.ZoneHighRisk},
			{ID: uuid.New(), Name: "Old town", Kind: models.ZoneTouristArea},
		}, nil).Times(1)

	w := makeRequest(router, "POST", "/api/v1/zones/check", jsonBody(t, ZoneCheckRequest{Latitude: 6, Longitude: 5}), apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ZoneCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.InRestrictedZone)
	require.Len(t, resp.Zones, 2)
	assert.Equal(t, "Cliffs", resp.Zones[0].Name)
}

func TestRegisterDevice_Conflict(t *testing.T) {
	m, router := newTestHandler(t)
	m.devices.EXPECT().RegisterDevice(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: register device: %w", models.ErrConflict)).Times(1)

	w := makeRequest(router, "POST", "/api/v1/devices", jsonBody(t, DeviceRegisterRequest{DeviceID: "band-1", SubjectID: "t1"}), apiKey)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeviceHeartbeat(t *testing.T) {
	m, router := newTestHandler(t)
	battery := 40
	m.devices.EXPECT().
		Heartbeat(gomock.Any(), "band-1", &battery, &models.Point{Longitude: 2, Latitude: 3}, gomock.Nil()).
		Return(&models.Device{DeviceID: "band-1", BatteryLevel: &battery, Point: &models.Point{Longitude: 2, Latitude: 3}}, nil).
		Times(1)

	w := makeRequest(router, "POST", "/api/v1/devices/band-1/heartbeat", bytes.NewBufferString(`{"battery_level":40,"latitude":3,"longitude":2}`), apiKey)

	require.Equal(t, http.StatusOK, w.Code)
	var resp DeviceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3.0, *resp.Latitude)
}

func TestDeviceHeartbeat_HalfCoordinate(t *testing.T) {
	m, router := newTestHandler(t)
	m.devices.EXPECT().Heartbeat(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/v1/devices/band-1/heartbeat", bytes.NewBufferString(`{"latitude":3}`), apiKey)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
