package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func reportAt(subjectID string, lon, lat float64, at time.Time) *models.LocationReport {
	return &models.LocationReport{
		SubjectID: subjectID,
		Point:     models.Point{Longitude: lon, Latitude: lat},
		Timestamp: at,
	}
}

func TestEvaluateLocation_ConcurrentReportsOneAlert(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.index.Upsert(restrictedZone()))

	// Ожидания
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие: 10 горутин по 10 отчетов внутри одной зоны
	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				alerts, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 0.5, 0.5, testNow))
				assert.NoError(t, err)
				mu.Lock()
				total += len(alerts)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	// Проверки
	assert.Equal(t, 1, total)
	reports, err := env.store.Locations().RecentFor(ctx, "t1", time.Time{})
	require.NoError(t, err)
	assert.Len(t, reports, 100)
	assert.Equal(t, 0, env.locations.locks.size())
}

func TestEvaluateLocation_OverlappingZones(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	restricted := restrictedZone()
	highRisk := models.Zone{ID: uuid.New(), Name: "Cliffs", Kind: models.ZoneHighRisk, Polygon: square(0.25, 0.25, 1), RiskLevel: 5}
	tourist := models.Zone{ID: uuid.New(), Name: "Old town", Kind: models.ZoneTouristArea, Polygon: square(0, 0, 2)}
	require.NoError(t, env.index.Load([]models.Zone{restricted, highRisk, tourist}))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	// Действие
	alerts, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 0.5, 0.5, testNow))

	// Проверки
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, highRisk.ID.String(), alerts[0].CauseKey)
	assert.Equal(t, models.SeverityHigh, alerts[0].Severity)
	assert.Equal(t, restricted.ID.String(), alerts[1].CauseKey)
	assert.Equal(t, models.SeverityMedium, alerts[1].Severity)
}

func TestEvaluateLocation_ReArmsAfterResolve(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	zone := restrictedZone()
	require.NoError(t, env.index.Upsert(zone))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	// Действие
	first, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 0.5, 0.5, testNow))
	require.NoError(t, err)
	require.Len(t, first, 1)
	suppressed, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 0.6, 0.6, testNow.Add(time.Minute)))
	require.NoError(t, err)
	_, err = env.alerts.Resolve(ctx, first[0].ID)
	require.NoError(t, err)
	second, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 0.5, 0.5, testNow.Add(2*time.Minute)))
	require.NoError(t, err)

	// Проверки
	assert.Empty(t, suppressed)
	require.Len(t, second, 1)
	assert.NotEqual(t, first[0].ID, second[0].ID)
	assert.Equal(t, zone.ID.String(), second[0].CauseKey)
	active, err := env.alerts.ListAlerts(ctx, "t1", models.AlertFilter{Status: models.AlertActive})
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestEvaluateLocation_SafePointNoAlerts(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.index.Upsert(restrictedZone()))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	alerts, err := env.locations.EvaluateLocation(context.Background(), reportAt("t1", 5, 5, testNow))

	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestEvaluateLocation_InvalidReport(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.locations.EvaluateLocation(ctx, reportAt("", 0, 0, testNow))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = env.locations.EvaluateLocation(ctx, reportAt("t1", 0, 95, testNow))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	bad := reportAt("t1", 0, 0, testNow)
	bad.Source = "satellite"
	_, err = env.locations.EvaluateLocation(ctx, bad)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestEvaluateLocation_DefaultsFilled(t *testing.T) {
	env := newTestEnv(t)
	report := &models.LocationReport{SubjectID: "t1", Point: models.Point{Longitude: 5, Latitude: 5}}

	_, err := env.locations.EvaluateLocation(context.Background(), report)

	require.NoError(t, err)
	assert.Equal(t, models.SourceGPS, report.Source)
	assert.Equal(t, testNow, report.Timestamp)
	assert.Equal(t, testNow, report.ReceivedAt)
	assert.NotZero(t, report.ID)
}

func TestEvaluateLocation_AlertFailureRollsBackReport(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.index.Upsert(restrictedZone()))
	env.store.FailOn("alerts.create", errors.New("connection reset"))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	alerts, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 0.5, 0.5, testNow))

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
	assert.Nil(t, alerts)
	reports, err := env.store.Locations().RecentFor(ctx, "t1", time.Time{})
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestEvaluateLocation_AnomalyFailureDoesNotBlock(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.index.Upsert(restrictedZone()))
	env.store.FailOn("locations.recent", errors.New("timeout"))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Действие
	alerts, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 0.5, 0.5, testNow))

	// Проверки
	require.NoError(t, err)
	assert.Len(t, alerts, 1)
	env.store.FailOn("locations.recent", nil)
	reports, err := env.store.Locations().RecentFor(ctx, "t1", time.Time{})
	require.NoError(t, err)
	assert.Len(t, reports, 1)
}

func TestEvaluateLocation_HeartRateAnomaly(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	heartRate := 150
	report := reportAt("t1", 5, 5, testNow)
	report.Source = models.SourceIoT
	report.Health = &models.HealthMetrics{HeartRate: &heartRate}

	// Действие
	alerts, err := env.locations.EvaluateLocation(ctx, report)
	require.NoError(t, err)
	again, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 5, 5, testNow))
	require.NoError(t, err)

	// Проверки
	require.Len(t, alerts, 1)
	assert.Equal(t, models.CauseAnomaly, alerts[0].Cause)
	assert.Equal(t, string(models.AnomalyAbnormalHeartRate), alerts[0].CauseKey)
	assert.Empty(t, again)
}

func TestEvaluateLocation_AnomalyThrottled(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.locations.cfg.AnomalyInterval = 10 * time.Minute
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	heartRate := 30

	// Действие: первый отчет запускает анализ, второй попадает в интервал
	_, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 5, 5, testNow))
	require.NoError(t, err)
	low := reportAt("t1", 5, 5, testNow)
	low.Health = &models.HealthMetrics{HeartRate: &heartRate}
	throttled, err := env.locations.EvaluateLocation(ctx, low)
	require.NoError(t, err)

	*env.clock = testNow.Add(11 * time.Minute)
	later, err := env.locations.EvaluateLocation(ctx, reportAt("t1", 5, 5, testNow.Add(11*time.Minute)))
	require.NoError(t, err)

	// Проверки
	assert.Empty(t, throttled)
	assert.Len(t, later, 1)
}

func TestAnalyzeSubject_LateNight(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	night := []time.Time{
		time.Date(2024, 5, 2, 23, 30, 0, 0, time.UTC),
		time.Date(2024, 5, 3, 23, 45, 0, 0, time.UTC),
		time.Date(2024, 5, 4, 0, 30, 0, 0, time.UTC),
		time.Date(2024, 5, 5, 1, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 5, 14, 0, 0, 0, time.UTC),
	}
	for _, at := range night {
		require.NoError(t, env.store.Locations().Append(ctx, reportAt("t1", 10, 10, at)))
	}

	// Действие
	anomalies, alerts, err := env.locations.AnalyzeSubject(ctx, "t1", 0)
	require.NoError(t, err)
	again, repeated, err := env.locations.AnalyzeSubject(ctx, "t1", 0)
	require.NoError(t, err)

	// Проверки
	require.Len(t, anomalies, 1)
	assert.Equal(t, models.AnomalyUnusualTime, anomalies[0].Kind)
	assert.Len(t, anomalies[0].Reports, 4)
	require.Len(t, alerts, 1)
	assert.Equal(t, models.SeverityMedium, alerts[0].Severity)
	assert.Len(t, again, 1)
	assert.Empty(t, repeated)
}

func TestAnalyzeSubject_WindowExcludesOldReports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for day := 1; day <= 4; day++ {
		at := time.Date(2024, 4, day, 23, 30, 0, 0, time.UTC)
		require.NoError(t, env.store.Locations().Append(ctx, reportAt("t1", 10, 10, at)))
	}

	anomalies, alerts, err := env.locations.AnalyzeSubject(ctx, "t1", 0)

	require.NoError(t, err)
	assert.Empty(t, anomalies)
	assert.Empty(t, alerts)
}

func TestAnalyzeSubject_StoreFailureReturned(t *testing.T) {
	env := newTestEnv(t)
	env.store.FailOn("locations.recent", errors.New("timeout"))

	_, _, err := env.locations.AnalyzeSubject(context.Background(), "t1", time.Hour)

	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestEvaluateBatch_GroupsBySubject(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.index.Upsert(restrictedZone()))
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	var batch []models.LocationReport
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			at := testNow.Add(-time.Duration(j) * time.Minute)
			batch = append(batch, *reportAt(fmt.Sprintf("t%d", i), 0.5, 0.5, at))
		}
	}

	// Действие
	alerts, err := env.locations.EvaluateBatch(ctx, batch)

	// Проверки
	require.NoError(t, err)
	assert.Len(t, alerts, 3)
	subjects, err := env.store.Locations().SubjectsSince(ctx, testNow.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []string{"t0", "t1", "t2"}, subjects)
}

func TestEvaluateBatch_RejectsInvalidReport(t *testing.T) {
	env := newTestEnv(t)
	batch := []models.LocationReport{*reportAt("t1", 0, 0, testNow), *reportAt("t2", 500, 0, testNow)}

	_, err := env.locations.EvaluateBatch(context.Background(), batch)

	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestSweepAnomalies(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	heartRate := 40
	for _, subjectID := range []string{"t1", "t2", "t3"} {
		report := reportAt(subjectID, 5, 5, testNow.Add(-time.Hour))
		if subjectID != "t3" {
			report.Health = &models.HealthMetrics{HeartRate: &heartRate}
		}
		require.NoError(t, env.store.Locations().Append(ctx, report))
	}

	// Действие
	created, err := env.locations.SweepAnomalies(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestSweepAnomalies_PrunesStaleReviewMarks(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	env.locations.cfg.AnomalyInterval = 10 * time.Minute
	env.locations.lastReview["left-area"] = testNow.Add(-2 * time.Hour)
	env.locations.lastReview["still-here"] = testNow.Add(-time.Minute)

	// Действие
	created, err := env.locations.SweepAnomalies(ctx)

	// Проверки
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.NotContains(t, env.locations.lastReview, "left-area")
	assert.Contains(t, env.locations.lastReview, "still-here")
}

func TestKeyedMutex_ReleasesEntries(t *testing.T) {
	k := newKeyedMutex()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("t1")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, k.size())
}
