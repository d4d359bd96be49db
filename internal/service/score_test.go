package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shenikar/tourist_safety/internal/config"
	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/shenikar/tourist_safety/internal/service/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestScoreService - вспомогательная функция для создания инстанса сервиса с моками.
func newTestScoreService(t *testing.T) (*scoreService, *mocks.MockAlertStore, *mocks.MockScoreStore, *mocks.MockScoreCache) {
	ctrl := gomock.NewController(t)
	alertsMock := mocks.NewMockAlertStore(ctrl)
	scoresMock := mocks.NewMockScoreStore(ctrl)
	cacheMock := mocks.NewMockScoreCache(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{ScoreWindow: 7 * 24 * time.Hour}
	repos := Repositories{Alerts: alertsMock, Scores: scoresMock, ScoreCache: cacheMock}

	service := NewScoreService(repos, logger, cfg).(*scoreService)
	service.now = func() time.Time { return testNow }
	return service, alertsMock, scoresMock, cacheMock
}

func TestComputeSafetyScore_FromCache(t *testing.T) {
	// Подготовка
	service, _, _, cacheMock := newTestScoreService(t)
	ctx := context.Background()
	cached := &models.SafetyScore{SubjectID: "t1", CurrentScore: 80}

	// Ожидания
	cacheMock.EXPECT().Get(ctx, "t1").Return(cached, nil).Times(1)

	// Действие
	score, err := service.ComputeSafetyScore(ctx, "t1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, cached, score)
}

func TestComputeSafetyScore_Recomputed(t *testing.T) {
	// Подготовка
	service, alertsMock, scoresMock, cacheMock := newTestScoreService(t)
	ctx := context.Background()
	alerts := []models.Alert{
		{Cause: models.CauseGeofence, Severity: models.SeverityHigh},
		{Cause: models.CauseAnomaly, CauseKey: string(models.AnomalyUnusualTime), Severity: models.SeverityMedium},
		{Cause: models.CausePanic, Severity: models.SeverityCritical},
	}
	previous := []models.ScorePoint{{Score: 100, Timestamp: testNow.Add(-time.Hour)}}

	// Ожидания
	// 1. Промах кеша
	cacheMock.EXPECT().Get(ctx, "t1").Return(nil, nil).Times(1)

	// 2. Алерты окна и история
	alertsMock.EXPECT().
		ListForSubject(gomock.Any(), "t1", models.AlertFilter{Since: testNow.Add(-7 * 24 * time.Hour)}).
		Return(alerts, nil).Times(1)
	scoresMock.EXPECT().History(gomock.Any(), "t1", 49).Return(previous, nil).Times(1)

	// 3. Запись истории и кеша
	scoresMock.EXPECT().AppendHistory(ctx, "t1", models.ScorePoint{Score: 65, Timestamp: testNow}).Return(nil).Times(1)
	cacheMock.EXPECT().Set(ctx, gomock.Any()).
		Do(func(_ context.Context, s *models.SafetyScore) {
			assert.Equal(t, 65, s.CurrentScore)
		}).Return(nil).Times(1)

	// Действие
	score, err := service.ComputeSafetyScore(ctx, "t1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 65, score.CurrentScore)
	assert.Equal(t, 3, score.AlertsCount)
	assert.Equal(t, models.ScoreFactors{LocationRisk: 10, TimeRisk: 5, BehaviorRisk: 20}, score.Factors)
	require.Len(t, score.History, 2)
	assert.Equal(t, testNow, score.LastUpdated)
}

func TestComputeSafetyScore_CacheErrorsIgnored(t *testing.T) {
	// Подготовка
	service, alertsMock, scoresMock, cacheMock := newTestScoreService(t)
	ctx := context.Background()

	// Ожидания
	cacheMock.EXPECT().Get(ctx, "t1").Return(nil, errors.New("redis down")).Times(1)
	alertsMock.EXPECT().ListForSubject(gomock.Any(), "t1", gomock.Any()).Return(nil, nil).Times(1)
	scoresMock.EXPECT().History(gomock.Any(), "t1", gomock.Any()).Return(nil, nil).Times(1)
	scoresMock.EXPECT().AppendHistory(ctx, "t1", gomock.Any()).Return(nil).Times(1)
	cacheMock.EXPECT().Set(ctx, gomock.Any()).Return(errors.New("redis down")).Times(1)

	// Действие
	score, err := service.ComputeSafetyScore(ctx, "t1")

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 100, score.CurrentScore)
}

func TestComputeSafetyScore_StoreFailure(t *testing.T) {
	// Подготовка
	service, alertsMock, scoresMock, cacheMock := newTestScoreService(t)
	ctx := context.Background()

	// Ожидания
	cacheMock.EXPECT().Get(ctx, "t1").Return(nil, nil).Times(1)
	alertsMock.EXPECT().ListForSubject(gomock.Any(), "t1", gomock.Any()).Return(nil, errors.New("connection refused")).Times(1)
	scoresMock.EXPECT().History(gomock.Any(), "t1", gomock.Any()).Return(nil, nil).AnyTimes()

	// Действие
	score, err := service.ComputeSafetyScore(ctx, "t1")

	// Проверки
	require.Error(t, err)
	assert.Nil(t, score)
	assert.ErrorIs(t, err, models.ErrStoreUnavailable)
}

func TestComputeSafetyScore_InvalidatedByNewAlert(t *testing.T) {
	// Подготовка
	env := newTestEnv(t)
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	cacheMock := mocks.NewMockScoreCache(ctrl)
	env.alerts.repos.ScoreCache = cacheMock
	env.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	// Ожидания
	cacheMock.EXPECT().Invalidate(gomock.Any(), "t1").Return(nil).Times(1)

	// Действие
	_, err := env.alerts.ReportMissing(ctx, "t1", models.Point{}, time.Time{}, "")

	// Проверки
	require.NoError(t, err)
}
