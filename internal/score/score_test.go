package score

import (
	"testing"
	"time"

	"github.com/shenikar/tourist_safety/internal/models"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

func alert(cause models.AlertCause, key string, sev models.Severity) models.Alert {
	return models.Alert{SubjectID: "tourist-1", Cause: cause, CauseKey: key, Severity: sev}
}

func TestCompute_Deterministic(t *testing.T) {
	alerts := []models.Alert{
		alert(models.CausePanic, "e1", models.SeverityCritical),
		alert(models.CauseGeofence, "z1", models.SeverityHigh),
		alert(models.CauseAnomaly, string(models.AnomalyUnusualTime), models.SeverityMedium),
	}
	reversed := []models.Alert{alerts[2], alerts[1], alerts[0]}

	for i := 0; i < 5; i++ {
		assert.Equal(t, 65, Compute("tourist-1", alerts, nil, now).CurrentScore)
		assert.Equal(t, 65, Compute("tourist-1", reversed, nil, now).CurrentScore)
	}
	assert.Equal(t, Compute("tourist-1", alerts, nil, now), Compute("tourist-1", reversed, nil, now))
}

func TestCompute_Floor(t *testing.T) {
	var alerts []models.Alert
	for i := 0; i < 10; i++ {
		alerts = append(alerts, alert(models.CauseSOS, "d1", models.SeverityCritical))
	}

	got := Compute("tourist-1", alerts, nil, now)

	assert.Equal(t, 0, got.CurrentScore)
	assert.Equal(t, 10, got.AlertsCount)
}

func TestCompute_NoAlerts(t *testing.T) {
	got := Compute("tourist-1", nil, nil, now)

	assert.Equal(t, 100, got.CurrentScore)
	assert.Equal(t, models.ScoreFactors{}, got.Factors)
	assert.Equal(t, []models.ScorePoint{{Score: 100, Timestamp: now}}, got.History)
	assert.Equal(t, now, got.LastUpdated)
}

func TestCompute_Factors(t *testing.T) {
	alerts := []models.Alert{
		alert(models.CauseGeofence, "z1", models.SeverityHigh),
		alert(models.CauseGeofence, "z2", models.SeverityMedium),
		alert(models.CauseAnomaly, string(models.AnomalyUnusualTime), models.SeverityMedium),
		alert(models.CauseAnomaly, string(models.AnomalyAbnormalHeartRate), models.SeverityMedium),
		alert(models.CauseMissing, "r1", models.SeverityCritical),
		alert(models.CauseGeofence, "z3", models.SeverityLow),
	}

	got := Compute("tourist-1", alerts, nil, now)

	assert.Equal(t, models.ScoreFactors{LocationRisk: 17, TimeRisk: 5, BehaviorRisk: 25}, got.Factors)
	assert.Equal(t, 53, got.CurrentScore)
}

func TestCompute_HistoryAppendedAndCapped(t *testing.T) {
	var history []models.ScorePoint
	for i := 0; i < MaxHistory; i++ {
		history = append(history, models.ScorePoint{Score: i, Timestamp: now.Add(-time.Duration(MaxHistory-i) * time.Hour)})
	}

	got := Compute("tourist-1", nil, history, now)

	assert.Len(t, got.History, MaxHistory)
	assert.Equal(t, 1, got.History[0].Score)
	assert.Equal(t, models.ScorePoint{Score: 100, Timestamp: now}, got.History[MaxHistory-1])
	assert.Len(t, history, MaxHistory, "input history must not be modified")
}
