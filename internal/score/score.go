// Package score вычисляет оценку безопасности субъекта как свертку по алертам окна.
package score

import (
	"time"

	"github.com/shenikar/tourist_safety/internal/models"
)

const (
	MaxScore = 100
	MinScore = 0
	// DefaultWindow - окно истории алертов для расчета
	DefaultWindow = 7 * 24 * time.Hour
	// MaxHistory - сколько последних точек истории хранится в результате
	MaxHistory = 50
)

// Penalty возвращает снижение оценки за алерт указанной важности
func Penalty(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return 20
	case models.SeverityHigh:
		return 10
	case models.SeverityMedium:
		return 5
	case models.SeverityLow:
		return 2
	}
	return 0
}

// Compute считает оценку: 100 минус штрафы за каждый алерт окна, с ограничением [0, 100].
// Результат не зависит от порядка алертов. history - предыдущие точки, новая добавляется в конец.
func Compute(subjectID string, alerts []models.Alert, history []models.ScorePoint, now time.Time) models.SafetyScore {
	total := MaxScore
	var factors models.ScoreFactors
	for _, a := range alerts {
		p := Penalty(a.Severity)
		total -= p
		switch {
		case a.Cause == models.CauseGeofence:
			factors.LocationRisk += p
		case a.Cause == models.CauseAnomaly && a.CauseKey == string(models.AnomalyUnusualTime):
			factors.TimeRisk += p
		default:
			factors.BehaviorRisk += p
		}
	}
	total = Clamp(total)

	out := make([]models.ScorePoint, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, models.ScorePoint{Score: total, Timestamp: now})
	if len(out) > MaxHistory {
		out = out[len(out)-MaxHistory:]
	}

	return models.SafetyScore{
		SubjectID:    subjectID,
		CurrentScore: total,
		Factors:      factors,
		AlertsCount:  len(alerts),
		History:      out,
		LastUpdated:  now,
	}
}

func Clamp(v int) int {
	if v < MinScore {
		return MinScore
	}
	if v > MaxScore {
		return MaxScore
	}
	return v
}
