// Package anomaly анализирует историю местоположений субъекта за скользящее окно.
// Детектор не хранит состояние между вызовами: каждый вызов пересчитывает результат
// по переданному окну, частоту вызовов регулирует вызывающая сторона.
package anomaly

import (
	"fmt"
	"sort"
	"time"

	"github.com/shenikar/tourist_safety/internal/geo"
	"github.com/shenikar/tourist_safety/internal/models"
)

const (
	DefaultWindow             = 7 * 24 * time.Hour
	DefaultLateNightThreshold = 3
	DefaultLateNightStartHour = 23
	DefaultLateNightEndHour   = 5
	DefaultHeartRateLow       = 50
	DefaultHeartRateHigh      = 120
)

type Config struct {
	// LateNightThreshold - аномалия фиксируется, если ночных отчетов строго больше порога
	LateNightThreshold int
	LateNightStartHour int
	LateNightEndHour   int
	HeartRateLow       int
	HeartRateHigh      int
	// Location - часовой пояс для определения локального часа
	Location *time.Location
}

func DefaultConfig() Config {
	return Config{
		LateNightThreshold: DefaultLateNightThreshold,
		LateNightStartHour: DefaultLateNightStartHour,
		LateNightEndHour:   DefaultLateNightEndHour,
		HeartRateLow:       DefaultHeartRateLow,
		HeartRateHigh:      DefaultHeartRateHigh,
		Location:           time.UTC,
	}
}

// Rule - независимое правило; возвращает nil, если аномалии нет.
// reports упорядочены по времени.
type Rule func(cfg Config, reports []models.LocationReport) *models.Anomaly

type Detector struct {
	cfg   Config
	rules []Rule
}

// NewDetector создает детектор. Без явных правил используются LateNightRule и HeartRateRule.
func NewDetector(cfg Config, rules ...Rule) *Detector {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if len(rules) == 0 {
		rules = []Rule{LateNightRule, HeartRateRule}
	}
	return &Detector{cfg: cfg, rules: rules}
}

// Detect применяет все правила к окну отчетов
func (d *Detector) Detect(reports []models.LocationReport) []models.Anomaly {
	if len(reports) == 0 {
		return nil
	}
	sorted := sortedByTime(reports)

	var out []models.Anomaly
	for _, rule := range d.rules {
		if a := rule(d.cfg, sorted); a != nil {
			out = append(out, *a)
		}
	}
	return out
}

// CheckReading применяет правило пульса к одиночному показанию с устройства
func (d *Detector) CheckReading(report models.LocationReport) *models.Anomaly {
	return HeartRateRule(d.cfg, []models.LocationReport{report})
}

// AverageMovementKm - среднее расстояние между последовательными по времени отчетами.
// Базовая метрика для будущих правил, сама по себе алерт не порождает.
func AverageMovementKm(reports []models.LocationReport) float64 {
	sorted := sortedByTime(reports)
	points := make([]models.Point, len(sorted))
	for i, r := range sorted {
		points[i] = r.Point
	}
	return geo.AverageDistanceKm(points)
}

// LateNightRule фиксирует активность в ночные часы [start:00, end:59]
func LateNightRule(cfg Config, reports []models.LocationReport) *models.Anomaly {
	var night []models.LocationReport
	for _, r := range reports {
		hour := r.Timestamp.In(cfg.Location).Hour()
		if isLateNight(hour, cfg.LateNightStartHour, cfg.LateNightEndHour) {
			night = append(night, r)
		}
	}
	if len(night) <= cfg.LateNightThreshold {
		return nil
	}
	return &models.Anomaly{
		Kind:        models.AnomalyUnusualTime,
		Severity:    models.SeverityMedium,
		Description: "Unusual activity during late night hours",
		Point:       night[0].Point,
		Reports:     night,
	}
}

// HeartRateRule фиксирует пульс вне допустимого диапазона в отчетах с устройств
func HeartRateRule(cfg Config, reports []models.LocationReport) *models.Anomaly {
	var abnormal []models.LocationReport
	for _, r := range reports {
		if r.Health == nil || r.Health.HeartRate == nil {
			continue
		}
		hr := *r.Health.HeartRate
		if hr > cfg.HeartRateHigh || hr < cfg.HeartRateLow {
			abnormal = append(abnormal, r)
		}
	}
	if len(abnormal) == 0 {
		return nil
	}
	return &models.Anomaly{
		Kind:        models.AnomalyAbnormalHeartRate,
		Severity:    models.SeverityMedium,
		Description: fmt.Sprintf("Abnormal heart rate detected (%d bpm)", *abnormal[len(abnormal)-1].Health.HeartRate),
		Point:       abnormal[0].Point,
		Reports:     abnormal,
	}
}

func isLateNight(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour <= end
	}
	return hour >= start || hour <= end
}

func sortedByTime(reports []models.LocationReport) []models.LocationReport {
	out := make([]models.LocationReport, len(reports))
	copy(out, reports)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}
