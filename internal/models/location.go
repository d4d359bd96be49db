package models

import "time"

type SourceKind string

const (
	SourceGPS    SourceKind = "gps"
	SourceIoT    SourceKind = "iot"
	SourceManual SourceKind = "manual"
)

// HealthMetrics - типизированные показатели здоровья с носимого устройства
type HealthMetrics struct {
	HeartRate       *int     `json:"heart_rate,omitempty"`
	BodyTemperature *float64 `json:"body_temperature,omitempty"`
	SpO2            *int     `json:"spo2,omitempty"`
}

// LocationReport - отчет о местоположении субъекта. Только добавляется, упорядочен по Timestamp.
type LocationReport struct {
	ID           int64          `json:"id"`
	SubjectID    string         `json:"subject_id"`
	Point        Point          `json:"point"`
	Timestamp    time.Time      `json:"timestamp"`
	Altitude     *float64       `json:"altitude,omitempty"`
	Accuracy     *float64       `json:"accuracy,omitempty"`
	Source       SourceKind     `json:"source"`
	BatteryLevel *int           `json:"battery_level,omitempty"`
	Health       *HealthMetrics `json:"health,omitempty"`
	ReceivedAt   time.Time      `json:"received_at"`
}
