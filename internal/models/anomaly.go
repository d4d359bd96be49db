package models

type AnomalyKind string

const (
	AnomalyUnusualTime       AnomalyKind = "unusual_time_activity"
	AnomalyAbnormalHeartRate AnomalyKind = "abnormal_heart_rate"
)

// Anomaly - результат правила детектора аномалий
type Anomaly struct {
	Kind        AnomalyKind      `json:"kind"`
	Severity    Severity         `json:"severity"`
	Description string           `json:"description"`
	Point       Point            `json:"point"`
	Reports     []LocationReport `json:"reports"`
}
