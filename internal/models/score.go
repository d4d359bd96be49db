package models

import "time"

// ScoreFactors - вклад категорий риска в снижение оценки
type ScoreFactors struct {
	LocationRisk int `json:"location_risk"`
	TimeRisk     int `json:"time_risk"`
	BehaviorRisk int `json:"behavior_risk"`
	WeatherRisk  int `json:"weather_risk"`
}

type ScorePoint struct {
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// SafetyScore - производная оценка безопасности субъекта, пересчитывается по истории алертов
type SafetyScore struct {
	SubjectID    string       `json:"subject_id"`
	CurrentScore int          `json:"current_score"`
	Factors      ScoreFactors `json:"factors"`
	AlertsCount  int          `json:"alerts_count"`
	History      []ScorePoint `json:"history"`
	LastUpdated  time.Time    `json:"last_updated"`
}
