package v1

import (
	"time"

	"github.com/google/uuid"
)

// HealthMetricsDTO DTO показателей здоровья с носимого устройства
// @Description DTO показателей здоровья с носимого устройства
type HealthMetricsDTO struct {
	HeartRate       *int     `json:"heart_rate,omitempty" validate:"omitempty,gt=0,lt=300"`
	BodyTemperature *float64 `json:"body_temperature,omitempty" validate:"omitempty,gt=25,lt=45"`
	SpO2            *int     `json:"spo2,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// LocationReportRequest DTO отчета о местоположении
// @Description DTO отчета о местоположении
type LocationReportRequest struct {
	SubjectID    string            `json:"subject_id" validate:"required,max=128"`
	Latitude     float64           `json:"latitude" validate:"latitude"`
	Longitude    float64           `json:"longitude" validate:"longitude"`
	Timestamp    *time.Time        `json:"timestamp,omitempty"`
	Altitude     *float64          `json:"altitude,omitempty"`
	Accuracy     *float64          `json:"accuracy,omitempty" validate:"omitempty,gte=0"`
	Source       string            `json:"source,omitempty" validate:"omitempty,oneof=gps iot manual"`
	BatteryLevel *int              `json:"battery_level,omitempty" validate:"omitempty,gte=0,lte=100"`
	Health       *HealthMetricsDTO `json:"health,omitempty"`
}

// LocationBatchRequest DTO пакета отчетов
// @Description DTO пакета отчетов
type LocationBatchRequest struct {
	Reports []LocationReportRequest `json:"reports" validate:"required,min=1,max=1000,dive"`
}

// LocationReportResponse DTO сохраненного отчета
// @Description DTO сохраненного отчета
type LocationReportResponse struct {
	ID           int64             `json:"id"`
	SubjectID    string            `json:"subject_id"`
	Latitude     float64           `json:"latitude"`
	Longitude    float64           `json:"longitude"`
	Timestamp    time.Time         `json:"timestamp"`
	Source       string            `json:"source"`
	BatteryLevel *int              `json:"battery_level,omitempty"`
	Health       *HealthMetricsDTO `json:"health,omitempty"`
}

// EvaluateResponse DTO результата обработки местоположения: только новые алерты
// @Description DTO результата обработки местоположения
type EvaluateResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// AlertResponse DTO алерта
// @Description DTO алерта
type AlertResponse struct {
	ID             uuid.UUID         `json:"id"`
	SubjectID      string            `json:"subject_id"`
	Cause          string            `json:"cause"`
	CauseKey       string            `json:"cause_key"`
	Severity       string            `json:"severity"`
	Latitude       float64           `json:"latitude"`
	Longitude      float64           `json:"longitude"`
	Description    string            `json:"description"`
	Status         string            `json:"status"`
	AcknowledgedBy string            `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time        `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ResolvedAt     *time.Time        `json:"resolved_at,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// AcknowledgeRequest DTO подтверждения алерта
// @Description DTO подтверждения алерта
type AcknowledgeRequest struct {
	AcknowledgedBy string `json:"acknowledged_by" validate:"required,max=255"`
}

// MissingPersonRequest DTO сообщения о пропаже
// @Description DTO сообщения о пропаже
type MissingPersonRequest struct {
	SubjectID   string     `json:"subject_id" validate:"required,max=128"`
	Latitude    float64    `json:"latitude" validate:"latitude"`
	Longitude   float64    `json:"longitude" validate:"longitude"`
	LastSeen    *time.Time `json:"last_seen,omitempty"`
	Description string     `json:"description,omitempty" validate:"max=1000"`
}

// PanicRequest DTO нажатия кнопки паники
// @Description DTO нажатия кнопки паники
type PanicRequest struct {
	SubjectID string  `json:"subject_id" validate:"required,max=128"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	Kind      string  `json:"kind,omitempty" validate:"omitempty,oneof=panic medical accident"`
}

// SOSRequest DTO SOS-сигнала с устройства
// @Description DTO SOS-сигнала с устройства
type SOSRequest struct {
	SubjectID string            `json:"subject_id,omitempty" validate:"max=128"`
	Latitude  float64           `json:"latitude" validate:"latitude"`
	Longitude float64           `json:"longitude" validate:"longitude"`
	Health    *HealthMetricsDTO `json:"health,omitempty"`
}

// EmergencyResponse DTO ЧС
// @Description DTO ЧС
type EmergencyResponse struct {
	ID                 uuid.UUID  `json:"id"`
	SubjectID          string     `json:"subject_id"`
	Kind               string     `json:"kind"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	Status             string     `json:"status"`
	DeviceID           string     `json:"device_id,omitempty"`
	NearestResponderID *uuid.UUID `json:"nearest_responder_id,omitempty"`
	EFIRNumber         string     `json:"efir_number,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	DispatchedAt       *time.Time `json:"dispatched_at,omitempty"`
	ResolvedAt         *time.Time `json:"resolved_at,omitempty"`
}

// EmergencyCreatedResponse DTO ответа на панику или SOS
// @Description DTO ответа на панику или SOS
type EmergencyCreatedResponse struct {
	Emergency EmergencyResponse `json:"emergency"`
	Alert     AlertResponse     `json:"alert"`
}

// PointDTO DTO вершины полигона
// @Description DTO вершины полигона
type PointDTO struct {
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// ActiveHoursDTO DTO суточного окна активности зоны
// @Description DTO суточного окна активности зоны
type ActiveHoursDTO struct {
	Start    string `json:"start" validate:"required,len=5"`
	End      string `json:"end" validate:"required,len=5"`
	Timezone string `json:"timezone,omitempty" validate:"omitempty,timezone"`
}

// ZoneRequest DTO создания или замены зоны
// @Description DTO создания или замены зоны
type ZoneRequest struct {
	Name         string          `json:"name" validate:"required,min=2,max=255"`
	Kind         string          `json:"kind" validate:"required,oneof=safe restricted high_risk tourist_zone"`
	Polygon      []PointDTO      `json:"polygon" validate:"required,min=4,max=10000,dive"`
	RiskLevel    int             `json:"risk_level" validate:"omitempty,gte=1,lte=10"`
	AlertMessage string          `json:"alert_message,omitempty" validate:"max=500"`
	ActiveHours  *ActiveHoursDTO `json:"active_hours,omitempty"`
}

// ZoneResponse DTO зоны
// @Description DTO зоны
type ZoneResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Kind         string          `json:"kind"`
	Polygon      []PointDTO      `json:"polygon"`
	RiskLevel    int             `json:"risk_level"`
	AlertMessage string          `json:"alert_message,omitempty"`
	ActiveHours  *ActiveHoursDTO `json:"active_hours,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ZoneCheckRequest DTO проверки точки по зонам
// @Description DTO проверки точки по зонам
type ZoneCheckRequest struct {
	Latitude  float64    `json:"latitude" validate:"latitude"`
	Longitude float64    `json:"longitude" validate:"longitude"`
	At        *time.Time `json:"at,omitempty"`
}

// ZoneCheckResponse DTO результата проверки точки
// @Description DTO результата проверки точки
type ZoneCheckResponse struct {
	InRestrictedZone bool           `json:"in_restricted_zone"`
	Zones            []ZoneResponse `json:"zones"`
}

// DeviceRegisterRequest DTO регистрации устройства
// @Description DTO регистрации устройства
type DeviceRegisterRequest struct {
	DeviceID        string `json:"device_id" validate:"required,max=128"`
	SubjectID       string `json:"subject_id" validate:"required,max=128"`
	Kind            string `json:"kind,omitempty" validate:"omitempty,oneof=smart_band tag beacon"`
	FirmwareVersion string `json:"firmware_version,omitempty" validate:"max=64"`
}

// HeartbeatRequest DTO сигнала жизни устройства
// @Description DTO сигнала жизни устройства
type HeartbeatRequest struct {
	BatteryLevel *int              `json:"battery_level,omitempty" validate:"omitempty,gte=0,lte=100"`
	Latitude     *float64          `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64          `json:"longitude,omitempty" validate:"omitempty,longitude"`
	Health       *HealthMetricsDTO `json:"health,omitempty"`
}

// DeviceResponse DTO устройства
// @Description DTO устройства
type DeviceResponse struct {
	DeviceID        string            `json:"device_id"`
	SubjectID       string            `json:"subject_id"`
	Kind            string            `json:"kind"`
	Status          string            `json:"status"`
	FirmwareVersion string            `json:"firmware_version,omitempty"`
	BatteryLevel    *int              `json:"battery_level,omitempty"`
	Latitude        *float64          `json:"latitude,omitempty"`
	Longitude       *float64          `json:"longitude,omitempty"`
	Health          *HealthMetricsDTO `json:"health,omitempty"`
	LastHeartbeat   time.Time         `json:"last_heartbeat"`
}

// ScorePointDTO DTO точки истории оценки
// @Description DTO точки истории оценки
type ScorePointDTO struct {
	Score     int       `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// SafetyScoreResponse DTO оценки безопасности
// @Description DTO оценки безопасности
type SafetyScoreResponse struct {
	SubjectID    string          `json:"subject_id"`
	CurrentScore int             `json:"current_score"`
	Factors      ScoreFactorsDTO `json:"factors"`
	AlertsCount  int             `json:"alerts_count"`
	History      []ScorePointDTO `json:"history"`
	LastUpdated  time.Time       `json:"last_updated"`
}

// ScoreFactorsDTO DTO факторов риска
// @Description DTO факторов риска
type ScoreFactorsDTO struct {
	LocationRisk int `json:"location_risk"`
	TimeRisk     int `json:"time_risk"`
	BehaviorRisk int `json:"behavior_risk"`
	WeatherRisk  int `json:"weather_risk"`
}

// AnomalyResponse DTO найденной аномалии
// @Description DTO найденной аномалии
type AnomalyResponse struct {
	Kind         string  `json:"kind"`
	Severity     string  `json:"severity"`
	Description  string  `json:"description"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	ReportsCount int     `json:"reports_count"`
}

// AnalyzeResponse DTO результата анализа аномалий
// @Description DTO результата анализа аномалий
type AnalyzeResponse struct {
	Anomalies []AnomalyResponse `json:"anomalies"`
	Alerts    []AlertResponse   `json:"alerts"`
}
