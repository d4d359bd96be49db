package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertCause string

const (
	CauseGeofence AlertCause = "geofence"
	CauseAnomaly  AlertCause = "anomaly"
	CausePanic    AlertCause = "panic"
	CauseSOS      AlertCause = "sos"
	CauseMissing  AlertCause = "missing"
)

// Deduplicated сообщает, действует ли для причины правило "не более одного активного алерта".
// Panic, SOS и missing всегда создают новый алерт.
func (c AlertCause) Deduplicated() bool {
	return c == CauseGeofence || c == CauseAnomaly
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type AlertStatus string

const (
	AlertActive       AlertStatus = "active"
	AlertAcknowledged AlertStatus = "acknowledged"
	AlertResolved     AlertStatus = "resolved"
)

// CanTransitionTo проверяет допустимость перехода: active -> acknowledged -> resolved,
// а также active -> resolved. Из resolved переходов нет.
func (s AlertStatus) CanTransitionTo(next AlertStatus) bool {
	switch s {
	case AlertActive:
		return next == AlertAcknowledged || next == AlertResolved
	case AlertAcknowledged:
		return next == AlertResolved
	}
	return false
}

// Alert - сигнал безопасности по субъекту
type Alert struct {
	ID             uuid.UUID         `json:"id"`
	SubjectID      string            `json:"subject_id"`
	Cause          AlertCause        `json:"cause"`
	CauseKey       string            `json:"cause_key"`
	Severity       Severity          `json:"severity"`
	Point          Point             `json:"point"`
	Description    string            `json:"description"`
	Status         AlertStatus       `json:"status"`
	AcknowledgedBy string            `json:"acknowledged_by,omitempty"`
	AcknowledgedAt *time.Time        `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	ResolvedAt     *time.Time        `json:"resolved_at,omitempty"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// AlertFilter - фильтр для выборки алертов субъекта
type AlertFilter struct {
	Since  time.Time
	Cause  AlertCause
	Status AlertStatus
}
