package models

import (
	"time"

	"github.com/google/uuid"
)

type EmergencyKind string

const (
	EmergencyPanic    EmergencyKind = "panic"
	EmergencySOS      EmergencyKind = "sos"
	EmergencyMedical  EmergencyKind = "medical"
	EmergencyAccident EmergencyKind = "accident"
)

// Valid сообщает, является ли тип ЧС известным
func (k EmergencyKind) Valid() bool {
	switch k {
	case EmergencyPanic, EmergencySOS, EmergencyMedical, EmergencyAccident:
		return true
	}
	return false
}

type EmergencyStatus string

const (
	EmergencyActive     EmergencyStatus = "active"
	EmergencyDispatched EmergencyStatus = "dispatched"
	EmergencyResolved   EmergencyStatus = "resolved"
)

// CanTransitionTo: active -> dispatched -> resolved, active -> resolved (ложная тревога).
func (s EmergencyStatus) CanTransitionTo(next EmergencyStatus) bool {
	switch s {
	case EmergencyActive:
		return next == EmergencyDispatched || next == EmergencyResolved
	case EmergencyDispatched:
		return next == EmergencyResolved
	}
	return false
}

// Emergency - инцидент, созданный кнопкой паники или SOS-сигналом
type Emergency struct {
	ID                 uuid.UUID       `json:"id"`
	SubjectID          string          `json:"subject_id"`
	Kind               EmergencyKind   `json:"kind"`
	Point              Point           `json:"point"`
	Status             EmergencyStatus `json:"status"`
	DeviceID           string          `json:"device_id,omitempty"`
	NearestResponderID *uuid.UUID      `json:"nearest_responder_id,omitempty"`
	EFIRNumber         string          `json:"efir_number,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	DispatchedAt       *time.Time      `json:"dispatched_at,omitempty"`
	ResolvedAt         *time.Time      `json:"resolved_at,omitempty"`
}

// Responder - подразделение реагирования (полиция, спасатели)
type Responder struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Point  Point     `json:"point"`
	Active bool      `json:"active"`
}
