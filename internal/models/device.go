package models

import "time"

type DeviceKind string

const (
	DeviceSmartBand DeviceKind = "smart_band"
	DeviceTag       DeviceKind = "tag"
	DeviceBeacon    DeviceKind = "beacon"
)

type DeviceStatus string

const (
	DeviceActive   DeviceStatus = "active"
	DeviceInactive DeviceStatus = "inactive"
	DeviceSOS      DeviceStatus = "sos"
)

// Device - IoT-устройство, привязанное к субъекту
type Device struct {
	DeviceID        string         `json:"device_id"`
	SubjectID       string         `json:"subject_id"`
	Kind            DeviceKind     `json:"kind"`
	Status          DeviceStatus   `json:"status"`
	FirmwareVersion string         `json:"firmware_version,omitempty"`
	BatteryLevel    *int           `json:"battery_level,omitempty"`
	Point           *Point         `json:"point,omitempty"`
	Health          *HealthMetrics `json:"health,omitempty"`
	LastHeartbeat   time.Time      `json:"last_heartbeat"`
}
