package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ZoneKind string

const (
	ZoneSafe        ZoneKind = "safe"
	ZoneRestricted  ZoneKind = "restricted"
	ZoneHighRisk    ZoneKind = "high_risk"
	ZoneTouristArea ZoneKind = "tourist_zone"
)

// Valid сообщает, является ли тип зоны известным
func (k ZoneKind) Valid() bool {
	switch k {
	case ZoneSafe, ZoneRestricted, ZoneHighRisk, ZoneTouristArea:
		return true
	}
	return false
}

// Alerting сообщает, должен ли вход в зону этого типа порождать геофенс-алерт
func (k ZoneKind) Alerting() bool {
	return k == ZoneRestricted || k == ZoneHighRisk
}

// Rank задает порядок "опасности" типов зон, больше - опаснее
func (k ZoneKind) Rank() int {
	switch k {
	case ZoneHighRisk:
		return 3
	case ZoneRestricted:
		return 2
	case ZoneTouristArea:
		return 1
	}
	return 0
}

const (
	MinRiskLevel = 1
	MaxRiskLevel = 10
	// DefaultRiskLevel присваивается зоне без явно заданного уровня риска
	DefaultRiskLevel = MinRiskLevel
)

// Zone - именованная полигональная зона с классификацией риска
type Zone struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Kind         ZoneKind     `json:"kind"`
	Polygon      []Point      `json:"polygon"`
	RiskLevel    int          `json:"risk_level"`
	AlertMessage string       `json:"alert_message,omitempty"`
	ActiveHours  *ActiveHours `json:"active_hours,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ValidateRiskLevel проверяет уровень риска; нулевое значение означает "не задан"
func (z *Zone) ValidateRiskLevel() error {
	if z.RiskLevel == 0 {
		z.RiskLevel = DefaultRiskLevel
	}
	if z.RiskLevel < MinRiskLevel || z.RiskLevel > MaxRiskLevel {
		return fmt.Errorf("%w: risk level %d out of range [%d, %d]", ErrInvalidArgument, z.RiskLevel, MinRiskLevel, MaxRiskLevel)
	}
	return nil
}

// ActiveHours - суточное окно активности зоны в формате "HH:MM".
// Если Start > End, окно переходит через полночь. End включается с точностью до минуты.
type ActiveHours struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone,omitempty"`
}

// Window возвращает границы окна в минутах от начала суток
func (h ActiveHours) Window() (start, end int, err error) {
	if start, err = parseClock(h.Start); err != nil {
		return 0, 0, err
	}
	if end, err = parseClock(h.End); err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Location возвращает часовой пояс окна или fallback, если пояс не задан
func (h ActiveHours) Location(fallback *time.Location) (*time.Location, error) {
	if h.Timezone == "" {
		return fallback, nil
	}
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidArgument, h.Timezone)
	}
	return loc, nil
}

// Includes проверяет, попадает ли минута суток в окно
func (h ActiveHours) Includes(minuteOfDay, start, end int) bool {
	if start <= end {
		return minuteOfDay >= start && minuteOfDay <= end
	}
	return minuteOfDay >= start || minuteOfDay <= end
}

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad time of day %q", ErrInvalidArgument, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
