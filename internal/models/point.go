package models

import (
	"fmt"
	"math"
)

// Point - географическая точка (долгота, широта) в WGS84
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

// Validate проверяет, что координаты лежат в допустимых диапазонах
func (p Point) Validate() error {
	if !finite(p.Longitude) || !finite(p.Latitude) {
		return fmt.Errorf("%w: coordinates must be finite numbers", ErrInvalidArgument)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidArgument, p.Longitude)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidArgument, p.Latitude)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
