// Package geo содержит чистые геометрические функции: принадлежность точки полигону,
// проверку колец и расстояния по большому кругу. Все функции без состояния и безопасны
// для конкурентного вызова.
//
// Ограничение: полигоны, пересекающие антимеридиан, не поддерживаются. Кольцо трактуется
// в плоских координатах (долгота, широта).
package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/shenikar/tourist_safety/internal/models"
)

const (
	// MinRingPoints - минимальное число вершин замкнутого кольца (треугольник + замыкающая)
	MinRingPoints = 4

	epsilon = 1e-12
)

// Contains проверяет принадлежность точки полигону методом трассировки луча.
// Точки на ребре или в вершине считаются лежащими внутри.
func Contains(ring []models.Point, p models.Point) bool {
	if len(ring) < MinRingPoints {
		return false
	}
	for i := 0; i < len(ring)-1; i++ {
		if onSegment(ring[i], ring[i+1], p) {
			return true
		}
	}

	inside := false
	for i := 0; i < len(ring)-1; i++ {
		a, b := ring[i], ring[i+1]
		if (a.Latitude > p.Latitude) != (b.Latitude > p.Latitude) {
			x := (b.Longitude-a.Longitude)*(p.Latitude-a.Latitude)/(b.Latitude-a.Latitude) + a.Longitude
			if p.Longitude < x {
				inside = !inside
			}
		}
	}
	return inside
}

// ValidateRing проверяет корректность кольца полигона: замкнутость, число вершин,
// диапазоны координат, ненулевую площадь и отсутствие самопересечений.
func ValidateRing(ring []models.Point) error {
	if len(ring) < MinRingPoints {
		return fmt.Errorf("%w: ring has %d points, need at least %d", models.ErrInvalidGeometry, len(ring), MinRingPoints)
	}
	if ring[0] != ring[len(ring)-1] {
		return fmt.Errorf("%w: ring is not closed", models.ErrInvalidGeometry)
	}
	for i, p := range ring {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: vertex %d: %v", models.ErrInvalidGeometry, i, err)
		}
		if i > 0 && ring[i-1] == p {
			return fmt.Errorf("%w: repeated vertex at %d", models.ErrInvalidGeometry, i)
		}
	}
	if math.Abs(signedArea(ring)) < epsilon {
		return fmt.Errorf("%w: ring has zero area", models.ErrInvalidGeometry)
	}

	edges := len(ring) - 1
	for i := 0; i < edges; i++ {
		for j := i + 1; j < edges; j++ {
			// соседние ребра делят вершину
			if j == i+1 || (i == 0 && j == edges-1) {
				continue
			}
			if segmentsIntersect(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return fmt.Errorf("%w: edges %d and %d intersect", models.ErrInvalidGeometry, i, j)
			}
		}
	}
	return nil
}

// Bounds возвращает ограничивающий прямоугольник кольца
func Bounds(ring []models.Point) s2.Rect {
	if len(ring) == 0 {
		return s2.EmptyRect()
	}
	minLat, maxLat := ring[0].Latitude, ring[0].Latitude
	minLon, maxLon := ring[0].Longitude, ring[0].Longitude
	for _, p := range ring[1:] {
		minLat = math.Min(minLat, p.Latitude)
		maxLat = math.Max(maxLat, p.Latitude)
		minLon = math.Min(minLon, p.Longitude)
		maxLon = math.Max(maxLon, p.Longitude)
	}
	rect := s2.Rect{
		Lat: r1.Interval{Lo: radians(minLat), Hi: radians(maxLat)},
		Lng: s1.IntervalFromEndpoints(radians(minLon), radians(maxLon)),
	}
	// запас на допуск onSegment, чтобы граничные точки не отсекались префильтром
	return rect.Expanded(s2.LatLngFromDegrees(epsilon, epsilon))
}

// LatLng переводит точку в s2.LatLng
func LatLng(p models.Point) s2.LatLng {
	return s2.LatLngFromDegrees(p.Latitude, p.Longitude)
}

// radians переводит градусы так же, как s2.LatLngFromDegrees, иначе края расходятся на ulp
func radians(deg float64) float64 {
	return (s1.Angle(deg) * s1.Degree).Radians()
}

func cross(a, b, p models.Point) float64 {
	return (b.Longitude-a.Longitude)*(p.Latitude-a.Latitude) - (b.Latitude-a.Latitude)*(p.Longitude-a.Longitude)
}

func onSegment(a, b, p models.Point) bool {
	if math.Abs(cross(a, b, p)) > epsilon {
		return false
	}
	return p.Longitude >= math.Min(a.Longitude, b.Longitude)-epsilon &&
		p.Longitude <= math.Max(a.Longitude, b.Longitude)+epsilon &&
		p.Latitude >= math.Min(a.Latitude, b.Latitude)-epsilon &&
		p.Latitude <= math.Max(a.Latitude, b.Latitude)+epsilon
}

func segmentsIntersect(a, b, c, d models.Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)
	if ((d1 > epsilon && d2 < -epsilon) || (d1 < -epsilon && d2 > epsilon)) &&
		((d3 > epsilon && d4 < -epsilon) || (d3 < -epsilon && d4 > epsilon)) {
		return true
	}
	return onSegment(c, d, a) || onSegment(c, d, b) || onSegment(a, b, c) || onSegment(a, b, d)
}

func signedArea(ring []models.Point) float64 {
	var sum float64
	for i := 0; i < len(ring)-1; i++ {
		sum += ring[i].Longitude*ring[i+1].Latitude - ring[i+1].Longitude*ring[i].Latitude
	}
	return sum / 2
}
