package geo

import "github.com/shenikar/tourist_safety/internal/models"

// EarthRadiusKm - средний радиус Земли в километрах
const EarthRadiusKm = 6371.0

// HaversineDistanceKm вычисляет расстояние по большому кругу между двумя точками в километрах
func HaversineDistanceKm(a, b models.Point) float64 {
	return LatLng(a).Distance(LatLng(b)).Radians() * EarthRadiusKm
}

// AverageDistanceKm возвращает среднее расстояние между последовательными точками
func AverageDistanceKm(points []models.Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(points); i++ {
		total += HaversineDistanceKm(points[i-1], points[i])
	}
	return total / float64(len(points)-1)
}
