package utils

import (
	"math"

	"github.com/heritage-catalog/internal/domain"
)

// EarthRadiusKm - средний радиус Земли, используется во всех расчётах расстояний
const EarthRadiusKm = 6371.0

// bboxPaddingDeg - запас, чтобы точки ровно на границе круга не терялись из-за округления
const bboxPaddingDeg = 1e-6

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

func toDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := toRadians(lat1)
	lat2Rad := toRadians(lat2)
	dLat := lat2Rad - lat1Rad
	dLon := toRadians(lon2) - toRadians(lon1)

	a := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Pow(math.Sin(dLon/2), 2)
	// a может чуть выйти за 1 из-за округления для антиподов
	c := 2 * math.Asin(math.Sqrt(math.Min(1, a)))

	return EarthRadiusKm * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет радиус поиска: неотрицательный и конечный.
// maxKm <= 0 означает отсутствие верхней границы.
func ValidateRadius(radiusKm, maxKm float64) bool {
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return false
	}
	return maxKm <= 0 || radiusKm <= maxKm
}

// BoundingBoxForRadius возвращает прямоугольник, который гарантированно содержит
// все точки на расстоянии не больше radiusKm от центра. Если круг касается полюса
// или пересекает антимеридиан, долгота расширяется до всего диапазона.
func BoundingBoxForRadius(lat, lon, radiusKm float64) domain.BoundingBox {
	angular := radiusKm / EarthRadiusKm
	if angular >= math.Pi {
		return domain.WorldBoundingBox()
	}

	latRad := toRadians(lat)
	minLat := latRad - angular
	maxLat := latRad + angular

	box := domain.BoundingBox{
		MinLat: toDegrees(minLat) - bboxPaddingDeg,
		MaxLat: toDegrees(maxLat) + bboxPaddingDeg,
		MinLon: -180,
		MaxLon: 180,
	}

	if minLat <= -math.Pi/2 || maxLat >= math.Pi/2 {
		box.MinLat = math.Max(box.MinLat, -90)
		box.MaxLat = math.Min(box.MaxLat, 90)
		return box
	}

	deltaLon := math.Asin(math.Sin(angular) / math.Cos(latRad))
	minLon := toRadians(lon) - deltaLon
	maxLon := toRadians(lon) + deltaLon
	if minLon < -math.Pi || maxLon > math.Pi {
		return box
	}

	box.MinLon = toDegrees(minLon) - bboxPaddingDeg
	box.MaxLon = toDegrees(maxLon) + bboxPaddingDeg
	return box
}
