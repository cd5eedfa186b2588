// Package geo содержит расчет расстояний по формуле гаверсинусов и ранжирование учреждений.
package geo

import "math"

// EarthRadiusMeters - средний радиус Земли
const EarthRadiusMeters = 6371000.0

// Point - координаты в градусах
type Point struct {
	Latitude  float64
	Longitude float64
}

// Valid проверяет диапазоны широты и долготы
func (p Point) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return false
	}
	return p.Latitude >= -90 && p.Latitude <= 90 && p.Longitude >= -180 && p.Longitude <= 180
}

// Distance возвращает расстояние по большой окружности между двумя точками в метрах.
//
//	a = sin²(Δφ/2) + cos(φ1)·cos(φ2)·sin²(Δλ/2)
//	d = 2·R·atan2(√a, √(1−a))
func Distance(from, to Point) float64 {
	phi1 := toRadians(from.Latitude)
	phi2 := toRadians(to.Latitude)
	deltaPhi := toRadians(to.Latitude - from.Latitude)
	deltaLambda := toRadians(to.Longitude - from.Longitude)

	a := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*
			math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
