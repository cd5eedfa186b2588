package geo

import (
	"sort"

	"github.com/shenikar/emergency_dispatch/internal/models"
)

// Rank считает расстояние от точки до каждого учреждения, отбрасывает учреждения без координат
// и сортирует по возрастанию расстояния. При равенстве расстояний порядок задается ID учреждения.
func Rank(point Point, facilities []*models.Facility) []models.FacilityMatch {
	matches := make([]models.FacilityMatch, 0, len(facilities))
	for _, f := range facilities {
		if f == nil || !f.HasLocation() {
			continue
		}
		matches = append(matches, models.FacilityMatch{
			Facility:       f,
			DistanceMeters: Distance(point, Point{Latitude: *f.Latitude, Longitude: *f.Longitude}),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].DistanceMeters != matches[j].DistanceMeters {
			return matches[i].DistanceMeters < matches[j].DistanceMeters
		}
		return matches[i].Facility.ID.String() < matches[j].Facility.ID.String()
	})
	return matches
}

// Top возвращает первые n результатов ранжирования
func Top(matches []models.FacilityMatch, n int) []models.FacilityMatch {
	if n < 0 {
		n = 0
	}
	if len(matches) > n {
		return matches[:n]
	}
	return matches
}

// Nearest возвращает ближайшее учреждение, если оно есть
func Nearest(matches []models.FacilityMatch) (models.FacilityMatch, bool) {
	if len(matches) == 0 {
		return models.FacilityMatch{}, false
	}
	return matches[0], true
}
