package geo

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/emergency_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func facility(id string, lat, lon float64) *models.Facility {
	return &models.Facility{ID: uuid.MustParse(id), Name: id, Latitude: &lat, Longitude: &lon}
}

func TestRank_SortsByDistance(t *testing.T) {
	point := Point{Latitude: 6.4541, Longitude: 3.3947}
	far := facility("00000000-0000-0000-0000-000000000001", 6.4300, 3.5850)
	near := facility("00000000-0000-0000-0000-000000000002", 6.4544, 3.4316)
	mid := facility("00000000-0000-0000-0000-000000000003", 6.4385, 3.4735)

	matches := Rank(point, []*models.Facility{far, near, mid})

	require.Len(t, matches, 3)
	assert.Equal(t, near.ID, matches[0].Facility.ID)
	assert.Equal(t, mid.ID, matches[1].Facility.ID)
	assert.Equal(t, far.ID, matches[2].Facility.ID)
	assert.Greater(t, matches[0].DistanceMeters, 0.0)
}

func TestRank_SkipsFacilitiesWithoutCoordinates(t *testing.T) {
	point := Point{Latitude: 6.4541, Longitude: 3.3947}
	lat := 6.44
	noLon := &models.Facility{ID: uuid.New(), Latitude: &lat}
	noCoords := &models.Facility{ID: uuid.New()}
	ok := facility("00000000-0000-0000-0000-000000000009", 6.4385, 3.4735)

	matches := Rank(point, []*models.Facility{noLon, noCoords, nil, ok})

	require.Len(t, matches, 1)
	assert.Equal(t, ok.ID, matches[0].Facility.ID)
}

func TestRank_TiesBrokenByFacilityID(t *testing.T) {
	point := Point{Latitude: 0, Longitude: 0}
	b := facility("00000000-0000-0000-0000-00000000000b", 1, 0)
	a := facility("00000000-0000-0000-0000-00000000000a", 1, 0)
	c := facility("00000000-0000-0000-0000-00000000000c", 1, 0)

	first := Rank(point, []*models.Facility{b, c, a})
	second := Rank(point, []*models.Facility{c, a, b})

	require.Len(t, first, 3)
	assert.Equal(t, a.ID, first[0].Facility.ID)
	assert.Equal(t, b.ID, first[1].Facility.ID)
	assert.Equal(t, c.ID, first[2].Facility.ID)
	assert.Equal(t, first, second)
}

func TestRank_EmptyDirectory(t *testing.T) {
	matches := Rank(Point{Latitude: 1, Longitude: 1}, nil)

	assert.Empty(t, matches)
	_, ok := Nearest(matches)
	assert.False(t, ok)
}

func TestTop(t *testing.T) {
	matches := make([]models.FacilityMatch, 7)

	assert.Len(t, Top(matches, 5), 5)
	assert.Len(t, Top(matches, 10), 7)
	assert.Empty(t, Top(matches, -1))
}
