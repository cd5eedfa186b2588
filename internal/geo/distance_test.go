package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	p := Point{Latitude: 6.4541, Longitude: 3.3947}

	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	a := Point{Latitude: 6.4541, Longitude: 3.3947}
	b := Point{Latitude: 6.4385, Longitude: 3.4735}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistance_KnownValue(t *testing.T) {
	// Один градус дуги меридиана = R * π / 180
	a := Point{Latitude: 0, Longitude: 0}
	b := Point{Latitude: 1, Longitude: 0}

	assert.InDelta(t, 111194.93, Distance(a, b), 0.5)
}

func TestDistance_LagosFacility(t *testing.T) {
	a := Point{Latitude: 6.4541, Longitude: 3.3947}
	b := Point{Latitude: 6.4385, Longitude: 3.4735}

	d := Distance(a, b)
	assert.Greater(t, d, 8800.0)
	assert.Less(t, d, 9100.0)
}

func TestDistance_MonotonicAlongMeridian(t *testing.T) {
	origin := Point{Latitude: 6.4541, Longitude: 3.3947}

	prev := 0.0
	for step := 1; step <= 50; step++ {
		p := Point{Latitude: origin.Latitude + float64(step)*0.5, Longitude: origin.Longitude}
		d := Distance(origin, p)
		assert.Greater(t, d, prev, "step %d", step)
		prev = d
	}
}

func TestPoint_Valid(t *testing.T) {
	assert.True(t, Point{Latitude: 6.4541, Longitude: 3.3947}.Valid())
	assert.True(t, Point{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, Point{Latitude: 91, Longitude: 0}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: -180.5}.Valid())
	assert.False(t, Point{Latitude: math.NaN(), Longitude: 0}.Valid())
}
