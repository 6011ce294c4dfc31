package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	cityHall := Coordinate{Lat: 43.6532, Lng: -79.3832}
	convention := Coordinate{Lat: 43.6426, Lng: -79.3871}

	t.Run("known downtown toronto pair is about 1.2km", func(t *testing.T) {
		assert.InDelta(t, 1.2, DistanceKm(cityHall, convention), 0.2)
	})

	t.Run("identical points are zero apart", func(t *testing.T) {
		assert.Equal(t, 0.0, DistanceKm(cityHall, cityHall))
		assert.Equal(t, 0.0, DistanceKm(Coordinate{}, Coordinate{}))
	})

	t.Run("symmetric", func(t *testing.T) {
		pairs := [][2]Coordinate{
			{cityHall, convention},
			{{Lat: 43.5448, Lng: -80.2482}, {Lat: 43.7731, Lng: -79.2578}},
			{{Lat: -33.8688, Lng: 151.2093}, {Lat: 51.5074, Lng: -0.1278}},
			{{Lat: 89.9, Lng: 179.9}, {Lat: -89.9, Lng: -179.9}},
		}
		for _, p := range pairs {
			assert.InDelta(t, DistanceKm(p[0], p[1]), DistanceKm(p[1], p[0]), 1e-9)
		}
	})

	t.Run("one degree of latitude along a meridian", func(t *testing.T) {
		a := Coordinate{Lat: 10, Lng: 20}
		b := Coordinate{Lat: 11, Lng: 20}
		want := EarthRadiusKm * math.Pi / 180
		assert.InDelta(t, want, DistanceKm(a, b), 1e-6)
	})
}

func TestCoordinateValid(t *testing.T) {
	assert.True(t, Coordinate{Lat: 43.65, Lng: -79.38}.Valid())
	assert.True(t, Coordinate{Lat: -90, Lng: 180}.Valid())
	assert.False(t, Coordinate{Lat: 90.01, Lng: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lng: -180.5}.Valid())
	assert.False(t, Coordinate{Lat: math.NaN(), Lng: 0}.Valid())
	assert.False(t, Coordinate{Lat: 0, Lng: math.Inf(1)}.Valid())
}

func TestDirectionsURL(t *testing.T) {
	got := DirectionsURL(Coordinate{Lat: 43.6426, Lng: -79.3871})
	assert.Equal(t, "https://www.google.com/maps/dir/?api=1&destination=43.6426,-79.3871", got)
}
