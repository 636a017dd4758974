package utils

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	tests := []struct {
		name                   string
		lat1, lon1, lat2, lon2 float64
		expected               float64
		delta                  float64
	}{
		{"same point", 40.7128, -74.0060, 40.7128, -74.0060, 0, 1e-9},
		{"one degree of longitude on the equator", 0, 0, 0, 1, 111.195, 0.01},
		{"one degree of latitude", 0, 0, 1, 0, 111.195, 0.01},
		{"Statue of Liberty to Federal Hall", 40.6892, -74.0445, 40.7074, -74.0104, 3.48, 0.05},
		{"antipodes", 0, 0, 0, 180, math.Pi * EarthRadiusKm, 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineDistance(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.expected, got, tt.delta)
		})
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	a := HaversineDistance(40.7061, -73.9969, 51.5007, -0.1246)
	b := HaversineDistance(51.5007, -0.1246, 40.7061, -73.9969)
	assert.InDelta(t, a, b, 1e-9)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(90, 180))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.False(t, ValidateCoordinates(90.0001, 0))
	assert.False(t, ValidateCoordinates(0, -180.5))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
}

func TestValidateRadius(t *testing.T) {
	assert.True(t, ValidateRadius(0, 0))
	assert.True(t, ValidateRadius(120, 0))
	assert.True(t, ValidateRadius(500, 500))
	assert.False(t, ValidateRadius(500.1, 500))
	assert.False(t, ValidateRadius(-0.001, 0))
	assert.False(t, ValidateRadius(math.Inf(1), 0))
	assert.False(t, ValidateRadius(math.NaN(), 0))
}

func TestBoundingBoxForRadius_ContainsCircle(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	centers := [][2]float64{
		{40.7128, -74.0060},
		{0, 0},
		{0, 179.9},
		{-33.86, 151.21},
		{89.5, 10},
		{-89.9, -45},
	}
	radii := []float64{0, 1, 25, 120, 800, 5000}

	for _, c := range centers {
		for _, r := range radii {
			box := BoundingBoxForRadius(c[0], c[1], r)
			for i := 0; i < 200; i++ {
				lat := c[0] + (rng.Float64()*2-1)*(r/111.0+0.5)
				lon := c[1] + (rng.Float64()*2-1)*180
				lat = math.Max(-90, math.Min(90, lat))
				if lon > 180 {
					lon -= 360
				}
				if lon < -180 {
					lon += 360
				}
				if HaversineDistance(c[0], c[1], lat, lon) <= r {
					assert.Truef(t, box.Contains(lat, lon),
						"center=%v radius=%v point=(%v,%v) box=%+v", c, r, lat, lon, box)
				}
			}
		}
	}
}

func TestBoundingBoxForRadius_Shapes(t *testing.T) {
	t.Run("regular box is narrow", func(t *testing.T) {
		box := BoundingBoxForRadius(40.7128, -74.0060, 10)
		assert.Less(t, box.MaxLat-box.MinLat, 0.2)
		assert.Less(t, box.MaxLon-box.MinLon, 0.3)
	})

	t.Run("antimeridian widens longitude", func(t *testing.T) {
		box := BoundingBoxForRadius(0, 179.99, 50)
		assert.Equal(t, -180.0, box.MinLon)
		assert.Equal(t, 180.0, box.MaxLon)
	})

	t.Run("pole widens longitude and clamps latitude", func(t *testing.T) {
		box := BoundingBoxForRadius(89.9, 0, 50)
		assert.Equal(t, 90.0, box.MaxLat)
		assert.Equal(t, -180.0, box.MinLon)
	})

	t.Run("huge radius is the whole world", func(t *testing.T) {
		box := BoundingBoxForRadius(10, 10, 30000)
		assert.Equal(t, -90.0, box.MinLat)
		assert.Equal(t, 90.0, box.MaxLat)
	})
}
