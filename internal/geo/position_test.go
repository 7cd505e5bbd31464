package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonBbox(t *testing.T) {
	t.Run("empty polygon is a contract violation", func(t *testing.T) {
		_, err := PolygonBbox(Polygon{})
		require.ErrorIs(t, err, ErrEmptyPolygon)
	})

	t.Run("single point collapses to that point", func(t *testing.T) {
		p := Position{Lat: 48.85, Lng: 2.35}
		bbox, err := PolygonBbox(Polygon{p})
		require.NoError(t, err)
		assert.Equal(t, p, bbox.SouthWest)
		assert.Equal(t, p, bbox.NorthEast)
	})

	t.Run("min and max tracked independently", func(t *testing.T) {
		polygon := Polygon{
			{Lat: 0, Lng: 4},
			{Lat: -2, Lng: 10},
			{Lat: 7, Lng: -3},
			{Lat: 1, Lng: 1},
		}
		bbox, err := PolygonBbox(polygon)
		require.NoError(t, err)
		assert.Equal(t, Position{Lat: -2, Lng: -3}, bbox.SouthWest)
		assert.Equal(t, Position{Lat: 7, Lng: 10}, bbox.NorthEast)
	})
}

func TestAreaBbox(t *testing.T) {
	t.Run("union of polygon boxes", func(t *testing.T) {
		area := Area{
			{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}},
			{{Lat: -5, Lng: 3}, {Lat: 2, Lng: 8}},
		}
		bbox, err := AreaBbox(area)
		require.NoError(t, err)
		assert.Equal(t, Position{Lat: -5, Lng: 0}, bbox.SouthWest)
		assert.Equal(t, Position{Lat: 2, Lng: 8}, bbox.NorthEast)
	})

	t.Run("empty area fails", func(t *testing.T) {
		_, err := AreaBbox(Area{})
		require.ErrorIs(t, err, ErrEmptyPolygon)
	})
}

func TestBoundingBoxWidestLatitude(t *testing.T) {
	tests := []struct {
		name     string
		sw, ne   float64
		expected float64
	}{
		{"spans equator", -10, 20, 0},
		{"northern hemisphere", 40, 50, 40},
		{"southern hemisphere", -50, -40, -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BoundingBox{
				SouthWest: Position{Lat: tt.sw, Lng: 0},
				NorthEast: Position{Lat: tt.ne, Lng: 10},
			}
			assert.Equal(t, tt.expected, b.WidestLatitude())
		})
	}
}

func TestIsPointOnLineSegment(t *testing.T) {
	seg := Segment{Start: Position{Lat: 0, Lng: 0}, End: Position{Lat: 10, Lng: 10}}

	tests := []struct {
		name     string
		point    Position
		expected bool
	}{
		{"midpoint", Position{Lat: 5, Lng: 5}, true},
		{"start endpoint", Position{Lat: 0, Lng: 0}, true},
		{"end endpoint", Position{Lat: 10, Lng: 10}, true},
		{"on carrier line beyond segment", Position{Lat: 11, Lng: 11}, false},
		{"off the line", Position{Lat: 5, Lng: 6}, false},
		{"within tolerance of the line", Position{Lat: 5, Lng: 5 + 1e-12}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPointOnLineSegment(tt.point, seg))
		})
	}
}
