package geo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolygonsToGeoJSON(t *testing.T) {
	area := Area{
		{
			{Lat: 0, Lng: 0},
			{Lat: 0, Lng: 10},
			{Lat: 10, Lng: 10},
			{Lat: 0, Lng: 0},
		},
	}

	out, err := PolygonsToGeoJSON(area)
	require.NoError(t, err)

	var fc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &fc))
	assert.Equal(t, "FeatureCollection", fc["type"])

	features := fc["features"].([]any)
	require.Len(t, features, 1)

	// Coordinates are (longitude, latitude) per the GeoJSON convention.
	assert.Contains(t, out, `[10,0]`)
	assert.Contains(t, out, `"type":"Polygon"`)
}

func TestParseGeoJSON(t *testing.T) {
	t.Run("polygon feature", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {},
				"geometry": {
					"type": "Polygon",
					"coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]
				}
			}]
		}`)

		area, err := ParseGeoJSON(data)
		require.NoError(t, err)
		require.Len(t, area, 1)
		assert.Equal(t, Position{Lat: 0, Lng: 0}, area[0][0])
		assert.Equal(t, Position{Lat: 0, Lng: 10}, area[0][1])
		assert.Equal(t, area[0][0], area[0][len(area[0])-1], "ring is closed")
	})

	t.Run("multipolygon feature", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {},
				"geometry": {
					"type": "MultiPolygon",
					"coordinates": [
						[[[0,0],[1,0],[1,1],[0,0]]],
						[[[5,5],[6,5],[6,6],[5,5]]]
					]
				}
			}]
		}`)

		area, err := ParseGeoJSON(data)
		require.NoError(t, err)
		assert.Len(t, area, 2)
	})

	t.Run("open ring is closed on parse", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {},
				"geometry": {
					"type": "Polygon",
					"coordinates": [[[0,0],[10,0],[10,10]]]
				}
			}]
		}`)

		area, err := ParseGeoJSON(data)
		require.NoError(t, err)
		require.Len(t, area, 1)
		assert.Len(t, area[0], 4)
		assert.Equal(t, area[0][0], area[0][3])
	})

	t.Run("rejects non feature collection", func(t *testing.T) {
		_, err := ParseGeoJSON([]byte(`{"type":"Feature"}`))
		require.Error(t, err)
	})

	t.Run("rejects unsupported geometry", func(t *testing.T) {
		data := []byte(`{
			"type": "FeatureCollection",
			"features": [{
				"type": "Feature",
				"properties": {},
				"geometry": {"type": "Point", "coordinates": [0,0]}
			}]
		}`)
		_, err := ParseGeoJSON(data)
		require.Error(t, err)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, err := ParseGeoJSON([]byte(`{not json`))
		require.Error(t, err)
	})
}

func TestGeoJSONExportOfSplitResult(t *testing.T) {
	result := SplitPolygonByLongitude(square, 5)

	leftJSON, err := PolygonsToGeoJSON(result.Left)
	require.NoError(t, err)
	rightJSON, err := PolygonsToGeoJSON(result.Right)
	require.NoError(t, err)

	parsedLeft, err := ParseGeoJSON([]byte(leftJSON))
	require.NoError(t, err)
	assert.Equal(t, result.Left, parsedLeft)

	parsedRight, err := ParseGeoJSON([]byte(rightJSON))
	require.NoError(t, err)
	assert.Equal(t, result.Right, parsedRight)
}
