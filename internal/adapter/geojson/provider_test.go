package geojson

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

const squareGeoJSON = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"properties": {},
		"geometry": {
			"type": "Polygon",
			"coordinates": [[[0,0],[10,0],[10,10],[0,10],[0,0]]]
		}
	}]
}`

const widerSquareGeoJSON = `{
	"type": "FeatureCollection",
	"features": [{
		"type": "Feature",
		"properties": {},
		"geometry": {
			"type": "Polygon",
			"coordinates": [[[0,0],[20,0],[20,10],[0,10],[0,0]]]
		}
	}]
}`

func writeArea(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "area.geojson")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func newTestProvider(path string) *Provider {
	return NewProvider(path, slog.New(slog.DiscardHandler))
}

func TestProviderLoadsLazily(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(writeArea(t, squareGeoJSON))

	area, err := p.Polygons(ctx)
	require.NoError(t, err)
	require.Len(t, area, 1)

	bbox, err := p.BoundingBox(ctx)
	require.NoError(t, err)
	assert.Equal(t, geo.Position{Lat: 0, Lng: 0}, bbox.SouthWest)
	assert.Equal(t, geo.Position{Lat: 10, Lng: 10}, bbox.NorthEast)
}

func TestProviderMissingFile(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(filepath.Join(t.TempDir(), "missing.geojson"))

	_, err := p.Polygons(ctx)
	require.Error(t, err)
}

func TestProviderInvalidFile(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(writeArea(t, `{"type":"Feature"}`))

	_, err := p.BoundingBox(ctx)
	require.Error(t, err)
}

func TestProviderReload(t *testing.T) {
	ctx := context.Background()
	path := writeArea(t, squareGeoJSON)
	p := newTestProvider(path)

	bbox, err := p.BoundingBox(ctx)
	require.NoError(t, err)
	assert.Equal(t, 10.0, bbox.NorthEast.Lng)

	var notified int
	p.OnReload(func() { notified++ })

	require.NoError(t, os.WriteFile(path, []byte(widerSquareGeoJSON), 0o600))
	require.NoError(t, p.Reload(ctx))
	assert.Equal(t, 1, notified)

	bbox, err = p.BoundingBox(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, bbox.NorthEast.Lng)
}

func TestProviderReloadFailureKeepsPreviousArea(t *testing.T) {
	ctx := context.Background()
	path := writeArea(t, squareGeoJSON)
	p := newTestProvider(path)

	_, err := p.Polygons(ctx)
	require.NoError(t, err)

	var notified int
	p.OnReload(func() { notified++ })

	require.NoError(t, os.WriteFile(path, []byte(`broken`), 0o600))
	require.Error(t, p.Reload(ctx))
	assert.Zero(t, notified)

	area, err := p.Polygons(ctx)
	require.NoError(t, err)
	assert.Len(t, area, 1)
}
