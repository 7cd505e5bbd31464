package geojson

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/worldwidewaves/wave-engine/internal/geo"
)

// Provider loads the event area from a GeoJSON file and serves it to the
// wave model. It implements wave.AreaProvider. The file is read lazily on
// first access and again on Reload.
type Provider struct {
	path   string
	logger *slog.Logger

	mu       sync.Mutex
	area     geo.Area
	bbox     geo.BoundingBox
	loaded   bool
	onReload []func()
}

func NewProvider(path string, logger *slog.Logger) *Provider {
	return &Provider{path: path, logger: logger}
}

// Polygons returns the loaded area, reading the file on first call.
func (p *Provider) Polygons(_ context.Context) (geo.Area, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureLoaded(); err != nil {
		return nil, err
	}
	return p.area, nil
}

// BoundingBox returns the bounding box of the loaded area. A file that
// parses to zero polygons is a data error, not transient unavailability.
func (p *Provider) BoundingBox(_ context.Context) (geo.BoundingBox, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.ensureLoaded(); err != nil {
		return geo.BoundingBox{}, err
	}
	return p.bbox, nil
}

// Reload re-reads the file, swaps the area atomically, and notifies the
// registered callbacks so geometry-derived caches get dropped. The previous
// area stays in place when the reload fails.
func (p *Provider) Reload(_ context.Context) error {
	area, bbox, err := p.load()
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.area = area
	p.bbox = bbox
	p.loaded = true
	callbacks := make([]func(), len(p.onReload))
	copy(callbacks, p.onReload)
	p.mu.Unlock()

	p.logger.Info("area reloaded", "path", p.path, "polygons", len(area))
	for _, fn := range callbacks {
		fn()
	}
	return nil
}

// OnReload registers fn to run after every successful Reload.
func (p *Provider) OnReload(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onReload = append(p.onReload, fn)
}

// ensureLoaded loads the file once. Callers hold p.mu.
func (p *Provider) ensureLoaded() error {
	if p.loaded {
		return nil
	}
	area, bbox, err := p.load()
	if err != nil {
		return err
	}
	p.area = area
	p.bbox = bbox
	p.loaded = true
	p.logger.Info("area loaded", "path", p.path, "polygons", len(area))
	return nil
}

func (p *Provider) load() (geo.Area, geo.BoundingBox, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, geo.BoundingBox{}, fmt.Errorf("read area file: %w", err)
	}

	area, err := geo.ParseGeoJSON(data)
	if err != nil {
		return nil, geo.BoundingBox{}, fmt.Errorf("parse area file %s: %w", p.path, err)
	}

	bbox, err := geo.AreaBbox(area)
	if err != nil {
		return nil, geo.BoundingBox{}, fmt.Errorf("area file %s: %w", p.path, err)
	}
	return area, bbox, nil
}
