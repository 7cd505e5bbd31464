package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/worldwidewaves/wave-engine/internal/geo"
	"github.com/worldwidewaves/wave-engine/internal/wave"
)

// Observer is the observation-engine query surface the server exposes.
type Observer interface {
	CheckReadiness(ctx context.Context) error
	WavePolygons(ctx context.Context) *wave.WavePolygons
	AllNumbers(ctx context.Context) wave.Numbers
	Status() (wave.Status, bool)
	Progression() (float64, bool)
	UserIsInArea() (bool, bool)
	TimeBeforeHit() (time.Duration, bool)
	PredictedHitTime() (time.Time, bool)
	PositionRatio() (float64, bool)
	IsUserWarmingInProgress() (bool, bool)
	HasUserBeenHitInCurrentPosition(ctx context.Context) bool
}

// PositionSink receives observer position updates from transport.
type PositionSink interface {
	Update(pos geo.Position)
}

// Server exposes health, readiness, metrics, and wave query endpoints.
type Server struct {
	httpServer *http.Server
	observer   Observer
	position   PositionSink
	logger     *slog.Logger
}

// NewServer creates the HTTP server. wsHandler serves the streaming endpoint
// and may be nil when WebSocket support is disabled.
func NewServer(addr string, observer Observer, position PositionSink, wsHandler http.Handler, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		observer: observer,
		position: position,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /wave/status", s.handleStatus)
	mux.HandleFunc("GET /wave/numbers", s.handleNumbers)
	mux.HandleFunc("GET /wave/polygons", s.handlePolygons)
	mux.HandleFunc("POST /position", s.handlePosition)
	if wsHandler != nil {
		mux.Handle("GET /ws", wsHandler)
	}

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.observer.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// statusResponse mirrors the engine observables. Fields stay null until the
// corresponding value is known.
type statusResponse struct {
	Status            *string  `json:"status"`
	Progression       *float64 `json:"progression"`
	UserInArea        *bool    `json:"user_in_area"`
	TimeBeforeHitMS   *int64   `json:"time_before_hit_ms"`
	HitTime           *string  `json:"hit_time"`
	PositionRatio     *float64 `json:"position_ratio"`
	WarmingInProgress *bool    `json:"warming_in_progress"`
	HasBeenHit        bool     `json:"has_been_hit"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var resp statusResponse

	if status, ok := s.observer.Status(); ok {
		str := status.String()
		resp.Status = &str
	}
	if p, ok := s.observer.Progression(); ok {
		resp.Progression = &p
	}
	if in, ok := s.observer.UserIsInArea(); ok {
		resp.UserInArea = &in
	}
	if tbh, ok := s.observer.TimeBeforeHit(); ok {
		ms := tbh.Milliseconds()
		resp.TimeBeforeHitMS = &ms
	}
	if hit, ok := s.observer.PredictedHitTime(); ok {
		str := hit.Format(time.RFC3339)
		resp.HitTime = &str
	}
	if ratio, ok := s.observer.PositionRatio(); ok {
		resp.PositionRatio = &ratio
	}
	if warming, ok := s.observer.IsUserWarmingInProgress(); ok {
		resp.WarmingInProgress = &warming
	}
	resp.HasBeenHit = s.observer.HasUserBeenHitInCurrentPosition(r.Context())

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNumbers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.observer.AllNumbers(r.Context()))
}

// polygonsResponse carries the traversed and remaining halves as embedded
// GeoJSON feature collections.
type polygonsResponse struct {
	Timestamp time.Time       `json:"timestamp"`
	Traversed json.RawMessage `json:"traversed"`
	Remaining json.RawMessage `json:"remaining"`
}

func (s *Server) handlePolygons(w http.ResponseWriter, r *http.Request) {
	snapshot := s.observer.WavePolygons(r.Context())
	if snapshot == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	traversed, err := geo.PolygonsToGeoJSON(snapshot.Traversed)
	if err != nil {
		s.logger.Error("polygon export failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "polygon export failed"})
		return
	}
	remaining, err := geo.PolygonsToGeoJSON(snapshot.Remaining)
	if err != nil {
		s.logger.Error("polygon export failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "polygon export failed"})
		return
	}

	writeJSON(w, http.StatusOK, polygonsResponse{
		Timestamp: snapshot.Timestamp,
		Traversed: json.RawMessage(traversed),
		Remaining: json.RawMessage(remaining),
	})
}

type positionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	if req.Lat < -90 || req.Lat > 90 || req.Lng < -180 || req.Lng > 180 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "coordinates out of range"})
		return
	}

	s.position.Update(geo.Position{Lat: req.Lat, Lng: req.Lng})
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
