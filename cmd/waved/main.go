// Command waved runs the wave observation service: it loads the event area
// from GeoJSON, models the wave front, and serves status, polygons, and
// position endpoints over HTTP with optional WebSocket streaming and Kafka
// snapshot publishing.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/worldwidewaves/wave-engine/internal/adapter/geojson"
	"github.com/worldwidewaves/wave-engine/internal/adapter/httpserver"
	kafkaadapter "github.com/worldwidewaves/wave-engine/internal/adapter/kafka"
	"github.com/worldwidewaves/wave-engine/internal/adapter/ws"
	"github.com/worldwidewaves/wave-engine/internal/config"
	"github.com/worldwidewaves/wave-engine/internal/observability"
	"github.com/worldwidewaves/wave-engine/internal/observe"
	"github.com/worldwidewaves/wave-engine/internal/wave"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	direction, err := wave.ParseDirection(cfg.WaveDirection)
	if err != nil {
		logger.Error("invalid wave direction", "error", err)
		os.Exit(1)
	}

	event := wave.Event{
		ID:             cfg.EventID,
		Speed:          cfg.WaveSpeed,
		Direction:      direction,
		StartTime:      cfg.WaveStartTime,
		EndTime:        cfg.WaveEndTime,
		ApproxDuration: cfg.ApproxDuration,
		Timezone:       cfg.Timezone,
	}

	clock := clockwork.NewRealClock()
	provider := geojson.NewProvider(cfg.AreaGeoJSONPath, logger)

	w := wave.NewLinear(event, provider, clock, logger)
	provider.OnReload(func() {
		w.ClearDurationCache()
		metrics.AreaReloads.Inc()
	})

	warming := wave.NewWarming(w, clock)
	position := observe.NewPositionValue()
	engine := observe.NewEngine(w, warming, position, clock, logger, metrics)

	hub := ws.NewHub(logger)
	engine.OnSnapshot(func(snap observe.Snapshot) { hub.Broadcast(snap) })

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var publisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		publisher = kafkaadapter.NewPublisher(cfg, logger, metrics)
		engine.OnSnapshot(publisher.Enqueue)
		go func() {
			if err := publisher.Run(ctx); err != nil {
				logger.Error("snapshot publisher error", "error", err)
			}
		}()
		logger.Info("kafka snapshot publishing enabled", "topic", cfg.KafkaTopic)
	}

	srv := httpserver.NewServer(cfg.HTTPAddr, engine, position, hub, logger)

	// SIGHUP reloads the area file in place.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			if err := provider.Reload(ctx); err != nil {
				logger.Error("area reload failed", "error", err)
			}
		}
	}()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	engine.Start()
	logger.Info("wave engine started",
		"event_id", event.ID,
		"direction", event.Direction.String(),
		"speed_mps", event.Speed,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	engine.Stop()
	hub.Close()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
