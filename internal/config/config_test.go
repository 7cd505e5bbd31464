package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "area.geojson", cfg.AreaGeoJSONPath)
	assert.Equal(t, "default", cfg.EventID)
	assert.Equal(t, 340.0, cfg.WaveSpeed)
	assert.Equal(t, "east", cfg.WaveDirection)
	assert.True(t, cfg.WaveStartTime.IsZero())
	assert.True(t, cfg.WaveEndTime.IsZero())
	assert.Equal(t, time.Hour, cfg.ApproxDuration)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "wave-observations", cfg.KafkaTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("AREA_GEOJSON_PATH", "/data/brittany.geojson")
	t.Setenv("EVENT_ID", "brittany-2026")
	t.Setenv("WAVE_SPEED_MPS", "12.5")
	t.Setenv("WAVE_DIRECTION", "west")
	t.Setenv("WAVE_START_TIME", "2026-06-21T12:00:00Z")
	t.Setenv("WAVE_END_TIME", "2026-06-21T18:00:00Z")
	t.Setenv("APPROX_DURATION", "6h")
	t.Setenv("TIMEZONE", "Europe/Paris")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_TOPIC", "custom-observations")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/data/brittany.geojson", cfg.AreaGeoJSONPath)
	assert.Equal(t, "brittany-2026", cfg.EventID)
	assert.Equal(t, 12.5, cfg.WaveSpeed)
	assert.Equal(t, "west", cfg.WaveDirection)
	assert.Equal(t, time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC), cfg.WaveStartTime.UTC())
	assert.Equal(t, time.Date(2026, 6, 21, 18, 0, 0, 0, time.UTC), cfg.WaveEndTime.UTC())
	assert.Equal(t, 6*time.Hour, cfg.ApproxDuration)
	assert.Equal(t, "Europe/Paris", cfg.Timezone)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-observations", cfg.KafkaTopic)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidSpeed(t *testing.T) {
	t.Setenv("WAVE_SPEED_MPS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAVE_SPEED_MPS")
}

func TestLoad_InvalidDirection(t *testing.T) {
	t.Setenv("WAVE_DIRECTION", "north")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAVE_DIRECTION")
}

func TestLoad_InvalidStartTime(t *testing.T) {
	t.Setenv("WAVE_START_TIME", "june 21st")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAVE_START_TIME")
}

func TestLoad_EndBeforeStart(t *testing.T) {
	t.Setenv("WAVE_START_TIME", "2026-06-21T12:00:00Z")
	t.Setenv("WAVE_END_TIME", "2026-06-21T11:00:00Z")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WAVE_END_TIME")
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
