package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Area and event definition.
	AreaGeoJSONPath string
	EventID         string
	WaveSpeed       float64 // meters per second
	WaveDirection   string  // "east" or "west"
	WaveStartTime   time.Time
	WaveEndTime     time.Time
	ApproxDuration  time.Duration
	Timezone        string

	// Optional Kafka snapshot publishing.
	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	speed, err := parseSpeed()
	if err != nil {
		return nil, err
	}

	startTime, err := parseTime("WAVE_START_TIME")
	if err != nil {
		return nil, err
	}
	endTime, err := parseTime("WAVE_END_TIME")
	if err != nil {
		return nil, err
	}

	approxDuration, err := parseDuration("APPROX_DURATION", "1h")
	if err != nil {
		return nil, err
	}

	kafkaEnabled := os.Getenv("KAFKA_ENABLED") == "true"

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		AreaGeoJSONPath: envOrDefault("AREA_GEOJSON_PATH", "area.geojson"),
		EventID:         envOrDefault("EVENT_ID", "default"),
		WaveSpeed:       speed,
		WaveDirection:   envOrDefault("WAVE_DIRECTION", "east"),
		WaveStartTime:   startTime,
		WaveEndTime:     endTime,
		ApproxDuration:  approxDuration,
		Timezone:        envOrDefault("TIMEZONE", "UTC"),

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "wave-observations"),
	}

	if cfg.AreaGeoJSONPath == "" {
		return nil, errors.New("AREA_GEOJSON_PATH is required")
	}
	if cfg.WaveDirection != "east" && cfg.WaveDirection != "west" {
		return nil, errors.New("WAVE_DIRECTION must be \"east\" or \"west\"")
	}
	if !cfg.WaveEndTime.IsZero() && !cfg.WaveStartTime.IsZero() && !cfg.WaveEndTime.After(cfg.WaveStartTime) {
		return nil, errors.New("WAVE_END_TIME must be after WAVE_START_TIME")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseTime(key string) (time.Time, error) {
	s := os.Getenv(key)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s: must be RFC 3339", key)
	}
	return t, nil
}

func parseSpeed() (float64, error) {
	s := envOrDefault("WAVE_SPEED_MPS", "340")
	speed, err := strconv.ParseFloat(s, 64)
	if err != nil || speed <= 0 {
		return 0, errors.New("invalid WAVE_SPEED_MPS")
	}
	return speed, nil
}
