// Package config loads runtime settings from the environment, optionally
// seeded from .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"nursery/pkg/logger"
	"nursery/pkg/nursery"
)

// Config holds every setting the nursery binary reads.
type Config struct {
	ServiceName string
	LogLevel    logger.Level

	Addr    string
	TLSCert string
	TLSKey  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	OTELHost         string
	TraceProbability float64

	Stats nursery.StatsOptions
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		ServiceName:      "nursery",
		LogLevel:         logger.LevelInfo,
		Addr:             ":8080",
		SessionTTL:       time.Hour,
		TraceProbability: 1.0,
		Stats:            nursery.DefaultStatsOptions(),
	}
}

// Load reads .env and .env.local when present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from lookup, falling back to Defaults.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Defaults()
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	cfg.ServiceName = get("SERVICE_NAME", cfg.ServiceName)
	cfg.LogLevel = logger.ParseLevel(get("LOG_LEVEL", ""), cfg.LogLevel)
	cfg.Addr = get("NURSERY_ADDR", cfg.Addr)
	cfg.TLSCert = get("NURSERY_TLS_CERT", "")
	cfg.TLSKey = get("NURSERY_TLS_KEY", "")
	cfg.RedisAddr = get("REDIS_ADDR", "")
	cfg.RedisPassword = get("REDIS_PASSWORD", "")
	cfg.OTELHost = get("OTEL_HOST", "")
	cfg.Stats.Species = get("STATS_SPECIES", cfg.Stats.Species)

	var err error
	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return Config{}, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.SessionTTL, err = time.ParseDuration(get("SESSION_TTL", cfg.SessionTTL.String())); err != nil {
		return Config{}, fmt.Errorf("SESSION_TTL: %w", err)
	}
	if cfg.TraceProbability, err = parseFloat(get("TRACE_PROBABILITY", ""), cfg.TraceProbability); err != nil {
		return Config{}, fmt.Errorf("TRACE_PROBABILITY: %w", err)
	}
	if cfg.Stats.MonocotPrice, err = parseFloat(get("STATS_MONOCOT_PRICE", ""), cfg.Stats.MonocotPrice); err != nil {
		return Config{}, fmt.Errorf("STATS_MONOCOT_PRICE: %w", err)
	}
	if cfg.Stats.BulkThreshold, err = parseFloat(get("BULK_THRESHOLD", ""), cfg.Stats.BulkThreshold); err != nil {
		return Config{}, fmt.Errorf("BULK_THRESHOLD: %w", err)
	}

	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return Config{}, fmt.Errorf("NURSERY_TLS_CERT and NURSERY_TLS_KEY must be set together")
	}
	return cfg, nil
}

// TLS reports whether the server should listen with TLS.
func (c Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func parseFloat(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.ParseFloat(raw, 64)
}
