package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nursery/pkg/logger"
)

func lookupFrom(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "Rosa", cfg.Stats.Species)
	assert.Equal(t, 5.0, cfg.Stats.MonocotPrice)
	assert.Equal(t, 100.0, cfg.Stats.BulkThreshold)
	assert.False(t, cfg.TLS())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(lookupFrom(map[string]string{
		"LOG_LEVEL":           "debug",
		"NURSERY_ADDR":        ":9000",
		"NURSERY_TLS_CERT":    "certs/server.crt",
		"NURSERY_TLS_KEY":     "certs/server.key",
		"REDIS_ADDR":          "localhost:6379",
		"REDIS_DB":            "2",
		"SESSION_TTL":         "30m",
		"TRACE_PROBABILITY":   "0.25",
		"STATS_SPECIES":       "Tulipa",
		"STATS_MONOCOT_PRICE": "12.5",
		"BULK_THRESHOLD":      "250",
	}))
	require.NoError(t, err)

	assert.Equal(t, logger.LevelDebug, cfg.LogLevel)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.TLS())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 0.25, cfg.TraceProbability)
	assert.Equal(t, "Tulipa", cfg.Stats.Species)
	assert.Equal(t, 12.5, cfg.Stats.MonocotPrice)
	assert.Equal(t, 250.0, cfg.Stats.BulkThreshold)
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad ttl", map[string]string{"SESSION_TTL": "soon"}, "SESSION_TTL"},
		{"bad redis db", map[string]string{"REDIS_DB": "one"}, "REDIS_DB"},
		{"bad threshold", map[string]string{"BULK_THRESHOLD": "lots"}, "BULK_THRESHOLD"},
		{"bad price", map[string]string{"STATS_MONOCOT_PRICE": "$5"}, "STATS_MONOCOT_PRICE"},
		{"cert without key", map[string]string{"NURSERY_TLS_CERT": "a.crt"}, "NURSERY_TLS_KEY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(lookupFrom(tt.env))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
