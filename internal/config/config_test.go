package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("MINIO_ENDPOINT", "minio:9000")
	t.Setenv("TOKEN_DURATION", "")

	cfg := LoadConfig()

	assert.Equal(t, "secret", cfg.JWTSecretKey)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenDuration)
	assert.Equal(t, "http://minio:9000", cfg.MinIO.PublicURL)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxUploadSize)
}

func TestLoadRateLimit_Clamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	rl := LoadRateLimit()

	assert.Equal(t, 1, rl.Capacity)
	assert.Equal(t, 2*time.Second, rl.RefillInterval)
	assert.Equal(t, 10*time.Second, rl.TTL)
	assert.False(t, rl.TrustProxy)

	t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
	assert.True(t, LoadRateLimit().TrustProxy)
}

func TestParseMaxUploadSize(t *testing.T) {
	assert.Equal(t, int64(2048), parseMaxUploadSize("2048"))
	assert.Equal(t, int64(10*1024*1024), parseMaxUploadSize("abc"))
	assert.Equal(t, int64(10*1024*1024), parseMaxUploadSize("-5"))
}
