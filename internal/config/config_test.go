package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Equal(t, 5*time.Second, cfg.RedisDialTimeout)
	assert.Equal(t, 3*time.Second, cfg.RedisReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.RedisWriteTimeout)
	assert.Equal(t, int64(100), cfg.MinInitialBalance)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_POOL_SIZE", "25")
	t.Setenv("REDIS_DIAL_TIMEOUT", "10s")
	t.Setenv("MIN_INITIAL_BALANCE", "500")

	cfg := Load()

	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 25, cfg.RedisPoolSize)
	assert.Equal(t, 10*time.Second, cfg.RedisDialTimeout)
	assert.Equal(t, int64(500), cfg.MinInitialBalance)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REDIS_POOL_SIZE", "lots")
	t.Setenv("REDIS_READ_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Equal(t, 3*time.Second, cfg.RedisReadTimeout)
}
