package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "movies")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("ACCESS_TOKEN_TTL_MIN", "15")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "7")
	t.Setenv("BCRYPT_COST", "10")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15, cfg.AccessTTLMin)
	assert.Equal(t, uint32(25000), cfg.SeatPriceCents)
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay)
	assert.InDelta(t, 0.9, cfg.PaymentSuccessRate, 1e-9)
	assert.Equal(t, 24*time.Hour, cfg.AvailabilityInterval)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SEAT_PRICE_CENTS", "30000")
	t.Setenv("PAYMENT_DELAY", "10ms")
	t.Setenv("PAYMENT_SUCCESS_RATE", "0.5")
	t.Setenv("AVAILABILITY_INTERVAL", "1h")

	cfg := Load()
	assert.Equal(t, uint32(30000), cfg.SeatPriceCents)
	assert.Equal(t, 10*time.Millisecond, cfg.PaymentDelay)
	assert.InDelta(t, 0.5, cfg.PaymentSuccessRate, 1e-9)
	assert.Equal(t, time.Hour, cfg.AvailabilityInterval)
}

func TestParseRate(t *testing.T) {
	assert.InDelta(t, 0.25, parseRate("0.25"), 1e-9)
	assert.InDelta(t, 0, parseRate("-3"), 1e-9)
	assert.InDelta(t, 1, parseRate("4.2"), 1e-9)
	// unparseable falls back to the stock rate
	assert.InDelta(t, 0.9, parseRate("ninety percent"), 1e-9)
}

func TestLoadCacheConfigDefaults(t *testing.T) {
	cfg := LoadCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.True(t, cfg.Methods["GET"])
	assert.False(t, cfg.Methods["POST"])
	assert.Equal(t, 60*time.Second, cfg.TTL)
	assert.Equal(t, "moviecache", cfg.Prefix)
}

func TestLoadRateLimitConfigNormalizes(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-5")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 1, cfg.RefillTokens)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	// TTL is raised to cover several refills
	assert.Equal(t, 10*time.Second, cfg.TTL)
}
