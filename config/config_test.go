package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"HTTP_ADDRESS", "REDIS_ADDR", "KAFKA_BROKERS", "JWT_SECRET", "LOG_LEVEL"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
http:
  address: ":9000"
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["localhost:9092"]
  booking_topic: bookings
  notifications_topic: notifications
booking:
  processing_delay_ms: 500
auth:
  jwt_secret: secret
log:
  level: debug
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTP.Address)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 500*time.Millisecond, cfg.Booking.ProcessingDelay())
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())

	// defaults
	assert.Equal(t, 2*time.Second, cfg.Booking.RecoveryDelay())
	assert.Equal(t, 24*time.Hour, cfg.Booking.TicketTTL())
	assert.Equal(t, 30*time.Second, cfg.Booking.PaymentLockTTL())
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL())
	assert.Equal(t, time.Second, cfg.Auth.SignInDelay())
	assert.Equal(t, "tripavista-notifier", cfg.Kafka.GroupID)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
redis:
  addr: "localhost:6379"
auth:
  jwt_secret: secret
`)
	t.Setenv("HTTP_ADDRESS", ":7000")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.HTTP.Address)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, slog.LevelWarn, cfg.Log.SlogLevel())
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "http: ["))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "redis:\n  addr: localhost:6379\n"))
	assert.ErrorContains(t, err, "jwt_secret")
}

func TestLogConfig_UnknownLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, LogConfig{Level: "loud"}.SlogLevel())
}
