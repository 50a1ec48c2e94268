package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Redis   RedisConfig   `yaml:"redis"`
	Kafka   KafkaConfig   `yaml:"kafka"`
	Booking BookingConfig `yaml:"booking"`
	Auth    AuthConfig    `yaml:"auth"`
	Log     LogConfig     `yaml:"log"`
}

type HTTPConfig struct {
	Address            string   `yaml:"address"`
	SwaggerDir         string   `yaml:"swagger_dir"`
	CORSOrigins        []string `yaml:"cors_origins"`
	ShutdownTimeoutSec int      `yaml:"shutdown_timeout_seconds"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	BookingTopic       string   `yaml:"booking_topic"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type BookingConfig struct {
	ProcessingDelayMs     int `yaml:"processing_delay_ms"`
	RecoveryDelayMs       int `yaml:"recovery_delay_ms"`
	TicketTTLMinutes      int `yaml:"ticket_ttl_minutes"`
	PaymentLockTTLSeconds int `yaml:"payment_lock_ttl_seconds"`
}

func (b BookingConfig) ProcessingDelay() time.Duration {
	return time.Duration(b.ProcessingDelayMs) * time.Millisecond
}

func (b BookingConfig) RecoveryDelay() time.Duration {
	return time.Duration(b.RecoveryDelayMs) * time.Millisecond
}

func (b BookingConfig) TicketTTL() time.Duration {
	return time.Duration(b.TicketTTLMinutes) * time.Minute
}

func (b BookingConfig) PaymentLockTTL() time.Duration {
	return time.Duration(b.PaymentLockTTLSeconds) * time.Second
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes"`
	SignInDelayMs   int    `yaml:"sign_in_delay_ms"`
}

func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

func (a AuthConfig) SignInDelay() time.Duration {
	return time.Duration(a.SignInDelayMs) * time.Millisecond
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel falls back to info for unknown level names.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// LoadConfig reads the YAML file at path. A .env file next to the process,
// if present, is loaded into the environment first, and HTTP_ADDRESS,
// REDIS_ADDR, KAFKA_BROKERS, JWT_SECRET and LOG_LEVEL override the file.
func LoadConfig(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		c.HTTP.Address = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		var brokers []string
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
		c.Kafka.Brokers = brokers
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.HTTP.ShutdownTimeoutSec == 0 {
		c.HTTP.ShutdownTimeoutSec = 5
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "tripavista-notifier"
	}
	if c.Booking.ProcessingDelayMs == 0 {
		c.Booking.ProcessingDelayMs = 2000
	}
	if c.Booking.RecoveryDelayMs == 0 {
		c.Booking.RecoveryDelayMs = 2000
	}
	if c.Booking.TicketTTLMinutes == 0 {
		c.Booking.TicketTTLMinutes = 24 * 60
	}
	if c.Booking.PaymentLockTTLSeconds == 0 {
		c.Booking.PaymentLockTTLSeconds = 30
	}
	if c.Auth.TokenTTLMinutes == 0 {
		c.Auth.TokenTTLMinutes = 60
	}
	if c.Auth.SignInDelayMs == 0 {
		c.Auth.SignInDelayMs = 1000
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret (or JWT_SECRET) is required")
	}
	if c.Redis.Addr == "" {
		return errors.New("redis.addr (or REDIS_ADDR) is required")
	}
	return nil
}
