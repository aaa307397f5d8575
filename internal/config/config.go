// Package config loads service settings from .env files, environment
// variables and flags, in that order of precedence.
package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// DB holds Postgres connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN renders the pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Pass),
		net.JoinHostPort(d.Host, d.Port),
		d.Name,
	)
}

// Store selects the document store backend.
type Store struct {
	Backend string // "postgres" or "memory"
}

// Escalation holds the timer settings of the lifecycle engine.
type Escalation struct {
	Delay time.Duration
}

// Donation holds the donation window settings.
type Donation struct {
	TTL time.Duration
}

// Delivery holds dispatch settings.
type Delivery struct {
	EstimatedDuration time.Duration
}

// Geocode holds the geocoder gateway settings.
type Geocode struct {
	BaseURL     string
	UserAgent   string
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Timeout     time.Duration
}

// Kafka holds the status feed settings. An empty broker list disables
// the feed.
type Kafka struct {
	Brokers []string
	Topic   string
	GroupID string
}

// RateLimit holds API throttling settings.
type RateLimit struct {
	Enabled bool
	Limit   int
	Window  time.Duration
}

// Config stores service settings.
type Config struct {
	Port       int
	DB         DB
	Store      Store
	Escalation Escalation
	Donation   Donation
	Delivery   Delivery
	Geocode    Geocode
	Kafka      Kafka
	RateLimit  RateLimit
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := &Config{
		Port:       DefaultPort(),
		DB:         DefaultDB(),
		Store:      DefaultStore(),
		Escalation: DefaultEscalation(),
		Donation:   DefaultDonation(),
		Delivery:   DefaultDelivery(),
		Geocode:    DefaultGeocode(),
		RateLimit:  DefaultRateLimit(),
	}

	var err error
	if cfg.Port, err = envInt("PORT", cfg.Port); err != nil {
		return nil, err
	}

	cfg.DB.Host = envStr("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = envStr("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = envStr("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = envStr("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = envStr("POSTGRES_DB", cfg.DB.Name)

	cfg.Store.Backend = envStr("STORE_BACKEND", cfg.Store.Backend)

	if cfg.Escalation.Delay, err = envDuration("ESCALATION_DELAY", cfg.Escalation.Delay); err != nil {
		return nil, err
	}
	if cfg.Donation.TTL, err = envDuration("DONATION_TTL", cfg.Donation.TTL); err != nil {
		return nil, err
	}
	if cfg.Delivery.EstimatedDuration, err = envDuration("DELIVERY_ESTIMATED_DURATION", cfg.Delivery.EstimatedDuration); err != nil {
		return nil, err
	}

	cfg.Geocode.BaseURL = envStr("GEOCODER_BASE_URL", cfg.Geocode.BaseURL)
	cfg.Geocode.UserAgent = envStr("GEOCODER_USER_AGENT", cfg.Geocode.UserAgent)
	if cfg.Geocode.MaxAttempts, err = envInt("GEOCODER_MAX_ATTEMPTS", cfg.Geocode.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.Geocode.BaseDelay, err = envDuration("GEOCODER_BASE_DELAY", cfg.Geocode.BaseDelay); err != nil {
		return nil, err
	}
	if cfg.Geocode.MaxDelay, err = envDuration("GEOCODER_MAX_DELAY", cfg.Geocode.MaxDelay); err != nil {
		return nil, err
	}
	if cfg.Geocode.Timeout, err = envDuration("GEOCODER_TIMEOUT", cfg.Geocode.Timeout); err != nil {
		return nil, err
	}

	if v := envStr("KAFKA_BROKERS", ""); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	cfg.Kafka.Topic = envStr("KAFKA_TOPIC", cfg.Kafka.Topic)
	cfg.Kafka.GroupID = envStr("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	if cfg.RateLimit.Enabled, err = envBool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Limit, err = envInt("RATE_LIMIT", cfg.RateLimit.Limit); err != nil {
		return nil, err
	}
	if cfg.RateLimit.Window, err = envDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if _, err := strconv.Atoi(c.DB.Port); err != nil {
		return fmt.Errorf("invalid postgres port: %q", c.DB.Port)
	}
	switch c.Store.Backend {
	case "postgres", "memory":
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store.Backend)
	}
	if c.Escalation.Delay <= 0 {
		return fmt.Errorf("escalation delay must be positive, got %s", c.Escalation.Delay)
	}
	if c.Donation.TTL <= 0 {
		return fmt.Errorf("donation ttl must be positive, got %s", c.Donation.TTL)
	}
	return nil
}

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return d, nil
}

func envBool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, v)
	}
	return b, nil
}
