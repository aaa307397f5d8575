package config_test

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"service-foodrescue/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	t.Cleanup(func() {
		pflag.CommandLine = old
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER",
		"POSTGRES_PASSWORD", "POSTGRES_DB", "STORE_BACKEND",
		"ESCALATION_DELAY", "DONATION_TTL", "DELIVERY_ESTIMATED_DURATION",
		"GEOCODER_BASE_URL", "GEOCODER_USER_AGENT", "GEOCODER_MAX_ATTEMPTS",
		"GEOCODER_BASE_DELAY", "GEOCODER_MAX_DELAY", "GEOCODER_TIMEOUT",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_GROUP_ID",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT", "RATE_LIMIT_WINDOW",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "127.0.0.1", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, "memory", cfg.Store.Backend)
	require.Equal(t, 10*time.Minute, cfg.Escalation.Delay)
	require.Equal(t, 24*time.Hour, cfg.Donation.TTL)
	require.Equal(t, 30*time.Minute, cfg.Delivery.EstimatedDuration)
	require.Equal(t, 4, cfg.Geocode.MaxAttempts)
	require.Empty(t, cfg.Kafka.Brokers)
	require.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("ESCALATION_DELAY", "2m")
	t.Setenv("DONATION_TTL", "12h")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("KAFKA_TOPIC", "alert-status")
	t.Setenv("KAFKA_GROUP_ID", "rescue")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "db", cfg.DB.Host)
	require.Equal(t, "15432", cfg.DB.Port)
	require.Equal(t, "postgres", cfg.Store.Backend)
	require.Equal(t, 2*time.Minute, cfg.Escalation.Delay)
	require.Equal(t, 12*time.Hour, cfg.Donation.TTL)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "alert-status", cfg.Kafka.Topic)
	require.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)
	t.Setenv("PORT", "70000")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidPostgresPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)
	t.Setenv("POSTGRES_PORT", "not-a-number")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_UnknownStoreBackend(t *testing.T) {
	resetFlags(t)
	clearEnv(t)
	t.Setenv("STORE_BACKEND", "etcd")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidEscalationDelay(t *testing.T) {
	resetFlags(t)
	clearEnv(t)
	t.Setenv("ESCALATION_DELAY", "soon")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_FlagsParseError(t *testing.T) {
	oldArgs := os.Args
	oldCommandLine := pflag.CommandLine

	defer func() {
		os.Args = oldArgs
		pflag.CommandLine = oldCommandLine
	}()

	clearEnv(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pflag.CommandLine = fs
	os.Args = []string{"cmd", "--port=not-a-number"}

	cfg, err := config.Load()

	require.Error(t, err)
	require.Nil(t, cfg)
	require.Contains(t, err.Error(), "parse flags")
}

func TestDSN(t *testing.T) {
	d := config.DB{Host: "db", Port: "5432", User: "u", Pass: "p@ss", Name: "rescue"}
	require.Equal(t, "postgres://u:p%40ss@db:5432/rescue", d.DSN())
}
