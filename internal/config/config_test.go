package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "store_admin")
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("FRONTEND_STORE_URL", "http://localhost:3001")
	t.Setenv("AUTH_JWT_SECRET", "secret")
}

func TestNewConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "usd", cfg.Payment.Currency)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
	assert.Equal(t, 30*time.Minute, cfg.Postgres.MaxConnLifetime)
	assert.Equal(t, "store.events", cfg.AMQP.Exchange)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=store_admin sslmode=disable", cfg.Postgres.DSN())
}

func TestNewConfig_YAMLThenEnv(t *testing.T) {
	setRequiredEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
app:
  port: "9090"
payment:
  currency: eur
postgres:
  max_conns: 4
  max_conn_lifetime: 5m
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PAYMENT_CURRENCY", "gbp")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "gbp", cfg.Payment.Currency, "environment overrides the file")
	assert.Equal(t, int32(4), cfg.Postgres.MaxConns)
	assert.Equal(t, 5*time.Minute, cfg.Postgres.MaxConnLifetime)
}

func TestNewConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STRIPE_WEBHOOK_SECRET", "")

	_, err := config.NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_WEBHOOK_SECRET")
}

func TestNewConfig_BadInteger(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_MAX_CONNS", "many")

	_, err := config.NewConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_CONNS")
}

func TestDSN_PrefersURL(t *testing.T) {
	cfg := config.PostgresConfig{URL: "postgres://u:p@db:5432/app", Host: "ignored"}
	assert.Equal(t, "postgres://u:p@db:5432/app", cfg.DSN())
}
