package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port      string `yaml:"port"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type PostgresConfig struct {
	URL             string        `yaml:"url"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	DBName          string        `yaml:"dbname"`
	SSLMode         string        `yaml:"sslmode"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MigrationsPath  string        `yaml:"migrations_path"`
}

// DSN returns URL when set, otherwise a keyword/value connection string.
func (c PostgresConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type PaymentConfig struct {
	StripeAPIKey        string `yaml:"stripe_api_key"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret"`
	Currency            string `yaml:"currency"`
	FrontendStoreURL    string `yaml:"frontend_store_url"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type RedisConfig struct {
	URL       string        `yaml:"url"`
	LedgerTTL time.Duration `yaml:"ledger_ttl"`
}

type AMQPConfig struct {
	URL      string `yaml:"url"`
	Exchange string `yaml:"exchange"`
}

type Config struct {
	App      AppConfig      `yaml:"app"`
	Postgres PostgresConfig `yaml:"postgres"`
	Payment  PaymentConfig  `yaml:"payment"`
	Auth     AuthConfig     `yaml:"auth"`
	Redis    RedisConfig    `yaml:"redis"`
	AMQP     AMQPConfig     `yaml:"amqp"`
}

// NewConfig reads .env (if present), the YAML file named by CONFIG_PATH (if
// set) and finally the environment, which wins over both.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadYAML(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.App.Port = "8080"
	cfg.App.LogLevel = "info"
	cfg.App.LogFormat = "json"
	cfg.Postgres.Port = "5432"
	cfg.Postgres.SSLMode = "disable"
	cfg.Postgres.MaxConns = 10
	cfg.Postgres.MinConns = 2
	cfg.Postgres.MaxConnLifetime = 30 * time.Minute
	cfg.Postgres.MigrationsPath = "migrations"
	cfg.Payment.Currency = "usd"
	cfg.Redis.LedgerTTL = 7 * 24 * time.Hour
	cfg.AMQP.Exchange = "store.events"
	return cfg
}

func loadYAML(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file %s: %w", path, err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(cfg); err != nil {
		return fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.App.Port, "APP_PORT")
	setString(&cfg.App.LogLevel, "LOG_LEVEL")
	setString(&cfg.App.LogFormat, "LOG_FORMAT")

	setString(&cfg.Postgres.URL, "DATABASE_URL")
	setString(&cfg.Postgres.Host, "DB_HOST")
	setString(&cfg.Postgres.Port, "DB_PORT")
	setString(&cfg.Postgres.User, "DB_USER")
	setString(&cfg.Postgres.Password, "DB_PASSWORD")
	setString(&cfg.Postgres.DBName, "DB_NAME")
	setString(&cfg.Postgres.SSLMode, "DB_SSLMODE")
	setString(&cfg.Postgres.MigrationsPath, "MIGRATIONS_PATH")

	if err := setInt32(&cfg.Postgres.MaxConns, "DB_MAX_CONNS"); err != nil {
		return err
	}
	if err := setInt32(&cfg.Postgres.MinConns, "DB_MIN_CONNS"); err != nil {
		return err
	}
	if err := setDuration(&cfg.Postgres.MaxConnLifetime, "DB_MAX_CONN_LIFETIME"); err != nil {
		return err
	}

	setString(&cfg.Payment.StripeAPIKey, "STRIPE_API_KEY")
	setString(&cfg.Payment.StripeWebhookSecret, "STRIPE_WEBHOOK_SECRET")
	setString(&cfg.Payment.Currency, "PAYMENT_CURRENCY")
	setString(&cfg.Payment.FrontendStoreURL, "FRONTEND_STORE_URL")

	setString(&cfg.Auth.JWTSecret, "AUTH_JWT_SECRET")

	setString(&cfg.Redis.URL, "REDIS_URL")
	if err := setDuration(&cfg.Redis.LedgerTTL, "REDIS_LEDGER_TTL"); err != nil {
		return err
	}

	setString(&cfg.AMQP.URL, "AMQP_URL")
	setString(&cfg.AMQP.Exchange, "AMQP_EXCHANGE")

	return nil
}

// Validate reports the first missing required setting.
func (c *Config) Validate() error {
	if c.Postgres.URL == "" {
		required := map[string]string{
			"DB_HOST": c.Postgres.Host,
			"DB_USER": c.Postgres.User,
			"DB_NAME": c.Postgres.DBName,
		}
		for _, key := range []string{"DB_HOST", "DB_USER", "DB_NAME"} {
			if required[key] == "" {
				return fmt.Errorf("config: %s or DATABASE_URL is required", key)
			}
		}
	}
	if c.Payment.StripeAPIKey == "" {
		return errors.New("config: STRIPE_API_KEY is required")
	}
	if c.Payment.StripeWebhookSecret == "" {
		return errors.New("config: STRIPE_WEBHOOK_SECRET is required")
	}
	if c.Payment.FrontendStoreURL == "" {
		return errors.New("config: FRONTEND_STORE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: AUTH_JWT_SECRET is required")
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt32(dst *int32, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*dst = int32(n)
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	*dst = d
	return nil
}
