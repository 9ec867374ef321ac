package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/config"
)

type Postgres struct {
	Pool *pgxpool.Pool
	cfg  config.PostgresConfig
}

func New(ctx context.Context, cfg config.PostgresConfig) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres connstr: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	log.Info().Str("host", poolConfig.ConnConfig.Host).Str("database", poolConfig.ConnConfig.Database).Msg("Connected to PostgreSQL")
	return &Postgres{Pool: dbPool, cfg: cfg}, nil
}

func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
		log.Info().Msg("Database connection closed")
	}
}

// MigrateUp applies every pending migration from cfg.MigrationsPath.
func (p *Postgres) MigrateUp() error {
	m, err := p.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		log.Info().Msg("No new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info().Msg("New migrations applied successfully")
	return nil
}

// MigrateDown rolls back the given number of migrations.
func (p *Postgres) MigrateDown(steps int) error {
	m, err := p.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	log.Info().Int("steps", steps).Msg("Migrations rolled back")
	return nil
}

func (p *Postgres) migrator() (*migrate.Migrate, error) {
	m, err := migrate.New("file://"+p.cfg.MigrationsPath, migrationDSN(p.Pool.Config(), p.cfg.SSLMode))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migration instance: %w", err)
	}
	return m, nil
}

func migrationDSN(poolCfg *pgxpool.Config, sslMode string) string {
	conn := poolCfg.ConnConfig
	u := url.URL{
		Scheme: "pgx5",
		User:   url.UserPassword(conn.User, conn.Password),
		Host:   conn.Host + ":" + strconv.Itoa(int(conn.Port)),
		Path:   "/" + conn.Database,
	}
	if sslMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{sslMode}}.Encode()
	}
	return u.String()
}
