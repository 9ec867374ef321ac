package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/auth"
	"github.com/vasiliy-maslov/ecommerce-microservices/store-admin/internal/config"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("store-admin failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "store-admin",
		Usage: "store administration and checkout backend",
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "migrate",
						Usage: "apply pending migrations before serving",
					},
				},
				Action: serveCommand,
			},
			{
				Name:  "migrate",
				Usage: "manage the database schema",
				Subcommands: []*cli.Command{
					{
						Name:   "up",
						Usage:  "apply all pending migrations",
						Action: migrateUpCommand,
					},
					{
						Name:  "down",
						Usage: "roll back migrations",
						Flags: []cli.Flag{
							&cli.IntFlag{
								Name:  "steps",
								Value: 1,
								Usage: "number of migrations to roll back",
							},
						},
						Action: migrateDownCommand,
					},
				},
			},
			{
				Name:  "token",
				Usage: "issue a bearer token for local testing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Usage:    "user id placed in the sub claim",
						Required: true,
					},
					&cli.DurationFlag{
						Name:  "ttl",
						Value: 24 * time.Hour,
						Usage: "token lifetime",
					},
					&cli.StringFlag{
						Name:    "secret",
						Usage:   "HS256 signing secret",
						EnvVars: []string{"AUTH_JWT_SECRET"},
					},
				},
				Action: tokenCommand,
			},
		},
	}
}

// loadConfig reads configuration and configures the global logger from it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cfg.App)
	return cfg, nil
}

func setupLogging(cfg config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.With().Str("service", "store-admin").Logger()
}

func tokenCommand(c *cli.Context) error {
	secret := c.String("secret")
	if secret == "" {
		return errors.New("AUTH_JWT_SECRET or --secret is required")
	}

	token, err := auth.NewAuthenticator(secret).IssueToken(c.String("user"), c.Duration("ttl"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, token)
	return err
}
