package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fajarws/schoolcore/internal/config"
	"github.com/fajarws/schoolcore/internal/db"
	"github.com/fajarws/schoolcore/internal/migrations"
	"github.com/fajarws/schoolcore/internal/pkg/logger"
	"github.com/fajarws/schoolcore/internal/seed"
)

// schoolctl applies the schema and seed data for one of the two applications.
// Each app targets its own database, so the app name selects which migration
// directory is applied.
func main() {
	var (
		configPath = flag.String("config", "config.yml", "path to the configuration file")
		app        = flag.String("app", "", "application schema to manage: attendance or permit")
		doSeed     = flag.Bool("seed", false, "seed default data after migrating (permit app only)")
	)
	flag.Parse()

	if *app != "attendance" && *app != "permit" {
		fmt.Fprintln(os.Stderr, "usage: schoolctl -app attendance|permit [-config config.yml] [-seed]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format == "pretty",
		Output: os.Stderr,
	})

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	migrationDir := filepath.Join(cfg.Migrations.Path, *app)
	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateDir(ctx, migrationDir); err != nil {
		logger.Error().Err(err).Str("dir", migrationDir).Msg("Migration failed")
		os.Exit(1)
	}
	logger.Info().Str("app", *app).Msg("Schema is up to date")

	if *doSeed {
		if *app != "permit" {
			logger.Warn().Msg("Seeding is only defined for the permit app, skipping")
			return
		}
		if err := seed.CreateDefaultData(ctx, database.Pool); err != nil {
			logger.Error().Err(err).Msg("Seeding failed")
			os.Exit(1)
		}
		logger.Info().Msg("Seed data is in place")
	}
}
