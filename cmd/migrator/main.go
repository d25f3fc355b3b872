package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
)

var (
	log = logrus.New()

	down bool
)

func init() {
	flag.BoolVar(&down, "down", false, "roll back every migration instead of applying them")
}

func main() {
	flag.Parse()

	if config.Development() {
		log.SetLevel(logrus.DebugLevel)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	url, err := config.DbURL()
	if err != nil {
		return fmt.Errorf("no database configured: %w", err)
	}

	if down {
		migrator, err := database.NewMigrator(url, database.Migrations)
		if err != nil {
			return err
		}
		defer database.CloseMigrator(migrator)
		if err := migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}
		log.Info("migrations rolled back")
		return nil
	}

	migrator, err := database.Migrate(url, database.Migrations)
	if err != nil {
		return err
	}
	defer database.CloseMigrator(migrator)

	version, dirty, err := migrator.Version()
	if err != nil {
		return fmt.Errorf("failed to check migration version: %w", err)
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
	return nil
}
