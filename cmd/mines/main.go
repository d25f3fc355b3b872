package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/database"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/stats"
	"github.com/vancomm/minesweeper-engine/internal/store"
)

const statsBuffer = 64

var (
	log = logrus.New()

	configPath string
	playerName string
)

func init() {
	const usage = "config file path"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
	flag.StringVar(&playerName, "player", "", "name to record stats under")
}

func setupLogging(settings *config.Settings) error {
	level := logrus.InfoLevel
	if config.Development() {
		level = logrus.DebugLevel
	}
	for _, l := range []*logrus.Logger{log, mines.Log, stats.Log} {
		l.SetLevel(level)
		l.SetOutput(os.Stderr)
		l.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	}
	if settings.LogFile == "" {
		return nil
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   settings.LogFile,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	for _, l := range []*logrus.Logger{log, mines.Log, stats.Log} {
		l.AddHook(hook)
	}
	return nil
}

// setupBackend picks Postgres when a database is configured and the local
// sqlite store otherwise. The returned func releases the connection.
func setupBackend(ctx context.Context, settings *config.Settings) (stats.Backend, func(), error) {
	if config.HasDatabase() {
		pool, migrator, err := database.ConnectAndMigrate(ctx)
		if err != nil {
			return nil, nil, err
		}
		version, dirty, err := migrator.Version()
		if err == nil {
			log.WithFields(logrus.Fields{
				"version": version,
				"dirty":   dirty,
			}).Debug("database migrated")
		}
		if err := database.CloseMigrator(migrator); err != nil {
			log.WithError(err).Warn("unable to close migrator")
		}
		log.Info("recording stats to postgres")
		return stats.NewPostgresBackend(pool), pool.Close, nil
	}

	db, err := store.Open(settings.Store)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(ctx, db, "summary")
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Info("recording stats to ", settings.Store)
	return stats.NewLocalBackend(s), func() { db.Close() }, nil
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	settings, err := config.LoadSettings(configPath)
	if err != nil {
		log.Fatal("unable to load config: ", err)
	}
	if playerName != "" {
		settings.Player = playerName
	}
	if err := setupLogging(settings); err != nil {
		log.Fatal(err)
	}
	log.WithFields(settings.Fields()).Debug("config")

	backend, closeBackend, err := setupBackend(mainCtx, settings)
	if err != nil {
		log.Fatal("unable to set up stats backend: ", err)
	}
	defer closeBackend()

	writer := stats.NewWriter(backend, settings.Player, statsBuffer)
	game, err := mines.NewGame(settings.Params, mines.WithRecorder(writer))
	if err != nil {
		log.Fatal("unable to create game: ", err)
	}
	s := newSession(game, backend, settings.Player, os.Stdout)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		return writer.Run(gCtx)
	})
	g.Go(func() error {
		defer writer.Close()
		return s.run(gCtx, os.Stdin)
	})

	if err := g.Wait(); err != nil {
		log.Printf("exit reason: %s\n", err)
	}
}
