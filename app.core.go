package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"
)

type AppProvider interface {
	Run() error
}

type App struct {
	logger   *zap.Logger
	config   *Config
	console  *Console
	cleanups []func() error
}

// NewApp provides an instance of App wired to the given operator streams.
func NewApp(in io.Reader, out io.Writer) (AppProvider, error) {
	config, err := LoadAndInitConfigs(DefaultConfigFile, DefaultEnvFile, GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app configuration: %s", err)
	}

	// ensure the logs folder exists and Setup the logging module.
	if err = os.MkdirAll(config.LogFolder, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create logging folder: %s", err)
	}
	clock := NewClock(config.IsProduction)
	logWriter := NewRSyncWriter(config, clock)
	logger, flusher := SetupLogging(config, logWriter, NewTickClock(clock))

	journal, err := NewJournal(logger, config)
	if err != nil {
		_ = flusher()
		_ = logWriter.Close()
		return nil, fmt.Errorf("failed to setup the %s journal: %s", config.Journal, err)
	}

	ids := NewIDsHandler()
	service := NewLibraryService(logger, clock, ids, NewLibrary(clock), journal)
	if config.SeedDemoData {
		service.Seed(context.Background())
	}

	return &App{
		logger:  logger,
		config:  config,
		console: NewConsole(logger, ids, in, out, service),
		cleanups: []func() error{
			journal.Close,
			flusher,
			logWriter.Close,
		},
	}, nil
}

// NewJournal opens the journal selected by the configuration.
func NewJournal(logger *zap.Logger, config *Config) (Journaler, error) {
	switch config.Journal {
	case JournalBolt:
		client, err := GetBoltDBClient(config)
		if err != nil {
			return nil, err
		}
		return NewBoltJournal(logger, &config.BoltDB, client), nil
	case JournalRedis:
		client, err := GetRedisClient(config)
		if err != nil {
			return nil, err
		}
		return NewRedisJournal(logger, client, config.Redis.JournalKey), nil
	default:
		return NewNopJournal(), nil
	}
}

// Run starts the operator session and returns once it ends.
func (app *App) Run() error {
	defer app.Clean()
	app.logger.Info("library session starting",
		zap.String("app.journal", app.config.Journal),
		zap.Bool("app.container", IsAppRunningInDocker()),
		zap.String("app.runtime", runtime.Version()),
		zap.String("app.platform", runtime.GOOS+"/"+runtime.GOARCH),
	)
	err := app.console.Run(context.Background())
	app.logger.Info("library session stopped", zap.Error(err))
	return err
}

// Clean calls all registered cleanups functions.
func (app *App) Clean() {
	for _, f := range app.cleanups {
		if err := f(); err != nil {
			fmt.Fprintln(os.Stderr, "error during cleanup: ", err)
		}
	}
}
