package main

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/DukeofStars/dlo/pkg/pipeline"
)

type App struct {
	configFile   string
	reportsDir   string
	fleetsDir    string
	docsDir      string
	databaseFile string
	verbose      bool
}

func NewApp() *App {
	return &App{}
}

func (a *App) Run() error {
	logger, err := a.buildLogger()
	if err != nil {
		return errors.Wrap(err, "could not build logger")
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	if cfg.ReportsDir == "" {
		return errors.New("no reports directory configured")
	}

	runner := pipeline.New(cfg, logger)
	if _, err := runner.Run(context.Background()); err != nil {
		return errors.Wrap(err, "pipeline failed")
	}

	return nil
}

func (a *App) buildLogger() (*zap.Logger, error) {
	if a.verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadConfig reads the config file if one was given; command-line paths win
// over the file either way.
func (a *App) loadConfig() (pipeline.Config, error) {
	cfg := pipeline.Config{}

	if a.configFile != "" {
		loaded, err := pipeline.LoadConfig(a.configFile)
		if err != nil {
			return cfg, errors.Wrap(err, "could not load config")
		}
		cfg = loaded
	}

	if a.reportsDir != "" {
		cfg.ReportsDir = a.reportsDir
	}
	if a.fleetsDir != "" {
		cfg.FleetsDir = a.fleetsDir
	}
	if a.docsDir != "" {
		cfg.DocsDir = a.docsDir
	}
	if a.databaseFile != "" {
		cfg.DatabaseFile = a.databaseFile
	}

	return cfg, nil
}
