package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/nhle/project-tracker/internal/app"
	"github.com/nhle/project-tracker/internal/i18n"
	"github.com/nhle/project-tracker/internal/logging"
	"github.com/nhle/project-tracker/internal/model"
	"github.com/nhle/project-tracker/internal/store"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "tracker:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("tracker", pflag.ContinueOnError)
	configPath := flags.String("config", model.DefaultConfigPath(), "path to the YAML config file")
	flags.String("db", model.DefaultDatabasePath(), "path to the SQLite database")
	flags.String("locale", model.DefaultLocale, "display locale (es, en)")
	flags.String("log-level", model.DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.String("log-file", model.DefaultLogPath(), "log file; empty disables logging")
	report := flags.Bool("report", false, "print every project's progress and exit")
	writeConfig := flags.Bool("write-config", false, "save the effective configuration to --config and exit")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := model.LoadConfig(*configPath, flags)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *writeConfig {
		if err := model.SaveConfig(*configPath, cfg); err != nil {
			return err
		}
		fmt.Println(*configPath)
		return nil
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("initialising logger: %w", err)
	}
	defer logger.Sync()

	catalog, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("loading translations: %w", err)
	}
	loc := catalog.Localizer(cfg.Display.Locale)

	s, err := store.NewSQLiteStore(cfg.Database.Path, logger)
	if err != nil {
		logger.Error("opening database failed", zap.String("path", cfg.Database.Path), zap.Error(err))
		return fmt.Errorf("opening database: %w", err)
	}
	defer s.Close()

	if *report {
		return app.WriteReport(context.Background(), os.Stdout, s, loc)
	}

	logger.Info("starting",
		zap.String("database", cfg.Database.Path),
		zap.String("locale", loc.Locale()))

	p := tea.NewProgram(app.New(s, loc, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", zap.Error(err))
		return err
	}
	return nil
}
