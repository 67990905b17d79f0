package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tinytelemetry/smileguide/internal/auth"
	"github.com/tinytelemetry/smileguide/internal/backup"
	"github.com/tinytelemetry/smileguide/internal/duckdb"
	"github.com/tinytelemetry/smileguide/internal/httpserver"
	"github.com/tinytelemetry/smileguide/internal/i18n"
	"github.com/tinytelemetry/smileguide/internal/imagegen"
	"github.com/tinytelemetry/smileguide/internal/logger"
	"github.com/tinytelemetry/smileguide/internal/model"
	"github.com/tinytelemetry/smileguide/internal/startup"
	"github.com/tinytelemetry/smileguide/internal/tui"
	"go.uber.org/zap"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/smileguide/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("SmileGuide - Dental Health Companion\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg appConfig) error {
	log, closeLog, err := logger.New(cfg.LogDir, logger.ParseLevel(cfg.LogLevel))
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer closeLog()

	log.Info("smileguide: starting",
		zap.String("version", version),
		zap.String("config", cfg.ConfigPath),
		zap.String("db", cfg.DBPath))

	store, err := duckdb.NewStore(cfg.DBPath, cfg.QueryTimeout)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	schema, err := store.SchemaStatus(context.Background())
	if err != nil {
		return fmt.Errorf("reading schema status: %w", err)
	}
	log.Info("smileguide: schema",
		zap.Int("version", schema.Current),
		zap.Int("latest", schema.Latest))

	backups, err := backup.NewManager(store, backup.Config{
		Enabled:  cfg.BackupEnabled,
		Interval: cfg.BackupInterval,
		Dir:      cfg.BackupDir,
		KeepLast: cfg.BackupKeep,
	}, log.Named("backup"))
	if err != nil {
		return err
	}
	if backups != nil {
		backups.Start()
		defer backups.Stop()
	}

	identity := auth.NewProvider(store, store, log.Named("auth"))
	generator := imagegen.NewGeminiGenerator(imagegen.Config{
		APIKey:     cfg.GeminiAPIKey,
		Model:      cfg.GeminiModel,
		Timeout:    cfg.ImageTimeout,
		MaxRetries: cfg.ImageRetries,
	}, log.Named("imagegen"))
	bootstrap := startup.NewAvatarBootstrap(store, generator, log.Named("startup"))

	board := httpserver.NewBoard()
	if cfg.APIEnabled {
		srv := httpserver.NewServer(cfg.APIAddr, board, store, log.Named("httpserver"))
		if err := srv.Start(); err != nil {
			return fmt.Errorf("starting status API: %w", err)
		}
		defer func() {
			if err := srv.Stop(); err != nil {
				log.Warn("smileguide: stopping status API", zap.Error(err))
			}
		}()
	}

	app := tui.NewApp(tui.Deps{
		Identity:     identity,
		Bootstrap:    bootstrap,
		Translations: i18n.Load,
		Values:       store,
		Symptoms:     store,
		Publisher:    board,
		Log:          log.Named("tui"),
		Language:     model.Language(cfg.Language),
		StartPage:    cfg.Page,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("SmileGuide requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	log.Info("smileguide: exiting")
	return nil
}
