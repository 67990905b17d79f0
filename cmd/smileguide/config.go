package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/tinytelemetry/smileguide/internal/model"
)

// appConfig holds runtime configuration.
type appConfig struct {
	DBPath       string        `mapstructure:"db-path"`
	LogDir       string        `mapstructure:"log-dir"`
	LogLevel     string        `mapstructure:"log-level"`
	Language     string        `mapstructure:"language"`
	GeminiAPIKey string        `mapstructure:"gemini-api-key"`
	GeminiModel  string        `mapstructure:"gemini-model"`
	ImageTimeout time.Duration `mapstructure:"image-timeout"`
	ImageRetries uint64        `mapstructure:"image-retries"`
	APIEnabled   bool          `mapstructure:"api-enabled"`
	APIAddr      string        `mapstructure:"api-addr"`
	QueryTimeout time.Duration `mapstructure:"query-timeout"`
	StartPage    string        `mapstructure:"start-page"`

	BackupEnabled  bool          `mapstructure:"backup-enabled"`
	BackupDir      string        `mapstructure:"backup-dir"`
	BackupInterval time.Duration `mapstructure:"backup-interval"`
	BackupKeep     int           `mapstructure:"backup-keep"`

	ConfigPath string     `mapstructure:"-"`
	Page       model.Page `mapstructure:"-"`
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("SMILEGUIDE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("db-path", filepath.Join(home, ".local", "share", "smileguide", "smileguide.duckdb"))
	v.SetDefault("log-dir", filepath.Join(home, ".local", "state", "smileguide"))
	v.SetDefault("log-level", "info")
	v.SetDefault("language", string(model.DefaultLanguage))
	v.SetDefault("gemini-api-key", "")
	v.SetDefault("gemini-model", model.DefaultGeminiModel)
	v.SetDefault("image-timeout", model.DefaultImageTimeout)
	v.SetDefault("image-retries", model.DefaultImageRetries)
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-addr", model.DefaultAPIAddr)
	v.SetDefault("query-timeout", model.DefaultQueryTimeout)
	v.SetDefault("start-page", model.PageHome.String())
	v.SetDefault("backup-enabled", false)
	v.SetDefault("backup-dir", filepath.Join(home, ".local", "share", "smileguide", "backups"))
	v.SetDefault("backup-interval", 24*time.Hour)
	v.SetDefault("backup-keep", 7)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "smileguide", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if !model.Language(cfg.Language).Valid() {
		return cfg, fmt.Errorf("invalid language: %q (want one of en, af, xh, zu)", cfg.Language)
	}
	if cfg.QueryTimeout <= 0 {
		return cfg, fmt.Errorf("invalid query-timeout: %s", cfg.QueryTimeout)
	}
	if cfg.ImageTimeout <= 0 {
		return cfg, fmt.Errorf("invalid image-timeout: %s", cfg.ImageTimeout)
	}
	page, err := model.ParsePage(cfg.StartPage)
	if err != nil {
		return cfg, fmt.Errorf("invalid start-page: %w", err)
	}
	cfg.Page = page
	return cfg, nil
}
