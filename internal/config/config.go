// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aboiyar/AirBnB-clone/internal/model"
)

// Storage engine names accepted in storage_type.
const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageBadger = "badger"
)

// DefaultPath is where the config file lives unless HBNB_CONFIG says otherwise.
const DefaultPath = "./data/config.yaml"

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = DefaultPath
)

// bootstrapEnv holds the settings that must be known before the config file
// is read.
type bootstrapEnv struct {
	ConfigPath string `env:"HBNB_CONFIG"`
	EnvFile    string `env:"HBNB_ENV_FILE" envDefault:".env"`
}

// Default returns the configuration written on first start.
func Default() *model.Config {
	return &model.Config{
		StorageType:  StorageFile,
		FilePath:     "file.json",
		DatabaseDir:  "./data",
		DatabaseFile: "hbnb.db",
		BadgerDir:    "./data/badger",
		LogFolder:    "./logs",
		CommandLog:   "commands.log",
		ErrorLog:     "errors.log",
		InfoLog:      "info.log",
		HistoryFile:  "./data/.hbnb_history",
		Prompt:       "(hbnb) ",
	}
}

// ConfigLoad loads the configuration from the .env file, the config file
// and the environment, in that order. If the config file doesn't exist, it
// creates a default one.
func ConfigLoad() error {
	var boot bootstrapEnv
	if err := env.Parse(&boot); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if err := loadDotEnv(boot.EnvFile); err != nil {
		return err
	}
	// .env may have supplied HBNB_CONFIG
	if err := env.Parse(&boot); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if boot.ConfigPath != "" {
		configPath = boot.ConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		return err
	}
	currentConfig = cfg
	return nil
}

// Load reads the config file at path, creating it with defaults when it is
// missing, and applies HBNB_* environment overrides on top.
func Load(path string) (*model.Config, error) {
	// Ensure the data directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err := save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := unmarshal(path, data, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	fillDefaults(cfg)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigSave saves the provided configuration to the current config file.
func ConfigSave(cfg *model.Config) error {
	return save(configPath, cfg)
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// ConfigPath returns the file the configuration was loaded from.
func ConfigPath() string {
	return configPath
}

// Validate rejects configurations the storage layer cannot open.
func Validate(cfg *model.Config) error {
	switch cfg.StorageType {
	case StorageFile:
		if cfg.FilePath == "" {
			return fmt.Errorf("file_path is required for %q storage", StorageFile)
		}
	case StorageSQLite:
		if cfg.DatabaseFile == "" {
			return fmt.Errorf("database_file is required for %q storage", StorageSQLite)
		}
	case StorageBadger:
		if cfg.BadgerDir == "" {
			return fmt.Errorf("badger_dir is required for %q storage", StorageBadger)
		}
	default:
		return fmt.Errorf("unsupported storage type: %q", cfg.StorageType)
	}
	return nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// fillDefaults restores settings a hand-edited file left empty.
func fillDefaults(cfg *model.Config) {
	def := Default()
	if cfg.StorageType == "" {
		cfg.StorageType = def.StorageType
	}
	if cfg.LogFolder == "" {
		cfg.LogFolder = def.LogFolder
	}
	if cfg.CommandLog == "" {
		cfg.CommandLog = def.CommandLog
	}
	if cfg.ErrorLog == "" {
		cfg.ErrorLog = def.ErrorLog
	}
	if cfg.InfoLog == "" {
		cfg.InfoLog = def.InfoLog
	}
	if cfg.Prompt == "" {
		cfg.Prompt = def.Prompt
	}
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func unmarshal(path string, data []byte, cfg *model.Config) error {
	if isYAML(path) {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func save(path string, cfg *model.Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}
