// Package config provides functionality for loading, saving, and managing
// application configuration settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"filmscape/local-app/src/pkg/model"
)

// envPrefix prefixes every environment override, e.g. FILMSCAPE_USER_STORE_TYPE.
const envPrefix = "FILMSCAPE_"

// Global variables to store the current configuration and its file path.
var (
	currentConfig *model.Config
	configPath    = "./data/config.json"
)

// ConfigDefault returns the configuration written on first run.
func ConfigDefault() *model.Config {
	return &model.Config{
		DataDir:             "./data",
		DatasetFile:         "films.csv",
		UserStoreType:       "json",
		UserFile:            "users.json",
		SQLiteFile:          "filmscape.db",
		BadgerDir:           "badger",
		RedisAddr:           "localhost:6379",
		RedisKey:            "filmscape:users",
		PasswordPolicy:      "plain",
		LogFolder:           "./logs",
		CommandLog:          "commands.log",
		ErrorLog:            "errors.log",
		InfoLog:             "info.log",
		LogLevel:            "info",
		HistoryFile:         "./data/history.txt",
		DefaultUser:         "guest",
		DefaultUserActive:   false,
		DefaultUserPassword: "guest",
	}
}

// ConfigPathSet changes the file used by ConfigLoad and ConfigSave.
func ConfigPathSet(path string) {
	if path != "" {
		configPath = path
	}
}

// ConfigPath returns the file used by ConfigLoad and ConfigSave.
func ConfigPath() string {
	return configPath
}

// ConfigLoad loads the configuration from the config file, JSON or YAML by extension.
// If the file doesn't exist, it creates a default configuration.
// A .env file next to the working directory and FILMSCAPE_* variables override file values.
func ConfigLoad() error {
	// Missing .env is the common case
	_ = godotenv.Load()

	// Ensure the data directory exists
	dataDir := filepath.Dir(configPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if the config file exists, if not create a default one
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		defaultConfig := ConfigDefault()
		if err := ConfigSave(defaultConfig); err != nil {
			return fmt.Errorf("failed to create default config: %w", err)
		}
		currentConfig = defaultConfig
		applyEnv(currentConfig)
		return nil
	}

	// Read and parse the existing config file
	file, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("error reading config file: %w", err)
	}

	// Missing keys keep their defaults
	cfg := ConfigDefault()
	if isYAML(configPath) {
		err = yaml.Unmarshal(file, cfg)
	} else {
		err = json.Unmarshal(file, cfg)
	}
	if err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}

	applyEnv(cfg)
	if err := ConfigValidate(cfg); err != nil {
		return err
	}
	currentConfig = cfg
	return nil
}

// ConfigSave saves the provided configuration to the config file.
func ConfigSave(cfg *model.Config) error {
	var data []byte
	var err error
	if isYAML(configPath) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// ConfigGet returns the current configuration.
func ConfigGet() *model.Config {
	return currentConfig
}

// ConfigValidate rejects settings no component can run with.
func ConfigValidate(cfg *model.Config) error {
	switch cfg.UserStoreType {
	case "json", "sqlite", "postgres", "badger", "redis":
	default:
		return fmt.Errorf("unsupported user store type: %s", cfg.UserStoreType)
	}
	if cfg.UserStoreType == "postgres" && cfg.PostgresDSN == "" {
		return fmt.Errorf("postgres user store requires postgres_dsn")
	}
	switch cfg.PasswordPolicy {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unsupported password policy: %s", cfg.PasswordPolicy)
	}
	return nil
}

// DataPath joins a file name onto the data directory unless it is already absolute.
func DataPath(cfg *model.Config, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.DataDir, name)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// applyEnv overlays FILMSCAPE_* environment variables onto cfg.
func applyEnv(cfg *model.Config) {
	strs := map[string]*string{
		"DATA_DIR":        &cfg.DataDir,
		"DATASET_FILE":    &cfg.DatasetFile,
		"USER_STORE_TYPE": &cfg.UserStoreType,
		"USER_FILE":       &cfg.UserFile,
		"SQLITE_FILE":     &cfg.SQLiteFile,
		"POSTGRES_DSN":    &cfg.PostgresDSN,
		"BADGER_DIR":      &cfg.BadgerDir,
		"REDIS_ADDR":      &cfg.RedisAddr,
		"REDIS_PASSWORD":  &cfg.RedisPassword,
		"REDIS_KEY":       &cfg.RedisKey,
		"PASSWORD_POLICY": &cfg.PasswordPolicy,
		"LOG_FOLDER":      &cfg.LogFolder,
		"LOG_LEVEL":       &cfg.LogLevel,
		"HISTORY_FILE":    &cfg.HistoryFile,
	}
	for key, target := range strs {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			*target = v
		}
	}
	if v, ok := os.LookupEnv(envPrefix + "REDIS_DB"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = n
		}
	}
}
