package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file, looked up in the working directory.
const FileName = "financehub.yaml"

// Environment variables that override file values.
const (
	envStorageBackend  = "FINANCEHUB_STORAGE_BACKEND"
	envStorageDir      = "FINANCEHUB_STORAGE_DIR"
	envStorageGit      = "FINANCEHUB_STORAGE_GIT"
	envSQLitePath      = "FINANCEHUB_SQLITE_PATH"
	envMongoURI        = "FINANCEHUB_MONGO_URI"
	envMongoDatabase   = "FINANCEHUB_MONGO_DATABASE"
	envManifestURL     = "FINANCEHUB_MANIFEST_URL"
	envCheckInterval   = "FINANCEHUB_CHECK_INTERVAL"
	envDiscordToken    = "FINANCEHUB_DISCORD_TOKEN"
	envDiscordChannel  = "FINANCEHUB_DISCORD_CHANNEL"
	envDisplayMarkdown = "FINANCEHUB_RAW"
)

// Config represents the top-level financehub.yaml configuration.
type Config struct {
	Storage     StorageConfig  `yaml:"storage"`
	Display     DisplayConfig  `yaml:"display"`
	Notifier    NotifierConfig `yaml:"notifier"`
	Discord     DiscordConfig  `yaml:"discord,omitempty"`
	ActivityLog string         `yaml:"activity_log"` // empty disables the log
}

// StorageConfig selects the local storage backend.
type StorageConfig struct {
	Backend         string `yaml:"backend"` // file, sqlite, mongo or memory
	Dir             string `yaml:"dir,omitempty"`
	Git             bool   `yaml:"git,omitempty"` // commit the file store after every change
	SQLitePath      string `yaml:"sqlite_path,omitempty"`
	MongoURI        string `yaml:"mongo_uri,omitempty"`
	MongoDatabase   string `yaml:"mongo_database,omitempty"`
	MongoCollection string `yaml:"mongo_collection,omitempty"`
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Raw   bool   `yaml:"raw"` // print markdown instead of styled output
	Style string `yaml:"style"`
	Width int    `yaml:"width"`
}

// NotifierConfig controls the update watcher.
type NotifierConfig struct {
	ManifestURL   string        `yaml:"manifest_url,omitempty"`
	CheckInterval time.Duration `yaml:"check_interval"`
}

// DiscordConfig is where reminders go when a channel is set.
type DiscordConfig struct {
	Token     string `yaml:"token,omitempty"`
	ChannelID string `yaml:"channel_id,omitempty"`
}

// Load reads a financehub.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, except a missing file yields Default.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:         "file",
			Dir:             ".financehub",
			SQLitePath:      "financehub.db",
			MongoDatabase:   "financehub",
			MongoCollection: "localStorage",
		},
		ActivityLog: "logs/activity.csv",
		Display: DisplayConfig{
			Style: "auto",
			Width: 100,
		},
		Notifier: NotifierConfig{
			CheckInterval: time.Hour,
		},
	}
}

// LoadEnvFile loads KEY=value pairs from path into the process environment.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays FINANCEHUB_* variables onto cfg.
func (cfg *Config) ApplyEnv() error {
	setString(&cfg.Storage.Backend, envStorageBackend)
	setString(&cfg.Storage.Dir, envStorageDir)
	setString(&cfg.Storage.SQLitePath, envSQLitePath)
	setString(&cfg.Storage.MongoURI, envMongoURI)
	setString(&cfg.Storage.MongoDatabase, envMongoDatabase)
	setString(&cfg.Notifier.ManifestURL, envManifestURL)
	setString(&cfg.Discord.Token, envDiscordToken)
	setString(&cfg.Discord.ChannelID, envDiscordChannel)

	if v := os.Getenv(envCheckInterval); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", envCheckInterval, err)
		}
		cfg.Notifier.CheckInterval = d
	}
	if err := setBool(&cfg.Display.Raw, envDisplayMarkdown); err != nil {
		return err
	}
	return setBool(&cfg.Storage.Git, envStorageGit)
}

func setBool(dst *bool, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", key, err)
	}
	*dst = b
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
