package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Storage.Backend = "sqlite"
	cfg.Discord = DiscordConfig{Token: "tok", ChannelID: "123"}
	cfg.Notifier.ManifestURL = "https://example.com/manifest.json"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", got.Storage.Backend)
	assert.Equal(t, cfg.Storage.SQLitePath, got.Storage.SQLitePath)
	assert.Equal(t, "tok", got.Discord.Token)
	assert.Equal(t, "123", got.Discord.ChannelID)
	assert.Equal(t, time.Hour, got.Notifier.CheckInterval)
	assert.Equal(t, "https://example.com/manifest.json", got.Notifier.ManifestURL)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, ".financehub", cfg.Storage.Dir)
	assert.Equal(t, "financehub", cfg.Storage.MongoDatabase)
	assert.Equal(t, time.Hour, cfg.Notifier.CheckInterval)
	assert.False(t, cfg.Display.Raw)
	assert.Empty(t, cfg.Discord.Token)
	assert.Equal(t, "logs/activity.csv", cfg.ActivityLog)
	assert.False(t, cfg.Storage.Git)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: memory\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, time.Hour, cfg.Notifier.CheckInterval)
	assert.Equal(t, 100, cfg.Display.Width)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, Default())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "backend: file")
	assert.Contains(t, contents, "check_interval: 1h0m0s")
	assert.NotContains(t, contents, "discord")
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(envStorageBackend, "mongo")
	t.Setenv(envMongoURI, "mongodb://localhost:27017")
	t.Setenv(envCheckInterval, "15m")
	t.Setenv(envDisplayMarkdown, "true")
	t.Setenv(envStorageGit, "1")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "mongo", cfg.Storage.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.MongoURI)
	assert.Equal(t, 15*time.Minute, cfg.Notifier.CheckInterval)
	assert.True(t, cfg.Display.Raw)
	assert.True(t, cfg.Storage.Git)
	assert.Equal(t, ".financehub", cfg.Storage.Dir, "unset vars leave values alone")

	t.Setenv(envStorageGit, "maybe")
	assert.ErrorContains(t, Default().ApplyEnv(), envStorageGit)

	t.Setenv(envCheckInterval, "soon")
	assert.Error(t, Default().ApplyEnv())
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), ".env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FINANCEHUB_DISCORD_CHANNEL=chan-42\n"), 0o644))
	t.Setenv(envDiscordChannel, "")
	os.Unsetenv(envDiscordChannel)

	require.NoError(t, LoadEnvFile(path))
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "chan-42", cfg.Discord.ChannelID)
}
