package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:     AppConfig{Environment: "development"},
		Logger:  LoggerConfig{Level: "info"},
		Storage: StorageConfig{DataPath: "/tmp/snapsense"},
		Live:    LiveConfig{EventInterval: 9 * time.Second, RefetchInterval: 15 * time.Second},
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load([]string{"-env-file", filepath.Join(dir, "missing.env"), "-data-path", dir})
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 350*time.Millisecond, cfg.DataSource.Latency)
	assert.Equal(t, 9*time.Second, cfg.Live.EventInterval)
	assert.Equal(t, 15*time.Second, cfg.Live.RefetchInterval)
	assert.Equal(t, filepath.Join(dir, "kv"), cfg.Storage.KVPath())
	assert.Equal(t, filepath.Join(dir, "activity.db"), cfg.Storage.JournalPath())
	assert.False(t, cfg.Report.MailEnabled())
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("LIVE_EVENT_INTERVAL", "2s")

	cfg, err := Load([]string{"-env-file", filepath.Join(dir, "none"), "-data-path", dir, "-port", "7000"})
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Live.EventInterval)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# dashboard\nCORS_ORIGINS=\"http://a.test, http://b.test\"\nDATASOURCE_LATENCY=0s\n"
	require.NoError(t, os.WriteFile(envPath, []byte(content), 0o600))
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("DATASOURCE_LATENCY", "")

	cfg, err := Load([]string{"-env-file", envPath, "-data-path", dir})
	require.NoError(t, err)

	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, time.Duration(0), cfg.DataSource.Latency)
}

func TestLoad_InvalidDuration(t *testing.T) {
	dir := t.TempDir()

	_, err := Load([]string{"-env-file", filepath.Join(dir, "none"), "-data-path", dir, "-refetch-interval", "soon"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refetch_interval")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"unknown env", func(c *Config) { c.App.Environment = "test" }, true},
		{"uppercase env", func(c *Config) { c.App.Environment = "DEVELOPMENT" }, true},
		{"bad level", func(c *Config) { c.Logger.Level = "verbose" }, true},
		{"uppercase level", func(c *Config) { c.Logger.Level = "WARN" }, false},
		{"no data path", func(c *Config) { c.Storage.DataPath = "" }, true},
		{"negative latency", func(c *Config) { c.DataSource.Latency = -time.Second }, true},
		{"zero interval", func(c *Config) { c.Live.RefetchInterval = 0 }, true},
		{"sender without recipient", func(c *Config) { c.Report.FromEmail = "a@b.test" }, true},
		{"sender and recipient", func(c *Config) {
			c.Report.FromEmail = "a@b.test"
			c.Report.ToEmail = "parent@b.test"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := expandPath("~/snap", "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "snap"), got)

	got, err = expandPath("", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/default", got)
}
