// Package config loads server configuration from flags, environment variables and a .env file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Storage    StorageConfig
	Server     ServerConfig
	DataSource DataSourceConfig
	Live       LiveConfig
	Report     ReportConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig locates the local data directory. The profile slots live
// in a Badger database under DataPath/kv and the activity journal in
// DataPath/activity.db.
type StorageConfig struct {
	DataPath string
}

// KVPath returns the Badger directory.
func (s StorageConfig) KVPath() string { return filepath.Join(s.DataPath, "kv") }

// JournalPath returns the SQLite activity journal file.
func (s StorageConfig) JournalPath() string { return filepath.Join(s.DataPath, "activity.db") }

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	CORSOrigins  []string
}

// DataSourceConfig configures the mock dashboard source.
type DataSourceConfig struct {
	Latency      time.Duration // simulated fetch delay (default: 350ms)
	FixturesPath string        // optional JSON overrides, reloaded on change
}

// LiveConfig holds the periodic task intervals of the live view.
type LiveConfig struct {
	EventInterval   time.Duration // synthetic activity (default: 9s)
	RefetchInterval time.Duration // dashboard refresh (default: 15s)
}

// ReportConfig configures weekly report delivery. Mail is disabled while
// FromEmail is empty.
type ReportConfig struct {
	FromEmail string
	ToEmail   string
	AWSRegion string
}

// MailEnabled reports whether report e-mails can be sent.
func (r ReportConfig) MailEnabled() bool {
	return r.FromEmail != "" && r.ToEmail != ""
}

// Load reads configuration with precedence:
// 1. Command-line flags.
// 2. Environment variables.
// 3. .env file.
// 4. Defaults.
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("snapsense", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := fs.String("data-path", "", "Directory for local storage")
	port := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 0, streams stay open)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma separated dashboard origins")
	latency := fs.String("datasource-latency", "", "Simulated data source delay (default: 350ms)")
	fixtures := fs.String("fixtures", "", "Optional dashboard fixtures JSON file")
	eventInterval := fs.String("live-event-interval", "", "Live activity interval (default: 9s)")
	refetchInterval := fs.String("refetch-interval", "", "Dashboard refetch interval (default: 15s)")
	fromEmail := fs.String("report-from", "", "Sender address for weekly reports")
	toEmail := fs.String("report-to", "", "Parent address for weekly reports")
	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// A missing .env file is fine.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App:     AppConfig{Environment: getConfigValue(*env, "ENV", "development")},
		Logger:  LoggerConfig{Level: getConfigValue(*logLevel, "LOG_LEVEL", "info")},
		Storage: StorageConfig{DataPath: getConfigValue(*dataPath, "DATA_PATH", "")},
		Server: ServerConfig{
			Port:        getConfigValue(*port, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "http://localhost:5173")),
		},
		DataSource: DataSourceConfig{
			FixturesPath: getConfigValue(*fixtures, "FIXTURES_PATH", ""),
		},
		Report: ReportConfig{
			FromEmail: getConfigValue(*fromEmail, "REPORT_FROM_EMAIL", ""),
			ToEmail:   getConfigValue(*toEmail, "REPORT_TO_EMAIL", ""),
			AWSRegion: getConfigValue("", "AWS_REGION", "us-east-1"),
		},
	}

	durations := []struct {
		dst               *time.Duration
		flagValue, envKey string
		def               string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SERVER_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SERVER_WRITE_TIMEOUT", "0s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"},
		{&cfg.DataSource.Latency, *latency, "DATASOURCE_LATENCY", "350ms"},
		{&cfg.Live.EventInterval, *eventInterval, "LIVE_EVENT_INTERVAL", "9s"},
		{&cfg.Live.RefetchInterval, *refetchInterval, "REFETCH_INTERVAL", "15s"},
	}
	for _, d := range durations {
		v, err := getDurationConfigValue(d.flagValue, d.envKey, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks that all config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty")
	}
	if c.DataSource.Latency < 0 {
		return errors.New("data source latency cannot be negative")
	}
	if c.Live.EventInterval <= 0 || c.Live.RefetchInterval <= 0 {
		return errors.New("live intervals must be positive")
	}
	if (c.Report.FromEmail == "") != (c.Report.ToEmail == "") {
		return errors.New("report mail needs both a sender and a recipient")
	}
	return nil
}

func (c *Config) expandPaths() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	c.Storage.DataPath, err = expandPath(c.Storage.DataPath, filepath.Join(home, "SnapSense", "data"))
	if err != nil {
		return err
	}
	if c.DataSource.FixturesPath != "" {
		c.DataSource.FixturesPath, err = expandPath(c.DataSource.FixturesPath, "")
	}
	return err
}

// expandPath expands ~ and makes path absolute. Empty paths take defaultPath.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envKey != "" {
		if v := os.Getenv(envKey); v != "" {
			return v
		}
	}
	return defaultValue
}

func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadEnvFile loads KEY=value lines from path. Variables already present in
// the environment win.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- path comes from the operator
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}
