// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	OMDb     OMDbConfig
	Export   ExportConfig
	Console  ConsoleConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DatabaseConfig holds the SQLite database location.
type DatabaseConfig struct {
	Path string
}

// OMDbConfig holds metadata lookup configuration.
type OMDbConfig struct {
	// APIKey may be empty; lookups then always fall back to manual entry.
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// ExportConfig holds static gallery defaults.
type ExportConfig struct {
	OutputPath string
	Title      string
}

// ConsoleConfig holds terminal presentation settings.
type ConsoleConfig struct {
	NoColor bool
	// DefaultUser preselects the active user, skipping the selection screen.
	DefaultUser string
}

// Overrides carries values given on the command line. Empty fields defer
// to the environment, the .env file, and finally the defaults.
type Overrides struct {
	Environment string
	LogLevel    string
	DBPath      string
	EnvFile     string
	OMDbAPIKey  string
	OMDbURL     string
	OMDbTimeout string
	ExportPath  string
	ExportTitle string
	User        string
	NoColor     bool
}

const (
	defaultOMDbURL     = "https://www.omdbapi.com"
	defaultOMDbTimeout = "10s"
	defaultExportPath  = "index.html"
	defaultExportTitle = "My Movie App"
)

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig(o Overrides) (*Config, error) {
	envFile := o.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(o.Environment, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(o.LogLevel, "LOG_LEVEL", "warn"),
		},
		Database: DatabaseConfig{
			Path: getConfigValue(o.DBPath, "DB_PATH", ""),
		},
		OMDb: OMDbConfig{
			APIKey:  getConfigValue(o.OMDbAPIKey, "OMDB_API_KEY", ""),
			BaseURL: strings.TrimRight(getConfigValue(o.OMDbURL, "OMDB_URL", defaultOMDbURL), "/"),
		},
		Export: ExportConfig{
			OutputPath: getConfigValue(o.ExportPath, "EXPORT_PATH", defaultExportPath),
			Title:      getConfigValue(o.ExportTitle, "EXPORT_TITLE", defaultExportTitle),
		},
		Console: ConsoleConfig{
			NoColor:     o.NoColor || getBoolConfigValue("", "NO_COLOR", false),
			DefaultUser: getConfigValue(o.User, "FILMSHELF_USER", ""),
		},
	}

	timeoutStr := getConfigValue(o.OMDbTimeout, "OMDB_TIMEOUT", defaultOMDbTimeout)
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid omdb timeout %q: %w", timeoutStr, err)
	}
	cfg.OMDb.Timeout = timeout

	if err := cfg.expandDatabasePath(); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %q (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %q (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty after expansion")
	}

	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("omdb timeout must be positive, got %s", c.OMDb.Timeout)
	}

	u, err := url.Parse(c.OMDb.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid omdb url: %q", c.OMDb.BaseURL)
	}

	if c.Export.OutputPath == "" {
		return errors.New("export path cannot be empty")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDatabasePath defaults the database to ~/.filmshelf/movies.db.
func (c *Config) expandDatabasePath() error {
	// In-memory databases are passed through untouched.
	if strings.HasPrefix(c.Database.Path, ":memory:") || strings.HasPrefix(c.Database.Path, "file:") {
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, ".filmshelf", "movies.db")

	expanded, err := expandPath(c.Database.Path, defaultPath)
	if err != nil {
		return err
	}
	c.Database.Path = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
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

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
