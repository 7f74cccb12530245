package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the proxy server the debugger talks to unless configured otherwise
const DefaultBaseURL = "https://node-proxy-server-1-o9k5.onrender.com"

// Config holds all configuration options for the API debugger
type Config struct {
	// Remote proxy API
	API APIConfig `yaml:"api" json:"api"`

	// Query panel behaviour
	Panel PanelConfig `yaml:"panel" json:"panel"`

	// Web page server
	Server ServerConfig `yaml:"server" json:"server"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig describes how to reach the proxy API
type APIConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent"`
}

// PanelConfig holds query panel preferences
type PanelConfig struct {
	DefaultEndpoint string `yaml:"default_endpoint" json:"default_endpoint"`
}

// ServerConfig holds settings for the web rendition of the panel
type ServerConfig struct {
	Addr         string `yaml:"addr" json:"addr"`
	SessionLimit int    `yaml:"session_limit" json:"session_limit"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:   DefaultBaseURL,
			Timeout:   0, // no timeout
			UserAgent: "igdebugger/1.0",
		},
		Panel: PanelConfig{
			DefaultEndpoint: "profile",
		},
		Server: ServerConfig{
			Addr:         "127.0.0.1:8080",
			SessionLimit: 256,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromEnv loads configuration from environment variables
func (c *Config) LoadFromEnv() error {
	if baseURL := os.Getenv("IGDEBUGGER_BASE_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}
	if timeout := os.Getenv("IGDEBUGGER_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return fmt.Errorf("invalid IGDEBUGGER_TIMEOUT %q: %w", timeout, err)
		}
		c.API.Timeout = d
	}
	if userAgent := os.Getenv("IGDEBUGGER_USER_AGENT"); userAgent != "" {
		c.API.UserAgent = userAgent
	}
	if endpoint := os.Getenv("IGDEBUGGER_ENDPOINT"); endpoint != "" {
		c.Panel.DefaultEndpoint = endpoint
	}
	if addr := os.Getenv("IGDEBUGGER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if logLevel := os.Getenv("IGDEBUGGER_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile := os.Getenv("IGDEBUGGER_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		path = FindConfigFile()
		if path == "" {
			return nil // No config file found, not an error
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// FindConfigFile searches for a config file in the standard locations
func FindConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		"igdebugger.yaml",
		".igdebugger.yaml",
		".igdebugger.yml",
		filepath.Join(home, ".config", "igdebugger", "config.yaml"),
		filepath.Join(home, ".igdebugger.yaml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

var validEndpoints = map[string]bool{
	"profile": true, "stories": true, "reels": true,
}

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	if c.API.BaseURL == "" || err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("api base URL must be an absolute http(s) URL, got %q", c.API.BaseURL))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, errors.New("api timeout cannot be negative"))
	}

	if !validEndpoints[strings.ToLower(c.Panel.DefaultEndpoint)] {
		errs = append(errs, fmt.Errorf("unknown default endpoint %q (want profile, stories or reels)", c.Panel.DefaultEndpoint))
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server address is required"))
	}
	if c.Server.SessionLimit <= 0 {
		errs = append(errs, errors.New("server session limit must be positive"))
	}

	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid log level %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save writes the configuration to a YAML file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration.
// Only keys present in flags override the current values.
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.API.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok {
		c.API.Timeout = timeout
	}
	if endpoint, ok := flags["endpoint"].(string); ok && endpoint != "" {
		c.Panel.DefaultEndpoint = endpoint
	}
	if addr, ok := flags["addr"].(string); ok && addr != "" {
		c.Server.Addr = addr
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFile, ok := flags["log-file"].(string); ok && logFile != "" {
		c.Logging.File = logFile
	}
}

// Load loads configuration from all sources with proper precedence.
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igdebugger.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)
	config.API.BaseURL = strings.TrimRight(config.API.BaseURL, "/")

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
