package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the Graph API host
	DefaultBaseURL = "https://graph.facebook.com"

	// DefaultAPIVersion is the Graph API version used for every request
	DefaultAPIVersion = "v17.0"

	// DefaultLimit is the number of media items requested when no limit is given
	DefaultLimit = 25

	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all configuration options for igcomments
type Config struct {
	// Graph API connection settings
	Graph GraphConfig `yaml:"graph" json:"graph"`

	// Comment collection settings
	Comments CommentsConfig `yaml:"comments" json:"comments"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// GraphConfig holds Graph API configuration
type GraphConfig struct {
	BaseURL     string        `yaml:"base_url" json:"base_url" env:"IGCOMMENTS_GRAPH_BASE_URL"`
	APIVersion  string        `yaml:"api_version" json:"api_version" env:"IGCOMMENTS_GRAPH_API_VERSION"`
	AccessToken string        `yaml:"access_token" json:"access_token" env:"IGCOMMENTS_ACCESS_TOKEN"`
	// Timeout of zero means requests block until the transport gives up.
	Timeout time.Duration `yaml:"timeout" json:"timeout" env:"IGCOMMENTS_GRAPH_TIMEOUT"`
}

// CommentsConfig holds comment collection configuration
type CommentsConfig struct {
	Limit int `yaml:"limit" json:"limit" env:"IGCOMMENTS_LIMIT"`
}

// OutputConfig holds output configuration
type OutputConfig struct {
	Format string `yaml:"format" json:"format" env:"IGCOMMENTS_OUTPUT_FORMAT"`
	Color  bool   `yaml:"color" json:"color" env:"IGCOMMENTS_COLOR"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" env:"IGCOMMENTS_LOG_LEVEL"`
	File  string `yaml:"file" json:"file" env:"IGCOMMENTS_LOG_FILE"`
}

// DefaultConfig returns a Config instance with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Graph: GraphConfig{
			BaseURL:    DefaultBaseURL,
			APIVersion: DefaultAPIVersion,
			Timeout:    0,
		},
		Comments: CommentsConfig{
			Limit: DefaultLimit,
		},
		Output: OutputConfig{
			Format: FormatText,
			Color:  true,
		},
		Logging: LoggingConfig{
			Level: "warn",
			File:  "",
		},
	}
}

// LoadFromEnv overrides configuration with IGCOMMENTS_* environment variables
func (c *Config) LoadFromEnv() error {
	if err := cleanenv.ReadEnv(c); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func (c *Config) LoadFromFile(path string) error {
	// If path is empty, try default locations
	if path == "" {
		path = c.findConfigFile()
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

// findConfigFile searches for config file in standard locations
func (c *Config) findConfigFile() string {
	home := os.Getenv("HOME")
	locations := []string{
		".igcomments.yaml",
		".igcomments.yml",
		filepath.Join(home, ".config", "igcomments", "config.yaml"),
		filepath.Join(home, ".config", "igcomments", "config.yml"),
		filepath.Join(home, ".igcomments.yaml"),
		filepath.Join(home, ".igcomments.yml"),
	}

	for _, loc := range locations {
		if _, err := os.Stat(loc); err == nil {
			return loc
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.Graph.BaseURL == "" {
		errs = append(errs, errors.New("graph base URL is required"))
	} else if u, err := url.Parse(c.Graph.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("graph base URL %q is not an absolute URL", c.Graph.BaseURL))
	}
	if c.Graph.APIVersion == "" {
		errs = append(errs, errors.New("graph API version is required"))
	}
	if c.Graph.Timeout < 0 {
		errs = append(errs, errors.New("graph timeout cannot be negative"))
	}

	if c.Comments.Limit <= 0 {
		errs = append(errs, errors.New("media limit must be positive"))
	}

	validFormats := map[string]bool{
		FormatText: true, FormatJSON: true,
	}
	if !validFormats[strings.ToLower(c.Output.Format)] {
		errs = append(errs, fmt.Errorf("invalid output format %q", c.Output.Format))
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true, "disabled": true,
	}
	if !validLogLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, errors.New("invalid log level"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600: the file may hold an access token
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeCommandLineFlags merges command line flags into the configuration
func (c *Config) MergeCommandLineFlags(flags map[string]interface{}) {
	if token, ok := flags["access-token"].(string); ok && token != "" {
		c.Graph.AccessToken = token
	}
	if baseURL, ok := flags["base-url"].(string); ok && baseURL != "" {
		c.Graph.BaseURL = baseURL
	}
	if version, ok := flags["api-version"].(string); ok && version != "" {
		c.Graph.APIVersion = version
	}
	if timeout, ok := flags["timeout"].(time.Duration); ok && timeout >= 0 {
		c.Graph.Timeout = timeout
	}
	if limit, ok := flags["limit"].(int); ok {
		c.Comments.Limit = limit
	}
	if format, ok := flags["format"].(string); ok && format != "" {
		c.Output.Format = strings.ToLower(format)
	}
	if noColor, ok := flags["no-color"].(bool); ok && noColor {
		c.Output.Color = false
	}
	if logLevel, ok := flags["log-level"].(string); ok && logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Load loads configuration from all sources with proper precedence
// Precedence order: Command line flags > Environment variables > .env file > Config file > Defaults
func Load(configPath string, flags map[string]interface{}) (*Config, error) {
	// .env files are optional
	_ = godotenv.Load(".env")
	_ = godotenv.Load(filepath.Join(os.Getenv("HOME"), ".igcomments.env"))

	config := DefaultConfig()

	if err := config.LoadFromFile(configPath); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	if err := config.LoadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	config.MergeCommandLineFlags(flags)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}
