package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Backend  BackendConfig  `yaml:"backend"`
	IndexNow IndexNowConfig `yaml:"indexnow"`
	Blog     BlogConfig     `yaml:"blog"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
	SiteURL    string `yaml:"site_url"` // public origin, e.g. https://gego.ai
	Mode       string `yaml:"mode"`     // gin mode: debug, release, test
}

// BackendConfig points at the metrics backend
type BackendConfig struct {
	BaseURL     string        `yaml:"base_url"`
	MetricsPath string        `yaml:"metrics_path"`
	PromptsPath string        `yaml:"prompts_path"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   float64       `yaml:"rate_limit"` // requests per second, 0 disables
	Burst       int           `yaml:"burst"`
}

// IndexNowConfig configures search engine notifications
type IndexNowConfig struct {
	Enabled     bool     `yaml:"enabled"`
	Endpoint    string   `yaml:"endpoint"`
	Key         string   `yaml:"key"`
	KeyLocation string   `yaml:"key_location,omitempty"`
	Schedule    string   `yaml:"schedule,omitempty"` // cron expression for resubmission
	StaticPaths []string `yaml:"static_paths"`
}

// BlogConfig configures the markdown blog
type BlogConfig struct {
	Dir       string `yaml:"dir"`
	CacheSize int    `yaml:"cache_size"`
}

// LoggingConfig configures the logger
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:       "0.0.0.0",
			Port:       "8080",
			CORSOrigin: "*",
			SiteURL:    "http://localhost:3000",
			Mode:       "release",
		},
		Backend: BackendConfig{
			BaseURL:     "http://localhost:8989",
			MetricsPath: "/api/v1/metrics",
			PromptsPath: "/api/v1/prompts",
			Timeout:     15 * time.Second,
			RateLimit:   10,
			Burst:       5,
		},
		IndexNow: IndexNowConfig{
			Endpoint:    "https://api.indexnow.org/indexnow",
			Schedule:    "0 6 * * *",
			StaticPaths: []string{"/", "/pricing", "/analytics", "/blog"},
		},
		Blog: BlogConfig{
			Dir:       "content/blog",
			CacheSize: 128,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from file. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// LoadWithEnv loads the config file when present, then applies environment
// overrides. Variables from a .env file in the working directory are loaded first.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if Exists(path) {
		var err error
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from GEGO_SITE_* variables and INDEXNOW_KEY
func (c *Config) ApplyEnv() {
	c.Server.Host = getEnv("GEGO_SITE_HOST", c.Server.Host)
	c.Server.Port = getEnv("GEGO_SITE_PORT", c.Server.Port)
	c.Server.CORSOrigin = getEnv("GEGO_SITE_CORS_ORIGIN", c.Server.CORSOrigin)
	c.Server.SiteURL = getEnv("GEGO_SITE_URL", c.Server.SiteURL)
	c.Server.Mode = getEnv("GEGO_SITE_MODE", c.Server.Mode)

	c.Backend.BaseURL = getEnv("GEGO_SITE_BACKEND_URL", c.Backend.BaseURL)
	c.Backend.Timeout = getEnvDuration("GEGO_SITE_BACKEND_TIMEOUT", c.Backend.Timeout)
	c.Backend.RateLimit = getEnvFloat("GEGO_SITE_BACKEND_RATE_LIMIT", c.Backend.RateLimit)

	c.IndexNow.Enabled = getEnvBool("GEGO_SITE_INDEXNOW_ENABLED", c.IndexNow.Enabled)
	c.IndexNow.Key = getEnv("INDEXNOW_KEY", c.IndexNow.Key)
	c.IndexNow.Schedule = getEnv("GEGO_SITE_INDEXNOW_SCHEDULE", c.IndexNow.Schedule)

	c.Blog.Dir = getEnv("GEGO_SITE_BLOG_DIR", c.Blog.Dir)
	c.Logging.Level = getEnv("GEGO_SITE_LOG_LEVEL", c.Logging.Level)
}

// Validate checks the settings the server cannot start without
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url is required")
	}
	if !strings.HasPrefix(c.Backend.BaseURL, "http://") && !strings.HasPrefix(c.Backend.BaseURL, "https://") {
		return fmt.Errorf("backend base_url must start with http:// or https://")
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.IndexNow.Enabled && c.IndexNow.Key == "" {
		return fmt.Errorf("indexnow key is required when indexnow is enabled")
	}
	return nil
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the config file path, honouring GEGO_SITE_CONFIG_PATH
func GetConfigPath() string {
	if envPath := os.Getenv("GEGO_SITE_CONFIG_PATH"); envPath != "" {
		return envPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".gego-site/config.yaml"
	}
	return filepath.Join(home, ".gego-site", "config.yaml")
}

// Exists checks if config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
