package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Fetch   FetchConfig   `yaml:"fetch" envconfig:"FETCH"`
}

// ServerConfig contains HTTP server configuration for the web front-end.
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/nsecli.log"`
}

// FetchConfig contains download client configuration. When Offline is set
// the client logs the URLs it would fetch and touches the network not at
// all, so already-staged files can be reprocessed without connectivity.
type FetchConfig struct {
	UserAgent         string        `yaml:"user_agent" envconfig:"USER_AGENT" default:"Mozilla/5.0 (X11; Ubuntu; Linux i686; rv:27.0) Gecko/20100101 Firefox/27.0"`
	Timeout           time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s"`
	RequestsPerSecond float64       `yaml:"requests_per_second" envconfig:"REQUESTS_PER_SECOND" default:"2"`
	Burst             int           `yaml:"burst" envconfig:"BURST" default:"1"`
	Offline           bool          `yaml:"offline" envconfig:"OFFLINE" default:"false"`
}

// Load loads configuration from environment variables (prefix NSE) layered
// over an optional YAML file next to the executable.
func Load() (*Config, error) {
	var cfg Config

	if path := configFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			fileCfg, err := loadFromFile(path)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = *fileCfg
		}
	}

	// Environment variables take precedence over the file.
	if err := envconfig.Process("NSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configFilePath returns the config file location: NSE_CONFIG_FILE if set,
// otherwise nsecli.yaml next to the executable.
func configFilePath() string {
	if path := os.Getenv("NSE_CONFIG_FILE"); path != "" {
		return path
	}
	exeDir, err := executableDir()
	if err != nil {
		return ""
	}
	return exeDir + string(os.PathSeparator) + "nsecli.yaml"
}

func (c *Config) validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch requests_per_second must be positive, got %v", c.Fetch.RequestsPerSecond)
	}
	if c.Fetch.Burst < 1 {
		return fmt.Errorf("fetch burst must be at least 1, got %d", c.Fetch.Burst)
	}
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output mode: %q", c.Logging.Output)
	}
	return nil
}
