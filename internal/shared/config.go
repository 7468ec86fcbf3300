package shared

import (
	"bytes"
	_ "embed"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvToken names the environment variable that overrides [CMSConfig.Token].
const EnvToken = "PLAYDECK_API_TOKEN"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	CMS    CMSConfig    `toml:"cms"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// CMSConfig contains the Strapi endpoint and credential settings.
type CMSConfig struct {
	BaseURL        string  `toml:"base_url"`
	APIPath        string  `toml:"api_path"`
	Token          string  `toml:"token"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
	PageSize       int     `toml:"page_size"`
}

// ServerConfig contains HTTP preview server settings.
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Timeout returns the CMS request timeout, defaulting to ten seconds.
func (c CMSConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Endpoint returns the API root, e.g. https://cms.example.com/api
func (c CMSConfig) Endpoint() string {
	base := strings.TrimRight(c.BaseURL, "/")
	path := strings.Trim(c.APIPath, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}

// Offline reports whether no credential is configured and sample data should be served.
func (c CMSConfig) Offline() bool {
	return strings.TrimSpace(c.Token) == ""
}

// Addr returns the host:port the preview server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Validate checks the configuration for values the CMS client and server cannot work with.
func (c *Config) Validate() error {
	err := validation.ValidateStruct(&c.CMS,
		validation.Field(&c.CMS.BaseURL, validation.Required, is.URL),
		validation.Field(&c.CMS.TimeoutSeconds, validation.Min(0)),
		validation.Field(&c.CMS.RateLimit, validation.Min(0.0)),
		validation.Field(&c.CMS.PageSize, validation.Min(1), validation.Max(100)),
	)
	if err != nil {
		return fmt.Errorf("%w: cms: %v", ErrInvalidConfig, err)
	}

	err = validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Port, validation.Min(0), validation.Max(65535)),
	)
	if err != nil {
		return fmt.Errorf("%w: server: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		c.CMS.Token = token
	}
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the embedded defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveConfig writes config to path as TOML, replacing any existing file.
//
// The file holds an API token, so it is written owner-readable only.
func SaveConfig(path string, config *Config) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(config); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
