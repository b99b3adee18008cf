package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deslibris/accessonix/cli/internal/api"
)

const (
	defaultBannerSeconds = 5
	defaultMaxBanners    = 3
)

// Config holds CLI configuration stored at ~/.accessonix/config.
type Config struct {
	ServerURL      string        `yaml:"server_url"`
	EndpointPath   string        `yaml:"endpoint_path,omitempty"`
	DownloadDir    string        `yaml:"download_dir,omitempty"`
	RequestTimeout time.Duration `yaml:"request_timeout,omitempty"`
	BannerSeconds  int           `yaml:"banner_seconds,omitempty"`
	MaxBanners     int           `yaml:"max_banners,omitempty"`
	LogLevel       string        `yaml:"log_level,omitempty"`
	LogFormat      string        `yaml:"log_format,omitempty"`
	LogFile        string        `yaml:"log_file,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Dir returns the configuration directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".accessonix")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config")
}

// Load reads and parses the config file. A missing file yields defaults;
// environment overrides are applied last.
func Load() (*Config, error) {
	path := Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.RequestTimeout < 0 {
		return nil, fmt.Errorf("config request_timeout must not be negative")
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return &cfg, nil
}

// Save writes the config to disk with owner-only permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// BannerDuration is how long a notification stays on screen.
func (c *Config) BannerDuration() time.Duration {
	return time.Duration(c.BannerSeconds) * time.Second
}

// LogPath returns the log file used by the interactive UI.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(Dir(), "accessonix.log")
}

// NewClient builds an API client for this configuration.
func (c *Config) NewClient() *api.Client {
	client := api.NewClient(c.ServerURL, c.RequestTimeout)
	client.SetProcessPath(c.EndpointPath)
	return client
}

func (c *Config) applyDefaults() {
	if c.ServerURL == "" {
		c.ServerURL = api.DefaultBaseURL
	}
	if c.EndpointPath == "" {
		c.EndpointPath = api.DefaultProcessPath
	}
	if c.DownloadDir == "" {
		c.DownloadDir = "."
	}
	if c.BannerSeconds <= 0 {
		c.BannerSeconds = defaultBannerSeconds
	}
	if c.MaxBanners <= 0 {
		c.MaxBanners = defaultMaxBanners
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "console"
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ACCESSONIX_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("ACCESSONIX_DOWNLOAD_DIR"); v != "" {
		c.DownloadDir = v
	}
}
