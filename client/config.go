package client

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the client configuration.
type Config struct {
	// ServerURL is the base URL of the search service (e.g. "http://localhost:8000")
	ServerURL string `toml:"server_url"`

	// Timeout bounds each chat request. The original client had none and a
	// hung request left it busy forever; here the gap is closed explicitly.
	Timeout time.Duration `toml:"-"`

	// TimeoutSeconds is the on-disk form of Timeout.
	TimeoutSeconds int `toml:"timeout_seconds"`

	// LogFile receives logs while the TUI owns the terminal. Empty means
	// a file next to the config.
	LogFile string `toml:"log_file"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`
}

// DefaultConfig returns the configuration used when no file or environment
// overrides are present.
func DefaultConfig() Config {
	return Config{
		ServerURL: "http://localhost:8000",
		Timeout:   60 * time.Second,
	}
}

// LoadConfig reads a TOML config file and applies PUBFIND_* environment
// overrides on top. A missing file is not an error; the defaults apply.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("load config %s: %w", path, err)
			}
		}
	}

	if cfg.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PUBFIND_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("PUBFIND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Timeout = d
		}
	}
	if v := os.Getenv("PUBFIND_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if os.Getenv("PUBFIND_DEBUG") == "1" || os.Getenv("PUBFIND_DEBUG") == "true" {
		c.Debug = true
	}
}
