package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret verifies the HS256 token the auth collaborator mints.
	// Empty disables ambient sessions entirely.
	SessionSecret string `env:"SESSION_SECRET"`

	// UIMode selects the post-mutation refresh strategy: "reload" or "fragment".
	UIMode string `env:"UI_MODE, default=reload"`

	// DisplayFile is an optional YAML file with presentation settings.
	DisplayFile string `env:"DISPLAY_CONFIG, default=console.yaml"`

	Backend BackendConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	// BaseURL includes the API prefix, e.g. http://localhost:8081/api.
	BaseURL string        `env:"BACKEND_URL,     default=http://localhost:8081/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

type RedisConfig struct {
	// Addr empty disables Redis (and with it the submit guard).
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// Tab is one entry of the console's tab bar.
type Tab struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
}

// Display holds presentation settings an operator may override per
// deployment without rebuilding.
type Display struct {
	CurrencyUnit string `yaml:"currency_unit"`
	DefaultTime  string `yaml:"default_time"`
	Tabs         []Tab  `yaml:"tabs"`
}

func defaultDisplay() Display {
	return Display{
		CurrencyUnit: "₽",
		DefaultTime:  "10:00",
		Tabs: []Tab{
			{Key: "services", Title: "Services"},
			{Key: "masters", Title: "Masters"},
			{Key: "appointments", Title: "Appointments"},
			{Key: "users", Title: "Users"},
			{Key: "reports", Title: "Reports"},
		},
	}
}

// LoadDisplay reads the YAML display settings. A missing file yields the
// defaults; unset fields fall back individually.
func LoadDisplay(path string) (Display, error) {
	d := defaultDisplay()
	if path == "" {
		return d, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("read display config: %w", err)
	}

	var file Display
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return d, fmt.Errorf("parse display config: %w", err)
	}
	if file.CurrencyUnit != "" {
		d.CurrencyUnit = file.CurrencyUnit
	}
	if file.DefaultTime != "" {
		d.DefaultTime = file.DefaultTime
	}
	if len(file.Tabs) > 0 {
		d.Tabs = file.Tabs
	}
	return d, nil
}
