package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
		// Web sessions unused for this long are dropped
		SessionIdleMinutes int `yaml:"session_idle_minutes"`
		MaxSessions        int `yaml:"max_sessions"`
	} `yaml:"server"`

	// Remote analysis service
	API struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"api"`

	Report struct {
		Enabled       bool   `yaml:"enabled"`
		OutputDir     string `yaml:"output_dir"`
		Variant       string `yaml:"variant"` // "standard" or "professional"
		Headless      bool   `yaml:"headless"`
		ChromePath    string `yaml:"chrome_path"`
		Signatory     string `yaml:"signatory"`
		SignatoryRole string `yaml:"signatory_role"`
		Host          string `yaml:"host"`
	} `yaml:"report"`

	Share struct {
		Clipboard bool `yaml:"clipboard"`
		Telegram  struct {
			Enabled  bool   `yaml:"enabled"`
			BotToken string `yaml:"bot_token"`
			ChatID   int64  `yaml:"chat_id"`
			// Answer FAQ questions sent to the bot
			ServeFAQ bool `yaml:"serve_faq"`
		} `yaml:"telegram"`
	} `yaml:"share"`

	Log struct {
		Development bool   `yaml:"development"`
		Level       string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns a config with every default applied.
func Default() *Config {
	c := &Config{}
	c.Report.Enabled = true
	c.Report.Headless = true
	c.applyDefaults()
	return c
}

// LoadConfig loads configuration from a YAML file. Variables from a .env file
// in the working directory are loaded first so ${VAR} references resolve. A
// missing config file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := Default()

	file, err := os.Open(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.API.BaseURL = os.ExpandEnv(config.API.BaseURL)
	config.Share.Telegram.BotToken = os.ExpandEnv(config.Share.Telegram.BotToken)
	config.Report.ChromePath = os.ExpandEnv(config.Report.ChromePath)

	config.applyDefaults()

	return config, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.SessionIdleMinutes <= 0 {
		c.Server.SessionIdleMinutes = 30
	}
	if c.Server.MaxSessions <= 0 {
		c.Server.MaxSessions = 1000
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = "http://localhost:5000"
	}
	if c.API.TimeoutSeconds == 0 {
		c.API.TimeoutSeconds = 120
	}
	if c.Report.OutputDir == "" {
		c.Report.OutputDir = "./reports"
	}
	if c.Report.Variant == "" {
		c.Report.Variant = "professional"
	}
	if c.Report.Signatory == "" {
		c.Report.Signatory = "Equipo de Verificación TruthLens"
	}
	if c.Report.SignatoryRole == "" {
		c.Report.SignatoryRole = "Director de Análisis de Credibilidad"
	}
	if c.Report.Host == "" {
		if h, err := os.Hostname(); err == nil {
			c.Report.Host = h
		} else {
			c.Report.Host = "truthlens"
		}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// SessionIdle is how long an unused web session is kept.
func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.Server.SessionIdleMinutes) * time.Minute
}

// APITimeout is the request timeout for the analysis service. A negative
// value disables the timeout.
func (c *Config) APITimeout() time.Duration {
	if c.API.TimeoutSeconds < 0 {
		return 0
	}
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// TelegramEnabled reports whether the Telegram sink should be started.
func (c *Config) TelegramEnabled() bool {
	return c.Share.Telegram.Enabled && c.Share.Telegram.BotToken != ""
}
