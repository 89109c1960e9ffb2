package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/claude/replog/internal/models"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Parser    ParserConfig    `yaml:"parser"`
	LLM       LLMConfig       `yaml:"llm"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

// ParserConfig tunes the deterministic workout-text parser.
type ParserConfig struct {
	DefaultUnit string `yaml:"default_unit"`
}

// LLMConfig points at an optional language-model endpoint tried before the
// deterministic parser, which remains the fallback when the remote call
// fails or returns nothing.
type LLMConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

// TailscaleConfig exposes the server on a tailnet instead of a plain TCP
// listener.
type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

// Unit returns the configured default weight unit, falling back to pounds.
func (p ParserConfig) Unit() models.Unit {
	if models.Unit(p.DefaultUnit) == models.UnitKilograms {
		return models.UnitKilograms
	}
	return models.UnitPounds
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix REPLOG_ and underscore-separated paths:
//
//	REPLOG_SERVER_HOST, REPLOG_SERVER_PORT,
//	REPLOG_DB_HOST, REPLOG_DB_PORT, REPLOG_DB_NAME,
//	REPLOG_DB_USER, REPLOG_DB_PASSWORD, REPLOG_DB_SSLMODE,
//	REPLOG_AUTH_API_KEY, REPLOG_PARSER_DEFAULT_UNIT,
//	REPLOG_LLM_ENDPOINT, REPLOG_LLM_API_KEY
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("REPLOG_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("REPLOG_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("REPLOG_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("REPLOG_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("REPLOG_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REPLOG_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("REPLOG_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("REPLOG_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("REPLOG_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("REPLOG_PARSER_DEFAULT_UNIT"); v != "" {
		cfg.Parser.DefaultUnit = v
	}
	if v := os.Getenv("REPLOG_LLM_ENDPOINT"); v != "" {
		cfg.LLM.Endpoint = v
	}
	if v := os.Getenv("REPLOG_LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	if u := c.Parser.DefaultUnit; u != "" && u != string(models.UnitPounds) && u != string(models.UnitKilograms) {
		return fmt.Errorf("parser.default_unit must be %q or %q, got %q",
			models.UnitPounds, models.UnitKilograms, u)
	}
	if c.LLM.Enabled && c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required when llm.enabled is true")
	}
	if c.Tailscale.Enabled && c.Tailscale.Hostname == "" {
		return fmt.Errorf("tailscale.hostname is required when tailscale.enabled is true")
	}
	return nil
}
