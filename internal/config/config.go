// Package config loads the CLI configuration file.
//
// Precedence, lowest first: built-in defaults, the YAML file, AUTOMATON_* environment
// variables, command-line flags. Flags are applied by the CLI after Load returns.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/automaton/internal/logging"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "automaton.yaml"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config is the CLI configuration.
type Config struct {
	MaxResults int         `yaml:"max_results"`
	MaxLength  int         `yaml:"max_length"`
	Store      string      `yaml:"store"`
	StoreDir   string      `yaml:"store_dir"`
	Redis      RedisConfig `yaml:"redis"`
	HTTP       HTTPConfig  `yaml:"http"`
	Tracing    Tracing     `yaml:"tracing"`
	LogLevel   string      `yaml:"log_level"`
	LogFormat  string      `yaml:"log_format"`
}

// RedisConfig configures the redis store.
type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// HTTPConfig configures `automaton serve`.
type HTTPConfig struct {
	Port string `yaml:"port"`
}

// Tracing configures OpenTelemetry export. Tracing is off while Endpoint is empty.
type Tracing struct {
	Endpoint    string `yaml:"endpoint"`
	Insecure    bool   `yaml:"insecure"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		MaxResults: 10,
		MaxLength:  20,
		Store:      StoreFile,
		StoreDir:   ".automaton/definitions",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "automaton:definition:",
		},
		HTTP:      HTTPConfig{Port: "8080"},
		Tracing:   Tracing{ServiceName: "automaton"},
		LogLevel:  "info",
		LogFormat: string(logging.FormatText),
	}
}

// Load reads path over the defaults. An empty path means DefaultFile, which may be absent.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	// #nosec G304 -- path comes from the operator
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("AUTOMATON_STORE"); val != "" {
		cfg.Store = val
	}
	if val := os.Getenv("AUTOMATON_STORE_DIR"); val != "" {
		cfg.StoreDir = val
	}
	if val := os.Getenv("AUTOMATON_REDIS_ADDR"); val != "" {
		cfg.Redis.Addr = val
	}
	if val := os.Getenv("AUTOMATON_REDIS_PASSWORD"); val != "" {
		cfg.Redis.Password = val
	}
	if val := os.Getenv("AUTOMATON_REDIS_DB"); val != "" {
		if db, err := strconv.Atoi(val); err == nil {
			cfg.Redis.DB = db
		}
	}
	if val := os.Getenv("AUTOMATON_HTTP_PORT"); val != "" {
		cfg.HTTP.Port = val
	}
	if val := os.Getenv("AUTOMATON_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}
	if val := os.Getenv("AUTOMATON_LOG_FORMAT"); val != "" {
		cfg.LogFormat = val
	}
	if val := os.Getenv("AUTOMATON_OTLP_ENDPOINT"); val != "" {
		cfg.Tracing.Endpoint = val
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.MaxResults < 0 {
		return fmt.Errorf("max_results must not be negative, got %d", c.MaxResults)
	}
	if c.MaxLength < 0 {
		return fmt.Errorf("max_length must not be negative, got %d", c.MaxLength)
	}
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return fmt.Errorf("unknown store %q (want memory, file or redis)", c.Store)
	}
	if c.Store == StoreRedis && c.Redis.Addr == "" {
		return errors.New("redis.addr is required for the redis store")
	}
	if c.Redis.TTL < 0 {
		return fmt.Errorf("redis.ttl must not be negative, got %s", c.Redis.TTL)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch logging.Format(c.LogFormat) {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("unknown log_format %q (want text or json)", c.LogFormat)
	}
	return nil
}
