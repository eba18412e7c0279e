package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "automaton.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, `
max_results: 5
store: redis
redis:
  addr: cache:6379
  db: 2
  ttl: 1h
http:
  port: "9090"
log_level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.MaxResults)
	assert.Equal(t, 20, cfg.MaxLength, "unset keys keep defaults")
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, time.Hour, cfg.Redis.TTL)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "store: memory\n")
	t.Setenv("AUTOMATON_STORE", "file")
	t.Setenv("AUTOMATON_HTTP_PORT", "7000")
	t.Setenv("AUTOMATON_REDIS_DB", "3")
	t.Setenv("AUTOMATON_LOG_FORMAT", "json")
	t.Setenv("AUTOMATON_OTLP_ENDPOINT", "localhost:4317")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "7000", cfg.HTTP.Port)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "localhost:4317", cfg.Tracing.Endpoint)
	assert.Equal(t, "automaton", cfg.Tracing.ServiceName)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit path must exist")

	_, err = Load(writeFile(t, "max_results: [oops"))
	assert.ErrorContains(t, err, "failed to parse")

	_, err = Load(writeFile(t, "store: sqlite\n"))
	assert.ErrorContains(t, err, "unknown store")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"Negative Results", func(c *Config) { c.MaxResults = -1 }, "max_results"},
		{"Negative Length", func(c *Config) { c.MaxLength = -1 }, "max_length"},
		{"Redis Without Addr", func(c *Config) { c.Store = StoreRedis; c.Redis.Addr = "" }, "redis.addr"},
		{"Negative TTL", func(c *Config) { c.Redis.TTL = -time.Second }, "redis.ttl"},
		{"Bad Level", func(c *Config) { c.LogLevel = "loud" }, "log level"},
		{"Bad Format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}

	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
