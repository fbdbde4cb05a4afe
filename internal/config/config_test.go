package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "pebble", cfg.Database.Type)
	assert.Equal(t, "lz4", cfg.Database.Compressor)
	assert.NotZero(t, cfg.Chain.SaleStart)
	assert.Empty(t, cfg.ConfigPath())

	// The default chain addresses parse and are distinct.
	owner, err := cfg.Chain.Address(cfg.Chain.Owner)
	require.NoError(t, err)
	token, err := cfg.Chain.Address(cfg.Chain.Token)
	require.NoError(t, err)
	assert.NotEqual(t, owner, token)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lampd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9100
database:
  type: memory
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Database.Type)
	assert.Equal(t, path, cfg.ConfigPath())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"negative grace", func(c *Config) { c.Server.ShutdownGraceSeconds = -1 }},
		{"unknown backend", func(c *Config) { c.Database.Type = "etcd" }},
		{"pebble without path", func(c *Config) { c.Database.Path = "" }},
		{"unknown compressor", func(c *Config) { c.Database.Compressor = "zstd" }},
		{"negative cache", func(c *Config) { c.Database.CacheSize = -1 }},
		{"bad address", func(c *Config) { c.Chain.Owner = "not-an-address" }},
		{"zero address", func(c *Config) { c.Chain.Token = "0x0000000000000000000000000000000000000000" }},
		{"duplicate address", func(c *Config) { c.Chain.Vault = c.Chain.Swap }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid(t)
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}

	assert.NoError(t, Validate(valid(t)))
}
