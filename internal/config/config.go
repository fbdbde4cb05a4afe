// Package config loads and validates the daemon's configuration from
// defaults, a config file and LAMPD_ environment variables.
package config

import (
	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Config is the complete lampd configuration.
type Config struct {
	// Server section.
	Server ServerConfig `mapstructure:"server"`

	// Database section.
	Database DatabaseConfig `mapstructure:"database"`

	// Chain section: module addresses and genesis parameters.
	Chain ChainConfig `mapstructure:"chain"`

	configPath string
}

// ServerConfig configures the JSON-RPC endpoint.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// ShutdownGraceSeconds bounds in-flight request draining on stop.
	ShutdownGraceSeconds int `mapstructure:"shutdown_grace_seconds"`
}

// DatabaseConfig configures the state store.
type DatabaseConfig struct {
	// Type selects the statestore backend: "pebble" or "memory".
	Type string `mapstructure:"type"`

	// Path is the database directory for persistent backends.
	Path string `mapstructure:"path"`

	// Compressor names the value compressor: "lz4" or "none".
	Compressor string `mapstructure:"compressor"`

	// CacheSize is the ledger read cache entry count, zero disables.
	CacheSize int `mapstructure:"cache_size"`
}

// ChainConfig fixes module addresses and genesis parameters. Addresses
// are 0x-prefixed hex.
type ChainConfig struct {
	Owner      string `mapstructure:"owner"`
	Token      string `mapstructure:"token"`
	Emitter    string `mapstructure:"emitter"`
	Collection string `mapstructure:"collection"`
	Vault      string `mapstructure:"vault"`
	Swap       string `mapstructure:"swap"`

	LiquidityFund string `mapstructure:"liquidity_fund"`
	PrizeFund     string `mapstructure:"prize_fund"`
	TreasuryFund  string `mapstructure:"treasury_fund"`

	SaleStart uint64 `mapstructure:"sale_start"`
	BaseURI   string `mapstructure:"base_uri"`
}

// ConfigPath returns the path the config file was loaded from, empty
// when only defaults and environment were used.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// Address parses one of the chain's address fields.
func (c *ChainConfig) Address(s string) (types.Address, error) {
	return types.ParseAddress(s)
}
