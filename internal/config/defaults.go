package config

import "github.com/spf13/viper"

// setDefaults sets the built-in defaults. Chain addresses default to a
// fixed development layout so a bare `lampd server` starts a usable
// standalone node.
func setDefaults(v *viper.Viper) {
	// Server defaults.
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_grace_seconds", 10)

	// Database defaults.
	v.SetDefault("database.type", "pebble")
	v.SetDefault("database.path", "/var/lib/lampd/db")
	v.SetDefault("database.compressor", "lz4")
	v.SetDefault("database.cache_size", 16384)

	// Chain defaults: the development genesis layout.
	v.SetDefault("chain.owner", "0x0000000000000000000000000000000000001000")
	v.SetDefault("chain.token", "0x0000000000000000000000000000000000000a01")
	v.SetDefault("chain.emitter", "0x0000000000000000000000000000000000000a02")
	v.SetDefault("chain.collection", "0x0000000000000000000000000000000000000a03")
	v.SetDefault("chain.vault", "0x0000000000000000000000000000000000000a04")
	v.SetDefault("chain.swap", "0x0000000000000000000000000000000000000a05")
	v.SetDefault("chain.liquidity_fund", "0x0000000000000000000000000000000000002001")
	v.SetDefault("chain.prize_fund", "0x0000000000000000000000000000000000002002")
	v.SetDefault("chain.treasury_fund", "0x0000000000000000000000000000000000002003")
	v.SetDefault("chain.sale_start", 1623751121)
	v.SetDefault("chain.base_uri", "")
}
