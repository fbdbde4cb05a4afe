package config

import (
	"fmt"

	"github.com/magiclamp-finance/lampd/internal/core/types"
)

// Validate checks a loaded configuration for internal consistency.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", cfg.Server.Port)
	}
	if cfg.Server.ShutdownGraceSeconds < 0 {
		return fmt.Errorf("server.shutdown_grace_seconds must not be negative")
	}

	switch cfg.Database.Type {
	case "pebble":
		if cfg.Database.Path == "" {
			return fmt.Errorf("database.path is required for the pebble backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown database.type %q", cfg.Database.Type)
	}
	switch cfg.Database.Compressor {
	case "", "none", "lz4":
	default:
		return fmt.Errorf("unknown database.compressor %q", cfg.Database.Compressor)
	}
	if cfg.Database.CacheSize < 0 {
		return fmt.Errorf("database.cache_size must not be negative")
	}

	addrs := map[string]string{
		"chain.owner":          cfg.Chain.Owner,
		"chain.token":          cfg.Chain.Token,
		"chain.emitter":        cfg.Chain.Emitter,
		"chain.collection":     cfg.Chain.Collection,
		"chain.vault":          cfg.Chain.Vault,
		"chain.swap":           cfg.Chain.Swap,
		"chain.liquidity_fund": cfg.Chain.LiquidityFund,
		"chain.prize_fund":     cfg.Chain.PrizeFund,
		"chain.treasury_fund":  cfg.Chain.TreasuryFund,
	}
	seen := make(map[types.Address]string, len(addrs))
	for field, raw := range addrs {
		addr, err := types.ParseAddress(raw)
		if err != nil {
			return fmt.Errorf("%s: invalid address %q", field, raw)
		}
		if addr.IsZero() {
			return fmt.Errorf("%s must not be the zero address", field)
		}
		if prev, dup := seen[addr]; dup {
			return fmt.Errorf("%s and %s share address %s", prev, field, raw)
		}
		seen[addr] = field
	}
	return nil
}
