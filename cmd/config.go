package cmd

import (
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/r2s-cli/internal/shared/constants"
)

// ScanRuntimeConfig consolidates flag-driven and config-file settings for the
// scan command.
type ScanRuntimeConfig struct {
	Workers  int
	Timeout  time.Duration
	UseCache bool
	CacheDir string
	CacheTTL time.Duration
}

// loadScanConfig resolves the effective scan settings. Config-file values act
// as defaults; a flag the operator explicitly set always wins.
func loadScanConfig(flags *pflag.FlagSet) ScanRuntimeConfig {
	cfg := ScanRuntimeConfig{
		Workers:  scanWorkers,
		UseCache: !scanNoCache,
		CacheDir: viper.GetString("cache.dir"),
		CacheTTL: time.Duration(constants.DefaultCacheTTLSecs) * time.Second,
	}

	if viper.IsSet("scan.max_workers") {
		applyIntDefault(flags, "workers", viper.GetInt("scan.max_workers"), func(v int) {
			cfg.Workers = v
		})
	}
	if secs := viper.GetInt("scan.timeout_secs"); secs > 0 {
		cfg.Timeout = time.Duration(secs) * time.Second
	}
	if viper.IsSet("cache.enabled") {
		applyBoolDefault(flags, "no-cache", !viper.GetBool("cache.enabled"), func(v bool) {
			cfg.UseCache = !v
		})
	}
	if viper.IsSet("cache.ttl_secs") {
		cfg.CacheTTL = time.Duration(viper.GetInt("cache.ttl_secs")) * time.Second
	}

	return cfg
}

func applyIntDefault(flags *pflag.FlagSet, name string, value int, setter func(int)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}

func applyBoolDefault(flags *pflag.FlagSet, name string, value bool, setter func(bool)) {
	if flags == nil || setter == nil {
		return
	}
	flag := flags.Lookup(name)
	if flag != nil && flag.Changed {
		return
	}
	setter(value)
}
