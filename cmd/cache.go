package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/r2s-cli/internal/cache"
	"github.com/khanhnv2901/r2s-cli/internal/rules"
	"github.com/khanhnv2901/r2s-cli/internal/scanner"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached scan results",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached scan results",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadScanConfig(nil)
		matcher := rules.NewMatcher(effectiveRules(), logger)
		store := cache.New(cfg.CacheDir, cfg.CacheTTL, logger)
		s := scanner.New(matcher, store, logger, scanner.Options{})
		s.ClearCache()
		fmt.Fprintln(cmd.OutOrStdout(), "Scan cache cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
}
