package cmd

import (
	"github.com/spf13/cobra"

	"github.com/khanhnv2901/r2s-cli/internal/cache"
	"github.com/khanhnv2901/r2s-cli/internal/rules"
	"github.com/khanhnv2901/r2s-cli/internal/scanner"
	"github.com/khanhnv2901/r2s-cli/internal/shared/constants"
)

var (
	scanPath    string
	scanWorkers int
	scanNoCache bool
	scanJSON    bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a project directory for React2Shell exposure",
	Example: `  r2s scan --path /path/to/your/project
  r2s scan --path . --workers 8 --no-cache --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadScanConfig(cmd.Flags())

		matcher := rules.NewMatcher(effectiveRules(), logger)
		store := cache.New(cfg.CacheDir, cfg.CacheTTL, logger)
		s := scanner.New(matcher, store, logger, scanner.Options{
			Workers:  cfg.Workers,
			Timeout:  cfg.Timeout,
			UseCache: cfg.UseCache,
		})

		findings := s.Scan(cmd.Context(), scanPath)

		if err := renderFindings(cmd.OutOrStdout(), findings, scanJSON); err != nil {
			return err
		}
		if len(findings) > 0 {
			exitFunc(1)
		}
		return nil
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanPath, "path", "p", "", "path to scan for vulnerabilities")
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "w", constants.DefaultScanWorkers, "number of parallel workers")
	scanCmd.Flags().BoolVar(&scanNoCache, "no-cache", false, "skip reading and writing cached scan results")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "output results in JSON format")
	_ = scanCmd.MarkFlagRequired("path")
}
