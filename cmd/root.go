package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/rules"
)

var cfgFile string
var quiet bool
var logger *zap.SugaredLogger

// exitFunc is indirected so tests can observe exit codes.
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "r2s",
	Short: "React2Shell (CVE-2025-55182) vulnerability detector",
	Long: `r2s detects potential React2Shell vulnerabilities by checking
package.json and lock files for vulnerable packages, node_modules for
vulnerable dependencies, and remote URLs for passive framework indicators.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".r2s-cli")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()

		// init logger
		if quiet {
			logger = zap.NewNop().Sugar()
			return nil
		}
		l, err := zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %s", err.Error())
		}
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		exitFunc(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.r2s-cli.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress messages")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(urlCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)
}

// effectiveRules layers the config file's package maps over the built-in
// defaults: vulnerable_packages first, then custom_vulnerable_packages, later
// layers winning per key.
func effectiveRules() *rules.RuleSet {
	set := rules.Defaults()
	if viper.IsSet("vulnerable_packages") {
		set = set.Merge(rules.FromConfig(viper.GetStringMapStringSlice("vulnerable_packages")))
	}
	if viper.IsSet("custom_vulnerable_packages") {
		set = set.Merge(rules.FromConfig(viper.GetStringMapStringSlice("custom_vulnerable_packages")))
	}
	return set
}
