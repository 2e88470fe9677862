package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khanhnv2901/r2s-cli/internal/probe"
)

var (
	urlJSON         bool
	urlAllowPrivate bool
)

// urlVerdict is the JSON document emitted per probed URL.
type urlVerdict struct {
	URLChecked           string `json:"url_checked"`
	ReactIndicatorsFound bool   `json:"react_indicators_found"`
	Recommendation       string `json:"recommendation"`
}

var urlCmd = &cobra.Command{
	Use:   "url <url> [url...]",
	Short: "Passively probe URLs for React framework indicators",
	Long: `Performs a single redirect-free GET against each URL and reports
whether React fingerprints appear in the response. This is a passive
heuristic only; a positive result means manual verification is recommended.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := probe.New(logger, probe.Options{AllowPrivate: urlAllowPrivate})

		out := cmd.OutOrStdout()
		for _, rawURL := range args {
			found := p.Check(cmd.Context(), rawURL)

			if urlJSON {
				verdict := urlVerdict{
					URLChecked:           rawURL,
					ReactIndicatorsFound: found,
					Recommendation:       "Appears unaffected",
				}
				if found {
					verdict.Recommendation = "Manual verification recommended"
				}
				data, err := json.MarshalIndent(verdict, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				continue
			}

			if found {
				fmt.Fprintf(out, "%s URL %s may be vulnerable. Manual verification recommended.\n", colorWarn("[WARNING]"), rawURL)
			} else {
				fmt.Fprintf(out, "%s URL %s appears to be unaffected based on initial check.\n", colorInfo("[INFO]"), rawURL)
			}
		}
		return nil
	},
}

func init() {
	urlCmd.Flags().BoolVar(&urlJSON, "json", false, "output results in JSON format")
	urlCmd.Flags().BoolVar(&urlAllowPrivate, "allow-private", false, "permit probing loopback and private addresses you own")
}
