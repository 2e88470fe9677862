package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/khanhnv2901/r2s-cli/internal/model"
)

// scanReport is the JSON document emitted by the scan command.
type scanReport struct {
	VulnerabilitiesFound bool            `json:"vulnerabilities_found"`
	Vulnerabilities      []model.Finding `json:"vulnerabilities"`
	Recommendations      []string        `json:"recommendations"`
}

var patchAdvice = []string{
	"Update react-server-dom-webpack to 19.0.1, 19.1.2 or 19.2.1",
	"Update react-server-dom-parcel to 19.0.1, 19.1.2 or 19.2.1",
	"Update react-server-dom-turbopack to 19.0.1, 19.1.2 or 19.2.1",
	"Rebuild lock files after upgrading and re-run the scan",
}

// renderFindings writes the scan outcome in either text or JSON form.
func renderFindings(w io.Writer, findings []model.Finding, asJSON bool) error {
	if asJSON {
		report := scanReport{
			VulnerabilitiesFound: len(findings) > 0,
			Vulnerabilities:      findings,
			Recommendations:      []string{},
		}
		if len(findings) > 0 {
			report.Recommendations = patchAdvice
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(findings) == 0 {
		fmt.Fprintf(w, "%s No vulnerable packages detected.\n", colorSuccess("[SAFE]"))
		return nil
	}

	fmt.Fprintf(w, "%s Potentially vulnerable packages found:\n", colorError("[WARNING]"))
	for _, f := range findings {
		fmt.Fprintf(w, "  - %s@%s\n", f.Package, f.Version)
	}
	fmt.Fprintf(w, "%s\n", colorWarn("[RECOMMENDATION]"))
	for _, advice := range patchAdvice {
		fmt.Fprintf(w, "  * %s\n", advice)
	}
	return nil
}
