package scanner

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/model"
	"github.com/khanhnv2901/r2s-cli/internal/rules"
	sharedErrors "github.com/khanhnv2901/r2s-cli/internal/shared/errors"
)

// manifestFile is the subset of package.json the scanner cares about.
type manifestFile struct {
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// readManifest inspects the dependencies and devDependencies of a
// package.json and reports every configured package whose declared version
// string (not the resolved one) the matcher flags.
func readManifest(path string, m *rules.Matcher, log *zap.SugaredLogger) []model.Finding {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorw("cannot read manifest", "path", path, "error", err)
		return nil
	}

	var manifest manifestFile
	if err := json.Unmarshal(data, &manifest); err != nil {
		log.Warnw("skipping manifest", "path", path,
			"error", fmt.Errorf("%w: %v", sharedErrors.ErrInvalidManifest, err))
		return nil
	}

	var findings []model.Finding
	for _, deps := range []map[string]string{manifest.Dependencies, manifest.DevDependencies} {
		for _, name := range m.Rules().Packages() {
			version, ok := deps[name]
			if !ok {
				continue
			}
			if m.IsVulnerable(name, version) {
				findings = append(findings, model.Finding{Package: name, Version: version})
			}
		}
		if version, ok := deps[rules.ReactPackage]; ok {
			if m.IsVulnerable(rules.ReactPackage, version) {
				findings = append(findings, model.Finding{Package: rules.ReactPackage, Version: version})
			}
		}
	}
	return findings
}
