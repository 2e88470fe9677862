package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/model"
	"github.com/khanhnv2901/r2s-cli/internal/rules"
)

// Sentinel versions reported for installed packages whose manifest is absent
// or unreadable. They do not parse as versions, so for non-react packages
// they generally fail the range check; for react the substring heuristic
// still surfaces the install for manual review.
const (
	versionUnknown = "unknown"
	versionFound   = "found"
)

// readNodeModules checks a node_modules directory for direct installs of the
// configured packages (and react), reading each package's own manifest for
// its resolved version.
func readNodeModules(dir string, m *rules.Matcher, log *zap.SugaredLogger) []model.Finding {
	var findings []model.Finding

	names := append(m.Rules().Packages(), rules.ReactPackage)
	for _, name := range names {
		pkgDir := filepath.Join(dir, name)
		if !dirExists(pkgDir) {
			continue
		}

		version := installedVersion(filepath.Join(pkgDir, "package.json"), log)
		if m.IsVulnerable(name, version) {
			findings = append(findings, model.Finding{Package: name, Version: version})
		}
	}
	return findings
}

// installedVersion extracts the "version" field of an installed package's
// manifest, degrading to the documented sentinels.
func installedVersion(manifestPath string, log *zap.SugaredLogger) string {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return versionFound
		}
		log.Warnw("cannot read installed manifest", "path", manifestPath, "error", err)
		return versionUnknown
	}

	var manifest manifestFile
	if err := json.Unmarshal(data, &manifest); err != nil {
		log.Warnw("invalid JSON in installed manifest", "path", manifestPath, "error", err)
		return versionUnknown
	}
	if manifest.Version == "" {
		return versionUnknown
	}
	return manifest.Version
}
