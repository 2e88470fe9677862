package scanner

import (
	"io"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/model"
	"github.com/khanhnv2901/r2s-cli/internal/rules"
	"github.com/khanhnv2901/r2s-cli/internal/shared/constants"
)

// readLockText scans a text lockfile (yarn.lock, pnpm-lock.yaml, *.lock) in
// fixed-size chunks. For each configured package found as a substring of a
// chunk, version strings near the name are captured and evaluated. The first
// chunk mentioning a package wins; a different version of the same package in
// a later chunk is not discovered. Matches spanning a chunk boundary can be
// missed; the scan is best-effort.
func readLockText(path string, m *rules.Matcher, log *zap.SugaredLogger) []model.Finding {
	f, err := os.Open(path)
	if err != nil {
		log.Errorw("cannot open lockfile", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	var findings []model.Finding
	seen := make(map[string]struct{})
	buf := make([]byte, constants.LockTextChunkBytes)

	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			for _, pkg := range m.Rules().Packages() {
				if _, done := seen[pkg]; done {
					continue
				}
				if !strings.Contains(chunk, pkg) {
					continue
				}
				seen[pkg] = struct{}{}
				for _, version := range captureVersions(pkg, chunk) {
					if m.IsVulnerable(pkg, version) {
						findings = append(findings, model.Finding{Package: pkg, Version: version})
					}
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Errorw("error reading lockfile", "path", path, "error", readErr)
			break
		}
	}

	return findings
}

// captureVersions applies the lockfile proximity pattern
// <pkg><non-alnum>...version..."<capture>" to a chunk and returns every
// captured version string.
func captureVersions(pkg, chunk string) []string {
	re, err := regexp.Compile(`(?s)` + regexp.QuoteMeta(pkg) + `[^a-zA-Z0-9].*?version.*?"([^"]+)"`)
	if err != nil {
		return nil
	}

	var versions []string
	for _, match := range re.FindAllStringSubmatch(chunk, -1) {
		versions = append(versions, match[1])
	}
	return versions
}
