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
	sharedErrors "github.com/khanhnv2901/r2s-cli/internal/shared/errors"
)

// binaryPatterns builds the three permissive version patterns applied to the
// lossily decoded chunks of a binary lockfile: pkg<sep>X.Y.Z, pkg<sep>vX.Y.Z
// and pkg<sep>"quoted". Under- and over-matching are both possible; the
// reader is a best-effort heuristic, not an exhaustive parser.
func binaryPatterns(pkg string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(pkg)
	return []*regexp.Regexp{
		regexp.MustCompile(quoted + `[^a-zA-Z0-9]+(\d+\.\d+\.\d+)`),
		regexp.MustCompile(quoted + `[^a-zA-Z0-9]+v(\d+\.\d+\.\d+)`),
		regexp.MustCompile(quoted + `[^a-zA-Z0-9]+"([^"]{1,64})"`),
	}
}

// readLockBinary scans a bun.lockb in chunks, decoding each chunk as text
// with invalid byte sequences dropped. Candidate versions are aggregated per
// package across the whole file before the matcher runs once per distinct
// version. Files past the size limit are skipped entirely.
func readLockBinary(path string, m *rules.Matcher, log *zap.SugaredLogger) []model.Finding {
	info, err := os.Stat(path)
	if err != nil {
		log.Errorw("cannot stat binary lockfile", "path", path, "error", err)
		return nil
	}
	if info.Size() >= constants.LockBinarySkipLimitBytes {
		log.Warnw("binary lockfile too large, skipping",
			"path", path, "size", info.Size(), "error", sharedErrors.ErrArtifactTooLarge)
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		log.Errorw("cannot open binary lockfile", "path", path, "error", err)
		return nil
	}
	defer f.Close()

	packages := m.Rules().Packages()
	patterns := make(map[string][]*regexp.Regexp, len(packages))
	candidates := make(map[string]map[string]struct{}, len(packages))
	for _, pkg := range packages {
		patterns[pkg] = binaryPatterns(pkg)
		candidates[pkg] = make(map[string]struct{})
	}

	buf := make([]byte, constants.LockBinaryChunkBytes)
	for {
		n, readErr := f.Read(buf)
		if n > 0 {
			chunk := strings.ToValidUTF8(string(buf[:n]), "")
			for _, pkg := range packages {
				if !strings.Contains(chunk, pkg) {
					continue
				}
				for _, re := range patterns[pkg] {
					for _, match := range re.FindAllStringSubmatch(chunk, -1) {
						candidates[pkg][match[1]] = struct{}{}
					}
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			log.Errorw("error reading binary lockfile", "path", path, "error", readErr)
			break
		}
	}

	var findings []model.Finding
	for _, pkg := range packages {
		for version := range candidates[pkg] {
			if m.IsVulnerable(pkg, version) {
				findings = append(findings, model.Finding{Package: pkg, Version: version})
			}
		}
	}
	return findings
}
