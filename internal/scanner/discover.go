package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// rootLockfiles are the well-known lockfile names probed at the scan root.
var rootLockfiles = []struct {
	name string
	kind TargetKind
}{
	{"package-lock.json", KindLockJSON},
	{"yarn.lock", KindLockText},
	{"pnpm-lock.yaml", KindLockText},
	{"bun.lockb", KindLockBinary},
}

// discover builds the target list for a resolved scan root: the root manifest
// and lockfiles, node_modules if present, then a recursive walk collecting
// every additional package.json, *.lock and *.lockb. Root artifacts are
// excluded from the walk results to avoid double-counting.
func (s *Scanner) discover(root string) []Target {
	var targets []Target

	rootManifest := filepath.Join(root, "package.json")
	if fileExists(rootManifest) {
		s.log.Infof("found package.json: %s", rootManifest)
		targets = append(targets, Target{Kind: KindManifest, Path: rootManifest})
	}

	for _, lf := range rootLockfiles {
		path := filepath.Join(root, lf.name)
		if fileExists(path) {
			s.log.Infof("found %s: %s", lf.name, path)
			targets = append(targets, Target{Kind: lf.kind, Path: path})
		}
	}

	nodeModules := filepath.Join(root, "node_modules")
	if dirExists(nodeModules) {
		s.log.Infof("found node_modules: %s", nodeModules)
		targets = append(targets, Target{Kind: KindNodeModulesDir, Path: nodeModules})
	}

	rootSeen := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		rootSeen[t.Path] = struct{}{}
	}

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.log.Warnw("skipping unreadable path during discovery", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := rootSeen[path]; ok {
			return nil
		}

		switch {
		case d.Name() == "package.json":
			targets = append(targets, Target{Kind: KindManifest, Path: path})
		case strings.HasSuffix(d.Name(), ".lockb"):
			targets = append(targets, Target{Kind: KindLockBinary, Path: path})
		case strings.HasSuffix(d.Name(), ".lock"):
			targets = append(targets, Target{Kind: KindLockText, Path: path})
		}
		return nil
	})
	if walkErr != nil {
		s.log.Errorw("discovery walk aborted", "root", root, "error", walkErr)
	}

	return targets
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
