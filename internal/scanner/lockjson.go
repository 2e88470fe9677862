package scanner

import (
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/model"
	"github.com/khanhnv2901/r2s-cli/internal/rules"
	"github.com/khanhnv2901/r2s-cli/internal/shared/constants"
	sharedErrors "github.com/khanhnv2901/r2s-cli/internal/shared/errors"
)

// TraversalLimits bound the recursive walk over JSON lockfile trees. They are
// parameters rather than constants so boundary behavior stays testable.
type TraversalLimits struct {
	// MaxDepth caps recursion depth in path segments.
	MaxDepth int
	// MaxArray caps how many elements of each array are visited.
	MaxArray int
	// StructuredLimitBytes is the file size past which structured parsing is
	// skipped in favor of the chunked text fallback.
	StructuredLimitBytes int64
}

// DefaultTraversalLimits mirror the documented caps. Both under- and
// over-matching are possible near the caps; detection is best-effort, not
// exhaustive.
func DefaultTraversalLimits() TraversalLimits {
	return TraversalLimits{
		MaxDepth:             constants.LockJSONDepthCap,
		MaxArray:             constants.LockJSONArrayCap,
		StructuredLimitBytes: constants.LockJSONStructuredLimitBytes,
	}
}

// readLockJSON walks a package-lock.json tree looking for configured package
// names whose value object carries a "version" sibling. Oversized files skip
// structured parsing entirely and fall back to the chunked text scan.
func readLockJSON(path string, m *rules.Matcher, log *zap.SugaredLogger, limits TraversalLimits) []model.Finding {
	info, err := os.Stat(path)
	if err != nil {
		log.Errorw("cannot stat lockfile", "path", path, "error", err)
		return nil
	}
	if info.Size() >= limits.StructuredLimitBytes {
		log.Warnw("lockfile too large for structured parsing, using text fallback",
			"path", path, "size", info.Size(), "error", sharedErrors.ErrArtifactTooLarge)
		return readLockText(path, m, log)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Errorw("cannot read lockfile", "path", path, "error", err)
		return nil
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		log.Warnw("skipping lockfile", "path", path,
			"error", fmt.Errorf("%w: %v", sharedErrors.ErrInvalidLockfile, err))
		return nil
	}

	w := &lockWalker{matcher: m, limits: limits}
	w.walk(tree, 0)
	return w.findings
}

// lockWalker is a depth-bounded recursive walk over the tagged JSON tree:
// object nodes, array nodes and scalars.
type lockWalker struct {
	matcher  *rules.Matcher
	limits   TraversalLimits
	findings []model.Finding
}

func (w *lockWalker) walk(node any, depth int) {
	if depth > w.limits.MaxDepth {
		return
	}

	switch n := node.(type) {
	case map[string]any:
		for key, value := range n {
			if child, ok := value.(map[string]any); ok {
				if version, ok := child["version"].(string); ok {
					if name, watched := w.watchedName(key); watched {
						if w.matcher.IsVulnerable(name, version) {
							w.findings = append(w.findings, model.Finding{Package: name, Version: version})
						}
					}
				}
			}
			w.walk(value, depth+1)
		}
	case []any:
		for i, item := range n {
			if i >= w.limits.MaxArray {
				break
			}
			w.walk(item, depth+1)
		}
	}
}

// watchedName reports whether a lockfile key names a package the scan cares
// about, and returns the bare package name. npm v7+ lockfiles key entries by
// install path ("node_modules/react"), so the last path segment counts too.
func (w *lockWalker) watchedName(key string) (string, bool) {
	if key == rules.ReactPackage {
		return key, true
	}
	if _, ok := w.matcher.Rules().Lookup(key); ok {
		return key, true
	}
	if i := lastSlash(key); i >= 0 {
		return w.watchedName(key[i+1:])
	}
	return "", false
}

func lastSlash(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '/' {
			return i
		}
	}
	return -1
}
