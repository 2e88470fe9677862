package rules

import (
	"go.uber.org/zap"

	"github.com/khanhnv2901/r2s-cli/internal/semver"
)

// Matcher decides whether a (package, version) pair is vulnerable under a
// rule set. Decisions are pure functions of the inputs; logging is advisory
// and never changes the outcome.
type Matcher struct {
	rules *RuleSet
	log   *zap.SugaredLogger
}

// NewMatcher builds a matcher over the given rule set. A nil logger is
// replaced with a no-op one.
func NewMatcher(rules *RuleSet, log *zap.SugaredLogger) *Matcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Matcher{rules: rules, log: log}
}

// Rules exposes the effective rule set.
func (m *Matcher) Rules() *RuleSet {
	return m.rules
}

// IsVulnerable reports whether the declared version of a package falls inside
// any configured vulnerable range. The react package uses the v19 window rule
// and ignores the generic range list. Declared versions that do not parse
// degrade to the substring heuristic.
func (m *Matcher) IsVulnerable(name, version string) bool {
	if name == ReactPackage {
		hit := semver.IsReactV19(version)
		if hit {
			m.log.Warnw("react v19 range detected", "version", version)
		}
		return hit
	}

	rule, ok := m.rules.Lookup(name)
	if !ok {
		return false
	}

	declared, parsed := semver.ParseRange(version)
	if !parsed {
		hit := semver.MatchesHeuristic(version)
		m.log.Warnw("unparsable declared version, using heuristic",
			"package", name, "version", version, "hit", hit)
		return hit
	}

	for _, spec := range rule.Ranges {
		vulnerable, ok := semver.ParseRange(spec)
		if !ok {
			// A malformed configured range degrades the same way.
			if semver.MatchesHeuristic(version) {
				m.log.Warnw("unparsable vulnerable range, heuristic matched",
					"package", name, "range", spec, "version", version)
				return true
			}
			continue
		}
		if semver.Overlaps(declared, vulnerable) {
			m.log.Infow("vulnerable package detected",
				"package", name, "version", version, "range", spec)
			return true
		}
	}
	return false
}
