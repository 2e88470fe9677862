package semver

import "strings"

// Interval is a version range with optional bounds. A nil end is unbounded.
// Min, when present, is always inclusive; Max inclusivity depends on how the
// range was written: caret and tilde ranges are half-open at the top while
// hyphen ranges and "<=" are closed.
type Interval struct {
	Min          *Version
	Max          *Version
	MaxInclusive bool
}

// ParseRange parses an npm-style version specifier into an Interval.
//
//	^X.Y.Z      [X.Y.Z, (X+1).0.0)
//	~X.Y.Z      [X.Y.Z, X.(Y+1).0)
//	>=X.Y.Z     [X.Y.Z, +inf)
//	<=X.Y.Z     (-inf, X.Y.Z]
//	A - B       [A, B]
//	X.Y.Z       exact
//
// The second return value is false when the specifier cannot be parsed;
// callers are expected to degrade to a substring heuristic instead of
// treating that as an error.
func ParseRange(spec string) (Interval, bool) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Interval{}, false
	}

	// Hyphen ranges come first: both sides must parse.
	if lo, hi, ok := strings.Cut(spec, " - "); ok {
		min, errLo := ParseVersion(lo)
		max, errHi := ParseVersion(hi)
		if errLo != nil || errHi != nil {
			return Interval{}, false
		}
		if min.Compare(max) > 0 {
			return Interval{}, false
		}
		return Interval{Min: &min, Max: &max, MaxInclusive: true}, true
	}

	switch {
	case strings.HasPrefix(spec, "^"):
		min, err := ParseVersion(spec[1:])
		if err != nil {
			return Interval{}, false
		}
		max := Version{Major: min.Major + 1}
		return Interval{Min: &min, Max: &max}, true

	case strings.HasPrefix(spec, "~"):
		min, err := ParseVersion(spec[1:])
		if err != nil {
			return Interval{}, false
		}
		max := Version{Major: min.Major, Minor: min.Minor + 1}
		return Interval{Min: &min, Max: &max}, true

	case strings.HasPrefix(spec, ">="):
		min, err := ParseVersion(spec[2:])
		if err != nil {
			return Interval{}, false
		}
		return Interval{Min: &min}, true

	case strings.HasPrefix(spec, "<="):
		max, err := ParseVersion(spec[2:])
		if err != nil {
			return Interval{}, false
		}
		return Interval{Max: &max, MaxInclusive: true}, true
	}

	exact, err := ParseVersion(spec)
	if err != nil {
		return Interval{}, false
	}
	return Interval{Min: &exact, Max: &exact, MaxInclusive: true}, true
}

// Overlaps reports whether two intervals share at least one version. The test
// is symmetric and treats missing bounds as infinite in that direction.
func Overlaps(a, b Interval) bool {
	return belowMax(a.Min, b.Max, b.MaxInclusive) && belowMax(b.Min, a.Max, a.MaxInclusive)
}

// Contains reports whether the interval admits the single version v.
func (iv Interval) Contains(v Version) bool {
	point := Interval{Min: &v, Max: &v, MaxInclusive: true}
	return Overlaps(iv, point)
}

// belowMax reports whether a lower bound sits at or below an upper bound,
// honoring the upper bound's inclusivity. Either bound missing means the
// constraint cannot fail.
func belowMax(min, max *Version, maxInclusive bool) bool {
	if min == nil || max == nil {
		return true
	}
	c := min.Compare(*max)
	if maxInclusive {
		return c <= 0
	}
	return c < 0
}

// MatchesHeuristic is the degraded check used when a specifier does not
// parse: the raw string either mentions the 19 major explicitly or is the
// bare string "19".
func MatchesHeuristic(spec string) bool {
	return strings.Contains(spec, "19.") || strings.TrimSpace(spec) == "19"
}
