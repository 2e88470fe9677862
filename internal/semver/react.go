package semver

// reactWindow is the [19.0.0, 20.0.0) release window of React 19.
var reactWindow = Interval{
	Min: &Version{Major: 19},
	Max: &Version{Major: 20},
}

// IsReactV19 reports whether a declared react version specifier could admit
// any 19.x release. The check is deliberately conservative: it flags every
// range that intersects the 19.x window, since the goal is alerting rather
// than precise exclusion. Specifiers that do not parse fall back to the
// substring heuristic.
func IsReactV19(spec string) bool {
	iv, ok := ParseRange(spec)
	if !ok {
		return MatchesHeuristic(spec)
	}
	return Overlaps(iv, reactWindow)
}
