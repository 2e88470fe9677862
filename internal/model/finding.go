package model

// Finding is a (package, version) pair confirmed vulnerable by the matcher.
type Finding struct {
	Package string `json:"package"`
	Version string `json:"version"`
}

// Dedupe removes duplicate findings by exact (package, version) equality,
// preserving first-seen order.
func Dedupe(findings []Finding) []Finding {
	seen := make(map[Finding]struct{}, len(findings))
	unique := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		unique = append(unique, f)
	}
	return unique
}
